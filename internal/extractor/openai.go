package extractor

import (
	"context"
	"fmt"

	"github.com/callmepikachu/AniHub-Demo/internal/config"
	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const StrategyOpenAI = "openai"

// sceneEnvelope is the structured output requested from the model.
type sceneEnvelope struct {
	Scenes []sceneCandidate `json:"scenes" jsonschema_description:"Visually expressive scenes found in the text, in reading order."`
}

type sceneCandidate struct {
	ID       string `json:"id" jsonschema_description:"Unique scene id formatted as scene_001, scene_002, ..."`
	Prompt   string `json:"prompt" jsonschema_description:"Concise description of the scene usable as a video generation prompt."`
	Position int    `json:"position" jsonschema_description:"1-based number of the sentence the scene illustrates."`
	Duration int    `json:"duration" jsonschema_description:"Suggested clip length in seconds."`
	Style    string `json:"style" jsonschema:"enum=realistic,enum=cartoon,enum=animation"`
	Type     string `json:"type" jsonschema:"enum=narrative,enum=technical"`
}

// generateSchema builds a JSON schema suitable for strict structured output.
func generateSchema[T any]() any {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

var sceneEnvelopeSchema = generateSchema[sceneEnvelope]()

type openAIStrategy struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int64
	structured  bool
}

func newOpenAIStrategy(cfg config.OpenAIConfig, opts ...option.RequestOption) *openAIStrategy {
	opts = append([]option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
	}, opts...)

	return &openAIStrategy{
		client:      openai.NewClient(opts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		structured:  cfg.StructuredOutput,
	}
}

func (s *openAIStrategy) Name() string { return StrategyOpenAI }

func (s *openAIStrategy) Candidates(ctx context.Context, text string) ([]any, error) {
	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt(text)),
		},
		Model:       openai.ChatModel(s.model),
		Temperature: openai.Float(s.temperature),
		MaxTokens:   openai.Int(s.maxTokens),
	}

	if s.structured {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        "scene_candidates",
					Description: openai.String("Scenes extracted from narrative text"),
					Schema:      sceneEnvelopeSchema,
					Strict:      openai.Bool(true),
				},
			},
		}
	}

	completion, err := s.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	if len(completion.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	return parseCandidates(completion.Choices[0].Message.Content)
}
