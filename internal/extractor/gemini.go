package extractor

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/callmepikachu/AniHub-Demo/internal/config"
	"github.com/callmepikachu/AniHub-Demo/internal/logger"
	"google.golang.org/genai"
)

const StrategyGemini = "gemini"

type geminiStrategy struct {
	apiKeys []string
	model   string
	baseURL string
	logger  logger.Logger

	mu         sync.Mutex
	currentKey int
}

func newGeminiStrategy(cfg config.GeminiConfig, log logger.Logger) *geminiStrategy {
	return &geminiStrategy{
		apiKeys: cfg.APIKeys,
		model:   cfg.Model,
		baseURL: cfg.BaseURL,
		logger:  log,
	}
}

func (s *geminiStrategy) Name() string { return StrategyGemini }

func (s *geminiStrategy) Candidates(ctx context.Context, text string) ([]any, error) {
	content, err := s.callGemini(ctx, userPrompt(text))
	if err != nil {
		return nil, err
	}
	return parseCandidates(content)
}

// callGemini sends the prompt and returns the response text.
// Rotates API keys on 429 / quota errors.
func (s *geminiStrategy) callGemini(ctx context.Context, prompt string) (string, error) {
	if len(s.apiKeys) == 0 {
		return "", ErrNotConfigured
	}

	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		Temperature:       genai.Ptr[float32](0.7),
	}

	var lastErr error
	for range len(s.apiKeys) {
		idx, key := s.key()

		clientCfg := &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		}
		if s.baseURL != "" {
			clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: s.baseURL}
		}

		client, err := genai.NewClient(ctx, clientCfg)
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			s.rotateKey(idx)
			continue
		}

		result, err := client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), genCfg)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				s.logger.Warn(ctx, "Gemini key %d rate limited, rotating...", idx+1)
				s.rotateKey(idx)
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part != nil && part.Text != "" {
					text += part.Text
				}
			}
			if text != "" {
				return text, nil
			}
		}

		return "", ErrEmptyResponse
	}

	return "", fmt.Errorf("all Gemini API keys exhausted: %w", lastErr)
}

func (s *geminiStrategy) key() (int, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentKey, s.apiKeys[s.currentKey]
}

// rotateKey advances past idx unless another caller already rotated.
func (s *geminiStrategy) rotateKey(idx int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentKey == idx {
		s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
	}
}
