package extractor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/callmepikachu/AniHub-Demo/internal/config"
	"github.com/openai/openai-go/v3/option"
)

const remoteScenes = `[{"id":"scene_001","prompt":"林则徐站在虎门海滩上","position":1,"duration":5,"style":"realistic","type":"narrative"}]`

func TestOpenAIStrategy(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("unexpected Authorization header %q", got)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		content, _ := json.Marshal("```json\n" + remoteScenes + "\n```")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","created":0,"model":"deepseek-chat","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":` + string(content) + `}}]}`))
	}))
	defer srv.Close()

	cfg := config.Default().Extractor.OpenAI
	cfg.APIKey = "sk-test"
	cfg.BaseURL = srv.URL

	s := newOpenAIStrategy(cfg, option.WithMaxRetries(0))
	raw, err := s.Candidates(context.Background(), sampleText)
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	if len(raw) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(raw))
	}

	if gotBody["model"] != "deepseek-chat" {
		t.Errorf("model = %v", gotBody["model"])
	}
	msgs, _ := gotBody["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("expected system and user messages, got %v", gotBody["messages"])
	}
	if _, ok := gotBody["response_format"]; ok {
		t.Error("response_format should be omitted unless structured output is enabled")
	}
}

func TestOpenAIStrategyStructuredOutput(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		content, _ := json.Marshal(`{"scenes":` + remoteScenes + `}`)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","created":0,"model":"gpt-4o-mini","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":` + string(content) + `}}]}`))
	}))
	defer srv.Close()

	cfg := config.Default().Extractor.OpenAI
	cfg.APIKey = "sk-test"
	cfg.BaseURL = srv.URL
	cfg.StructuredOutput = true

	raw, err := newOpenAIStrategy(cfg, option.WithMaxRetries(0)).Candidates(context.Background(), sampleText)
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	if len(raw) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(raw))
	}

	format, _ := gotBody["response_format"].(map[string]any)
	if format["type"] != "json_schema" {
		t.Fatalf("expected json_schema response format, got %v", gotBody["response_format"])
	}
}

func TestOpenAIStrategyHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid key"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	cfg := config.Default().Extractor.OpenAI
	cfg.APIKey = "sk-bad"
	cfg.BaseURL = srv.URL

	if _, err := newOpenAIStrategy(cfg, option.WithMaxRetries(0)).Candidates(context.Background(), sampleText); err == nil {
		t.Fatal("expected an error for a 401 response")
	}
}

func TestGeminiStrategyRotatesKeys(t *testing.T) {
	var mu sync.Mutex
	var seen []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("x-goog-api-key")
		if key == "" {
			key = r.URL.Query().Get("key")
		}
		mu.Lock()
		seen = append(seen, key)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if key == "exhausted" {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`))
			return
		}

		text, _ := json.Marshal(remoteScenes)
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":` + string(text) + `}]}}]}`))
	}))
	defer srv.Close()

	s := newGeminiStrategy(config.GeminiConfig{
		APIKeys: []string{"exhausted", "fresh"},
		Model:   "gemini-2.5-flash",
		BaseURL: srv.URL,
	}, &recordingLogger{})

	raw, err := s.Candidates(context.Background(), sampleText)
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	if len(raw) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(raw))
	}

	mu.Lock()
	defer mu.Unlock()
	if len(seen) == 0 || seen[len(seen)-1] != "fresh" {
		t.Fatalf("expected the last request to use the rotated key, saw %v", seen)
	}
	if s.currentKey != 1 {
		t.Fatalf("expected current key index 1, got %d", s.currentKey)
	}
}

func TestGeminiStrategyWithoutKeys(t *testing.T) {
	s := newGeminiStrategy(config.GeminiConfig{Model: "gemini-2.5-flash"}, &recordingLogger{})
	if _, err := s.Candidates(context.Background(), sampleText); err != ErrNotConfigured {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestUserPromptNumbersSentences(t *testing.T) {
	p := userPrompt(sampleText)
	for _, want := range []string{"1. 林则徐站在虎门海滩上", "2. 他非常愤怒", "3. 工人们把鸦片倒入池中"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q:\n%s", want, p)
		}
	}
}
