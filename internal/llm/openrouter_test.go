package llm

import "testing"

func TestNewOpenRouterProvider(t *testing.T) {
	t.Run("requires API key", func(t *testing.T) {
		if _, err := NewOpenRouterProvider(OpenRouterConfig{Model: "google/gemini-2.0-flash-001"}); err == nil {
			t.Fatal("expected error for empty API key")
		}
	})

	t.Run("model IDs pass through", func(t *testing.T) {
		for _, model := range []string{"google/gemini-2.0-flash-001", "anthropic/claude-haiku-4.5", "gpt-mini-custom"} {
			p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: model})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.ModelID() != model {
				t.Errorf("model = %q, want %q", p.ModelID(), model)
			}
		}
	})

	t.Run("custom base URL", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{
			APIKey:  "sk-or-test",
			Model:   "x/y",
			BaseURL: "https://openrouter.example/v1",
		})
		if err != nil || p == nil {
			t.Fatalf("unexpected result: %v %v", p, err)
		}
	})
}
