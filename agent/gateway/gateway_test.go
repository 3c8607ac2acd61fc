package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	contractx "github.com/storewise/recommender/agent/contract"
)

type fakeBackend struct {
	response string
	err      error
	calls    int
	prompts  []string
}

func (f *fakeBackend) Complete(ctx context.Context, model, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func TestGenerateEmptyPrompt(t *testing.T) {
	t.Parallel()

	g, err := New(&fakeBackend{}, "llama3-8b")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = g.Generate(context.Background(), "   ")
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestGenerateExtractsEmbeddedJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		response string
		want     string
	}{
		{
			name:     "fenced block",
			response: "Here is my analysis:\n```json\n{\"interests\":[\"gaming\"]}\n```\nHope that helps!",
			want:     `{"interests":["gaming"]}`,
		},
		{
			name:     "bare object span",
			response: `Sure! {"interests":["gaming"]} as requested.`,
			want:     `{"interests":["gaming"]}`,
		},
		{
			name:     "plain text passes through",
			response: "I could not produce a structured answer.",
			want:     "I could not produce a structured answer.",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g, err := New(&fakeBackend{response: tt.response}, "llama3-8b")
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			got, err := g.Generate(context.Background(), "analyze this customer data")
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("Generate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateFallbackShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		prompt  string
		wantKey string
	}{
		{"customer prompt", "Analyze the following customer data: ...", "interests"},
		{"product prompt", "Analyze the following product and its relationships", "similarProducts"},
		{"recommendation prompt", "Generate personalized product recommendations for this customer", "recommendedProducts"},
		{"unknown prompt", "tell me a story", "error"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			backend := &fakeBackend{err: errors.New("connection refused")}
			g, err := New(backend, "llama3-8b")
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			got, err := g.Generate(context.Background(), tt.prompt)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if backend.calls != 1 {
				t.Fatalf("expected exactly one backend call, got %d", backend.calls)
			}

			var payload map[string]any
			if err := json.Unmarshal([]byte(got), &payload); err != nil {
				t.Fatalf("fallback payload is not valid JSON: %v", err)
			}
			if _, ok := payload[tt.wantKey]; !ok {
				t.Fatalf("fallback payload missing key %q: %s", tt.wantKey, got)
			}
		})
	}
}

func TestGenerateCancelledContextSurfacesError(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g, err := New(&fakeBackend{err: errors.New("canceled mid-flight")}, "llama3-8b")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = g.Generate(ctx, "analyze this customer data")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestExtractJSONArraySpan(t *testing.T) {
	t.Parallel()

	got, ok := extractJSON(`results: [ {"id":"P1"}, {"id":"P2"} ] done`)
	if !ok {
		t.Fatal("expected a JSON span")
	}
	if !strings.HasPrefix(got, "[") && !strings.HasPrefix(got, "{") {
		t.Fatalf("unexpected span: %q", got)
	}
}
