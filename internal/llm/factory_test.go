package llm

import (
	"context"
	"testing"
	"time"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		wantName string
		wantNil  bool
		wantErr  bool
	}{
		{
			name:     "openai",
			config:   Config{Provider: "openai", APIKey: "k"},
			wantName: "openai",
		},
		{
			name:     "anthropic",
			config:   Config{Provider: "anthropic", APIKey: "k"},
			wantName: "anthropic",
		},
		{
			name:     "claude alias",
			config:   Config{Provider: "claude", APIKey: "k"},
			wantName: "anthropic",
		},
		{
			name:     "ollama",
			config:   Config{Provider: "ollama", Model: "llama3.1:8b"},
			wantName: "ollama",
		},
		{
			name:     "case insensitive",
			config:   Config{Provider: "OpenAI", APIKey: "k"},
			wantName: "openai",
		},
		{
			name:    "empty disables completions",
			config:  Config{Provider: ""},
			wantNil: true,
		},
		{
			name:    "unknown provider",
			config:  Config{Provider: "bard"},
			wantErr: true,
		},
		{
			name:    "openai without key",
			config:  Config{Provider: "openai"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.config)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantNil {
				if p != nil {
					t.Fatalf("expected nil provider, got %s", p.Name())
				}
				return
			}
			if p == nil {
				t.Fatal("expected a provider")
			}
			if p.Name() != tt.wantName {
				t.Errorf("expected name %s, got %s", tt.wantName, p.Name())
			}
		})
	}
}

func TestNewProvider_Throttled(t *testing.T) {
	p, err := NewProvider(Config{Provider: "openai", APIKey: "k", RequestsPerSecond: 2, Burst: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*throttledProvider); !ok {
		t.Errorf("expected a throttled provider, got %T", p)
	}
	// The wrapper is transparent for naming.
	if p.Name() != "openai" {
		t.Errorf("expected inner name to pass through, got %s", p.Name())
	}
}

type instantProvider struct {
	calls int
}

func (i *instantProvider) Name() string                         { return "instant" }
func (i *instantProvider) IsAvailable(ctx context.Context) bool { return true }

func (i *instantProvider) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	i.calls++
	return "ok", nil
}

func TestThrottled_SpacesRequests(t *testing.T) {
	inner := &instantProvider{}
	p := Throttled(inner, 50, 1)

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := p.Complete(context.Background(), CompletionRequest{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	elapsed := time.Since(start)

	if inner.calls != 3 {
		t.Fatalf("expected 3 delegated calls, got %d", inner.calls)
	}
	// 50 rps with burst 1: the second and third calls wait ~20ms each.
	if elapsed < 30*time.Millisecond {
		t.Errorf("expected rate limiting to space calls, elapsed %v", elapsed)
	}
}

func TestThrottled_CancelledContext(t *testing.T) {
	inner := &instantProvider{}
	p := Throttled(inner, 0.001, 1)

	// Exhaust the burst, then cancel while waiting.
	if _, err := p.Complete(context.Background(), CompletionRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := p.Complete(ctx, CompletionRequest{}); err == nil {
		t.Fatal("expected a context error while throttled")
	}
	if inner.calls != 1 {
		t.Errorf("cancelled call must not reach the provider, got %d calls", inner.calls)
	}
}
