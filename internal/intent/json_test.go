package intent

import (
	"testing"
)

type jsonTarget struct {
	Ranking string `json:"ranking"`
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "pure JSON",
			input: `{"ranking": "credit"}`,
			want:  "credit",
		},
		{
			name:  "json fence",
			input: "```json\n{\"ranking\": \"efficiency\"}\n```",
			want:  "efficiency",
		},
		{
			name:  "plain fence",
			input: "```\n{\"ranking\": \"overall\"}\n```",
			want:  "overall",
		},
		{
			name:  "surrounding prose",
			input: `Here is the intent you asked for: {"ranking": "hold_probability"} Hope that helps!`,
			want:  "hold_probability",
		},
		{
			name:  "braces inside string literals",
			input: `{"ranking": "credit{}"}`,
			want:  "credit{}",
		},
		{
			name:  "escaped quote inside string",
			input: `The answer: {"ranking": "say \"hi\""} done`,
			want:  `say "hi"`,
		},
		{
			name:    "empty input",
			input:   "   ",
			wantErr: true,
		},
		{
			name:    "no JSON at all",
			input:   "I cannot answer that.",
			wantErr: true,
		},
		{
			name:    "unbalanced object",
			input:   `{"ranking": "credit"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var target jsonTarget
			err := extractJSON(tt.input, &target)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", target)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if target.Ranking != tt.want {
				t.Errorf("expected ranking %q, got %q", tt.want, target.Ranking)
			}
		})
	}
}

func TestExtractBalancedObject_FirstObjectWins(t *testing.T) {
	input := `{"a": 1} trailing {"b": 2}`
	got := extractBalancedObject(input)
	if got != `{"a": 1}` {
		t.Errorf("expected first balanced object, got %q", got)
	}
}
