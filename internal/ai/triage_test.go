package ai

import "testing"

func TestSanitizeModelJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain json untouched", `{"category":"발주"}`, `{"category":"발주"}`},
		{"json fence stripped", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence stripped", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace trimmed", "  {\"a\":1}  \n", `{"a":1}`},
		{"fence with trailing prose", "```json\n{\"a\":1}\n```\n", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeModelJSON(tt.input); got != tt.want {
				t.Errorf("sanitizeModelJSON(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
