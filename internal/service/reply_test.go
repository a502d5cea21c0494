package service

import "testing"

func TestKeywordReply(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"greeting hi", "hi there", greetingReply},
		{"greeting hello", "Hello bot", greetingReply},
		{"greeting mixed case", "HI!", greetingReply},
		{"help", "I need some help", helpReply},
		{"identity", "what is your name?", identityReply},
		{"fallback", "tell me about the weather", fallbackReply},
		{"empty input", "", fallbackReply},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KeywordReply(tt.input); got != tt.want {
				t.Errorf("KeywordReply(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestKeywordReplyIsTotalAndDeterministic(t *testing.T) {
	inputs := []string{"", " ", "hi", "help", "your name", "random text", "🫀"}
	for _, in := range inputs {
		first := KeywordReply(in)
		if first == "" {
			t.Errorf("KeywordReply(%q) returned empty string", in)
		}
		if second := KeywordReply(in); second != first {
			t.Errorf("KeywordReply(%q) not deterministic: %q vs %q", in, first, second)
		}
	}
}
