package sentiment_test

import (
	"testing"

	"github.com/introbot/introspect/internal/sentiment"
)

func TestVaderAnalyzerPolarity(t *testing.T) {
	t.Parallel()

	analyzer := sentiment.NewVaderAnalyzer()

	tests := []struct {
		name string
		text string
		// sign of the expected polarity: -1, 0, or 1
		sign int
	}{
		{name: "Empty text", text: "", sign: 0},
		{name: "Whitespace only", text: "   \t\n", sign: 0},
		{name: "Positive text", text: "I love this, it is wonderful and amazing!", sign: 1},
		{name: "Negative text", text: "This is horrible, I hate everything about it.", sign: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := analyzer.Polarity(tt.text)
			if got < -1 || got > 1 {
				t.Fatalf("Polarity(%q) = %v, out of [-1, 1]", tt.text, got)
			}

			switch {
			case tt.sign == 0 && got != 0:
				t.Errorf("Polarity(%q) = %v, want 0", tt.text, got)
			case tt.sign > 0 && got <= 0:
				t.Errorf("Polarity(%q) = %v, want > 0", tt.text, got)
			case tt.sign < 0 && got >= 0:
				t.Errorf("Polarity(%q) = %v, want < 0", tt.text, got)
			}
		})
	}
}
