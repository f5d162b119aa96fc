package chunker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"   \n\t", 0},
		{"Hello, world!", 2},
		{"naïve café", 2},
		{"3 apples", 2},
		{"don't stop", 2},
		{"... --- !!!", 0},
		{"one two three four five", 5},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateTokens(tt.text))
		})
	}
}

func BenchmarkEstimateTokens(b *testing.B) {
	text := "The quick brown fox jumps over the lazy dog. "
	for i := 0; i < 8; i++ {
		text += text
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = EstimateTokens(text)
	}
}
