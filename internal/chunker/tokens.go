package chunker

import (
	"unicode"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/words"
)

// EstimateTokens counts the UAX #29 words in text that contain at least one
// letter or number. Punctuation and whitespace segments are not counted.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}

	count := 0
	seg := words.NewSegmenter([]byte(text))
	for seg.Next() {
		if isWordlike(seg.Bytes()) {
			count++
		}
	}
	return count
}

func isWordlike(token []byte) bool {
	for len(token) > 0 {
		r, size := utf8.DecodeRune(token)
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
		token = token[size:]
	}
	return false
}
