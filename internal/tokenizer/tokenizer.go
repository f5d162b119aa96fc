package tokenizer

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/docchunk-mcp/pkg/types"
)

// Special token ids
const (
	PadID = iota
	UnkID
	BosID
	EosID
)

// ErrVocabFull is returned when adding a token to a vocabulary at capacity
var ErrVocabFull = errors.New("vocabulary is full")

// Token is one whitespace-delimited word with its byte span in the input
type Token struct {
	ID    int    `json:"id"`
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Config holds tokenizer limits and special token strings
type Config struct {
	VocabSize int
	MaxLength int
	PadToken  string
	UnkToken  string
	BosToken  string
	EosToken  string
}

// DefaultConfig returns a 32000 entry vocabulary and 4096 token sequences
func DefaultConfig() Config {
	return Config{
		VocabSize: 32000,
		MaxLength: 4096,
		PadToken:  "<pad>",
		UnkToken:  "<unk>",
		BosToken:  "<s>",
		EosToken:  "</s>",
	}
}

// Tokenizer maps whitespace-separated words to vocabulary ids. It is safe
// for concurrent use; AddToken takes a write lock.
type Tokenizer struct {
	config Config

	mu      sync.RWMutex
	vocab   map[string]int
	reverse []string
}

// New creates a tokenizer whose vocabulary holds only the special tokens
func New(cfg Config) *Tokenizer {
	t := &Tokenizer{
		config: cfg,
		vocab:  make(map[string]int),
	}
	for _, tok := range []string{cfg.PadToken, cfg.UnkToken, cfg.BosToken, cfg.EosToken} {
		t.vocab[tok] = len(t.reverse)
		t.reverse = append(t.reverse, tok)
	}
	return t
}

// Encode splits text on Unicode whitespace. Words missing from the
// vocabulary get the unknown id. Output is truncated to MaxLength tokens.
func (t *Tokenizer) Encode(text string) ([]Token, error) {
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: text is not valid UTF-8", types.ErrInvalidInput)
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	var tokens []Token
	start := -1
	emit := func(end int) {
		word := text[start:end]
		id, ok := t.vocab[word]
		if !ok {
			id = UnkID
		}
		tokens = append(tokens, Token{ID: id, Text: word, Start: start, End: end})
		start = -1
	}

	for i, r := range text {
		if t.config.MaxLength > 0 && len(tokens) >= t.config.MaxLength {
			return tokens, nil
		}
		switch {
		case unicode.IsSpace(r):
			if start >= 0 {
				emit(i)
			}
		case start < 0:
			start = i
		}
	}
	if start >= 0 && (t.config.MaxLength <= 0 || len(tokens) < t.config.MaxLength) {
		emit(len(text))
	}

	return tokens, nil
}

// Decode joins the known ids with single spaces. Unknown ids are skipped.
func (t *Tokenizer) Decode(ids []int) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	words := make([]string, 0, len(ids))
	for _, id := range ids {
		if id >= 0 && id < len(t.reverse) {
			words = append(words, t.reverse[id])
		}
	}
	return strings.Join(words, " ")
}

// EncodeBatch encodes every text in parallel, preserving input order
func (t *Tokenizer) EncodeBatch(texts []string) ([][]Token, error) {
	results := make([][]Token, len(texts))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := range texts {
		g.Go(func() error {
			tokens, err := t.Encode(texts[i])
			if err != nil {
				return fmt.Errorf("text %d: %w", i, err)
			}
			results[i] = tokens
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// AddToken returns the id of token, adding it to the vocabulary if needed
func (t *Tokenizer) AddToken(token string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if id, ok := t.vocab[token]; ok {
		return id, nil
	}
	if t.config.VocabSize > 0 && len(t.reverse) >= t.config.VocabSize {
		return 0, fmt.Errorf("%w: %d entries", ErrVocabFull, len(t.reverse))
	}

	id := len(t.reverse)
	t.vocab[token] = id
	t.reverse = append(t.reverse, token)
	return id, nil
}

// VocabSize returns the number of entries currently in the vocabulary
func (t *Tokenizer) VocabSize() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.reverse)
}

// CountTokens counts whitespace-separated words without a vocabulary lookup
func CountTokens(text string) int {
	return len(strings.Fields(text))
}
