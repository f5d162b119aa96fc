package boundary

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/dshills/docchunk-mcp/internal/chunker"
	"github.com/dshills/docchunk-mcp/pkg/types"
)

var (
	// ErrReleased is returned when reading an array after Release
	ErrReleased = errors.New("chunk array already released")

	// ErrAlreadyReleased is returned by a second call to Release
	ErrAlreadyReleased = errors.New("chunk array released twice")
)

// ChunkRecord is the fixed-layout form of a chunk handed across the boundary
type ChunkRecord struct {
	ID          int    `json:"id"`
	Content     string `json:"content"`
	StartOffset int    `json:"start_offset"`
	EndOffset   int    `json:"end_offset"`
	TokenCount  int    `json:"token_count"`
}

// ChunkArray owns a set of records until it is released
type ChunkArray struct {
	mu       sync.Mutex
	records  []ChunkRecord
	released bool
}

// Marshal copies chunks into a new array. The array shares no memory with
// chunks or with the text they were cut from.
func Marshal(chunks []types.Chunk) *ChunkArray {
	records := make([]ChunkRecord, len(chunks))
	for i, c := range chunks {
		records[i] = ChunkRecord{
			ID:          c.ID,
			Content:     strings.Clone(c.Content),
			StartOffset: c.StartOffset,
			EndOffset:   c.EndOffset,
			TokenCount:  c.TokenCount,
		}
	}
	return &ChunkArray{records: records}
}

// Len returns the number of records, or 0 once released
func (a *ChunkArray) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.records)
}

// Records returns a copy of the records
func (a *ChunkArray) Records() ([]ChunkRecord, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.released {
		return nil, ErrReleased
	}

	out := make([]ChunkRecord, len(a.records))
	copy(out, a.records)
	return out, nil
}

// Release drops the records. It must be called exactly once per array.
func (a *ChunkArray) Release() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.released {
		return ErrAlreadyReleased
	}
	a.released = true
	a.records = nil
	return nil
}

// NewChunker builds a chunker from the two parameters tunable at the boundary
func NewChunker(chunkSize, chunkOverlap int) (*chunker.Chunker, error) {
	cfg := chunker.DefaultConfig()
	cfg.ChunkSize = chunkSize
	cfg.ChunkOverlap = chunkOverlap

	c, err := chunker.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("boundary chunker: %w", err)
	}
	return c, nil
}

// ValidateInput rejects text the engine cannot process
func ValidateInput(text string) error {
	if !utf8.ValidString(text) {
		return fmt.Errorf("%w: text is not valid UTF-8", types.ErrInvalidInput)
	}
	return nil
}

// ChunkText validates text, chunks it and marshals the result
func ChunkText(c *chunker.Chunker, text string) (*ChunkArray, error) {
	if err := ValidateInput(text); err != nil {
		return nil, err
	}
	return Marshal(c.Chunk(text)), nil
}

// ChunkTexts validates every text before chunking the batch. The returned
// arrays are in input order and each must be released.
func ChunkTexts(c *chunker.Chunker, texts []string) ([]*ChunkArray, error) {
	for i, text := range texts {
		if err := ValidateInput(text); err != nil {
			return nil, fmt.Errorf("text %d: %w", i, err)
		}
	}

	results := c.ChunkBatch(texts)
	arrays := make([]*ChunkArray, len(results))
	for i, chunks := range results {
		arrays[i] = Marshal(chunks)
	}
	return arrays, nil
}
