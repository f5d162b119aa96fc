package types

import (
	"errors"
	"fmt"
	"strings"
)

// ChunkMetadata describes where a chunk came from. All fields are optional;
// the zero value means "not set". Pages are 1-based.
type ChunkMetadata struct {
	Source  string `json:"source,omitempty"`
	Section string `json:"section,omitempty"`
	Page    int    `json:"page,omitempty"`
}

// Clone returns a deep copy of the metadata
func (m ChunkMetadata) Clone() *ChunkMetadata {
	return &ChunkMetadata{
		Source:  strings.Clone(m.Source),
		Section: strings.Clone(m.Section),
		Page:    m.Page,
	}
}

// Chunk is a contiguous window of a source text ready for embedding
type Chunk struct {
	// Identification
	ID int `json:"id"`

	// Content is source[StartOffset:EndOffset], untransformed
	Content    string `json:"content"`
	TokenCount int    `json:"token_count"`

	// Location (byte offsets into the source text)
	StartOffset int `json:"start_offset"`
	EndOffset   int `json:"end_offset"`

	// Metadata is nil unless the caller attached some
	Metadata *ChunkMetadata `json:"metadata,omitempty"`
}

// ValidateContent checks the chunk's own fields
func (c *Chunk) ValidateContent() error {
	if strings.TrimSpace(c.Content) == "" {
		return ErrEmptyContent
	}

	if c.StartOffset < 0 {
		return errors.New("start offset must not be negative")
	}

	if c.StartOffset >= c.EndOffset {
		return errors.New("start offset must be before end offset")
	}

	return nil
}

// Validate checks the chunk against the text it was cut from
func (c *Chunk) Validate(source string) error {
	if err := c.ValidateContent(); err != nil {
		return err
	}

	if c.EndOffset > len(source) {
		return fmt.Errorf("%w: end offset %d exceeds text length %d", ErrInvalidOffsets, c.EndOffset, len(source))
	}

	if source[c.StartOffset:c.EndOffset] != c.Content {
		return fmt.Errorf("%w: content does not match source[%d:%d]", ErrInvalidOffsets, c.StartOffset, c.EndOffset)
	}

	return nil
}

// Len returns the length of the covered source range in bytes
func (c *Chunk) Len() int {
	return c.EndOffset - c.StartOffset
}
