package chunker

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dshills/docchunk-mcp/pkg/types"
)

const (
	// DefaultChunkSize is the maximum window length in bytes
	DefaultChunkSize = 512

	// DefaultChunkOverlap is the number of bytes repeated between windows
	DefaultChunkOverlap = 64

	// DefaultMinChunkSize is the smallest window a separator cut may produce
	DefaultMinChunkSize = 100
)

// DefaultSeparators returns the separator list in priority order
func DefaultSeparators() []string {
	return []string{"\n\n", "\n", ". ", "! ", "? ", " "}
}

// Config controls how text is split into chunks. It is copied into the
// Chunker at construction and never changes afterwards.
type Config struct {
	ChunkSize         int      `validate:"gt=0"`
	ChunkOverlap      int      `validate:"gte=0,ltfield=ChunkSize"`
	MinChunkSize      int      `validate:"gte=0,ltefield=ChunkSize"`
	Separators        []string `validate:"dive,required"`
	PreserveSentences bool
}

// DefaultConfig returns the engine defaults
func DefaultConfig() Config {
	return Config{
		ChunkSize:         DefaultChunkSize,
		ChunkOverlap:      DefaultChunkOverlap,
		MinChunkSize:      DefaultMinChunkSize,
		Separators:        DefaultSeparators(),
		PreserveSentences: true,
	}
}

var validate = validator.New()

// Validate checks the configuration. Every error wraps types.ErrInvalidConfig.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", types.ErrInvalidConfig, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, c.describe(fe))
	}
	return fmt.Errorf("%w: %s", types.ErrInvalidConfig, strings.Join(msgs, "; "))
}

// describe turns a validator failure into a message using config key names
func (c Config) describe(fe validator.FieldError) string {
	switch fe.StructField() {
	case "ChunkSize":
		return fmt.Sprintf("chunk_size must be greater than 0, got %d", c.ChunkSize)
	case "ChunkOverlap":
		if fe.Tag() == "ltfield" {
			return fmt.Sprintf("chunk_overlap %d must be smaller than chunk_size %d", c.ChunkOverlap, c.ChunkSize)
		}
		return fmt.Sprintf("chunk_overlap cannot be negative, got %d", c.ChunkOverlap)
	case "MinChunkSize":
		if fe.Tag() == "ltefield" {
			return fmt.Sprintf("min_chunk_size %d must not exceed chunk_size %d", c.MinChunkSize, c.ChunkSize)
		}
		return fmt.Sprintf("min_chunk_size cannot be negative, got %d", c.MinChunkSize)
	default:
		if strings.HasPrefix(fe.Namespace(), "Config.Separators") {
			return "separators cannot contain empty strings"
		}
		return fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag())
	}
}

// clone returns a copy that shares no memory with c
func (c Config) clone() Config {
	c.Separators = slices.Clone(c.Separators)
	return c
}
