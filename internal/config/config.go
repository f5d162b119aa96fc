package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dshills/docchunk-mcp/internal/chunker"
	"github.com/dshills/docchunk-mcp/internal/logger"
	"github.com/dshills/docchunk-mcp/pkg/types"
)

// Config is the application configuration
type Config struct {
	Chunker ChunkerConfig `koanf:"chunker"`
	Log     LogConfig     `koanf:"log"`
	Ingest  IngestConfig  `koanf:"ingest"`
}

// ChunkerConfig mirrors chunker.Config with configuration key names
type ChunkerConfig struct {
	ChunkSize         int      `koanf:"chunk_size"`
	ChunkOverlap      int      `koanf:"chunk_overlap"`
	MinChunkSize      int      `koanf:"min_chunk_size"`
	Separators        []string `koanf:"separators"`
	PreserveSentences bool     `koanf:"preserve_sentences"`
	MergeSmall        bool     `koanf:"merge_small"`
}

type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error disabled"`
	JSON  bool   `koanf:"json"`
}

type IngestConfig struct {
	// Workers bounds concurrent document processing; 0 means GOMAXPROCS
	Workers      int      `koanf:"workers" validate:"gte=0"`
	MaxFileBytes int64    `koanf:"max_file_bytes" validate:"gt=0"`
	Patterns     []string `koanf:"patterns" validate:"min=1,dive,required"`
}

// DefaultPatterns lists the files picked up by ingest when none are configured
func DefaultPatterns() []string {
	return []string{"**/*.{md,markdown,txt,html,htm,pdf}"}
}

// Default returns the built-in configuration
func Default() *Config {
	cc := chunker.DefaultConfig()
	return &Config{
		Chunker: ChunkerConfig{
			ChunkSize:         cc.ChunkSize,
			ChunkOverlap:      cc.ChunkOverlap,
			MinChunkSize:      cc.MinChunkSize,
			Separators:        cc.Separators,
			PreserveSentences: cc.PreserveSentences,
		},
		Log: LogConfig{
			Level: string(logger.InfoLevel),
		},
		Ingest: IngestConfig{
			MaxFileBytes: 10 * 1024 * 1024,
			Patterns:     DefaultPatterns(),
		},
	}
}

// ToChunker converts the chunker section into an engine configuration
func (c *Config) ToChunker() chunker.Config {
	return chunker.Config{
		ChunkSize:         c.Chunker.ChunkSize,
		ChunkOverlap:      c.Chunker.ChunkOverlap,
		MinChunkSize:      c.Chunker.MinChunkSize,
		Separators:        c.Chunker.Separators,
		PreserveSentences: c.Chunker.PreserveSentences,
	}
}

// ToLogger converts the log section into a logger configuration
func (c *Config) ToLogger() *logger.Config {
	cfg := logger.DefaultConfig()
	cfg.Level = logger.Level(c.Log.Level)
	cfg.JSON = c.Log.JSON
	return cfg
}

var validate = validator.New()

// Validate checks every section. Errors wrap types.ErrInvalidConfig.
func (c *Config) Validate() error {
	if err := c.ToChunker().Validate(); err != nil {
		return err
	}

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
		msgs = append(msgs, fmt.Sprintf("%s: failed %q validation", keyPath(fe.Namespace()), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", types.ErrInvalidConfig, strings.Join(msgs, "; "))
}

// keyPath turns "Config.Ingest.MaxFileBytes" into "ingest.max_file_bytes"
func keyPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = snake(p)
	}
	return strings.Join(parts, ".")
}

func snake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && s[i-1] != '[' {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
