package chunker

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/docchunk-mcp/pkg/types"
)

// Chunker splits text into bounded, optionally overlapping windows.
// A Chunker is immutable and safe for concurrent use.
type Chunker struct {
	config Config
}

// New validates cfg and creates a Chunker that owns a private copy of it
func New(cfg Config) (*Chunker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Chunker{config: cfg.clone()}, nil
}

// Default creates a Chunker with the engine defaults
func Default() *Chunker {
	return &Chunker{config: DefaultConfig()}
}

// Config returns a copy of the chunker configuration
func (c *Chunker) Config() Config {
	return c.config.clone()
}

// Chunk splits text into windows. Empty input yields no chunks.
func (c *Chunker) Chunk(text string) []types.Chunk {
	if text == "" {
		return nil
	}

	chunks := make([]types.Chunk, 0, len(text)/c.config.ChunkSize+1)
	start := 0
	id := 0

	for start < len(text) {
		end := c.findChunkEnd(text, start)
		content := text[start:end]

		// Whitespace-only windows are skipped and do not consume an id
		if strings.TrimSpace(content) != "" {
			chunks = append(chunks, types.Chunk{
				ID:          id,
				Content:     content,
				StartOffset: start,
				EndOffset:   end,
				TokenCount:  EstimateTokens(content),
			})
			id++
		}

		if end >= len(text) {
			break
		}
		start = c.nextStart(text, start, end)
	}

	return chunks
}

// ChunkWithMetadata chunks text and attaches a private copy of meta to every chunk
func (c *Chunker) ChunkWithMetadata(text string, meta types.ChunkMetadata) []types.Chunk {
	chunks := c.Chunk(text)
	for i := range chunks {
		chunks[i].Metadata = meta.Clone()
	}
	return chunks
}

// findChunkEnd picks the end offset of the window starting at start.
// The result is always in (start, len(text)] and on a rune boundary.
func (c *Chunker) findChunkEnd(text string, start int) int {
	maxEnd := min(start+c.config.ChunkSize, len(text))

	// The tail is always taken whole
	if maxEnd >= len(text) {
		return len(text)
	}

	region := text[start:maxEnd]
	for _, sep := range c.config.Separators {
		pos := strings.LastIndex(region, sep)
		if pos < 0 {
			continue
		}
		end := start + pos + len(sep)
		if end-start >= c.config.MinChunkSize {
			return end
		}
	}

	return hardCut(text, start, maxEnd)
}

// hardCut moves maxEnd off a multi-byte sequence. It prefers backing up to
// the rune start and only steps forward when backing up would not advance.
func hardCut(text string, start, maxEnd int) int {
	end := maxEnd
	for end > start && !utf8.RuneStart(text[end]) {
		end--
	}
	if end > start {
		return end
	}

	end = maxEnd
	for end < len(text) && !utf8.RuneStart(text[end]) {
		end++
	}
	return end
}

// nextStart computes where the window after [start, end) begins.
// Overlap is a raw byte subtraction and may land mid-word.
func (c *Chunker) nextStart(text string, start, end int) int {
	overlap := c.config.ChunkOverlap
	if overlap <= 0 || end <= overlap {
		return end
	}

	next := end - overlap
	for next > start && !utf8.RuneStart(text[next]) {
		next--
	}

	// Short separator windows can be narrower than the overlap
	if next <= start {
		return end
	}
	return next
}
