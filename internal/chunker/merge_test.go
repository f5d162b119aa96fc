package chunker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/docchunk-mcp/pkg/types"
)

// chunksWithTokens builds consecutive single-letter chunks with the given token counts
func chunksWithTokens(counts ...int) []types.Chunk {
	chunks := make([]types.Chunk, len(counts))
	for i, n := range counts {
		chunks[i] = types.Chunk{
			ID:          i,
			Content:     string(rune('a' + i)),
			TokenCount:  n,
			StartOffset: i,
			EndOffset:   i + 1,
		}
	}
	return chunks
}

func TestMergeSmallChunks(t *testing.T) {
	c := newTestChunker(t, Config{ChunkSize: 10})

	tests := []struct {
		name        string
		counts      []int
		wantIDs     []int
		wantTokens  []int
		wantContent []string
	}{
		{
			name:        "all fit in one",
			counts:      []int{2, 3, 1},
			wantIDs:     []int{0},
			wantTokens:  []int{6},
			wantContent: []string{"abc"},
		},
		{
			name:        "flush when sum reaches limit",
			counts:      []int{6, 5, 2},
			wantIDs:     []int{0, 1},
			wantTokens:  []int{6, 7},
			wantContent: []string{"a", "bc"},
		},
		{
			name:        "sum equal to chunk size is not merged",
			counts:      []int{5, 5},
			wantIDs:     []int{0, 1},
			wantTokens:  []int{5, 5},
			wantContent: []string{"a", "b"},
		},
		{
			name:        "ids are not renumbered",
			counts:      []int{1, 1, 9},
			wantIDs:     []int{0, 2},
			wantTokens:  []int{2, 9},
			wantContent: []string{"ab", "c"},
		},
		{
			name:        "single chunk",
			counts:      []int{42},
			wantIDs:     []int{0},
			wantTokens:  []int{42},
			wantContent: []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged := c.MergeSmallChunks(chunksWithTokens(tt.counts...))
			require.Len(t, merged, len(tt.wantIDs))

			for i, m := range merged {
				assert.Equal(t, tt.wantIDs[i], m.ID)
				assert.Equal(t, tt.wantTokens[i], m.TokenCount)
				assert.Equal(t, tt.wantContent[i], m.Content)
				assert.Equal(t, m.StartOffset+len(m.Content), m.EndOffset)
			}
		})
	}
}

func TestMergeSmallChunks_Empty(t *testing.T) {
	assert.Empty(t, Default().MergeSmallChunks(nil))
	assert.Empty(t, Default().MergeSmallChunks([]types.Chunk{}))
}

func TestMergeSmallChunks_KeepsFirstMetadata(t *testing.T) {
	c := newTestChunker(t, Config{ChunkSize: 10})
	chunks := chunksWithTokens(1, 1)
	chunks[0].Metadata = &types.ChunkMetadata{Section: "first"}
	chunks[1].Metadata = &types.ChunkMetadata{Section: "second"}

	merged := c.MergeSmallChunks(chunks)
	require.Len(t, merged, 1)
	require.NotNil(t, merged[0].Metadata)
	assert.Equal(t, "first", merged[0].Metadata.Section)
}

func TestMergeSmallChunks_AfterChunk(t *testing.T) {
	c := newTestChunker(t, Config{ChunkSize: 40, MinChunkSize: 5, Separators: []string{". "}})
	text := "One. Two. Three. Four. Five. Six. Seven. Eight."

	chunks := c.Chunk(text)
	merged := c.MergeSmallChunks(chunks)

	require.NotEmpty(t, merged)
	assert.LessOrEqual(t, len(merged), len(chunks))

	total := 0
	for _, m := range merged {
		total += m.TokenCount
	}
	assert.Equal(t, 8, total)
	assert.Equal(t, 0, merged[0].StartOffset)
	assert.Equal(t, len(text), merged[len(merged)-1].EndOffset)
}
