package boundary

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/docchunk-mcp/internal/chunker"
	"github.com/dshills/docchunk-mcp/pkg/types"
)

func TestMarshal(t *testing.T) {
	chunks := []types.Chunk{
		{ID: 0, Content: "Hello world. ", StartOffset: 0, EndOffset: 13, TokenCount: 2},
		{ID: 1, Content: "Bye now.", StartOffset: 13, EndOffset: 21, TokenCount: 2,
			Metadata: &types.ChunkMetadata{Source: "a.txt"}},
	}

	arr := Marshal(chunks)
	defer func() { require.NoError(t, arr.Release()) }()

	records, err := arr.Records()
	require.NoError(t, err)
	assert.Equal(t, []ChunkRecord{
		{ID: 0, Content: "Hello world. ", StartOffset: 0, EndOffset: 13, TokenCount: 2},
		{ID: 1, Content: "Bye now.", StartOffset: 13, EndOffset: 21, TokenCount: 2},
	}, records)
	assert.Equal(t, 2, arr.Len())
}

func TestRecordsReturnsCopy(t *testing.T) {
	arr := Marshal([]types.Chunk{{ID: 0, Content: "abc", EndOffset: 3, TokenCount: 1}})
	defer arr.Release()

	records, err := arr.Records()
	require.NoError(t, err)
	records[0].Content = "mutated"

	again, err := arr.Records()
	require.NoError(t, err)
	assert.Equal(t, "abc", again[0].Content)
}

func TestRelease(t *testing.T) {
	arr := Marshal([]types.Chunk{{ID: 0, Content: "abc", EndOffset: 3}})

	require.NoError(t, arr.Release())
	assert.ErrorIs(t, arr.Release(), ErrAlreadyReleased)

	_, err := arr.Records()
	assert.ErrorIs(t, err, ErrReleased)
	assert.Equal(t, 0, arr.Len())
}

func TestRelease_ConcurrentExactlyOnce(t *testing.T) {
	arr := Marshal(nil)

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if arr.Release() == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
}

func TestNewChunker(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
		wantErr bool
	}{
		{"defaults", chunker.DefaultChunkSize, chunker.DefaultChunkOverlap, false},
		{"no overlap", 200, 0, false},
		{"size equal to min chunk size", chunker.DefaultMinChunkSize, 10, false},
		{"size below min chunk size", chunker.DefaultMinChunkSize - 1, 0, true},
		{"overlap equal to size", 200, 200, true},
		{"negative overlap", 200, -1, true},
		{"zero size", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewChunker(tt.size, tt.overlap)
			if tt.wantErr {
				assert.ErrorIs(t, err, types.ErrInvalidConfig)
				assert.Nil(t, c)
				return
			}

			require.NoError(t, err)
			cfg := c.Config()
			assert.Equal(t, tt.size, cfg.ChunkSize)
			assert.Equal(t, tt.overlap, cfg.ChunkOverlap)
			assert.Equal(t, chunker.DefaultMinChunkSize, cfg.MinChunkSize)
			assert.Equal(t, chunker.DefaultSeparators(), cfg.Separators)
		})
	}
}

func TestChunkText(t *testing.T) {
	c := chunker.Default()

	arr, err := ChunkText(c, "Short document.")
	require.NoError(t, err)
	defer arr.Release()

	records, err := arr.Records()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Short document.", records[0].Content)
	assert.Equal(t, 2, records[0].TokenCount)
}

func TestChunkText_Empty(t *testing.T) {
	arr, err := ChunkText(chunker.Default(), "")
	require.NoError(t, err)
	defer arr.Release()

	assert.Equal(t, 0, arr.Len())
}

func TestChunkText_InvalidUTF8(t *testing.T) {
	arr, err := ChunkText(chunker.Default(), "bad \xff\xfe bytes")
	assert.ErrorIs(t, err, types.ErrInvalidInput)
	assert.Nil(t, arr)
}

func TestChunkTexts(t *testing.T) {
	c := chunker.Default()

	arrays, err := ChunkTexts(c, []string{"first text", "", "third text here"})
	require.NoError(t, err)
	require.Len(t, arrays, 3)
	for _, arr := range arrays {
		defer arr.Release()
	}

	assert.Equal(t, 1, arrays[0].Len())
	assert.Equal(t, 0, arrays[1].Len())
	assert.Equal(t, 1, arrays[2].Len())

	_, err = ChunkTexts(c, []string{"ok", "\xc3\x28"})
	assert.ErrorIs(t, err, types.ErrInvalidInput)
	assert.Contains(t, err.Error(), "text 1")
}
