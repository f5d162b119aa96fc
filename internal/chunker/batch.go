package chunker

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/docchunk-mcp/pkg/types"
)

// ChunkBatch chunks every text in parallel. result[i] is exactly Chunk(texts[i])
// regardless of the order in which workers finish.
func (c *Chunker) ChunkBatch(texts []string) [][]types.Chunk {
	results := make([][]types.Chunk, len(texts))
	if len(texts) == 0 {
		return results
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := range texts {
		g.Go(func() error {
			// Each worker writes only its own slot
			results[i] = c.Chunk(texts[i])
			return nil
		})
	}

	// Workers never fail
	_ = g.Wait()

	return results
}
