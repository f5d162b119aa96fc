package chunker

import "github.com/dshills/docchunk-mcp/pkg/types"

// MergeSmallChunks folds adjacent chunks together while their combined token
// count stays strictly below the chunk size. The merged chunk keeps the id,
// start offset and metadata of its first member; ids are not renumbered.
// Contents are concatenated as-is, so merging overlapping chunks repeats the
// overlapped text. The input slice must not be used afterwards.
func (c *Chunker) MergeSmallChunks(chunks []types.Chunk) []types.Chunk {
	if len(chunks) == 0 {
		return nil
	}

	merged := make([]types.Chunk, 0, len(chunks))
	acc := chunks[0]

	for _, next := range chunks[1:] {
		if acc.TokenCount+next.TokenCount < c.config.ChunkSize {
			acc.Content += next.Content
			acc.EndOffset = next.EndOffset
			acc.TokenCount += next.TokenCount
			continue
		}
		merged = append(merged, acc)
		acc = next
	}
	merged = append(merged, acc)

	return merged
}
