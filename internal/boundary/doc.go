// Package boundary is the surface through which chunk sequences leave the
// engine. Callers outside the process (the MCP server, the CLI) never see
// engine-owned slices; they receive a ChunkArray of fixed-layout records
// whose strings are private copies.
//
// Every ChunkArray must be released exactly once:
//
//	arr, err := boundary.ChunkText(c, text)
//	if err != nil {
//		return err
//	}
//	defer arr.Release()
//
// Only chunk size and overlap can be tuned here. The remaining settings keep
// the engine defaults, so NewChunker rejects sizes below the default minimum
// chunk size.
package boundary
