// Package chunker divides plain text into bounded, overlapping windows for
// embedding and retrieval.
//
// The chunker prefers natural boundaries (paragraphs, lines, sentences, words)
// and falls back to a hard cut when no boundary produces a large enough window.
//
// # Basic Usage
//
//	c, err := chunker.New(chunker.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, chunk := range c.Chunk(text) {
//	    fmt.Printf("Chunk %d: bytes %d-%d, %d tokens\n",
//	        chunk.ID, chunk.StartOffset, chunk.EndOffset, chunk.TokenCount)
//	}
//
// # Boundary Selection
//
// Each window starts at an offset and may extend ChunkSize bytes. When the
// window reaches the end of the text the whole tail becomes the last chunk.
// Otherwise the window is searched for the rightmost occurrence of each
// separator, in configured priority order:
//
//	"\n\n"  paragraph
//	"\n"    line
//	". "    sentence (also "! " and "? ")
//	" "     word
//
// The cut goes after the separator. The first separator whose cut leaves at
// least MinChunkSize bytes wins; if none does, the window is cut at ChunkSize,
// backed up to a UTF-8 rune boundary.
//
// # Overlap
//
// The next window starts ChunkOverlap bytes before the previous end. Overlap
// is a plain byte subtraction and is not separator-aware, so a window may
// begin mid-word. When a separator cut is narrower than the overlap, the next
// window starts at the previous end instead so traversal always moves forward.
//
// # Chunk Contents
//
// chunk.Content is always text[StartOffset:EndOffset]. Windows that are only
// whitespace are dropped and do not consume an id, so ids are contiguous
// from 0 within one Chunk call.
//
// # Token Estimation
//
// TokenCount is the number of Unicode (UAX #29) words that contain a letter
// or digit. It is a size heuristic, not a model tokenizer.
//
// # Merging
//
// MergeSmallChunks is an explicit second pass that folds neighbours together
// while their token total stays below ChunkSize:
//
//	chunks := c.Chunk(text)
//	chunks = c.MergeSmallChunks(chunks)
//
// Merged chunks keep the first member's id, so ids may have gaps afterwards.
//
// # Batches
//
// ChunkBatch processes many documents in parallel, bounded by GOMAXPROCS.
// Output order matches input order and every document starts its ids at 0.
package chunker
