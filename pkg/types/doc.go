// Package types provides shared type definitions for docchunk.
//
// This package defines the domain types used across the chunker, the ingest
// pipeline, the document parser and the MCP server.
//
// # Core Types
//
// Chunk is a contiguous window of a source text plus its byte offsets and an
// estimated token count:
//
//	chunk := types.Chunk{
//	    ID:          0,
//	    Content:     "Hello world. ",
//	    StartOffset: 0,
//	    EndOffset:   13,
//	    TokenCount:  2,
//	}
//
// Content is always the exact substring text[StartOffset:EndOffset]; nothing
// is trimmed or rewritten. Validate checks this against the source:
//
//	if err := chunk.Validate(text); err != nil {
//	    log.Fatal(err)
//	}
//
// ChunkMetadata records where a chunk came from (file, heading, page). It is
// attached by pointer and every chunk owns its own copy:
//
//	meta := types.ChunkMetadata{Source: "guide.md", Section: "Install"}
//	chunk.Metadata = meta.Clone()
//
// # Parse Results
//
// ParseResult is the normalized plain-text form of a structured document
// (markdown, HTML, PDF) together with its sections or pages. Parse problems
// that do not stop extraction are collected in ParseResult.Errors.
//
// # Errors
//
// Sentinel errors live in errors.go and are wrapped with fmt.Errorf("...: %w")
// by the packages that return them, so callers test with errors.Is:
//
//	if errors.Is(err, types.ErrInvalidConfig) {
//	    // reject the request
//	}
package types
