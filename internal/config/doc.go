// Package config loads application settings. Values are layered in this
// order, later layers winning:
//
//  1. built-in defaults
//  2. an optional YAML file
//  3. DOCCHUNK_ environment variables (DOCCHUNK_CHUNKER_CHUNK_SIZE sets chunker.chunk_size)
//
// Command-line flags are applied on top by the caller.
//
// Example file:
//
//	chunker:
//	  chunk_size: 1024
//	  chunk_overlap: 128
//	log:
//	  level: debug
//	ingest:
//	  patterns: ["docs/**/*.md"]
package config
