// Package mcp implements the Model Context Protocol (MCP) server for docchunk.
//
// The server exposes the chunking engine to MCP clients as six tools:
//   - chunk_text: Split one text into bounded, overlapping chunks
//   - chunk_batch: Chunk many texts in parallel
//   - ingest_path: Parse and chunk documents from disk
//   - parse_document: Convert markdown or HTML to plain text and sections
//   - classify_query: Guess the entity types a query asks about
//   - count_tokens: Estimate the token count of a text
//
// The server speaks JSON-RPC 2.0 over stdio:
//
//	docchunk serve
//
// # Tool: chunk_text
//
//	Request:
//	{
//	  "name": "chunk_text",
//	  "arguments": {
//	    "text": "Hello world. Bye now.",
//	    "chunk_size": 512,
//	    "chunk_overlap": 64,
//	    "merge_small": false
//	  }
//	}
//
//	Response:
//	{
//	  "chunk_count": 1,
//	  "total_tokens": 4,
//	  "chunks": [
//	    {"id": 0, "content": "Hello world. Bye now.", "start_offset": 0, "end_offset": 21, "token_count": 4}
//	  ]
//	}
//
// Offsets are byte offsets into the request text. chunk_size and
// chunk_overlap override the server configuration for one call only.
//
// # Tool: ingest_path
//
//	Request:
//	{
//	  "name": "ingest_path",
//	  "arguments": {
//	    "path": "/path/to/docs",
//	    "patterns": ["**/*.md"]
//	  }
//	}
//
// Only one ingest runs at a time; a second concurrent call fails with -32002.
//
// # Error Handling
//
// Errors are returned as MCPError values carrying a JSON-RPC code:
//   - -32602: Invalid params (missing/invalid arguments)
//   - -32603: Internal error
//   - -32001: Path not found
//   - -32002: Ingest in progress
//   - -32004: Empty query
//   - -32005: Text is not valid UTF-8
//   - -32006: Invalid chunking configuration
//
// # Logging
//
// The server logs to stderr; stdout is reserved for the protocol.
package mcp
