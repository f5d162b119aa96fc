package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// chunkingProperties are the boundary parameters shared by the chunking tools
func chunkingProperties() map[string]interface{} {
	return map[string]interface{}{
		"chunk_size": map[string]interface{}{
			"type":        "integer",
			"description": "Maximum chunk length in bytes (at least 100)",
			"minimum":     100,
		},
		"chunk_overlap": map[string]interface{}{
			"type":        "integer",
			"description": "Bytes repeated at the start of each following chunk (smaller than chunk_size)",
			"minimum":     0,
		},
	}
}

// chunkTextTool returns the tool definition for chunk_text
func chunkTextTool() mcp.Tool {
	props := chunkingProperties()
	props["text"] = map[string]interface{}{
		"type":        "string",
		"description": "UTF-8 text to split into chunks",
	}
	props["merge_small"] = map[string]interface{}{
		"type":        "boolean",
		"description": "If true, fold adjacent small chunks together after chunking",
	}

	return mcp.Tool{
		Name:        "chunk_text",
		Description: "Split a text into bounded, optionally overlapping chunks with byte offsets and token estimates",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: props,
			Required:   []string{"text"},
		},
	}
}

// chunkBatchTool returns the tool definition for chunk_batch
func chunkBatchTool() mcp.Tool {
	props := chunkingProperties()
	props["texts"] = map[string]interface{}{
		"type":        "array",
		"description": "Texts to chunk independently; results keep input order",
		"items": map[string]interface{}{
			"type": "string",
		},
	}

	return mcp.Tool{
		Name:        "chunk_batch",
		Description: "Chunk many texts in parallel",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: props,
			Required:   []string{"texts"},
		},
	}
}

// ingestPathTool returns the tool definition for ingest_path
func ingestPathTool() mcp.Tool {
	props := chunkingProperties()
	props["path"] = map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to a document or a directory of documents",
	}
	props["patterns"] = map[string]interface{}{
		"type":        "array",
		"description": "Glob patterns relative to path (e.g., 'docs/**/*.md')",
		"items": map[string]interface{}{
			"type": "string",
		},
	}
	props["merge_small"] = map[string]interface{}{
		"type":        "boolean",
		"description": "If true, fold adjacent small chunks together",
	}

	return mcp.Tool{
		Name:        "ingest_path",
		Description: "Parse and chunk markdown, HTML, text and PDF documents from disk",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: props,
			Required:   []string{"path"},
		},
	}
}

// parseDocumentTool returns the tool definition for parse_document
func parseDocumentTool() mcp.Tool {
	return mcp.Tool{
		Name:        "parse_document",
		Description: "Convert markdown or HTML to plain text and split it into titled sections",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"content": map[string]interface{}{
					"type":        "string",
					"description": "Document source",
				},
				"format": map[string]interface{}{
					"type":        "string",
					"description": "Source format",
					"enum":        []string{"markdown", "html", "text"},
					"default":     "markdown",
				},
			},
			Required: []string{"content"},
		},
	}
}

// classifyQueryTool returns the tool definition for classify_query
func classifyQueryTool() mcp.Tool {
	return mcp.Tool{
		Name:        "classify_query",
		Description: "Guess whether a query asks about dates, people, organizations or amounts",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query",
				},
				"threshold": map[string]interface{}{
					"type":        "number",
					"description": "Minimum score for a category to be listed as relevant (0.0-1.0)",
					"default":     0.3,
					"minimum":     0.0,
					"maximum":     1.0,
				},
			},
			Required: []string{"query"},
		},
	}
}

// countTokensTool returns the tool definition for count_tokens
func countTokensTool() mcp.Tool {
	return mcp.Tool{
		Name:        "count_tokens",
		Description: "Estimate the token count of a text",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Text to measure",
				},
			},
			Required: []string{"text"},
		},
	}
}
