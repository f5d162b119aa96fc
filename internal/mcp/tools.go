package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/docchunk-mcp/internal/boundary"
	"github.com/dshills/docchunk-mcp/internal/chunker"
	"github.com/dshills/docchunk-mcp/internal/classifier"
	"github.com/dshills/docchunk-mcp/internal/ingest"
	"github.com/dshills/docchunk-mcp/internal/tokenizer"
	"github.com/dshills/docchunk-mcp/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams    = -32602 // Invalid method parameters
	ErrorCodeInternalError    = -32603 // Internal JSON-RPC error
	ErrorCodePathNotFound     = -32001 // Specified path does not exist
	ErrorCodeIngestInProgress = -32002 // Another ingest operation is already running
	ErrorCodeEmptyQuery       = -32004 // Query parameter is empty
	ErrorCodeInvalidInput     = -32005 // Text is not valid UTF-8
	ErrorCodeInvalidConfig    = -32006 // Chunking parameters rejected
)

// handleChunkText handles the chunk_text tool invocation
func (s *Server) handleChunkText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	text, ok := args["text"].(string)
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "text parameter is required", map[string]interface{}{
			"param":  "text",
			"reason": "missing or not a string",
		})
	}

	c, err := s.chunkerFor(args)
	if err != nil {
		return nil, err
	}

	if err := boundary.ValidateInput(text); err != nil {
		return nil, toMCPError(err)
	}

	chunks := c.Chunk(text)
	if getBoolDefault(args, "merge_small", s.merge) {
		chunks = c.MergeSmallChunks(chunks)
	}

	arr := boundary.Marshal(chunks)
	defer func() { _ = arr.Release() }()

	records, err := arr.Records()
	if err != nil {
		return nil, toMCPError(err)
	}

	response := map[string]interface{}{
		"chunk_count":  len(records),
		"total_tokens": totalTokens(records),
		"chunks":       records,
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleChunkBatch handles the chunk_batch tool invocation
func (s *Server) handleChunkBatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	texts, ok := getStringSlice(args, "texts")
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "texts parameter must be an array of strings", map[string]interface{}{
			"param":  "texts",
			"reason": "missing or not an array of strings",
		})
	}

	c, err := s.chunkerFor(args)
	if err != nil {
		return nil, err
	}

	arrays, err := boundary.ChunkTexts(c, texts)
	if err != nil {
		return nil, toMCPError(err)
	}
	defer func() {
		for _, arr := range arrays {
			_ = arr.Release()
		}
	}()

	results := make([]map[string]interface{}, 0, len(arrays))
	total := 0
	for i, arr := range arrays {
		records, err := arr.Records()
		if err != nil {
			return nil, toMCPError(err)
		}
		total += len(records)
		results = append(results, map[string]interface{}{
			"index":       i,
			"chunk_count": len(records),
			"chunks":      records,
		})
	}

	response := map[string]interface{}{
		"text_count":  len(texts),
		"chunk_count": total,
		"results":     results,
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleIngestPath handles the ingest_path tool invocation
func (s *Server) handleIngestPath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "path parameter is required", map[string]interface{}{
			"param":  "path",
			"reason": "missing or empty",
		})
	}

	// Validate path exists and is accessible
	if err := validatePath(path); err != nil {
		code := ErrorCodeInvalidParams
		if errors.Is(err, types.ErrPathNotFound) {
			code = ErrorCodePathNotFound
		}
		return nil, newMCPError(code, "invalid path", map[string]interface{}{
			"param":  "path",
			"reason": err.Error(),
		})
	}

	c, err := s.chunkerFor(args)
	if err != nil {
		return nil, err
	}

	cfg := &ingest.Config{
		Workers:      s.ingestCfg.Workers,
		MaxFileBytes: s.ingestCfg.MaxFileBytes,
		Patterns:     s.ingestCfg.Patterns,
		MergeSmall:   getBoolDefault(args, "merge_small", s.merge),
		Chunker:      c,
	}
	if patterns, ok := getStringSlice(args, "patterns"); ok && len(patterns) > 0 {
		cfg.Patterns = patterns
	}

	result, err := s.ingester.Ingest(ctx, path, cfg)
	if err != nil {
		return nil, toMCPError(err)
	}

	stats := result.Stats
	response := map[string]interface{}{
		"files_processed": stats.FilesProcessed,
		"files_skipped":   stats.FilesSkipped,
		"files_failed":    stats.FilesFailed,
		"chunks_created":  stats.ChunksCreated,
		"duration_ms":     stats.Duration.Milliseconds(),
		"documents":       result.Documents,
	}

	if len(stats.ErrorMessages) > 0 {
		// Include first few errors
		errorCount := len(stats.ErrorMessages)
		if errorCount > 5 {
			response["errors"] = stats.ErrorMessages[:5]
			response["error_count"] = errorCount
		} else {
			response["errors"] = stats.ErrorMessages
		}
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleParseDocument handles the parse_document tool invocation
func (s *Server) handleParseDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	content, ok := args["content"].(string)
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "content parameter is required", map[string]interface{}{
			"param":  "content",
			"reason": "missing or not a string",
		})
	}

	format := types.Format(getStringDefault(args, "format", string(types.FormatMarkdown)))
	if !format.Valid() || format == types.FormatPDF {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid format", map[string]interface{}{
			"param":   "format",
			"value":   format,
			"allowed": []string{"markdown", "html", "text"},
		})
	}

	parsed, err := s.parser.ParseDocument(format, []byte(content))
	if err != nil {
		return nil, toMCPError(err)
	}

	sections := parsed.Sections
	if sections == nil {
		sections = []types.Section{}
	}
	response := map[string]interface{}{
		"format":     parsed.Format,
		"plain_text": parsed.PlainText,
		"sections":   sections,
	}
	if parsed.HasErrors() {
		messages := make([]string, len(parsed.Errors))
		for i := range parsed.Errors {
			messages[i] = parsed.Errors[i].Error()
		}
		response["errors"] = messages
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleClassifyQuery handles the classify_query tool invocation
func (s *Server) handleClassifyQuery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	query, ok := args["query"].(string)
	if !ok || query == "" {
		return nil, newMCPError(ErrorCodeEmptyQuery, "query parameter is required and cannot be empty", map[string]interface{}{
			"param":  "query",
			"reason": "missing or empty",
		})
	}

	threshold := getFloatDefault(args, "threshold", 0.3)
	if threshold < 0 || threshold > 1 {
		return nil, newMCPError(ErrorCodeInvalidParams, "threshold must be between 0.0 and 1.0", map[string]interface{}{
			"param": "threshold",
			"value": threshold,
		})
	}

	result := classifier.Classify(query)
	response := map[string]interface{}{
		"primary_type":   result.Primary,
		"confidence":     result.Confidence,
		"scores":         result.Scores,
		"signals":        result.Signals,
		"relevant_types": classifier.RelevantTypes(query, threshold),
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleCountTokens handles the count_tokens tool invocation
func (s *Server) handleCountTokens(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	text, ok := args["text"].(string)
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "text parameter is required", map[string]interface{}{
			"param":  "text",
			"reason": "missing or not a string",
		})
	}

	tokens, err := s.tokenizer.Encode(text)
	if err != nil {
		return nil, toMCPError(err)
	}
	unknown := 0
	for _, tok := range tokens {
		if tok.ID == tokenizer.UnkID {
			unknown++
		}
	}

	response := map[string]interface{}{
		"estimated_tokens": chunker.EstimateTokens(text),
		"words":            len(tokens),
		"unknown_words":    unknown,
		"bytes":            len(text),
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// chunkerFor returns the server chunker, or a boundary chunker when the
// request overrides chunk_size or chunk_overlap. Omitted values fall back to
// the server's settings; other fields keep engine defaults.
func (s *Server) chunkerFor(args map[string]interface{}) (*chunker.Chunker, error) {
	_, hasSize := args["chunk_size"]
	_, hasOverlap := args["chunk_overlap"]
	if !hasSize && !hasOverlap {
		return s.chunker, nil
	}

	base := s.chunker.Config()
	size := getIntDefault(args, "chunk_size", base.ChunkSize)
	overlap := getIntDefault(args, "chunk_overlap", base.ChunkOverlap)

	c, err := boundary.NewChunker(size, overlap)
	if err != nil {
		return nil, newMCPError(ErrorCodeInvalidConfig, "invalid chunking parameters", map[string]interface{}{
			"chunk_size":    size,
			"chunk_overlap": overlap,
			"reason":        err.Error(),
		})
	}
	return c, nil
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// toMCPError maps a domain error onto its MCP error code
func toMCPError(err error) error {
	data := map[string]interface{}{"error": err.Error()}
	switch {
	case errors.Is(err, types.ErrInvalidInput):
		return newMCPError(ErrorCodeInvalidInput, "invalid input", data)
	case errors.Is(err, types.ErrInvalidConfig):
		return newMCPError(ErrorCodeInvalidConfig, "invalid configuration", data)
	case errors.Is(err, types.ErrPathNotFound):
		return newMCPError(ErrorCodePathNotFound, "path not found", data)
	case errors.Is(err, types.ErrIngestInProgress):
		return newMCPError(ErrorCodeIngestInProgress, "ingest already in progress", data)
	case errors.Is(err, types.ErrUnsupportedFormat):
		return newMCPError(ErrorCodeInvalidParams, "unsupported format", data)
	default:
		return newMCPError(ErrorCodeInternalError, "operation failed", data)
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// validatePath checks if a path is absolute and exists
func validatePath(path string) error {
	if path == "" {
		return ErrPathRequired
	}

	if !filepath.IsAbs(path) {
		return ErrPathNotAbsolute
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", types.ErrPathNotFound, path)
		}
		return ErrPathNotReadable
	}

	return nil
}

func totalTokens(records []boundary.ChunkRecord) int {
	n := 0
	for _, r := range records {
		n += r.TokenCount
	}
	return n
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getFloatDefault extracts a numeric parameter with a default value
func getFloatDefault(args map[string]interface{}, key string, defaultValue float64) float64 {
	if val, ok := args[key].(float64); ok {
		return val
	}
	if val, ok := args[key].(int); ok {
		return float64(val)
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}

// getStringSlice extracts a string array parameter. JSON arrays decode as
// []interface{}; a []string is accepted for direct callers.
func getStringSlice(args map[string]interface{}, key string) ([]string, bool) {
	switch val := args[key].(type) {
	case []string:
		return val, true
	case []interface{}:
		out := make([]string, 0, len(val))
		for _, v := range val {
			s, ok := v.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

// Validation helpers

var (
	ErrPathRequired    = errors.New("path is required")
	ErrPathNotAbsolute = errors.New("path must be absolute")
	ErrPathNotReadable = errors.New("path is not readable")
)
