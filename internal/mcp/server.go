package mcp

import (
	"context"
	"fmt"
	"io"

	"github.com/mark3labs/mcp-go/server"

	"github.com/dshills/docchunk-mcp/internal/chunker"
	"github.com/dshills/docchunk-mcp/internal/config"
	"github.com/dshills/docchunk-mcp/internal/ingest"
	"github.com/dshills/docchunk-mcp/internal/logger"
	"github.com/dshills/docchunk-mcp/internal/parser"
	"github.com/dshills/docchunk-mcp/internal/tokenizer"
)

const (
	// ServerName is the MCP server name
	ServerName = "docchunk-mcp"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp       *server.MCPServer
	chunker   *chunker.Chunker
	parser    *parser.Parser
	ingester  *ingest.Ingester
	tokenizer *tokenizer.Tokenizer
	ingestCfg config.IngestConfig
	merge     bool
	log       logger.Logger
}

// NewServer creates a new MCP server instance. A nil cfg uses the built-in
// defaults and a nil log discards output.
func NewServer(cfg *config.Config, log logger.Logger) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logger.Nop()
	}

	c, err := chunker.New(cfg.ToChunker())
	if err != nil {
		return nil, fmt.Errorf("failed to create chunker: %w", err)
	}

	p := parser.New()

	s := &Server{
		mcp:       server.NewMCPServer(ServerName, ServerVersion, server.WithToolCapabilities(false)),
		chunker:   c,
		parser:    p,
		ingester:  ingest.New(p, c, log.With("component", "ingest")),
		tokenizer: tokenizer.New(tokenizer.DefaultConfig()),
		ingestCfg: cfg.Ingest,
		merge:     cfg.Chunker.MergeSmall,
		log:       log,
	}

	// Register tools
	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return s, nil
}

// Serve speaks MCP over the given streams and blocks until ctx is cancelled
// or in is closed
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	s.log.Info("mcp server listening", "name", ServerName, "version", ServerVersion)
	return server.NewStdioServer(s.mcp).Listen(ctx, in, out)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() error {
	s.mcp.AddTool(chunkTextTool(), s.handleChunkText)
	s.mcp.AddTool(chunkBatchTool(), s.handleChunkBatch)
	s.mcp.AddTool(ingestPathTool(), s.handleIngestPath)
	s.mcp.AddTool(parseDocumentTool(), s.handleParseDocument)
	s.mcp.AddTool(classifyQueryTool(), s.handleClassifyQuery)
	s.mcp.AddTool(countTokensTool(), s.handleCountTokens)

	return nil
}
