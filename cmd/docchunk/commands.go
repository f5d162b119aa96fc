package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/docchunk-mcp/internal/chunker"
	"github.com/dshills/docchunk-mcp/internal/classifier"
	"github.com/dshills/docchunk-mcp/internal/ingest"
	"github.com/dshills/docchunk-mcp/internal/mcp"
	"github.com/dshills/docchunk-mcp/internal/parser"
)

func serveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the chunking tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := mcp.NewServer(a.cfg, a.log.With("component", "mcp"))
			if err != nil {
				return fmt.Errorf("failed to create MCP server: %w", err)
			}

			// Set up graceful shutdown
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a.log.Info("docchunk starting", "version", version)
			if err := server.Serve(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
				return fmt.Errorf("server error: %w", err)
			}

			a.log.Info("server stopped")
			return nil
		},
	}
}

func chunkCmd(a *app) *cobra.Command {
	var (
		merge    bool
		patterns []string
		compact  bool
	)

	cmd := &cobra.Command{
		Use:   "chunk <path>...",
		Short: "Chunk documents or directories and print the result as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := chunker.New(a.cfg.ToChunker())
			if err != nil {
				return err
			}
			in := ingest.New(parser.New(), c, a.log.With("component", "ingest"))

			cfg := &ingest.Config{
				Workers:      a.cfg.Ingest.Workers,
				MaxFileBytes: a.cfg.Ingest.MaxFileBytes,
				Patterns:     a.cfg.Ingest.Patterns,
				MergeSmall:   merge || a.cfg.Chunker.MergeSmall,
			}
			if len(patterns) > 0 {
				cfg.Patterns = patterns
			}

			results := make([]*ingest.Result, 0, len(args))
			for _, arg := range args {
				root, err := filepath.Abs(arg)
				if err != nil {
					return err
				}
				result, err := in.Ingest(cmd.Context(), root, cfg)
				if err != nil {
					return fmt.Errorf("%s: %w", arg, err)
				}
				results = append(results, result)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if !compact {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(results)
		},
	}

	cmd.Flags().BoolVar(&merge, "merge", false, "Merge adjacent small chunks")
	cmd.Flags().StringSliceVar(&patterns, "pattern", nil, "Glob pattern relative to each path (repeatable)")
	cmd.Flags().BoolVar(&compact, "compact", false, "Print JSON without indentation")
	return cmd
}

func classifyCmd() *cobra.Command {
	var threshold float64

	cmd := &cobra.Command{
		Use:   "classify <query>",
		Short: "Show which entity types a query asks about",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			result := classifier.Classify(query)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "primary:    %s\n", result.Primary)
			fmt.Fprintf(out, "confidence: %.2f\n", result.Confidence)
			relevant := classifier.RelevantTypes(query, threshold)
			names := make([]string, len(relevant))
			for i, qt := range relevant {
				names[i] = string(qt)
			}
			fmt.Fprintf(out, "relevant:   %s\n", strings.Join(names, ", "))
			if len(result.Signals) > 0 {
				fmt.Fprintf(out, "signals:    %s\n", strings.Join(result.Signals, ", "))
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", 0.3, "Minimum score for a relevant type")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "docchunk MCP Server\nVersion: %s\nBuild Time: %s\n", version, buildTime)
		},
	}
}
