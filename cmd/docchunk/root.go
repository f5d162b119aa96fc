package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/docchunk-mcp/internal/config"
	"github.com/dshills/docchunk-mcp/internal/logger"
)

// app carries state resolved once in PersistentPreRunE
type app struct {
	cfg *config.Config
	log logger.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "docchunk",
		Short:         "docchunk - document chunking for retrieval pipelines",
		Long:          "Split documents into bounded, overlapping chunks and serve the engine over MCP.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	// Global flags
	flags := root.PersistentFlags()
	flags.String("config", "", "Path to a YAML config file")
	flags.String("log-level", "", "Log level (debug, info, warn, error, disabled)")
	flags.Bool("log-json", false, "Write logs as JSON")
	flags.Int("chunk-size", 0, "Maximum chunk length in bytes")
	flags.Int("chunk-overlap", 0, "Bytes repeated between neighbouring chunks")

	root.AddCommand(
		serveCmd(a),
		chunkCmd(a),
		classifyCmd(),
		versionCmd(),
	)

	return root
}

// setup loads configuration, applies explicitly set flags on top and
// initializes logging. Logs always go to stderr.
func (a *app) setup(cmd *cobra.Command) error {
	flags := cmd.Flags()

	path, _ := flags.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-json") {
		cfg.Log.JSON, _ = flags.GetBool("log-json")
	}
	if flags.Changed("chunk-size") {
		cfg.Chunker.ChunkSize, _ = flags.GetInt("chunk-size")
	}
	if flags.Changed("chunk-overlap") {
		cfg.Chunker.ChunkOverlap, _ = flags.GetInt("chunk-overlap")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Init(cfg.ToLogger())
	a.cfg = cfg
	a.log = logger.Default()
	return nil
}
