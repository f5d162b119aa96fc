package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/docchunk-mcp/internal/chunker"
	"github.com/dshills/docchunk-mcp/internal/logger"
	"github.com/dshills/docchunk-mcp/internal/parser"
	"github.com/dshills/docchunk-mcp/pkg/types"
)

// Ingester runs the pipeline: discover -> decode -> parse -> chunk
type Ingester struct {
	parser  *parser.Parser
	chunker *chunker.Chunker
	log     logger.Logger
	lock    Lock
}

// Config contains per-run options
type Config struct {
	Workers      int      // Concurrent documents (default: runtime.NumCPU())
	MaxFileBytes int64    // Larger files are skipped (default: 10 MiB)
	Patterns     []string // Doublestar patterns matched against slash paths relative to the root
	MergeSmall   bool     // Run the merge pass on every chunk group

	// Chunker replaces the Ingester's chunker for this run when set
	Chunker *chunker.Chunker
}

// run holds the settings shared by every file of one Ingest call
type run struct {
	chunker    *chunker.Chunker
	base       string
	maxBytes   int64
	mergeSmall bool
}

// DefaultConfig returns the options used when Ingest gets a nil config
func DefaultConfig() *Config {
	return &Config{
		Workers:      runtime.NumCPU(),
		MaxFileBytes: 10 * 1024 * 1024,
		Patterns:     []string{"**/*.{md,markdown,txt,html,htm,pdf}"},
	}
}

// Document is one ingested file and its chunks
type Document struct {
	ID          string        `json:"id"`
	Path        string        `json:"path"`
	Format      types.Format  `json:"format"`
	Encoding    string        `json:"encoding"`
	ContentHash string        `json:"content_hash"`
	SizeBytes   int64         `json:"size_bytes"`
	Chunks      []types.Chunk `json:"chunks"`
	ParseErrors []string      `json:"parse_errors,omitempty"`
}

// Statistics summarizes an ingest run
type Statistics struct {
	FilesProcessed int           `json:"files_processed"`
	FilesSkipped   int           `json:"files_skipped"`
	FilesFailed    int           `json:"files_failed"`
	ChunksCreated  int           `json:"chunks_created"`
	Duration       time.Duration `json:"duration_ns"`
	ErrorMessages  []string      `json:"errors,omitempty"`
}

// Result holds documents in discovery order plus run statistics
type Result struct {
	Documents []Document `json:"documents"`
	Stats     Statistics `json:"stats"`
}

// New creates an Ingester. A nil log discards output.
func New(p *parser.Parser, c *chunker.Chunker, log logger.Logger) *Ingester {
	if log == nil {
		log = logger.Nop()
	}
	return &Ingester{parser: p, chunker: c, log: log}
}

// Ingest chunks every matching document under root, or root itself when it
// is a file. Only one run may be active per Ingester; concurrent calls fail
// with types.ErrIngestInProgress. Per-file failures are counted and reported
// in the statistics without aborting the run.
func (in *Ingester) Ingest(ctx context.Context, root string, cfg *Config) (*Result, error) {
	if !in.lock.TryAcquire() {
		return nil, types.ErrIngestInProgress
	}
	defer in.lock.Release()

	if cfg == nil {
		cfg = DefaultConfig()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	maxBytes := cfg.MaxFileBytes
	if maxBytes <= 0 {
		maxBytes = DefaultConfig().MaxFileBytes
	}
	patterns := cfg.Patterns
	if len(patterns) == 0 {
		patterns = DefaultConfig().Patterns
	}
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("%w: bad pattern %q", types.ErrInvalidConfig, p)
		}
	}

	start := time.Now()
	files, base, err := discoverFiles(root, patterns)
	if err != nil {
		return nil, err
	}
	in.log.Info("ingest started", "root", root, "files", len(files), "workers", workers)

	r := &run{chunker: in.chunker, base: base, maxBytes: maxBytes, mergeSmall: cfg.MergeSmall}
	if cfg.Chunker != nil {
		r.chunker = cfg.Chunker
	}

	result := &Result{Documents: make([]Document, 0, len(files))}
	docs, err := in.processFiles(ctx, r, files, workers, &result.Stats)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		if d != nil {
			result.Documents = append(result.Documents, *d)
		}
	}

	result.Stats.Duration = time.Since(start)
	in.log.Info("ingest finished",
		"processed", result.Stats.FilesProcessed,
		"skipped", result.Stats.FilesSkipped,
		"failed", result.Stats.FilesFailed,
		"chunks", result.Stats.ChunksCreated,
		"duration", result.Stats.Duration)

	return result, nil
}

// discoverFiles lists the files to ingest and the directory their paths are
// relative to. Hidden directories are skipped.
func discoverFiles(root string, patterns []string) ([]string, string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("%w: %s", types.ErrPathNotFound, root)
		}
		return nil, "", err
	}

	if !info.IsDir() {
		return []string{root}, filepath.Dir(root), nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if matchAny(patterns, filepath.ToSlash(rel)) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to discover files: %w", err)
	}

	return files, root, nil
}

func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// processFiles handles files concurrently. docs[i] belongs to files[i] and is
// nil when the file was skipped or failed.
func (in *Ingester) processFiles(ctx context.Context, r *run, files []string, workers int,
	stats *Statistics) ([]*Document, error) {

	semaphore := make(chan struct{}, workers)
	docs := make([]*Document, len(files))

	var (
		processed int32
		skipped   int32
		failed    int32
		chunks    int32
		mu        sync.Mutex // protects stats.ErrorMessages
	)

	g, gctx := errgroup.WithContext(ctx)
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			doc, err := in.processFile(r, path)
			switch {
			case errors.Is(err, errSkipped):
				atomic.AddInt32(&skipped, 1)
				in.log.Debug("skipped file", "path", path, "reason", err)
			case err != nil:
				atomic.AddInt32(&failed, 1)
				in.log.Warn("failed to ingest file", "path", path, "error", err)
				mu.Lock()
				stats.ErrorMessages = append(stats.ErrorMessages, fmt.Sprintf("%s: %v", path, err))
				mu.Unlock()
			default:
				docs[i] = doc
				atomic.AddInt32(&processed, 1)
				atomic.AddInt32(&chunks, int32(len(doc.Chunks)))
				in.log.Debug("ingested file", "path", doc.Path, "format", doc.Format, "chunks", len(doc.Chunks))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.FilesProcessed = int(processed)
	stats.FilesSkipped = int(skipped)
	stats.FilesFailed = int(failed)
	stats.ChunksCreated = int(chunks)

	return docs, nil
}

var errSkipped = errors.New("skipped")

// processFile reads, decodes, parses and chunks one file
func (in *Ingester) processFile(r *run, path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > r.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", errSkipped, info.Size(), r.maxBytes)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	format := parser.DetectFormat(path, content)
	if format == "" {
		return nil, fmt.Errorf("%w: unsupported content", errSkipped)
	}

	hash := sha256.Sum256(content)
	decoded, encoding, err := decodeText(content, format)
	if err != nil {
		return nil, err
	}

	parsed, err := in.parser.ParseDocument(format, decoded)
	if err != nil {
		return nil, err
	}

	rel, err := filepath.Rel(r.base, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	doc := &Document{
		ID:          uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+filepath.ToSlash(abs))).String(),
		Path:        rel,
		Format:      format,
		Encoding:    encoding,
		ContentHash: hex.EncodeToString(hash[:]),
		SizeBytes:   info.Size(),
		Chunks:      r.chunkDocument(rel, parsed),
	}
	for _, pe := range parsed.Errors {
		doc.ParseErrors = append(doc.ParseErrors, pe.Message)
	}

	return doc, nil
}

// chunkDocument chunks each section or page separately so metadata stays
// accurate. Offsets are relative to the section or page text; ids run
// across the whole document.
func (r *run) chunkDocument(source string, parsed *types.ParseResult) []types.Chunk {
	var groups [][]types.Chunk

	switch {
	case len(parsed.Pages) > 0:
		for _, pg := range parsed.Pages {
			groups = append(groups, r.chunker.ChunkWithMetadata(pg.Text,
				types.ChunkMetadata{Source: source, Page: pg.Number}))
		}
	case len(parsed.Sections) > 0:
		for _, sec := range parsed.Sections {
			groups = append(groups, r.chunker.ChunkWithMetadata(sec.Text,
				types.ChunkMetadata{Source: source, Section: sec.Title}))
		}
	default:
		groups = append(groups, r.chunker.ChunkWithMetadata(parsed.PlainText,
			types.ChunkMetadata{Source: source}))
	}

	var out []types.Chunk
	for _, g := range groups {
		if r.mergeSmall {
			g = r.chunker.MergeSmallChunks(g)
		}
		for _, c := range g {
			c.ID = len(out)
			out = append(out, c)
		}
	}
	return out
}
