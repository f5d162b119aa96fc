// Package ingest turns files on disk into chunked documents.
//
// # Pipeline
//
//  1. Discovery: walk the root, skip hidden directories, keep files matching
//     any doublestar pattern (default **/*.{md,markdown,txt,html,htm,pdf})
//  2. Detection: format from the extension, else from content sniffing
//  3. Decoding: non UTF-8 text is transcoded using its BOM, HTML meta
//     charset, or windows-1252
//  4. Parsing: markdown and HTML are split into sections, PDFs into pages
//  5. Chunking: each section or page is chunked with metadata naming the
//     source file and the section title or page number
//
// Documents are processed by a bounded worker pool:
//
//	semaphore := make(chan struct{}, workers)
//	g, gctx := errgroup.WithContext(ctx)
//
// A file that fails is counted in Statistics and the run continues. Files
// larger than MaxFileBytes and files with unrecognized content are skipped.
//
// # Basic Usage
//
//	in := ingest.New(parser.New(), chunker.Default(), log)
//	result, err := in.Ingest(ctx, "/path/to/docs", nil)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d documents, %d chunks\n", len(result.Documents), result.Stats.ChunksCreated)
//
// Nothing is persisted; results are returned to the caller. Only one
// ingest runs per Ingester at a time and overlapping calls fail with
// types.ErrIngestInProgress.
package ingest
