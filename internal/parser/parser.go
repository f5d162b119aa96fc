package parser

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"gitlab.com/golang-commonmark/markdown"

	"github.com/dshills/docchunk-mcp/pkg/types"
)

// Parser normalizes structured documents into plain text
type Parser struct {
	md *markdown.Markdown
}

// New creates a new Parser instance
func New() *Parser {
	return &Parser{
		md: markdown.New(markdown.HTML(false), markdown.Linkify(false), markdown.Typographer(false)),
	}
}

// Parse builds the node tree of a markdown document
func (p *Parser) Parse(src string) []Node {
	b := &treeBuilder{}
	for _, tok := range p.md.Parse([]byte(src)) {
		b.visit(tok)
	}

	// Lists and quotes left open by the tokenizer still contribute their text
	for len(b.containers) > 0 {
		b.close(b.containers[len(b.containers)-1].Type)
	}
	return b.roots
}

// ParseFile reads a file and parses it in the format implied by its
// extension or content.
func (p *Parser) ParseFile(path string) (*types.ParseResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	format := DetectFormat(path, content)
	if format == "" {
		return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedFormat, path)
	}

	result, err := p.ParseDocument(format, content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for i := range result.Errors {
		result.Errors[i].Source = path
	}
	return result, nil
}

// ParseDocument converts content in the given format to plain text, with
// sections for markdown and html and pages for pdf. Invalid UTF-8 in textual
// formats is replaced and reported as a non-fatal error.
func (p *Parser) ParseDocument(format types.Format, content []byte) (*types.ParseResult, error) {
	result := &types.ParseResult{Format: format}

	switch format {
	case types.FormatPDF:
		pages, err := PDFPages(bytes.NewReader(content), int64(len(content)))
		if err != nil {
			return nil, err
		}
		result.Pages = pages
		texts := make([]string, len(pages))
		for i, pg := range pages {
			texts[i] = pg.Text
		}
		result.PlainText = strings.Join(texts, "\n\n")
		return result, nil

	case types.FormatText, types.FormatMarkdown, types.FormatHTML:
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnsupportedFormat, format)
	}

	text := string(content)
	if !utf8.ValidString(text) {
		result.AddError("", 0, "invalid UTF-8 sequences replaced")
		text = strings.ToValidUTF8(text, "�")
	}

	switch format {
	case types.FormatText:
		result.PlainText = text
		if strings.TrimSpace(text) != "" {
			result.Sections = []types.Section{{Text: text}}
		}
		return result, nil

	case types.FormatHTML:
		md, err := HTMLToMarkdown(text)
		if err != nil {
			return nil, err
		}
		text = md
	}

	nodes := p.Parse(text)
	result.PlainText = ToPlainText(nodes)
	result.Sections = Sections(nodes)
	return result, nil
}

var extFormats = map[string]types.Format{
	".md":       types.FormatMarkdown,
	".markdown": types.FormatMarkdown,
	".txt":      types.FormatText,
	".text":     types.FormatText,
	".html":     types.FormatHTML,
	".htm":      types.FormatHTML,
	".pdf":      types.FormatPDF,
}

// DetectFormat picks a format from the file extension, falling back to
// content sniffing. It returns "" for unsupported content.
func DetectFormat(path string, content []byte) types.Format {
	if f, ok := extFormats[strings.ToLower(filepath.Ext(path))]; ok {
		return f
	}

	mt := mimetype.Detect(content)
	switch {
	case mt.Is("application/pdf"):
		return types.FormatPDF
	case mt.Is("text/html"):
		return types.FormatHTML
	case mt.Is("text/plain"):
		return types.FormatText
	default:
		return ""
	}
}
