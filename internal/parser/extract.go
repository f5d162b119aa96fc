package parser

import (
	"fmt"
	"io"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/ledongthuc/pdf"

	"github.com/dshills/docchunk-mcp/pkg/types"
)

// HTMLToMarkdown converts an HTML document to markdown
func HTMLToMarkdown(html string) (string, error) {
	md, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("failed to convert html: %w", err)
	}
	return md, nil
}

// PDFPages extracts the text of every non-empty page. Rows are joined with
// newlines; page numbers are 1-based and keep gaps for skipped pages.
func PDFPages(r io.ReaderAt, size int64) ([]types.Page, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	var pages []types.Page
	total := reader.NumPage()
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("failed to read page %d: %w", i, err)
		}

		lines := make([]string, 0, len(rows))
		for _, row := range rows {
			var line strings.Builder
			for _, word := range row.Content {
				line.WriteString(word.S)
			}
			lines = append(lines, line.String())
		}

		text := strings.Join(lines, "\n")
		if strings.TrimSpace(text) == "" {
			continue
		}
		pages = append(pages, types.Page{Number: i, Text: text})
	}

	return pages, nil
}
