// Package parser normalizes documents into plain text before chunking.
//
// Markdown is parsed with a CommonMark tokenizer into a small node tree
// (headers, paragraphs, lists, quotes, code blocks and inline markup). HTML
// is converted to markdown first. PDF text is extracted page by page.
//
// # Basic Usage
//
//	p := parser.New()
//	result, err := p.ParseDocument(types.FormatMarkdown, content)
//	if err != nil {
//	    return err
//	}
//
//	for _, section := range result.Sections {
//	    fmt.Printf("%s: %d bytes\n", section.Title, len(section.Text))
//	}
//
// # Plain Text
//
// ToPlainText renders each top-level node on its own line. Inline markup is
// dropped, link text is kept, and images contribute their alt text.
//
// # Error Handling
//
// Invalid UTF-8 is not fatal: it is replaced and recorded in
// ParseResult.Errors so ingestion can continue. Unknown formats and
// unreadable PDFs return an error.
package parser
