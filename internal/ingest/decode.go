package ingest

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"

	"github.com/dshills/docchunk-mcp/pkg/types"
)

var contentTypes = map[types.Format]string{
	types.FormatText:     "text/plain",
	types.FormatMarkdown: "text/plain",
	types.FormatHTML:     "text/html",
}

// decodeText converts textual content to UTF-8. Valid UTF-8 is returned
// unchanged; anything else is decoded with the encoding declared by a BOM
// or HTML meta tag, falling back to windows-1252.
func decodeText(content []byte, format types.Format) ([]byte, string, error) {
	ct, textual := contentTypes[format]
	if !textual || utf8.Valid(content) {
		return content, "utf-8", nil
	}

	enc, name, _ := charset.DetermineEncoding(content, ct)
	decoded, _, err := transform.Bytes(enc.NewDecoder(), content)
	if err != nil {
		return nil, "", fmt.Errorf("%w: cannot decode %s: %v", types.ErrInvalidInput, name, err)
	}
	return decoded, name, nil
}
