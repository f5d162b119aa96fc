package parser

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/docchunk-mcp/pkg/types"
)

const sampleMarkdown = "# Guide\n\nIntro with a [link](https://example.com) and `code`.\n\n## Install\n\n- first step\n- second step\n\n```go\nfmt.Println(1)\n```\n"

func findNode(nodes []Node, t NodeType) *Node {
	for i := range nodes {
		if nodes[i].Type == t {
			return &nodes[i]
		}
		if n := findNode(nodes[i].Children, t); n != nil {
			return n
		}
	}
	return nil
}

func TestNew(t *testing.T) {
	p := New()
	assert.NotNil(t, p)
	assert.NotNil(t, p.md)
}

func TestParse_Structure(t *testing.T) {
	nodes := New().Parse(sampleMarkdown)
	require.Len(t, nodes, 5)

	assert.Equal(t, NodeHeader, nodes[0].Type)
	assert.Equal(t, 1, nodes[0].Level)
	assert.Equal(t, "Guide", nodes[0].Content)

	assert.Equal(t, NodeParagraph, nodes[1].Type)
	link := findNode(nodes[1].Children, NodeLink)
	require.NotNil(t, link)
	assert.Equal(t, "link", link.Content)
	assert.Equal(t, "https://example.com", link.URL)
	code := findNode(nodes[1].Children, NodeInlineCode)
	require.NotNil(t, code)
	assert.Equal(t, "code", code.Content)

	assert.Equal(t, NodeHeader, nodes[2].Type)
	assert.Equal(t, 2, nodes[2].Level)

	assert.Equal(t, NodeList, nodes[3].Type)
	assert.False(t, nodes[3].Ordered)
	assert.Len(t, nodes[3].Children, 2)

	assert.Equal(t, NodeCodeBlock, nodes[4].Type)
	assert.Equal(t, "go", nodes[4].Language)
	assert.Equal(t, "fmt.Println(1)", nodes[4].Content)
}

func TestToPlainText(t *testing.T) {
	nodes := New().Parse(sampleMarkdown)

	want := "Guide\nIntro with a link and code.\nInstall\nfirst step\nsecond step\nfmt.Println(1)"
	assert.Equal(t, want, ToPlainText(nodes))
}

func TestToPlainText_Inline(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bold and italic", "Some **bold** and *italic* words", "Some bold and italic words"},
		{"image alt text", "See ![a diagram](d.png) here", "See a diagram here"},
		{"quote", "> quoted line", "quoted line"},
		{"ordered list", "1. one\n2. two", "one\ntwo"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToPlainText(New().Parse(tt.input)))
		})
	}
}

func TestParse_NestedMarkup(t *testing.T) {
	nodes := New().Parse("**[bold link](https://x.test)**")
	require.Len(t, nodes, 1)

	bold := findNode(nodes, NodeBold)
	require.NotNil(t, bold)
	link := findNode(bold.Children, NodeLink)
	require.NotNil(t, link)
	assert.Equal(t, "https://x.test", link.URL)
	assert.Equal(t, "bold link", ToPlainText(nodes))
}

func TestSections(t *testing.T) {
	nodes := New().Parse("Preamble text.\n\n# One\n\nBody one.\n\n## Two\n\nBody two.\n")
	sections := Sections(nodes)

	require.Len(t, sections, 3)
	assert.Equal(t, types.Section{Title: "", Level: 0, Text: "Preamble text."}, sections[0])
	assert.Equal(t, types.Section{Title: "One", Level: 1, Text: "One\nBody one."}, sections[1])
	assert.Equal(t, types.Section{Title: "Two", Level: 2, Text: "Two\nBody two."}, sections[2])
}

func TestSections_Empty(t *testing.T) {
	assert.Empty(t, Sections(nil))
}

func TestNodeType_JSON(t *testing.T) {
	data, err := json.Marshal(Node{Type: NodeCodeBlock, Content: "x", Language: "go"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"code_block","content":"x","language":"go"}`, string(data))
	assert.Equal(t, "unknown", NodeType(99).String())
}

func TestParseDocument_Text(t *testing.T) {
	result, err := New().ParseDocument(types.FormatText, []byte("just # text"))
	require.NoError(t, err)

	assert.Equal(t, types.FormatText, result.Format)
	assert.Equal(t, "just # text", result.PlainText)
	require.Len(t, result.Sections, 1)
	assert.False(t, result.HasErrors())
}

func TestParseDocument_Markdown(t *testing.T) {
	result, err := New().ParseDocument(types.FormatMarkdown, []byte(sampleMarkdown))
	require.NoError(t, err)

	assert.Contains(t, result.PlainText, "Intro with a link and code.")
	require.Len(t, result.Sections, 2)
	assert.Equal(t, "Guide", result.Sections[0].Title)
	assert.Equal(t, "Install", result.Sections[1].Title)
}

func TestParseDocument_HTML(t *testing.T) {
	html := `<html><body><h1>Title</h1><p>Hello <strong>world</strong>.</p><h2>Next</h2><p>More text.</p></body></html>`

	result, err := New().ParseDocument(types.FormatHTML, []byte(html))
	require.NoError(t, err)

	assert.Equal(t, types.FormatHTML, result.Format)
	assert.Contains(t, result.PlainText, "Hello world.")
	assert.NotContains(t, result.PlainText, "<strong>")
	require.Len(t, result.Sections, 2)
	assert.Equal(t, "Title", result.Sections[0].Title)
	assert.Equal(t, "Next", result.Sections[1].Title)
}

func TestParseDocument_InvalidUTF8(t *testing.T) {
	result, err := New().ParseDocument(types.FormatText, []byte("ok \xff done"))
	require.NoError(t, err)

	assert.True(t, result.HasErrors())
	assert.Equal(t, "ok � done", result.PlainText)
}

func TestParseDocument_BadPDF(t *testing.T) {
	_, err := New().ParseDocument(types.FormatPDF, []byte("not a pdf"))
	assert.Error(t, err)
}

func TestParseDocument_UnknownFormat(t *testing.T) {
	_, err := New().ParseDocument(types.Format("docx"), []byte("x"))
	assert.ErrorIs(t, err, types.ErrUnsupportedFormat)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("# Notes\n\nRemember this.\n"), 0644))

	result, err := New().ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, types.FormatMarkdown, result.Format)
	assert.Equal(t, "Notes\nRemember this.", result.PlainText)
}

func TestParseFile_NonExistentFile(t *testing.T) {
	_, err := New().ParseFile("/nonexistent/file.md")
	assert.Error(t, err)
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
		want    types.Format
	}{
		{"markdown extension", "a.md", "", types.FormatMarkdown},
		{"upper case extension", "A.HTML", "", types.FormatHTML},
		{"text extension", "a.txt", "", types.FormatText},
		{"pdf sniffed", "blob", "%PDF-1.4\n", types.FormatPDF},
		{"html sniffed", "page", "<!DOCTYPE html><html><body>x</body></html>", types.FormatHTML},
		{"plain sniffed", "README", "plain words only", types.FormatText},
		{"binary rejected", "data.bin", "\x00\x01\x02\x03\xff\xfe", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.path, []byte(tt.content)))
		})
	}
}
