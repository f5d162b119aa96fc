package parser

import (
	"strings"

	"gitlab.com/golang-commonmark/markdown"

	"github.com/dshills/docchunk-mcp/pkg/types"
)

// treeBuilder turns the flat commonmark token stream into nested nodes
type treeBuilder struct {
	roots      []Node
	containers []Node // open lists and quotes
	heading    *Node
}

func (b *treeBuilder) emit(n Node) {
	if len(b.containers) > 0 {
		top := &b.containers[len(b.containers)-1]
		top.Children = append(top.Children, n)
		return
	}
	b.roots = append(b.roots, n)
}

func (b *treeBuilder) open(n Node) {
	b.containers = append(b.containers, n)
}

func (b *treeBuilder) close(t NodeType) {
	last := len(b.containers) - 1
	if last < 0 || b.containers[last].Type != t {
		return
	}
	n := b.containers[last]
	b.containers = b.containers[:last]
	b.emit(n)
}

func (b *treeBuilder) visit(tok markdown.Token) {
	switch t := tok.(type) {
	case *markdown.HeadingOpen:
		b.heading = &Node{Type: NodeHeader, Level: t.HLevel}
	case *markdown.HeadingClose:
		if b.heading != nil {
			b.emit(*b.heading)
			b.heading = nil
		}
	case *markdown.Inline:
		children := inlineNodes(t.Children)
		if b.heading != nil {
			b.heading.Children = children
			b.heading.Content = ToPlainText(children)
			return
		}
		if len(children) > 0 {
			b.emit(Node{Type: NodeParagraph, Children: children})
		}
	case *markdown.Fence:
		lang := ""
		if fields := strings.Fields(t.Params); len(fields) > 0 {
			lang = fields[0]
		}
		b.emit(Node{Type: NodeCodeBlock, Content: strings.TrimSuffix(t.Content, "\n"), Language: lang})
	case *markdown.CodeBlock:
		b.emit(Node{Type: NodeCodeBlock, Content: strings.TrimSuffix(t.Content, "\n")})
	case *markdown.BlockquoteOpen:
		b.open(Node{Type: NodeQuote})
	case *markdown.BlockquoteClose:
		b.close(NodeQuote)
	case *markdown.BulletListOpen:
		b.open(Node{Type: NodeList})
	case *markdown.BulletListClose:
		b.close(NodeList)
	case *markdown.OrderedListOpen:
		b.open(Node{Type: NodeList, Ordered: true})
	case *markdown.OrderedListClose:
		b.close(NodeList)
	}
}

// inlineNodes converts inline tokens. Links and emphasis become containers
// around the text they enclose.
func inlineNodes(tokens []markdown.Token) []Node {
	var out []Node
	var stack []Node

	emit := func(n Node) {
		if len(stack) > 0 {
			top := &stack[len(stack)-1]
			top.Children = append(top.Children, n)
			return
		}
		out = append(out, n)
	}
	closeAs := func(t NodeType) {
		last := len(stack) - 1
		if last < 0 || stack[last].Type != t {
			return
		}
		n := stack[last]
		stack = stack[:last]
		if n.Type == NodeLink {
			n.Content = ToPlainText(n.Children)
		}
		emit(n)
	}

	for _, tok := range tokens {
		switch t := tok.(type) {
		case *markdown.Text:
			emit(Node{Type: NodeText, Content: t.Content})
		case *markdown.CodeInline:
			emit(Node{Type: NodeInlineCode, Content: t.Content})
		case *markdown.Softbreak, *markdown.Hardbreak:
			emit(Node{Type: NodeText, Content: "\n"})
		case *markdown.Image:
			alt := ToPlainText(inlineNodes(t.Tokens))
			emit(Node{Type: NodeImage, URL: t.Src, Alt: alt, Content: alt})
		case *markdown.LinkOpen:
			stack = append(stack, Node{Type: NodeLink, URL: t.Href})
		case *markdown.LinkClose:
			closeAs(NodeLink)
		case *markdown.StrongOpen:
			stack = append(stack, Node{Type: NodeBold})
		case *markdown.StrongClose:
			closeAs(NodeBold)
		case *markdown.EmphasisOpen:
			stack = append(stack, Node{Type: NodeItalic})
		case *markdown.EmphasisClose:
			closeAs(NodeItalic)
		}
	}

	// Unbalanced containers keep their text
	for len(stack) > 0 {
		closeAs(stack[len(stack)-1].Type)
	}
	return out
}

// Sections groups top-level nodes under the nearest preceding header.
// Text before the first header forms an untitled section.
func Sections(nodes []Node) []types.Section {
	var sections []types.Section
	var body []string
	current := types.Section{}

	flush := func() {
		text := strings.Join(body, "\n")
		if strings.TrimSpace(text) != "" {
			current.Text = text
			sections = append(sections, current)
		}
		body = body[:0]
	}

	for i := range nodes {
		n := &nodes[i]
		if n.Type == NodeHeader {
			flush()
			current = types.Section{Title: n.Content, Level: n.Level}
		}
		body = append(body, n.Text())
	}
	flush()

	return sections
}
