package parser

import "strings"

// NodeType identifies the kind of a document node
type NodeType int

const (
	NodeText NodeType = iota
	NodeCodeBlock
	NodeInlineCode
	NodeLink
	NodeImage
	NodeHeader
	NodeList
	NodeQuote
	NodeBold
	NodeItalic
	NodeParagraph
)

var nodeTypeNames = [...]string{
	NodeText:       "text",
	NodeCodeBlock:  "code_block",
	NodeInlineCode: "inline_code",
	NodeLink:       "link",
	NodeImage:      "image",
	NodeHeader:     "header",
	NodeList:       "list",
	NodeQuote:      "quote",
	NodeBold:       "bold",
	NodeItalic:     "italic",
	NodeParagraph:  "paragraph",
}

func (t NodeType) String() string {
	if t < 0 || int(t) >= len(nodeTypeNames) {
		return "unknown"
	}
	return nodeTypeNames[t]
}

// MarshalText lets node types appear by name in JSON output
func (t NodeType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Node is one element of a parsed document. Leaf nodes carry Content;
// container nodes carry Children.
type Node struct {
	Type     NodeType `json:"type"`
	Content  string   `json:"content,omitempty"`
	Children []Node   `json:"children,omitempty"`

	Language string `json:"language,omitempty"` // code blocks
	URL      string `json:"url,omitempty"`      // links and images
	Alt      string `json:"alt,omitempty"`      // images
	Level    int    `json:"level,omitempty"`    // headers
	Ordered  bool   `json:"ordered,omitempty"`  // lists
}

// isBlockContainer reports whether the node's children are blocks
func (n *Node) isBlockContainer() bool {
	return n.Type == NodeList || n.Type == NodeQuote
}

// Text returns the plain text of the node and its descendants
func (n *Node) Text() string {
	if len(n.Children) == 0 {
		return n.Content
	}

	parts := make([]string, len(n.Children))
	for i := range n.Children {
		parts[i] = n.Children[i].Text()
	}
	if n.isBlockContainer() {
		return strings.Join(parts, "\n")
	}
	return strings.Join(parts, "")
}

// ToPlainText renders top-level nodes one per line
func ToPlainText(nodes []Node) string {
	parts := make([]string, len(nodes))
	for i := range nodes {
		parts[i] = nodes[i].Text()
	}
	return strings.Join(parts, "\n")
}
