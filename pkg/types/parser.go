package types

// Format identifies the structural format of a document
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatPDF      Format = "pdf"
)

// Valid reports whether f is a known format
func (f Format) Valid() bool {
	switch f {
	case FormatText, FormatMarkdown, FormatHTML, FormatPDF:
		return true
	default:
		return false
	}
}

// Section is a titled run of plain text inside a document
type Section struct {
	Title string `json:"title,omitempty"` // Nearest heading text, empty before the first heading
	Level int    `json:"level,omitempty"` // Heading level 1-6, 0 when untitled
	Text  string `json:"text"`            // Plain text body, including the heading line
}

// Page is the plain text of one page of a paginated document
type Page struct {
	Number int    `json:"number"` // 1-based
	Text   string `json:"text"`
}

// ParseResult represents the output of normalizing a document to plain text
type ParseResult struct {
	Format    Format
	PlainText string
	Sections  []Section
	Pages     []Page

	// Errors encountered during parsing
	Errors []ParseError
}

// ParseError represents a non-fatal problem found while parsing
type ParseError struct {
	Source  string
	Line    int
	Message string
}

// Error implements the error interface
func (pe *ParseError) Error() string {
	return pe.Message
}

// HasErrors returns true if any parsing errors occurred
func (pr *ParseResult) HasErrors() bool {
	return len(pr.Errors) > 0
}

// AddError adds a parsing error to the result
func (pr *ParseResult) AddError(source string, line int, msg string) {
	pr.Errors = append(pr.Errors, ParseError{
		Source:  source,
		Line:    line,
		Message: msg,
	})
}
