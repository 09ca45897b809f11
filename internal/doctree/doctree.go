package doctree

import "golang.org/x/net/html"

// NodeKind classifies a top-level block of the source document.
type NodeKind int

const (
	KindOther NodeKind = iota
	KindSectionHeading
	KindSubsectionHeading
	KindParagraph
	KindQuoteBlock
	KindTable
	KindList
)

func (k NodeKind) String() string {
	switch k {
	case KindSectionHeading:
		return "section-heading"
	case KindSubsectionHeading:
		return "subsection-heading"
	case KindParagraph:
		return "paragraph"
	case KindQuoteBlock:
		return "quote-block"
	case KindTable:
		return "table"
	case KindList:
		return "list"
	}
	return "other"
}

// Document is a parsed source document flattened into its block sequence.
type Document struct {
	Title string     // From <title>, or the filename without extension
	Root  *html.Node // Whole parsed document, used for metadata lookups
	Nodes []Node     // Direct children of the content container, in order
}

// Node is one block of the flattened document.
type Node struct {
	Kind NodeKind
	Text string     // Trimmed text content
	HTML *html.Node // Backing element
}
