package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/botschema/internal/doctree"
	"golang.org/x/net/html"
)

// HTMLParser flattens an HTML API reference page into its block sequence.
type HTMLParser struct {
	// ContentRootID is the id of the element whose direct children form the
	// block sequence. Empty or missing falls back to <body>.
	ContentRootID string
}

var blockKinds = map[string]doctree.NodeKind{
	"h3":         doctree.KindSectionHeading,
	"h4":         doctree.KindSubsectionHeading,
	"p":          doctree.KindParagraph,
	"blockquote": doctree.KindQuoteBlock,
	"table":      doctree.KindTable,
	"ul":         doctree.KindList,
}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc := &doctree.Document{
		Title: strings.TrimSuffix(strings.TrimSuffix(filename, ".html"), ".htm"),
		Root:  root,
	}
	if title := FindFirst(root, "title"); title != nil {
		if t := TextContent(title); t != "" {
			doc.Title = t
		}
	}

	content := findByID(root, p.ContentRootID)
	if content == nil {
		content = FindFirst(root, "body")
	}
	if content == nil {
		content = root
	}

	for c := content.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		// Skip non-content elements.
		switch c.Data {
		case "script", "style", "nav", "footer", "header":
			continue
		}
		doc.Nodes = append(doc.Nodes, doctree.Node{
			Kind: blockKinds[c.Data],
			Text: TextContent(c),
			HTML: c,
		})
	}

	return doc, nil
}

// TextContent returns the concatenated, trimmed text below n.
func TextContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

// InnerHTML renders the children of n back to markup.
func InnerHTML(n *html.Node) string {
	var buf strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			// Rendering into a strings.Builder only fails on malformed trees.
			break
		}
	}
	return buf.String()
}

// Attr returns the value of attribute key on n, or "".
func Attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// FindFirst returns the first element named tag at or below n, depth first.
func FindFirst(n *html.Node, tag string) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if f := FindFirst(c, tag); f != nil {
			return f
		}
	}
	return nil
}

// FindAll returns every element named tag below n in document order.
func FindAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == tag {
				out = append(out, c)
			}
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
	return out
}

// Children returns the direct element children of n named tag.
func Children(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			out = append(out, c)
		}
	}
	return out
}

func findByID(n *html.Node, id string) *html.Node {
	if id == "" || n == nil {
		return nil
	}
	if n.Type == html.ElementNode && Attr(n, "id") == id {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if f := findByID(c, id); f != nil {
			return f
		}
	}
	return nil
}
