package extract

import (
	"regexp"
	"strings"

	"github.com/dgallion1/botschema/internal/catalogue"
	"github.com/dgallion1/botschema/internal/parser"
	"golang.org/x/net/html"
)

// TableLayout is the column shape of a field table.
type TableLayout int

const (
	// SchemaTable columns: Field, Type, Description.
	SchemaTable TableLayout = 3
	// EndpointTable columns: Parameter, Type, Required, Description.
	EndpointTable TableLayout = 4
)

const arrayMarker = "Array of "

var altSeparator = regexp.MustCompile(`, | or | and `)

// LayoutOf counts the header cells of table.
func LayoutOf(table *html.Node) (TableLayout, error) {
	for _, tr := range parser.FindAll(table, "tr") {
		th := parser.Children(tr, "th")
		if len(th) == 0 {
			continue
		}
		switch len(th) {
		case int(SchemaTable):
			return SchemaTable, nil
		case int(EndpointTable):
			return EndpointTable, nil
		}
		return 0, &catalogue.StructuralError{What: "unexpected table header", Text: parser.TextContent(tr)}
	}
	return 0, &catalogue.StructuralError{What: "table has no header row"}
}

// ExtractTable turns every data row of table into a Field, in row order.
func ExtractTable(table *html.Node) ([]*catalogue.Field, TableLayout, error) {
	layout, err := LayoutOf(table)
	if err != nil {
		return nil, 0, err
	}
	var fields []*catalogue.Field
	for _, tr := range parser.FindAll(table, "tr") {
		if len(parser.Children(tr, "td")) == 0 {
			continue
		}
		f, err := ExtractRow(tr, layout)
		if err != nil {
			return nil, 0, err
		}
		fields = append(fields, f)
	}
	return fields, layout, nil
}

// ExtractRow turns one table row into a Field.
func ExtractRow(tr *html.Node, layout TableLayout) (*catalogue.Field, error) {
	td := parser.Children(tr, "td")
	if len(td) < int(layout) {
		return nil, &catalogue.StructuralError{What: "short table row", Text: parser.TextContent(tr)}
	}

	name := parser.TextContent(td[0])
	typeText := flattenLinks(td[1])

	required := true
	desc := td[2]
	if layout == EndpointTable {
		required = !strings.Contains(parser.TextContent(td[2]), "Optional")
		desc = td[3]
	}

	var alts []catalogue.Alt
	for _, tok := range altSeparator.Split(strings.ReplaceAll(typeText, arrayMarker, ""), -1) {
		alt, err := MapType(tok)
		if err != nil {
			return nil, err
		}
		alts = append(alts, alt)
	}

	markup := parser.InnerHTML(desc)
	return &catalogue.Field{
		Name: name,
		Type: catalogue.Type{
			Alts:     alts,
			Array:    strings.Count(typeText, arrayMarker),
			Required: required,
		},
		Tag:         DetectTag(name, html.UnescapeString(markup)),
		Description: catalogue.Description{Text: parser.TextContent(desc), HTML: markup},
	}, nil
}

// flattenLinks concatenates the text below n, writing each hyperlink as its
// href instead of its label.
func flattenLinks(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case c.Type == html.TextNode:
				buf.WriteString(c.Data)
			case c.Type == html.ElementNode && c.Data == "a":
				buf.WriteString(parser.Attr(c, "href"))
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return strings.TrimSpace(buf.String())
}
