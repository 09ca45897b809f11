package extract

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode"

	"github.com/dgallion1/botschema/internal/catalogue"
	"github.com/dgallion1/botschema/internal/doctree"
	"github.com/dgallion1/botschema/internal/parser"
)

// Options controls the document walk.
type Options struct {
	// StartMarker is the section heading text where extraction begins.
	StartMarker string
	// ExcludedResultAnchors are anchors that look like result types in
	// endpoint prose but name an unrelated endpoint.
	ExcludedResultAnchors []string
	Logger                *slog.Logger
}

// DefaultOptions matches the layout of the Telegram Bot API page.
func DefaultOptions() Options {
	return Options{
		StartMarker:           "Getting updates",
		ExcludedResultAnchors: []string{"#getchat"},
	}
}

type walker struct {
	opts     Options
	excluded map[string]bool
	log      *slog.Logger

	cat    *catalogue.Catalogue
	group  *catalogue.Group
	entity *catalogue.Entity
}

// Walk groups the flattened document into a catalogue. References are left
// as placeholders; call Index and Resolve on the result afterwards.
func Walk(nodes []doctree.Node, opts Options) (*catalogue.Catalogue, error) {
	w := &walker{
		opts:     opts,
		excluded: make(map[string]bool, len(opts.ExcludedResultAnchors)),
		log:      opts.Logger,
		cat:      &catalogue.Catalogue{},
	}
	if w.log == nil {
		w.log = slog.New(slog.DiscardHandler)
	}
	for _, a := range opts.ExcludedResultAnchors {
		w.excluded[a] = true
	}

	tracking := false
	for _, n := range nodes {
		if n.Kind == doctree.KindSectionHeading && n.Text == opts.StartMarker {
			tracking = true
		}
		if !tracking {
			continue
		}
		if err := w.visit(n); err != nil {
			return nil, err
		}
	}
	if !tracking {
		return nil, &catalogue.StructuralError{What: "start marker not found", Text: opts.StartMarker}
	}
	return w.cat, nil
}

func (w *walker) visit(n doctree.Node) error {
	switch n.Kind {
	case doctree.KindSectionHeading:
		w.group = &catalogue.Group{Name: n.Text}
		w.cat.Groups = append(w.cat.Groups, w.group)
		w.entity = nil
		w.log.Debug("group", "name", n.Text)
		return nil
	case doctree.KindSubsectionHeading:
		// Multi-word headings are prose subsections, not API objects.
		if strings.ContainsFunc(n.Text, unicode.IsSpace) {
			w.entity = nil
			break
		}
		w.entity = &catalogue.Entity{Name: n.Text, Anchor: anchorOf(n)}
		w.group.Entities = append(w.group.Entities, w.entity)
		return nil
	}

	if w.entity == nil {
		if n.Text != "" {
			w.group.Descriptions = append(w.group.Descriptions, n.Text)
		}
		return nil
	}

	e := w.entity
	switch n.Kind {
	case doctree.KindParagraph:
		e.Descriptions = append(e.Descriptions, catalogue.Description{Text: n.Text, HTML: parser.InnerHTML(n.HTML)})
		if len(e.Descriptions) == 1 && e.IsEndpoint() {
			result, err := ExtractResponse(n.HTML, w.excluded)
			if err != nil {
				return fmt.Errorf("%s result: %w", e.Name, err)
			}
			e.Result = result
		}
	case doctree.KindQuoteBlock:
		e.Literal = n.Text
	case doctree.KindTable:
		fields, layout, err := ExtractTable(n.HTML)
		if err != nil {
			return fmt.Errorf("%s fields: %w", e.Name, err)
		}
		if layout == SchemaTable {
			markOptional(fields)
		}
		sortRequiredFirst(fields)
		e.Fields = fields
		w.log.Debug("entity fields", "entity", e.Name, "fields", len(fields))
	case doctree.KindList:
		e.Children = e.Children[:0]
		for _, li := range parser.Children(n.HTML, "li") {
			href := parser.Attr(parser.FindFirst(li, "a"), "href")
			if strings.HasPrefix(href, AnchorSigil) {
				e.Children = append(e.Children, catalogue.PlaceholderAlt(href))
			}
		}
	}
	return nil
}

// markOptional applies the schema-table convention of opening an optional
// field's description with "Optional".
func markOptional(fields []*catalogue.Field) {
	for _, f := range fields {
		if strings.HasPrefix(f.Description.Text, "Optional") {
			f.Type.Required = false
		}
	}
}

func sortRequiredFirst(fields []*catalogue.Field) {
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Required() && !fields[j].Required()
	})
}

func anchorOf(n doctree.Node) string {
	if name := parser.Attr(parser.FindFirst(n.HTML, "a"), "name"); name != "" {
		return name
	}
	return strings.ToLower(n.Text)
}
