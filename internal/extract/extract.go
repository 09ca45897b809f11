// Package extract recovers a typed schema catalogue from the flattened
// blocks of an API reference page.
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dgallion1/botschema/internal/catalogue"
	"github.com/dgallion1/botschema/internal/doctree"
	"github.com/dgallion1/botschema/internal/parser"
	"golang.org/x/net/html"
)

const versionPrefix = "Bot API"

var versionPattern = regexp.MustCompile(`^Bot API (\d+(?:\.\d+)*)$`)

// ParseVersion finds the "Bot API X.Y" marker. The first <strong> that
// starts with the prefix must be well formed.
func ParseVersion(root *html.Node) (string, error) {
	for _, s := range parser.FindAll(root, "strong") {
		text := parser.TextContent(s)
		if !strings.HasPrefix(text, versionPrefix) {
			continue
		}
		m := versionPattern.FindStringSubmatch(text)
		if m == nil {
			return "", &catalogue.StructuralError{What: "malformed version marker", Text: text}
		}
		return m[1], nil
	}
	return "", &catalogue.StructuralError{What: "version marker not found"}
}

// Extract runs the whole pipeline: version, walk, index, resolve.
func Extract(doc *doctree.Document, opts Options) (*catalogue.Catalogue, error) {
	version, err := ParseVersion(doc.Root)
	if err != nil {
		return nil, fmt.Errorf("version: %w", err)
	}

	cat, err := Walk(doc.Nodes, opts)
	if err != nil {
		return nil, fmt.Errorf("walk: %w", err)
	}
	cat.Version = version

	if err := cat.Index(); err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}
	if err := cat.Resolve(); err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}
	return cat, nil
}
