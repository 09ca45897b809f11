package extract

import (
	"regexp"
	"strings"

	"github.com/dgallion1/botschema/internal/catalogue"
	"github.com/dgallion1/botschema/internal/parser"
	"golang.org/x/net/html"
)

const returnMarker = "eturn"

var (
	resultPattern = regexp.MustCompile(`True|Int|String|#\w+`)
	fragmentSplit = regexp.MustCompile(`[.,]`)
)

// ExtractResponse derives an endpoint's result type from its first
// paragraph. Only fragments mentioning a return are scanned, and only the
// first known token of each fragment counts. It returns nil when the
// paragraph names no result.
func ExtractResponse(p *html.Node, excluded map[string]bool) (*catalogue.Type, error) {
	flat := flattenLinks(p)

	result := &catalogue.Type{Required: true}
	if strings.Contains(strings.ToLower(parser.TextContent(p)), "array") {
		result.Array = 1
	}

	seen := make(map[string]bool)
	for _, frag := range fragmentSplit.Split(flat, -1) {
		if !strings.Contains(frag, returnMarker) {
			continue
		}
		tok := resultPattern.FindString(frag)
		if tok == "" || excluded[tok] {
			continue
		}
		alt, err := MapType(tok)
		if err != nil {
			return nil, err
		}
		key := alt.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		result.Alts = append(result.Alts, alt)
	}

	if len(result.Alts) == 0 {
		return nil, nil
	}
	return result, nil
}
