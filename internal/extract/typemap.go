package extract

import (
	"strings"

	"github.com/dgallion1/botschema/internal/catalogue"
)

// AnchorSigil prefixes in-page references.
const AnchorSigil = "#"

var primitives = map[string]catalogue.Primitive{
	"Integer":      catalogue.Integer,
	"Int":          catalogue.Integer,
	"String":       catalogue.String,
	"Boolean":      catalogue.Boolean,
	"True":         catalogue.Boolean,
	"Float":        catalogue.Float,
	"Float number": catalogue.Float,
}

// MapType maps a type word to its canonical alternative. Anchors pass
// through as placeholders; any other unknown word is a ClassificationError.
func MapType(token string) (catalogue.Alt, error) {
	token = strings.TrimSpace(token)
	if strings.HasPrefix(token, AnchorSigil) {
		return catalogue.PlaceholderAlt(token), nil
	}
	p, ok := primitives[token]
	if !ok {
		return catalogue.Alt{}, &catalogue.ClassificationError{Token: token}
	}
	return catalogue.PrimitiveAlt(p), nil
}
