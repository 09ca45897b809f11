package extract

import (
	"regexp"

	"github.com/dgallion1/botschema/internal/catalogue"
)

var tagPattern = regexp.MustCompile(`always [“"]([\w/]+)[”"]|must be <em>(\w+)</em>`)

// DetectTag looks for a constant-value phrase in a field description
// ("always “photo”", "must be <em>private</em>") and returns it as the
// field's discriminant.
func DetectTag(name, desc string) *catalogue.Tag {
	m := tagPattern.FindStringSubmatch(desc)
	if m == nil {
		return nil
	}
	value := m[1]
	if value == "" {
		value = m[2]
	}
	return &catalogue.Tag{Name: name, Value: value}
}
