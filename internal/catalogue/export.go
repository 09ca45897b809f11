package catalogue

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// ExportedCatalogue is a tree-shaped copy of a Catalogue in which every
// entity reference is written as its "#anchor", so cycles serialize cleanly.
type ExportedCatalogue struct {
	Version string          `json:"version" yaml:"version"`
	Groups  []ExportedGroup `json:"groups" yaml:"groups"`
}

type ExportedGroup struct {
	Name         string           `json:"name" yaml:"name"`
	Descriptions []string         `json:"descriptions,omitempty" yaml:"descriptions,omitempty"`
	Entities     []ExportedEntity `json:"entities" yaml:"entities"`
}

type ExportedEntity struct {
	Name         string          `json:"name" yaml:"name"`
	Anchor       string          `json:"anchor" yaml:"anchor"`
	Kind         string          `json:"kind" yaml:"kind"`
	Descriptions []string        `json:"descriptions,omitempty" yaml:"descriptions,omitempty"`
	Literal      string          `json:"literal,omitempty" yaml:"literal,omitempty"`
	Tag          *Tag            `json:"tag,omitempty" yaml:"tag,omitempty"`
	Fields       []ExportedField `json:"fields,omitempty" yaml:"fields,omitempty"`
	Children     []string        `json:"children,omitempty" yaml:"children,omitempty"`
	Parent       string          `json:"parent,omitempty" yaml:"parent,omitempty"`
	Result       *ExportedType   `json:"result,omitempty" yaml:"result,omitempty"`
}

type ExportedField struct {
	Name        string       `json:"name" yaml:"name"`
	Type        ExportedType `json:"type" yaml:"type"`
	Tag         *Tag         `json:"tag,omitempty" yaml:"tag,omitempty"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
}

type ExportedType struct {
	Alternatives []string `json:"alternatives" yaml:"alternatives"`
	Array        int      `json:"array,omitempty" yaml:"array,omitempty"`
	Required     bool     `json:"required" yaml:"required"`
	Union        bool     `json:"union,omitempty" yaml:"union,omitempty"`
}

// Export copies c into its serializable form.
func Export(c *Catalogue) ExportedCatalogue {
	out := ExportedCatalogue{Version: c.Version, Groups: make([]ExportedGroup, 0, len(c.Groups))}
	for _, g := range c.Groups {
		eg := ExportedGroup{Name: g.Name, Descriptions: g.Descriptions, Entities: make([]ExportedEntity, 0, len(g.Entities))}
		for _, e := range g.Entities {
			eg.Entities = append(eg.Entities, ExportEntity(e))
		}
		out.Groups = append(out.Groups, eg)
	}
	return out
}

// ExportEntity copies a single entity into its serializable form.
func ExportEntity(e *Entity) ExportedEntity {
	ee := ExportedEntity{
		Name:    e.Name,
		Anchor:  e.Anchor,
		Kind:    e.Kind().String(),
		Literal: e.Literal,
		Tag:     e.Tag(),
	}
	for _, d := range e.Descriptions {
		ee.Descriptions = append(ee.Descriptions, d.Text)
	}
	for _, f := range e.Fields {
		ee.Fields = append(ee.Fields, ExportedField{
			Name:        f.Name,
			Type:        exportType(&f.Type),
			Tag:         f.Tag,
			Description: f.Description.Text,
		})
	}
	for _, c := range e.Children {
		ee.Children = append(ee.Children, exportAlt(c))
	}
	if e.Parent != nil {
		ee.Parent = "#" + e.Parent.Anchor
	}
	if e.Result != nil {
		t := exportType(e.Result)
		ee.Result = &t
	}
	return ee
}

func exportType(t *Type) ExportedType {
	et := ExportedType{
		Alternatives: make([]string, 0, len(t.Alts)),
		Array:        t.Array,
		Required:     t.Required,
		Union:        t.Union(),
	}
	for _, a := range t.Alts {
		et.Alternatives = append(et.Alternatives, exportAlt(a))
	}
	return et
}

func exportAlt(a Alt) string {
	switch a.Kind {
	case AltPrimitive:
		return string(a.Primitive)
	case AltReference:
		return "#" + a.Entity.Anchor
	}
	return a.Anchor
}

// EncodeJSON encodes the exported catalogue as indented JSON.
func (c ExportedCatalogue) EncodeJSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// EncodeYAML encodes the exported catalogue as YAML.
func (c ExportedCatalogue) EncodeYAML() ([]byte, error) {
	return yaml.Marshal(c)
}
