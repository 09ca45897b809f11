// Package catalogue holds the schema catalogue extracted from an API
// reference page: groups of entities, their typed fields, and the
// cross-references between them.
package catalogue

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Primitive is a canonical scalar kind.
type Primitive string

const (
	Integer Primitive = "Integer"
	Float   Primitive = "Float"
	String  Primitive = "String"
	Boolean Primitive = "Boolean"
)

// AltKind distinguishes the three shapes a type alternative can take.
type AltKind int

const (
	AltPrimitive AltKind = iota
	// AltPlaceholder holds an anchor that has not been resolved yet.
	AltPlaceholder
	// AltReference points directly at the resolved entity.
	AltReference
)

// Alt is one alternative of a Type.
type Alt struct {
	Kind      AltKind
	Primitive Primitive
	Anchor    string
	Entity    *Entity
}

func PrimitiveAlt(p Primitive) Alt { return Alt{Kind: AltPrimitive, Primitive: p} }

func PlaceholderAlt(anchor string) Alt { return Alt{Kind: AltPlaceholder, Anchor: anchor} }

func ReferenceAlt(e *Entity) Alt { return Alt{Kind: AltReference, Anchor: "#" + e.Anchor, Entity: e} }

func (a Alt) String() string {
	switch a.Kind {
	case AltPrimitive:
		return string(a.Primitive)
	case AltReference:
		return a.Entity.Name
	}
	return a.Anchor
}

// Type describes the value space of a field or an endpoint result.
type Type struct {
	Alts     []Alt
	Array    int // nesting depth, 0 for scalars
	Required bool
}

// Union reports whether the type has more than one alternative.
func (t *Type) Union() bool { return len(t.Alts) > 1 }

func (t *Type) Optional() bool { return !t.Required }

// String renders the type the way the reference page writes it.
func (t *Type) String() string {
	names := make([]string, len(t.Alts))
	for i, a := range t.Alts {
		names[i] = a.String()
	}
	s := strings.Repeat("Array of ", t.Array) + strings.Join(names, " or ")
	if t.Optional() {
		s = "optional " + s
	}
	return s
}

// Tag is a discriminant: Name must equal Value for an entity to be that variant.
type Tag struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Description keeps a block of prose both as plain text and as markup.
type Description struct {
	Text string
	HTML string
}

// Field is one row of an entity's table.
type Field struct {
	Name        string
	Type        Type
	Tag         *Tag
	Description Description
}

func (f *Field) Required() bool { return f.Type.Required }

func (f *Field) Optional() bool { return f.Type.Optional() }

// EntityKind tells schemas and endpoints apart.
type EntityKind int

const (
	KindSchema EntityKind = iota
	KindEndpoint
)

func (k EntityKind) String() string {
	if k == KindEndpoint {
		return "endpoint"
	}
	return "schema"
}

// Entity is a named schema or endpoint.
type Entity struct {
	Name         string
	Anchor       string // without the leading '#'
	Descriptions []Description
	Literal      string
	Fields       []*Field
	Children     []Alt   // variants; placeholders until resolved
	Parent       *Entity // set during resolution, not owning
	Result       *Type   // endpoints only; nil when the page states no result
}

// Kind classifies the entity by the case of its first letter.
func (e *Entity) Kind() EntityKind {
	r, _ := utf8.DecodeRuneInString(e.Name)
	if unicode.IsUpper(r) {
		return KindSchema
	}
	return KindEndpoint
}

func (e *Entity) IsSchema() bool { return e.Kind() == KindSchema }

func (e *Entity) IsEndpoint() bool { return e.Kind() == KindEndpoint }

// Tag returns the first field discriminant, if any.
func (e *Entity) Tag() *Tag {
	for _, f := range e.Fields {
		if f.Tag != nil {
			return f.Tag
		}
	}
	return nil
}

// Field looks up a field by name.
func (e *Entity) Field(name string) *Field {
	for _, f := range e.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Dependencies lists the distinct entities referenced by the fields,
// the result type and the parent, in first-seen order.
func (e *Entity) Dependencies() []*Entity {
	var out []*Entity
	seen := make(map[*Entity]bool)
	add := func(d *Entity) {
		if d != nil && !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	for _, f := range e.Fields {
		for _, a := range f.Type.Alts {
			add(a.Entity)
		}
	}
	if e.Result != nil {
		for _, a := range e.Result.Alts {
			add(a.Entity)
		}
	}
	add(e.Parent)
	return out
}

// Group is the set of entities under one top-level heading.
type Group struct {
	Name         string
	Entities     []*Entity
	Descriptions []string // text not attributable to any entity
}

// Catalogue is the full extraction result.
type Catalogue struct {
	Version string
	Groups  []*Group

	index map[string]*Entity
}

// Entities yields every entity in document order.
func (c *Catalogue) Entities() iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for _, g := range c.Groups {
			for _, e := range g.Entities {
				if !yield(e) {
					return
				}
			}
		}
	}
}

func (c *Catalogue) Schemas() []*Entity { return c.filter(KindSchema) }

func (c *Catalogue) Endpoints() []*Entity { return c.filter(KindEndpoint) }

func (c *Catalogue) filter(k EntityKind) []*Entity {
	var out []*Entity
	for e := range c.Entities() {
		if e.Kind() == k {
			out = append(out, e)
		}
	}
	return out
}
