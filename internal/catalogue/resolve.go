package catalogue

import "strings"

// Index builds the anchor lookup. It must run after every entity has been
// added, since references may point forward in document order.
func (c *Catalogue) Index() error {
	c.index = make(map[string]*Entity)
	for e := range c.Entities() {
		if prev, ok := c.index[e.Anchor]; ok {
			return &StructuralError{What: "duplicate anchor " + e.Anchor, Text: prev.Name + ", " + e.Name}
		}
		c.index[e.Anchor] = e
	}
	return nil
}

// Get returns the entity behind anchor, with or without the leading '#'.
func (c *Catalogue) Get(anchor string) (*Entity, error) {
	e, ok := c.index[strings.TrimPrefix(anchor, "#")]
	if !ok {
		return nil, &ReferenceError{Anchor: anchor}
	}
	return e, nil
}

// Resolve replaces every placeholder in field types, child lists and result
// types with a reference to its entity, and links children to their parent.
// Already resolved alternatives are left alone, so a second call is a no-op.
func (c *Catalogue) Resolve() error {
	if c.index == nil {
		if err := c.Index(); err != nil {
			return err
		}
	}
	for e := range c.Entities() {
		for _, f := range e.Fields {
			if err := c.resolveAlts(e, f.Type.Alts); err != nil {
				return err
			}
		}
		if err := c.resolveAlts(e, e.Children); err != nil {
			return err
		}
		for _, child := range e.Children {
			if child.Entity != nil {
				child.Entity.Parent = e
			}
		}
		if e.Result != nil {
			if err := c.resolveAlts(e, e.Result.Alts); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Catalogue) resolveAlts(owner *Entity, alts []Alt) error {
	for i, a := range alts {
		if a.Kind != AltPlaceholder {
			continue
		}
		target, err := c.Get(a.Anchor)
		if err != nil {
			return &ReferenceError{Anchor: a.Anchor, Entity: owner.Name}
		}
		alts[i] = ReferenceAlt(target)
	}
	return nil
}

// Unresolved counts placeholders still present in the catalogue.
func (c *Catalogue) Unresolved() int {
	n := 0
	count := func(alts []Alt) {
		for _, a := range alts {
			if a.Kind == AltPlaceholder {
				n++
			}
		}
	}
	for e := range c.Entities() {
		for _, f := range e.Fields {
			count(f.Type.Alts)
		}
		count(e.Children)
		if e.Result != nil {
			count(e.Result.Alts)
		}
	}
	return n
}
