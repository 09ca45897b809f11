package catalogue

import "fmt"

// ClassificationError reports a type word the mapper was never taught.
type ClassificationError struct {
	Token string
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("unknown type token %q", e.Token)
}

// ReferenceError reports an anchor with no entity behind it.
type ReferenceError struct {
	Anchor string
	Entity string // referring entity, empty for direct lookups
}

func (e *ReferenceError) Error() string {
	if e.Entity == "" {
		return fmt.Sprintf("unknown anchor %q", e.Anchor)
	}
	return fmt.Sprintf("unknown anchor %q referenced by %s", e.Anchor, e.Entity)
}

// StructuralError reports that the document does not have the expected shape.
type StructuralError struct {
	What string
	Text string
}

func (e *StructuralError) Error() string {
	if e.Text == "" {
		return e.What
	}
	return fmt.Sprintf("%s: %q", e.What, e.Text)
}
