package catalogue

import "testing"

func TestEntity_Kind(t *testing.T) {
	tests := []struct {
		name string
		want EntityKind
	}{
		{"Message", KindSchema},
		{"InlineQueryResultArticle", KindSchema},
		{"sendMessage", KindEndpoint},
		{"getMe", KindEndpoint},
	}
	for _, tt := range tests {
		e := &Entity{Name: tt.name}
		if got := e.Kind(); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.name, tt.want, got)
		}
		if e.IsSchema() == e.IsEndpoint() {
			t.Errorf("%s: exactly one of schema/endpoint must hold", tt.name)
		}
	}
}

func TestType_Flags(t *testing.T) {
	single := Type{Alts: []Alt{PrimitiveAlt(Integer)}, Required: true}
	if single.Union() || single.Optional() {
		t.Errorf("single required type: union=%v optional=%v", single.Union(), single.Optional())
	}

	union := Type{Alts: []Alt{PrimitiveAlt(Integer), PrimitiveAlt(String)}}
	if !union.Union() || !union.Optional() {
		t.Errorf("optional union: union=%v optional=%v", union.Union(), union.Optional())
	}
}

func TestType_String(t *testing.T) {
	msg := &Entity{Name: "Message", Anchor: "message"}
	tests := []struct {
		typ  Type
		want string
	}{
		{Type{Alts: []Alt{PrimitiveAlt(Integer)}, Required: true}, "Integer"},
		{Type{Alts: []Alt{PrimitiveAlt(String)}, Array: 2, Required: true}, "Array of Array of String"},
		{Type{Alts: []Alt{ReferenceAlt(msg), PrimitiveAlt(Boolean)}, Required: true}, "Message or Boolean"},
		{Type{Alts: []Alt{PlaceholderAlt("#chat")}}, "optional #chat"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestEntity_TagAndDependencies(t *testing.T) {
	chat := &Entity{Name: "Chat", Anchor: "chat"}
	user := &Entity{Name: "User", Anchor: "user"}
	member := &Entity{Name: "ChatMember", Anchor: "chatmember"}
	owner := &Entity{
		Name:   "ChatMemberOwner",
		Anchor: "chatmemberowner",
		Parent: member,
		Fields: []*Field{
			{Name: "status", Type: Type{Alts: []Alt{PrimitiveAlt(String)}, Required: true}, Tag: &Tag{Name: "status", Value: "creator"}},
			{Name: "user", Type: Type{Alts: []Alt{ReferenceAlt(user)}, Required: true}},
			{Name: "chat", Type: Type{Alts: []Alt{ReferenceAlt(chat), ReferenceAlt(user)}}},
		},
	}

	if tag := owner.Tag(); tag == nil || tag.Value != "creator" {
		t.Errorf("expected creator tag, got %+v", tag)
	}

	deps := owner.Dependencies()
	want := []*Entity{user, chat, member}
	if len(deps) != len(want) {
		t.Fatalf("expected %d dependencies, got %d", len(want), len(deps))
	}
	for i := range want {
		if deps[i] != want[i] {
			t.Errorf("dep[%d]: expected %s, got %s", i, want[i].Name, deps[i].Name)
		}
	}
}

func TestCatalogue_Views(t *testing.T) {
	c := newCatalogue()
	if n := len(c.Schemas()); n != 3 {
		t.Errorf("expected 3 schemas, got %d", n)
	}
	if n := len(c.Endpoints()); n != 1 {
		t.Errorf("expected 1 endpoint, got %d", n)
	}

	var order []string
	for e := range c.Entities() {
		order = append(order, e.Name)
	}
	want := []string{"Base", "Alpha", "getAlpha", "Beta"}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("entity[%d]: expected %s, got %s", i, want[i], order[i])
		}
	}
}
