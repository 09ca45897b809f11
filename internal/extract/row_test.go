package extract

import (
	"errors"
	"testing"

	"github.com/dgallion1/botschema/internal/catalogue"
	"github.com/dgallion1/botschema/internal/parser"
)

const endpointHeader = `<thead><tr><th>Parameter</th><th>Type</th><th>Required</th><th>Description</th></tr></thead>`
const schemaHeader = `<thead><tr><th>Field</th><th>Type</th><th>Description</th></tr></thead>`

func TestExtractRow_EndpointArrayOptional(t *testing.T) {
	table := parseFragment(t, `<table>`+endpointHeader+`<tbody>
<tr><td>count</td><td>Array of Integer</td><td>Optional</td><td>How many.</td></tr>
</tbody></table>`, "table")

	fields, layout, err := ExtractTable(table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if layout != EndpointTable {
		t.Fatalf("expected endpoint layout, got %d", layout)
	}
	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}
	f := fields[0]
	if f.Name != "count" {
		t.Errorf("expected name count, got %q", f.Name)
	}
	if f.Type.Array != 1 {
		t.Errorf("expected array depth 1, got %d", f.Type.Array)
	}
	if f.Required() {
		t.Error("expected optional field")
	}
	if len(f.Type.Alts) != 1 || f.Type.Alts[0].Primitive != catalogue.Integer {
		t.Errorf("expected [Integer], got %v", f.Type.Alts)
	}
	if f.Type.Union() {
		t.Error("single alternative must not be a union")
	}
}

func TestExtractRow_UnionsAndAnchors(t *testing.T) {
	table := parseFragment(t, `<table>`+endpointHeader+`<tbody>
<tr><td>chat_id</td><td>Integer or String</td><td>Yes</td><td>Target.</td></tr>
<tr><td>media</td><td>Array of <a href="#inputmediaaudio">InputMediaAudio</a>, <a href="#inputmediaphoto">InputMediaPhoto</a> and <a href="#inputmediavideo">InputMediaVideo</a></td><td>Yes</td><td>Album.</td></tr>
<tr><td>grid</td><td>Array of Array of <a href="#photosize">PhotoSize</a></td><td>Yes</td><td>Rows.</td></tr>
</tbody></table>`, "table")

	fields, _, err := ExtractTable(table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(fields))
	}

	chatID := fields[0]
	if !chatID.Required() || !chatID.Type.Union() || len(chatID.Type.Alts) != 2 {
		t.Errorf("chat_id: expected required union of 2, got %+v", chatID.Type)
	}

	media := fields[1]
	if media.Type.Array != 1 {
		t.Errorf("media: expected array depth 1, got %d", media.Type.Array)
	}
	want := []string{"#inputmediaaudio", "#inputmediaphoto", "#inputmediavideo"}
	if len(media.Type.Alts) != len(want) {
		t.Fatalf("media: expected %d alternatives, got %v", len(want), media.Type.Alts)
	}
	for i, w := range want {
		a := media.Type.Alts[i]
		if a.Kind != catalogue.AltPlaceholder || a.Anchor != w {
			t.Errorf("media alt[%d]: expected placeholder %s, got %+v", i, w, a)
		}
	}

	if grid := fields[2]; grid.Type.Array != 2 {
		t.Errorf("grid: expected array depth 2, got %d", grid.Type.Array)
	}
}

func TestExtractRow_SchemaTagFromDescription(t *testing.T) {
	table := parseFragment(t, `<table>`+schemaHeader+`<tbody>
<tr><td>type</td><td>String</td><td>Type of the chat, must be <em>private</em></td></tr>
<tr><td>note</td><td>String</td><td><em>Optional</em>. Free text.</td></tr>
</tbody></table>`, "table")

	fields, layout, err := ExtractTable(table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if layout != SchemaTable {
		t.Fatalf("expected schema layout, got %d", layout)
	}

	typ := fields[0]
	if typ.Tag == nil || typ.Tag.Name != "type" || typ.Tag.Value != "private" {
		t.Errorf("expected tag type=private, got %+v", typ.Tag)
	}
	if typ.Description.Text != "Type of the chat, must be private" {
		t.Errorf("unexpected description text %q", typ.Description.Text)
	}

	// Schema rows are required at extraction time; the walker applies
	// the "Optional" description convention afterwards.
	for _, f := range fields {
		if !f.Required() {
			t.Errorf("%s: expected required at extraction time", f.Name)
		}
	}
}

func TestExtractRow_Errors(t *testing.T) {
	t.Run("unknown type", func(t *testing.T) {
		table := parseFragment(t, `<table>`+schemaHeader+`<tbody>
<tr><td>file</td><td>InputFile</td><td>Upload.</td></tr></tbody></table>`, "table")
		_, _, err := ExtractTable(table)
		var ce *catalogue.ClassificationError
		if !errors.As(err, &ce) || ce.Token != "InputFile" {
			t.Fatalf("expected ClassificationError for InputFile, got %v", err)
		}
	})

	t.Run("short row", func(t *testing.T) {
		table := parseFragment(t, `<table>`+endpointHeader+`<tbody>
<tr><td>x</td><td>Integer</td></tr></tbody></table>`, "table")
		_, _, err := ExtractTable(table)
		var se *catalogue.StructuralError
		if !errors.As(err, &se) {
			t.Fatalf("expected StructuralError, got %v", err)
		}
	})

	t.Run("unexpected header", func(t *testing.T) {
		table := parseFragment(t, `<table><tr><th>A</th><th>B</th></tr><tr><td>1</td><td>2</td></tr></table>`, "table")
		_, err := LayoutOf(table)
		var se *catalogue.StructuralError
		if !errors.As(err, &se) {
			t.Fatalf("expected StructuralError, got %v", err)
		}
	})
}

func TestFlattenLinks(t *testing.T) {
	td := parseFragment(t, `<table><tr><td>Array of <a href="#message">Message</a> or <em>True</em></td></tr></table>`, "td")
	got := flattenLinks(td)
	if got != "Array of #message or True" {
		t.Errorf("unexpected flattened text %q", got)
	}
	if parser.TextContent(td) != "Array of Message or True" {
		t.Errorf("text content should keep link labels, got %q", parser.TextContent(td))
	}
}
