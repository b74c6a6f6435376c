package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ovasilenko/canonry/internal/model"
)

func testEntity() model.EntityDocument {
	return model.EntityDocument{
		Name:        "Person",
		Type:        "OOTB",
		Identifiers: []string{"PersonId", "SSN"},
		Attributes: model.AttributeSet{
			OOTB:   []string{"FirstName", "Gender"},
			Custom: []string{"RoleType"},
		},
		FieldGroups: []model.FieldGroupDocument{
			{
				Name: "Address",
				Type: "OOTB",
				Fields: model.FieldSet{
					OOTB:   []string{"City", "AddressType"},
					Custom: []string{"SourceSystemKey"},
				},
			},
		},
	}
}

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer()

	var buf bytes.Buffer
	if err := r.Render(testEntity(), &buf); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatal("Expected a complete SVG document")
	}
	if !strings.Contains(out, "Person Entity Hierarchy") {
		t.Error("Expected the diagram title")
	}
	for _, label := range []string{"PersonId", "FirstName", "RoleType (custom)", "Address (OOTB)", "SourceSystemKey"} {
		if !strings.Contains(out, label) {
			t.Errorf("Expected label %q in diagram", label)
		}
	}
	if !strings.Contains(out, "Legend:") {
		t.Error("Expected the legend")
	}
}

func TestRenderer_DropdownMarkers(t *testing.T) {
	r := NewRenderer()

	var buf bytes.Buffer
	if err := r.Render(testEntity(), &buf); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Gender, RoleType and AddressType are enumerated fields
	if got := strings.Count(buf.String(), "▼"); got != 3 {
		t.Errorf("Expected 3 dropdown markers, got %d", got)
	}
}

func TestRenderer_RenderFile(t *testing.T) {
	r := NewRenderer()
	path := filepath.Join(t.TempDir(), "person.svg")

	if err := r.RenderFile(testEntity(), path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read diagram: %v", err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("Expected SVG content on disk")
	}
}

func TestRenderer_EmptyEntity(t *testing.T) {
	r := NewRenderer()

	var buf bytes.Buffer
	err := r.Render(model.EntityDocument{Name: "CustomMasterEntity"}, &buf)
	if err != nil {
		t.Fatalf("Expected no error for an empty entity, got %v", err)
	}
	if !strings.Contains(buf.String(), "CustomMasterEntity") {
		t.Error("Expected the entity box even with no items")
	}
}
