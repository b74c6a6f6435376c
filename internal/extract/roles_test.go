package extract

import (
	"strings"
	"testing"

	"github.com/ovasilenko/canonry/internal/model"
	"github.com/ovasilenko/canonry/internal/vocab"
)

func TestRoleExtractor_FindsRoles(t *testing.T) {
	e := NewRoleExtractor(vocab.Default().RoleKeywords)

	c := testCorpus(
		model.NewRequirement("FR1", "A donor may also be an alumni of the university", ""),
		model.NewRequirement("FR2", "Track every student enrollment", ""),
	)

	findings := e.Extract(c)

	names := make(map[string]bool)
	for _, f := range findings {
		names[f.Name] = true
	}
	for _, want := range []string{"Student", "Alumni", "Donor"} {
		if !names[want] {
			t.Errorf("Expected role %q, got %v", want, findings)
		}
	}
	// Output follows keyword declaration order: student precedes donor
	if findings[0].Name != "Student" {
		t.Errorf("Expected 'Student' first in keyword order, got %q", findings[0].Name)
	}
}

func TestRoleExtractor_PurposeFromFirstMention(t *testing.T) {
	e := NewRoleExtractor(vocab.Default().RoleKeywords)

	c := testCorpus(
		model.NewRequirement("FR1", "Track donor giving history", ""),
		model.NewRequirement("FR2", "A donor may pledge recurring gifts", ""),
	)

	findings := e.Extract(c)

	if len(findings) != 1 {
		t.Fatalf("Expected 1 finding, got %d", len(findings))
	}
	if !strings.Contains(findings[0].Purpose, "giving history") {
		t.Errorf("Expected purpose from the first mention, got %q", findings[0].Purpose)
	}
}

func TestRoleExtractor_NoRoles(t *testing.T) {
	e := NewRoleExtractor(vocab.Default().RoleKeywords)

	c := testCorpus(model.NewRequirement("FR1", "Nightly jobs reconcile record counts", ""))

	if findings := e.Extract(c); len(findings) != 0 {
		t.Errorf("Expected no findings, got %v", findings)
	}
}
