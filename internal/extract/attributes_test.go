package extract

import (
	"testing"

	"github.com/ovasilenko/canonry/internal/corpus"
	"github.com/ovasilenko/canonry/internal/model"
	"github.com/ovasilenko/canonry/internal/vocab"
)

func testCorpus(reqs ...model.Requirement) *corpus.Corpus {
	return corpus.New("test.csv", reqs)
}

func TestAttributeExtractor_Traceability(t *testing.T) {
	e := NewAttributeExtractor(vocab.Default().Attributes)

	c := testCorpus(
		model.NewRequirement("FR1", "Track the role type for each person", ""),
		model.NewRequirement("FR2", "Capture employment status changes", ""),
		model.NewRequirement("FR3", "Role assignments must sync nightly", ""),
	)

	findings := e.Extract(c)

	var roleType *model.AttributeFinding
	for i := range findings {
		if findings[i].Name == "RoleType" {
			roleType = &findings[i]
		}
	}
	if roleType == nil {
		t.Fatalf("Expected a RoleType finding, got %v", findings)
	}
	if len(roleType.RequirementIDs) != 2 {
		t.Fatalf("Expected FR1 and FR3 to justify RoleType, got %v", roleType.RequirementIDs)
	}
	if roleType.RequirementIDs[0] != "FR1" || roleType.RequirementIDs[1] != "FR3" {
		t.Errorf("Expected ids in corpus order, got %v", roleType.RequirementIDs)
	}

	// Every finding must carry at least one justifying requirement
	for _, f := range findings {
		if len(f.RequirementIDs) == 0 {
			t.Errorf("Finding %q has no justifying requirements", f.Name)
		}
	}
}

func TestAttributeExtractor_IdempotentIDs(t *testing.T) {
	e := NewAttributeExtractor([]vocab.AttributeEntry{
		{Name: "RoleType", Keywords: []string{"role type", "role"}},
	})

	// Both keywords match the same requirement; the id is recorded once
	c := testCorpus(model.NewRequirement("FR1", "The role type drives role assignment", ""))

	findings := e.Extract(c)

	if len(findings) != 1 {
		t.Fatalf("Expected 1 finding, got %d", len(findings))
	}
	if len(findings[0].RequirementIDs) != 1 {
		t.Errorf("Expected FR1 recorded once, got %v", findings[0].RequirementIDs)
	}
}

func TestAttributeExtractor_SortedOutput(t *testing.T) {
	e := NewAttributeExtractor(vocab.Default().Attributes)

	c := testCorpus(
		model.NewRequirement("FR1", "Track the website and industry for organizations", ""),
		model.NewRequirement("FR2", "Capture the classification of each record", ""),
	)

	findings := e.Extract(c)

	for i := 1; i < len(findings); i++ {
		if findings[i-1].Name > findings[i].Name {
			t.Errorf("Expected lexicographic order, got %q before %q", findings[i-1].Name, findings[i].Name)
		}
	}
}

func TestAttributeExtractor_NoMatches(t *testing.T) {
	e := NewAttributeExtractor(vocab.Default().Attributes)

	c := testCorpus(model.NewRequirement("FR1", "Nightly batch jobs must finish by 6am", ""))

	if findings := e.Extract(c); len(findings) != 0 {
		t.Errorf("Expected no findings, got %v", findings)
	}
}
