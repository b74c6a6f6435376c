package pipeline

import (
	"strings"
	"testing"
	"time"

	"github.com/ovasilenko/canonry/internal/model"
)

func testExtraction() *model.ExtractionDocument {
	return &model.ExtractionDocument{
		RunID:             "run-1",
		ExtractionDate:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		SourceFile:        "requirements.xlsx",
		TotalRequirements: 3,
		Entities: []model.BusinessEntity{
			{Name: "Person", Role: model.RolePerson, Purpose: "Individuals"},
		},
		Attributes: map[string]model.EntityAttributes{
			"Person": {
				Standard:     []string{"FirstName", "LastName"},
				Custom:       []string{"RoleType"},
				CustomWithFR: map[string][]string{"RoleType": {"FR1", "FR3"}},
			},
		},
		SourceSystems: []model.SourceFinding{
			{Name: "Banner", IntegrationMode: "JDBC"},
		},
		Roles: []model.RoleFinding{
			{Name: "Student", Purpose: "track every student enrollment..."},
		},
		MatchingRules: []model.MatchingRule{
			{Rule: "Email matching", Criteria: "Match on lowercased email"},
		},
		QualityRules: []model.QualityRule{
			{Rule: "Address standardization", Approach: "Centralized standardization"},
		},
		Diagnostics: []model.Diagnostic{
			{Kind: model.DiagFallbackClassification, Subject: "Widget", Message: "defaulting to Person"},
		},
	}
}

func TestExtractionReport(t *testing.T) {
	report := ExtractionReport(testExtraction())

	for _, want := range []string{
		"# Step 1: Extracted Requirements Analysis",
		"**Total Requirements Processed:** 3",
		"**Person** (Person): Individuals",
		"### Person Entity",
		"- RoleType (FR1, FR3)",
		"**Banner**: JDBC",
		"**Student**:",
		"**Email matching**:",
		"**Address standardization**:",
		"## 1.7 Diagnostics",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("Expected report to contain %q", want)
		}
	}
}

func TestMappingReport(t *testing.T) {
	mapping := &model.MappingDocument{
		EntityMappings: []model.EntityMapping{
			{
				Requirement:        "Unified Master Entity",
				Template:           "Person",
				Justification:      "Consolidated all requirements",
				OOTBFields:         []string{"FirstName"},
				CustomFields:       []string{"RoleType"},
				CustomFieldsWithFR: map[string][]string{"RoleType": {"FR1"}},
				MergedRequirements: []string{"Person"},
			},
		},
		FieldGroupMappings: []model.FieldGroupMapping{
			{Requirement: "Address field group", Group: "Address", OOTBFields: []string{"City"}},
		},
		CustomComponents: []model.CustomComponent{
			{Type: "CustomFieldGroup", Name: "Role", Fields: []string{"RoleType"}},
		},
	}

	report := MappingReport(mapping)

	for _, want := range []string{
		"# Step 2: Mapping to Standard Entities",
		"- **Entity Template:** Person",
		"- RoleType: FR1",
		"### Address field group",
		"### Role (CustomFieldGroup)",
		"- **Custom Fields Needed:** None",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("Expected report to contain %q", want)
		}
	}
}

func TestMappingReport_SyntheticFlag(t *testing.T) {
	mapping := &model.MappingDocument{
		EntityMappings: []model.EntityMapping{
			{Requirement: "CustomMasterEntity", Template: "Person", Synthetic: true},
		},
	}

	if !strings.Contains(MappingReport(mapping), "**Synthetic:** yes") {
		t.Error("Expected synthetic marker in report")
	}
}

func TestModelReport(t *testing.T) {
	doc := &model.ModelDocument{
		Entities: []model.EntityDocument{
			{
				Name:         "Person",
				OriginalName: "Unified Master Entity",
				Type:         "OOTB",
				Purpose:      "Golden record",
				Identifiers:  []string{"PersonId", "SSN"},
				Attributes: model.AttributeSet{
					OOTB:         []string{"FirstName"},
					Custom:       []string{"RoleType"},
					CustomWithFR: map[string][]string{"RoleType": {"FR1"}},
				},
				FieldGroups: []model.FieldGroupDocument{
					{
						Name: "Address",
						Type: "OOTB",
						Fields: model.FieldSet{
							OOTB:   []string{"City"},
							Custom: []string{"SourceSystemKey"},
						},
					},
				},
			},
		},
	}

	report := ModelReport(doc, testExtraction())

	for _, want := range []string{
		"# Step 3: Hierarchical Data Model Design",
		"## 3.1 Entity: Person (Unified Master Entity)",
		"- PersonId (generated)",
		"- SSN\n",
		"- RoleType (FR1)",
		"#### Address (OOTB - Extended)",
		"- SourceSystemKey (unique identification from source systems)",
		"## 3.2 Source System Integration",
		"**Banner** (JDBC)",
		"## 3.3 Matching and Survivorship",
		"## 3.4 Data Quality Rules",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("Expected report to contain %q", want)
		}
	}
}

func TestModelReport_NilExtraction(t *testing.T) {
	doc := &model.ModelDocument{
		Entities: []model.EntityDocument{{Name: "Person", OriginalName: "Unified Master Entity"}},
	}

	report := ModelReport(doc, nil)
	if strings.Contains(report, "## 3.2 Source System Integration") {
		t.Error("Expected no source-system section without extraction data")
	}
}
