package consolidate

import (
	"testing"

	"github.com/ovasilenko/canonry/internal/model"
)

func personOnlyExtraction() *model.ExtractionDocument {
	return &model.ExtractionDocument{
		Requirements: []model.Requirement{
			model.NewRequirement("FR1", "Track the role type for each constituent", ""),
		},
		Entities: []model.BusinessEntity{
			{Name: "Person", Role: model.RolePerson, Purpose: "Individuals"},
		},
		Attributes: map[string]model.EntityAttributes{
			"Person": {
				Custom:       []string{"RoleType"},
				CustomWithFR: map[string][]string{"RoleType": {"FR1"}},
			},
		},
	}
}

func TestConsolidator_PersonTemplate(t *testing.T) {
	co := NewConsolidator()

	doc := co.Consolidate(personOnlyExtraction())

	if len(doc.EntityMappings) != 1 {
		t.Fatalf("Expected exactly 1 entity mapping, got %d", len(doc.EntityMappings))
	}
	m := doc.EntityMappings[0]
	if m.Template != "Person" {
		t.Errorf("Expected Person template, got %q", m.Template)
	}
	if m.Synthetic {
		t.Error("Expected a template mapping, not a synthetic one")
	}

	// Sensitive identifiers never appear in the general field list
	for _, f := range m.OOTBFields {
		if f == "SSN" || f == "TaxID" {
			t.Errorf("Expected %q to be suppressed from standard fields", f)
		}
	}

	found := false
	for _, f := range m.CustomFields {
		if f == "RoleType" {
			found = true
		}
	}
	if !found {
		t.Fatalf("Expected RoleType custom field, got %v", m.CustomFields)
	}
	if frs := m.CustomFieldsWithFR["RoleType"]; len(frs) != 1 || frs[0] != "FR1" {
		t.Errorf("Expected RoleType traced to FR1, got %v", frs)
	}
}

func TestConsolidator_OrganizationTemplateChecksPersonFields(t *testing.T) {
	co := NewConsolidator()

	ext := &model.ExtractionDocument{
		Requirements: []model.Requirement{
			model.NewRequirement("FR2", "Track DateOfBirth for primary contacts", ""),
		},
		Entities: []model.BusinessEntity{
			{Name: "Organization", Role: model.RoleOrganization},
		},
		Attributes: map[string]model.EntityAttributes{
			"Organization": {CustomWithFR: map[string][]string{}},
		},
	}

	doc := co.Consolidate(ext)

	m := doc.EntityMappings[0]
	if m.Template != "Organization" {
		t.Fatalf("Expected Organization template, got %q", m.Template)
	}

	// A Person-template field mentioned in a requirement is folded in
	// as a justified custom field.
	if frs := m.CustomFieldsWithFR["DateOfBirth"]; len(frs) != 1 || frs[0] != "FR2" {
		t.Errorf("Expected DateOfBirth folded with FR2, got %v", m.CustomFieldsWithFR)
	}

	// Unmentioned Person fields are skipped with a diagnostic, never
	// carried over silently.
	skippedFirstName := false
	for _, d := range doc.Diagnostics {
		if d.Kind == model.DiagSkippedField && d.Subject == "FirstName" {
			skippedFirstName = true
		}
	}
	if !skippedFirstName {
		t.Error("Expected a skipped-field diagnostic for FirstName")
	}
	for _, f := range m.CustomFields {
		if f == "FirstName" {
			t.Error("Expected FirstName not to be folded without justification")
		}
	}
}

func TestConsolidator_PersonWinsOverOrganization(t *testing.T) {
	co := NewConsolidator()

	ext := personOnlyExtraction()
	ext.Entities = append(ext.Entities, model.BusinessEntity{Name: "Organization", Role: model.RoleOrganization})
	ext.Attributes["Organization"] = model.EntityAttributes{CustomWithFR: map[string][]string{}}

	doc := co.Consolidate(ext)

	m := doc.EntityMappings[0]
	if m.Template != "Person" {
		t.Errorf("Expected Person to win template selection, got %q", m.Template)
	}
	if len(m.MergedRequirements) != 2 {
		t.Errorf("Expected both entities merged, got %v", m.MergedRequirements)
	}
}

func TestConsolidator_SyntheticFallback(t *testing.T) {
	co := NewConsolidator()

	ext := &model.ExtractionDocument{
		Requirements: []model.Requirement{
			model.NewRequirement("FR1", "Track audit timestamps", ""),
		},
		Entities:   nil,
		Attributes: map[string]model.EntityAttributes{},
	}

	doc := co.Consolidate(ext)

	// Consolidation never produces zero mappings
	if len(doc.EntityMappings) != 1 {
		t.Fatalf("Expected 1 synthetic mapping, got %d", len(doc.EntityMappings))
	}
	m := doc.EntityMappings[0]
	if !m.Synthetic {
		t.Error("Expected the mapping to be marked synthetic")
	}
	if m.Requirement != "CustomMasterEntity" {
		t.Errorf("Expected CustomMasterEntity, got %q", m.Requirement)
	}

	found := false
	for _, d := range doc.Diagnostics {
		if d.Kind == model.DiagSyntheticEntity {
			found = true
		}
	}
	if !found {
		t.Error("Expected a synthetic-entity diagnostic")
	}
}

func TestConsolidator_FieldGroupMappings(t *testing.T) {
	co := NewConsolidator()

	ext := personOnlyExtraction()
	ext.Entities = append(ext.Entities,
		model.BusinessEntity{Name: "Address", Role: model.RoleFieldGroup, Purpose: "Mailing addresses"},
		model.BusinessEntity{Name: "Role", Role: model.RoleCustomFieldGroup, Purpose: "Business roles"},
	)

	doc := co.Consolidate(ext)

	if len(doc.FieldGroupMappings) != 1 {
		t.Fatalf("Expected 1 field group mapping, got %d", len(doc.FieldGroupMappings))
	}
	fg := doc.FieldGroupMappings[0]
	if fg.Group != "Address" {
		t.Errorf("Expected Address group, got %q", fg.Group)
	}
	if len(fg.CustomFields) != 1 || fg.CustomFields[0] != "SourceSystemKey" {
		t.Errorf("Expected structural SourceSystemKey custom field, got %v", fg.CustomFields)
	}

	if len(doc.CustomComponents) != 1 {
		t.Fatalf("Expected 1 custom component, got %d", len(doc.CustomComponents))
	}
	comp := doc.CustomComponents[0]
	if comp.Name != "Role" || comp.Type != "CustomFieldGroup" {
		t.Errorf("Expected Role custom field group, got %+v", comp)
	}
	hasRoleType := false
	for _, f := range comp.Fields {
		if f == "RoleType" {
			hasRoleType = true
		}
	}
	if !hasRoleType {
		t.Errorf("Expected RoleType in the Role group field set, got %v", comp.Fields)
	}
}

func TestConsolidator_CompatibilityCarryover(t *testing.T) {
	co := NewConsolidator()

	ext := personOnlyExtraction()
	// No traceability data at all for this entity
	ext.Attributes["Person"] = model.EntityAttributes{Custom: []string{"LegacyFlag"}}

	doc := co.Consolidate(ext)

	m := doc.EntityMappings[0]
	found := false
	for _, f := range m.CustomFields {
		if f == "LegacyFlag" {
			found = true
		}
	}
	if !found {
		t.Fatalf("Expected LegacyFlag carried over, got %v", m.CustomFields)
	}

	carryover := false
	for _, d := range doc.Diagnostics {
		if d.Kind == model.DiagCompatibilityCarryover && d.Subject == "LegacyFlag" {
			carryover = true
		}
	}
	if !carryover {
		t.Error("Expected a compatibility-carryover diagnostic")
	}
}
