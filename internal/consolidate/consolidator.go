// Package consolidate merges the discovered entities and attribute
// findings into a single chosen entity template with justified custom
// extensions. Consolidation never fails: the worst case is the
// synthetic custom-entity fallback.
package consolidate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ovasilenko/canonry/internal/model"
	"github.com/ovasilenko/canonry/internal/vocab"
)

// unifiedName labels the single consolidated mapping every run emits.
const unifiedName = "Unified Master Entity"

// syntheticName labels the last-resort custom entity.
const syntheticName = "CustomMasterEntity"

// Consolidator selects one entity template to host all requirements
// and folds in custom fields that trace back to requirement ids.
type Consolidator struct {
	templates  map[model.EntityRole]vocab.Template
	groups     map[string]vocab.FieldGroupDef
	suppressed []string
	structural []string
}

// NewConsolidator creates a consolidator over the standard templates.
func NewConsolidator() *Consolidator {
	return &Consolidator{
		templates:  vocab.Templates(),
		groups:     vocab.FieldGroups(),
		suppressed: vocab.SuppressedFields(),
		structural: vocab.StructuralFields(),
	}
}

// Consolidate produces the mapping document for an extraction result.
// Template choice: Person if any Person-role entity exists, or if
// neither Person nor Organization exists (total-absence default);
// Organization only when it is present without Person. Product is
// never auto-selected by this rule; see the note on selectTemplate.
func (co *Consolidator) Consolidate(ext *model.ExtractionDocument) *model.MappingDocument {
	doc := &model.MappingDocument{
		EntityMappings:     []model.EntityMapping{},
		FieldGroupMappings: []model.FieldGroupMapping{},
		CustomComponents:   []model.CustomComponent{},
	}

	var persons, orgs []model.BusinessEntity
	for _, ent := range ext.Entities {
		switch ent.Role {
		case model.RolePerson:
			persons = append(persons, ent)
		case model.RoleOrganization:
			orgs = append(orgs, ent)
		}
	}

	if len(ext.Entities) == 0 {
		doc.EntityMappings = append(doc.EntityMappings, co.syntheticMapping(ext))
		doc.Diagnostics = append(doc.Diagnostics, model.Diagnostic{
			Kind:    model.DiagSyntheticEntity,
			Subject: syntheticName,
			Message: "no qualifying entities discovered; emitting synthetic custom entity as last resort",
		})
	} else {
		mapping, diags := co.templateMapping(ext, persons, orgs)
		doc.EntityMappings = append(doc.EntityMappings, mapping)
		doc.Diagnostics = append(doc.Diagnostics, diags...)
	}

	co.mapFieldGroups(ext, doc)
	return doc
}

// templateMapping builds the single consolidated entity mapping.
func (co *Consolidator) templateMapping(ext *model.ExtractionDocument, persons, orgs []model.BusinessEntity) (model.EntityMapping, []model.Diagnostic) {
	var diags []model.Diagnostic

	template := co.selectTemplate(persons, orgs)
	base := co.baseFields(template)

	custom := newFieldAccumulator()

	var merged []string
	switch template {
	case model.RolePerson:
		for _, ent := range persons {
			diags = append(diags, co.foldEntityAttributes(ext, ent, custom)...)
			merged = append(merged, ent.Name)
		}
		// Organization data, if present, rides on the Person template:
		// its custom attributes and any standard fields independently
		// justified by a requirement.
		for _, ent := range orgs {
			diags = append(diags, co.foldEntityAttributes(ext, ent, custom)...)
			merged = append(merged, ent.Name)
		}
		if len(orgs) > 0 {
			diags = append(diags, co.foldTemplateFields(ext, model.RoleOrganization, base, custom)...)
		}
	case model.RoleOrganization:
		for _, ent := range orgs {
			diags = append(diags, co.foldEntityAttributes(ext, ent, custom)...)
			merged = append(merged, ent.Name)
		}
		// Person-template fields are candidates regardless of whether a
		// Person entity was discovered; unmentioned ones are skipped
		// with a diagnostic rather than silently carried over.
		diags = append(diags, co.foldTemplateFields(ext, model.RolePerson, base, custom)...)
	}

	justification := fmt.Sprintf(
		"Consolidated all requirements (%s) into single %s entity template. "+
			"Using the standard template to minimize customization. "+
			"Additional fields added as custom attributes only where the template cannot accommodate requirements and a functional requirement justifies them.",
		strings.Join(merged, ", "), template)

	return model.EntityMapping{
		Requirement:        unifiedName,
		Template:           string(template),
		Justification:      justification,
		OOTBFields:         base,
		CustomFields:       custom.names,
		CustomFieldsWithFR: custom.frs,
		MergedRequirements: merged,
	}, diags
}

// selectTemplate implements the Person > Organization precedence with
// the Person-on-absence default. Product is intentionally unreachable
// here: a Product-only run falls through to the absence default.
func (co *Consolidator) selectTemplate(persons, orgs []model.BusinessEntity) model.EntityRole {
	if len(persons) > 0 || len(orgs) == 0 {
		return model.RolePerson
	}
	return model.RoleOrganization
}

// baseFields is the chosen template's standard field set minus the
// globally suppressed sensitive identifiers.
func (co *Consolidator) baseFields(template model.EntityRole) []string {
	var fields []string
	for _, f := range co.templates[template].Fields {
		if !co.isSuppressed(f) {
			fields = append(fields, f)
		}
	}
	return fields
}

// foldEntityAttributes merges one discovered entity's recorded custom
// attributes into the accumulator. Attributes with traceability data
// require at least one justifying requirement; when no traceability
// data exists at all for the entity, the plain custom list is carried
// over for backward compatibility and logged.
func (co *Consolidator) foldEntityAttributes(ext *model.ExtractionDocument, ent model.BusinessEntity, acc *fieldAccumulator) []model.Diagnostic {
	attrs, ok := ext.Attributes[ent.Name]
	if !ok {
		return nil
	}

	if attrs.CustomWithFR != nil {
		names := make([]string, 0, len(attrs.CustomWithFR))
		for name := range attrs.CustomWithFR {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if frs := attrs.CustomWithFR[name]; len(frs) > 0 {
				acc.add(name, frs)
			}
		}
		return nil
	}

	var diags []model.Diagnostic
	for _, name := range attrs.Custom {
		acc.add(name, nil)
		diags = append(diags, model.Diagnostic{
			Kind:    model.DiagCompatibilityCarryover,
			Subject: name,
			Message: fmt.Sprintf("%s carried over without traceability data for %q", name, ent.Name),
		})
	}
	return diags
}

// foldTemplateFields checks each standard field of the non-chosen
// template against the requirement corpus: justified fields become
// custom fields with their requirement ids, the rest are skipped with
// a diagnostic.
func (co *Consolidator) foldTemplateFields(ext *model.ExtractionDocument, other model.EntityRole, base []string, acc *fieldAccumulator) []model.Diagnostic {
	var diags []model.Diagnostic
	for _, field := range co.templates[other].Fields {
		if co.isSuppressed(field) || contains(base, field) {
			continue
		}
		var frs []string
		needle := strings.ToLower(field)
		for _, req := range ext.Requirements {
			if strings.Contains(req.NormalizedText, needle) {
				frs = append(frs, req.ID)
			}
		}
		if len(frs) == 0 {
			diags = append(diags, model.Diagnostic{
				Kind:    model.DiagSkippedField,
				Subject: field,
				Message: fmt.Sprintf("skipping %s: no functional requirement justifies it", field),
			})
			continue
		}
		acc.add(field, frs)
	}
	return diags
}

// syntheticMapping is the last-resort record when nothing qualified:
// the default template's field set plus whatever custom attributes the
// extractor found, explicitly marked as synthetic.
func (co *Consolidator) syntheticMapping(ext *model.ExtractionDocument) model.EntityMapping {
	custom := newFieldAccumulator()
	attrNames := make([]string, 0, len(ext.Attributes))
	for name := range ext.Attributes {
		attrNames = append(attrNames, name)
	}
	sort.Strings(attrNames)
	for _, entName := range attrNames {
		names := make([]string, 0, len(ext.Attributes[entName].CustomWithFR))
		for n := range ext.Attributes[entName].CustomWithFR {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			if frs := ext.Attributes[entName].CustomWithFR[n]; len(frs) > 0 {
				custom.add(n, frs)
			}
		}
	}

	return model.EntityMapping{
		Requirement:        syntheticName,
		Template:           string(model.RolePerson),
		Synthetic:          true,
		Justification:      "No entity template could host any discovered entity. Synthetic custom entity created as last resort, carrying the default template fields and the justified custom attributes found.",
		OOTBFields:         co.baseFields(model.RolePerson),
		CustomFields:       custom.names,
		CustomFieldsWithFR: custom.frs,
		MergedRequirements: []string{},
	}
}

// mapFieldGroups records standard field-group mappings and custom
// field-group components for the discovered group entities.
func (co *Consolidator) mapFieldGroups(ext *model.ExtractionDocument, doc *model.MappingDocument) {
	for _, ent := range ext.Entities {
		switch ent.Role {
		case model.RoleFieldGroup:
			def, ok := co.groups[ent.Name]
			if !ok {
				continue
			}
			doc.FieldGroupMappings = append(doc.FieldGroupMappings, model.FieldGroupMapping{
				Requirement:   ent.Name + " field group",
				Group:         ent.Name,
				Justification: ent.Purpose,
				OOTBFields:    def.Fields,
				CustomFields:  append([]string(nil), co.structural...),
			})
		case model.RoleCustomFieldGroup:
			doc.CustomComponents = append(doc.CustomComponents, model.CustomComponent{
				Type:          "CustomFieldGroup",
				Name:          ent.Name,
				Justification: ent.Purpose,
				Fields:        co.customGroupFields(ent.Name),
			})
		}
	}
}

// customGroupFields infers a field set for a custom field group from
// its name.
func (co *Consolidator) customGroupFields(name string) []string {
	lower := strings.ToLower(name)
	switch {
	case lower == "role":
		return []string{"RoleType", "RoleStatus", "StartDate", "EndDate", "SourceSystem", "SourceSystemKey"}
	case strings.Contains(lower, "relationship"):
		return []string{"RelatedEntityId", "RelationshipType", "StartDate", "EndDate", "SourceSystem", "SourceSystemKey"}
	default:
		return []string{"Type", "Status", "StartDate", "EndDate", "SourceSystem", "SourceSystemKey"}
	}
}

func (co *Consolidator) isSuppressed(field string) bool {
	return contains(co.suppressed, field)
}

func contains(fields []string, field string) bool {
	for _, f := range fields {
		if f == field {
			return true
		}
	}
	return false
}

// fieldAccumulator keeps custom fields in insertion order with their
// justifying requirement ids merged idempotently.
type fieldAccumulator struct {
	names []string
	frs   map[string][]string
}

func newFieldAccumulator() *fieldAccumulator {
	return &fieldAccumulator{names: []string{}, frs: make(map[string][]string)}
}

func (a *fieldAccumulator) add(name string, frs []string) {
	if _, ok := a.frs[name]; !ok {
		a.names = append(a.names, name)
		a.frs[name] = []string{}
	}
	for _, fr := range frs {
		if !contains(a.frs[name], fr) {
			a.frs[name] = append(a.frs[name], fr)
		}
	}
}
