package model

import "time"

// ExtractionDocument is the output of the extract stage: the
// requirement corpus plus everything discovered in it. Immutable once
// the stage completes; downstream stages receive it by value.
type ExtractionDocument struct {
	RunID             string    `json:"run_id"`
	ExtractionDate    time.Time `json:"extraction_date"`
	SourceFile        string    `json:"source_file"`
	TotalRequirements int       `json:"total_requirements"`

	Requirements []Requirement `json:"functional_requirements"` // Stored for traceability

	Terms         []CandidateTerm             `json:"candidate_terms,omitempty"`
	Entities      []BusinessEntity            `json:"business_entities"`
	Attributes    map[string]EntityAttributes `json:"attributes"` // Keyed by main entity name
	SourceSystems []SourceFinding             `json:"source_systems"`
	Roles         []RoleFinding               `json:"roles"`
	MatchingRules []MatchingRule              `json:"matching_rules"`
	QualityRules  []QualityRule               `json:"data_quality_rules"`

	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// EntityAttributes is the attribute set recorded for a discovered
// entity: the standard template fields plus justified custom ones.
type EntityAttributes struct {
	Standard     []string            `json:"standard"`
	Custom       []string            `json:"custom"`
	CustomWithFR map[string][]string `json:"custom_with_fr"`
}

// MappingDocument is the output of the consolidation stage.
type MappingDocument struct {
	RunID       string    `json:"run_id"`
	MappingDate time.Time `json:"mapping_date"`

	EntityMappings     []EntityMapping     `json:"entity_mappings"`
	FieldGroupMappings []FieldGroupMapping `json:"field_group_mappings"`
	CustomComponents   []CustomComponent   `json:"custom_components"`

	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// EntityMapping is the single consolidated entity produced per run.
// Synthetic marks the last-resort custom entity used when nothing was
// discovered; the mapping still counts toward the one-mapping contract.
type EntityMapping struct {
	Requirement        string              `json:"requirement"`
	Template           string              `json:"ootb_entity"`
	Synthetic          bool                `json:"synthetic,omitempty"`
	Justification      string              `json:"justification"`
	OOTBFields         []string            `json:"ootb_fields_used"`
	CustomFields       []string            `json:"custom_fields_needed"`
	CustomFieldsWithFR map[string][]string `json:"custom_fields_with_fr"`
	MergedRequirements []string            `json:"consolidated_requirements"`
}

// FieldGroupMapping maps a discovered field group onto its standard
// definition. CustomFields always carries the structurally-exempt
// source tracking key.
type FieldGroupMapping struct {
	Requirement   string   `json:"requirement"`
	Group         string   `json:"ootb_field_group"`
	Justification string   `json:"justification"`
	OOTBFields    []string `json:"ootb_fields_used"`
	CustomFields  []string `json:"custom_fields_needed"`
}

// CustomComponent is a field group (or last-resort entity) with no
// standard counterpart.
type CustomComponent struct {
	Type          string   `json:"type"` // "CustomFieldGroup" or "CustomEntity"
	Name          string   `json:"name"`
	Justification string   `json:"justification"`
	Fields        []string `json:"fields"`
}

// ModelDocument is the assembled hierarchical data model.
type ModelDocument struct {
	RunID     string           `json:"run_id"`
	ModelDate time.Time        `json:"model_date"`
	Entities  []EntityDocument `json:"entities"`
}

// EntityDocument is one nested entity: identifiers, attributes and
// field groups in insertion order (the diagram renderer lays items out
// top-to-bottom in that order).
type EntityDocument struct {
	Name         string               `json:"name"`
	OriginalName string               `json:"original_name,omitempty"`
	Type         string               `json:"type"` // "OOTB" or "Custom"
	Purpose      string               `json:"purpose"`
	Identifiers  []string             `json:"identifiers"`
	Attributes   AttributeSet         `json:"attributes"`
	FieldGroups  []FieldGroupDocument `json:"field_groups"`
}

// AttributeSet splits entity attributes into standard and custom, with
// per-custom-field requirement traceability.
type AttributeSet struct {
	OOTB         []string            `json:"ootb"`
	Custom       []string            `json:"custom"`
	CustomWithFR map[string][]string `json:"custom_with_fr,omitempty"`
}

// FieldGroupDocument is one field group attached to an entity.
type FieldGroupDocument struct {
	Name   string   `json:"name"`
	Type   string   `json:"type"` // "OOTB" or "Custom"
	Fields FieldSet `json:"fields"`
}

// FieldSet splits field-group fields into standard and custom.
type FieldSet struct {
	OOTB   []string `json:"ootb,omitempty"`
	Custom []string `json:"custom,omitempty"`
}
