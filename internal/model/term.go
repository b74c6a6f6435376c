package model

// EntityRole is the semantic role assigned to a discovered term.
type EntityRole string

const (
	RolePerson           EntityRole = "Person"           // Master entity: individuals
	RoleOrganization     EntityRole = "Organization"     // Master entity: companies, institutions
	RoleProduct          EntityRole = "Product"          // Master entity: products or items
	RoleFieldGroup       EntityRole = "FieldGroup"       // Reusable 1-to-many sub-structure (Address, Phone, ...)
	RoleCustomFieldGroup EntityRole = "CustomFieldGroup" // Domain-specific 1-to-many sub-structure
	RoleUnclassified     EntityRole = "Unclassified"     // No contextual rule fired; resolved to Person downstream
)

// IsMaster reports whether the role is one of the master-entity kinds.
func (r EntityRole) IsMaster() bool {
	switch r {
	case RolePerson, RoleOrganization, RoleProduct:
		return true
	}
	return false
}

// CandidateTerm is a capitalized token that survived frequency and
// vocabulary filtering, with its contextual classification.
type CandidateTerm struct {
	Text     string     `json:"text"`               // Original-case token as discovered
	Count    int        `json:"frequency"`          // Occurrences across the corpus, >= threshold
	Role     EntityRole `json:"type,omitempty"`     // Assigned semantic role
	Cue      string     `json:"cue,omitempty"`      // Which classification rule fired (e.g., "fieldgroup:multiple")
	Fallback bool       `json:"fallback,omitempty"` // Role came from the low-confidence default, not a cue
	Context  []string   `json:"context,omitempty"`  // Up to 3 excerpts of 200 chars from containing rows
}

// BusinessEntity is a retained entity candidate. Master entities carry
// the canonical role name; field groups keep their discovered name.
type BusinessEntity struct {
	Name     string     `json:"name"`
	Role     EntityRole `json:"type"`
	Purpose  string     `json:"purpose"`
	Count    int        `json:"frequency,omitempty"`
	Fallback bool       `json:"fallback,omitempty"`
}
