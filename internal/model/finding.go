package model

// AttributeFinding records one attribute-vocabulary hit and the
// requirements that justify it. RequirementIDs is never empty: an
// attribute with zero matches is not recorded at all.
type AttributeFinding struct {
	Name           string   `json:"name"`
	RequirementIDs []string `json:"fr_references"`
}

// SourceFinding records one known external source system mentioned in
// the corpus. Source systems feed the canonical model; they are never
// promoted to master entities.
type SourceFinding struct {
	Name            string `json:"name"`
	IntegrationMode string `json:"connection"` // First configured mode found in text, else the system default
	Context         string `json:"context"`    // Up to 200 chars of the first matching row
}

// RoleFinding records a business role keyword found in the corpus
// (student, donor, supplier, ...), kept for model documentation.
type RoleFinding struct {
	Name    string `json:"name"`
	Purpose string `json:"purpose"`
}

// MatchingRule is a match/merge/survivorship rule template attached to
// the extraction document.
type MatchingRule struct {
	Rule     string `json:"rule"`
	Criteria string `json:"criteria"`
}

// QualityRule is a data-quality rule template attached to the
// extraction document.
type QualityRule struct {
	Rule     string `json:"rule"`
	Approach string `json:"approach"`
}
