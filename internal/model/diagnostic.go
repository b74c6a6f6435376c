package model

import "fmt"

// DiagnosticKind classifies an informational diagnostic. Diagnostics
// are never errors: ambiguity is resolved locally with conservative
// defaults and surfaced, not thrown.
type DiagnosticKind string

const (
	DiagSkippedField           DiagnosticKind = "skipped_field"            // Candidate custom field lacked requirement justification
	DiagFallbackClassification DiagnosticKind = "fallback_classification"  // Term defaulted to Person with no firing rule
	DiagSyntheticEntity        DiagnosticKind = "synthetic_entity"         // Last-resort custom entity produced
	DiagDuplicateRoleDropped   DiagnosticKind = "duplicate_role_dropped"   // Second candidate of the same master role discarded
	DiagCompatibilityCarryover DiagnosticKind = "compatibility_carryover"  // Custom field kept without traceability data
)

// Diagnostic is an informational emission from extraction or
// consolidation. Subject names the term or field involved.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Subject string         `json:"subject"`
	Message string         `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s: %s", d.Kind, d.Subject, d.Message)
}
