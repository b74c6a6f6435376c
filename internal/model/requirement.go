package model

import "strings"

// Requirement is one normalized row of the functional requirements sheet.
// Records are created once at corpus load and read-only afterwards.
type Requirement struct {
	ID             string `json:"fr_number"`          // Requirement identifier (e.g., "FR12"); synthesized if absent
	Description    string `json:"description"`        // Free-text requirement description
	Comments       string `json:"comments,omitempty"` // Optional annotation column
	NormalizedText string `json:"combined_text"`      // Lowercased description + comments, used for matching
}

// NewRequirement builds a requirement with its derived normalized text.
func NewRequirement(id, description, comments string) Requirement {
	return Requirement{
		ID:             id,
		Description:    description,
		Comments:       comments,
		NormalizedText: strings.ToLower(strings.TrimSpace(description + " " + comments)),
	}
}

// CombinedText returns the original-case description + comments.
// Case matters for term discovery, not for later matching.
func (r Requirement) CombinedText() string {
	return strings.TrimSpace(r.Description + " " + r.Comments)
}
