// Package extract scans the requirement corpus for attribute
// vocabulary hits, known source-system mentions and business-role
// keywords. The passes are independent and pure: each is a function of
// the corpus and its table, returning a fresh snapshot.
package extract

import (
	"sort"
	"strings"

	"github.com/ovasilenko/canonry/internal/corpus"
	"github.com/ovasilenko/canonry/internal/model"
	"github.com/ovasilenko/canonry/internal/vocab"
)

// AttributeExtractor records attribute findings with per-requirement
// traceability.
type AttributeExtractor struct {
	table []vocab.AttributeEntry
}

// NewAttributeExtractor creates an extractor over the attribute
// keyword table.
func NewAttributeExtractor(table []vocab.AttributeEntry) *AttributeExtractor {
	return &AttributeExtractor{table: table}
}

// Extract scans every requirement against the keyword table. An
// attribute is recorded against a requirement the first time any of
// its keyword variants matches the normalized text; ids are appended
// idempotently. Attributes with zero matches are not recorded at all,
// so every finding carries at least one justifying requirement.
// Output is sorted lexicographically by attribute name.
func (e *AttributeExtractor) Extract(c *corpus.Corpus) []model.AttributeFinding {
	byName := make(map[string][]string)
	for _, req := range c.Requirements {
		for _, entry := range e.table {
			if !anyKeyword(req.NormalizedText, entry.Keywords) {
				continue
			}
			if !containsID(byName[entry.Name], req.ID) {
				byName[entry.Name] = append(byName[entry.Name], req.ID)
			}
		}
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	findings := make([]model.AttributeFinding, 0, len(names))
	for _, name := range names {
		findings = append(findings, model.AttributeFinding{
			Name:           name,
			RequirementIDs: byName[name],
		})
	}
	return findings
}

func anyKeyword(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
