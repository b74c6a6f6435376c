package extract

import (
	"strings"

	"github.com/ovasilenko/canonry/internal/corpus"
	"github.com/ovasilenko/canonry/internal/model"
)

// RoleExtractor finds business-role keywords (student, donor,
// supplier, ...) mentioned in the corpus. Roles document how people
// relate to the entity; they are not entities themselves.
type RoleExtractor struct {
	keywords []string
}

// NewRoleExtractor creates an extractor over the role keyword list.
func NewRoleExtractor(keywords []string) *RoleExtractor {
	return &RoleExtractor{keywords: keywords}
}

// Extract registers each role once, on its first keyword match in
// corpus order, keeping an excerpt of the matching row as purpose.
func (e *RoleExtractor) Extract(c *corpus.Corpus) []model.RoleFinding {
	found := make(map[string]model.RoleFinding)
	for _, req := range c.Requirements {
		text := req.NormalizedText
		for _, kw := range e.keywords {
			name := titleCase(kw)
			if _, ok := found[name]; ok {
				continue
			}
			if strings.Contains(text, kw) {
				purpose := text
				if runes := []rune(purpose); len(runes) > 100 {
					purpose = string(runes[:100])
				}
				found[name] = model.RoleFinding{Name: name, Purpose: purpose + "..."}
			}
		}
	}

	findings := make([]model.RoleFinding, 0, len(found))
	for _, kw := range e.keywords {
		if f, ok := found[titleCase(kw)]; ok {
			findings = append(findings, f)
		}
	}
	return findings
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
