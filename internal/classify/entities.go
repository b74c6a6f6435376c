package classify

import (
	"fmt"
	"strings"

	"github.com/ovasilenko/canonry/internal/model"
)

// purposeLen caps how much context is carried into an entity purpose.
const purposeLen = 150

// BuildEntities turns classified terms into the retained business
// entities. Terms must arrive in descending-frequency order (the
// discoverer guarantees this): at most one entity is kept per master
// role, so the most-mentioned candidate of each role wins and later
// duplicates are dropped with a diagnostic. Master entities take their
// canonical role name; field groups keep the discovered name.
// Unclassified terms resolve to Person, surfaced as a diagnostic.
func BuildEntities(terms []model.CandidateTerm) ([]model.BusinessEntity, []model.Diagnostic) {
	var (
		entities []model.BusinessEntity
		diags    []model.Diagnostic
		seen     = make(map[model.EntityRole]bool)
	)

	for _, term := range terms {
		role := term.Role
		fallback := false
		if role == model.RoleUnclassified {
			role = model.RolePerson
			fallback = true
			diags = append(diags, model.Diagnostic{
				Kind:    model.DiagFallbackClassification,
				Subject: term.Text,
				Message: fmt.Sprintf("no contextual rule fired for %q; defaulting to Person (low confidence)", term.Text),
			})
		}

		name := term.Text
		if role.IsMaster() {
			if seen[role] {
				diags = append(diags, model.Diagnostic{
					Kind:    model.DiagDuplicateRoleDropped,
					Subject: term.Text,
					Message: fmt.Sprintf("%q dropped: a higher-frequency %s candidate was already retained", term.Text, role),
				})
				continue
			}
			seen[role] = true
			name = string(role)
		}

		entities = append(entities, model.BusinessEntity{
			Name:     name,
			Role:     role,
			Purpose:  purpose(name, role, term.Context),
			Count:    term.Count,
			Fallback: fallback,
		})
	}
	return entities, diags
}

func purpose(name string, role model.EntityRole, context []string) string {
	joined := strings.TrimSpace(strings.Join(context, " "))
	if joined != "" {
		runes := []rune(joined)
		if len(runes) > purposeLen {
			return string(runes[:purposeLen]) + "..."
		}
		return joined
	}
	if role.IsMaster() {
		return fmt.Sprintf("%s master entity in the canonical model", name)
	}
	return fmt.Sprintf("%s field group", name)
}
