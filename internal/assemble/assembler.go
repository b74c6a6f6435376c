// Package assemble turns the consolidated mapping into the nested
// hierarchical entity document consumed by reports and diagrams.
package assemble

import (
	"fmt"

	"github.com/ovasilenko/canonry/internal/model"
	"github.com/ovasilenko/canonry/internal/vocab"
)

// Assembler reshapes a mapping document into entity documents.
type Assembler struct {
	templates  map[model.EntityRole]vocab.Template
	groups     map[string]vocab.FieldGroupDef
	structural []string
}

// NewAssembler creates an assembler over the standard templates.
func NewAssembler() *Assembler {
	return &Assembler{
		templates:  vocab.Templates(),
		groups:     vocab.FieldGroups(),
		structural: vocab.StructuralFields(),
	}
}

// Assemble builds the model document. Receiving zero entity mappings
// is a broken inter-stage contract and the one fatal condition here;
// the consolidator guarantees at least one mapping (synthetic in the
// worst case).
func (a *Assembler) Assemble(mapping *model.MappingDocument) (*model.ModelDocument, error) {
	if len(mapping.EntityMappings) == 0 {
		return nil, fmt.Errorf("consolidation produced zero entity mappings; all requirements must consolidate into a single entity")
	}

	em := mapping.EntityMappings[0]
	entity := model.EntityDocument{
		Name:         a.entityName(em),
		OriginalName: em.Requirement,
		Type:         a.entityType(em),
		Purpose:      a.purpose(em),
		Identifiers:  a.identifiers(em),
		Attributes: model.AttributeSet{
			OOTB:         em.OOTBFields,
			Custom:       em.CustomFields,
			CustomWithFR: em.CustomFieldsWithFR,
		},
	}

	// Field groups in insertion order: mapped standard groups first,
	// then the Identifier group if absent, then custom groups.
	added := make(map[string]bool)
	for _, fg := range mapping.FieldGroupMappings {
		if added[fg.Group] {
			continue
		}
		added[fg.Group] = true
		entity.FieldGroups = append(entity.FieldGroups, model.FieldGroupDocument{
			Name: fg.Group,
			Type: "OOTB",
			Fields: model.FieldSet{
				OOTB:   fg.OOTBFields,
				Custom: fg.CustomFields,
			},
		})
	}

	if !added["Identifier"] {
		added["Identifier"] = true
		entity.FieldGroups = append(entity.FieldGroups, model.FieldGroupDocument{
			Name: "Identifier",
			Type: "OOTB",
			Fields: model.FieldSet{
				OOTB:   a.groups["Identifier"].Fields,
				Custom: append([]string(nil), a.structural...),
			},
		})
	}

	for _, comp := range mapping.CustomComponents {
		if comp.Type != "CustomFieldGroup" || added[comp.Name] {
			continue
		}
		added[comp.Name] = true
		entity.FieldGroups = append(entity.FieldGroups, model.FieldGroupDocument{
			Name:   comp.Name,
			Type:   "Custom",
			Fields: model.FieldSet{Custom: comp.Fields},
		})
	}

	return &model.ModelDocument{
		RunID:    mapping.RunID,
		Entities: []model.EntityDocument{entity},
	}, nil
}

func (a *Assembler) entityName(em model.EntityMapping) string {
	if em.Synthetic {
		return em.Requirement
	}
	return em.Template
}

func (a *Assembler) entityType(em model.EntityMapping) string {
	if em.Synthetic {
		return "Custom"
	}
	return "OOTB"
}

func (a *Assembler) purpose(em model.EntityMapping) string {
	if em.Synthetic {
		return em.Justification
	}
	return fmt.Sprintf(
		"Unified canonical master entity consolidating all requirements into a single %s template. This represents the complete golden-record structure.",
		em.Template)
}

func (a *Assembler) identifiers(em model.EntityMapping) []string {
	if t, ok := a.templates[model.EntityRole(em.Template)]; ok {
		return append([]string(nil), t.Identifiers...)
	}
	return []string{em.Template + "Id"}
}
