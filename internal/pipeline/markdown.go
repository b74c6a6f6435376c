package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ovasilenko/canonry/internal/model"
)

// ExtractionReport renders the extraction document as markdown.
func ExtractionReport(doc *model.ExtractionDocument) string {
	var b strings.Builder

	b.WriteString("# Step 1: Extracted Requirements Analysis\n\n")
	b.WriteString("This analysis identifies the canonical master data entities for the model. ")
	b.WriteString("Source systems are data sources that feed these entities, not entities themselves.\n\n")
	fmt.Fprintf(&b, "**Extraction Date:** %s\n", doc.ExtractionDate.Format("2006-01-02T15:04:05Z07:00"))
	fmt.Fprintf(&b, "**Total Requirements Processed:** %d\n", doc.TotalRequirements)
	fmt.Fprintf(&b, "**Source File:** %s\n\n", doc.SourceFile)

	b.WriteString("## 1.1 Master Data Entities Identified\n\n")
	for _, ent := range doc.Entities {
		fmt.Fprintf(&b, "- **%s** (%s): %s\n", ent.Name, ent.Role, ent.Purpose)
	}

	b.WriteString("\n## 1.2 Required Attributes and Fields\n\n")
	entityNames := make([]string, 0, len(doc.Attributes))
	for name := range doc.Attributes {
		entityNames = append(entityNames, name)
	}
	sort.Strings(entityNames)
	for _, name := range entityNames {
		attrs := doc.Attributes[name]
		fmt.Fprintf(&b, "### %s Entity\n\n**Standard Attributes:**\n", name)
		for _, attr := range attrs.Standard {
			fmt.Fprintf(&b, "- %s\n", attr)
		}
		if len(attrs.Custom) > 0 {
			b.WriteString("\n**Custom Attributes:**\n")
			for _, attr := range attrs.Custom {
				if frs := attrs.CustomWithFR[attr]; len(frs) > 0 {
					fmt.Fprintf(&b, "- %s (%s)\n", attr, strings.Join(frs, ", "))
				} else {
					fmt.Fprintf(&b, "- %s\n", attr)
				}
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("## 1.3 Roles and Business Rules\n\n")
	for _, role := range doc.Roles {
		fmt.Fprintf(&b, "- **%s**: %s\n", role.Name, role.Purpose)
	}

	b.WriteString("\n## 1.4 Source System Integration Requirements\n\n")
	for _, src := range doc.SourceSystems {
		fmt.Fprintf(&b, "- **%s**: %s\n", src.Name, src.IntegrationMode)
	}

	b.WriteString("\n## 1.5 Matching, Merging, and Survivorship Requirements\n\n")
	for _, rule := range doc.MatchingRules {
		fmt.Fprintf(&b, "- **%s**: %s\n", rule.Rule, rule.Criteria)
	}

	b.WriteString("\n## 1.6 Data Quality Rules\n\n")
	for _, rule := range doc.QualityRules {
		fmt.Fprintf(&b, "- **%s**: %s\n", rule.Rule, rule.Approach)
	}

	if len(doc.Diagnostics) > 0 {
		b.WriteString("\n## 1.7 Diagnostics\n\n")
		for _, d := range doc.Diagnostics {
			fmt.Fprintf(&b, "- %s\n", d)
		}
	}
	return b.String()
}

// MappingReport renders the consolidation document as markdown.
func MappingReport(doc *model.MappingDocument) string {
	var b strings.Builder

	b.WriteString("# Step 2: Mapping to Standard Entities and Identifying Gaps\n\n")
	b.WriteString("This mapping consolidates all requirements into a single standard entity template. ")
	b.WriteString("All source systems feed the resulting canonical entity.\n\n")

	b.WriteString("## 2.1 Master Entity Mappings\n\n")
	for _, m := range doc.EntityMappings {
		fmt.Fprintf(&b, "### %s\n\n", m.Requirement)
		fmt.Fprintf(&b, "- **Entity Template:** %s\n", m.Template)
		if m.Synthetic {
			b.WriteString("- **Synthetic:** yes (last-resort custom entity)\n")
		}
		fmt.Fprintf(&b, "- **Justification:** %s\n", m.Justification)
		if len(m.MergedRequirements) > 0 {
			fmt.Fprintf(&b, "- **Consolidated Requirements:** %s\n", strings.Join(m.MergedRequirements, ", "))
		}
		if len(m.CustomFieldsWithFR) > 0 {
			b.WriteString("- **Custom Fields with FR References:**\n")
			names := make([]string, 0, len(m.CustomFieldsWithFR))
			for name := range m.CustomFieldsWithFR {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(&b, "  - %s: %s\n", name, strings.Join(m.CustomFieldsWithFR[name], ", "))
			}
		}
		fmt.Fprintf(&b, "- **Standard Fields Used:** %s\n", strings.Join(m.OOTBFields, ", "))
		fmt.Fprintf(&b, "- **Custom Fields Needed:** %s\n\n", orNone(m.CustomFields))
	}

	b.WriteString("## 2.2 Field Group Mappings\n\n")
	for _, fg := range doc.FieldGroupMappings {
		fmt.Fprintf(&b, "### %s\n\n", fg.Requirement)
		fmt.Fprintf(&b, "- **Standard Field Group:** %s\n", fg.Group)
		fmt.Fprintf(&b, "- **Justification:** %s\n", fg.Justification)
		fmt.Fprintf(&b, "- **Standard Fields Used:** %s\n", strings.Join(fg.OOTBFields, ", "))
		fmt.Fprintf(&b, "- **Custom Fields Needed:** %s\n\n", orNone(fg.CustomFields))
	}

	b.WriteString("## 2.3 Custom Components Required\n\n")
	for _, comp := range doc.CustomComponents {
		fmt.Fprintf(&b, "### %s (%s)\n\n", comp.Name, comp.Type)
		fmt.Fprintf(&b, "- **Justification:** %s\n", comp.Justification)
		fmt.Fprintf(&b, "- **Fields:** %s\n\n", strings.Join(comp.Fields, ", "))
	}

	if len(doc.Diagnostics) > 0 {
		b.WriteString("## 2.4 Diagnostics\n\n")
		for _, d := range doc.Diagnostics {
			fmt.Fprintf(&b, "- %s\n", d)
		}
	}
	return b.String()
}

// ModelReport renders the assembled data model as markdown. The
// extraction document supplies the source-system and rule sections.
func ModelReport(doc *model.ModelDocument, extraction *model.ExtractionDocument) string {
	var b strings.Builder

	b.WriteString("# Step 3: Hierarchical Data Model Design\n\n")
	b.WriteString("The canonical hierarchical data model. Each entity is the golden record consolidating ")
	b.WriteString("all source systems, with SourceSystemKey fields tracking data lineage.\n\n")

	for _, entity := range doc.Entities {
		fmt.Fprintf(&b, "## 3.1 Entity: %s (%s)\n\n", entity.Name, entity.OriginalName)
		fmt.Fprintf(&b, "**Type:** %s\n**Purpose:** %s\n\n", entity.Type, entity.Purpose)

		b.WriteString("### Identifiers\n\n")
		for _, id := range entity.Identifiers {
			if strings.HasSuffix(id, "Id") {
				fmt.Fprintf(&b, "- %s (generated)\n", id)
			} else {
				fmt.Fprintf(&b, "- %s\n", id)
			}
		}

		b.WriteString("\n### Attributes\n\n**Standard Attributes:**\n")
		for _, attr := range entity.Attributes.OOTB {
			fmt.Fprintf(&b, "- %s\n", attr)
		}
		if len(entity.Attributes.Custom) > 0 {
			b.WriteString("\n**Custom Attributes:**\n")
			for _, attr := range entity.Attributes.Custom {
				if frs := entity.Attributes.CustomWithFR[attr]; len(frs) > 0 {
					fmt.Fprintf(&b, "- %s (%s)\n", attr, strings.Join(frs, ", "))
				} else {
					fmt.Fprintf(&b, "- %s\n", attr)
				}
			}
		}

		b.WriteString("\n### Field Groups\n\n")
		for _, fg := range entity.FieldGroups {
			label := fg.Type
			if len(fg.Fields.Custom) > 0 && fg.Type == "OOTB" {
				label += " - Extended"
			}
			fmt.Fprintf(&b, "#### %s (%s)\n\n", fg.Name, label)
			if len(fg.Fields.OOTB) > 0 {
				b.WriteString("**Standard Fields:**\n")
				for _, f := range fg.Fields.OOTB {
					fmt.Fprintf(&b, "- %s\n", f)
				}
			}
			if len(fg.Fields.Custom) > 0 {
				b.WriteString("\n**Custom Fields:**\n")
				for _, f := range fg.Fields.Custom {
					if f == "SourceSystemKey" {
						fmt.Fprintf(&b, "- %s (unique identification from source systems)\n", f)
					} else {
						fmt.Fprintf(&b, "- %s\n", f)
					}
				}
			}
			b.WriteString("\n")
		}
	}

	if extraction != nil {
		b.WriteString("## 3.2 Source System Integration\n\n")
		for _, src := range extraction.SourceSystems {
			fmt.Fprintf(&b, "- **%s** (%s) → entity and field groups\n", src.Name, src.IntegrationMode)
		}
		b.WriteString("\nAll source systems track cross-references via SourceSystemKey in field groups.\n\n")

		b.WriteString("## 3.3 Matching and Survivorship\n\n")
		for _, rule := range extraction.MatchingRules {
			fmt.Fprintf(&b, "- **%s:** %s\n", rule.Rule, rule.Criteria)
		}
		b.WriteString("\n- **Survivorship:** configured at attribute level with source priority rules\n")
		b.WriteString("- **Unique Identification:** SourceSystemKey prevents duplicate records\n\n")

		b.WriteString("## 3.4 Data Quality Rules\n\n")
		for _, rule := range extraction.QualityRules {
			fmt.Fprintf(&b, "- **%s:** %s\n", rule.Rule, rule.Approach)
		}
	}
	return b.String()
}

func orNone(fields []string) string {
	if len(fields) == 0 {
		return "None"
	}
	return strings.Join(fields, ", ")
}
