package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ovasilenko/canonry/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a narrative summary for an assembled data model
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)
}

// SummarizeRequest contains the input for LLM summarization
type SummarizeRequest struct {
	// Prompt is the fully rendered prompt text
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the LLM's output
type SummarizeResponse struct {
	// Summary is the generated narrative text
	Summary string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// BuildPrompt constructs the narrative prompt from the assembled model
// and the consolidation mapping. The LLM only restates facts already
// present in the documents; it never adds entities or fields.
func BuildPrompt(doc *model.ModelDocument, mapping *model.MappingDocument) string {
	var b strings.Builder

	b.WriteString(`You are documenting a master data model for business stakeholders.

CRITICAL RULES:
1. Describe ONLY the entities, attributes, and field groups listed below.
2. DO NOT invent entities, fields, or source systems not in this list.
3. Explain in plain business language what the model captures and why
   the custom fields were added, citing the FR references given.
4. Keep it to 4-6 short paragraphs.

Data Model:
`)

	for _, entity := range doc.Entities {
		fmt.Fprintf(&b, "\nEntity: %s (%s, %s)\nPurpose: %s\n", entity.Name, entity.OriginalName, entity.Type, entity.Purpose)
		fmt.Fprintf(&b, "Identifiers: %s\n", strings.Join(entity.Identifiers, ", "))
		fmt.Fprintf(&b, "Standard attributes: %s\n", strings.Join(entity.Attributes.OOTB, ", "))
		if len(entity.Attributes.Custom) > 0 {
			fmt.Fprintf(&b, "Custom attributes: %s\n", strings.Join(entity.Attributes.Custom, ", "))
		}
		for _, fg := range entity.FieldGroups {
			fmt.Fprintf(&b, "Field group %s (%s): %d standard, %d custom fields\n",
				fg.Name, fg.Type, len(fg.Fields.OOTB), len(fg.Fields.Custom))
		}
	}

	b.WriteString("\nConsolidation justifications:\n")
	for _, m := range mapping.EntityMappings {
		fmt.Fprintf(&b, "- %s -> %s: %s\n", m.Requirement, m.Template, m.Justification)
	}

	b.WriteString("\nWrite the narrative now.")
	return b.String()
}
