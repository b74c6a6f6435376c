package llm

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ovasilenko/canonry/internal/model"
)

func TestNewSummarizer_Disabled(t *testing.T) {
	s, err := NewSummarizer(model.LLMConfig{Enabled: false})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if s.IsEnabled() {
		t.Error("Expected summarizer to be disabled")
	}

	n, err := s.GenerateNarrative(context.Background(), &model.ModelDocument{}, &model.MappingDocument{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if n.Enabled {
		t.Error("Expected a disabled narrative")
	}
}

func TestNewSummarizer_UnknownProvider(t *testing.T) {
	_, err := NewSummarizer(model.LLMConfig{Enabled: true, Provider: "mystery", APIKey: "key"})
	if err == nil {
		t.Fatal("Expected error for unknown provider")
	}
	if !strings.Contains(err.Error(), "mystery") {
		t.Errorf("Expected the provider name in the error, got %v", err)
	}
}

func TestNewSummarizer_MissingAPIKey(t *testing.T) {
	_, err := NewSummarizer(model.LLMConfig{Enabled: true, Provider: "openai"})
	if err == nil {
		t.Fatal("Expected error for missing API key")
	}
}

func TestNewSummarizer_ConfiguredRate(t *testing.T) {
	s, err := NewSummarizer(model.LLMConfig{
		Enabled:           true,
		Provider:          "openai",
		APIKey:            "test-key",
		RequestsPerSecond: 5,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !s.IsEnabled() {
		t.Error("Expected summarizer to be enabled")
	}

	// The provider has its own bucket, seeded by SetRate during
	// construction.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := s.limiter.Wait(ctx, s.provider.Name()); err != nil {
		t.Errorf("Expected first request to pass, got %v", err)
	}
}

func TestSummarizer_NilIsDisabled(t *testing.T) {
	var s *Summarizer
	if s.IsEnabled() {
		t.Error("Expected a nil summarizer to report disabled")
	}
}

func TestBuildPrompt(t *testing.T) {
	doc := &model.ModelDocument{
		Entities: []model.EntityDocument{
			{
				Name:         "Person",
				OriginalName: "Unified Master Entity",
				Type:         "OOTB",
				Purpose:      "Golden record",
				Identifiers:  []string{"PersonId"},
				Attributes: model.AttributeSet{
					OOTB:   []string{"FirstName"},
					Custom: []string{"RoleType"},
				},
				FieldGroups: []model.FieldGroupDocument{
					{Name: "Address", Type: "OOTB", Fields: model.FieldSet{OOTB: []string{"City"}}},
				},
			},
		},
	}
	mapping := &model.MappingDocument{
		EntityMappings: []model.EntityMapping{
			{Requirement: "Unified Master Entity", Template: "Person", Justification: "Minimal customization"},
		},
	}

	prompt := BuildPrompt(doc, mapping)

	for _, want := range []string{
		"Entity: Person (Unified Master Entity, OOTB)",
		"Custom attributes: RoleType",
		"Field group Address (OOTB): 1 standard, 0 custom fields",
		"Unified Master Entity -> Person: Minimal customization",
		"DO NOT invent entities",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to contain %q", want)
		}
	}
}

func TestNarrative_Markdown(t *testing.T) {
	n := &Narrative{
		Enabled:     true,
		Provider:    "openai",
		Model:       "gpt-4o-mini",
		GeneratedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Summary:     "The model consolidates constituents into a Person golden record.",
	}

	md := n.Markdown()

	if !strings.Contains(md, "# Data Model Narrative") {
		t.Error("Expected the narrative heading")
	}
	if !strings.Contains(md, "openai (gpt-4o-mini)") {
		t.Error("Expected the provider attribution")
	}
	if !strings.Contains(md, "golden record") {
		t.Error("Expected the summary text")
	}
}

func TestNarrative_MarkdownWithWarnings(t *testing.T) {
	n := &Narrative{
		Enabled:  true,
		Provider: "openai",
		Warnings: []string{"request timed out"},
	}

	md := n.Markdown()
	if !strings.Contains(md, "## Warnings") || !strings.Contains(md, "request timed out") {
		t.Error("Expected warnings section in the narrative")
	}
}
