package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ovasilenko/canonry/internal/model"
	"github.com/ovasilenko/canonry/internal/worker"
)

// Summarizer produces an optional narrative companion for the data
// model documents. It never modifies the documents themselves: a
// failed or disabled summarizer leaves the pipeline output unchanged.
type Summarizer struct {
	provider Provider
	limiter  *worker.Limiter
	model    string
	enabled  bool
}

// Narrative is the summarizer's output
type Narrative struct {
	Enabled     bool      `json:"enabled"`
	Provider    string    `json:"provider,omitempty"`
	Model       string    `json:"model,omitempty"`
	GeneratedAt time.Time `json:"generated_at,omitempty"`
	Summary     string    `json:"summary,omitempty"`
	TokensUsed  int       `json:"tokens_used,omitempty"`
	Warnings    []string  `json:"warnings,omitempty"`
}

// NewSummarizer creates a summarizer from configuration. A disabled
// configuration yields a summarizer whose IsEnabled reports false.
func NewSummarizer(cfg model.LLMConfig) (*Summarizer, error) {
	if !cfg.Enabled {
		return &Summarizer{}, nil
	}

	provider, err := newProvider(cfg)
	if err != nil {
		return nil, err
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}

	// Unconfigured keys fall back to one request per second; the
	// configured provider gets its own rate.
	limiter := worker.NewLimiter(1, 1)
	limiter.SetRate(provider.Name(), rps, 1)

	return &Summarizer{
		provider: provider,
		limiter:  limiter,
		model:    cfg.Model,
		enabled:  true,
	}, nil
}

func newProvider(cfg model.LLMConfig) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "openai":
		return NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai)", cfg.Provider)
	}
}

// IsEnabled reports whether narrative generation is configured
func (s *Summarizer) IsEnabled() bool {
	return s != nil && s.enabled
}

// GenerateNarrative produces the narrative for an assembled model.
// Errors are returned rather than fatal: callers degrade to a
// Narrative carrying a warning.
func (s *Summarizer) GenerateNarrative(ctx context.Context, doc *model.ModelDocument, mapping *model.MappingDocument) (*Narrative, error) {
	if !s.IsEnabled() {
		return &Narrative{Enabled: false}, nil
	}

	if err := s.limiter.Wait(ctx, s.provider.Name()); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Prompt: BuildPrompt(doc, mapping),
		Model:  s.model,
	})
	if err != nil {
		return &Narrative{
			Enabled:     true,
			Provider:    s.provider.Name(),
			Model:       s.model,
			GeneratedAt: time.Now().UTC(),
			Warnings:    []string{err.Error()},
		}, nil
	}

	return &Narrative{
		Enabled:     true,
		Provider:    s.provider.Name(),
		Model:       resp.Model,
		GeneratedAt: time.Now().UTC(),
		Summary:     resp.Summary,
		TokensUsed:  resp.TokensUsed,
	}, nil
}

// Markdown renders the narrative as a standalone companion document
func (n *Narrative) Markdown() string {
	var b strings.Builder

	b.WriteString("# Data Model Narrative\n\n")
	fmt.Fprintf(&b, "*Generated by %s (%s) at %s. This narrative is a companion document; the JSON and markdown reports are authoritative.*\n\n",
		n.Provider, n.Model, n.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"))

	if len(n.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range n.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
		b.WriteString("\n")
	}

	if n.Summary != "" {
		b.WriteString(n.Summary)
		b.WriteString("\n")
	}
	return b.String()
}
