package extract

import (
	"strings"

	"github.com/ovasilenko/canonry/internal/corpus"
	"github.com/ovasilenko/canonry/internal/model"
	"github.com/ovasilenko/canonry/internal/vocab"
)

// SourceExtractor finds known external source systems mentioned in the
// corpus and the integration mode each mention implies.
type SourceExtractor struct {
	systems []vocab.SourceSystem
}

// NewSourceExtractor creates an extractor over the source-system table.
func NewSourceExtractor(systems []vocab.SourceSystem) *SourceExtractor {
	return &SourceExtractor{systems: systems}
}

// Extract registers each known system once, on its first keyword match
// in corpus order. The integration mode is the first of the system's
// configured modes literally present in the matched row's text, else
// the system default. Output follows the table's declaration order.
func (e *SourceExtractor) Extract(c *corpus.Corpus) []model.SourceFinding {
	found := make(map[string]model.SourceFinding)
	for _, req := range c.Requirements {
		text := req.NormalizedText
		for _, sys := range e.systems {
			if _, ok := found[sys.Name]; ok {
				continue
			}
			if !anyKeyword(text, lowered(sys.Keywords)) {
				continue
			}
			mode := sys.DefaultMode()
			for _, m := range sys.Modes {
				if strings.Contains(text, strings.ToLower(m)) {
					mode = m
					break
				}
			}
			found[sys.Name] = model.SourceFinding{
				Name:            sys.Name,
				IntegrationMode: mode,
				Context:         contextExcerpt(req.CombinedText()),
			}
		}
	}

	findings := make([]model.SourceFinding, 0, len(found))
	for _, sys := range e.systems {
		if f, ok := found[sys.Name]; ok {
			findings = append(findings, f)
		}
	}
	return findings
}

func lowered(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToLower(w)
	}
	return out
}

// contextExcerpt truncates a row's text to 200 runes for the finding.
func contextExcerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= 200 {
		return text
	}
	return string(runes[:200])
}
