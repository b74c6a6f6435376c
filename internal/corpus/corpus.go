// Package corpus loads the functional-requirements sheet into the
// normalized per-row records every downstream stage consumes.
package corpus

import (
	"strings"

	"github.com/ovasilenko/canonry/internal/model"
)

// Corpus is the immutable set of requirements for one run, with the
// corpus-wide text concatenations precomputed so the scanning stages
// are independent passes rather than repeated re-joins.
type Corpus struct {
	SourceFile   string
	Requirements []model.Requirement

	allText string // Original-case concatenation; case matters for term discovery
}

// New builds a corpus from loaded requirements.
func New(sourceFile string, reqs []model.Requirement) *Corpus {
	parts := make([]string, 0, len(reqs))
	for _, r := range reqs {
		parts = append(parts, r.CombinedText())
	}
	return &Corpus{
		SourceFile:   sourceFile,
		Requirements: reqs,
		allText:      strings.Join(parts, " "),
	}
}

// Len returns the number of requirements.
func (c *Corpus) Len() int { return len(c.Requirements) }

// AllText returns the original-case concatenation of all requirement
// text.
func (c *Corpus) AllText() string { return c.allText }
