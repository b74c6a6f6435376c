// Package classify assigns semantic roles to discovered candidate
// terms by inspecting the requirement rows they appear in.
package classify

import (
	"strings"

	"github.com/ovasilenko/canonry/internal/corpus"
	"github.com/ovasilenko/canonry/internal/model"
	"github.com/ovasilenko/canonry/internal/vocab"
)

// maxContexts caps how many supporting excerpts are kept per term.
const maxContexts = 3

// excerptLen is the excerpt length in runes.
const excerptLen = 200

// Classifier assigns a role to each candidate term using the ordered
// rule list. Pure function of (term, corpus, vocabulary).
type Classifier struct {
	vocab *vocab.Vocabulary
	rules []Rule
	cues  *cueSet
}

// NewClassifier creates a classifier over the given vocabulary.
func NewClassifier(v *vocab.Vocabulary) *Classifier {
	return &Classifier{
		vocab: v,
		rules: Rules(),
		cues:  compileCues(v),
	}
}

// Classify evaluates the rules against every requirement row
// containing the term, in corpus order. The first rule to fire across
// all rows decides the role. If no row-level rule ever fires, the
// term-level fallbacks apply: an exact contact-term name means
// FieldGroup, anything else is tagged Unclassified (resolved to the
// Person template downstream, as a deliberate low-confidence default).
func (cl *Classifier) Classify(term model.CandidateTerm, c *corpus.Corpus) model.CandidateTerm {
	tc := newTermContext(term.Text, cl.vocab, cl.cues)

	seen := make(map[string]bool)
	for _, req := range c.Requirements {
		rowLower := req.NormalizedText
		if !strings.Contains(rowLower, tc.termLower) {
			continue
		}

		if term.Role == "" {
			for _, rule := range cl.rules {
				if role, cue, ok := rule.Match(tc, rowLower); ok {
					term.Role = role
					term.Cue = cue
					break
				}
			}
		}

		if len(term.Context) < maxContexts && !seen[rowLower] {
			seen[rowLower] = true
			term.Context = append(term.Context, excerpt(req.CombinedText()))
		}
	}

	if term.Role == "" {
		if cl.isLexicalGroup(tc.termLower) {
			term.Role = model.RoleFieldGroup
			term.Cue = "lexical"
		} else {
			term.Role = model.RoleUnclassified
			term.Cue = "default"
			term.Fallback = true
		}
	}
	return term
}

// ClassifyAll classifies every term against the corpus.
func (cl *Classifier) ClassifyAll(terms []model.CandidateTerm, c *corpus.Corpus) []model.CandidateTerm {
	out := make([]model.CandidateTerm, len(terms))
	for i, t := range terms {
		out[i] = cl.Classify(t, c)
	}
	return out
}

func (cl *Classifier) isLexicalGroup(termLower string) bool {
	for _, g := range cl.vocab.LexicalGroups {
		if termLower == g {
			return true
		}
	}
	return false
}

func excerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= excerptLen {
		return text
	}
	return string(runes[:excerptLen])
}
