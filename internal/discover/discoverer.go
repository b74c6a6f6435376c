// Package discover implements lexical term discovery: finding the
// repeated capitalized tokens in requirement text that are candidates
// for business entities and field groups.
package discover

import (
	"regexp"
	"sort"

	"github.com/ovasilenko/canonry/internal/corpus"
	"github.com/ovasilenko/canonry/internal/model"
	"github.com/ovasilenko/canonry/internal/vocab"
)

// MinOccurrences is the frequency threshold a token must reach to be
// retained as a candidate term.
const MinOccurrences = 3

var capitalizedWord = regexp.MustCompile(`\b([A-Z][a-z]+)\b`)

// Discoverer finds candidate terms in a corpus. It is a pure function
// of the corpus and the vocabulary tables.
type Discoverer struct {
	vocab *vocab.Vocabulary
}

// NewDiscoverer creates a discoverer over the given vocabulary.
func NewDiscoverer(v *vocab.Vocabulary) *Discoverer {
	return &Discoverer{vocab: v}
}

// Discover scans the original-case corpus text for capitalized words,
// counts occurrences, and drops tokens below the frequency threshold
// or present in the noise/source-system vocabularies. Results are
// ordered by descending count, ties broken alphabetically, so the
// most-mentioned candidate of each role wins downstream dedup.
func (d *Discoverer) Discover(c *corpus.Corpus) []model.CandidateTerm {
	counts := make(map[string]int)
	for _, m := range capitalizedWord.FindAllStringSubmatch(c.AllText(), -1) {
		counts[m[1]]++
	}

	var terms []model.CandidateTerm
	for word, count := range counts {
		if count < MinOccurrences {
			continue
		}
		if d.vocab.IsNoise(word) || d.vocab.IsSourceSystemName(word) {
			continue
		}
		terms = append(terms, model.CandidateTerm{Text: word, Count: count})
	}

	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Count != terms[j].Count {
			return terms[i].Count > terms[j].Count
		}
		return terms[i].Text < terms[j].Text
	})
	return terms
}
