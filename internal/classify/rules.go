package classify

import (
	"regexp"
	"strings"

	"github.com/ovasilenko/canonry/internal/model"
	"github.com/ovasilenko/canonry/internal/vocab"
)

// Rule is one precedence-ordered classification predicate. Rules are
// evaluated against each requirement row containing the term, in list
// order; the first rule to fire wins. Keeping the list as data makes
// the precedence auditable and testable apart from the scanning loop.
type Rule struct {
	Name  string
	Match func(tc *TermContext, rowLower string) (model.EntityRole, string, bool)
}

// TermContext carries the per-term compiled patterns a rule needs, so
// row scans do not recompile expressions.
type TermContext struct {
	termLower    string
	multiplicity *regexp.Regexp // multiplicity phrase adjacent to the term
	containment  *regexp.Regexp // has/contains/includes <term>
	cues         *cueSet
}

// cueSet holds the corpus-independent cue patterns compiled once per
// classifier.
type cueSet struct {
	contact      *regexp.Regexp
	person       *regexp.Regexp
	organization *regexp.Regexp
	product      *regexp.Regexp
}

// contextWindow is how many characters of preceding text are examined
// for a contact cue next to a multiplicity phrase.
const contextWindow = 200

// Rules returns the classification rules in precedence order:
// field-group cue, person cue, organization cue, product cue,
// containment cue. The lexical and default fallbacks are term-level
// and live in the classifier, not in this row-level list.
func Rules() []Rule {
	return []Rule{
		{
			Name: "fieldgroup",
			Match: func(tc *TermContext, rowLower string) (model.EntityRole, string, bool) {
				if !tc.multiplicity.MatchString(rowLower) {
					return "", "", false
				}
				// A contact cue in the text leading up to the term marks a
				// standard field group; a bare multiplicity phrase marks a
				// custom one.
				end := len(rowLower)
				if idx := strings.Index(rowLower, tc.termLower); idx >= 0 && idx+contextWindow < end {
					end = idx + contextWindow
				}
				if tc.cues.contact.MatchString(rowLower[:end]) {
					return model.RoleFieldGroup, "multiplicity+contact", true
				}
				return model.RoleCustomFieldGroup, "multiplicity", true
			},
		},
		{
			Name: "person",
			Match: func(tc *TermContext, rowLower string) (model.EntityRole, string, bool) {
				if tc.cues.person.MatchString(rowLower) {
					return model.RolePerson, "person", true
				}
				return "", "", false
			},
		},
		{
			Name: "organization",
			Match: func(tc *TermContext, rowLower string) (model.EntityRole, string, bool) {
				if tc.cues.organization.MatchString(rowLower) {
					return model.RoleOrganization, "organization", true
				}
				return "", "", false
			},
		},
		{
			Name: "product",
			Match: func(tc *TermContext, rowLower string) (model.EntityRole, string, bool) {
				if tc.cues.product.MatchString(rowLower) {
					return model.RoleProduct, "product", true
				}
				return "", "", false
			},
		},
		{
			Name: "containment",
			Match: func(tc *TermContext, rowLower string) (model.EntityRole, string, bool) {
				if tc.containment.MatchString(rowLower) {
					return model.RoleCustomFieldGroup, "containment", true
				}
				return "", "", false
			},
		},
	}
}

// compileCues builds the shared cue patterns from the vocabulary.
func compileCues(v *vocab.Vocabulary) *cueSet {
	return &cueSet{
		contact:      wordAlternation(v.ContactCues),
		person:       wordAlternation(v.PersonCues),
		organization: wordAlternation(v.OrganizationCues),
		product:      wordAlternation(v.ProductCues),
	}
}

// newTermContext compiles the per-term patterns.
func newTermContext(term string, v *vocab.Vocabulary, cues *cueSet) *TermContext {
	termLower := strings.ToLower(term)
	quoted := regexp.QuoteMeta(termLower)
	return &TermContext{
		termLower:    termLower,
		multiplicity: regexp.MustCompile(`\b(` + escapeJoin(v.MultiplicityCues) + `)\s+\w*\s*` + quoted),
		containment:  regexp.MustCompile(`\b(` + escapeJoin(v.ContainmentCues) + `)\s+\w*\s*` + quoted),
		cues:         cues,
	}
}

func wordAlternation(words []string) *regexp.Regexp {
	return regexp.MustCompile(`\b(` + escapeJoin(words) + `)\b`)
}

func escapeJoin(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(quoted, "|")
}
