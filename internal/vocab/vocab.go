// Package vocab holds the fixed vocabularies the discovery,
// classification and extraction stages run on. The tables are plain
// data passed into each stage, so a deployment can swap them per
// domain without touching scanning logic.
package vocab

import (
	"strings"

	"github.com/ovasilenko/canonry/internal/model"
)

// SourceSystem describes one known external source system: the
// keywords that identify it in requirement text and the integration
// modes it supports, most common first.
type SourceSystem struct {
	Name     string
	Keywords []string
	Modes    []string
}

// DefaultMode returns the system's first configured integration mode.
func (s SourceSystem) DefaultMode() string {
	if len(s.Modes) == 0 {
		return ""
	}
	return s.Modes[0]
}

// AttributeEntry maps a canonical attribute name to the keyword
// variants that justify recording it against a requirement.
type AttributeEntry struct {
	Name     string
	Keywords []string
}

// Vocabulary bundles every fixed table the pipeline consumes.
type Vocabulary struct {
	// Term discovery
	NoiseWords map[string]bool // Capitalized words that are never entities

	// Contextual classification cue lists
	MultiplicityCues []string // Phrases indicating a 1-to-many relationship
	ContactCues      []string // Field-group hints near a multiplicity phrase
	PersonCues       []string
	OrganizationCues []string
	ProductCues      []string
	ContainmentCues  []string // "has/contains/includes <term>" verbs
	LexicalGroups    []string // Terms that are field groups by name alone

	// Extraction tables
	SourceSystems []SourceSystem
	Attributes    []AttributeEntry
	RoleKeywords  []string

	// Documentation templates carried onto the extraction document
	MatchingRules []model.MatchingRule
	QualityRules  []model.QualityRule
}

// IsNoise reports whether a discovered token is in the noise set.
func (v *Vocabulary) IsNoise(word string) bool {
	return v.NoiseWords[word]
}

// IsSourceSystemName reports whether a discovered token names a known
// source system. Source systems are data sources, not master entities.
func (v *Vocabulary) IsSourceSystemName(word string) bool {
	for _, s := range v.SourceSystems {
		if strings.EqualFold(s.Name, word) {
			return true
		}
	}
	return false
}

// ApplyOverrides extends the fixed tables with per-deployment
// additions from the config file.
func (v *Vocabulary) ApplyOverrides(cfg model.VocabConfig) {
	for _, w := range cfg.ExtraNoiseWords {
		v.NoiseWords[w] = true
	}
	v.RoleKeywords = append(v.RoleKeywords, cfg.ExtraRoleKeywords...)
	for _, name := range cfg.ExtraSourceSystems {
		v.SourceSystems = append(v.SourceSystems, SourceSystem{
			Name:     name,
			Keywords: []string{strings.ToLower(name)},
			Modes:    []string{"API"},
		})
	}
}

// Default returns the built-in vocabulary.
func Default() *Vocabulary {
	noise := []string{
		"Solution", "System", "Data", "Record", "Information", "Field", "Attribute",
		"Value", "Type", "Status", "Date", "Number", "Code", "Key", "Source",
		"Target", "The", "This", "That", "These", "Those", "Each", "Every", "All",
		"Some", "Any", "Many", "More", "Most", "Such", "Which", "What", "When",
		"Where", "How", "Why", "Who", "Table", "Column", "Row", "Sheet", "File",
		"Document", "Report", "Format", "Structure", "Model", "Design", "Process",
		"Step", "Phase", "Feature", "Function", "Method", "Approach", "Integration",
		"Reference", "Use",
	}
	noiseSet := make(map[string]bool, len(noise))
	for _, w := range noise {
		noiseSet[w] = true
	}

	return &Vocabulary{
		NoiseWords: noiseSet,

		MultiplicityCues: []string{"multiple", "each", "per", "1-to-many", "one-to-many", "many"},
		ContactCues:      []string{"address", "phone", "email", "e-mail", "telephone", "contact"},
		PersonCues:       []string{"individual", "person", "people", "human", "citizen", "resident", "member", "participant"},
		OrganizationCues: []string{"company", "organization", "organisation", "institution", "corp", "corporation", "business", "firm", "enterprise"},
		ProductCues:      []string{"product", "item", "goods", "merchandise", "commodity", "article", "sku"},
		ContainmentCues:  []string{"has", "have", "contains", "includes", "with"},
		LexicalGroups:    []string{"address", "phone", "email", "e-mail", "telephone", "contact"},

		SourceSystems: []SourceSystem{
			{Name: "Banner", Keywords: []string{"banner", "ellucian banner"}, Modes: []string{"JDBC", "jdbc"}},
			{Name: "Workday", Keywords: []string{"workday"}, Modes: []string{"SOAP API", "SOAP", "soap"}},
			{Name: "Slate", Keywords: []string{"slate"}, Modes: []string{"API", "api"}},
			{Name: "Salesforce", Keywords: []string{"salesforce", "sf"}, Modes: []string{"API", "api"}},
			{Name: "SFAQ", Keywords: []string{"sfaq", "affinaquest"}, Modes: []string{"API", "api"}},
			{Name: "AffinaQuest", Keywords: []string{"affinaquest", "sfaq"}, Modes: []string{"API", "api"}},
			{Name: "IAM", Keywords: []string{"iam"}, Modes: []string{"API", "Message Queue", "RabbitMQ"}},
			{Name: "SF-STU", Keywords: []string{"sf-stu", "sfstu"}, Modes: []string{"API", "api"}},
			{Name: "Slack", Keywords: []string{"slack"}, Modes: []string{"API", "api"}},
			{Name: "Snowflake", Keywords: []string{"snowflake"}, Modes: []string{"Database", "database"}},
		{Name: "Azure", Keywords: []string{"azure"}, Modes: []string{"API", "api"}},
		},

		Attributes: []AttributeEntry{
			{Name: "Classification", Keywords: []string{"classification", "classify"}},
			{Name: "EmploymentStatus", Keywords: []string{"full time", "part time", "employment status", "employment type", "temp", "temporary", "permanent"}},
			{Name: "RoleType", Keywords: []string{"role type", "role", "roletype", "position"}},
			{Name: "RelationshipType", Keywords: []string{"relationship type", "relationship", "relationshiptype", "association"}},
			{Name: "OrganizationName", Keywords: []string{"organization name", "company name", "org name"}},
			{Name: "LegalName", Keywords: []string{"legal name", "legal entity name"}},
			{Name: "DBA", Keywords: []string{"dba", "doing business as", "trade name"}},
			{Name: "EIN", Keywords: []string{"ein", "employer identification number"}},
			{Name: "OrganizationType", Keywords: []string{"organization type", "org type", "entity type"}},
			{Name: "Industry", Keywords: []string{"industry", "sector"}},
			{Name: "Website", Keywords: []string{"website", "web site", "url"}},
			{Name: "FoundedDate", Keywords: []string{"founded", "founded date", "established", "established date"}},
			{Name: "Description", Keywords: []string{"description", "desc"}},
			{Name: "Status", Keywords: []string{"status", "active", "inactive"}},
		},

		RoleKeywords: []string{
			"student", "teacher", "staff", "manager", "employee", "contractor", "member",
			"customer", "supplier", "partner", "alumni", "donor", "prospect", "lead",
			"administrator", "user", "guest", "applicant",
		},

		MatchingRules: []model.MatchingRule{
			{Rule: "Address matching", Criteria: "Match on standardized address components; may use a unique key from the source system or a composite of address fields."},
			{Rule: "Phone matching", Criteria: "Match on normalized phone number (country and area code); uniqueness may vary by business requirements."},
			{Rule: "Email matching", Criteria: "Match on lowercased, trimmed email address; not always unique in real-world usage."},
			{Rule: "Address crosswalk", Criteria: "Use reference tables to link and translate between source and master address keys."},
		},
		QualityRules: []model.QualityRule{
			{Rule: "Address standardization", Approach: "Centralized standardization to uniform format"},
			{Rule: "Phone standardization", Approach: "Centralized standardization to uniform format"},
			{Rule: "Lookup value mapping", Approach: "Map source values to master values via reference data"},
		},
	}
}
