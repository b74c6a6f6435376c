package model

import "time"

// Config is the complete runtime configuration, populated from
// defaults, the config file, CANONRY_* environment variables and CLI
// flags (highest priority last).
type Config struct {
	Input       InputConfig       `yaml:"input" mapstructure:"input"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Vocab       VocabConfig       `yaml:"vocab" mapstructure:"vocab"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
}

// InputConfig names the sheet and columns of the requirements
// spreadsheet.
type InputConfig struct {
	SheetName         string `yaml:"sheet_name" mapstructure:"sheet_name"`
	IDColumn          string `yaml:"id_column" mapstructure:"id_column"`
	DescriptionColumn string `yaml:"description_column" mapstructure:"description_column"`
	CommentsColumn    string `yaml:"comments_column" mapstructure:"comments_column"`
}

// OutputConfig controls where and what the pipeline writes.
type OutputConfig struct {
	Dir      string `yaml:"dir" mapstructure:"dir"`
	Verbose  bool   `yaml:"verbose" mapstructure:"verbose"`
	Diagrams bool   `yaml:"diagrams" mapstructure:"diagrams"`
	Reports  bool   `yaml:"reports" mapstructure:"reports"`
}

// CacheConfig controls corpus memoisation in batch mode.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// ConcurrencyConfig sizes the batch worker pool.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// VocabConfig carries additive vocabulary overrides so the fixed
// tables can be extended per domain without touching logic.
type VocabConfig struct {
	ExtraNoiseWords    []string `yaml:"extra_noise_words" mapstructure:"extra_noise_words"`
	ExtraRoleKeywords  []string `yaml:"extra_role_keywords" mapstructure:"extra_role_keywords"`
	ExtraSourceSystems []string `yaml:"extra_source_systems" mapstructure:"extra_source_systems"`
}

// LLMConfig configures the optional model-narrative summarizer. The
// narrative never affects extraction or consolidation content.
type LLMConfig struct {
	Enabled           bool    `yaml:"enabled" mapstructure:"enabled"`
	Provider          string  `yaml:"provider" mapstructure:"provider"`
	Model             string  `yaml:"model" mapstructure:"model"`
	APIKey            string  `yaml:"-" mapstructure:"-"` // From environment only, never persisted
	BaseURL           string  `yaml:"base_url" mapstructure:"base_url"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			SheetName:         "Functional Requirements",
			IDColumn:          "FR #",
			DescriptionColumn: "Functional Requirements Description",
			CommentsColumn:    "Comments",
		},
		Output: OutputConfig{
			Dir:      "outputs",
			Diagrams: true,
			Reports:  true,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     30 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		LLM: LLMConfig{
			Provider:          "openai",
			Model:             "gpt-4o-mini",
			RequestsPerSecond: 1,
		},
	}
}
