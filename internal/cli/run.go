package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ovasilenko/canonry/internal/cache"
	"github.com/ovasilenko/canonry/internal/model"
	"github.com/ovasilenko/canonry/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outDir      string
	sheetName   string
	idColumn    string
	descColumn  string
	commentsCol string
	runTimeout  time.Duration
	noCache     bool
	noDiagrams  bool
	noReports   bool
	llmEnabled  bool
	llmProvider string
	llmModel    string
	llmBaseURL  string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <spreadsheet>",
	Short: "Derive a canonical data model from one requirements spreadsheet",
	Long: `Run processes a single requirements spreadsheet (.xlsx, .xlsm or .csv) to:
- Discover and classify candidate business terms
- Extract attributes, roles and source system integrations
- Consolidate requirements into a standard entity template
- Assemble the hierarchical data model
- Write JSON documents, markdown reports and SVG entity diagrams

Example:
  canonry run requirements.xlsx
  canonry run requirements.xlsx --output-dir ./model --sheet "Functional Requirements"
  canonry run requirements.csv --llm --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Output flags
	runCmd.Flags().StringVar(&outDir, "output-dir", "outputs", "output directory for documents and diagrams")
	runCmd.Flags().BoolVar(&noDiagrams, "no-diagrams", false, "skip SVG entity diagrams")
	runCmd.Flags().BoolVar(&noReports, "no-reports", false, "skip markdown reports (JSON only)")

	// Input flags
	runCmd.Flags().StringVar(&sheetName, "sheet", "Functional Requirements", "worksheet name for Excel input")
	runCmd.Flags().StringVar(&idColumn, "id-column", "FR #", "requirement identifier column header")
	runCmd.Flags().StringVar(&descColumn, "description-column", "Functional Requirements Description", "description column header")
	runCmd.Flags().StringVar(&commentsCol, "comments-column", "Comments", "comments column header (optional)")

	runCmd.Flags().DurationVar(&runTimeout, "timeout", 2*time.Minute, "overall run timeout")
	runCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable parsed-spreadsheet cache")

	// LLM flags
	runCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM narrative generation")
	runCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai)")
	runCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
	runCmd.Flags().StringVar(&llmBaseURL, "llm-base-url", "", "custom base URL for OpenAI-compatible endpoints")
}

func runRun(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Processing: %s\n", path)
		fmt.Fprintf(os.Stderr, "Output dir: %s\n", cfg.Output.Dir)
		fmt.Fprintln(os.Stderr)
	}

	var c cache.Cache
	if cfg.Cache.Enabled {
		c = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.TTL)
	}

	p := pipeline.NewPipeline(cfg, c)

	result, err := p.RunFile(ctx, path)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Processed %d requirements\n", result.Extraction.TotalRequirements)
		fmt.Fprintf(os.Stderr, "✓ Identified %d business entities\n", len(result.Extraction.Entities))
		fmt.Fprintf(os.Stderr, "✓ Consolidated into %d entity mappings\n", len(result.Mapping.EntityMappings))
		if result.Narrative != nil && result.Narrative.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated narrative using %s/%s\n", result.Narrative.Provider, result.Narrative.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	written, err := p.WriteOutputs(result, cfg.Output.Dir)
	if err != nil {
		return fmt.Errorf("write outputs: %w", err)
	}

	for _, f := range written {
		fmt.Fprintf(os.Stderr, "✓ %s\n", f)
	}

	return nil
}

// buildConfig merges defaults, config file values and flags
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	cfg.Input.SheetName = sheetName
	cfg.Input.IDColumn = idColumn
	cfg.Input.DescriptionColumn = descColumn
	cfg.Input.CommentsColumn = commentsCol
	cfg.Output.Dir = outDir
	cfg.Output.Verbose = verbose
	cfg.Output.Diagrams = !noDiagrams
	cfg.Output.Reports = !noReports
	cfg.Cache.Enabled = !noCache

	if llmEnabled {
		cfg.LLM.Enabled = true
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel
		cfg.LLM.BaseURL = llmBaseURL
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	return cfg, nil
}
