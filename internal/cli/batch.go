package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/ovasilenko/canonry/internal/cache"
	"github.com/ovasilenko/canonry/internal/pipeline"
	"github.com/ovasilenko/canonry/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	batchOutDir  string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Process multiple requirements spreadsheets in parallel",
	Long: `Batch processes every spreadsheet in a directory concurrently:
- Scan the directory for .xlsx, .xlsm and .csv files
- Process files in parallel with a configurable worker count
- Write each file's outputs into its own subdirectory

Example:
  canonry batch ./requirements
  canonry batch ./requirements --concurrency 8 --output-dir ./models`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&batchOutDir, "output-dir", "./canonry-models", "output directory for per-file model subdirectories")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Shared with run
	batchCmd.Flags().StringVar(&sheetName, "sheet", "Functional Requirements", "worksheet name for Excel input")
	batchCmd.Flags().StringVar(&idColumn, "id-column", "FR #", "requirement identifier column header")
	batchCmd.Flags().StringVar(&descColumn, "description-column", "Functional Requirements Description", "description column header")
	batchCmd.Flags().StringVar(&commentsCol, "comments-column", "Comments", "comments column header (optional)")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable parsed-spreadsheet cache")
	batchCmd.Flags().BoolVar(&noDiagrams, "no-diagrams", false, "skip SVG entity diagrams")
	batchCmd.Flags().BoolVar(&noReports, "no-reports", false, "skip markdown reports (JSON only)")

	// LLM flags
	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM narrative generation")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
	batchCmd.Flags().StringVar(&llmBaseURL, "llm-base-url", "", "custom base URL for OpenAI-compatible endpoints")
}

// fileJob processes one spreadsheet through the pipeline
type fileJob struct {
	pipeline *pipeline.Pipeline
	path     string
	outDir   string
}

// fileResult reports one spreadsheet's outcome
type fileResult struct {
	path     string
	entities int
	mappings int
	err      error
}

func (r *fileResult) GetError() error { return r.err }

func (j *fileJob) Execute(ctx context.Context) worker.Result {
	result, err := j.pipeline.RunFile(ctx, j.path)
	if err != nil {
		return &fileResult{path: j.path, err: err}
	}

	if _, err := j.pipeline.WriteOutputs(result, j.outDir); err != nil {
		return &fileResult{path: j.path, err: fmt.Errorf("write outputs: %w", err)}
	}

	return &fileResult{
		path:     j.path,
		entities: len(result.Extraction.Entities),
		mappings: len(result.Mapping.EntityMappings),
	}
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	files, err := findSpreadsheets(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no spreadsheets found in %s (expected .xlsx, .xlsm or .csv)", dir)
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = concurrency

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Canonry Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input dir:    %s\n", dir)
	fmt.Fprintf(os.Stderr, "  Files:        %d\n", len(files))
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", batchOutDir)
	if cfg.LLM.Enabled {
		fmt.Fprintf(os.Stderr, "  LLM:          %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
	}
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(batchOutDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	// One shared cache across workers so repeated input files parse once
	var c cache.Cache
	if cfg.Cache.Enabled {
		c = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.TTL)
	}
	p := pipeline.NewPipeline(cfg, c)

	pool := worker.NewPool(concurrency)
	pool.Start()

	// Abort in-flight jobs when the batch timeout expires
	go func() {
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			pool.Shutdown()
		}
	}()
	for _, f := range files {
		pool.Submit(&fileJob{
			pipeline: p,
			path:     f,
			outDir:   filepath.Join(batchOutDir, modelDirName(f)),
		})
	}
	results := pool.Wait()

	successCount := 0
	failureCount := 0
	for _, res := range results {
		fr := res.(*fileResult)
		if fr.err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", fr.path, fr.err)
			continue
		}
		successCount++
		fmt.Fprintf(os.Stderr, "✓ %s (%d entities, %d mappings)\n", fr.path, fr.entities, fr.mappings)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d files\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", batchOutDir)
	fmt.Fprintf(os.Stderr, "\n")

	if failureCount > 0 {
		return fmt.Errorf("%d of %d files failed", failureCount, len(results))
	}
	return nil
}

// findSpreadsheets lists supported input files in dir, sorted by name
func findSpreadsheets(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".xlsx", ".xlsm", ".csv":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// modelDirName derives an output subdirectory name from an input file
func modelDirName(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "-")
	return name
}
