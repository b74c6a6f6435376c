// Package pipeline orchestrates the stage-ordered run: load corpus,
// extract, consolidate, assemble, render. Each stage fully consumes
// the prior stage's output; nothing is mutated after its stage ends.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/ovasilenko/canonry/internal/assemble"
	"github.com/ovasilenko/canonry/internal/cache"
	"github.com/ovasilenko/canonry/internal/classify"
	"github.com/ovasilenko/canonry/internal/consolidate"
	"github.com/ovasilenko/canonry/internal/corpus"
	"github.com/ovasilenko/canonry/internal/discover"
	"github.com/ovasilenko/canonry/internal/extract"
	"github.com/ovasilenko/canonry/internal/llm"
	"github.com/ovasilenko/canonry/internal/model"
	"github.com/ovasilenko/canonry/internal/render"
	"github.com/ovasilenko/canonry/internal/vocab"
)

// Pipeline wires the stages together for one or more runs.
type Pipeline struct {
	cfg   *model.Config
	vocab *vocab.Vocabulary

	loader       *corpus.Loader
	discoverer   *discover.Discoverer
	classifier   *classify.Classifier
	attributes   *extract.AttributeExtractor
	sources      *extract.SourceExtractor
	roles        *extract.RoleExtractor
	consolidator *consolidate.Consolidator
	assembler    *assemble.Assembler
	diagrams     *render.Renderer
	writer       *Writer
	summarizer   *llm.Summarizer // Optional; nil when disabled
}

// NewPipeline creates a pipeline from configuration. c may be nil to
// disable corpus memoisation.
func NewPipeline(cfg *model.Config, c cache.Cache) *Pipeline {
	v := vocab.Default()
	v.ApplyOverrides(cfg.Vocab)

	var summarizer *llm.Summarizer
	if cfg.LLM.Enabled {
		s, err := llm.NewSummarizer(cfg.LLM)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	return &Pipeline{
		cfg:          cfg,
		vocab:        v,
		loader:       corpus.NewLoader(cfg.Input, c),
		discoverer:   discover.NewDiscoverer(v),
		classifier:   classify.NewClassifier(v),
		attributes:   extract.NewAttributeExtractor(v.Attributes),
		sources:      extract.NewSourceExtractor(v.SourceSystems),
		roles:        extract.NewRoleExtractor(v.RoleKeywords),
		consolidator: consolidate.NewConsolidator(),
		assembler:    assemble.NewAssembler(),
		diagrams:     render.NewRenderer(),
		writer:       NewWriter(cfg.Output),
		summarizer:   summarizer,
	}
}

// Result carries the stage documents of one completed run.
type Result struct {
	Extraction *model.ExtractionDocument
	Mapping    *model.MappingDocument
	Model      *model.ModelDocument
	Narrative  *llm.Narrative
}

// RunFile loads the spreadsheet at path and runs the full pipeline.
func (p *Pipeline) RunFile(ctx context.Context, path string) (*Result, error) {
	c, err := p.loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load requirements: %w", err)
	}
	return p.Run(ctx, c)
}

// Run executes the extract, consolidate and assemble stages over a
// loaded corpus.
func (p *Pipeline) Run(ctx context.Context, c *corpus.Corpus) (*Result, error) {
	runID := uuid.NewString()

	extraction := p.Extract(c)
	extraction.RunID = runID

	mapping := p.consolidator.Consolidate(extraction)
	mapping.RunID = runID
	mapping.MappingDate = time.Now().UTC()

	modelDoc, err := p.assembler.Assemble(mapping)
	if err != nil {
		return nil, fmt.Errorf("assemble model: %w", err)
	}
	modelDoc.ModelDate = time.Now().UTC()

	result := &Result{Extraction: extraction, Mapping: mapping, Model: modelDoc}

	// The narrative runs last and never alters the documents.
	if p.summarizer != nil && p.summarizer.IsEnabled() {
		narrative, err := p.summarizer.GenerateNarrative(ctx, modelDoc, mapping)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM narrative generation failed: %v\n", err)
		} else {
			result.Narrative = narrative
		}
	}

	return result, nil
}

// Extract runs term discovery, classification and the attribute,
// source and role passes, producing the extraction document.
func (p *Pipeline) Extract(c *corpus.Corpus) *model.ExtractionDocument {
	terms := p.classifier.ClassifyAll(p.discoverer.Discover(c), c)
	entities, diags := classify.BuildEntities(terms)

	return &model.ExtractionDocument{
		ExtractionDate:    time.Now().UTC(),
		SourceFile:        c.SourceFile,
		TotalRequirements: c.Len(),
		Requirements:      c.Requirements,
		Terms:             terms,
		Entities:          entities,
		Attributes:        p.entityAttributes(c, entities),
		SourceSystems:     p.sources.Extract(c),
		Roles:             p.roles.Extract(c),
		MatchingRules:     p.vocab.MatchingRules,
		QualityRules:      p.vocab.QualityRules,
		Diagnostics:       diags,
	}
}

// entityAttributes records the attribute findings against the main
// entity: the first Person-role entity, or "Constituent" when none was
// discovered. Standard fields are the Person template defaults minus
// the suppressed sensitive identifiers.
func (p *Pipeline) entityAttributes(c *corpus.Corpus, entities []model.BusinessEntity) map[string]model.EntityAttributes {
	mainEntity := "Constituent"
	for _, ent := range entities {
		if ent.Role == model.RolePerson {
			mainEntity = ent.Name
			break
		}
	}

	findings := p.attributes.Extract(c)
	custom := make([]string, 0, len(findings))
	customWithFR := make(map[string][]string, len(findings))
	for _, f := range findings {
		custom = append(custom, f.Name)
		customWithFR[f.Name] = f.RequirementIDs
	}

	var standard []string
	for _, f := range vocab.Templates()[model.RolePerson].Fields {
		if !suppressed(f) {
			standard = append(standard, f)
		}
	}

	return map[string]model.EntityAttributes{
		mainEntity: {
			Standard:     standard,
			Custom:       custom,
			CustomWithFR: customWithFR,
		},
	}
}

func suppressed(field string) bool {
	for _, s := range vocab.SuppressedFields() {
		if field == s {
			return true
		}
	}
	return false
}

// WriteOutputs renders the run documents into outDir: JSON documents,
// markdown reports, SVG diagrams and the optional narrative. Returns
// the paths written.
func (p *Pipeline) WriteOutputs(result *Result, outDir string) ([]string, error) {
	files, err := p.writer.WriteDocuments(result, outDir)
	if err != nil {
		return nil, err
	}

	if p.cfg.Output.Diagrams {
		diagramFiles, err := p.writer.WriteDiagrams(result.Model, p.diagrams, outDir)
		if err != nil {
			return nil, err
		}
		files = append(files, diagramFiles...)
	}
	return files, nil
}
