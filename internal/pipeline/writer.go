package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ovasilenko/canonry/internal/model"
	"github.com/ovasilenko/canonry/internal/render"
)

// Output file names, one JSON document and one markdown report per
// stage, plus the diagram directory.
const (
	extractionJSON = "step1_extracted_requirements.json"
	extractionMD   = "step1_extracted_requirements.md"
	mappingJSON    = "step2_ootb_mapping.json"
	mappingMD      = "step2_ootb_mapping.md"
	modelJSON      = "step3_data_model.json"
	modelMD        = "step3_data_model.md"
	narrativeMD    = "step3_data_model.llm.md"
	diagramDir     = "step4_diagrams"
)

// Writer renders run documents to disk.
type Writer struct {
	cfg model.OutputConfig
}

// NewWriter creates a writer with the given output settings.
func NewWriter(cfg model.OutputConfig) *Writer {
	return &Writer{cfg: cfg}
}

// WriteDocuments writes the JSON documents and markdown reports for a
// run into dir, creating it if needed. Returns the paths written.
func (w *Writer) WriteDocuments(result *Result, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var files []string
	write := func(name string, data []byte) error {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		files = append(files, path)
		return nil
	}

	steps := []struct {
		jsonName string
		doc      any
		mdName   string
		report   func() string
	}{
		{extractionJSON, result.Extraction, extractionMD, func() string { return ExtractionReport(result.Extraction) }},
		{mappingJSON, result.Mapping, mappingMD, func() string { return MappingReport(result.Mapping) }},
		{modelJSON, result.Model, modelMD, func() string { return ModelReport(result.Model, result.Extraction) }},
	}
	for _, step := range steps {
		data, err := json.MarshalIndent(step.doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", step.jsonName, err)
		}
		if err := write(step.jsonName, append(data, '\n')); err != nil {
			return nil, err
		}
		if w.cfg.Reports {
			if err := write(step.mdName, []byte(step.report())); err != nil {
				return nil, err
			}
		}
	}

	if result.Narrative != nil && result.Narrative.Enabled {
		if err := write(narrativeMD, []byte(result.Narrative.Markdown())); err != nil {
			return nil, err
		}
	}
	return files, nil
}

// WriteDiagrams renders one SVG per assembled entity into the diagram
// subdirectory of dir.
func (w *Writer) WriteDiagrams(doc *model.ModelDocument, r *render.Renderer, dir string) ([]string, error) {
	target := filepath.Join(dir, diagramDir)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return nil, fmt.Errorf("create diagram dir: %w", err)
	}

	var files []string
	for _, entity := range doc.Entities {
		name := fmt.Sprintf("step4_%s_entity_hierarchy.svg", strings.ToLower(entity.Name))
		path := filepath.Join(target, name)
		if err := r.RenderFile(entity, path); err != nil {
			return nil, fmt.Errorf("render diagram for %s: %w", entity.Name, err)
		}
		files = append(files, path)
	}
	return files, nil
}
