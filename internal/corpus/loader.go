package corpus

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ovasilenko/canonry/internal/cache"
	"github.com/ovasilenko/canonry/internal/model"
)

// Loader reads a requirements spreadsheet (.xlsx or .csv) into a
// Corpus. A missing sheet or description column is a fatal input-shape
// error; a missing identifier cell gets a positional fallback id.
type Loader struct {
	cfg   model.InputConfig
	cache cache.Cache // Optional; memoises parsed rows in batch mode
}

// NewLoader creates a loader for the configured sheet and columns.
// cache may be nil to disable memoisation.
func NewLoader(cfg model.InputConfig, c cache.Cache) *Loader {
	return &Loader{cfg: cfg, cache: c}
}

// Load parses the spreadsheet at path into a Corpus.
func (l *Loader) Load(path string) (*Corpus, error) {
	if l.cache != nil {
		if data, ok := l.cache.Get(cache.FileKey(path)); ok {
			var reqs []model.Requirement
			if err := json.Unmarshal(data, &reqs); err == nil {
				return New(path, reqs), nil
			}
			// Corrupt cache entry; fall through to a fresh parse
			_ = l.cache.Delete(cache.FileKey(path))
		}
	}

	var (
		reqs []model.Requirement
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		reqs, err = l.loadExcel(path)
	case ".csv":
		reqs, err = l.loadCSV(path)
	default:
		return nil, fmt.Errorf("unsupported input format: %s (expected .xlsx or .csv)", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	if l.cache != nil {
		if data, mErr := json.Marshal(reqs); mErr == nil {
			_ = l.cache.Set(cache.FileKey(path), data, 0)
		}
	}
	return New(path, reqs), nil
}

func (l *Loader) loadExcel(path string) ([]model.Requirement, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(l.cfg.SheetName)
	if err != nil {
		return nil, fmt.Errorf("sheet %q not found in %s (available sheets: %s)",
			l.cfg.SheetName, filepath.Base(path), strings.Join(f.GetSheetList(), ", "))
	}
	return l.parseRows(rows)
}

func (l *Loader) loadCSV(path string) ([]model.Requirement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return l.parseRows(rows)
}

// parseRows resolves the header row and builds requirement records.
func (l *Loader) parseRows(rows [][]string) ([]model.Requirement, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", l.cfg.SheetName)
	}

	header := rows[0]
	idCol, descCol, commentsCol := -1, -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case l.cfg.IDColumn:
			idCol = i
		case l.cfg.DescriptionColumn:
			descCol = i
		case l.cfg.CommentsColumn:
			commentsCol = i
		}
	}
	if descCol < 0 {
		return nil, fmt.Errorf("required column %q not found (header: %s)",
			l.cfg.DescriptionColumn, strings.Join(header, ", "))
	}

	var reqs []model.Requirement
	for n, row := range rows[1:] {
		desc := strings.TrimSpace(cell(row, descCol))
		comments := strings.TrimSpace(cell(row, commentsCol))
		if desc == "" && comments == "" {
			continue
		}
		id := strings.TrimSpace(cell(row, idCol))
		if id == "" {
			id = fmt.Sprintf("FR%d", n+1)
		}
		reqs = append(reqs, model.NewRequirement(id, desc, comments))
	}
	return reqs, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
