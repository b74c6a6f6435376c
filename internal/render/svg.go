// Package render draws an assembled entity document as a rooted tree
// diagram: identifiers, attributes and field groups branch from the
// entity trunk in insertion order, field-group sub-fields branch into
// a second column.
package render

import (
	"fmt"
	"io"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/ovasilenko/canonry/internal/model"
	"github.com/ovasilenko/canonry/internal/vocab"
)

// Layout constants.
const (
	boxWidth  = 145
	boxHeight = 26
	spacing   = 29
	entityX   = 20
	entityY   = 80
	col1X     = 220
	col2X     = 380
	svgWidth  = 900
)

// Box styles.
const (
	lineStyle     = "stroke:#666;stroke-width:1"
	entityStyle   = "fill:#2196F3;stroke:#666;stroke-width:1"
	attrStyle     = "fill:#C5E1A5;stroke:#666;stroke-width:1"
	identStyle    = "fill:#F8BBD9;stroke:#666;stroke-width:1"
	groupStyle    = "fill:#FFD54F;stroke:#666;stroke-width:1"
	legendStyle   = "fill:#f0f0f0;stroke:#666;stroke-width:1"
	titleStyle    = "font-family:Arial;font-size:14px;font-weight:bold;text-decoration:underline"
	labelStyle    = "font-family:Arial;font-size:10px;text-anchor:middle"
	subLabelStyle = "font-family:Arial;font-size:9px;text-anchor:middle"
	markerStyle   = "font-family:Arial;font-size:8px;fill:#666"
)

// Renderer draws entity hierarchy diagrams.
type Renderer struct {
	dropdown map[string]bool // Fields annotated as enumerated/dropdown-valued
}

// NewRenderer creates a renderer with the standard dropdown-field set.
func NewRenderer() *Renderer {
	return &Renderer{dropdown: vocab.DropdownFields()}
}

// item is one laid-out row in the first column.
type item struct {
	kind      string // "identifier", "attribute", "field_group"
	label     string
	y         int
	dropdown  bool
	subFields []string
}

// RenderFile writes the diagram for one entity document to path.
func (r *Renderer) RenderFile(entity model.EntityDocument, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create diagram: %w", err)
	}
	if err := r.Render(entity, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Render draws the entity hierarchy to w.
func (r *Renderer) Render(entity model.EntityDocument, w io.Writer) error {
	items := r.layout(entity)

	maxY := entityY
	for _, it := range items {
		if it.y > maxY {
			maxY = it.y
		}
		if bottom := it.y + len(it.subFields)*spacing; bottom > maxY {
			maxY = bottom
		}
	}
	height := maxY + 100
	if height < 200 {
		height = 200
	}

	canvas := svg.New(w)
	canvas.Start(svgWidth, height)

	canvas.Text(10, 20, entity.Name+" Entity Hierarchy", titleStyle)
	r.legend(canvas)

	// Entity box and vertical trunk
	trunkX := entityX + boxWidth/2
	canvas.Roundrect(entityX, entityY, boxWidth, boxHeight, 12, 12, entityStyle)
	canvas.Text(trunkX, entityY+18, entity.Name,
		"font-family:Arial;font-size:11px;fill:white;text-anchor:middle;font-weight:bold")

	trunkEnd := entityY + boxHeight
	if len(items) > 0 {
		trunkEnd = items[len(items)-1].y + boxHeight/2
	}
	canvas.Line(trunkX, entityY+boxHeight, trunkX, trunkEnd, lineStyle)

	for _, it := range items {
		r.drawItem(canvas, trunkX, it)
	}

	canvas.End()
	return nil
}

// layout computes the first-column positions in document order.
func (r *Renderer) layout(entity model.EntityDocument) []item {
	var items []item
	y := entityY + boxHeight + spacing

	for _, id := range entity.Identifiers {
		items = append(items, item{kind: "identifier", label: id, y: y})
		y += spacing
	}
	for _, attr := range entity.Attributes.OOTB {
		items = append(items, item{kind: "attribute", label: attr, y: y, dropdown: r.dropdown[attr]})
		y += spacing
	}
	for _, attr := range entity.Attributes.Custom {
		items = append(items, item{kind: "attribute", label: attr + " (custom)", y: y, dropdown: r.dropdown[attr]})
		y += spacing
	}
	for _, fg := range entity.FieldGroups {
		sub := append(append([]string(nil), fg.Fields.OOTB...), fg.Fields.Custom...)
		items = append(items, item{
			kind:      "field_group",
			label:     fmt.Sprintf("%s (%s)", fg.Name, fg.Type),
			y:         y,
			subFields: sub,
		})
		y += spacing
	}
	return items
}

func (r *Renderer) drawItem(canvas *svg.SVG, trunkX int, it item) {
	centerX := col1X + boxWidth/2
	centerY := it.y + boxHeight/2

	canvas.Line(trunkX, centerY, col1X, centerY, lineStyle)

	switch it.kind {
	case "identifier":
		canvas.Roundrect(col1X, it.y, boxWidth, boxHeight, 12, 12, identStyle)
		canvas.Text(centerX, it.y+18, it.label, labelStyle)
	case "attribute":
		canvas.Roundrect(col1X, it.y, boxWidth, boxHeight, 12, 12, attrStyle)
		canvas.Text(centerX, it.y+18, it.label, labelStyle)
		if it.dropdown {
			canvas.Text(col1X+boxWidth-15, it.y+12, "▼", markerStyle)
		}
	case "field_group":
		canvas.Roundrect(col1X, it.y, boxWidth, boxHeight, 12, 12, groupStyle)
		canvas.Text(centerX, it.y+18, it.label, labelStyle)
		r.drawSubFields(canvas, it)
	}
}

// drawSubFields branches a field group's fields into the second column.
func (r *Renderer) drawSubFields(canvas *svg.SVG, it item) {
	groupRightX := col1X + boxWidth
	groupCenterY := it.y + boxHeight/2
	branchX := groupRightX + 10

	subY := it.y
	for _, field := range it.subFields {
		subCenterX := col2X + boxWidth/2
		subCenterY := subY + boxHeight/2

		canvas.Line(groupRightX, groupCenterY, branchX, groupCenterY, lineStyle)
		canvas.Line(branchX, groupCenterY, branchX, subCenterY, lineStyle)
		canvas.Line(branchX, subCenterY, col2X, subCenterY, lineStyle)

		canvas.Roundrect(col2X, subY, boxWidth, boxHeight, 12, 12, attrStyle)
		canvas.Text(subCenterX, subY+18, field, subLabelStyle)
		if r.dropdown[field] {
			canvas.Text(col2X+boxWidth-12, subY+12, "▼", markerStyle)
		}

		subY += spacing
	}
}

func (r *Renderer) legend(canvas *svg.SVG) {
	canvas.Roundrect(10, 30, 780, 40, 5, 5, legendStyle)
	canvas.Text(20, 50, "Legend:", "font-family:Arial;font-size:11px;font-weight:bold")

	entries := []struct {
		x     int
		style string
		label string
	}{
		{100, entityStyle, "Business Entity"},
		{220, attrStyle, "General Attributes"},
		{340, identStyle, "Identifiers"},
		{460, groupStyle, "Field Groups"},
	}
	for _, e := range entries {
		canvas.Roundrect(e.x, 40, 100, 20, 3, 3, e.style)
		canvas.Text(e.x+5, 53, e.label, "font-family:Arial;font-size:9px")
	}
}
