// Package xlsx writes puzzles as spreadsheet workbooks.
package xlsx

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"svw.info/polygen/internal/domain"
)

const puzzleSheet = "Puzzle"

// Exporter implements ports.Exporter.
type Exporter struct{}

func (Exporter) Export(w io.Writer, p *domain.Puzzle) error { return Export(w, p) }

// Export writes a "Puzzle" sheet with metadata and occupancy layers, then
// one sheet per solution with its piece letters, order and description.
// Layers run top down; each layer is Length rows by Width columns.
func Export(w io.Writer, p *domain.Puzzle) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", puzzleSheet); err != nil {
		return err
	}
	d := p.Dims()
	meta := [][2]any{
		{"Name", p.Name},
		{"Description", p.Description},
		{"Family", p.Family.String()},
		{"Width", d.Width},
		{"Length", d.Length},
		{"Height", d.Height},
		{"Cells", p.Occupied()},
		{"Difficulty", int(p.Difficulty)},
		{"Solutions", len(p.Solutions)},
	}
	for i, kv := range meta {
		if err := setRow(f, puzzleSheet, i+1, kv[0], kv[1]); err != nil {
			return err
		}
	}
	occ := domain.Map(p.Occupancy, func(_ domain.Pos, filled bool) string {
		if filled {
			return "#"
		}
		return ""
	})
	if err := writeLayers(f, puzzleSheet, len(meta)+2, occ); err != nil {
		return err
	}

	for i, s := range p.Solutions {
		name := "Solution " + strconv.Itoa(i+1)
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
		order := ""
		for _, pc := range s.Order {
			order += pc.String()
		}
		if err := setRow(f, name, 1, "Description", s.Description); err != nil {
			return err
		}
		if err := setRow(f, name, 2, "Order", order); err != nil {
			return err
		}
		labels := domain.Map(s.Value, func(_ domain.Pos, pc domain.Piece) string {
			if pc == domain.Empty {
				return ""
			}
			return pc.String()
		})
		if err := writeLayers(f, name, 4, labels); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)
	_, err := f.WriteTo(w)
	return err
}

func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// writeLayers writes one labelled block per layer starting at row, with a
// blank row between blocks.
func writeLayers(f *excelize.File, sheet string, row int, g domain.Grid[string]) error {
	d := g.Dims()
	for h := d.Height - 1; h >= 0; h-- {
		if err := setRow(f, sheet, row, fmt.Sprintf("Layer %d", h+1)); err != nil {
			return err
		}
		row++
		for l := 0; l < d.Length; l++ {
			vals := make([]any, d.Width)
			for w := range vals {
				vals[w] = g.At(domain.Pos{H: h, L: l, W: w})
			}
			if err := setRow(f, sheet, row, vals...); err != nil {
				return err
			}
			row++
		}
		row++
	}
	return nil
}
