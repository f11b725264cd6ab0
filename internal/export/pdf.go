// Package export renders the task list as a printable checklist.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/idilsaglam/tada/internal/model"
)

const (
	boxSize    = 4.0 // mm
	lineHeight = 8.0
)

// PDF writes one checklist line per task, in order. Completed tasks get a
// ticked box and grey text.
func PDF(w io.Writer, title string, tasks []model.Task, generated time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetCreator("tada", true)
	pdf.SetCreationDate(generated)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr(title))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(120, 120, 120)
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	pdf.Cell(0, 6, fmt.Sprintf("%d of %d done  -  %s", done, len(tasks), generated.Format("2006-01-02 15:04")))
	pdf.Ln(10)

	if len(tasks) == 0 {
		pdf.SetFont("Arial", "I", 11)
		pdf.Cell(0, lineHeight, "no tasks")
	}

	left, _, _, _ := pdf.GetMargins()
	for _, t := range tasks {
		if pdf.GetY()+lineHeight > 280 {
			pdf.AddPage()
		}
		y := pdf.GetY()
		pdf.SetDrawColor(60, 60, 60)
		pdf.Rect(left, y+2, boxSize, boxSize, "D")
		if t.Completed {
			pdf.Line(left+0.8, y+4, left+1.8, y+5.3)
			pdf.Line(left+1.8, y+5.3, left+3.4, y+2.6)
			pdf.SetTextColor(140, 140, 140)
		} else {
			pdf.SetTextColor(0, 0, 0)
		}

		pdf.SetX(left + boxSize + 3)
		pdf.SetFont("Arial", "", 11)
		text := t.Text
		if text == "" {
			text = "(empty)"
		}
		pdf.CellFormat(130, lineHeight, tr(text), "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "I", 9)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, lineHeight, tr(t.Category), "", 1, "R", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
