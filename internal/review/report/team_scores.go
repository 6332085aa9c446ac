// Package report renders calibration packets.
package report

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"calibra/internal/review/models"
)

var columns = []struct {
	title string
	width float64
	align string
}{
	{"Employee", 60, "L"},
	{"Level", 28, "L"},
	{"Weighted", 22, "R"},
	{"Percent", 22, "R"},
	{"Tier", 24, "C"},
	{"Delivered", 24, "C"},
}

// TeamScoresPDF writes a one-table A4 packet of a team's final scores.
func TeamScoresPDF(w io.Writer, cycle *models.ReviewCycle, result *models.TeamFinalScoresResult) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("%s calibration packet", cycle.Name), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Calibration packet")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Cycle: %s (%d), status %s", cycle.Name, cycle.Year, cycle.Status))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Team members: %d", len(result.TeamScores)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range columns {
		pdf.CellFormat(col.width, 8, col.title, "1", 0, col.align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range result.TeamScores {
		values := []string{
			row.EmployeeName,
			row.Level,
			fmt.Sprintf("%.2f", row.WeightedScore),
			fmt.Sprintf("%.1f%%", row.PercentageScore),
			string(row.BonusTier),
			yesNo(row.FeedbackDelivered),
		}
		for i, col := range columns {
			pdf.CellFormat(col.width, 7, values[i], "1", 0, col.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render calibration packet: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write calibration packet: %w", err)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
