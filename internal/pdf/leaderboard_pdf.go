package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"salesboard/internal/models"
)

// Generator — интерфейс (удобно мокать в тестах)
type Generator interface {
	RenderLeaderboard(w io.Writer, timeframe string, generatedAt time.Time, entries []models.LeaderboardEntry) error
}

type ReportGenerator struct{}

func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{}
}

// RenderLeaderboard пишет PDF-отчёт лидерборда в w.
func (g *ReportGenerator) RenderLeaderboard(w io.Writer, timeframe string, generatedAt time.Time, entries []models.LeaderboardEntry) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Sales Leaderboard", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Timeframe: %s    Generated: %s",
		timeframe, generatedAt.Format("2006-01-02 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// шапка таблицы
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	widths := []float64{12, 58, 50, 18, 26, 26}
	headers := []string{"#", "Rep", "Email", "Deals", "Amount", "Points"}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for rank, e := range entries {
		pdf.CellFormat(widths[0], 7, fmt.Sprintf("%d", rank+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 7, e.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, e.Email, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 7, fmt.Sprintf("%d", e.Deals), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 7, fmt.Sprintf("%.2f", e.Amount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 7, fmt.Sprintf("%.2f", e.Points), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("рендер PDF лидерборда: %w", err)
	}
	return nil
}
