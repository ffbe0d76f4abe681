package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// renderPDF lays the activity report out as a single A4 document with one
// table per section.
func renderPDF(a *Activity) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Delivery Service Activity Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Delivery Service Activity Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6,
		fmt.Sprintf("Generated %s, covering orders since %s",
			a.GeneratedAt.Format("2006-01-02 15:04"),
			a.Since.Format("2006-01-02")),
		"", 1, "C", false, 0, "")
	pdf.Ln(4)

	section(pdf, "Courier performance (last 30 days)",
		[]string{"Courier", "Deliveries", "Delivery cost total"},
		[]float64{90, 40, 50},
		len(a.Couriers), func(i int) []string {
			c := a.Couriers[i]
			return []string{c.Name, fmt.Sprintf("%d", c.Deliveries), c.Earnings.StringFixed(2)}
		})

	section(pdf, "Orders by status",
		[]string{"Status", "Orders"},
		[]float64{130, 50},
		len(a.Statuses), func(i int) []string {
			s := a.Statuses[i]
			return []string{s.Name, fmt.Sprintf("%d", s.Orders)}
		})

	section(pdf, "Payments by method",
		[]string{"Method", "Payments", "Amount"},
		[]float64{90, 40, 50},
		len(a.Payments), func(i int) []string {
			p := a.Payments[i]
			return []string{p.Name, fmt.Sprintf("%d", p.Payments), p.Amount.StringFixed(2)}
		})

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func section(pdf *gofpdf.Fpdf, title string, headers []string, widths []float64, rows int, row func(int) []string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	if rows == 0 {
		pdf.CellFormat(sum(widths), 7, "No data", "1", 1, "C", false, 0, "")
	}
	for i := 0; i < rows; i++ {
		for j, cell := range row(i) {
			pdf.CellFormat(widths[j], 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

func sum(ws []float64) float64 {
	var total float64
	for _, w := range ws {
		total += w
	}
	return total
}
