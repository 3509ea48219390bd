package export

import (
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/mmynk/billbook/internal/billing"
	"github.com/mmynk/billbook/internal/models"
)

const (
	lineHeight = 10.0
	fontFamily = "Arial"
)

// newDocument sets up an A4 page with the shared footer. Text passed to the
// returned translator is mapped to the core fonts' cp1252 encoding.
func (e *Exporter) newDocument(title, ref string) (*fpdf.Fpdf, func(string) string) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(e.compress)
	pdf.SetTitle(title, true)
	pdf.SetSubject("ref "+ref, true)
	pdf.SetCreator("billbook", true)
	pdf.SetAutoPageBreak(true, 15)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.CellFormat(0, lineHeight, "Ref: "+ref+"   Page "+strconv.Itoa(pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont(fontFamily, "B", 16)
	pdf.CellFormat(0, lineHeight, title, "", 1, "C", false, 0, "")
	pdf.Ln(5)
	return pdf, tr
}

func (e *Exporter) billDocument(bill *models.Bill, ref string) *fpdf.Fpdf {
	pdf, tr := e.newDocument("Customer Bill", ref)

	pdf.SetFont(fontFamily, "", 12)
	for _, line := range []string{
		"Name: " + bill.Customer.Name,
		"Phone: " + bill.Customer.Phone,
		"Email: " + bill.Customer.Email,
		"Date: " + formatDate(bill.CreatedAt),
	} {
		pdf.CellFormat(0, lineHeight, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	widths := []float64{70, 30, 40, 40}
	pdf.SetFont(fontFamily, "B", 12)
	for i, h := range []string{"Item", "Quantity", "Price", "Total"} {
		pdf.CellFormat(widths[i], lineHeight, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(fontFamily, "", 12)
	for _, item := range bill.Items {
		pdf.CellFormat(widths[0], lineHeight, tr(item.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], lineHeight, strconv.Itoa(item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], lineHeight, tr(billing.FormatMoney(e.currency, item.Price)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], lineHeight, tr(billing.FormatMoney(e.currency, item.LineTotal())), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(5)
	pdf.SetFont(fontFamily, "B", 14)
	pdf.CellFormat(0, lineHeight, tr("Total: "+billing.FormatMoney(e.currency, bill.Total)), "", 1, "L", false, 0, "")
	return pdf
}

func (e *Exporter) summaryDocument(bills []*models.Bill, ref string) *fpdf.Fpdf {
	pdf, tr := e.newDocument("All Bills Summary", ref)

	widths := []float64{70, 50, 60}
	pdf.SetFont(fontFamily, "B", 12)
	for i, h := range []string{"Customer", "Amount", "Date"} {
		pdf.CellFormat(widths[i], lineHeight, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(fontFamily, "", 12)
	for _, b := range bills {
		pdf.CellFormat(widths[0], lineHeight, tr(b.Customer.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], lineHeight, tr(billing.FormatMoney(e.currency, b.Total)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], lineHeight, formatDate(b.CreatedAt), "1", 1, "L", false, 0, "")
	}

	pdf.Ln(lineHeight)
	pdf.SetFont(fontFamily, "B", 12)
	revenue := billing.Revenue(bills)
	pdf.CellFormat(0, lineHeight, tr("Total Revenue: "+billing.FormatMoney(e.currency, revenue)), "", 1, "C", false, 0, "")
	return pdf
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
