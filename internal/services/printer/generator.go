package printer

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/sbhworks/indentflow/internal/workflow"
	"github.com/skip2/go-qrcode"
)

// GenerateIndentSlip renders a printable A6 slip for an indent: the request
// details plus a QR code encoding the indent number, meant to be taped to
// the machine while it is under repair.
func GenerateIndentSlip(ind workflow.Indent) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A6", "")
	pdf.SetMargins(8, 8, 8)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, "Maintenance Indent", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 7, ind.IndentNo, "", 1, "C", false, 0, "")

	qrContent := fmt.Sprintf("INDENT/%s/%d", ind.IndentNo, ind.RowIndex)
	qrPng, err := qrcode.Encode(qrContent, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode QR: %w", err)
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qrPng))

	// Centered QR under the header. A6 is 105mm wide.
	qrSize := 34.0
	pdf.ImageOptions("qr", (105-qrSize)/2, pdf.GetY()+2, qrSize, qrSize, false, opts, 0, "")
	pdf.SetY(pdf.GetY() + qrSize + 5)

	pdf.SetFont("Arial", "", 9)
	line := func(label, value string) {
		if value == "" {
			value = "-"
		}
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(26, 5, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(0, 5, value, "", "L", false)
	}

	line("Machine", ind.MachineName)
	line("Department", ind.Department)
	line("Priority", ind.Priority)
	line("Raised", ind.Timestamp)
	line("Expected", ind.ExpectedDate)
	line("Problem", ind.Problem)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render slip PDF: %w", err)
	}
	return buf.Bytes(), nil
}
