package composer

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	feemodel "hostelku_backend/internals/features/fees/model"
	studentmodel "hostelku_backend/internals/features/students/model"
	helper "hostelku_backend/internals/helpers"
)

/* =============== PAYMENT RECEIPT =============== */

const (
	receiptLabelW = 58.0
	receiptRowH   = 7.0
)

// ComposeReceipt renders a one-page payment receipt. Missing display fields
// degrade to "N/A"; truly optional lines (UTR, bill detail components, notes)
// are skipped outright. The returned filename falls back from receipt number
// to payment id to a timestamp so a download always has a name.
func (c *Composer) ComposeReceipt(payment feemodel.PaymentRecord, student *studentmodel.Student) ([]byte, string, error) {
	if payment.ID == "" && payment.ReceiptNumber == "" {
		return nil, "", fmt.Errorf("%w: payment has neither id nor receipt number", ErrInvalidData)
	}

	pdf := c.newPage()

	// page frame
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.4)
	pdf.Rect(8, 8, pageWidth-16, pageHeight-16, "D")
	pdf.SetLineWidth(0.2)

	y := c.drawReceiptHeader(pdf)

	y = c.drawReceiptSection(pdf, y, "Receipt Details", [][2]string{
		{"Receipt No", helper.StrOrNA(payment.ReceiptNumber)},
		{"Transaction ID", helper.StrOrNA(payment.TransactionID)},
		{"Payment Date", helper.FormatDateTime(payment.PaymentDate)},
		{"Payment Type", paymentTypeLabel(payment.PaymentType)},
	})

	y = c.drawReceiptSection(pdf, y, "Student Details", studentRows(student))

	y = c.drawReceiptSection(pdf, y, "Payment Details", paymentRows(payment))

	if rows := billDetailRows(payment); len(rows) > 0 {
		y = c.drawReceiptSection(pdf, y, "Electricity Bill Details", rows)
	}

	if payment.Notes != "" {
		y = c.drawReceiptNotes(pdf, y, payment.Notes)
	}

	c.drawReceiptFooter(pdf)

	if err := pdfError(pdf); err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("composer: write receipt: %w", err)
	}
	return buf.Bytes(), receiptFilename(payment, c.now().Unix()), nil
}

func (c *Composer) drawReceiptHeader(pdf *fpdf.Fpdf) float64 {
	y := marginTop + 4

	if c.logo != nil {
		name := "receipt-logo"
		pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "JPG"}, bytes.NewReader(c.logo))
		pdf.ImageOptions(name, marginLeft+2, y, 18, 18, false, fpdf.ImageOptions{ImageType: "JPG"}, 0, "")
	}

	pdf.SetFont("Arial", "B", 15)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(contentWidth, 8, c.institution(), "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "B", 12)
	pdf.SetX(marginLeft)
	pdf.CellFormat(contentWidth, 7, "PAYMENT RECEIPT", "", 1, "C", false, 0, "")

	y = pdf.GetY() + 3
	pdf.Line(marginLeft, y, pageWidth-marginRight, y)
	return y + 5
}

func (c *Composer) drawReceiptSection(pdf *fpdf.Fpdf, y float64, title string, rows [][2]string) float64 {
	pdf.SetFont("Arial", "B", 11)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(contentWidth, 6, title, "", 1, "L", false, 0, "")
	y = pdf.GetY() + 1

	pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		pdf.SetXY(marginLeft+2, y)
		pdf.CellFormat(receiptLabelW, receiptRowH, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(contentWidth-receiptLabelW-2, receiptRowH, ": "+row[1], "", 1, "L", false, 0, "")
		y += receiptRowH
	}
	return y + 4
}

func (c *Composer) drawReceiptNotes(pdf *fpdf.Fpdf, y float64, notes string) float64 {
	pdf.SetFont("Arial", "B", 11)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(contentWidth, 6, "Notes", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetXY(marginLeft+2, pdf.GetY()+1)
	pdf.MultiCell(contentWidth-4, 5.5, notes, "", "L", false)
	return pdf.GetY() + 4
}

func (c *Composer) drawReceiptFooter(pdf *fpdf.Fpdf) {
	pdf.SetFont("Arial", "I", 8)
	pdf.SetXY(marginLeft, pageHeight-30)
	pdf.MultiCell(contentWidth, 4.5,
		"This is a computer generated receipt and does not require a signature. "+
			"Please retain this receipt for your records.", "", "C", false)

	pdf.SetXY(marginLeft, pageHeight-18)
	pdf.CellFormat(contentWidth, 4.5, "Generated on "+helper.FormatDateTime(c.now()), "", 0, "C", false, 0, "")
}

/* =============== ROW BUILDERS =============== */

func studentRows(s *studentmodel.Student) [][2]string {
	if s == nil {
		s = &studentmodel.Student{}
	}
	return [][2]string{
		{"Name", helper.StrOrNA(s.Name)},
		{"Roll Number", helper.StrOrNA(s.RollNumber)},
		{"Room Number", helper.StrOrNA(s.RoomNumber)},
		{"Academic Year", helper.StrOrNA(s.AcademicYear)},
		{"Category", helper.StrOrNA(s.Category)},
	}
}

func paymentRows(p feemodel.PaymentRecord) [][2]string {
	rows := [][2]string{
		{"Amount Paid", helper.FormatMoney(p.Amount)},
	}
	if p.PaymentType == feemodel.PaymentTypeElectricity {
		rows = append(rows, [2]string{"Bill Month", helper.StrOrNA(p.BillMonth)})
	} else if p.Term >= 1 && p.Term <= 3 {
		rows = append(rows, [2]string{"Term", fmt.Sprintf("Term %d", p.Term)})
	} else {
		rows = append(rows, [2]string{"Term", "N/A"})
	}
	rows = append(rows, [2]string{"Payment Method", helper.StrOrNA(p.PaymentMethod)})
	if p.UTRNumber != "" {
		rows = append(rows, [2]string{"UTR Number", p.UTRNumber})
	}
	rows = append(rows,
		[2]string{"Status", helper.StrOrNA(p.Status)},
		[2]string{"Collected By", helper.StrOrNA(p.CollectedBy)},
	)
	return rows
}

// billDetailRows emits only the components the record actually carries; an
// electricity payment with no detail at all gets no section.
func billDetailRows(p feemodel.PaymentRecord) [][2]string {
	if p.PaymentType != feemodel.PaymentTypeElectricity || p.BillDetails == nil {
		return nil
	}
	var rows [][2]string
	if p.BillDetails.Consumption != nil {
		rows = append(rows, [2]string{"Units Consumed", fmt.Sprintf("%g units", *p.BillDetails.Consumption)})
	}
	if p.BillDetails.Rate != nil {
		rows = append(rows, [2]string{"Rate per Unit", fmt.Sprintf("Rs. %.2f", *p.BillDetails.Rate)})
	}
	if p.BillDetails.Total != nil {
		rows = append(rows, [2]string{"Total Bill Amount", helper.FormatMoney(*p.BillDetails.Total)})
	}
	if len(rows) > 0 {
		rows = append(rows, [2]string{"Student's Share", helper.FormatMoney(p.Amount)})
	}
	return rows
}

func paymentTypeLabel(t string) string {
	switch t {
	case feemodel.PaymentTypeHostelFee:
		return "Hostel Fee"
	case feemodel.PaymentTypeElectricity:
		return "Electricity Bill"
	case "":
		return "N/A"
	default:
		return t
	}
}

func receiptFilename(p feemodel.PaymentRecord, unix int64) string {
	switch {
	case p.ReceiptNumber != "":
		return fmt.Sprintf("payment_receipt_%s.pdf", p.ReceiptNumber)
	case p.ID != "":
		return fmt.Sprintf("payment_receipt_%s.pdf", p.ID)
	default:
		return fmt.Sprintf("payment_receipt_%d.pdf", unix)
	}
}
