package composer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"hostelku_backend/internals/features/fees/allocation"
	feemodel "hostelku_backend/internals/features/fees/model"
	studentmodel "hostelku_backend/internals/features/students/model"
	helper "hostelku_backend/internals/helpers"
)

/* =============== ADMIT CARD =============== */

const (
	copyTopY    = 8.0
	copyHeight  = 138.0
	copyGap     = 5.0
	photoBoxW   = 28.0
	photoBoxH   = 35.0
	detailRowH  = 5.0
	admitCardID = "ADMIT CARD"
)

// admit-card fee table geometry, shared by both renderers
var admitTableWidths = []float64{30, 45, 45, 66}

// ComposeAdmitCard renders two stacked copies of the card on a single A4
// page: the student copy on top (which alone carries the portal password)
// and the warden copy below. The fee table shows per-term fees before and
// after concession; a missing photo or logo degrades to a drawn placeholder.
func (c *Composer) ComposeAdmitCard(student studentmodel.Student, fs *feemodel.FeeStructure, password string) ([]byte, string, error) {
	if !student.Valid() {
		return nil, "", fmt.Errorf("%w: student has neither id nor name", ErrInvalidData)
	}

	terms, err := allocation.ComputeTermFees(fs, student.FeeProfile)
	if err != nil {
		return nil, "", err
	}

	pdf := c.newPage()
	pdf.SetDrawColor(0, 0, 0)

	// images are registered once; both copies reference them by name
	assets := cardAssets{}
	if c.logo != nil {
		assets.logo = "card-logo"
		pdf.RegisterImageOptionsReader(assets.logo, fpdf.ImageOptions{ImageType: "JPG"}, bytes.NewReader(c.logo))
	}
	if photo, ok := prepareImage(student.Photo, photoBoxPx, photoBoxPx); ok {
		assets.photo = "card-photo"
		pdf.RegisterImageOptionsReader(assets.photo, fpdf.ImageOptions{ImageType: "JPG"}, bytes.NewReader(photo))
	}

	table := c.admitFeeTable(fs, terms)

	c.drawCardCopy(pdf, copyTopY, "Student Copy", student, table, assets, password)

	divY := copyTopY + copyHeight + copyGap/2
	pdf.SetDashPattern([]float64{2, 2}, 0)
	pdf.Line(4, divY, pageWidth-4, divY)
	pdf.SetDashPattern([]float64{}, 0)

	c.drawCardCopy(pdf, copyTopY+copyHeight+copyGap, "Warden Copy", student, table, assets, "")

	if err := pdfError(pdf); err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("composer: write admit card: %w", err)
	}
	return buf.Bytes(), admitCardFilename(student), nil
}

// cardAssets holds registered image names; empty means unavailable and the
// drawing code uses its text fallback.
type cardAssets struct {
	logo  string
	photo string
}

func (c *Composer) drawCardCopy(pdf *fpdf.Fpdf, top float64, label string, student studentmodel.Student, table Table, assets cardAssets, password string) {
	pdf.SetLineWidth(0.4)
	pdf.Rect(8, top, pageWidth-16, copyHeight, "D")
	pdf.SetLineWidth(0.2)

	pdf.SetFont("Arial", "I", 8)
	pdf.Text(pageWidth-12-pdf.GetStringWidth(label), top+5, label)

	y := c.drawCardHeader(pdf, top, student.AcademicYear, assets.logo)
	y = c.drawCardDetails(pdf, y, student, assets.photo, label == "Student Copy", password)
	y = c.drawCardFeeTable(pdf, y, table)
	c.drawCardNotes(pdf, y)
}

func (c *Composer) drawCardHeader(pdf *fpdf.Fpdf, top float64, academicYear, logoName string) float64 {
	y := top + 5

	if logoName != "" {
		pdf.ImageOptions(logoName, marginLeft, y, 14, 14, false, fpdf.ImageOptions{ImageType: "JPG"}, 0, "")
	} else {
		pdf.SetFont("Arial", "B", 9)
		pdf.Text(marginLeft, y+8, "[ LOGO ]")
	}

	pdf.SetFont("Arial", "B", 13)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(contentWidth, 7, c.institution(), "", 1, "C", false, 0, "")

	title := admitCardID
	if yr := helper.StrOrEmpty(academicYear); yr != "" {
		title = fmt.Sprintf("%s  %s", admitCardID, yr)
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.SetX(marginLeft)
	pdf.CellFormat(contentWidth, 6, title, "", 1, "C", false, 0, "")

	y = pdf.GetY() + 2
	pdf.Line(marginLeft, y, pageWidth-marginRight, y)
	return y + 3
}

// cardDetailRows is the full identity block printed on each copy. Values
// fall back to empty, not "N/A": a blank row on a card reads better than a
// literal placeholder. The password row appears only on the student copy.
func cardDetailRows(s studentmodel.Student, studentCopy bool, password string) [][2]string {
	rows := [][2]string{
		{"Name", helper.StrOrEmpty(s.Name)},
		{"Roll Number", helper.StrOrEmpty(s.RollNumber)},
		{"Course / Branch", joinCourseBranch(s.Course, s.Branch)},
		{"Year", helper.StrOrEmpty(s.Year)},
		{"Mobile", helper.StrOrEmpty(s.Mobile)},
		{"Parent Mobile", helper.StrOrEmpty(s.ParentMobile)},
		{"Address", helper.StrOrEmpty(s.Address)},
		{"Hostel ID", helper.StrOrEmpty(s.HostelID)},
		{"Category", helper.StrOrEmpty(s.Category)},
		{"Room Number", helper.StrOrEmpty(s.RoomNumber)},
	}
	if studentCopy && password != "" {
		rows = append(rows, [2]string{"Portal Password", password})
	}
	return rows
}

// drawCardDetails writes the key-value block on the left and the photo box
// on the right.
func (c *Composer) drawCardDetails(pdf *fpdf.Fpdf, y float64, s studentmodel.Student, photoName string, studentCopy bool, password string) float64 {
	rows := cardDetailRows(s, studentCopy, password)

	detailTop := y
	pdf.SetFont("Arial", "", 9)
	for _, row := range rows {
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(36, detailRowH, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(100, detailRowH, ": "+row[1], "", 1, "L", false, 0, "")
		y += detailRowH
	}

	photoX := pageWidth - marginRight - photoBoxW
	pdf.Rect(photoX, detailTop, photoBoxW, photoBoxH, "D")
	if photoName != "" {
		pdf.ImageOptions(photoName, photoX+1, detailTop+1, photoBoxW-2, photoBoxH-2, false, fpdf.ImageOptions{ImageType: "JPG"}, 0, "")
	} else {
		pdf.SetFont("Arial", "", 8)
		pdf.Text(photoX+(photoBoxW-pdf.GetStringWidth("Photo"))/2, detailTop+photoBoxH/2, "Photo")
	}

	sigY := detailTop + photoBoxH + 8
	pdf.Line(photoX-4, sigY, pageWidth-marginRight, sigY)
	pdf.SetFont("Arial", "", 7)
	pdf.Text(photoX-4, sigY+3.5, "Warden Signature")

	if bottom := sigY + 6; bottom > y {
		y = bottom
	}
	return y + 2
}

func (c *Composer) drawCardFeeTable(pdf *fpdf.Fpdf, y float64, table Table) float64 {
	pdf.SetFont("Arial", "B", 10)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(contentWidth, 5.5, "FEE STRUCTURE", "", 1, "L", false, 0, "")
	return c.table.Render(pdf, marginLeft, pdf.GetY()+1, table)
}

// admitCardNotices are printed verbatim under the fee table on every copy.
var admitCardNotices = []string{
	"1. A late fee of Rs. 100 per day will be charged on term fees paid after the due date.",
	"2. Electricity charges are not included in the above fees and will be charged extra.",
	"3. This card must be presented at the hostel entrance whenever asked.",
}

func (c *Composer) drawCardNotes(pdf *fpdf.Fpdf, tableEndY float64) {
	y := tableEndY + 3
	pdf.SetFont("Arial", "B", 8)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(contentWidth, 4, "IMPORTANT NOTES", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 7.5)
	y = pdf.GetY()
	for _, n := range admitCardNotices {
		pdf.SetXY(marginLeft+2, y)
		pdf.CellFormat(contentWidth-4, 3.8, n, "", 1, "L", false, 0, "")
		y += 3.8
	}
}

// admitFeeTable lays out per-term fees before and after concession. Remarks
// carry the payment deadlines for terms two and three.
func (c *Composer) admitFeeTable(fs *feemodel.FeeStructure, terms allocation.TermFees) Table {
	var original allocation.TermFees
	if fs != nil {
		original = allocation.TermFees{Term1: fs.Term1Fee, Term2: fs.Term2Fee, Term3: fs.Term3Fee}
	}
	remarks := [3]string{"", "Before 2nd MID Term", "Before 2nd Sem Start"}

	rows := make([][]string, 0, 3)
	for t := 1; t <= 3; t++ {
		rows = append(rows, []string{
			fmt.Sprintf("Term %d", t),
			helper.FormatMoney(original.ForTerm(t)),
			helper.FormatMoney(terms.ForTerm(t)),
			remarks[t-1],
		})
	}

	return Table{
		Widths: admitTableWidths,
		Header: []string{"Term", "Original Amount", "After Concession", "Remarks"},
		Rows:   rows,
		TotalRow: []string{
			"TOTAL",
			helper.FormatMoney(original.Total()),
			helper.FormatMoney(terms.Total()),
			"",
		},
		HeaderH: 6.5,
		RowH:    6,
	}
}

func joinCourseBranch(course, branch string) string {
	course = helper.StrOrEmpty(course)
	branch = helper.StrOrEmpty(branch)
	switch {
	case course != "" && branch != "":
		return course + " / " + branch
	case course != "":
		return course
	default:
		return branch
	}
}

func admitCardFilename(s studentmodel.Student) string {
	name := helper.StrOrEmpty(s.Name)
	if name == "" {
		name = "Student"
	}
	roll := helper.StrOrEmpty(s.RollNumber)
	if roll == "" {
		roll = "Unknown"
	}
	clean := func(v string) string { return strings.ReplaceAll(v, " ", "_") }
	return fmt.Sprintf("AdmitCard_%s_%s.pdf", clean(name), clean(roll))
}
