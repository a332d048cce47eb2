package composer

import "github.com/go-pdf/fpdf"

/* =============== TABLE RENDERING STRATEGY =============== */

// Table is a fixed-geometry grid: header row, body rows, bold total row.
type Table struct {
	Widths   []float64
	Header   []string
	Rows     [][]string
	TotalRow []string
	HeaderH  float64
	RowH     float64
}

func (t Table) width() float64 {
	var w float64
	for _, cw := range t.Widths {
		w += cw
	}
	return w
}

func (t Table) height() float64 {
	rows := len(t.Rows)
	if len(t.TotalRow) > 0 {
		rows++
	}
	return t.HeaderH + t.RowH*float64(rows)
}

// TableRenderer draws a Table at (x, y) and reports where it ended. The two
// implementations must agree on geometry exactly: the notes block below the
// fee table is positioned off the returned endY, whichever path ran.
type TableRenderer interface {
	Render(pdf *fpdf.Fpdf, x, y float64, t Table) (endY float64)
}

/* =============== DELEGATED (cell-based) =============== */

// CellTableRenderer delegates every cell to fpdf's CellFormat, the normal
// path when the cell machinery is available.
type CellTableRenderer struct{}

func (CellTableRenderer) Render(pdf *fpdf.Fpdf, x, y float64, t Table) float64 {
	pdf.SetXY(x, y)
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(tableHeaderFill())
	pdf.SetDrawColor(0, 0, 0)
	for i, h := range t.Header {
		pdf.CellFormat(t.Widths[i], t.HeaderH, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range t.Rows {
		pdf.SetX(x)
		for i, cell := range row {
			align := "L"
			if i > 0 && i < len(row)-1 {
				align = "R"
			}
			pdf.CellFormat(t.Widths[i], t.RowH, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(t.TotalRow) > 0 {
		pdf.SetX(x)
		pdf.SetFont("Arial", "B", 9)
		for i, cell := range t.TotalRow {
			align := "L"
			if i > 0 && i < len(t.TotalRow)-1 {
				align = "R"
			}
			pdf.CellFormat(t.Widths[i], t.RowH, cell, "1", 0, align, true, 0, "")
		}
		pdf.Ln(-1)
	}

	return y + t.height()
}

/* =============== MANUAL GRID FALLBACK =============== */

// GridTableRenderer draws the same table without the cell machinery: grid
// lines via Rect/Line, text placed at explicit column coordinates. Column
// count, header fill and total-row weight match CellTableRenderer so the
// downstream geometry is identical.
type GridTableRenderer struct{}

func (GridTableRenderer) Render(pdf *fpdf.Fpdf, x, y float64, t Table) float64 {
	width := t.width()
	height := t.height()

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetFillColor(tableHeaderFill())

	// header band fill, then the outer frame
	pdf.Rect(x, y, width, t.HeaderH, "F")
	if len(t.TotalRow) > 0 {
		pdf.Rect(x, y+height-t.RowH, width, t.RowH, "F")
	}
	pdf.Rect(x, y, width, height, "D")

	// horizontal rules
	rowY := y + t.HeaderH
	for r := 0; r <= len(t.Rows); r++ {
		pdf.Line(x, rowY, x+width, rowY)
		rowY += t.RowH
	}

	// vertical rules
	colX := x
	for i := 0; i < len(t.Widths)-1; i++ {
		colX += t.Widths[i]
		pdf.Line(colX, y, colX, y+height)
	}

	// header text
	pdf.SetFont("Arial", "B", 9)
	writeGridRow(pdf, x, y, t.HeaderH, t.Widths, t.Header, true)

	// body
	pdf.SetFont("Arial", "", 9)
	rowY = y + t.HeaderH
	for _, row := range t.Rows {
		writeGridRow(pdf, x, rowY, t.RowH, t.Widths, row, false)
		rowY += t.RowH
	}

	if len(t.TotalRow) > 0 {
		pdf.SetFont("Arial", "B", 9)
		writeGridRow(pdf, x, rowY, t.RowH, t.Widths, t.TotalRow, false)
	}

	return y + height
}

func writeGridRow(pdf *fpdf.Fpdf, x, y, h float64, widths []float64, cells []string, center bool) {
	baseline := y + h - (h-3.2)/2
	colX := x
	for i, cell := range cells {
		var tx float64
		switch {
		case center:
			tx = colX + (widths[i]-pdf.GetStringWidth(cell))/2
		case i > 0 && i < len(cells)-1:
			tx = colX + widths[i] - pdf.GetStringWidth(cell) - 2
		default:
			tx = colX + 2
		}
		pdf.Text(tx, baseline, cell)
		colX += widths[i]
	}
}

func tableHeaderFill() (int, int, int) { return 230, 230, 230 }
