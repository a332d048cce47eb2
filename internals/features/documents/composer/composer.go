// Package composer assembles receipt and admit-card PDFs from derived fee
// data. Layout is fixed-geometry A4; every optional field degrades to a
// placeholder so a single bad value never aborts a document.
package composer

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

/* =============== PAGE GEOMETRY =============== */

const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 12.0
	marginRight  = 12.0
	marginTop    = 12.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// ErrInvalidData is the one structural failure the composers report; it is
// returned, never panicked, and callers surface a generic failure message.
var ErrInvalidData = errors.New("composer: invalid document data")

/* =============== COMPOSER =============== */

type Config struct {
	InstitutionName string
	LogoPath        string

	// Table selects the table drawing strategy; nil means CellTableRenderer.
	// GridTableRenderer draws the same geometry without the cell machinery.
	Table TableRenderer
}

type Composer struct {
	cfg   Config
	table TableRenderer
	logo  []byte // pre-fitted JPEG bytes, nil when unavailable

	now func() time.Time
}

func New(cfg Config) *Composer {
	table := cfg.Table
	if table == nil {
		table = CellTableRenderer{}
	}
	logo, _ := loadLogo(cfg.LogoPath, logoBoxPx, logoBoxPx)
	return &Composer{
		cfg:   cfg,
		table: table,
		logo:  logo,
		now:   time.Now,
	}
}

// WithClock pins the composer's clock; generation timestamps and PDF
// metadata become deterministic, which the idempotency tests rely on.
func (c *Composer) WithClock(now func() time.Time) *Composer {
	c.now = now
	return c
}

func (c *Composer) institution() string {
	if c.cfg.InstitutionName != "" {
		return c.cfg.InstitutionName
	}
	return "Hostel Management System"
}

// newPage builds the shared A4 canvas with pinned metadata dates.
func (c *Composer) newPage() *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreationDate(c.now())
	pdf.SetModificationDate(c.now())
	pdf.AddPage()
	return pdf
}

func pdfError(pdf *fpdf.Fpdf) error {
	if pdf.Err() {
		return fmt.Errorf("composer: render: %w", pdf.Error())
	}
	return nil
}
