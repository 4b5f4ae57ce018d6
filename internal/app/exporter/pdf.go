package exporter

import (
	"fmt"
	"log/slog"

	"github.com/go-pdf/fpdf"

	"github.com/heartmarshall/booktrans/internal/config"
)

const (
	pageWidth    = 210.0 // A4 portrait, mm
	marginSide   = 10.0
	marginTop    = 15.0
	lineHeight   = 6.0
	rowPadding   = 2.0
	ordinalWidth = 12.0
	breakAt      = 278.0 // force a page break past this Y

	chapterFontSize = 18.0
	sectionFontSize = 14.0
	bodyFontSize    = 11.0
)

// PDFRenderer writes a Document to a PDF file. Hebrew output needs a UTF-8
// TrueType font configured; without one the renderer falls back to the
// built-in core font, which only covers Latin text.
type PDFRenderer struct {
	log *slog.Logger
	cfg config.ExportConfig
}

// NewPDFRenderer creates a renderer from the export configuration.
func NewPDFRenderer(log *slog.Logger, cfg config.ExportConfig) *PDFRenderer {
	return &PDFRenderer{log: log, cfg: cfg}
}

// Render writes the document to outPath.
func (r *PDFRenderer) Render(doc *Document, outPath string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginSide, marginTop, marginSide)
	pdf.SetAutoPageBreak(true, marginTop)

	font := "Helvetica"
	hebrewCapable := false
	if r.cfg.FontPath != "" {
		pdf.AddUTF8Font(r.cfg.FontName, "", r.cfg.FontPath)
		font = r.cfg.FontName
		hebrewCapable = true
	} else {
		r.log.Warn("no export font configured, falling back to core font; Hebrew text will not render")
	}

	pdf.AddPage()

	for _, block := range doc.Blocks {
		switch b := block.(type) {
		case ChapterHeading:
			r.heading(pdf, font, hebrewCapable, b.Title, chapterFontSize)
		case SectionHeading:
			r.heading(pdf, font, hebrewCapable, b.Title, sectionFontSize)
		case Table:
			r.table(pdf, font, hebrewCapable, doc.ShowOriginal, b)
		}
	}

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf %s: %w", outPath, err)
	}
	return nil
}

func (r *PDFRenderer) heading(pdf *fpdf.Fpdf, font string, rtl bool, title string, size float64) {
	pdf.SetFont(font, "", size)
	pdf.SetTextColor(40, 40, 90)

	if rtl {
		pdf.RTL()
		title = MirrorBrackets(title)
	}
	pdf.CellFormat(0, lineHeight*1.6, title, "", 1, "R", false, 0, "")
	pdf.LTR()

	pdf.Ln(lineHeight / 2)
	pdf.SetTextColor(0, 0, 0)
}

func (r *PDFRenderer) table(pdf *fpdf.Fpdf, font string, rtl, showOriginal bool, table Table) {
	pdf.SetFont(font, "", bodyFontSize)

	textWidth := pageWidth - 2*marginSide - ordinalWidth
	originalWidth := 0.0
	translationWidth := textWidth
	if showOriginal {
		originalWidth = textWidth / 2
		translationWidth = textWidth / 2
	}

	for _, row := range table.Rows {
		original := row.Original
		if rtl {
			original = MirrorBrackets(original)
		}

		// Measure both cells to size the row before drawing it.
		height := lineHeight
		if showOriginal {
			if h := cellHeight(pdf, originalWidth, original); h > height {
				height = h
			}
		}
		if h := cellHeight(pdf, translationWidth, row.Translation); h > height {
			height = h
		}
		height += rowPadding

		if pdf.GetY()+height > breakAt {
			pdf.AddPage()
		}

		y := pdf.GetY()
		x := marginSide

		pdf.SetXY(x, y)
		pdf.CellFormat(ordinalWidth, height, fmt.Sprintf("%d", row.Ordinal), "", 0, "CM", false, 0, "")
		x += ordinalWidth

		if showOriginal {
			pdf.SetXY(x, y)
			if rtl {
				pdf.RTL()
			}
			pdf.MultiCell(originalWidth, lineHeight, original, "", "R", false)
			pdf.LTR()
			x += originalWidth
		}

		if row.Missing {
			pdf.SetTextColor(130, 130, 130)
		}
		pdf.SetXY(x, y)
		if rtl {
			// The placeholder is Hebrew even when translations are not.
			if row.Missing {
				pdf.RTL()
			}
		}
		align := "L"
		if row.Missing {
			align = "R"
		}
		pdf.MultiCell(translationWidth, lineHeight, row.Translation, "", align, false)
		pdf.LTR()
		if row.Missing {
			pdf.SetTextColor(0, 0, 0)
		}

		pdf.SetY(y + height)
		pdf.SetDrawColor(220, 220, 220)
		pdf.Line(marginSide, pdf.GetY(), pageWidth-marginSide, pdf.GetY())
	}

	pdf.Ln(lineHeight)
}

// cellHeight returns the rendered height of text wrapped to width.
func cellHeight(pdf *fpdf.Fpdf, width float64, text string) float64 {
	lines := pdf.SplitText(text, width)
	if len(lines) == 0 {
		return lineHeight
	}
	return float64(len(lines)) * lineHeight
}
