// Package exporter builds a printable rendition of the translated book:
// first a pure document model, then a PDF rendering of it. The split keeps
// layout decisions testable without touching font files.
package exporter

// MissingPlaceholder marks a paragraph that has no translation under the
// requested prompt.
const MissingPlaceholder = "(טרם תורגם)"

// Document is a fully assembled export, ready for rendering.
type Document struct {
	Title        string
	ShowOriginal bool
	Blocks       []Block
}

// Block is one element of the document flow.
type Block interface {
	isBlock()
}

// ChapterHeading opens a chapter.
type ChapterHeading struct {
	Title    string
	Position int
}

// SectionHeading opens a section within the current chapter.
type SectionHeading struct {
	Title    string
	Position int
}

// Table holds the paragraph rows of one container.
type Table struct {
	Rows []Row
}

// Row is one paragraph line: ordinal, optionally the original text, and
// the translation (or placeholder).
type Row struct {
	Ordinal     int
	Original    string
	Translation string
	Missing     bool
}

func (ChapterHeading) isBlock() {}
func (SectionHeading) isBlock() {}
func (Table) isBlock()          {}
