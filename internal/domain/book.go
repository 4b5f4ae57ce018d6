// Package domain defines the entities of the book translation pipeline.
//
// The book structure is:
//   - Chapters (e.g., the author's introduction, the treatises)
//   - Some chapters have Sections, some hold paragraphs directly
//   - Paragraphs carry the original Hebrew text, markup-free
//   - Each Paragraph can have multiple Translations (one per prompt name)
package domain

import "time"

// Chapter is a top-level division of the book. Created once during import,
// immutable afterwards.
type Chapter struct {
	ID        int64
	Title     string // Hebrew title resolved from the document schema
	Position  int    // 1-based order in the book
	CreatedAt time.Time
}

// Section is a division within a chapter. Optional: chapters without
// sections attach their paragraphs directly.
type Section struct {
	ID        int64
	ChapterID int64
	Title     string
	Position  int // 1-based order within the chapter
	CreatedAt time.Time
}

// Paragraph is a single unit of original text. It always belongs to a
// chapter and optionally to a section of that chapter.
type Paragraph struct {
	ID        int64
	ChapterID int64
	SectionID *int64 // nil for paragraphs of sectionless chapters
	Position  int    // 1-based order within its section (or chapter)
	Text      string
	CreatedAt time.Time
}

// Translation is one rendering of a paragraph under a named prompt.
// At most one Translation exists per (ParagraphID, PromptName).
type Translation struct {
	ID          int64
	ParagraphID int64
	PromptName  string
	Text        string
	Model       string // model identifier that produced the text
	RunID       string // translation run that produced the row
	CreatedAt   time.Time
}
