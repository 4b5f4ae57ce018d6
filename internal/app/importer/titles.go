package importer

import "fmt"

// TitleIndex resolves the display titles of chapters and sections from the
// edition's schema block. Chapter lookup is by the node's English title;
// section lookup is by the "Chapter|Section" composite key.
type TitleIndex struct {
	chapters map[string]string
	sections map[string]string
}

// NewTitleIndex builds a title index from the schema block.
func NewTitleIndex(s Schema) *TitleIndex {
	idx := &TitleIndex{
		chapters: make(map[string]string),
		sections: make(map[string]string),
	}

	for _, ch := range s.Nodes {
		if ch.EnTitle == "" {
			continue
		}
		idx.chapters[ch.EnTitle] = ch.HeTitle
		for _, sec := range ch.Nodes {
			if sec.EnTitle == "" {
				continue
			}
			idx.sections[ch.EnTitle+"|"+sec.EnTitle] = sec.HeTitle
		}
	}

	return idx
}

// ChapterTitle returns the display title for a chapter key.
func (idx *TitleIndex) ChapterTitle(chapterKey string) (string, bool) {
	title, ok := idx.chapters[chapterKey]
	if !ok || title == "" {
		return "", false
	}
	return title, true
}

// SectionTitle returns the display title for a section key within a chapter.
func (idx *TitleIndex) SectionTitle(chapterKey, sectionKey string) (string, bool) {
	title, ok := idx.sections[chapterKey+"|"+sectionKey]
	if !ok || title == "" {
		return "", false
	}
	return title, true
}

// SectionPlaceholder is the generated title for a section whose label is
// empty in both the schema and the text block.
func SectionPlaceholder(position int) string {
	return fmt.Sprintf("פרק %d", position)
}
