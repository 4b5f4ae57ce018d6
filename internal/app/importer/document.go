// Package importer parses a structured book edition (JSON) into the store:
// chapters, optional sections, and cleaned paragraphs.
package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// SchemaNode describes one node of the edition's title schema. Chapter
// nodes carry section nodes in Nodes.
type SchemaNode struct {
	EnTitle string       `json:"enTitle"`
	HeTitle string       `json:"heTitle"`
	Nodes   []SchemaNode `json:"nodes"`
}

// Schema is the edition's title lookup block.
type Schema struct {
	Nodes []SchemaNode `json:"nodes"`
}

// Chapter is one decoded chapter of the document, in document order.
// Exactly one of Sections and Paragraphs is populated: a chapter either
// carries sections or carries paragraphs directly.
type Chapter struct {
	Key        string
	Sections   []Section
	Paragraphs []string
}

// Section is one decoded section of a chapter, in document order.
type Section struct {
	Key        string
	Paragraphs []string
}

// Document is a fully decoded edition file.
type Document struct {
	Schema   Schema
	Chapters []Chapter
}

// Parse decodes an edition document from r. The "text" block is decoded
// with a token stream so chapter and section order follows the document;
// unmarshalling into a map would lose it. Malformed input aborts with the
// byte offset of the failure.
func Parse(r io.Reader) (*Document, error) {
	dec := json.NewDecoder(r)

	if err := expectDelim(dec, '{'); err != nil {
		return nil, parseErr(dec, err)
	}

	var doc Document
	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return nil, parseErr(dec, err)
		}

		switch key {
		case "schema":
			if err := dec.Decode(&doc.Schema); err != nil {
				return nil, parseErr(dec, fmt.Errorf("schema block: %w", err))
			}
		case "text":
			chapters, err := parseText(dec)
			if err != nil {
				return nil, parseErr(dec, err)
			}
			doc.Chapters = chapters
		default:
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, parseErr(dec, fmt.Errorf("field %q: %w", key, err))
			}
		}
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, parseErr(dec, err)
	}

	return &doc, nil
}

// parseText decodes the "text" object: chapter key → content, where content
// is either a paragraph list or a section object.
func parseText(dec *json.Decoder) ([]Chapter, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("text block: %w", err)
	}

	var chapters []Chapter
	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return nil, fmt.Errorf("text block: %w", err)
		}

		ch := Chapter{Key: key}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("chapter %q: %w", key, err)
		}

		switch firstByte(raw) {
		case '[':
			paragraphs, err := flattenParagraphs(raw)
			if err != nil {
				return nil, fmt.Errorf("chapter %q: %w", key, err)
			}
			ch.Paragraphs = paragraphs
		case '{':
			sections, err := parseSections(raw)
			if err != nil {
				return nil, fmt.Errorf("chapter %q: %w", key, err)
			}
			ch.Sections = sections
		default:
			return nil, fmt.Errorf("chapter %q: content must be an array or object", key)
		}

		chapters = append(chapters, ch)
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, fmt.Errorf("text block: %w", err)
	}

	return chapters, nil
}

// parseSections decodes a section object in document order.
func parseSections(raw json.RawMessage) ([]Section, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var sections []Section
	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return nil, err
		}

		var content json.RawMessage
		if err := dec.Decode(&content); err != nil {
			return nil, fmt.Errorf("section %q: %w", key, err)
		}

		paragraphs, err := flattenParagraphs(content)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", key, err)
		}

		sections = append(sections, Section{Key: key, Paragraphs: paragraphs})
	}

	return sections, nil
}

// flattenParagraphs decodes a paragraph list. Some editions nest
// subsection lists one level deeper; the nesting is flattened into a
// single paragraph sequence.
func flattenParagraphs(raw json.RawMessage) ([]string, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("paragraph list: %w", err)
	}

	var paragraphs []string
	for i, item := range items {
		switch firstByte(item) {
		case '"':
			var s string
			if err := json.Unmarshal(item, &s); err != nil {
				return nil, fmt.Errorf("paragraph %d: %w", i+1, err)
			}
			paragraphs = append(paragraphs, s)
		case '[':
			nested, err := flattenParagraphs(item)
			if err != nil {
				return nil, fmt.Errorf("paragraph group %d: %w", i+1, err)
			}
			paragraphs = append(paragraphs, nested...)
		default:
			return nil, fmt.Errorf("paragraph %d: must be a string or list", i+1)
		}
	}

	return paragraphs, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func stringToken(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return s, nil
}

func firstByte(raw json.RawMessage) byte {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}

func parseErr(dec *json.Decoder, err error) error {
	return fmt.Errorf("parse document at offset %d: %w", dec.InputOffset(), err)
}
