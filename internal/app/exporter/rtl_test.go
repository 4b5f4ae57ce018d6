package exporter

import "testing"

func TestMirrorBrackets(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "no brackets unchanged",
			in:   "שלום עולם",
			want: "שלום עולם",
		},
		{
			name: "empty string",
			in:   "",
			want: "",
		},
		{
			name: "parentheses mirrored",
			in:   "(דבר אחר)",
			want: ")דבר אחר(",
		},
		{
			name: "square brackets mirrored",
			in:   "[הערה]",
			want: "]הערה[",
		},
		{
			name: "braces and angles mirrored",
			in:   "{א} <ב>",
			want: "}א{ >ב<",
		},
		{
			name: "mixed nesting",
			in:   "א ([ב]) ג",
			want: "א )]ב[( ג",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MirrorBrackets(tt.in)
			if got != tt.want {
				t.Errorf("MirrorBrackets(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name         string
		scope        Scope
		prompt       string
		showOriginal bool
		want         string
	}{
		{
			name:         "chapter with original",
			scope:        Scope{Chapter: 3},
			prompt:       "literal",
			showOriginal: true,
			want:         "ch3_literal_with_original.pdf",
		},
		{
			name:         "chapter translation only",
			scope:        Scope{Chapter: 3},
			prompt:       "literal",
			showOriginal: false,
			want:         "ch3_literal_only.pdf",
		},
		{
			name:         "chapter and section",
			scope:        Scope{Chapter: 2, Section: 4},
			prompt:       "modern",
			showOriginal: true,
			want:         "ch2_sec4_modern_with_original.pdf",
		},
		{
			name:         "whole book",
			scope:        Scope{},
			prompt:       "literal",
			showOriginal: false,
			want:         "book_literal_only.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filename(tt.scope, tt.prompt, tt.showOriginal)
			if got != tt.want {
				t.Errorf("Filename = %q, want %q", got, tt.want)
			}
		})
	}
}
