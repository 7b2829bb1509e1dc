package position

import (
	"fmt"
	"sort"
	"unicode/utf16"
	"unicode/utf8"
)

// Place is a 0-based line/character location. Character is measured in
// UTF-16 code units, which is what LSP clients expect.
type Place struct {
	Line      int
	Character int
}

// Compare orders places in document order.
func (p Place) Compare(other Place) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Character < other.Character:
		return -1
	case p.Character > other.Character:
		return 1
	default:
		return 0
	}
}

func (p Place) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Character)
}

type Range struct {
	Start Place
	End   Place
}

func NewRange(startLine, startChar, endLine, endChar int) Range {
	return Range{
		Start: Place{Line: startLine, Character: startChar},
		End:   Place{Line: endLine, Character: endChar},
	}
}

func (r Range) IsSingleLine() bool {
	return r.Start.Line == r.End.Line
}

func (r Range) IsEmpty() bool {
	return r.Start.Compare(r.End) == 0
}

// OverlapsWith reports whether the two ranges share at least one character.
// Ranges that only touch at an edge do not overlap.
func (r Range) OverlapsWith(other Range) bool {
	start := r.Start
	if start.Compare(other.Start) < 0 {
		start = other.Start
	}

	end := r.End
	if end.Compare(other.End) > 0 {
		end = other.End
	}

	return start.Compare(end) < 0
}

// Contains reports whether p falls inside r, end exclusive.
func (r Range) Contains(p Place) bool {
	return r.Start.Compare(p) <= 0 && p.Compare(r.End) < 0
}

func (r Range) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

// Span is a byte offset and width into a document's source text.
type Span struct {
	Offset int
	Width  int
}

func NewSpan(offset, width int) Span {
	return Span{Offset: offset, Width: width}
}

func (s Span) End() int {
	return s.Offset + s.Width
}

func (s Span) IsEmpty() bool {
	return s.Width == 0
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Offset, s.End())
}

// Document is immutable source text with a precomputed line index, used to
// turn byte spans into LSP ranges.
type Document struct {
	text       string
	lineStarts []int
}

func NewDocument(text string) *Document {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			starts = append(starts, i+1)
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			starts = append(starts, i+1)
		}
	}
	return &Document{text: text, lineStarts: starts}
}

func (d *Document) Content() string {
	return d.text
}

func (d *Document) Len() int {
	return len(d.text)
}

func (d *Document) LineCount() int {
	return len(d.lineStarts)
}

// Text returns the source covered by span, clamped to the document. A span
// with a negative width covers nothing.
func (d *Document) Text(span Span) string {
	start, end := d.clamp(span.Offset), d.clamp(span.End())
	if end < start {
		return ""
	}
	return d.text[start:end]
}

// PlaceOf converts a byte offset into a line and UTF-16 character.
func (d *Document) PlaceOf(offset int) Place {
	offset = d.clamp(offset)

	line := sort.Search(len(d.lineStarts), func(i int) bool {
		return d.lineStarts[i] > offset
	}) - 1

	return Place{
		Line:      line,
		Character: utf16Len(d.text[d.lineStarts[line]:offset]),
	}
}

func (d *Document) RangeOf(span Span) Range {
	return Range{
		Start: d.PlaceOf(span.Offset),
		End:   d.PlaceOf(span.End()),
	}
}

// OffsetOf converts a place back into a byte offset. Characters past the end
// of a line are clamped to the line end.
func (d *Document) OffsetOf(p Place) int {
	if p.Line < 0 {
		return 0
	}
	if p.Line >= len(d.lineStarts) {
		return len(d.text)
	}

	offset := d.lineStarts[p.Line]
	units := 0
	for offset < len(d.text) && units < p.Character {
		r, size := utf8.DecodeRuneInString(d.text[offset:])
		if r == '\n' || r == '\r' {
			break
		}
		units += utf16.RuneLen(r)
		offset += size
	}
	return offset
}

func (d *Document) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(d.text) {
		return len(d.text)
	}
	return offset
}

func utf16Len(s string) int {
	n := 0
	// invalid bytes range as U+FFFD, which is a single unit
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
