package position_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/walteh/tmplsem/pkg/position"
)

func TestPlaceOf(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		offset int
		want   position.Place
	}{
		{
			name:   "empty text",
			text:   "",
			offset: 0,
			want:   position.Place{Line: 0, Character: 0},
		},
		{
			name:   "single line, middle position",
			text:   "Hello, World!",
			offset: 7,
			want:   position.Place{Line: 0, Character: 7},
		},
		{
			name:   "multiple lines, second line",
			text:   "Hello\nWorld\nTest zzz",
			offset: 8,
			want:   position.Place{Line: 1, Character: 2},
		},
		{
			name:   "offset on the newline itself",
			text:   "Hello\nWorld",
			offset: 5,
			want:   position.Place{Line: 0, Character: 5},
		},
		{
			name:   "crlf counts as one break",
			text:   "ab\r\ncd",
			offset: 5,
			want:   position.Place{Line: 1, Character: 1},
		},
		{
			name:   "lone carriage return breaks a line",
			text:   "ab\rcd",
			offset: 4,
			want:   position.Place{Line: 1, Character: 1},
		},
		{
			name:   "astral runes take two utf16 units",
			text:   "😀x",
			offset: 4,
			want:   position.Place{Line: 0, Character: 2},
		},
		{
			name:   "two byte runes take one utf16 unit",
			text:   "éé<p>",
			offset: 4,
			want:   position.Place{Line: 0, Character: 2},
		},
		{
			name:   "offset past the end is clamped",
			text:   "abc",
			offset: 50,
			want:   position.Place{Line: 0, Character: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := position.NewDocument(tt.text)
			assert.Equal(t, tt.want, doc.PlaceOf(tt.offset))
		})
	}
}

func TestOffsetOfRoundTrip(t *testing.T) {
	doc := position.NewDocument("<p>\r\n  😀 text\nlast")
	for _, offset := range []int{0, 3, 5, 7, 11, 16, 17} {
		place := doc.PlaceOf(offset)
		assert.Equal(t, offset, doc.OffsetOf(place), "offset %d (%s)", offset, place)
	}
}

func TestRangeOf(t *testing.T) {
	doc := position.NewDocument("<div>\n  text\n</div>")

	got := doc.RangeOf(position.NewSpan(8, 4))
	assert.Equal(t, position.NewRange(1, 2, 1, 6), got)
	assert.True(t, got.IsSingleLine())
	assert.Equal(t, "text", doc.Text(position.NewSpan(8, 4)))

	multi := doc.RangeOf(position.NewSpan(5, 8))
	assert.False(t, multi.IsSingleLine())
	assert.Equal(t, 3, doc.LineCount())
}

func TestOverlapsWith(t *testing.T) {
	tests := []struct {
		name string
		a    position.Range
		b    position.Range
		want bool
	}{
		{
			name: "identical",
			a:    position.NewRange(0, 0, 0, 5),
			b:    position.NewRange(0, 0, 0, 5),
			want: true,
		},
		{
			name: "partial overlap",
			a:    position.NewRange(0, 0, 0, 5),
			b:    position.NewRange(0, 3, 2, 0),
			want: true,
		},
		{
			name: "contained",
			a:    position.NewRange(1, 2, 1, 4),
			b:    position.NewRange(0, 0, 5, 0),
			want: true,
		},
		{
			name: "touching edges",
			a:    position.NewRange(0, 0, 0, 5),
			b:    position.NewRange(0, 5, 0, 9),
			want: false,
		},
		{
			name: "disjoint lines",
			a:    position.NewRange(0, 0, 0, 5),
			b:    position.NewRange(3, 0, 3, 1),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.OverlapsWith(tt.b))
			assert.Equal(t, tt.want, tt.b.OverlapsWith(tt.a))
		})
	}
}

func TestTextClampsSpans(t *testing.T) {
	doc := position.NewDocument("abc x")

	tests := []struct {
		name string
		span position.Span
		want string
	}{
		{name: "inside", span: position.NewSpan(4, 1), want: "x"},
		{name: "past the end", span: position.NewSpan(3, 10), want: " x"},
		{name: "negative width", span: position.NewSpan(4, -4), want: ""},
		{name: "empty", span: position.NewSpan(2, 0), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, doc.Text(tt.span))
		})
	}
}
