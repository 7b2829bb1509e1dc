package lsp_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/tmplsem/pkg/lsp"
	"github.com/walteh/tmplsem/pkg/position"
	"github.com/walteh/tmplsem/pkg/semtok"
	"github.com/walteh/tmplsem/pkg/tooltip"
	"go.lsp.dev/protocol"
)

var _ tooltip.CapabilityProvider = (*lsp.CapabilitySource)(nil)

func sr(tt semtok.TokenType, sl, sc, el, ec int) semtok.SemanticRange {
	return semtok.SemanticRange{Type: tt, Range: position.NewRange(sl, sc, el, ec)}
}

func TestLegend(t *testing.T) {
	legend := lsp.Legend()

	require.Len(t, legend.TokenTypes, len(semtok.AllTokenTypes()))
	for _, tt := range semtok.AllTokenTypes() {
		assert.Equal(t, protocol.SemanticTokenTypes(tt.String()), legend.TokenTypes[tt])
	}
	assert.Empty(t, legend.TokenModifiers)
	assert.NotNil(t, legend.TokenModifiers)
}

func TestEncodeSemanticTokens(t *testing.T) {
	tests := []struct {
		name   string
		ranges []semtok.SemanticRange
		want   []uint32
	}{
		{
			name:   "empty",
			ranges: nil,
			want:   []uint32{},
		},
		{
			name: "same_line_and_next_lines",
			ranges: []semtok.SemanticRange{
				sr(semtok.TokenMarkupTagDelimiter, 0, 0, 0, 1),
				sr(semtok.TokenComponentElement, 0, 1, 0, 8),
				sr(semtok.TokenMarkupElement, 2, 4, 2, 6),
				sr(semtok.TokenDirective, 2, 10, 2, 16),
			},
			want: []uint32{
				0, 0, 1, uint32(semtok.TokenMarkupTagDelimiter), 0,
				0, 1, 7, uint32(semtok.TokenComponentElement), 0,
				2, 4, 2, uint32(semtok.TokenMarkupElement), 0,
				0, 6, 6, uint32(semtok.TokenDirective), 0,
			},
		},
		{
			name: "out_of_order_input_is_sorted",
			ranges: []semtok.SemanticRange{
				sr(semtok.TokenComment, 1, 2, 1, 5),
				sr(semtok.TokenTransition, 0, 3, 0, 4),
			},
			want: []uint32{
				0, 3, 1, uint32(semtok.TokenTransition), 0,
				1, 2, 3, uint32(semtok.TokenComment), 0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lsp.EncodeSemanticTokens(tt.ranges)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Data)

			_, err := uuid.Parse(got.ResultID)
			assert.NoError(t, err, "result id should be a uuid")
		})
	}
}

func TestEncodeDoesNotReorderInput(t *testing.T) {
	ranges := []semtok.SemanticRange{
		sr(semtok.TokenComment, 1, 2, 1, 5),
		sr(semtok.TokenTransition, 0, 3, 0, 4),
	}
	lsp.EncodeSemanticTokens(ranges)
	assert.Equal(t, semtok.TokenComment, ranges[0].Type)
}

func TestResultIDsDiffer(t *testing.T) {
	a := lsp.EncodeSemanticTokens(nil)
	b := lsp.EncodeSemanticTokens(nil)
	assert.NotEqual(t, a.ResultID, b.ResultID)
}

func TestRangeConversion(t *testing.T) {
	r := position.NewRange(3, 4, 5, 6)
	pr := lsp.ToProtocolRange(r)

	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 3, Character: 4},
		End:   protocol.Position{Line: 5, Character: 6},
	}, pr)
	assert.Equal(t, r, lsp.FromProtocolRange(pr))
}

func TestCapabilitySourceDrivesTooltipKind(t *testing.T) {
	src := lsp.NewCapabilitySource(nil)
	f, err := tooltip.NewFactory(src)
	require.NoError(t, err)

	assert.Equal(t, protocol.PlainText, f.MarkupKind())

	src.Update(lsp.MarkupCapabilities(nil, []protocol.MarkupKind{protocol.Markdown}))
	assert.Equal(t, protocol.Markdown, f.MarkupKind())

	src.Update(lsp.MarkupCapabilities([]protocol.MarkupKind{protocol.PlainText}, []protocol.MarkupKind{protocol.Markdown}))
	assert.Equal(t, protocol.PlainText, f.MarkupKind())
}

func TestHoverAndCompletionDocumentation(t *testing.T) {
	src := lsp.NewCapabilitySource(lsp.MarkupCapabilities([]protocol.MarkupKind{protocol.Markdown}, nil))
	f, err := tooltip.NewFactory(src)
	require.NoError(t, err)

	content, ok := f.TryCreateElementTooltip(context.Background(), tooltip.AggregateElementDescription{
		Descriptions: []tooltip.ElementDescription{{TypeName: "Acme.Counter"}},
	})
	require.True(t, ok)

	hover := lsp.NewHover(content, position.NewRange(0, 1, 0, 8))
	assert.Equal(t, protocol.MarkupContent{Kind: protocol.Markdown, Value: "**Counter**"}, hover.Contents)
	require.NotNil(t, hover.Range)
	assert.Equal(t, uint32(8), hover.Range.End.Character)

	item := &protocol.CompletionItem{Label: "Counter"}
	lsp.SetCompletionDocumentation(item, content)
	assert.Equal(t, *content, item.Documentation)
}
