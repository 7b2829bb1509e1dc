package tooltip_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/tmplsem/pkg/tooltip"
	"go.lsp.dev/protocol"
)

func capsWith(completion, hover []protocol.MarkupKind) *protocol.ClientCapabilities {
	td := &protocol.TextDocumentClientCapabilities{}
	if completion != nil {
		td.Completion = &protocol.CompletionTextDocumentClientCapabilities{
			CompletionItem: &protocol.CompletionTextDocumentClientCapabilitiesItem{DocumentationFormat: completion},
		}
	}
	if hover != nil {
		td.Hover = &protocol.HoverTextDocumentClientCapabilities{ContentFormat: hover}
	}
	return &protocol.ClientCapabilities{TextDocument: td}
}

func markdownFactory(t *testing.T) *tooltip.Factory {
	t.Helper()
	f, err := tooltip.NewFactory(newMockProvider(capsWith([]protocol.MarkupKind{protocol.Markdown}, nil)))
	require.NoError(t, err)
	return f
}

func plainFactory(t *testing.T) *tooltip.Factory {
	t.Helper()
	f, err := tooltip.NewFactory(newMockProvider(capsWith([]protocol.MarkupKind{protocol.PlainText}, nil)))
	require.NoError(t, err)
	return f
}

func TestNewFactoryRequiresProvider(t *testing.T) {
	_, err := tooltip.NewFactory(nil)
	assert.Error(t, err)
}

func TestMarkupKind(t *testing.T) {
	md := []protocol.MarkupKind{protocol.PlainText, protocol.Markdown}
	plain := []protocol.MarkupKind{protocol.PlainText}

	tests := []struct {
		name string
		caps *protocol.ClientCapabilities
		want protocol.MarkupKind
	}{
		{"completion_markdown", capsWith(md, nil), protocol.Markdown},
		{"hover_markdown", capsWith(nil, md), protocol.Markdown},
		{"completion_wins_over_hover", capsWith(plain, md), protocol.PlainText},
		{"empty_completion_list_still_wins", capsWith([]protocol.MarkupKind{}, md), protocol.PlainText},
		{"nothing_declared", capsWith(nil, nil), protocol.PlainText},
		{"no_text_document", &protocol.ClientCapabilities{}, protocol.PlainText},
		{"no_capabilities", nil, protocol.PlainText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := newMockProvider(tt.caps)
			f, err := tooltip.NewFactory(provider)
			require.NoError(t, err)

			assert.Equal(t, tt.want, f.MarkupKind())
			provider.AssertCalled(t, "ClientCapabilities")
		})
	}
}

func TestElementTooltip(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		factory func(t *testing.T) *tooltip.Factory
		desc    tooltip.AggregateElementDescription
		want    string
	}{
		{
			name:    "single_with_summary",
			factory: markdownFactory,
			desc: tooltip.AggregateElementDescription{Descriptions: []tooltip.ElementDescription{{
				TypeName:      "Acme.Widgets.Counter",
				Documentation: "<summary>\n    Counts clicks on a <see cref=\"T:Acme.Widgets.Button\" />.\n    </summary>",
			}}},
			want: "**Counter**\n\nCounts clicks on a `Button`.",
		},
		{
			name:    "two_entries",
			factory: markdownFactory,
			desc: tooltip.AggregateElementDescription{Descriptions: []tooltip.ElementDescription{
				{TypeName: "Acme.Counter", Documentation: "<summary>First.</summary>"},
				{TypeName: "Other.Counter", Documentation: "<summary>Second.</summary>"},
			}},
			want: "**Counter**\n\nFirst.\n---\n**Counter**\n\nSecond.",
		},
		{
			name:    "missing_summary_keeps_header_only",
			factory: markdownFactory,
			desc: tooltip.AggregateElementDescription{Descriptions: []tooltip.ElementDescription{
				{TypeName: "Acme.Counter", Documentation: "<remarks>hidden</remarks>"},
				{TypeName: "Acme.Grid"},
			}},
			want: "**Counter**\n---\n**Grid**",
		},
		{
			name:    "plain_text_has_no_bold",
			factory: plainFactory,
			desc: tooltip.AggregateElementDescription{Descriptions: []tooltip.ElementDescription{
				{TypeName: "Acme.Counter", Documentation: "Just prose."},
			}},
			want: "Counter\n\nJust prose.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.factory(t).TryCreateElementTooltip(ctx, tt.desc)
			require.True(t, ok)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Value)
		})
	}
}

func TestAttributeTooltip(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		factory  func(t *testing.T) *tooltip.Factory
		desc     tooltip.AggregateAttributeDescription
		want     string
		wantKind protocol.MarkupKind
	}{
		{
			name:    "simple_return_type",
			factory: markdownFactory,
			desc: tooltip.AggregateAttributeDescription{Descriptions: []tooltip.AttributeDescription{{
				ReturnTypeName: "System.Int32",
				TypeName:       "Acme.Widgets.Counter",
				PropertyName:   "Amount",
				Documentation:  "<summary>How much to add.</summary>",
			}}},
			want:     "**int** Counter.**Amount**\n\nHow much to add.",
			wantKind: protocol.Markdown,
		},
		{
			name:    "qualified_return_type_is_reduced",
			factory: plainFactory,
			desc: tooltip.AggregateAttributeDescription{Descriptions: []tooltip.AttributeDescription{{
				ReturnTypeName: "Acme.Money.Currency",
				TypeName:       "Acme.Widgets.Counter",
				PropertyName:   "Unit",
			}}},
			want:     "Currency Counter.Unit",
			wantKind: protocol.PlainText,
		},
		{
			name:    "entries_separated",
			factory: markdownFactory,
			desc: tooltip.AggregateAttributeDescription{Descriptions: []tooltip.AttributeDescription{
				{ReturnTypeName: "System.String", TypeName: "A.Input", PropertyName: "Value"},
				{ReturnTypeName: "System.Boolean", TypeName: "A.Input", PropertyName: "Value"},
			}},
			want:     "**string** Input.**Value**\n---\n**bool** Input.**Value**",
			wantKind: protocol.Markdown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.factory(t).TryCreateAttributeTooltip(ctx, tt.desc)
			require.True(t, ok)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Value)
			assert.Equal(t, tt.wantKind, got.Kind)
		})
	}
}

func TestSeparatorCount(t *testing.T) {
	descs := make([]tooltip.ElementDescription, 3)
	for i := range descs {
		descs[i] = tooltip.ElementDescription{TypeName: "Ns.Item", Documentation: "<summary>Body.</summary>"}
	}

	got, ok := markdownFactory(t).TryCreateElementTooltip(context.Background(), tooltip.AggregateElementDescription{Descriptions: descs})
	require.True(t, ok)

	assert.Equal(t, 2, strings.Count(got.Value, "\n---\n"))
	assert.False(t, strings.HasPrefix(got.Value, "\n---\n"))
	assert.False(t, strings.HasSuffix(got.Value, "\n---\n"))
}

func TestEmptyDescriptionsYieldNothing(t *testing.T) {
	ctx := context.Background()
	f := markdownFactory(t)

	el, ok := f.TryCreateElementTooltip(ctx, tooltip.AggregateElementDescription{})
	assert.False(t, ok)
	assert.Nil(t, el)

	attr, ok := f.TryCreateAttributeTooltip(ctx, tooltip.AggregateAttributeDescription{Descriptions: []tooltip.AttributeDescription{}})
	assert.False(t, ok)
	assert.Nil(t, attr)
}
