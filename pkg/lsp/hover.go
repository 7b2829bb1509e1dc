package lsp

import (
	"github.com/walteh/tmplsem/pkg/position"
	"go.lsp.dev/protocol"
)

// NewHover wraps a tooltip for a textDocument/hover response over rng.
func NewHover(content *protocol.MarkupContent, rng position.Range) *protocol.Hover {
	r := ToProtocolRange(rng)
	return &protocol.Hover{
		Contents: *content,
		Range:    &r,
	}
}

// SetCompletionDocumentation attaches a tooltip to a completion item.
func SetCompletionDocumentation(item *protocol.CompletionItem, content *protocol.MarkupContent) {
	item.Documentation = *content
}
