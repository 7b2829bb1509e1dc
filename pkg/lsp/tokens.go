// Package lsp bridges the engine's ranges and tooltips to Language Server
// Protocol structures.
package lsp

import (
	"slices"

	"github.com/google/uuid"
	"github.com/walteh/tmplsem/pkg/position"
	"github.com/walteh/tmplsem/pkg/semtok"
	"go.lsp.dev/protocol"
)

// Legend lists token types in index order, so a type's numeric value is its
// position in TokenTypes.
func Legend() protocol.SemanticTokensLegend {
	types := semtok.AllTokenTypes()
	modifiers := semtok.AllTokenModifiers()

	legend := protocol.SemanticTokensLegend{
		TokenTypes:     make([]protocol.SemanticTokenTypes, 0, len(types)),
		TokenModifiers: make([]protocol.SemanticTokenModifiers, 0, len(modifiers)),
	}
	for _, t := range types {
		legend.TokenTypes = append(legend.TokenTypes, protocol.SemanticTokenTypes(t.String()))
	}
	for _, m := range modifiers {
		legend.TokenModifiers = append(legend.TokenModifiers, protocol.SemanticTokenModifiers(m))
	}
	return legend
}

// EncodeSemanticTokens converts ranges to the relative five-integer encoding
// (deltaLine, deltaStart, length, type, modifiers). Ranges must be single
// line, which the classifier guarantees.
func EncodeSemanticTokens(ranges []semtok.SemanticRange) *protocol.SemanticTokens {
	tokens := &protocol.SemanticTokens{
		ResultID: uuid.NewString(),
		Data:     make([]uint32, 0, len(ranges)*5),
	}
	if len(ranges) == 0 {
		return tokens
	}

	sorted := slices.Clone(ranges)
	slices.SortStableFunc(sorted, func(a, b semtok.SemanticRange) int {
		return a.Range.Start.Compare(b.Range.Start)
	})

	var prevLine, prevStart uint32
	for _, r := range sorted {
		line := uint32(r.Range.Start.Line)
		start := uint32(r.Range.Start.Character)

		deltaLine := line - prevLine
		deltaStart := start
		if deltaLine == 0 {
			deltaStart = start - prevStart
		}

		tokens.Data = append(tokens.Data,
			deltaLine,
			deltaStart,
			uint32(r.Range.End.Character-r.Range.Start.Character),
			uint32(r.Type),
			uint32(r.Modifier),
		)

		prevLine = line
		prevStart = start
	}

	return tokens
}

// ToProtocolRange converts a document range to its wire form.
func ToProtocolRange(r position.Range) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: uint32(r.Start.Line), Character: uint32(r.Start.Character)},
		End:   protocol.Position{Line: uint32(r.End.Line), Character: uint32(r.End.Character)},
	}
}

// FromProtocolRange converts a viewport from a range request.
func FromProtocolRange(r protocol.Range) position.Range {
	return position.NewRange(int(r.Start.Line), int(r.Start.Character), int(r.End.Line), int(r.End.Character))
}
