package syntax

import (
	"strings"

	"github.com/walteh/tmplsem/pkg/position"
)

// Builder lays out tokens back to back, assigning offsets in the order the
// tokens are created. Building nodes in source order, which Go's left to right
// evaluation of composite literals gives for free, yields a tree whose spans
// match the accumulated source text.
type Builder struct {
	sb     strings.Builder
	offset int
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Token appends text to the source and returns the leaf covering it.
func (b *Builder) Token(text string) *Token {
	t := &Token{Offset: b.offset, Text: text}
	b.sb.WriteString(text)
	b.offset += len(text)
	return t
}

// Empty returns a zero width token at the current offset, as a parser emits
// for a delimiter that has not been typed yet.
func (b *Builder) Empty() *Token {
	return b.Token("")
}

func (b *Builder) tokens(texts []string) []*Token {
	toks := make([]*Token, 0, len(texts))
	for _, text := range texts {
		toks = append(toks, b.Token(text))
	}
	return toks
}

func (b *Builder) Literal(texts ...string) *MarkupTextLiteral {
	return &MarkupTextLiteral{Tokens: b.tokens(texts)}
}

func (b *Builder) Code(texts ...string) *CodeStatementLiteral {
	return &CodeStatementLiteral{Tokens: b.tokens(texts)}
}

func (b *Builder) Expression(texts ...string) *CodeExpressionLiteral {
	return &CodeExpressionLiteral{Tokens: b.tokens(texts)}
}

func (b *Builder) Meta(texts ...string) *MetaCode {
	return &MetaCode{Tokens: b.tokens(texts)}
}

func (b *Builder) Offset() int {
	return b.offset
}

func (b *Builder) Source() string {
	return b.sb.String()
}

// Tree wraps root with the source accumulated so far.
func (b *Builder) Tree(root Node) *Tree {
	return &Tree{
		Source: position.NewDocument(b.sb.String()),
		Root:   root,
	}
}
