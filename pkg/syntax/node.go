// Package syntax defines the bound syntax tree that the semantic engine walks.
//
// Trees are produced by an external parser/binder; this package only models
// their shape. The set of node shapes is closed: Node has an unexported
// method, so every implementation lives here and a type switch over the
// concrete types sees all of them.
//
// Optional slots are nil pointers when absent. Children never includes an
// absent slot.
package syntax

import (
	"strings"

	"github.com/walteh/tmplsem/pkg/directive"
	"github.com/walteh/tmplsem/pkg/position"
)

type Node interface {
	Kind() Kind
	Span() position.Span
	Children() []Node
	ContainsOnlyWhitespace() bool

	present() bool
}

// Present reports whether n holds a node. A typed nil pointer stored in a
// Node is treated as absent.
func Present(n Node) bool {
	return n != nil && n.present()
}

type Tree struct {
	Source *position.Document
	Root   Node
}

// Range converts a node's span into a line/character range of the tree source.
func (t *Tree) Range(n Node) position.Range {
	return t.Source.RangeOf(n.Span())
}

// Text returns the source text covered by n.
func (t *Tree) Text(n Node) string {
	return t.Source.Text(n.Span())
}

// Token is a leaf holding source text.
type Token struct {
	Offset int
	Text   string
}

func (n *Token) Kind() Kind          { return KindToken }
func (n *Token) Children() []Node    { return nil }
func (n *Token) present() bool       { return n != nil }
func (n *Token) Span() position.Span { return position.NewSpan(n.Offset, len(n.Text)) }

func (n *Token) ContainsOnlyWhitespace() bool {
	return strings.TrimSpace(n.Text) == ""
}

// Document is the root of a tree.
type Document struct {
	Nodes []Node
}

func (n *Document) Kind() Kind                   { return KindDocument }
func (n *Document) Children() []Node             { return collect(n.Nodes...) }
func (n *Document) present() bool                { return n != nil }
func (n *Document) Span() position.Span          { return spanOf(n) }
func (n *Document) ContainsOnlyWhitespace() bool { return whitespaceOnly(n) }

// MarkupBlock, CodeBlock and GenericBlock are structural wrappers with no
// meaning of their own.
type MarkupBlock struct {
	Nodes []Node
}

func (n *MarkupBlock) Kind() Kind                   { return KindMarkupBlock }
func (n *MarkupBlock) Children() []Node             { return collect(n.Nodes...) }
func (n *MarkupBlock) present() bool                { return n != nil }
func (n *MarkupBlock) Span() position.Span          { return spanOf(n) }
func (n *MarkupBlock) ContainsOnlyWhitespace() bool { return whitespaceOnly(n) }

type CodeBlock struct {
	Nodes []Node
}

func (n *CodeBlock) Kind() Kind                   { return KindCodeBlock }
func (n *CodeBlock) Children() []Node             { return collect(n.Nodes...) }
func (n *CodeBlock) present() bool                { return n != nil }
func (n *CodeBlock) Span() position.Span          { return spanOf(n) }
func (n *CodeBlock) ContainsOnlyWhitespace() bool { return whitespaceOnly(n) }

type GenericBlock struct {
	Nodes []Node
}

func (n *GenericBlock) Kind() Kind                   { return KindGenericBlock }
func (n *GenericBlock) Children() []Node             { return collect(n.Nodes...) }
func (n *GenericBlock) present() bool                { return n != nil }
func (n *GenericBlock) Span() position.Span          { return spanOf(n) }
func (n *GenericBlock) ContainsOnlyWhitespace() bool { return whitespaceOnly(n) }

// MarkupTextLiteral is a run of markup tokens, e.g. "\r\n", "text", "\r\n".
type MarkupTextLiteral struct {
	Tokens []*Token
}

func (n *MarkupTextLiteral) Kind() Kind                   { return KindMarkupTextLiteral }
func (n *MarkupTextLiteral) Children() []Node             { return tokens(n.Tokens) }
func (n *MarkupTextLiteral) present() bool                { return n != nil }
func (n *MarkupTextLiteral) Span() position.Span          { return spanOf(n) }
func (n *MarkupTextLiteral) ContainsOnlyWhitespace() bool { return whitespaceOnly(n) }

type MarkupLiteralAttributeValue struct {
	Prefix *MarkupTextLiteral
	Value  *MarkupTextLiteral
}

func (n *MarkupLiteralAttributeValue) Kind() Kind    { return KindMarkupLiteralAttributeValue }
func (n *MarkupLiteralAttributeValue) present() bool { return n != nil }
func (n *MarkupLiteralAttributeValue) Children() []Node {
	return collect(opt(n.Prefix), opt(n.Value))
}
func (n *MarkupLiteralAttributeValue) Span() position.Span          { return spanOf(n) }
func (n *MarkupLiteralAttributeValue) ContainsOnlyWhitespace() bool { return whitespaceOnly(n) }

// MarkupAttributeBlock is a plain `name="value"` attribute.
type MarkupAttributeBlock struct {
	NamePrefix  *MarkupTextLiteral
	Name        *MarkupTextLiteral
	NameSuffix  *MarkupTextLiteral
	EqualsToken *Token
	ValuePrefix *MarkupTextLiteral
	Value       Node
	ValueSuffix *MarkupTextLiteral
}

func (n *MarkupAttributeBlock) Kind() Kind    { return KindMarkupAttributeBlock }
func (n *MarkupAttributeBlock) present() bool { return n != nil }
func (n *MarkupAttributeBlock) Children() []Node {
	return collect(opt(n.NamePrefix), opt(n.Name), opt(n.NameSuffix), opt(n.EqualsToken),
		opt(n.ValuePrefix), n.Value, opt(n.ValueSuffix))
}
func (n *MarkupAttributeBlock) Span() position.Span          { return spanOf(n) }
func (n *MarkupAttributeBlock) ContainsOnlyWhitespace() bool { return whitespaceOnly(n) }

// MarkupMinimizedAttributeBlock is a value-less attribute such as `disabled`.
type MarkupMinimizedAttributeBlock struct {
	NamePrefix *MarkupTextLiteral
	Name       *MarkupTextLiteral
}

func (n *MarkupMinimizedAttributeBlock) Kind() Kind    { return KindMarkupMinimizedAttributeBlock }
func (n *MarkupMinimizedAttributeBlock) present() bool { return n != nil }
func (n *MarkupMinimizedAttributeBlock) Children() []Node {
	return collect(opt(n.NamePrefix), opt(n.Name))
}
func (n *MarkupMinimizedAttributeBlock) Span() position.Span          { return spanOf(n) }
func (n *MarkupMinimizedAttributeBlock) ContainsOnlyWhitespace() bool { return whitespaceOnly(n) }

type MarkupStartTag struct {
	OpenAngle    *Token
	Bang         *Token
	Name         *Token
	Attributes   []Node
	ForwardSlash *Token
	CloseAngle   *Token
}

func (n *MarkupStartTag) Kind() Kind    { return KindMarkupStartTag }
func (n *MarkupStartTag) present() bool { return n != nil }
func (n *MarkupStartTag) Children() []Node {
	return startTagChildren(n.OpenAngle, n.Bang, n.Name, n.Attributes, n.ForwardSlash, n.CloseAngle)
}
func (n *MarkupStartTag) Span() position.Span          { return spanOf(n) }
func (n *MarkupStartTag) ContainsOnlyWhitespace() bool { return whitespaceOnly(n) }

type MarkupEndTag struct {
	OpenAngle    *Token
	ForwardSlash *Token
	Bang         *Token
	Name         *Token
	CloseAngle   *Token
}

func (n *MarkupEndTag) Kind() Kind    { return KindMarkupEndTag }
func (n *MarkupEndTag) present() bool { return n != nil }
func (n *MarkupEndTag) Children() []Node {
	return collect(opt(n.OpenAngle), opt(n.ForwardSlash), opt(n.Bang), opt(n.Name), opt(n.CloseAngle))
}
func (n *MarkupEndTag) Span() position.Span          { return spanOf(n) }
func (n *MarkupEndTag) ContainsOnlyWhitespace() bool { return whitespaceOnly(n) }

type MarkupElement struct {
	StartTag *MarkupStartTag
	Body     []Node
	EndTag   *MarkupEndTag
}

func (n *MarkupElement) Kind() Kind    { return KindMarkupElement }
func (n *MarkupElement) present() bool { return n != nil }
func (n *MarkupElement) Children() []Node {
	return elementChildren(opt(n.StartTag), n.Body, opt(n.EndTag))
}
func (n *MarkupElement) Span() position.Span          { return spanOf(n) }
func (n *MarkupElement) ContainsOnlyWhitespace() bool { return whitespaceOnly(n) }

// MarkupCommentBlock is `<!-- ... -->`. By grammar construction the first and
// last nodes are the delimiters.
type MarkupCommentBlock struct {
	Nodes []Node
}

func (n *MarkupCommentBlock) Kind() Kind                   { return KindMarkupCommentBlock }
func (n *MarkupCommentBlock) Children() []Node             { return collect(n.Nodes...) }
func (n *MarkupCommentBlock) present() bool                { return n != nil }
func (n *MarkupCommentBlock) Span() position.Span          { return spanOf(n) }
func (n *MarkupCommentBlock) ContainsOnlyWhitespace() bool { return whitespaceOnly(n) }

// TagHelperBinding is the binder's verdict for an element it matched against
// component metadata.
type TagHelperBinding struct {
	// IsAttributeMatch is set when only an attribute matched, e.g. a native
	// <input> carrying a bound event attribute.
	IsAttributeMatch bool
	Descriptors      []string
}

// AttributeInfo records whether an attribute bound to a component property.
type AttributeInfo struct {
	Name  string
	Bound bool
}

type TagHelperElement struct {
	StartTag *TagHelperStartTag
	Body     []Node
	EndTag   *TagHelperEndTag
	Binding  TagHelperBinding
}

func (n *TagHelperElement) Kind() Kind    { return KindTagHelperElement }
func (n *TagHelperElement) present() bool { return n != nil }
func (n *TagHelperElement) Children() []Node {
	return elementChildren(opt(n.StartTag), n.Body, opt(n.EndTag))
}
func (n *TagHelperElement) Span() position.Span          { return spanOf(n) }
func (n *TagHelperElement) ContainsOnlyWhitespace() bool { return whitespaceOnly(n) }

type TagHelperStartTag struct {
	OpenAngle    *Token
	Bang         *Token
	Name         *Token
	Attributes   []Node
	ForwardSlash *Token
	CloseAngle   *Token
}

func (n *TagHelperStartTag) Kind() Kind    { return KindTagHelperStartTag }
func (n *TagHelperStartTag) present() bool { return n != nil }
func (n *TagHelperStartTag) Children() []Node {
	return startTagChildren(n.OpenAngle, n.Bang, n.Name, n.Attributes, n.ForwardSlash, n.CloseAngle)
}
func (n *TagHelperStartTag) Span() position.Span          { return spanOf(n) }
func (n *TagHelperStartTag) ContainsOnlyWhitespace() bool { return whitespaceOnly(n) }

type TagHelperEndTag struct {
	OpenAngle    *Token
	ForwardSlash *Token
	Bang         *Token
	Name         *Token
	CloseAngle   *Token
}

func (n *TagHelperEndTag) Kind() Kind    { return KindTagHelperEndTag }
func (n *TagHelperEndTag) present() bool { return n != nil }
func (n *TagHelperEndTag) Children() []Node {
	return collect(opt(n.OpenAngle), opt(n.ForwardSlash), opt(n.Bang), opt(n.Name), opt(n.CloseAngle))
}
func (n *TagHelperEndTag) Span() position.Span          { return spanOf(n) }
func (n *TagHelperEndTag) ContainsOnlyWhitespace() bool { return whitespaceOnly(n) }

type TagHelperAttribute struct {
	NamePrefix  *MarkupTextLiteral
	Name        *MarkupTextLiteral
	NameSuffix  *MarkupTextLiteral
	EqualsToken *Token
	ValuePrefix *MarkupTextLiteral
	Value       *TagHelperAttributeValue
	ValueSuffix *MarkupTextLiteral
	Info        AttributeInfo
}

func (n *TagHelperAttribute) Kind() Kind    { return KindTagHelperAttribute }
func (n *TagHelperAttribute) present() bool { return n != nil }
func (n *TagHelperAttribute) Children() []Node {
	return collect(opt(n.NamePrefix), opt(n.Name), opt(n.NameSuffix), opt(n.EqualsToken),
		opt(n.ValuePrefix), opt(n.Value), opt(n.ValueSuffix))
}
func (n *TagHelperAttribute) Span() position.Span          { return spanOf(n) }
func (n *TagHelperAttribute) ContainsOnlyWhitespace() bool { return whitespaceOnly(n) }

type MinimizedTagHelperAttribute struct {
	NamePrefix *MarkupTextLiteral
	Name       *MarkupTextLiteral
	Info       AttributeInfo
}

func (n *MinimizedTagHelperAttribute) Kind() Kind    { return KindMinimizedTagHelperAttribute }
func (n *MinimizedTagHelperAttribute) present() bool { return n != nil }
func (n *MinimizedTagHelperAttribute) Children() []Node {
	return collect(opt(n.NamePrefix), opt(n.Name))
}
func (n *MinimizedTagHelperAttribute) Span() position.Span          { return spanOf(n) }
func (n *MinimizedTagHelperAttribute) ContainsOnlyWhitespace() bool { return whitespaceOnly(n) }

type TagHelperAttributeValue struct {
	Nodes []Node
}

func (n *TagHelperAttributeValue) Kind() Kind                   { return KindTagHelperAttributeValue }
func (n *TagHelperAttributeValue) Children() []Node             { return collect(n.Nodes...) }
func (n *TagHelperAttributeValue) present() bool                { return n != nil }
func (n *TagHelperAttributeValue) Span() position.Span          { return spanOf(n) }
func (n *TagHelperAttributeValue) ContainsOnlyWhitespace() bool { return whitespaceOnly(n) }

// TagHelperDirectiveAttribute is a directive-style attribute such as
// `@bind:event="oninput"`.
type TagHelperDirectiveAttribute struct {
	Transition    *Token
	NamePrefix    *MarkupTextLiteral
	Name          *MarkupTextLiteral
	NameSuffix    *MarkupTextLiteral
	Colon         *Token
	ParameterName *MarkupTextLiteral
	EqualsToken   *Token
	ValuePrefix   *MarkupTextLiteral
	Value         *TagHelperAttributeValue
	ValueSuffix   *MarkupTextLiteral
	Info          AttributeInfo
}

func (n *TagHelperDirectiveAttribute) Kind() Kind    { return KindTagHelperDirectiveAttribute }
func (n *TagHelperDirectiveAttribute) present() bool { return n != nil }

// Children follows source order: the name prefix (leading whitespace)
// precedes the transition.
func (n *TagHelperDirectiveAttribute) Children() []Node {
	return collect(opt(n.NamePrefix), opt(n.Transition), opt(n.Name), opt(n.Colon), opt(n.ParameterName),
		opt(n.NameSuffix), opt(n.EqualsToken), opt(n.ValuePrefix), opt(n.Value), opt(n.ValueSuffix))
}
func (n *TagHelperDirectiveAttribute) Span() position.Span          { return spanOf(n) }
func (n *TagHelperDirectiveAttribute) ContainsOnlyWhitespace() bool { return whitespaceOnly(n) }

type MinimizedTagHelperDirectiveAttribute struct {
	Transition    *Token
	NamePrefix    *MarkupTextLiteral
	Name          *MarkupTextLiteral
	Colon         *Token
	ParameterName *MarkupTextLiteral
	Info          AttributeInfo
}

func (n *MinimizedTagHelperDirectiveAttribute) Kind() Kind {
	return KindMinimizedTagHelperDirectiveAttribute
}
func (n *MinimizedTagHelperDirectiveAttribute) present() bool { return n != nil }
func (n *MinimizedTagHelperDirectiveAttribute) Children() []Node {
	return collect(opt(n.NamePrefix), opt(n.Transition), opt(n.Name), opt(n.Colon), opt(n.ParameterName))
}
func (n *MinimizedTagHelperDirectiveAttribute) Span() position.Span { return spanOf(n) }
func (n *MinimizedTagHelperDirectiveAttribute) ContainsOnlyWhitespace() bool {
	return whitespaceOnly(n)
}

// CodeStatementLiteral is raw embedded code.
type CodeStatementLiteral struct {
	Tokens []*Token
}

func (n *CodeStatementLiteral) Kind() Kind                   { return KindCodeStatementLiteral }
func (n *CodeStatementLiteral) Children() []Node             { return tokens(n.Tokens) }
func (n *CodeStatementLiteral) present() bool                { return n != nil }
func (n *CodeStatementLiteral) Span() position.Span          { return spanOf(n) }
func (n *CodeStatementLiteral) ContainsOnlyWhitespace() bool { return whitespaceOnly(n) }

type CodeExpressionLiteral struct {
	Tokens []*Token
}

func (n *CodeExpressionLiteral) Kind() Kind                   { return KindCodeExpressionLiteral }
func (n *CodeExpressionLiteral) Children() []Node             { return tokens(n.Tokens) }
func (n *CodeExpressionLiteral) present() bool                { return n != nil }
func (n *CodeExpressionLiteral) Span() position.Span          { return spanOf(n) }
func (n *CodeExpressionLiteral) ContainsOnlyWhitespace() bool { return whitespaceOnly(n) }

// CodeStatement is `@{ ... }`.
type CodeStatement struct {
	Transition *Token
	Body       *CodeStatementBody
}

func (n *CodeStatement) Kind() Kind                   { return KindCodeStatement }
func (n *CodeStatement) Children() []Node             { return collect(opt(n.Transition), opt(n.Body)) }
func (n *CodeStatement) present() bool                { return n != nil }
func (n *CodeStatement) Span() position.Span          { return spanOf(n) }
func (n *CodeStatement) ContainsOnlyWhitespace() bool { return whitespaceOnly(n) }

type CodeStatementBody struct {
	OpenBrace  *MetaCode
	Code       *CodeBlock
	CloseBrace *MetaCode
}

func (n *CodeStatementBody) Kind() Kind    { return KindCodeStatementBody }
func (n *CodeStatementBody) present() bool { return n != nil }
func (n *CodeStatementBody) Children() []Node {
	return collect(opt(n.OpenBrace), opt(n.Code), opt(n.CloseBrace))
}
func (n *CodeStatementBody) Span() position.Span          { return spanOf(n) }
func (n *CodeStatementBody) ContainsOnlyWhitespace() bool { return whitespaceOnly(n) }

// CodeImplicitExpression is `@name.Member`.
type CodeImplicitExpression struct {
	Transition *Token
	Body       *CodeBlock
}

func (n *CodeImplicitExpression) Kind() Kind    { return KindCodeImplicitExpression }
func (n *CodeImplicitExpression) present() bool { return n != nil }
func (n *CodeImplicitExpression) Children() []Node {
	return collect(opt(n.Transition), opt(n.Body))
}
func (n *CodeImplicitExpression) Span() position.Span          { return spanOf(n) }
func (n *CodeImplicitExpression) ContainsOnlyWhitespace() bool { return whitespaceOnly(n) }

// CodeExplicitExpression is `@( ... )`.
type CodeExplicitExpression struct {
	Transition *Token
	Body       *CodeExplicitExpressionBody
}

func (n *CodeExplicitExpression) Kind() Kind    { return KindCodeExplicitExpression }
func (n *CodeExplicitExpression) present() bool { return n != nil }
func (n *CodeExplicitExpression) Children() []Node {
	return collect(opt(n.Transition), opt(n.Body))
}
func (n *CodeExplicitExpression) Span() position.Span          { return spanOf(n) }
func (n *CodeExplicitExpression) ContainsOnlyWhitespace() bool { return whitespaceOnly(n) }

type CodeExplicitExpressionBody struct {
	OpenParen  *MetaCode
	Code       *CodeBlock
	CloseParen *MetaCode
}

func (n *CodeExplicitExpressionBody) Kind() Kind    { return KindCodeExplicitExpressionBody }
func (n *CodeExplicitExpressionBody) present() bool { return n != nil }
func (n *CodeExplicitExpressionBody) Children() []Node {
	return collect(opt(n.OpenParen), opt(n.Code), opt(n.CloseParen))
}
func (n *CodeExplicitExpressionBody) Span() position.Span          { return spanOf(n) }
func (n *CodeExplicitExpressionBody) ContainsOnlyWhitespace() bool { return whitespaceOnly(n) }

// Comment is a template comment, `@* ... *@`. The end tokens are zero width
// while the comment is still being typed.
type Comment struct {
	StartTransition *Token
	StartStar       *Token
	Body            *Token
	EndStar         *Token
	EndTransition   *Token
}

func (n *Comment) Kind() Kind    { return KindComment }
func (n *Comment) present() bool { return n != nil }
func (n *Comment) Children() []Node {
	return collect(opt(n.StartTransition), opt(n.StartStar), opt(n.Body), opt(n.EndStar), opt(n.EndTransition))
}
func (n *Comment) Span() position.Span          { return spanOf(n) }
func (n *Comment) ContainsOnlyWhitespace() bool { return whitespaceOnly(n) }

// Directive is `@keyword ...`. Descriptor is nil when the binder did not
// recognise the keyword.
type Directive struct {
	Transition *Token
	Body       *DirectiveBody
	Descriptor *directive.Descriptor
}

func (n *Directive) Kind() Kind                   { return KindDirective }
func (n *Directive) Children() []Node             { return collect(opt(n.Transition), opt(n.Body)) }
func (n *Directive) present() bool                { return n != nil }
func (n *Directive) Span() position.Span          { return spanOf(n) }
func (n *Directive) ContainsOnlyWhitespace() bool { return whitespaceOnly(n) }

// DirectiveBody holds the keyword and its arguments. Keyword is normally a
// *MetaCode; error recovery may leave a *CodeStatementLiteral there instead.
type DirectiveBody struct {
	Keyword Node
	Code    *CodeBlock
}

func (n *DirectiveBody) Kind() Kind                   { return KindDirectiveBody }
func (n *DirectiveBody) Children() []Node             { return collect(n.Keyword, opt(n.Code)) }
func (n *DirectiveBody) present() bool                { return n != nil }
func (n *DirectiveBody) Span() position.Span          { return spanOf(n) }
func (n *DirectiveBody) ContainsOnlyWhitespace() bool { return whitespaceOnly(n) }

// MetaCode is grammar punctuation owned by the template language rather than
// the embedded code: braces, parens, directive keywords.
type MetaCode struct {
	Tokens []*Token
}

func (n *MetaCode) Kind() Kind                   { return KindMetaCode }
func (n *MetaCode) Children() []Node             { return tokens(n.Tokens) }
func (n *MetaCode) present() bool                { return n != nil }
func (n *MetaCode) Span() position.Span          { return spanOf(n) }
func (n *MetaCode) ContainsOnlyWhitespace() bool { return whitespaceOnly(n) }

// Literal returns the concatenated token text.
func (n *MetaCode) Literal() string {
	var sb strings.Builder
	for _, t := range n.Tokens {
		if t != nil {
			sb.WriteString(t.Text)
		}
	}
	return sb.String()
}

func opt[P interface {
	*E
	Node
}, E any](p P) Node {
	if p == nil {
		return nil
	}
	return p
}

func collect(nodes ...Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if Present(n) {
			out = append(out, n)
		}
	}
	return out
}

func tokens(toks []*Token) []Node {
	out := make([]Node, 0, len(toks))
	for _, t := range toks {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}

func startTagChildren(open, bang, name *Token, attrs []Node, slash, closeAngle *Token) []Node {
	nodes := make([]Node, 0, len(attrs)+5)
	nodes = append(nodes, opt(open), opt(bang), opt(name))
	nodes = append(nodes, attrs...)
	nodes = append(nodes, opt(slash), opt(closeAngle))
	return collect(nodes...)
}

func elementChildren(start Node, body []Node, end Node) []Node {
	nodes := make([]Node, 0, len(body)+2)
	nodes = append(nodes, start)
	nodes = append(nodes, body...)
	nodes = append(nodes, end)
	return collect(nodes...)
}

// spanOf derives a composite span from its first and last non-empty child.
// Empty children, such as a present literal with no tokens, carry no offset
// of their own and are ignored.
func spanOf(n Node) position.Span {
	var first, last position.Span
	found := false
	for _, c := range n.Children() {
		span := c.Span()
		if span.IsEmpty() {
			continue
		}
		if !found {
			first = span
			found = true
		}
		last = span
	}
	if !found {
		return position.Span{}
	}
	return position.NewSpan(first.Offset, last.End()-first.Offset)
}

func whitespaceOnly(n Node) bool {
	for _, c := range n.Children() {
		if !c.ContainsOnlyWhitespace() {
			return false
		}
	}
	return true
}
