/*
Tree Visitor for Token Generation:
------------------------------

The visitor walks the bound tree in source order and emits ranges:

	Bound Tree                  Emitted Ranges
	----------                  --------------
	Document
	   |
	   +-> TagHelperElement     binding decides component vs markup
	   |      |
	   |      +-> StartTag  --> < | Counter | attributes | />
	   |
	   +-> Directive        --> @ | layout | (code untouched)
	   |
	   +-> MarkupTextLiteral --> text (whitespace dropped)

Every emitted range goes through addSemanticRange, which drops absent and
zero width nodes, splits multi-line nodes at child boundaries and applies
the optional viewport.
*/
package semtok

import (
	"context"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"github.com/walteh/tmplsem/pkg/position"
	"github.com/walteh/tmplsem/pkg/syntax"
	"gitlab.com/tozd/go/errors"
)

// ErrUnexpectedMetaCode is returned when a meta code node reached by the walk
// is not a template brace. The parser never produces one, so it indicates a
// broken tree rather than bad user input.
var ErrUnexpectedMetaCode = errors.Base("unexpected meta code")

// rangeVisitor collects semantic ranges while walking the tree
type rangeVisitor struct {
	ctx context.Context

	tree *syntax.Tree

	// bounds limits output to ranges overlapping it, nil for the whole document
	bounds *position.Range

	ranges []SemanticRange
}

func newVisitor(ctx context.Context, tree *syntax.Tree, bounds *position.Range) *rangeVisitor {
	return &rangeVisitor{
		ctx:    ctx,
		tree:   tree,
		bounds: bounds,
		ranges: make([]SemanticRange, 0),
	}
}

// visitNode dispatches on the concrete node shape
func (v *rangeVisitor) visitNode(node syntax.Node) error {
	if !syntax.Present(node) {
		return nil
	}

	switch n := node.(type) {
	// markup
	case *syntax.MarkupTextLiteral:
		if !n.ContainsOnlyWhitespace() {
			v.addSemanticRange(n, TokenMarkupTextLiteral)
		}
		return nil
	case *syntax.MarkupLiteralAttributeValue:
		v.addSemanticRange(n, TokenMarkupAttributeQuote)
		return nil
	case *syntax.MarkupAttributeBlock:
		return v.visitAttributeBlock(n)
	case *syntax.MarkupMinimizedAttributeBlock:
		if err := v.visitNode(n.NamePrefix); err != nil {
			return err
		}
		v.addSemanticRange(n.Name, TokenMarkupAttribute)
		return nil
	case *syntax.MarkupStartTag:
		return v.visitStartTag(n.OpenAngle, n.Bang, n.Name, n.Attributes, n.ForwardSlash, n.CloseAngle, TokenMarkupElement)
	case *syntax.MarkupEndTag:
		v.visitEndTag(n.OpenAngle, n.ForwardSlash, n.Bang, n.Name, n.CloseAngle, TokenMarkupElement)
		return nil
	case *syntax.MarkupCommentBlock:
		return v.visitMarkupComment(n)

	// bound components
	case *syntax.TagHelperElement:
		return v.visitTagHelperElement(n)
	case *syntax.TagHelperStartTag:
		// only reachable when the tag is not wrapped in an element
		return v.visitStartTag(n.OpenAngle, n.Bang, n.Name, n.Attributes, n.ForwardSlash, n.CloseAngle, TokenMarkupElement)
	case *syntax.TagHelperEndTag:
		v.visitEndTag(n.OpenAngle, n.ForwardSlash, n.Bang, n.Name, n.CloseAngle, TokenMarkupElement)
		return nil
	case *syntax.TagHelperAttribute:
		return v.visitTagHelperAttribute(n)
	case *syntax.MinimizedTagHelperAttribute:
		if err := v.visitNode(n.NamePrefix); err != nil {
			return err
		}
		if n.Info.Bound {
			v.addSemanticRange(n.Name, TokenComponentAttribute)
		}
		return nil
	case *syntax.TagHelperAttributeValue:
		return v.visitTagHelperAttributeValue(n)
	case *syntax.TagHelperDirectiveAttribute:
		return v.visitDirectiveAttribute(n)
	case *syntax.MinimizedTagHelperDirectiveAttribute:
		return v.visitMinimizedDirectiveAttribute(n)

	// code
	case *syntax.CodeStatement:
		v.addSemanticRange(n.Transition, TokenTransition)
		return v.visitNode(n.Body)
	case *syntax.CodeStatementBody:
		v.addSemanticRange(n.OpenBrace, TokenTransition)
		if err := v.visitNode(n.Code); err != nil {
			return err
		}
		v.addSemanticRange(n.CloseBrace, TokenTransition)
		return nil
	case *syntax.CodeImplicitExpression:
		v.addSemanticRange(n.Transition, TokenTransition)
		return v.visitNode(n.Body)
	case *syntax.CodeExplicitExpression:
		v.addSemanticRange(n.Transition, TokenTransition)
		return v.visitNode(n.Body)
	case *syntax.CodeExplicitExpressionBody:
		v.addSemanticRange(n.OpenParen, TokenCodePunctuation)
		if err := v.visitNode(n.Code); err != nil {
			return err
		}
		v.addSemanticRange(n.CloseParen, TokenCodePunctuation)
		return nil

	// template constructs
	case *syntax.Comment:
		v.addSemanticRange(n.StartTransition, TokenCommentTransition)
		v.addSemanticRange(n.StartStar, TokenCommentStar)
		v.addSemanticRange(n.Body, TokenComment)
		v.addSemanticRange(n.EndStar, TokenCommentStar)
		v.addSemanticRange(n.EndTransition, TokenCommentTransition)
		return nil
	case *syntax.Directive:
		v.addSemanticRange(n.Transition, TokenTransition)
		return v.visitNode(n.Body)
	case *syntax.DirectiveBody:
		return v.visitDirectiveBody(n)
	case *syntax.MetaCode:
		return v.visitMetaCode(n)

	// structural: nothing of their own, classified through their children
	case *syntax.Document, *syntax.MarkupBlock, *syntax.CodeBlock, *syntax.GenericBlock,
		*syntax.MarkupElement, *syntax.CodeStatementLiteral, *syntax.CodeExpressionLiteral, *syntax.Token:
		return v.visitChildren(n)

	default:
		zerolog.Ctx(v.ctx).Debug().Str("kind", node.Kind().String()).Msg("walking unmapped node transparently")
		return v.visitChildren(n)
	}
}

func (v *rangeVisitor) visitChildren(node syntax.Node) error {
	for _, c := range node.Children() {
		if err := v.visitNode(c); err != nil {
			return err
		}
	}
	return nil
}

func (v *rangeVisitor) visitAll(nodes []syntax.Node) error {
	for _, n := range nodes {
		if err := v.visitNode(n); err != nil {
			return err
		}
	}
	return nil
}

func (v *rangeVisitor) visitAttributeBlock(n *syntax.MarkupAttributeBlock) error {
	if err := v.visitNode(n.NamePrefix); err != nil {
		return err
	}
	v.addSemanticRange(n.Name, TokenMarkupAttribute)
	if err := v.visitNode(n.NameSuffix); err != nil {
		return err
	}
	v.addSemanticRange(n.EqualsToken, TokenMarkupOperator)

	v.addSemanticRange(n.ValuePrefix, TokenMarkupAttributeQuote)
	if err := v.visitNode(n.Value); err != nil {
		return err
	}
	v.addSemanticRange(n.ValueSuffix, TokenMarkupAttributeQuote)
	return nil
}

func (v *rangeVisitor) visitStartTag(open, bang, name *syntax.Token, attrs []syntax.Node, slash, closeAngle *syntax.Token, nameType TokenType) error {
	v.addSemanticRange(open, TokenMarkupTagDelimiter)
	v.addSemanticRange(bang, TokenMarkupElement)
	v.addSemanticRange(name, nameType)

	if err := v.visitAll(attrs); err != nil {
		return err
	}

	v.addSemanticRange(slash, TokenMarkupTagDelimiter)
	v.addSemanticRange(closeAngle, TokenMarkupTagDelimiter)
	return nil
}

func (v *rangeVisitor) visitEndTag(open, slash, bang, name, closeAngle *syntax.Token, nameType TokenType) {
	v.addSemanticRange(open, TokenMarkupTagDelimiter)
	v.addSemanticRange(slash, TokenMarkupTagDelimiter)
	v.addSemanticRange(bang, TokenMarkupElement)
	v.addSemanticRange(name, nameType)
	v.addSemanticRange(closeAngle, TokenMarkupTagDelimiter)
}

// visitMarkupComment handles `<!-- -->`. The first and last children are
// always the delimiters.
func (v *rangeVisitor) visitMarkupComment(n *syntax.MarkupCommentBlock) error {
	children := n.Children()
	if len(children) == 0 {
		return nil
	}

	v.addSemanticRange(children[0], TokenMarkupCommentPunctuation)

	for i := 1; i < len(children)-1; i++ {
		if lit, ok := children[i].(*syntax.MarkupTextLiteral); ok {
			v.addSemanticRange(lit, TokenMarkupComment)
			continue
		}
		if err := v.visitNode(children[i]); err != nil {
			return err
		}
	}

	if len(children) > 1 {
		v.addSemanticRange(children[len(children)-1], TokenMarkupCommentPunctuation)
	}
	return nil
}

func (v *rangeVisitor) visitTagHelperElement(n *syntax.TagHelperElement) error {
	nameType := TokenMarkupElement
	if classifyTagName(n) {
		nameType = TokenComponentElement
	}

	if st := n.StartTag; st != nil {
		if err := v.visitStartTag(st.OpenAngle, st.Bang, st.Name, st.Attributes, st.ForwardSlash, st.CloseAngle, nameType); err != nil {
			return err
		}
	}

	if err := v.visitAll(n.Body); err != nil {
		return err
	}

	if et := n.EndTag; et != nil {
		v.visitEndTag(et.OpenAngle, et.ForwardSlash, et.Bang, et.Name, et.CloseAngle, nameType)
	}
	return nil
}

// classifyTagName reports whether the element's tag name should be colored as
// a component. Elements bound only through an attribute keep markup coloring:
// the `input` in `<input @onclick="..." />` is markup, `<Input @onclick="..." />`
// is a component.
func classifyTagName(n *syntax.TagHelperElement) bool {
	if n.StartTag == nil || n.StartTag.Name == nil {
		return false
	}
	return !n.Binding.IsAttributeMatch
}

func (v *rangeVisitor) visitTagHelperAttribute(n *syntax.TagHelperAttribute) error {
	if err := v.visitNode(n.NamePrefix); err != nil {
		return err
	}

	if n.Info.Bound {
		v.addSemanticRange(n.Name, TokenComponentAttribute)
	} else {
		v.addSemanticRange(n.Name, TokenMarkupAttribute)
	}

	if err := v.visitNode(n.NameSuffix); err != nil {
		return err
	}

	v.addSemanticRange(n.EqualsToken, TokenMarkupOperator)

	v.addSemanticRange(n.ValuePrefix, TokenMarkupAttributeQuote)
	if err := v.visitNode(n.Value); err != nil {
		return err
	}
	v.addSemanticRange(n.ValueSuffix, TokenMarkupAttributeQuote)
	return nil
}

func (v *rangeVisitor) visitTagHelperAttributeValue(n *syntax.TagHelperAttributeValue) error {
	for _, child := range n.Children() {
		if lit, ok := child.(*syntax.MarkupTextLiteral); ok {
			v.addSemanticRange(lit, TokenMarkupAttributeQuote)
			continue
		}
		if err := v.visitNode(child); err != nil {
			return err
		}
	}
	return nil
}

func (v *rangeVisitor) visitDirectiveAttribute(n *syntax.TagHelperDirectiveAttribute) error {
	if err := v.visitNode(n.NamePrefix); err != nil {
		return err
	}

	if n.Info.Bound {
		v.addSemanticRange(n.Transition, TokenTransition)
		v.addSemanticRange(n.Name, TokenDirectiveAttribute)
		v.addSemanticRange(n.Colon, TokenDirectiveColon)
		v.addSemanticRange(n.ParameterName, TokenDirectiveAttribute)
	}

	if err := v.visitNode(n.NameSuffix); err != nil {
		return err
	}

	v.addSemanticRange(n.EqualsToken, TokenMarkupOperator)
	v.addSemanticRange(n.ValuePrefix, TokenMarkupAttributeQuote)
	if err := v.visitNode(n.Value); err != nil {
		return err
	}
	v.addSemanticRange(n.ValueSuffix, TokenMarkupAttributeQuote)
	return nil
}

func (v *rangeVisitor) visitMinimizedDirectiveAttribute(n *syntax.MinimizedTagHelperDirectiveAttribute) error {
	if err := v.visitNode(n.NamePrefix); err != nil {
		return err
	}

	if n.Info.Bound {
		v.addSemanticRange(n.Transition, TokenTransition)
		v.addSemanticRange(n.Name, TokenDirectiveAttribute)
		v.addSemanticRange(n.Colon, TokenDirectiveColon)
		v.addSemanticRange(n.ParameterName, TokenDirectiveAttribute)
	}
	return nil
}

// visitDirectiveBody colors the keyword unless error recovery left code in
// its slot. Coloring both would produce overlapping tokens, which clients
// reject.
func (v *rangeVisitor) visitDirectiveBody(n *syntax.DirectiveBody) error {
	if code, ok := n.Keyword.(*syntax.CodeStatementLiteral); ok {
		if err := v.visitNode(code); err != nil {
			return err
		}
	} else {
		v.addSemanticRange(n.Keyword, TokenDirective)
	}

	return v.visitNode(n.Code)
}

func (v *rangeVisitor) visitMetaCode(n *syntax.MetaCode) error {
	switch lit := n.Literal(); lit {
	case "{", "}":
		v.addSemanticRange(n, TokenTransition)
		return nil
	default:
		return errors.Errorf("%w: %q at %s", ErrUnexpectedMetaCode, lit, v.tree.Range(n))
	}
}

// addSemanticRange classifies a whole node as one token type
func (v *rangeVisitor) addSemanticRange(node syntax.Node, tokenType TokenType) {
	if !syntax.Present(node) {
		// e.g. `<p class='` where the closing quote has not been typed yet
		return
	}

	if node.Span().IsEmpty() {
		// e.g. `@* comment ` where the end star and transition are empty
		return
	}

	rng := v.tree.Range(node)
	if rng.IsSingleLine() {
		v.addRange(SemanticRange{Type: tokenType, Range: rng, Modifier: ModifierNone})
		return
	}

	// tokens may not span lines, so fall back to the node's children,
	// e.g. "\r\ntext\r\n" becomes just "text"
	children := node.Children()
	if len(children) == 0 {
		v.splitLeaf(node, tokenType)
		return
	}

	for _, child := range children {
		// a lone "\r\n" child would itself read as multi-line
		if child.ContainsOnlyWhitespace() {
			continue
		}
		v.addSemanticRange(child, tokenType)
	}
}

// splitLeaf cuts a multi-line leaf at its line breaks and emits every
// non-blank line on its own, without its surrounding whitespace.
func (v *rangeVisitor) splitLeaf(node syntax.Node, tokenType TokenType) {
	span := node.Span()
	text := v.tree.Source.Text(span)

	zerolog.Ctx(v.ctx).Debug().
		Str("kind", node.Kind().String()).
		Str("span", span.String()).
		Msg("splitting multi-line leaf")

	start := 0
	for start <= len(text) {
		end := strings.IndexAny(text[start:], "\r\n")
		if end < 0 {
			end = len(text)
		} else {
			end += start
		}

		line := text[start:end]
		if trimmed := strings.TrimLeftFunc(line, unicode.IsSpace); trimmed != "" {
			lead := len(line) - len(trimmed)
			width := len(strings.TrimRightFunc(trimmed, unicode.IsSpace))
			lineSpan := position.NewSpan(span.Offset+start+lead, width)
			v.addRange(SemanticRange{Type: tokenType, Range: v.tree.Source.RangeOf(lineSpan), Modifier: ModifierNone})
		}

		if end == len(text) {
			break
		}
		start = end + 1
		if text[end] == '\r' && start < len(text) && text[start] == '\n' {
			start++
		}
	}
}

func (v *rangeVisitor) addRange(r SemanticRange) {
	if v.bounds != nil && !r.Range.OverlapsWith(*v.bounds) {
		return
	}
	v.ranges = append(v.ranges, r)
}

// getRanges returns the collected ranges
func (v *rangeVisitor) getRanges() []SemanticRange {
	return v.ranges
}
