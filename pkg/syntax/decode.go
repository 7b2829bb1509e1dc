package syntax

import (
	"io"
	"sort"

	"github.com/walteh/tmplsem/pkg/directive"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

/*
Tree snapshots on disk
----------------------

A snapshot is the YAML rendering of a bound tree handed over by the parser.
Every node is a mapping with a `kind` (see Kind.String) and one key per
slot. Tokens are plain strings. Offsets are not stored; they are recomputed
by laying the tokens out in source order.

	kind: document
	nodes:
	  - kind: tagHelperElement
	    binding: {isAttributeMatch: false, descriptors: [Counter]}
	    startTag: {openAngle: "<", name: Counter, forwardSlash: "/", closeAngle: ">"}

Shorthands: a string or a list of strings in a slot that expects a literal
becomes that literal; in a node list it becomes a markup text literal (or a
code literal inside a code block).
*/

// DecodeTree reads a YAML tree snapshot. Directive keywords are resolved
// against registry; a nil registry leaves every descriptor unset.
func DecodeTree(r io.Reader, registry *directive.Registry) (*Tree, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty tree snapshot")
		}
		return nil, errors.Errorf("parsing tree snapshot: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	d := &decoder{b: NewBuilder(), registry: registry}
	n := d.node(root, KindMarkupTextLiteral)
	if d.err != nil {
		return nil, d.err
	}
	if !Present(n) {
		return nil, errors.New("tree snapshot has no root node")
	}

	return d.b.Tree(n), nil
}

// decoder builds nodes in slot order so the builder sees tokens in source
// order. The first error sticks and turns later calls into no-ops.
type decoder struct {
	b        *Builder
	registry *directive.Registry
	err      error
}

type fields struct {
	kind   Kind
	line   int
	values map[string]*yaml.Node
	used   map[string]bool
}

func (f *fields) get(name string) *yaml.Node {
	f.used[name] = true
	return f.values[name]
}

func (d *decoder) fail(y *yaml.Node, format string, args ...any) {
	if d.err != nil {
		return
	}
	args = append(args, y.Line)
	d.err = errors.Errorf(format+" (line %d)", args...)
}

func (d *decoder) fieldsOf(y *yaml.Node) *fields {
	f := &fields{line: y.Line, values: map[string]*yaml.Node{}, used: map[string]bool{"kind": true}}
	for i := 0; i+1 < len(y.Content); i += 2 {
		f.values[y.Content[i].Value] = y.Content[i+1]
	}

	kindNode, ok := f.values["kind"]
	if !ok {
		d.fail(y, "node is missing a kind")
		return f
	}
	kind, ok := ParseKind(kindNode.Value)
	if !ok {
		d.fail(kindNode, "unknown node kind %q", kindNode.Value)
		return f
	}
	f.kind = kind
	return f
}

func (d *decoder) checkUnused(y *yaml.Node, f *fields) {
	var unknown []string
	for name := range f.values {
		if !f.used[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		d.fail(y, "unknown fields %v on %s", unknown, f.kind)
	}
}

// node decodes any node. Scalars and string lists become a literal of kind
// shorthand.
func (d *decoder) node(y *yaml.Node, shorthand Kind) Node {
	if d.err != nil || y == nil {
		return nil
	}

	switch y.Kind {
	case yaml.ScalarNode:
		if y.Tag == "!!null" {
			return nil
		}
		return d.literalOf(shorthand, d.b.tokens([]string{y.Value}))
	case yaml.SequenceNode:
		return d.literalOf(shorthand, d.tokenList(y))
	case yaml.MappingNode:
		f := d.fieldsOf(y)
		if d.err != nil {
			return nil
		}
		n := d.build(f)
		d.checkUnused(y, f)
		return n
	default:
		d.fail(y, "unexpected yaml node")
		return nil
	}
}

func (d *decoder) literalOf(kind Kind, toks []*Token) Node {
	switch kind {
	case KindCodeStatementLiteral:
		return &CodeStatementLiteral{Tokens: toks}
	case KindCodeExpressionLiteral:
		return &CodeExpressionLiteral{Tokens: toks}
	case KindMetaCode:
		return &MetaCode{Tokens: toks}
	default:
		return &MarkupTextLiteral{Tokens: toks}
	}
}

func (d *decoder) tokenList(y *yaml.Node) []*Token {
	texts := make([]string, 0, len(y.Content))
	for _, c := range y.Content {
		if c.Kind != yaml.ScalarNode {
			d.fail(c, "expected a token string")
			return nil
		}
		texts = append(texts, c.Value)
	}
	return d.b.tokens(texts)
}

func (d *decoder) token(f *fields, name string) *Token {
	y := f.get(name)
	if d.err != nil || y == nil {
		return nil
	}
	if y.Kind != yaml.ScalarNode {
		d.fail(y, "%s.%s must be a token string", f.kind, name)
		return nil
	}
	return d.b.Token(y.Value)
}

func (d *decoder) tokens(f *fields, name string) []*Token {
	y := f.get(name)
	if d.err != nil || y == nil {
		return nil
	}
	if y.Kind == yaml.ScalarNode {
		return d.b.tokens([]string{y.Value})
	}
	return d.tokenList(y)
}

func (d *decoder) nodes(f *fields, name string, shorthand Kind) []Node {
	y := f.get(name)
	if d.err != nil || y == nil {
		return nil
	}
	if y.Kind != yaml.SequenceNode {
		d.fail(y, "%s.%s must be a list", f.kind, name)
		return nil
	}
	out := make([]Node, 0, len(y.Content))
	for _, c := range y.Content {
		if n := d.node(c, shorthand); Present(n) {
			out = append(out, n)
		}
	}
	return out
}

func (d *decoder) flag(f *fields, name string) bool {
	y := f.get(name)
	if d.err != nil || y == nil {
		return false
	}
	var v bool
	if err := y.Decode(&v); err != nil {
		d.fail(y, "%s.%s must be a boolean", f.kind, name)
	}
	return v
}

// typed decodes a slot that must hold one specific shape.
func typed[T Node](d *decoder, f *fields, name string, shorthand Kind) T {
	var zero T
	n := d.node(f.get(name), shorthand)
	if !Present(n) {
		return zero
	}
	t, ok := n.(T)
	if !ok {
		d.fail(f.values[name], "%s.%s cannot hold a %s", f.kind, name, n.Kind())
		return zero
	}
	return t
}

func (d *decoder) literal(f *fields, name string) *MarkupTextLiteral {
	return typed[*MarkupTextLiteral](d, f, name, KindMarkupTextLiteral)
}

func (d *decoder) meta(f *fields, name string) *MetaCode {
	return typed[*MetaCode](d, f, name, KindMetaCode)
}

func (d *decoder) code(f *fields, name string) *CodeBlock {
	y := f.get(name)
	if d.err != nil || y == nil {
		return nil
	}
	switch y.Kind {
	case yaml.MappingNode:
		return typed[*CodeBlock](d, f, name, KindCodeStatementLiteral)
	case yaml.SequenceNode:
		// a bare list is shorthand for a code block of code literals
		return &CodeBlock{Nodes: d.nodes(f, name, KindCodeStatementLiteral)}
	default:
		return &CodeBlock{Nodes: collect(d.node(y, KindCodeStatementLiteral))}
	}
}

func (d *decoder) attributeValue(f *fields, name string) *TagHelperAttributeValue {
	return typed[*TagHelperAttributeValue](d, f, name, KindMarkupTextLiteral)
}

func (d *decoder) info(f *fields, name *MarkupTextLiteral) AttributeInfo {
	info := AttributeInfo{Bound: d.flag(f, "bound")}
	if name != nil {
		for _, t := range name.Tokens {
			info.Name += t.Text
		}
	}
	return info
}

func (d *decoder) binding(f *fields) TagHelperBinding {
	var raw struct {
		IsAttributeMatch bool     `yaml:"isAttributeMatch"`
		Descriptors      []string `yaml:"descriptors"`
	}
	y := f.get("binding")
	if d.err != nil || y == nil {
		return TagHelperBinding{}
	}
	if err := y.Decode(&raw); err != nil {
		d.fail(y, "decoding binding: %v", err)
	}
	return TagHelperBinding{IsAttributeMatch: raw.IsAttributeMatch, Descriptors: raw.Descriptors}
}

func (d *decoder) build(f *fields) Node {
	switch f.kind {
	case KindToken:
		return d.token(f, "text")
	case KindDocument:
		return &Document{Nodes: d.nodes(f, "nodes", KindMarkupTextLiteral)}
	case KindMarkupBlock:
		return &MarkupBlock{Nodes: d.nodes(f, "nodes", KindMarkupTextLiteral)}
	case KindCodeBlock:
		return &CodeBlock{Nodes: d.nodes(f, "nodes", KindCodeStatementLiteral)}
	case KindGenericBlock:
		return &GenericBlock{Nodes: d.nodes(f, "nodes", KindMarkupTextLiteral)}

	case KindMarkupTextLiteral:
		return &MarkupTextLiteral{Tokens: d.tokens(f, "tokens")}
	case KindMarkupLiteralAttributeValue:
		return &MarkupLiteralAttributeValue{Prefix: d.literal(f, "prefix"), Value: d.literal(f, "value")}
	case KindMarkupAttributeBlock:
		return &MarkupAttributeBlock{
			NamePrefix:  d.literal(f, "namePrefix"),
			Name:        d.literal(f, "name"),
			NameSuffix:  d.literal(f, "nameSuffix"),
			EqualsToken: d.token(f, "equals"),
			ValuePrefix: d.literal(f, "valuePrefix"),
			Value:       d.node(f.get("value"), KindMarkupTextLiteral),
			ValueSuffix: d.literal(f, "valueSuffix"),
		}
	case KindMarkupMinimizedAttributeBlock:
		return &MarkupMinimizedAttributeBlock{NamePrefix: d.literal(f, "namePrefix"), Name: d.literal(f, "name")}
	case KindMarkupStartTag:
		return &MarkupStartTag{
			OpenAngle:    d.token(f, "openAngle"),
			Bang:         d.token(f, "bang"),
			Name:         d.token(f, "name"),
			Attributes:   d.nodes(f, "attributes", KindMarkupTextLiteral),
			ForwardSlash: d.token(f, "forwardSlash"),
			CloseAngle:   d.token(f, "closeAngle"),
		}
	case KindMarkupEndTag:
		return &MarkupEndTag{
			OpenAngle:    d.token(f, "openAngle"),
			ForwardSlash: d.token(f, "forwardSlash"),
			Bang:         d.token(f, "bang"),
			Name:         d.token(f, "name"),
			CloseAngle:   d.token(f, "closeAngle"),
		}
	case KindMarkupElement:
		return &MarkupElement{
			StartTag: typed[*MarkupStartTag](d, f, "startTag", KindMarkupTextLiteral),
			Body:     d.nodes(f, "body", KindMarkupTextLiteral),
			EndTag:   typed[*MarkupEndTag](d, f, "endTag", KindMarkupTextLiteral),
		}
	case KindMarkupCommentBlock:
		return &MarkupCommentBlock{Nodes: d.nodes(f, "nodes", KindMarkupTextLiteral)}

	case KindTagHelperElement:
		return &TagHelperElement{
			Binding:  d.binding(f),
			StartTag: typed[*TagHelperStartTag](d, f, "startTag", KindMarkupTextLiteral),
			Body:     d.nodes(f, "body", KindMarkupTextLiteral),
			EndTag:   typed[*TagHelperEndTag](d, f, "endTag", KindMarkupTextLiteral),
		}
	case KindTagHelperStartTag:
		return &TagHelperStartTag{
			OpenAngle:    d.token(f, "openAngle"),
			Bang:         d.token(f, "bang"),
			Name:         d.token(f, "name"),
			Attributes:   d.nodes(f, "attributes", KindMarkupTextLiteral),
			ForwardSlash: d.token(f, "forwardSlash"),
			CloseAngle:   d.token(f, "closeAngle"),
		}
	case KindTagHelperEndTag:
		return &TagHelperEndTag{
			OpenAngle:    d.token(f, "openAngle"),
			ForwardSlash: d.token(f, "forwardSlash"),
			Bang:         d.token(f, "bang"),
			Name:         d.token(f, "name"),
			CloseAngle:   d.token(f, "closeAngle"),
		}
	case KindTagHelperAttribute:
		n := &TagHelperAttribute{
			NamePrefix:  d.literal(f, "namePrefix"),
			Name:        d.literal(f, "name"),
			NameSuffix:  d.literal(f, "nameSuffix"),
			EqualsToken: d.token(f, "equals"),
			ValuePrefix: d.literal(f, "valuePrefix"),
			Value:       d.attributeValue(f, "value"),
			ValueSuffix: d.literal(f, "valueSuffix"),
		}
		n.Info = d.info(f, n.Name)
		return n
	case KindMinimizedTagHelperAttribute:
		n := &MinimizedTagHelperAttribute{NamePrefix: d.literal(f, "namePrefix"), Name: d.literal(f, "name")}
		n.Info = d.info(f, n.Name)
		return n
	case KindTagHelperAttributeValue:
		return &TagHelperAttributeValue{Nodes: d.nodes(f, "nodes", KindMarkupTextLiteral)}
	case KindTagHelperDirectiveAttribute:
		n := &TagHelperDirectiveAttribute{
			NamePrefix:    d.literal(f, "namePrefix"),
			Transition:    d.token(f, "transition"),
			Name:          d.literal(f, "name"),
			Colon:         d.token(f, "colon"),
			ParameterName: d.literal(f, "parameterName"),
			NameSuffix:    d.literal(f, "nameSuffix"),
			EqualsToken:   d.token(f, "equals"),
			ValuePrefix:   d.literal(f, "valuePrefix"),
			Value:         d.attributeValue(f, "value"),
			ValueSuffix:   d.literal(f, "valueSuffix"),
		}
		n.Info = d.info(f, n.Name)
		return n
	case KindMinimizedTagHelperDirectiveAttribute:
		n := &MinimizedTagHelperDirectiveAttribute{
			NamePrefix:    d.literal(f, "namePrefix"),
			Transition:    d.token(f, "transition"),
			Name:          d.literal(f, "name"),
			Colon:         d.token(f, "colon"),
			ParameterName: d.literal(f, "parameterName"),
		}
		n.Info = d.info(f, n.Name)
		return n

	case KindCodeStatementLiteral:
		return &CodeStatementLiteral{Tokens: d.tokens(f, "tokens")}
	case KindCodeExpressionLiteral:
		return &CodeExpressionLiteral{Tokens: d.tokens(f, "tokens")}
	case KindCodeStatement:
		return &CodeStatement{
			Transition: d.token(f, "transition"),
			Body:       typed[*CodeStatementBody](d, f, "body", KindCodeStatementLiteral),
		}
	case KindCodeStatementBody:
		return &CodeStatementBody{OpenBrace: d.meta(f, "openBrace"), Code: d.code(f, "code"), CloseBrace: d.meta(f, "closeBrace")}
	case KindCodeImplicitExpression:
		return &CodeImplicitExpression{Transition: d.token(f, "transition"), Body: d.code(f, "body")}
	case KindCodeExplicitExpression:
		return &CodeExplicitExpression{
			Transition: d.token(f, "transition"),
			Body:       typed[*CodeExplicitExpressionBody](d, f, "body", KindCodeStatementLiteral),
		}
	case KindCodeExplicitExpressionBody:
		return &CodeExplicitExpressionBody{OpenParen: d.meta(f, "openParen"), Code: d.code(f, "code"), CloseParen: d.meta(f, "closeParen")}

	case KindComment:
		return &Comment{
			StartTransition: d.token(f, "startTransition"),
			StartStar:       d.token(f, "startStar"),
			Body:            d.token(f, "body"),
			EndStar:         d.token(f, "endStar"),
			EndTransition:   d.token(f, "endTransition"),
		}
	case KindDirective:
		n := &Directive{
			Transition: d.token(f, "transition"),
			Body:       typed[*DirectiveBody](d, f, "body", KindMetaCode),
		}
		n.Descriptor = d.descriptor(n.Body)
		return n
	case KindDirectiveBody:
		return &DirectiveBody{Keyword: d.node(f.get("keyword"), KindMetaCode), Code: d.code(f, "code")}
	case KindMetaCode:
		return &MetaCode{Tokens: d.tokens(f, "tokens")}
	}

	return nil
}

func (d *decoder) descriptor(body *DirectiveBody) *directive.Descriptor {
	if d.registry == nil || body == nil {
		return nil
	}
	keyword, ok := body.Keyword.(*MetaCode)
	if !ok {
		return nil
	}
	desc, _ := d.registry.Lookup(keyword.Literal())
	return desc
}
