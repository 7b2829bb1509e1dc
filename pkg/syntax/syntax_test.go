package syntax_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/tmplsem/pkg/directive"
	"github.com/walteh/tmplsem/pkg/position"
	"github.com/walteh/tmplsem/pkg/syntax"
)

func TestBuilderLaysOutTokensInOrder(t *testing.T) {
	b := syntax.NewBuilder()
	el := &syntax.MarkupElement{
		StartTag: &syntax.MarkupStartTag{OpenAngle: b.Token("<"), Name: b.Token("p"), CloseAngle: b.Token(">")},
		Body:     []syntax.Node{b.Literal("hi")},
		EndTag:   &syntax.MarkupEndTag{OpenAngle: b.Token("<"), ForwardSlash: b.Token("/"), Name: b.Token("p"), CloseAngle: b.Token(">")},
	}
	tree := b.Tree(&syntax.Document{Nodes: []syntax.Node{el}})

	assert.Equal(t, "<p>hi</p>", tree.Source.Content())
	assert.Equal(t, position.NewSpan(0, 9), tree.Root.Span())
	assert.Equal(t, position.NewSpan(3, 2), el.Body[0].Span())
	assert.Equal(t, "</p>", tree.Text(el.EndTag))
	assert.Equal(t, position.NewRange(0, 5, 0, 9), tree.Range(el.EndTag))
}

func TestChildrenSkipAbsentSlots(t *testing.T) {
	b := syntax.NewBuilder()
	tag := &syntax.MarkupStartTag{OpenAngle: b.Token("<"), Name: b.Token("br"), ForwardSlash: b.Token("/"), CloseAngle: b.Token(">")}

	children := tag.Children()
	require.Len(t, children, 4)
	for _, c := range children {
		assert.True(t, syntax.Present(c))
	}

	var nilTag *syntax.MarkupStartTag
	assert.False(t, syntax.Present(nilTag))
	assert.False(t, syntax.Present(nil))

	body := &syntax.DirectiveBody{Keyword: (*syntax.MetaCode)(nil)}
	assert.Empty(t, body.Children())
	assert.Equal(t, position.Span{}, body.Span())
}

func TestSpanIgnoresEmptyChildren(t *testing.T) {
	b := syntax.NewBuilder()
	b.Token("abc ")

	leading := &syntax.MarkupLiteralAttributeValue{Prefix: b.Literal(), Value: b.Literal("x")}
	assert.Equal(t, position.NewSpan(4, 1), leading.Span())

	trailing := &syntax.MarkupLiteralAttributeValue{Prefix: b.Literal("y"), Value: b.Literal()}
	assert.Equal(t, position.NewSpan(5, 1), trailing.Span())

	value := &syntax.TagHelperAttributeValue{Nodes: []syntax.Node{b.Literal(), b.Literal("z"), b.Literal()}}
	assert.Equal(t, position.NewSpan(6, 1), value.Span())

	allEmpty := &syntax.TagHelperAttributeValue{Nodes: []syntax.Node{b.Literal(), b.Literal()}}
	assert.True(t, allEmpty.Span().IsEmpty())
}

func TestContainsOnlyWhitespace(t *testing.T) {
	b := syntax.NewBuilder()

	assert.True(t, b.Literal(" ", "\r\n", "\t").ContainsOnlyWhitespace())
	assert.False(t, b.Literal("\n", "text", "\n").ContainsOnlyWhitespace())
	assert.True(t, b.Empty().ContainsOnlyWhitespace())
	assert.True(t, (&syntax.MarkupBlock{}).ContainsOnlyWhitespace())
}

func TestMetaCodeLiteral(t *testing.T) {
	b := syntax.NewBuilder()
	assert.Equal(t, "{", b.Meta("{").Literal())
	assert.Equal(t, "layout", b.Meta("lay", "out").Literal())
}

func TestKindNames(t *testing.T) {
	seen := map[string]bool{}
	for _, k := range syntax.AllKinds() {
		name := k.String()
		require.NotEqual(t, "unknown", name, "kind %d has no name", k)
		require.False(t, seen[name], "duplicate kind name %s", name)
		seen[name] = true

		parsed, ok := syntax.ParseKind(name)
		require.True(t, ok)
		assert.Equal(t, k, parsed)
	}
	_, ok := syntax.ParseKind("nope")
	assert.False(t, ok)
}

func TestWalkAndTokens(t *testing.T) {
	b := syntax.NewBuilder()
	root := &syntax.Document{Nodes: []syntax.Node{
		&syntax.Directive{Transition: b.Token("@"), Body: &syntax.DirectiveBody{Keyword: b.Meta("layout"), Code: &syntax.CodeBlock{Nodes: []syntax.Node{b.Code(" ", "MainLayout")}}}, Descriptor: directive.Layout},
		b.Literal("\n"),
	}}

	var texts []string
	for _, tok := range syntax.Tokens(root) {
		texts = append(texts, tok.Text)
	}
	assert.Equal(t, []string{"@", "layout", " ", "MainLayout", "\n"}, texts)
	assert.Equal(t, []string{"layout"}, syntax.Directives(root))

	var kinds []syntax.Kind
	syntax.Walk(root, func(n syntax.Node) bool {
		kinds = append(kinds, n.Kind())
		return n.Kind() != syntax.KindDirective
	})
	assert.Equal(t, []syntax.Kind{syntax.KindDocument, syntax.KindDirective, syntax.KindMarkupTextLiteral, syntax.KindToken}, kinds)
}

func TestDecodeTree(t *testing.T) {
	snapshot := `
kind: document
nodes:
  - kind: directive
    transition: "@"
    body:
      kind: directiveBody
      keyword: layout
      code: [" ", "MainLayout"]
  - "\n"
  - kind: tagHelperElement
    binding: {isAttributeMatch: false, descriptors: [Counter]}
    startTag:
      kind: tagHelperStartTag
      openAngle: "<"
      name: Counter
      attributes:
        - kind: tagHelperAttribute
          bound: true
          namePrefix: " "
          name: Amount
          equals: "="
          valuePrefix: '"'
          value:
            kind: tagHelperAttributeValue
            nodes: ["5"]
          valueSuffix: '"'
      forwardSlash: " /"
      closeAngle: ">"
`
	tree, err := syntax.DecodeTree(strings.NewReader(snapshot), directive.NewDefaultRegistry())
	require.NoError(t, err)

	assert.Equal(t, "@layout MainLayout\n<Counter Amount=\"5\" />", tree.Source.Content())

	doc, ok := tree.Root.(*syntax.Document)
	require.True(t, ok)
	require.Len(t, doc.Nodes, 3)

	dir, ok := doc.Nodes[0].(*syntax.Directive)
	require.True(t, ok)
	assert.Same(t, directive.Layout, dir.Descriptor)
	_, ok = dir.Body.Keyword.(*syntax.MetaCode)
	assert.True(t, ok)
	require.Len(t, dir.Body.Code.Nodes, 2)

	el, ok := doc.Nodes[2].(*syntax.TagHelperElement)
	require.True(t, ok)
	assert.False(t, el.Binding.IsAttributeMatch)
	assert.Equal(t, []string{"Counter"}, el.Binding.Descriptors)
	assert.Equal(t, "Counter", el.StartTag.Name.Text)

	attr, ok := el.StartTag.Attributes[0].(*syntax.TagHelperAttribute)
	require.True(t, ok)
	assert.True(t, attr.Info.Bound)
	assert.Equal(t, "Amount", attr.Info.Name)
	assert.Equal(t, "5", tree.Text(attr.Value))
	assert.Equal(t, position.NewSpan(19, 22), el.Span())
}

func TestDecodeTreeErrors(t *testing.T) {
	tests := []struct {
		name     string
		snapshot string
		wantErr  string
	}{
		{
			name:     "empty",
			snapshot: "",
			wantErr:  "empty tree snapshot",
		},
		{
			name:     "missing kind",
			snapshot: "nodes: []",
			wantErr:  "missing a kind",
		},
		{
			name:     "unknown kind",
			snapshot: "kind: paragraph",
			wantErr:  `unknown node kind "paragraph"`,
		},
		{
			name:     "unknown field",
			snapshot: "kind: markupEndTag\nopenAngle: '<'\nsize: 3",
			wantErr:  "unknown fields [size]",
		},
		{
			name:     "wrong slot shape",
			snapshot: "kind: markupElement\nstartTag:\n  kind: markupEndTag\n  name: p",
			wantErr:  "markupElement.startTag cannot hold a markupEndTag",
		},
		{
			name:     "token must be a string",
			snapshot: "kind: markupEndTag\nname: [a, b]",
			wantErr:  "markupEndTag.name must be a token string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := syntax.DecodeTree(strings.NewReader(tt.snapshot), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
