// Package tooltip renders hover and completion documentation for bound
// components and their attributes.
//
// A tooltip lists every candidate binding at a location:
//
//	**Counter**
//
//	Counts clicks on a `Button`.
//	---
//	**OtherCounter**
//
// Attribute tooltips use a `**int** Counter.**Amount**` header instead.
package tooltip

import (
	"context"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/tmplsem/pkg/docs"
	"gitlab.com/tozd/go/errors"
	"go.lsp.dev/protocol"
)

const entrySeparator = "\n---\n"

// CapabilityProvider exposes what the connected client declared it can render.
type CapabilityProvider interface {
	ClientCapabilities() *protocol.ClientCapabilities
}

// ElementDescription describes one component bound to an element.
type ElementDescription struct {
	TypeName      string
	Documentation string
}

// AttributeDescription describes one component property bound to an attribute.
type AttributeDescription struct {
	ReturnTypeName string
	TypeName       string
	PropertyName   string
	Documentation  string
}

type AggregateElementDescription struct {
	Descriptions []ElementDescription
}

type AggregateAttributeDescription struct {
	Descriptions []AttributeDescription
}

// Factory builds tooltips in whichever markup kind the client accepts.
type Factory struct {
	caps CapabilityProvider
}

func NewFactory(caps CapabilityProvider) (*Factory, error) {
	if caps == nil {
		return nil, errors.New("capability provider cannot be nil")
	}
	return &Factory{caps: caps}, nil
}

// MarkupKind picks Markdown when the client lists it for completion item
// documentation, or for hovers when it declared nothing for completions.
// Anything else gets plain text.
func (f *Factory) MarkupKind() protocol.MarkupKind {
	var kinds []protocol.MarkupKind

	if caps := f.caps.ClientCapabilities(); caps != nil && caps.TextDocument != nil {
		td := caps.TextDocument
		if td.Completion != nil && td.Completion.CompletionItem != nil {
			kinds = td.Completion.CompletionItem.DocumentationFormat
		}
		if kinds == nil && td.Hover != nil {
			kinds = td.Hover.ContentFormat
		}
	}

	if slices.Contains(kinds, protocol.Markdown) {
		return protocol.Markdown
	}
	return protocol.PlainText
}

// TryCreateElementTooltip renders one entry per bound component. It reports
// false when there is nothing to show.
func (f *Factory) TryCreateElementTooltip(ctx context.Context, desc AggregateElementDescription) (*protocol.MarkupContent, bool) {
	if len(desc.Descriptions) == 0 {
		return nil, false
	}

	c := f.newComposer(ctx)
	for _, d := range desc.Descriptions {
		c.separate()
		c.bold(docs.ReduceTypeName(d.TypeName))
		c.summary(d.Documentation)
	}

	return c.content(), true
}

// TryCreateAttributeTooltip renders one entry per bound property. It reports
// false when there is nothing to show.
func (f *Factory) TryCreateAttributeTooltip(ctx context.Context, desc AggregateAttributeDescription) (*protocol.MarkupContent, bool) {
	if len(desc.Descriptions) == 0 {
		return nil, false
	}

	c := f.newComposer(ctx)
	for _, d := range desc.Descriptions {
		c.separate()

		returnType, ok := docs.SimpleTypeName(d.ReturnTypeName)
		if !ok {
			returnType = d.ReturnTypeName
		}
		c.bold(docs.ReduceTypeName(returnType))
		c.sb.WriteString(" ")
		c.sb.WriteString(docs.ReduceTypeName(d.TypeName))
		c.sb.WriteString(".")
		c.bold(d.PropertyName)

		c.summary(d.Documentation)
	}

	return c.content(), true
}

func (f *Factory) newComposer(ctx context.Context) *composer {
	kind := f.MarkupKind()
	zerolog.Ctx(ctx).Debug().Str("kind", string(kind)).Msg("composing tooltip")
	return &composer{kind: kind}
}

type composer struct {
	sb   strings.Builder
	kind protocol.MarkupKind
}

// separate puts a rule between entries, never before the first one
func (c *composer) separate() {
	if c.sb.Len() > 0 {
		c.sb.WriteString(entrySeparator)
	}
}

func (c *composer) bold(s string) {
	if c.kind == protocol.Markdown {
		c.sb.WriteString("**" + s + "**")
		return
	}
	c.sb.WriteString(s)
}

// summary appends the cleaned summary. Entries whose documentation has none
// keep just their header.
func (c *composer) summary(documentation string) {
	s, ok := docs.ExtractSummary(documentation)
	if !ok {
		return
	}
	c.sb.WriteString("\n\n")
	c.sb.WriteString(docs.CleanSummary(s))
}

func (c *composer) content() *protocol.MarkupContent {
	return &protocol.MarkupContent{Kind: c.kind, Value: c.sb.String()}
}
