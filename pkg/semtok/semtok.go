/*
Package semtok provides semantic token support for bound template trees.

Core Functions:
-------------

	       Input
	         |
	         v
	  +------------+
	  | Bound Tree |  (from the parser/binder)
	  +------------+
	         |
	  Visit & Classify
	         |
	         v
	  +------------+
	  | Semantic   |
	  | Ranges     |  single line, non-empty, source order
	  +------------+
*/
package semtok

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/tmplsem/pkg/position"
	"github.com/walteh/tmplsem/pkg/syntax"
	"gitlab.com/tozd/go/errors"
)

// Classify walks tree and returns its semantic ranges in source order. When
// bounds is non-nil only ranges overlapping it are returned.
//
// Classify does not modify the tree and may run concurrently on any number
// of trees.
func Classify(ctx context.Context, tree *syntax.Tree, bounds *position.Range) ([]SemanticRange, error) {
	if tree == nil || tree.Source == nil {
		return nil, errors.New("tree has no source document")
	}

	v := newVisitor(ctx, tree, bounds)
	if err := v.visitNode(tree.Root); err != nil {
		return nil, errors.Errorf("classifying tree: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Int("ranges", len(v.getRanges())).
		Bool("bounded", bounds != nil).
		Msg("classified semantic ranges")

	return v.getRanges(), nil
}

// GetTokensForTree returns semantic ranges for the whole tree.
//
//	Example:
//	   ranges, err := GetTokensForTree(ctx, tree)
//	   if err != nil {
//	       return err
//	   }
//	   // Use ranges...
func GetTokensForTree(ctx context.Context, tree *syntax.Tree) ([]SemanticRange, error) {
	return Classify(ctx, tree, nil)
}

// GetTokensForRange returns semantic ranges overlapping a viewport, for
// clients that only ask for the visible part of a document.
func GetTokensForRange(ctx context.Context, tree *syntax.Tree, viewport position.Range) ([]SemanticRange, error) {
	return Classify(ctx, tree, &viewport)
}
