package semtok

import (
	"fmt"

	"github.com/walteh/tmplsem/pkg/position"
)

// SemanticRange is a classified, single-line range of the document.
type SemanticRange struct {
	Type     TokenType
	Range    position.Range
	Modifier TokenModifier
}

func (r SemanticRange) String() string {
	return fmt.Sprintf("%s@%s", r.Type, r.Range)
}
