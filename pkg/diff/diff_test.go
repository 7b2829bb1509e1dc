package diff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/walteh/tmplsem/pkg/diff"
	"github.com/walteh/tmplsem/pkg/position"
)

func TestExported(t *testing.T) {
	a := []position.Range{position.NewRange(0, 0, 0, 1)}
	b := []position.Range{position.NewRange(0, 0, 0, 2)}

	assert.Empty(t, diff.Exported(a, a))

	out := diff.Exported(a, b)
	assert.Contains(t, out, "got ⏩️ want")
	assert.Contains(t, out, "➕")
	assert.Contains(t, out, "➖")
}

type withHidden struct {
	Shown  int
	hidden int
}

func TestExportedIgnoresUnexportedFields(t *testing.T) {
	assert.Empty(t, diff.Exported(withHidden{Shown: 1, hidden: 1}, withHidden{Shown: 1, hidden: 2}))
}
