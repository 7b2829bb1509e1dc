// Package diff renders readable test failure output for large values such as
// classified range lists.
package diff

import (
	"strings"

	"github.com/k0kubun/pp/v3"
	"github.com/kylelemons/godebug/diff"
)

// Exported pretty prints both values without unexported fields or colors and
// returns a line diff that turns got into want. Equal values give "".
func Exported[T any](want T, got T) string {
	printer := pp.New()
	printer.SetExportedOnly(true)
	printer.SetColoringEnabled(false)

	lines := diff.Diff(printer.Sprint(got), printer.Sprint(want))
	if lines == "" {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\n\ngot ⏩️ want:\n\n")
	sb.WriteString("add:    ➕\n")
	sb.WriteString("remove: ➖\n\n")
	sb.WriteString(strings.NewReplacer("\n-", "\n➖", "\n+", "\n➕").Replace("\n" + lines))
	return sb.String()
}
