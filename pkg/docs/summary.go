// Package docs turns raw component doc comments into short, displayable text.
package docs

import (
	"regexp"
	"strings"
)

const (
	summaryStartTag = "<summary>"
	summaryEndTag   = "</summary>"
)

// MaxCrefScanLength bounds the summaries CleanSummary rewrites cross
// references in. Longer summaries are still line-normalised.
const MaxCrefScanLength = 64 * 1024

// crefPattern matches <see cref="..."/> and <seealso cref="..."/>; group 2 is
// the cref value.
var crefPattern = regexp.MustCompile(`<(see|seealso)[\s]+cref="([^">]+)"[^>]*>`)

// ExtractSummary returns the text between <summary> and </summary>, matched
// case-insensitively. The text is returned as found, without trimming.
//
// Documentation without a summary element is returned whole when it does not
// look like XML (does not start with '<' and does not end with '>'), so plain
// prose still shows up while raw doc XML never does.
func ExtractSummary(doc string) (string, bool) {
	if doc == "" {
		return "", false
	}

	doc = strings.Trim(doc, "\n\r")

	start := indexFold(doc, summaryStartTag, 0)
	end := -1
	if start >= 0 {
		end = indexFold(doc, summaryEndTag, start+len(summaryStartTag))
	}

	if start < 0 || end < 0 {
		if !strings.HasPrefix(doc, "<") && !strings.HasSuffix(doc, ">") {
			return doc, true
		}
		return "", false
	}

	return doc[start+len(summaryStartTag) : end], true
}

// CleanSummary trims a summary, rewrites cross references into code spans
// holding the reduced name and flushes every line left.
//
//	CleanSummary(" Uses <see cref=\"T:Ns.Item{Ns.T}\" />.\n   More. ")
//	// "Uses `Item<Ns.T>`.\nMore."
func CleanSummary(summary string) string {
	summary = strings.TrimSpace(summary)

	if len(summary) <= MaxCrefScanLength {
		summary = rewriteCrefs(summary)
	}

	lines := strings.Split(summary, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

// rewriteCrefs replaces matches from last to first so earlier offsets stay
// valid.
func rewriteCrefs(summary string) string {
	matches := crefPattern.FindAllStringSubmatchIndex(summary, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		value := summary[m[4]:m[5]]

		reduced := ReduceCrefValue(value)
		reduced = strings.NewReplacer("{", "<", "}", ">").Replace(reduced)

		summary = summary[:m[0]] + "`" + reduced + "`" + summary[m[1]:]
	}
	return summary
}

// indexFold is strings.Index with ASCII case folding, starting at from.
func indexFold(s, substr string, from int) int {
	for i := from; i+len(substr) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(substr)], substr) {
			return i
		}
	}
	return -1
}
