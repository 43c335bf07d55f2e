package commentary

import (
	"regexp"
	"strings"
)

var (
	leadingVerseQuote = regexp.MustCompile(`^\s*\*\s*\d+\s*\*`)
	passageBreak      = regexp.MustCompile(`\s{3,}`)
	verseMarker       = regexp.MustCompile(`\*\s*\d+\s*\*`)
	italicsMarker     = regexp.MustCompile(`\*\s*([^*]+?)\s*\*`)
	doubleSpaceRun    = regexp.MustCompile(`  +`)
	spaceTabRun       = regexp.MustCompile(`[ \t]+`)
	newlineRun        = regexp.MustCompile(`\n\s*\n\s*\n+`)
)

// CleanText removes SWORD formatting artifacts from raw commentary text.
// Matthew Henry entries open with a quoted passage marked "* 1 *" per
// verse; when present, the quote block (everything before the first run of
// 3+ spaces) is dropped so only the commentary remains.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, `\par`, "\n\n")

	if leadingVerseQuote.MatchString(text) {
		parts := passageBreak.Split(text, 2)
		if len(parts) > 1 && len(parts[1]) > 100 {
			text = parts[1]
		}
	}

	text = verseMarker.ReplaceAllString(text, "")
	text = italicsMarker.ReplaceAllString(text, "${1}")

	// Convert residual multi-space runs to paragraph breaks before
	// normalizing single spacing.
	text = doubleSpaceRun.ReplaceAllString(text, "\n\n")
	text = spaceTabRun.ReplaceAllString(text, " ")
	text = newlineRun.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
