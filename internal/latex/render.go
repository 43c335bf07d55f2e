package latex

import (
	"strings"

	"github.com/pulpitworks/lectern/internal/providers"
)

var bracketStripper = strings.NewReplacer("[", "", "]", "")

// RenderPassage wraps a translated passage body in the scripture
// environment from scripture.sty, carrying the canonical reference and the
// version as environment parameters. \scripturefont keeps passage text in
// the serif face regardless of the surrounding document font.
func RenderPassage(canonical string, version providers.Version, body string) string {
	var b strings.Builder
	b.WriteString(`\begin{scripture}[`)
	b.WriteString(bracketStripper.Replace(canonical))
	b.WriteString(`]`)
	if version != "" {
		b.WriteString(`[version=`)
		b.WriteString(string(version))
		b.WriteString(`]`)
	}
	b.WriteString("\n\\scripturefont\n")
	b.WriteString(strings.TrimSpace(body))
	b.WriteString("\n\\end{scripture}")
	return b.String()
}
