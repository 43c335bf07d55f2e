package latex

import "strings"

// escaper rewrites LaTeX special characters in one pass, so replacement
// text is never rescanned.
var escaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

// Escape makes plain text safe to embed in a LaTeX document.
func Escape(text string) string {
	if text == "" {
		return ""
	}
	return escaper.Replace(text)
}
