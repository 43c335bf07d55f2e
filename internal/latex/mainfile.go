package latex

import (
	"regexp"
	"strings"
)

var documentclassLine = regexp.MustCompile(`(?i)\\documentclass[^\n]*\n`)

const (
	packageDecl = "\\usepackage{scripture}\n"
	endDocument = `\end{document}`
)

// EnsurePackage inserts the scripture package declaration after the
// \documentclass line, or at the top when none exists. Idempotent: content
// already declaring the package (including the option-carrying
// \usepackage[parindent...] form) comes back unchanged.
func EnsurePackage(content string) (string, bool) {
	if strings.Contains(content, "usepackage{scripture}") ||
		strings.Contains(content, "usepackage[parindent") {
		return content, false
	}

	if loc := documentclassLine.FindStringIndex(content); loc != nil {
		return content[:loc[1]] + packageDecl + content[loc[1]:], true
	}
	return packageDecl + content, true
}

// InsertBeforeEnd splices sections ahead of the document's terminal marker.
// Content without an \end{document} is returned unchanged.
func InsertBeforeEnd(content, sections string) (string, bool) {
	if sections == "" {
		return content, false
	}
	idx := strings.LastIndex(content, endDocument)
	if idx < 0 {
		return content, false
	}
	return content[:idx] + "\n" + sections + "\n" + content[idx:], true
}
