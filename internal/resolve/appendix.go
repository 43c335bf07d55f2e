package resolve

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/pulpitworks/lectern/internal/latex"
	"github.com/pulpitworks/lectern/internal/lexicon"
	"github.com/pulpitworks/lectern/internal/scripture"
)

// maxCommentaryChars bounds how much of a single commentary entry lands in
// the appendix.
const maxCommentaryChars = 2000

// renderWordStudy builds the Greek word-study appendix from collected
// Strong's numbers (already sorted numerically by the session).
func renderWordStudy(dict lexicon.Dictionary, nums []string) string {
	if len(nums) == 0 {
		return ""
	}

	lines := []string{
		`\newpage`,
		`\section*{Greek Word Study}`,
		`\addcontentsline{toc}{section}{Greek Word Study}`,
		``,
		`\begin{description}`,
	}

	for _, num := range nums {
		entry, ok := dict.Lookup(num)
		def := entry.Def
		if !ok || def == "" {
			def = "Definition not available"
		}

		label := "G" + num
		if entry.Greek != "" {
			// Greek in parentheses in the Greek face, not bold.
			label += ` ({\textnormal{\greekfont ` + entry.Greek + `}})`
		}

		lines = append(lines,
			`\item[\hypertarget{strongs-`+num+`}{`+label+`}] `+
				`\textbf{`+entry.Translit+`} --- `+latex.Escape(def))
	}

	lines = append(lines, `\end{description}`)
	return strings.Join(lines, "\n")
}

// renderCommentary builds the commentary appendix by looking up every
// collected canonical reference against every configured source. Lookup
// failures are skipped; the appendix is empty when nothing was found.
func (r *Resolver) renderCommentary(ctx context.Context, refs []string) string {
	if len(refs) == 0 {
		return ""
	}

	lines := []string{
		`\newpage`,
		`\section*{Commentary Notes}`,
		`\addcontentsline{toc}{section}{Commentary Notes}`,
		``,
	}
	hasContent := false

	for _, refText := range refs {
		ref, err := scripture.Normalize(refText)
		if err != nil {
			r.cfg.Logger.Warn("could not parse reference for commentary",
				"reference", refText, "error", err)
			continue
		}

		refHasContent := false
		var refLines []string

		for _, source := range r.cfg.CommentarySources {
			result, err := r.cfg.Commentary.ForReference(ctx, ref, source)
			if err != nil || result == nil || len(result.Entries) == 0 {
				continue
			}

			if !refHasContent {
				refLines = append(refLines, `\subsection*{`+latex.Escape(refText)+`}`, "")
				refHasContent = true
			}

			refLines = append(refLines, `\paragraph{`+latex.Escape(result.SourceName)+`}`, "")

			text := truncate(result.Entries[0].Text, maxCommentaryChars)
			escaped := latex.Escape(text)
			escaped = strings.ReplaceAll(escaped, "\n\n", "\n\n\\par\n")
			refLines = append(refLines, escaped, "")
		}

		if refHasContent {
			lines = append(lines, refLines...)
			hasContent = true
		}
	}

	if !hasContent {
		return ""
	}
	return strings.Join(lines, "\n")
}

// truncate cuts text at max bytes without splitting a rune.
func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}
