// Package latex converts provider passage markup into scripture.sty macros
// and handles the LaTeX-side splicing: passage environments, package
// declarations, and appendix insertion.
package latex

import (
	"regexp"
	"strings"

	"github.com/pulpitworks/lectern/internal/providers"
)

var (
	digitPattern   = regexp.MustCompile(`\d`)
	footnoteMarker = regexp.MustCompile(`\(\d+\)`)
	trailingLabel  = regexp.MustCompile(`\s*\([A-Za-z]{2,}\)\s*$`)
	footnoteAnchor = regexp.MustCompile(`<n\s+id="\d+"\s*/>`)

	// Verse marker dialects, most specific first. The NET full-formatting
	// output wraps the first verse of a chapter in a vref span carrying the
	// chapter number, subsequent verses in a chapterless span or a bare
	// bold tag; the ESV plain-text output marks verses with [N] at line
	// starts.
	vrefFirst        = regexp.MustCompile(`<span class="vref"><b>(\d+):<span class="verseNumber">(\d+)</span></b></span>\s*`)
	vrefSubsequent   = regexp.MustCompile(`<span class="vref"><b><span class="verseNumber">(\d+)</span></b></span>\s*`)
	boldChapterVerse = regexp.MustCompile(`<b>(\d+):(\d+)</b>\s*`)
	boldVerse        = regexp.MustCompile(`<b>(\d+)</b>\s*`)
	lineVerseMarker  = regexp.MustCompile(`(?m)(^|\s)\[?(\d+)\]?\s+`)

	strongsTag = regexp.MustCompile(`<st data-num="(\d+)"[^>]*>([^<]+)</st>`)

	chapterBeforeColon = regexp.MustCompile(`(\d+)\s*:\s*\d+`)
	numberToken        = regexp.MustCompile(`\b(\d+)\b`)

	anyTag     = regexp.MustCompile(`<[^>]+>`)
	multiSpace = regexp.MustCompile(`  +`)
)

// Translate converts raw provider passage text into scripture.sty macro
// markup. The passes run in a fixed order; later passes assume the cleanup
// done by earlier ones. It returns the translated body and the Strong's
// numbers discovered in word-level annotation tags.
func Translate(raw, reference string, opts providers.LookupOptions) (string, []string) {
	text := stripHeadingAndFootnotes(raw)

	if !opts.IncludeFootnotes {
		text = footnoteMarker.ReplaceAllString(text, "")
	}
	text = trailingLabel.ReplaceAllString(text, "")
	text = footnoteAnchor.ReplaceAllString(text, "")

	text = convertVerseMarkers(text, opts.IncludeVerseNumbers)
	text, strongs := replaceStrongsTags(text, opts.SuppressCrossRefLinks)

	if opts.IncludeVerseNumbers {
		if ch := extractChapter(reference); ch != "" {
			text = `\ch{` + ch + "}\n" + text
		}
	}

	text = anyTag.ReplaceAllString(text, "")
	text = multiSpace.ReplaceAllString(text, " ")
	return text, strongs
}

// stripHeadingAndFootnotes drops a leading non-verse heading line (a line
// containing no digit), truncates at a literal "Footnotes" section header,
// and trims surrounding blank lines.
func stripHeadingAndFootnotes(raw string) string {
	lines := strings.Split(raw, "\n")

	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if len(lines) > 0 && !digitPattern.MatchString(lines[0]) {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}

	for i, line := range lines {
		if strings.EqualFold(strings.TrimSpace(line), "footnotes") {
			lines = lines[:i]
			break
		}
	}

	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	return strings.Join(lines, "\n")
}

// convertVerseMarkers rewrites every verse marker dialect into \vs{N} when
// verse numbers are requested; otherwise the markers are dropped with the
// surrounding spacing preserved.
func convertVerseMarkers(text string, includeVerseNumbers bool) string {
	if includeVerseNumbers {
		text = vrefFirst.ReplaceAllString(text, `\vs{${2}} `)
		text = vrefSubsequent.ReplaceAllString(text, `\vs{${1}} `)
		text = boldChapterVerse.ReplaceAllString(text, `\vs{${2}} `)
		text = boldVerse.ReplaceAllString(text, `\vs{${1}} `)
		text = lineVerseMarker.ReplaceAllString(text, `${1}\vs{${2}} `)
		return text
	}

	text = vrefFirst.ReplaceAllString(text, "")
	text = vrefSubsequent.ReplaceAllString(text, "")
	text = boldChapterVerse.ReplaceAllString(text, "")
	text = boldVerse.ReplaceAllString(text, "")
	text = lineVerseMarker.ReplaceAllString(text, `${1}`)
	return text
}

// replaceStrongsTags rewrites word-level lexical annotation tags, recording
// each Strong's number. With links suppressed the bare word is emitted
// (paracol columns cannot carry hyperlinks); otherwise the word links to
// its word-study entry.
func replaceStrongsTags(text string, suppressLinks bool) (string, []string) {
	var nums []string
	out := strongsTag.ReplaceAllStringFunc(text, func(m string) string {
		sub := strongsTag.FindStringSubmatch(m)
		num, word := sub[1], sub[2]
		nums = append(nums, num)
		if suppressLinks {
			return word
		}
		return `\hyperlink{strongs-` + num + `}{` + word + `}`
	})
	return out, nums
}

// extractChapter pulls a chapter number out of a free-text reference.
// Prefers the number immediately before a colon; with no colon, a lone
// number wins, else the second-to-last number ("1 John 3" has a leading
// book numeral). Known fragility: a reference carrying three numerals that
// do not follow the leading-book-numeral pattern picks the wrong one.
func extractChapter(reference string) string {
	if m := chapterBeforeColon.FindStringSubmatch(reference); m != nil {
		return m[1]
	}

	nums := numberToken.FindAllString(reference, -1)
	switch len(nums) {
	case 0:
		return ""
	case 1:
		return nums[0]
	}
	return nums[len(nums)-2]
}
