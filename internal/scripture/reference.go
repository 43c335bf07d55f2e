// Package scripture parses free-text scripture references into a normalized
// form: canonical book name, chapter, and optional verse range.
package scripture

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Reference is a normalized scripture reference. VerseStart and VerseEnd
// are nil for whole-chapter references; a single-verse reference has
// VerseStart == VerseEnd.
type Reference struct {
	Book       string
	Chapter    int
	VerseStart *int
	VerseEnd   *int
}

// String renders the reference in canonical "Book C[:V[-V]]" form.
func (r Reference) String() string {
	if r.VerseStart == nil {
		return fmt.Sprintf("%s %d", r.Book, r.Chapter)
	}
	if r.VerseEnd != nil && *r.VerseEnd != *r.VerseStart {
		return fmt.Sprintf("%s %d:%d-%d", r.Book, r.Chapter, *r.VerseStart, *r.VerseEnd)
	}
	return fmt.Sprintf("%s %d:%d", r.Book, r.Chapter, *r.VerseStart)
}

// ParseError reports reference text that does not match the accepted
// grammar.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse reference: %s", e.Input)
}

// UnknownBookError reports a book token that matched no canonical name or
// alias.
type UnknownBookError struct {
	Token string
}

func (e *UnknownBookError) Error() string {
	return fmt.Sprintf("unknown book: %s", e.Token)
}

// Grammar: optional leading numeral, multi-word book token, chapter number,
// optional :verse or :verse-verse (hyphen or en-dash).
var refPattern = regexp.MustCompile(
	`^(\d?\s*[A-Za-z]+(?:\s+[A-Za-z]+)*)\s+(\d+)(?::(\d+)(?:\s*[-–]\s*(\d+))?)?$`,
)

// Normalize parses text like "John 3:16", "Romans 8:1-4", "1 John 2" into a
// Reference. The book token is resolved through the alias table; unknown
// books yield an UnknownBookError and grammar failures a ParseError.
func Normalize(text string) (Reference, error) {
	m := refPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return Reference{}, &ParseError{Input: text}
	}

	book, err := NormalizeBook(m[1])
	if err != nil {
		return Reference{}, err
	}

	chapter, err := strconv.Atoi(m[2])
	if err != nil {
		return Reference{}, &ParseError{Input: text}
	}

	ref := Reference{Book: book, Chapter: chapter}
	if m[3] != "" {
		start, err := strconv.Atoi(m[3])
		if err != nil {
			return Reference{}, &ParseError{Input: text}
		}
		end := start
		if m[4] != "" {
			end, err = strconv.Atoi(m[4])
			if err != nil {
				return Reference{}, &ParseError{Input: text}
			}
		}
		ref.VerseStart = &start
		ref.VerseEnd = &end
	}
	return ref, nil
}
