// Package commentary looks up classic Biblical commentary for scripture
// references, either from the commentariat REST API or from a local SQLite
// copy of its database. Lookups are best-effort: a failed or empty lookup
// yields no entries, never an aborted resolution pass.
package commentary

import (
	"context"

	"github.com/pulpitworks/lectern/internal/scripture"
)

// Well-known source slugs.
const (
	SourceMHC    = "mhc"                // Matthew Henry's Complete Commentary
	SourceCalvin = "calvincommentaries" // Calvin's Collected Commentaries
)

// Entry is commentary text covering a verse range.
type Entry struct {
	VerseStart int
	VerseEnd   int
	Text       string
}

// Result is the outcome of one commentary lookup.
type Result struct {
	Source     string
	SourceName string
	Book       string
	Chapter    int
	Verse      *int
	Entries    []Entry
}

// Lookup fetches commentary for a normalized reference from a named
// source. A nil Result with nil error means no commentary is available.
type Lookup interface {
	ForReference(ctx context.Context, ref scripture.Reference, source string) (*Result, error)
}
