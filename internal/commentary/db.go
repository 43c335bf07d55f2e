package commentary

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/pulpitworks/lectern/internal/scripture"
)

// Store reads commentary from a local copy of the commentariat SQLite
// database (commentaries + entries tables).
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenStore opens the database at path.
func OpenStore(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open commentary database: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// ForReference looks up commentary entries covering the reference. Chapter
// references return every entry for the chapter; verse references return
// entries whose range overlaps the first verse.
func (s *Store) ForReference(ctx context.Context, ref scripture.Reference, source string) (*Result, error) {
	id, name, err := s.commentaryBySlug(ctx, source)
	if err != nil {
		s.logger.Warn("commentary lookup failed",
			"reference", ref.String(), "source", source, "error", err)
		return nil, nil
	}

	book, err := scripture.NormalizeBook(ref.Book)
	if err != nil {
		return nil, nil
	}

	var rows *sql.Rows
	if ref.VerseStart != nil {
		rows, err = s.db.QueryContext(ctx, `
			SELECT verse_start, verse_end, text
			FROM entries
			WHERE commentary_id = ?
			  AND book = ?
			  AND chapter = ?
			  AND verse_start <= ?
			  AND verse_end >= ?
			ORDER BY verse_start, verse_end`,
			id, book, ref.Chapter, *ref.VerseStart, *ref.VerseStart)
	} else {
		rows, err = s.db.QueryContext(ctx, `
			SELECT verse_start, verse_end, text
			FROM entries
			WHERE commentary_id = ? AND book = ? AND chapter = ?
			ORDER BY verse_start, verse_end`,
			id, book, ref.Chapter)
	}
	if err != nil {
		s.logger.Warn("commentary query failed",
			"reference", ref.String(), "source", source, "error", err)
		return nil, nil
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var text string
		if err := rows.Scan(&e.VerseStart, &e.VerseEnd, &text); err != nil {
			return nil, fmt.Errorf("failed to scan commentary entry: %w", err)
		}
		e.Text = CleanText(text)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read commentary entries: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	return &Result{
		Source:     source,
		SourceName: name,
		Book:       book,
		Chapter:    ref.Chapter,
		Verse:      ref.VerseStart,
		Entries:    entries,
	}, nil
}

func (s *Store) commentaryBySlug(ctx context.Context, slug string) (int64, string, error) {
	var id int64
	var name string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name FROM commentaries WHERE lower(slug) = lower(?)`, slug,
	).Scan(&id, &name)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, "", fmt.Errorf("unknown commentary slug %q", slug)
	}
	if err != nil {
		return 0, "", err
	}
	return id, name, nil
}

// Verify interface
var _ Lookup = (*Store)(nil)
