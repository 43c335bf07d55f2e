package scripture

import (
	"errors"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Reference
	}{
		{
			name:  "single verse",
			input: "John 3:16",
			want:  Reference{Book: "John", Chapter: 3, VerseStart: intPtr(16), VerseEnd: intPtr(16)},
		},
		{
			name:  "verse range",
			input: "Romans 8:1-4",
			want:  Reference{Book: "Romans", Chapter: 8, VerseStart: intPtr(1), VerseEnd: intPtr(4)},
		},
		{
			name:  "en-dash range",
			input: "Romans 8:28–30",
			want:  Reference{Book: "Romans", Chapter: 8, VerseStart: intPtr(28), VerseEnd: intPtr(30)},
		},
		{
			name:  "whole chapter",
			input: "Psalm 23",
			want:  Reference{Book: "Psalms", Chapter: 23},
		},
		{
			name:  "numbered book",
			input: "1 John 2:3",
			want:  Reference{Book: "1 John", Chapter: 2, VerseStart: intPtr(3), VerseEnd: intPtr(3)},
		},
		{
			name:  "multi-word book",
			input: "Song of Solomon 2:1",
			want:  Reference{Book: "Song of Solomon", Chapter: 2, VerseStart: intPtr(1), VerseEnd: intPtr(1)},
		},
		{
			name:  "surrounding whitespace",
			input: "  Genesis 1:1  ",
			want:  Reference{Book: "Genesis", Chapter: 1, VerseStart: intPtr(1), VerseEnd: intPtr(1)},
		},
		{
			name:  "range with spaces around dash",
			input: "Matthew 5:3 - 12",
			want:  Reference{Book: "Matthew", Chapter: 5, VerseStart: intPtr(3), VerseEnd: intPtr(12)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			if err != nil {
				t.Fatalf("Normalize(%q) error = %v", tt.input, err)
			}
			if got.Book != tt.want.Book {
				t.Errorf("Book = %q, want %q", got.Book, tt.want.Book)
			}
			if got.Chapter != tt.want.Chapter {
				t.Errorf("Chapter = %d, want %d", got.Chapter, tt.want.Chapter)
			}
			if !verseEqual(got.VerseStart, tt.want.VerseStart) {
				t.Errorf("VerseStart = %v, want %v", deref(got.VerseStart), deref(tt.want.VerseStart))
			}
			if !verseEqual(got.VerseEnd, tt.want.VerseEnd) {
				t.Errorf("VerseEnd = %v, want %v", deref(got.VerseEnd), deref(tt.want.VerseEnd))
			}
		})
	}
}

func TestNormalize_Errors(t *testing.T) {
	t.Run("garbage yields parse error", func(t *testing.T) {
		_, err := Normalize("not a reference at all!")
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("error = %v, want *ParseError", err)
		}
	})

	t.Run("missing chapter yields parse error", func(t *testing.T) {
		_, err := Normalize("John")
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("error = %v, want *ParseError", err)
		}
	})

	t.Run("unknown book", func(t *testing.T) {
		_, err := Normalize("Hezekiah 3:16")
		var ube *UnknownBookError
		if !errors.As(err, &ube) {
			t.Fatalf("error = %v, want *UnknownBookError", err)
		}
		if ube.Token != "Hezekiah" {
			t.Errorf("Token = %q, want %q", ube.Token, "Hezekiah")
		}
	})
}

func TestReference_String(t *testing.T) {
	tests := []struct {
		name string
		ref  Reference
		want string
	}{
		{"chapter only", Reference{Book: "Psalms", Chapter: 23}, "Psalms 23"},
		{"single verse", Reference{Book: "John", Chapter: 3, VerseStart: intPtr(16), VerseEnd: intPtr(16)}, "John 3:16"},
		{"range", Reference{Book: "Romans", Chapter: 8, VerseStart: intPtr(1), VerseEnd: intPtr(4)}, "Romans 8:1-4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ref.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalize_RoundTrip(t *testing.T) {
	// Alias spellings converge on one canonical form.
	inputs := []string{"1 John 2:3", "1john 2:3", "I John 2:3", "1 Jn 2:3"}
	for _, input := range inputs {
		ref, err := Normalize(input)
		if err != nil {
			t.Fatalf("Normalize(%q) error = %v", input, err)
		}
		if got := ref.String(); got != "1 John 2:3" {
			t.Errorf("Normalize(%q).String() = %q, want %q", input, got, "1 John 2:3")
		}
	}
}

func verseEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func deref(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
