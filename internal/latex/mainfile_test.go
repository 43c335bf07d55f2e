package latex

import (
	"strings"
	"testing"
)

func TestEnsurePackage(t *testing.T) {
	t.Run("inserts after documentclass", func(t *testing.T) {
		content := "\\documentclass[12pt]{book}\n\\usepackage{geometry}\n\\begin{document}\n\\end{document}\n"
		got, changed := EnsurePackage(content)
		if !changed {
			t.Fatal("expected changed = true")
		}
		want := "\\documentclass[12pt]{book}\n\\usepackage{scripture}\n\\usepackage{geometry}\n"
		if !strings.HasPrefix(got, want) {
			t.Errorf("declaration not inserted after documentclass:\n%s", got)
		}
	})

	t.Run("prepends without documentclass", func(t *testing.T) {
		got, changed := EnsurePackage("\\begin{document}\\end{document}")
		if !changed {
			t.Fatal("expected changed = true")
		}
		if !strings.HasPrefix(got, "\\usepackage{scripture}\n") {
			t.Errorf("declaration not prepended:\n%s", got)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		content := "\\documentclass{book}\n\\usepackage{scripture}\n"
		got, changed := EnsurePackage(content)
		if changed {
			t.Error("expected changed = false")
		}
		if got != content {
			t.Errorf("content changed:\n%s", got)
		}
	})

	t.Run("recognizes option-carrying declaration", func(t *testing.T) {
		content := "\\documentclass{book}\n\\usepackage[parindent=1em]{scripture}\n"
		if _, changed := EnsurePackage(content); changed {
			t.Error("expected changed = false for \\usepackage[parindent...]")
		}
	})
}

func TestInsertBeforeEnd(t *testing.T) {
	t.Run("splices before end document", func(t *testing.T) {
		content := "\\begin{document}\nBody.\n\\end{document}\n"
		got, inserted := InsertBeforeEnd(content, "\\section*{Appendix}")
		if !inserted {
			t.Fatal("expected inserted = true")
		}
		idx := strings.Index(got, "\\section*{Appendix}")
		end := strings.Index(got, "\\end{document}")
		if idx < 0 || end < 0 || idx > end {
			t.Errorf("appendix not before end marker:\n%s", got)
		}
	})

	t.Run("uses last end document", func(t *testing.T) {
		content := "% \\end{document} in a comment\nBody.\n\\end{document}\n"
		got, inserted := InsertBeforeEnd(content, "X")
		if !inserted {
			t.Fatal("expected inserted = true")
		}
		if !strings.HasSuffix(strings.TrimSpace(got), "\\end{document}") {
			t.Errorf("terminal marker misplaced:\n%s", got)
		}
	})

	t.Run("no end marker", func(t *testing.T) {
		got, inserted := InsertBeforeEnd("just a fragment", "X")
		if inserted {
			t.Error("expected inserted = false")
		}
		if got != "just a fragment" {
			t.Errorf("content changed: %q", got)
		}
	})

	t.Run("empty sections", func(t *testing.T) {
		if _, inserted := InsertBeforeEnd("\\end{document}", ""); inserted {
			t.Error("expected inserted = false for empty sections")
		}
	})
}
