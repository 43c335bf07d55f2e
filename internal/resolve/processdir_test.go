package resolve

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pulpitworks/lectern/internal/providers"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestProcessDir(t *testing.T) {
	dir := t.TempDir()
	mainPath := writeFile(t, dir, "main.tex",
		"\\documentclass{book}\n\\begin{document}\n\\input{chapters/ch1}\n\\end{document}\n")
	chPath := writeFile(t, dir, "chapters/ch1.tex",
		"Opening.\n[[scripture:John 3:16]]\nClosing.\n")
	writeFile(t, dir, "notes.md", "[[scripture:John 3:16]] not a tex file")

	mock := providers.NewMockProvider("[16] For God so loved the world. (ESV)")
	r := newTestResolver(t, mock, nil, nil)

	if err := r.ProcessDir(context.Background(), dir); err != nil {
		t.Fatalf("ProcessDir() error = %v", err)
	}

	ch, err := os.ReadFile(chPath)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(ch), "[[scripture:") {
		t.Errorf("placeholder survived in ch1.tex:\n%s", ch)
	}
	if !strings.Contains(string(ch), "\\begin{scripture}[John 3:16][version=ESV]") {
		t.Errorf("rendered environment missing:\n%s", ch)
	}

	main, err := os.ReadFile(mainPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(main), "\\usepackage{scripture}") {
		t.Errorf("package declaration missing from main.tex:\n%s", main)
	}

	// Non-.tex files are never scanned or rewritten.
	if mock.FetchCount() != 1 {
		t.Errorf("FetchCount() = %d, want 1", mock.FetchCount())
	}
}

func TestProcessDir_FailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	original := "Text.\n[[scripture:Hezekiah 1:1]]\n"
	path := writeFile(t, dir, "main.tex", original)

	mock := providers.NewMockProvider("text")
	r := newTestResolver(t, mock, nil, nil)

	if err := r.ProcessDir(context.Background(), dir); err == nil {
		t.Fatal("expected an error for the unknown book")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != original {
		t.Errorf("file rewritten despite failure:\n%s", data)
	}
}

func TestProcessDir_Idempotent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.tex",
		"\\documentclass{book}\n\\begin{document}\n[[scripture:John 3:16]]\n\\end{document}\n")

	mock := providers.NewMockProvider("[16] text. (ESV)")
	r := newTestResolver(t, mock, nil, nil)

	if err := r.ProcessDir(context.Background(), dir); err != nil {
		t.Fatalf("first pass error = %v", err)
	}
	after, _ := os.ReadFile(filepath.Join(dir, "main.tex"))

	if err := r.ProcessDir(context.Background(), dir); err != nil {
		t.Fatalf("second pass error = %v", err)
	}
	again, _ := os.ReadFile(filepath.Join(dir, "main.tex"))

	if string(after) != string(again) {
		t.Error("second pass changed an already-resolved file")
	}
	if mock.FetchCount() != 1 {
		t.Errorf("FetchCount() = %d, want 1 (second pass finds no placeholders)", mock.FetchCount())
	}
}
