package resolve

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ProcessDir runs one resolution pass over every .tex file under dir,
// writing back only the files the pass modified. Each file is read whole,
// recomputed whole, and written whole; on a batch failure nothing is
// written.
func (r *Resolver) ProcessDir(ctx context.Context, dir string) error {
	var files []File
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".tex") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, File{Path: rel, Text: string(data)})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	if len(files) == 0 {
		return nil
	}

	resolved, _, err := r.ResolveFiles(ctx, files)
	if err != nil {
		return err
	}

	for _, f := range resolved {
		if !f.Modified {
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, f.Path), []byte(f.Text), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.Path, err)
		}
		r.cfg.Logger.Info("rewrote source file", "path", f.Path)
	}
	return nil
}
