// Package resolve drives one resolution pass: collect directives across
// all source files, fetch and translate each distinct directive once,
// substitute rendered blocks, and synthesize trailing appendices.
package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pulpitworks/lectern/internal/commentary"
	"github.com/pulpitworks/lectern/internal/latex"
	"github.com/pulpitworks/lectern/internal/lexicon"
	"github.com/pulpitworks/lectern/internal/placeholder"
	"github.com/pulpitworks/lectern/internal/providers"
	"github.com/pulpitworks/lectern/internal/scripture"
)

// File is one document source in the working set. Modified is set on the
// returned copy when the pass changed its text.
type File struct {
	Path     string
	Text     string
	Modified bool
}

// Analyzer is the optional best-effort formatting pass. Implementations
// must return the input unchanged on failure.
type Analyzer interface {
	Analyze(ctx context.Context, text, reference string) string
}

// Config holds the resolver's collaborators and pass options.
type Config struct {
	Registry   *providers.Registry
	Analyzer   Analyzer
	Commentary commentary.Lookup
	Lexicon    lexicon.Dictionary
	Logger     *slog.Logger

	// MaxConcurrentFetches bounds concurrent provider fetches (default 4).
	MaxConcurrentFetches int
	// MainFile names the entry file that receives the package declaration
	// and appendices (default "main.tex"; matched by path, then basename).
	MainFile string
	// IncludeWordStudy enables the Greek word-study appendix.
	IncludeWordStudy bool
	// CommentarySources lists source slugs for the commentary appendix;
	// empty disables it.
	CommentarySources []string
}

// Resolver runs resolution passes.
type Resolver struct {
	cfg Config
}

// New creates a resolver. Registry is required.
func New(cfg Config) *Resolver {
	if cfg.MaxConcurrentFetches <= 0 {
		cfg.MaxConcurrentFetches = 4
	}
	if cfg.MainFile == "" {
		cfg.MainFile = "main.tex"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Resolver{cfg: cfg}
}

// Failure is one directive that could not be resolved.
type Failure struct {
	Reference string
	Version   providers.Version
	Err       error
}

func (f Failure) String() string {
	if f.Version == "" {
		return fmt.Sprintf("%s: %v", f.Reference, f.Err)
	}
	return fmt.Sprintf("%s (%s): %v", f.Reference, f.Version, f.Err)
}

// BatchError aggregates every failing directive of a pass. It is returned
// only after all directives have been attempted, so the caller gets the
// complete picture in one round trip.
type BatchError struct {
	Failures []Failure
}

func (e *BatchError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = f.String()
	}
	return "failed to fetch scripture for: " + strings.Join(parts, "; ")
}

// ResolveFiles runs one pass over the working set. On success the returned
// files carry substituted text with Modified flags; on failure the input
// files come back untouched together with a *BatchError. The returned
// Session exposes what the pass collected.
func (r *Resolver) ResolveFiles(ctx context.Context, files []File) ([]File, *Session, error) {
	session := NewSession()

	// COLLECTING: find every occurrence, parse each distinct spec once.
	type fileMatches struct {
		idx     int
		matches []placeholder.Match
	}
	var withMatches []fileMatches
	directives := make(map[string]*placeholder.Directive)
	badSpecs := make(map[string]struct{})
	var failures []Failure

	for i := range files {
		matches := placeholder.Extract(files[i].Text)
		if len(matches) == 0 {
			continue
		}
		withMatches = append(withMatches, fileMatches{idx: i, matches: matches})
		for _, m := range matches {
			if _, ok := directives[m.Spec]; ok {
				continue
			}
			if _, ok := badSpecs[m.Spec]; ok {
				continue
			}
			d, err := placeholder.ParseSpec(m.Spec)
			if err != nil {
				badSpecs[m.Spec] = struct{}{}
				failures = append(failures, Failure{Reference: m.Spec, Err: err})
				continue
			}
			directives[m.Spec] = d
		}
	}

	if len(directives) == 0 && len(failures) == 0 {
		return files, session, nil
	}

	r.cfg.Logger.Info("resolving scripture directives",
		"directives", len(directives), "files", len(withMatches))

	// RESOLVING: fetch every distinct directive with bounded concurrency.
	// No early abort; failures are collected until all have been attempted.
	renders := make(map[string]string, len(directives))
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	sem := make(chan struct{}, r.cfg.MaxConcurrentFetches)

	specs := make([]string, 0, len(directives))
	for spec := range directives {
		specs = append(specs, spec)
	}
	sort.Strings(specs)

	for _, spec := range specs {
		spec := spec
		d := directives[spec]
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			rendered, err := r.resolveDirective(ctx, d, session)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, Failure{
					Reference: d.Reference, Version: d.Version, Err: err,
				})
				return
			}
			renders[spec] = rendered
		}()
	}
	wg.Wait()

	if len(failures) > 0 {
		sort.Slice(failures, func(i, j int) bool {
			if failures[i].Reference != failures[j].Reference {
				return failures[i].Reference < failures[j].Reference
			}
			return failures[i].Version < failures[j].Version
		})
		return files, session, &BatchError{Failures: failures}
	}

	// SUBSTITUTING: all fetches succeeded; splice rendered blocks into
	// every occurrence.
	out := make([]File, len(files))
	copy(out, files)
	for _, fm := range withMatches {
		text := out[fm.idx].Text
		for _, m := range fm.matches {
			if rendered, ok := renders[m.Spec]; ok {
				text = strings.ReplaceAll(text, m.Raw, rendered)
			}
		}
		if text != out[fm.idx].Text {
			out[fm.idx].Text = text
			out[fm.idx].Modified = true
		}
	}

	// The entry file declares the scripture package and receives the
	// appendices.
	if mainIdx := r.findMainFile(out); mainIdx >= 0 {
		content := out[mainIdx].Text
		content, changed := latex.EnsurePackage(content)

		if sections := r.buildAppendices(ctx, session); sections != "" {
			patched, inserted := latex.InsertBeforeEnd(content, sections)
			if inserted {
				content = patched
				changed = true
			}
		}

		if changed {
			out[mainIdx].Text = content
			out[mainIdx].Modified = true
		}
	} else {
		r.cfg.Logger.Warn("main file not found while ensuring scripture package",
			"main_file", r.cfg.MainFile)
	}

	return out, session, nil
}

// resolveDirective normalizes, fetches, translates, and renders one
// directive, recording collected state in the session.
func (r *Resolver) resolveDirective(ctx context.Context, d *placeholder.Directive, session *Session) (string, error) {
	if _, err := scripture.Normalize(d.Reference); err != nil {
		return "", err
	}

	provider, err := r.cfg.Registry.ForVersion(d.Version)
	if err != nil {
		return "", err
	}

	result, err := provider.Fetch(ctx, d.Reference, d.Options)
	if err != nil {
		return "", err
	}

	canonical := result.CanonicalOrReference()
	body, strongs := latex.Translate(result.Text, canonical, d.Options)
	session.AddStrongs(strongs...)

	if r.cfg.Analyzer != nil {
		body = r.cfg.Analyzer.Analyze(ctx, body, canonical)
	}

	session.AddReference(canonical)
	return latex.RenderPassage(canonical, d.Version, body), nil
}

// findMainFile locates the entry file by exact path, then by basename.
func (r *Resolver) findMainFile(files []File) int {
	for i := range files {
		if files[i].Path == r.cfg.MainFile {
			return i
		}
	}
	for i := range files {
		if filepath.Base(files[i].Path) == r.cfg.MainFile {
			return i
		}
	}
	return -1
}

// buildAppendices synthesizes the trailing sections from session state.
func (r *Resolver) buildAppendices(ctx context.Context, session *Session) string {
	var sections []string

	if r.cfg.IncludeWordStudy && r.cfg.Lexicon != nil {
		if appendix := renderWordStudy(r.cfg.Lexicon, session.Strongs()); appendix != "" {
			sections = append(sections, appendix)
		}
	}

	if r.cfg.Commentary != nil && len(r.cfg.CommentarySources) > 0 {
		if appendix := r.renderCommentary(ctx, session.References()); appendix != "" {
			sections = append(sections, appendix)
		}
	}

	return strings.Join(sections, "\n\n")
}
