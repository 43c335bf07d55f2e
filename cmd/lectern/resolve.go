package main

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/pulpitworks/lectern/internal/analysis"
	"github.com/pulpitworks/lectern/internal/commentary"
	"github.com/pulpitworks/lectern/internal/config"
	"github.com/pulpitworks/lectern/internal/lexicon"
	"github.com/pulpitworks/lectern/internal/providers"
	"github.com/pulpitworks/lectern/internal/resolve"
)

var (
	resolveMainFile   string
	resolveWordStudy  bool
	resolveCommentary bool
	resolveSources    []string
	resolveWatch      bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <dir>",
	Short: "Resolve scripture placeholders in a LaTeX project",
	Long: `Scan every .tex file under <dir> for [[scripture:...]] placeholders,
fetch the referenced passages, and rewrite the files with rendered
scripture environments. The main file additionally gets the scripture
package declaration and any requested appendices.

If any placeholder fails to resolve, no file is written and every
failure is reported at once.

Examples:
  lectern resolve ./book                       # Resolve in place
  lectern resolve ./book --main book.tex       # Non-default entry file
  lectern resolve ./book --word-study          # Add the Greek word study
  lectern resolve ./book --commentary          # Add commentary notes
  lectern resolve ./book --watch               # Re-resolve on changes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := newLogger()

		cm, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}

		resolver, cleanup, err := buildResolver(cm.Get(), logger)
		if err != nil {
			return err
		}
		defer cleanup()

		dir := args[0]
		if err := resolver.ProcessDir(ctx, dir); err != nil {
			return err
		}

		if resolveWatch {
			return watchDir(ctx, dir, resolver, logger)
		}
		return nil
	},
}

func init() {
	resolveCmd.Flags().StringVar(&resolveMainFile, "main", "",
		"entry file receiving the package declaration and appendices (default from config)")
	resolveCmd.Flags().BoolVar(&resolveWordStudy, "word-study", false,
		"append a Greek word study built from collected Strong's numbers")
	resolveCmd.Flags().BoolVar(&resolveCommentary, "commentary", false,
		"append commentary notes for resolved references")
	resolveCmd.Flags().StringSliceVar(&resolveSources, "sources", nil,
		"commentary source slugs (default from config)")
	resolveCmd.Flags().BoolVar(&resolveWatch, "watch", false,
		"keep running and re-resolve when .tex files change")

	rootCmd.AddCommand(resolveCmd)
}

// buildResolver wires the resolver's collaborators from configuration and
// flags. The returned cleanup releases any backing resources.
func buildResolver(cfg *config.Config, logger *slog.Logger) (*resolve.Resolver, func(), error) {
	esv := providers.NewESVClient(cfg.ESVProviderConfig(logger))
	net := providers.NewNETClient(cfg.NETProviderConfig(logger))

	mainFile := resolveMainFile
	if mainFile == "" {
		mainFile = cfg.Resolve.MainFile
	}

	rcfg := resolve.Config{
		Registry:             providers.NewRegistry(esv, net),
		Logger:               logger,
		MaxConcurrentFetches: cfg.Resolve.MaxConcurrentFetches,
		MainFile:             mainFile,
		IncludeWordStudy:     resolveWordStudy,
	}

	if a := analysis.New(cfg.AnalyzerConfig(logger)); a != nil {
		rcfg.Analyzer = a
	}

	if resolveWordStudy {
		dict, err := lexicon.Load()
		if err != nil {
			return nil, nil, err
		}
		rcfg.Lexicon = dict
	}

	cleanup := func() {}
	if resolveCommentary {
		sources := resolveSources
		if len(sources) == 0 {
			sources = cfg.Commentary.Sources
		}
		rcfg.CommentarySources = sources

		if cfg.Commentary.DBPath != "" {
			store, err := commentary.OpenStore(cfg.Commentary.DBPath, logger)
			if err != nil {
				return nil, nil, err
			}
			rcfg.Commentary = store
			cleanup = func() { store.Close() }
		} else {
			rcfg.Commentary = commentary.NewClient(cfg.CommentaryClientConfig(logger))
		}
	}

	return resolve.New(rcfg), cleanup, nil
}

// watchDir re-runs resolution whenever a .tex file under dir changes.
// Events are debounced so editor save bursts trigger a single pass; a pass
// over already-resolved sources finds no placeholders and writes nothing,
// so our own rewrites do not loop.
func watchDir(ctx context.Context, dir string, resolver *resolve.Resolver, logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("watching for changes", "dir", dir)

	var debounce *time.Timer
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".tex") {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(500 * time.Millisecond)
			} else {
				debounce.Reset(500 * time.Millisecond)
			}
			pending = debounce.C
		case <-pending:
			pending = nil
			if err := resolver.ProcessDir(ctx, dir); err != nil {
				logger.Error("resolution pass failed", "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}
