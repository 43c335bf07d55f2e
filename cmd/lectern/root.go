package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pulpitworks/lectern/version"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "lectern",
	Short: "Scripture placeholder resolution for LaTeX book projects",
	Long: `Lectern scans LaTeX sources for [[scripture:...]] placeholders, fetches
the referenced passages from the ESV or NET Bible APIs, translates the
provider markup into scripture.sty macros, and splices the rendered
passages back into the sources.

It can also synthesize trailing appendices:
  - A Greek word study built from Strong's numbers found in NET markup
  - Commentary notes pulled from classic public-domain commentaries`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.lectern/config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "enable debug logging",
	)

	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the process logger honoring --verbose.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}
