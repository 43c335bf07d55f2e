package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pulpitworks/lectern/internal/config"
	"github.com/pulpitworks/lectern/internal/latex"
	"github.com/pulpitworks/lectern/internal/providers"
)

var (
	lookupVersion   string
	lookupHeadings  bool
	lookupNoVerses  bool
	lookupFootnotes bool
	lookupNoLinks   bool
	lookupRaw       bool
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <reference>",
	Short: "Fetch and print a single passage",
	Long: `Fetch one passage and print the rendered scripture environment to
stdout. Useful for previewing what a placeholder will expand to.

Examples:
  lectern lookup "John 3:16"
  lectern lookup "Psalm 23" --version NET
  lectern lookup "Romans 8:28-30" --headings --raw`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := newLogger()

		cm, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cfg := cm.Get()

		version, err := providers.ParseVersion(lookupVersion)
		if err != nil {
			return err
		}

		esv := providers.NewESVClient(cfg.ESVProviderConfig(logger))
		net := providers.NewNETClient(cfg.NETProviderConfig(logger))
		provider, err := providers.NewRegistry(esv, net).ForVersion(version)
		if err != nil {
			return err
		}

		opts := providers.DefaultLookupOptions()
		opts.IncludeHeadings = lookupHeadings
		opts.IncludeVerseNumbers = !lookupNoVerses
		opts.IncludeFootnotes = lookupFootnotes
		opts.SuppressCrossRefLinks = lookupNoLinks

		result, err := provider.Fetch(ctx, args[0], opts)
		if err != nil {
			return err
		}

		if lookupRaw {
			fmt.Println(result.Text)
			return nil
		}

		canonical := result.CanonicalOrReference()
		body, _ := latex.Translate(result.Text, canonical, opts)
		fmt.Println(latex.RenderPassage(canonical, version, body))
		return nil
	},
}

func init() {
	lookupCmd.Flags().StringVar(&lookupVersion, "version", "ESV", "translation: ESV or NET")
	lookupCmd.Flags().BoolVar(&lookupHeadings, "headings", false, "include section headings")
	lookupCmd.Flags().BoolVar(&lookupNoVerses, "no-verses", false, "omit verse numbers")
	lookupCmd.Flags().BoolVar(&lookupFootnotes, "footnotes", false, "include footnotes")
	lookupCmd.Flags().BoolVar(&lookupNoLinks, "nolinks", false, "suppress Strong's hyperlinks")
	lookupCmd.Flags().BoolVar(&lookupRaw, "raw", false, "print provider text before markup translation")

	rootCmd.AddCommand(lookupCmd)
}
