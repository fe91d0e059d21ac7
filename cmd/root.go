package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/scholarsite/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "scholarsite",
	Short: "Personal academic homepage runtime and tooling",
	Long: `scholarsite renders a personal academic homepage from static JSON data
(site profile, publications and news) and drives its interactive widgets:
theme toggle, publication filters, abstract disclosure, BibTeX export and
the image carousel. The same page logic runs in the browser as WebAssembly
and headless from this command line.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.FileName, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
