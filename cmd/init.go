package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/scholarsite/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create starter data files and a config with an interactive wizard",
	Long: `Runs an interactive wizard that asks for your name, affiliation and research
interests, writes data/site.json with empty publications.json and news.json
next to it, and saves a .scholarsite.yml config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
