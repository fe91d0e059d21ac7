package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/scholarsite/internal/bibtex"
	"github.com/ziadkadry99/scholarsite/internal/filter"
	"github.com/ziadkadry99/scholarsite/internal/render"
)

var (
	bibtexData   string
	bibtexSearch string
	bibtexYear   int
	bibtexTag    string
)

var bibtexCmd = &cobra.Command{
	Use:   "bibtex",
	Short: "Print BibTeX entries for publications",
	Long: `Prints a BibTeX entry for every publication matching the filters, newest
first, in the same format the page copies to the clipboard.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		_, data, err := loadData(cmd.Context(), bibtexData, cfg, stderrLogger(cfg))
		if err != nil {
			return err
		}
		if data.Publications == nil {
			return errors.New("publications data could not be loaded")
		}

		matches := filter.Apply(filter.SortByYear(data.Publications), filter.Criteria{
			Text: bibtexSearch,
			Year: bibtexYear,
			Tag:  bibtexTag,
		})
		if len(matches) == 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), render.MsgNoResults)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), bibtex.Entries(matches))
		return nil
	},
}

func init() {
	bibtexCmd.Flags().StringVar(&bibtexData, "data", "", "data directory or http(s) base URL (default: data_dir)")
	bibtexCmd.Flags().StringVar(&bibtexSearch, "search", "", "match title, venue, authors or tags")
	bibtexCmd.Flags().IntVar(&bibtexYear, "year", 0, "only this year")
	bibtexCmd.Flags().StringVar(&bibtexTag, "tag", "", "only publications with this tag")
	rootCmd.AddCommand(bibtexCmd)
}
