package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/scholarsite/internal/theme"
)

var themeSystemDark bool

var themeCmd = &cobra.Command{
	Use:       "theme [show|toggle|light|dark|clear]",
	Short:     "Inspect or change the stored theme preference",
	Long:      `Reads or writes the theme preference in the state database. With no stored value the page follows the system dark-mode setting.`,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"show", "toggle", "light", "dark", "clear"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		database, err := openStateDB(cfg)
		if err != nil {
			return err
		}
		defer database.Close()
		store := theme.NewSQLStore(database)

		action := "show"
		if len(args) == 1 {
			action = args[0]
		}
		out := cmd.OutOrStdout()

		switch action {
		case "show":
			t, ok, err := theme.Stored(store)
			if err != nil {
				return fmt.Errorf("reading theme: %w", err)
			}
			if !ok {
				fmt.Fprintln(out, "unset (follows system)")
				return nil
			}
			fmt.Fprintln(out, t)
		case "toggle":
			stored, ok, err := theme.Stored(store)
			if err != nil {
				return fmt.Errorf("reading theme: %w", err)
			}
			current, _ := theme.Resolve(stored, ok, themeSystemDark)
			next := current.Opposite()
			if err := store.Save(theme.Key, string(next)); err != nil {
				return fmt.Errorf("saving theme: %w", err)
			}
			fmt.Fprintln(out, next)
		case "light", "dark":
			if err := store.Save(theme.Key, action); err != nil {
				return fmt.Errorf("saving theme: %w", err)
			}
			fmt.Fprintln(out, action)
		case "clear":
			if err := store.Delete(theme.Key); err != nil {
				return fmt.Errorf("clearing theme: %w", err)
			}
			fmt.Fprintln(out, "cleared")
		}
		return nil
	},
}

func init() {
	themeCmd.Flags().BoolVar(&themeSystemDark, "system-dark", false, "assume the system prefers dark when toggling an unset preference")
	rootCmd.AddCommand(themeCmd)
}
