package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/realty-site/internal/clientstate"
)

func newThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark]",
		Short:     "Show or set the back-office theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(clientstate.ThemeLight), string(clientstate.ThemeDark)},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTheme(args)
		},
	}
}

func runTheme(args []string) error {
	state, database, err := openState()
	if err != nil {
		return err
	}
	defer closeDB(database)

	if len(args) == 1 {
		if err := state.SetTheme(clientstate.Theme(args[0])); err != nil {
			return err
		}
	}

	theme, err := state.Theme()
	if err != nil {
		return err
	}
	if isJSON() {
		return printJSON(map[string]string{"theme": string(theme)})
	}
	fmt.Println(theme)
	return nil
}
