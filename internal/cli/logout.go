package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Long:  "Removes the stored access and refresh tokens. The theme preference is kept.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout()
		},
	}
}

func runLogout() error {
	state, database, err := openState()
	if err != nil {
		return err
	}
	defer closeDB(database)

	_, ok, err := state.Profile()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Not logged in.")
		return nil
	}

	if err := state.Clear(); err != nil {
		return err
	}

	fmt.Println("✓ Logged out.")
	return nil
}
