package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/evcraddock/realty-site/internal/client"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check connection and session status",
		Long:  "Shows the stored session and tests the connection to the agency API.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.Context())
		},
	}
}

func runStatus(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	state, database, err := openState()
	if err != nil {
		return err
	}
	defer closeDB(database)

	serverURL := getServerURL()
	fmt.Printf("Server:  %s\n", serverURL)

	profile, ok, err := state.Profile()
	if err != nil {
		return err
	}
	if ok {
		fmt.Printf("User:    %s\n", profile.Email)
		exp, hasExp, err := state.AccessTokenExpiry()
		switch {
		case err != nil:
			fmt.Printf("Token:   unreadable (%v)\n", err)
		case !hasExp:
			fmt.Println("Token:   no expiry")
		case time.Now().After(exp):
			fmt.Printf("Token:   expired %s\n", exp.Local().Format(time.DateTime))
		default:
			fmt.Printf("Token:   valid until %s\n", exp.Local().Format(time.DateTime))
		}
	} else {
		fmt.Println("User:    not logged in")
	}

	theme, err := state.Theme()
	if err != nil {
		return err
	}
	fmt.Printf("Theme:   %s\n", theme)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	props, err := client.New(serverURL, state).ListProperties(ctx)
	switch {
	case err == nil:
		fmt.Printf("Status:  ✓ connected (%d listings)\n", len(props))
	case errors.Is(err, client.ErrUnauthorized):
		fmt.Println("Status:  ✗ session rejected")
		fmt.Println("\nRun 'realty login' to re-authenticate.")
	default:
		fmt.Printf("Status:  ✗ %v\n", err)
	}

	return nil
}
