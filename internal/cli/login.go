package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/realty-site/internal/client"
	"github.com/evcraddock/realty-site/internal/clientstate"
	"github.com/evcraddock/realty-site/internal/validation"
)

func newLoginCmd() *cobra.Command {
	var server, email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the agency API",
		Long:  "Exchanges an email and password for an access token and stores the session locally. The password is read from stdin when --password is not given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd.Context(), os.Stdin, server, email, password)
		},
	}

	cmd.Flags().StringVar(&server, "server", "", "API URL to save (default: from config or http://localhost:8000)")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")

	return cmd
}

func runLogin(ctx context.Context, in io.Reader, serverFlag, email, password string) error {
	reader := bufio.NewReader(in)
	if email == "" {
		fmt.Print("Email: ")
		line, err := readLine(reader)
		if err != nil {
			return err
		}
		email = line
	}
	if password == "" {
		fmt.Print("Password: ")
		line, err := readLine(reader)
		if err != nil {
			return err
		}
		password = line
	}

	creds := client.Credentials{Email: email, Password: password}
	if err := validation.Struct(creds); err != nil {
		return err
	}

	if serverFlag != "" {
		// Load existing config to preserve other fields
		cfg, err := loadConfig()
		if err != nil {
			cfg = CLIConfig{}
		}
		cfg.ServerURL = serverFlag
		if err := saveConfig(cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
	}

	state, database, err := openState()
	if err != nil {
		return err
	}
	defer closeDB(database)

	tokens, err := client.New(getServerURL(), nil).Login(ctx, creds)
	if err != nil {
		return err
	}

	err = state.SaveSession(clientstate.Tokens{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, email)
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s.\n", email)
	return nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
