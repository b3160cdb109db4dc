// Package cli defines the cobra command tree for realty.
package cli

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evcraddock/realty-site/internal/catalogsync"
	"github.com/evcraddock/realty-site/internal/client"
	"github.com/evcraddock/realty-site/internal/clientstate"
	"github.com/evcraddock/realty-site/internal/db"
	"github.com/evcraddock/realty-site/internal/property"
)

var (
	flagFormat string
	flagDB     string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "realty",
		Short:         "Browse and manage the agency's property catalog",
		Long:          "A tool to search the property catalog, manage listings, blog posts and admin users through the agency API, and serve the public site.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default: ~/.config/realty/state.db)")

	root.AddCommand(
		newServeCmd(),
		newSearchCmd(),
		newCategoriesCmd(),
		newPropertyCmd(),
		newPostCmd(),
		newUserCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newStatusCmd(),
		newUploadCmd(),
		newContactCmd(),
		newThemeCmd(),
		newVersionCmd(),
	)

	return root
}

// openDB opens the SQLite database using the --db flag or default path.
func openDB() (*sql.DB, error) {
	path := flagDB
	if path == "" {
		var err error
		path, err = db.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return db.Open(path)
}

// openState opens the database and wraps it in the client state store.
func openState() (*clientstate.Store, *sql.DB, error) {
	database, err := openDB()
	if err != nil {
		return nil, nil, err
	}
	return clientstate.New(database), database, nil
}

// newAPIClient creates an HTTP client for the agency API that sends the
// stored access token.
func newAPIClient(tokens client.TokenSource) *client.Client {
	return client.New(getServerURL(), tokens)
}

// newSyncer wires the API client to the local catalog snapshot.
func newSyncer(state *clientstate.Store, database *sql.DB) *catalogsync.Syncer {
	return catalogsync.New(newAPIClient(state), property.NewRepository(database))
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// closeDB closes the database, logging any error to stderr.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
	}
}
