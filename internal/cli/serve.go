package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/evcraddock/realty-site/internal/catalogsync"
	"github.com/evcraddock/realty-site/internal/client"
	"github.com/evcraddock/realty-site/internal/clientstate"
	"github.com/evcraddock/realty-site/internal/config"
	"github.com/evcraddock/realty-site/internal/db"
	"github.com/evcraddock/realty-site/internal/logging"
	"github.com/evcraddock/realty-site/internal/property"
	"github.com/evcraddock/realty-site/internal/web"
)

func newServeCmd() *cobra.Command {
	var addr, envFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the public site API",
		Long:  "Load the catalog from the agency API (or the local snapshot when it is down) and serve the public JSON API.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), addr, envFile)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "address to listen on (default: $REALTY_ADDR or :8080)")
	cmd.Flags().StringVar(&envFile, "env-file", "", "load settings from this .env file")

	return cmd
}

func runServe(ctx context.Context, addrFlag, envFile string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	if addrFlag != "" {
		cfg.Addr = addrFlag
	}

	logOpts := logging.Options{DevMode: cfg.DevMode, Level: cfg.LogLevel}
	if cfg.Fluent.Enabled {
		logOpts.Fluent = &logging.FluentOptions{
			Host:      cfg.Fluent.Host,
			Port:      cfg.Fluent.Port,
			TagPrefix: cfg.Fluent.TagPrefix,
			Level:     cfg.Fluent.Level,
		}
	}
	closeLogs, err := logging.Setup(logOpts)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer func() {
		if err := closeLogs(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: closing log shipper: %v\n", err)
		}
	}()

	path := flagDB
	if path == "" {
		path = cfg.DBPath
	}
	if path == "" {
		if path, err = db.DefaultPath(); err != nil {
			return err
		}
	}
	database, err := db.Open(path)
	if err != nil {
		return err
	}
	defer closeDB(database)

	api := client.New(cfg.APIURL, clientstate.New(database))
	syncer := catalogsync.New(api, property.NewRepository(database))

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := syncer.Bootstrap(ctx)
	if err != nil {
		return err
	}
	slog.Info("catalog ready", "source", src, "api", cfg.APIURL)

	srv := web.NewServer(web.Options{
		Catalog:      syncer,
		Posts:        api,
		ContactPhone: cfg.ContactPhone,
		SessionTTL:   cfg.SessionTTL,
		CORSOrigins:  cfg.CORSOrigins,
		ReloadToken:  cfg.ReloadToken,
	})
	defer srv.Close()

	return srv.ListenAndServe(ctx, cfg.Addr)
}
