// Package cli wires the editor's operations into a cobra command tree. Each
// command opens the durable store, builds an editing session around it, and
// performs exactly one operation against the single document.
package cli

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"invoicepad/internal/config"
	"invoicepad/internal/editor"
	"invoicepad/internal/storage"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Format     string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the invoicepad CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "invoicepad",
		Short: "invoicepad - single-document invoice editor",
		Long: `An invoice editor with live derived totals, durable local storage
and JSON export/import. The HTTP editing surface is started with "serve";
the remaining commands operate on the same stored document directly.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", ".", "directory holding config.yaml")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewPDFCommand(opts))
	cmd.AddCommand(NewResetCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// env bundles the pieces every command needs.
type env struct {
	cfg  config.Config
	log  *logrus.Logger
	repo storage.Repository
	sess *editor.Session
}

// openEnv loads configuration, opens the document store and builds the
// editing session. The returned cleanup closes the store.
func openEnv(ctx context.Context, opts *RootOptions) (*env, func(), error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, nil, err
	}

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	repo, err := storage.NewBadgerRepository(cfg.DataDir, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open document store: %w", err)
	}

	e := &env{
		cfg:  cfg,
		log:  log,
		repo: repo,
		sess: editor.NewSession(ctx, repo, log),
	}
	cleanup := func() {
		if err := repo.Close(); err != nil {
			log.WithError(err).Error("Error closing document store")
		}
	}
	return e, cleanup, nil
}
