package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/inhandnet/MobiusPi-Project-Templates/internal/audit"
	"github.com/inhandnet/MobiusPi-Project-Templates/internal/infrastructure/config"
	"github.com/inhandnet/MobiusPi-Project-Templates/internal/infrastructure/database"
)

func newAuditCmd(opts *options) *cobra.Command {
	var filter audit.Filter

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "List the write requests recorded by the driver, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAudit(cmd.Context(), *opts, filter, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&filter.Action, "action", "", "only entries with this action ("+audit.ActionApplied+" or "+audit.ActionRejected+")")
	flags.StringVar(&filter.Controller, "controller", "", "only entries for this controller")
	flags.StringVar(&filter.Measure, "measure", "", "only entries for this measure")
	flags.IntVar(&filter.Limit, "limit", 50, "maximum number of entries (up to 200)")
	flags.IntVar(&filter.Offset, "offset", 0, "number of entries to skip")

	return cmd
}

// runAudit prints one page of the write audit as JSON.
func runAudit(ctx context.Context, opts options, filter audit.Filter, out io.Writer) error {
	cfg, err := config.Load(getConfigPath(opts))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close() //nolint:errcheck // read-only use

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	result, err := audit.NewSQLiteRepository(db.DB).List(ctx, filter)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
