// Virtual Drive - simulated southbound driver for the device event bus.
//
// The binary connects to the local MQTT broker, publishes a snapshot of every
// configured measure on ds2/eventbus/south/read/ and answers write requests
// from ds2/eventbus/south/write/+. Everything runs on one reactor goroutine.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/inhandnet/MobiusPi-Project-Templates/internal/infrastructure/config"
	"github.com/inhandnet/MobiusPi-Project-Templates/internal/infrastructure/logging"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Installation defaults of the application on the gateway.
const (
	defaultAppBase = "/var/user"
	defaultAppName = "Virtual_Drive_Demo"
)

// configEnv names the environment variable that overrides the config location.
const configEnv = "VIRTUALDRIVE_CONFIG"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options holds the command-line flags.
type options struct {
	configPath string
	appBase    string
	appName    string
}

func newRootCmd() *cobra.Command {
	opts := options{}

	cmd := &cobra.Command{
		Use:           "virtualdrive",
		Short:         "Virtual Drive - simulated measure driver on the MQTT event bus",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "configuration file (overrides the app-base lookup)")
	flags.StringVar(&opts.appBase, "app-base", defaultAppBase, "application base directory holding cfg/ and app/")
	flags.StringVar(&opts.appName, "app-name", defaultAppName, "application name used to locate its configuration")

	cmd.AddCommand(newAuditCmd(&opts))

	return cmd
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//   - opts: Parsed command-line flags
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context, opts options) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Virtual Drive",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath(opts)
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	app, cleanup, err := initializeApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	return app.Run(ctx)
}

// getConfigPath returns the configuration file path.
//
// Priority: --config flag, then VIRTUALDRIVE_CONFIG, then the deployed file
// under --app-base with the packaged default as fallback.
func getConfigPath(opts options) string {
	if opts.configPath != "" {
		return opts.configPath
	}
	if path := os.Getenv(configEnv); path != "" {
		return path
	}
	return config.Locate(opts.appBase, opts.appName)
}
