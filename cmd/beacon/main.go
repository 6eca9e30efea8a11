package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/michaelpawlus/990-beacon/internal/cli"
	"github.com/michaelpawlus/990-beacon/internal/common"
	"github.com/michaelpawlus/990-beacon/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// interactiveAnnotation marks commands that take over the terminal, so their
// logs are written to a file instead of stderr.
const interactiveAnnotation = "interactive"

var (
	cfgFile   string
	version   = "dev"
	appConfig config.Config
	logFile   io.Closer
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "beacon",
		Short: "◉ 990 Beacon: nonprofit financials from IRS 990 filings",
		Long: `beacon searches tax-exempt organizations, shows the financial profile
computed from their IRS Form 990 filings, and reports your account usage.

Run without a subcommand to open the interactive dashboard.`,
		Annotations:       map[string]string{interactiveAnnotation: "true"},
		PersistentPreRunE: initConfig,
		RunE:              runDashboard,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
	dashboardFlags(root)

	// Global flags
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/beacon/config.yaml)")
	root.PersistentFlags().String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", config.DefaultLogFormat, "log format (console, json)")
	root.PersistentFlags().String("log-file", "", "log file used while the dashboard is open")
	root.PersistentFlags().String("api-url", "", "API base URL (default "+config.DefaultBaseURL+")")
	root.PersistentFlags().String("token", "", "bearer token for the API")

	// Bind flags to viper
	_ = viper.BindPFlag("logging.level", root.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", root.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("logging.file", root.PersistentFlags().Lookup("log-file"))
	_ = viper.BindPFlag("api.base_url", root.PersistentFlags().Lookup("api-url"))
	_ = viper.BindPFlag("auth.token", root.PersistentFlags().Lookup("token"))

	// Add commands
	root.AddCommand(dashboardCmd())
	root.AddCommand(searchCmd())
	root.AddCommand(suggestCmd())
	root.AddCommand(orgCmd())
	root.AddCommand(usageCmd())
	root.AddCommand(whoamiCmd())
	root.AddCommand(healthCmd())
	root.AddCommand(versionCmd())

	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if logFile != nil {
		_ = logFile.Close()
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(errorMessage(err)))
		os.Exit(1)
	}
}

// errorMessage prefers the user-facing text of a UserError. The underlying
// cause is logged at debug level.
func errorMessage(err error) string {
	var userErr *common.UserError
	if errors.As(err, &userErr) {
		slog.Debug("command failed", "error", userErr.Err)
		return userErr.UserMessage
	}
	return err.Error()
}

func initConfig(cmd *cobra.Command, _ []string) error {
	// .env values never override variables already set in the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(config.Dir())
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(config.EnvKeyReplacer())
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	appConfig = cfg

	if err := setupLogging(cmd, cfg.Logging); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	return nil
}

func setupLogging(cmd *cobra.Command, cfg config.LoggingConfig) error {
	level, err := common.ParseLevel(cfg.Level)
	if err != nil {
		return err
	}
	if cfg.Format != "console" && cfg.Format != "json" {
		return fmt.Errorf("%w: invalid log format: %s", common.ErrInvalidConfig, cfg.Format)
	}

	var w io.Writer = cmd.ErrOrStderr()
	if cmd.Annotations[interactiveAnnotation] == "true" && cfg.File != "" {
		f, err := common.OpenLogFile(cfg.File)
		if err != nil {
			return err
		}
		logFile = f
		w = f
	}

	common.SetupLogger(w, level, cfg.Format)
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "beacon %s\n", version)
			return err
		},
	}
}
