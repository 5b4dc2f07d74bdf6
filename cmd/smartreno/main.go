package main

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/smartreno/smartreno/internal/config"
	"github.com/smartreno/smartreno/internal/logger"
	"github.com/smartreno/smartreno/internal/tui/theme"
	"github.com/spf13/cobra"
)

const (
	logoText1 = "█▀ █▀▄▀█ ▄▀█ █▀█ ▀█▀ █▀█ █▀▀ █▄ █ █▀█"
	logoText2 = "▄█ █ ▀ █ █▀█ █▀▄  █  █▀▄ ██▄ █ ▀█ █▄█"
)

// Version set via ldflags during build
var version = "dev"

var rootFlags struct {
	logLevel string
	logFile  string
}

// appConfig is loaded once per invocation by the root pre-run hook.
var appConfig *config.Config

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "smartreno",
	Short:             "Book a free on-site renovation estimate from your terminal",
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
}

// loadConfig resolves configuration and applies CLI flag overrides.
func loadConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = rootFlags.logLevel
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = rootFlags.logFile
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		return err
	}
	logger.Debug("Config loaded: days_ahead=%d availability=%.2f areas=%d", cfg.DaysAhead, cfg.Availability, len(cfg.ServiceAreas))
	appConfig = cfg
	return nil
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewCatppuccinMocha()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	rootCmd.Long = renderLogo() + `

smartreno walks a homeowner through booking a free renovation estimate:
describe the project with photos, give the property address, pick an
estimator's time slot, review and confirm.

Everything runs locally against a mock scheduling backend.`

	rootCmd.PersistentFlags().StringVar(&rootFlags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&rootFlags.logFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(bookCmd)
	rootCmd.AddCommand(slotsCmd)
	rootCmd.AddCommand(setupCmd)
}
