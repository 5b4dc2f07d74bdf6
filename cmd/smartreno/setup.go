package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/smartreno/smartreno/internal/config"
	"github.com/smartreno/smartreno/internal/logger"
	"github.com/spf13/cobra"
)

// setupOptions controls which file setup writes and what goes in it.
type setupOptions struct {
	project      bool
	force        bool
	serviceAreas []string
	estimators   []string
	seed         uint64
}

var setupFlags setupOptions

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create smartreno configuration file",
	Long: `Create a smartreno configuration file with sensible defaults.

By default, creates a global config at ~/.config/smartreno/smartreno.yml.
Use --project to create a project-local config in the current directory.
An existing file is only replaced with --force, which also repairs a config
that no longer loads.`,
	Example: `  smartreno setup
  smartreno setup --project --service-area 94102,94103 --seed 7`,
	// Skips the root config load so a broken file can be overwritten.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Configure(rootFlags.logLevel, rootFlags.logFile)
	},
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVarP(&setupFlags.project, "project", "p", false, "Create config in current directory instead of global location")
	setupCmd.Flags().BoolVarP(&setupFlags.force, "force", "f", false, "Overwrite existing config file")
	setupCmd.Flags().StringSliceVar(&setupFlags.serviceAreas, "service-area", nil, "ZIP codes served (default: built-in list)")
	setupCmd.Flags().StringSliceVar(&setupFlags.estimators, "estimator", nil, "Estimator names (default: built-in pool)")
	setupCmd.Flags().Uint64Var(&setupFlags.seed, "seed", 0, "Seed for reproducible slots (0 = random)")
}

func runSetup(cmd *cobra.Command, args []string) error {
	_, err := writeSetup(cmd.OutOrStdout(), setupFlags)
	return err
}

// writeSetup writes the config described by opts and returns its path.
func writeSetup(w io.Writer, opts setupOptions) (string, error) {
	targetPath := config.GlobalPath()
	if opts.project {
		targetPath = config.ProjectPath()
	}

	if !opts.force {
		_, err := os.Stat(targetPath)
		if err == nil {
			return "", fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("checking %s: %w", targetPath, err)
		}
	}

	cfg := config.Defaults()
	if len(opts.serviceAreas) > 0 {
		cfg.ServiceAreas = opts.serviceAreas
	}
	if len(opts.estimators) > 0 {
		cfg.Estimators = opts.estimators
	}
	cfg.Seed = opts.seed
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	var err error
	if opts.project {
		err = config.WriteProject(cfg)
	} else {
		err = config.WriteGlobal(cfg)
	}
	if err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}
	logger.Info("Config written to %s", targetPath)

	fmt.Fprintf(w, "Config written to: %s\n", targetPath)
	fmt.Fprintf(w, "  %d service areas, %d estimators\n\n", len(cfg.ServiceAreas), len(cfg.Estimators))
	fmt.Fprintln(w, "Run 'smartreno book' to get started.")
	return targetPath, nil
}
