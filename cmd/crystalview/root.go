package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"crystalview/internal/config"
	"crystalview/internal/mp"
	"crystalview/internal/viewer"
)

// NewRootCmd creates the root command for crystalview. Without a
// subcommand it starts the terminal viewer.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crystalview",
		Short: "Fetch and visualize crystal structures from the Materials Project",
		Long: `crystalview fetches a crystal structure record by material ID, shows its
formula, lattice parameters, lattice angles, space group and composition,
and draws a 3D view of the atomic sites with the lattice vectors plus a 2D
projection of the fractional coordinates.

The API key is read from --api-key, MP_API_KEY, PMG_MAPI_KEY or the
api_key entry of the config file.`,
		Version:       getVersion(),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, args, "")
		},
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().StringP("config", "c", "", "Config file (default $XDG_CONFIG_HOME/crystalview/config.yaml)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().String("api-key", "", "Materials Project API key")
	cmd.PersistentFlags().String("endpoint", "", "Materials Project API endpoint")

	cmd.AddCommand(NewViewCmd())
	cmd.AddCommand(NewShowCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildConfig layers the persistent flags over the loaded configuration.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Root().PersistentFlags()

	path, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if flags.Changed("api-key") {
		if cfg.APIKey, err = flags.GetString("api-key"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("endpoint") {
		if cfg.Endpoint, err = flags.GetString("endpoint"); err != nil {
			return nil, err
		}
	}
	if cfg.Verbose, err = flags.GetBool("verbose"); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newEvaluator wires a provider for cfg: the local file when one is given,
// the Materials Project API otherwise.
func newEvaluator(cfg *config.Config, file string, logger *zap.Logger) *viewer.Evaluator {
	var p mp.Provider
	if file != "" {
		p = mp.FileProvider{Path: file}
	} else {
		p = mp.NewClient(cfg.APIKey,
			mp.WithEndpoint(cfg.Endpoint),
			mp.WithTimeout(cfg.Timeout),
			mp.WithLogger(logger),
		)
	}
	return viewer.New(p, viewer.WithLogger(logger))
}

// errAllFailed is returned by show when no identifier could be fetched.
var errAllFailed = errors.New("no material could be fetched")
