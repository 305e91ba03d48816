package main

import (
	"fmt"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"crystalview/internal/config"
	"crystalview/internal/log"
	"crystalview/internal/tui"
)

// logFile is the viewer's log inside the XDG state directory.
const logFile = "crystalview.log"

// NewViewCmd creates the view command.
func NewViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [material-id]",
		Short: "Open the interactive terminal viewer",
		Long: `Open the interactive terminal viewer. The material is fetched on startup;
further IDs are entered in the sidebar or picked from the suggested list.

Logs go to $XDG_STATE_HOME/crystalview/crystalview.log since the viewer
owns the terminal.`,
		Example: `  crystalview view mp-66
  crystalview view --file ./POSCAR`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := cmd.Flags().GetString("file")
			if err != nil {
				return err
			}
			return runView(cmd, args, file)
		},
	}
	cmd.Flags().StringP("file", "f", "", "Load the structure from a local pymatgen JSON or POSCAR file")
	return cmd
}

func runView(cmd *cobra.Command, args []string, file string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	path, err := config.StatePath(logFile)
	if err != nil {
		return fmt.Errorf("log file: %w", err)
	}
	logger, closeLog, err := log.NewFile(path, cfg.Verbose, cfg.APIKey)
	if err != nil {
		return fmt.Errorf("log file: %w", err)
	}
	defer func() { _ = closeLog() }()
	defer func() { _ = logger.Sync() }()

	id := cfg.DefaultMaterial
	if len(args) > 0 {
		id = args[0]
	}
	logger.Info("viewer starting", zap.String("id", id), zap.String("file", file), zap.String("config", cfg.Path))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
	defer stop()

	m := tui.New(newEvaluator(cfg, file, logger), tui.Options{
		InitialID: id,
		Materials: cfg.Materials,
		Timeout:   cfg.Timeout,
		Logger:    logger,
	})
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
