package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"crystalview/internal/log"
	"crystalview/internal/web"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the viewer as a web page",
		Long: `Serve the viewer over HTTP. The page at / takes the material ID from the
id query parameter; /api/structures/{id} returns the properties and both
scenes as JSON.`,
		Example: `  crystalview serve
  crystalview serve --listen :8080`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	cmd.Flags().StringP("listen", "l", "", "Listen address (default from config, 127.0.0.1:8501)")
	cmd.Flags().StringP("file", "f", "", "Serve a local pymatgen JSON or POSCAR file for every ID")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	listen, err := cmd.Flags().GetString("listen")
	if err != nil {
		return err
	}
	if listen == "" {
		listen = cfg.Listen
	}
	file, err := cmd.Flags().GetString("file")
	if err != nil {
		return err
	}

	logger := log.New(cmd.ErrOrStderr(), cfg.Verbose, cfg.APIKey)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := web.New(newEvaluator(cfg, file, logger), web.Options{
		DefaultID: cfg.DefaultMaterial,
		Materials: cfg.Materials,
		Logger:    logger,
	})
	return srv.Serve(ctx, listen)
}
