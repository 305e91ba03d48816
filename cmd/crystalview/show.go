package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"crystalview/internal/crystal"
	"crystalview/internal/log"
	"crystalview/internal/render"
	"crystalview/internal/viewer"
)

// showOptions holds the flags of the show command.
type showOptions struct {
	file     string
	plain    bool
	markdown bool
	export   string
	width    int
	height   int
}

// NewShowCmd creates the show command.
func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [material-id...]",
		Short: "Print properties and plots of one or more materials",
		Long: `Fetch one or more materials concurrently and print a report with the
property lines, the 3D view and the 2D projection of each.

The report is markdown rendered for the terminal by default; --markdown
prints the raw markdown and --plain prints text without colors. The
command fails only when no material could be fetched.`,
		Example: `  crystalview show mp-66
  crystalview show mp-66 mp-149 mp-256 --markdown > report.md
  crystalview show --file ./POSCAR --plain
  crystalview show mp-66 --export mp-66.json`,
		RunE: runShow,
	}
	cmd.Flags().StringP("file", "f", "", "Load the structure from a local pymatgen JSON or POSCAR file")
	cmd.Flags().Bool("plain", false, "Print plain text without colors")
	cmd.Flags().BoolP("markdown", "m", false, "Print the raw markdown report")
	cmd.Flags().StringP("export", "e", "", "Write the fetched structure as pymatgen JSON to this file ('-' for stdout)")
	cmd.Flags().Int("width", 80, "Plot width in cells")
	cmd.Flags().Int("height", 20, "Plot height in cells")
	return cmd
}

func showOptionsFrom(cmd *cobra.Command) (showOptions, error) {
	var (
		o   showOptions
		err error
	)
	flags := cmd.Flags()
	if o.file, err = flags.GetString("file"); err != nil {
		return o, err
	}
	if o.plain, err = flags.GetBool("plain"); err != nil {
		return o, err
	}
	if o.markdown, err = flags.GetBool("markdown"); err != nil {
		return o, err
	}
	if o.export, err = flags.GetString("export"); err != nil {
		return o, err
	}
	if o.width, err = flags.GetInt("width"); err != nil {
		return o, err
	}
	if o.height, err = flags.GetInt("height"); err != nil {
		return o, err
	}
	return o, nil
}

func runShow(cmd *cobra.Command, args []string) error {
	opts, err := showOptionsFrom(cmd)
	if err != nil {
		return err
	}
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	ids := args
	if len(ids) == 0 {
		ids = []string{cfg.DefaultMaterial}
		if opts.file != "" {
			ids = []string{""}
		}
	}
	if opts.export != "" && len(ids) != 1 {
		return errors.New("--export takes exactly one material")
	}

	logger := log.New(cmd.ErrOrStderr(), cfg.Verbose, cfg.APIKey)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	results := newEvaluator(cfg, opts.file, logger).EvaluateAll(ctx, ids, cfg.Concurrency)
	for _, r := range results {
		if r.Err != nil {
			logger.Warn("material failed", zap.String("id", r.ID), zap.Error(r.Err))
		}
	}
	if viewer.Failed(results) {
		var fe *viewer.FetchError
		if errors.As(results[0].Err, &fe) && len(results) == 1 {
			return errors.New(fe.Message())
		}
		return errAllFailed
	}

	if opts.export != "" {
		return exportStructure(cmd.OutOrStdout(), opts.export, results[0].Page.Structure)
	}
	return writeReport(cmd.OutOrStdout(), results, opts)
}

func writeReport(w io.Writer, results []viewer.Result, opts showOptions) error {
	ropts := viewer.ReportOptions{Camera: render.DefaultCamera(), Width: opts.width, Height: opts.height}
	switch {
	case opts.markdown:
		return viewer.WriteMarkdown(w, results, ropts)
	case opts.plain:
		return writePlain(w, results, ropts)
	}

	var buf bytes.Buffer
	if err := viewer.WriteMarkdown(&buf, results, ropts); err != nil {
		return err
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(opts.width+4),
	)
	if err != nil {
		return err
	}
	out, err := r.Render(buf.String())
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func writePlain(w io.Writer, results []viewer.Result, opts viewer.ReportOptions) error {
	frame := render.Frame{Width: opts.Width, Height: opts.Height, Plain: true}
	var b strings.Builder
	for i, r := range results {
		if i > 0 {
			b.WriteString("\n")
		}
		if r.Err != nil {
			var fe *viewer.FetchError
			if errors.As(r.Err, &fe) {
				fmt.Fprintf(&b, "%s: %s\n", r.ID, fe.Message())
			} else {
				fmt.Fprintf(&b, "%s: %v\n", r.ID, r.Err)
			}
			continue
		}
		props := r.Page.Properties
		b.WriteString(props.Header() + "\n")
		for _, l := range props.Lines() {
			b.WriteString("  " + l + "\n")
		}
		b.WriteString("\n" + render.Plot3D(r.Page.Scene3D, opts.Camera, frame) + "\n\n")
		b.WriteString(render.Plot2D(r.Page.Scene2D, frame) + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func exportStructure(stdout io.Writer, path string, s *crystal.Structure) error {
	data, err := crystal.EncodeStructure(s)
	if err != nil {
		return err
	}
	if path == "-" {
		_, err = stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
