package viewer

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"crystalview/internal/render"
)

// ReportOptions controls the plots embedded in a markdown report.
type ReportOptions struct {
	Camera render.Camera
	Width  int
	Height int
}

// DefaultReportOptions returns an 80x20 frame seen from the default camera.
func DefaultReportOptions() ReportOptions {
	return ReportOptions{Camera: render.DefaultCamera(), Width: 80, Height: 20}
}

// WriteMarkdown writes every result as a markdown section: a property table
// and both plots as plain text blocks. Failed results get a caution alert.
func WriteMarkdown(w io.Writer, results []Result, opts ReportOptions) error {
	md := markdown.NewMarkdown(w)
	md.H1("Crystal Structure Report")
	md.PlainText("")

	for _, r := range results {
		if r.Err != nil {
			writeFailure(md, r)
			continue
		}
		writePage(md, r.Page, opts)
	}
	return md.Build()
}

func writeFailure(md *markdown.Markdown, r Result) {
	md.H2("Material: " + r.ID)
	md.PlainText("")
	var fe *FetchError
	if errors.As(r.Err, &fe) {
		md.Caution(fe.Message())
	} else {
		md.Cautionf("%v", r.Err)
	}
	md.PlainText("")
}

func writePage(md *markdown.Markdown, p *Page, opts ReportOptions) {
	props := p.Properties
	md.H2(props.Header())
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Formula", props.Formula},
			{"Lattice Parameters (a, b, c)", props.ABC()},
			{"Lattice Angles (α, β, γ)", props.Angles()},
			{"Space Group", props.SpaceGroup},
			{"Composition", props.Composition},
			{"Sites", strconv.Itoa(props.NumSites)},
			{"Volume (Å³)", fmt.Sprintf("%.4f", props.Volume)},
		},
	})
	md.PlainText("")

	frame := render.Frame{Width: opts.Width, Height: opts.Height, Plain: true}
	md.H3("3D Visualization")
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlight("text"), render.Plot3D(p.Scene3D, opts.Camera, frame))
	md.PlainText("")
	md.H3("2D Lattice Projection")
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlight("text"), render.Plot2D(p.Scene2D, frame))
	md.PlainText("")
}
