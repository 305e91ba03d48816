package tui

import (
	"context"
	"os"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	spinner "github.com/charmbracelet/bubbles/spinner"
	table "github.com/charmbracelet/bubbles/table"
	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"crystalview/internal/config"
	"crystalview/internal/mp"
	"crystalview/internal/render"
	"crystalview/internal/viewer"
)

const sidebarWidth = 32

// paneMode selects which plots the main pane shows.
type paneMode int

const (
	paneBoth paneMode = iota
	pane3D
	pane2D
)

// Options configure a Model.
type Options struct {
	// InitialID is fetched on startup when not empty.
	InitialID string
	// Materials fill the suggested list.
	Materials []config.Material
	// Dir is scanned for local structure files; empty means the working
	// directory.
	Dir string
	// Timeout bounds a single evaluation; zero means no bound.
	Timeout time.Duration
	Logger  *zap.Logger
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool
	showSites   bool
	mode        paneMode

	cam render.Camera

	status    string
	statusErr bool

	// identifier input
	inputMode bool
	ti        textinput.Model

	// suggested materials and local files
	dir   string
	l     list.Model
	items []list.Item

	// evaluation
	ev      *viewer.Evaluator
	active  *viewer.Evaluator // evaluator of the last fetch
	logger  *zap.Logger
	timeout time.Duration
	seq     int
	loading bool
	pending string
	page    *viewer.Page
	spin    spinner.Model

	// mouse drag rotation
	dragging bool
	lastX    int
	lastY    int

	// sites table
	tbl table.Model
}

// New returns a Model evaluating identifiers with ev.
func New(ev *viewer.Evaluator, opts Options) Model {
	m := Model{
		showSidebar: true,
		helpVisible: true,
		cam:         render.DefaultCamera(),
		status:      "crystalview ready",
		ev:          ev,
		active:      ev,
		logger:      opts.Logger,
		timeout:     opts.Timeout,
		dir:         opts.Dir,
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	if m.dir == "" {
		m.dir, _ = os.Getwd()
	}

	m.ti = textinput.New()
	m.ti.Placeholder = config.DefaultMaterial
	m.ti.Prompt = "› "
	m.ti.CharLimit = 64
	m.ti.Width = sidebarWidth - 6
	m.ti.SetValue(opts.InitialID)

	d := list.NewDefaultDelegate()
	d.SetSpacing(0)
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Suggested Materials"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	m.refreshItems(opts.Materials)

	m.spin = spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(titleStyle))

	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)

	if opts.InitialID != "" {
		m.seq = 1
		m.loading = true
		m.pending = opts.InitialID
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if !m.loading {
		return nil
	}
	return tea.Batch(m.fetchCmd(m.ev, m.seq, m.pending), m.spin.Tick)
}

// pageMsg carries the outcome of one evaluation.
type pageMsg struct {
	seq  int
	id   string
	page *viewer.Page
	err  error
}

// fetchCmd evaluates id off the UI goroutine.
func (m Model) fetchCmd(ev *viewer.Evaluator, seq int, id string) tea.Cmd {
	timeout := m.timeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		page, err := ev.Evaluate(ctx, id)
		return pageMsg{seq: seq, id: id, page: page, err: err}
	}
}

// fetch starts evaluating id. Responses of earlier fetches are dropped.
func (m Model) fetch(id string) (Model, tea.Cmd) {
	return m.fetchWith(m.ev, id)
}

// fetchFile evaluates a local structure file.
func (m Model) fetchFile(path, name string) (Model, tea.Cmd) {
	ev := viewer.New(mp.FileProvider{Path: path}, viewer.WithLogger(m.logger))
	return m.fetchWith(ev, name)
}

func (m Model) fetchWith(ev *viewer.Evaluator, id string) (Model, tea.Cmd) {
	m.seq++
	m.active = ev
	m.loading = true
	m.pending = id
	m.status = "fetching " + id
	m.statusErr = false
	m.logger.Debug("fetch requested", zap.String("id", id), zap.Int("seq", m.seq))
	return m, tea.Batch(m.fetchCmd(ev, m.seq, id), m.spin.Tick)
}
