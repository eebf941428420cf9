// internal/tui/app.go
//
// This is the main TUI for the cover letter wizard.
// It uses bubbletea, which follows The Elm Architecture:
//
// 1. Model: the App, which owns one wizard.Controller
// 2. Update: routes messages to the screen for the current step
// 3. View: renders the current screen with the progress bar and log panel
//
// Screens never write the session store directly. They call the controller,
// and the App notices the step change and enters the next screen.

package tui

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/coverwizard/internal/analyzer"
	"github.com/kingrea/coverwizard/internal/logbook"
	"github.com/kingrea/coverwizard/internal/session"
	"github.com/kingrea/coverwizard/internal/wizard"
)

const logPanelLines = 8

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithClipboard overrides the clipboard writer used by the preview screen.
func WithClipboard(write func(string) error) AppOption {
	return func(a *App) {
		if write != nil {
			a.env.clipboard = write
		}
	}
}

// WithFileLoader overrides how a typed resume path becomes an upload.
func WithFileLoader(load func(string) (wizard.Upload, error)) AppOption {
	return func(a *App) {
		if load != nil {
			a.env.loadFile = load
		}
	}
}

// WithLogbook attaches the journal tailed in the log panel.
func WithLogbook(book *logbook.Logbook) AppOption {
	return func(a *App) {
		a.logbook = book
	}
}

// WithExportDir sets where downloaded letters are written.
func WithExportDir(dir string) AppOption {
	return func(a *App) {
		a.env.exportDir = dir
	}
}

// WithCopyFlash sets how long "Copied!" stays visible.
func WithCopyFlash(d time.Duration) AppOption {
	return func(a *App) {
		if d >= 0 {
			a.env.flashFor = d
		}
	}
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	env     *env
	cancel  context.CancelFunc
	logbook *logbook.Logbook

	welcome    *welcomeScreen
	resume     *resumeScreen
	job        *jobScreen
	generating *generatingScreen
	preview    *previewScreen

	step   wizard.Step
	width  int
	height int
}

// NewApp opens the session for projectDir and builds the App around it.
func NewApp(projectDir string, opts ...AppOption) (*App, error) {
	s, err := session.Open(projectDir)
	if err != nil {
		return nil, err
	}
	base := []AppOption{
		WithLogbook(s.Logbook),
		WithExportDir(s.Config.ExportDir()),
	}
	return New(s.Controller, append(base, opts...)...), nil
}

// New builds an App around an existing controller.
func New(ctrl *wizard.Controller, opts ...AppOption) *App {
	ctx, cancel := context.WithCancel(context.Background())
	e := &env{
		ctx:       ctx,
		ctrl:      ctrl,
		loadFile:  analyzer.LoadFile,
		clipboard: clipboard.WriteAll,
		exportDir: ".",
		flashFor:  defaultCopyFlash,
	}
	a := &App{
		env:        e,
		cancel:     cancel,
		welcome:    newWelcomeScreen(e),
		resume:     newResumeScreen(e),
		job:        newJobScreen(e),
		generating: newGeneratingScreen(e),
		preview:    newPreviewScreen(e),
		step:       ctrl.Step(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Controller exposes the wizard session driven by the App.
func (a *App) Controller() *wizard.Controller {
	return a.env.ctrl
}

// screenFor maps every step onto its screen.
func (a *App) screenFor(step wizard.Step) screen {
	switch step {
	case wizard.StepWelcome:
		return a.welcome
	case wizard.StepResume:
		return a.resume
	case wizard.StepJob:
		return a.job
	case wizard.StepGenerating:
		return a.generating
	case wizard.StepPreview:
		return a.preview
	}
	return nil
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	if s := a.screenFor(a.step); s != nil {
		return s.enter()
	}
	return nil
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a.quit()
		case "q":
			if a.step == wizard.StepWelcome {
				return a.quit()
			}
		}
	}

	var cmds []tea.Cmd
	if s := a.screenFor(a.step); s != nil {
		if cmd := s.update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if cmd := a.syncStep(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

// syncStep enters the screen for the controller's step when it changed.
func (a *App) syncStep() tea.Cmd {
	if a.env.ctrl.Step() == a.step {
		return nil
	}
	a.step = a.env.ctrl.Step()
	if s := a.screenFor(a.step); s != nil {
		return s.enter()
	}
	return nil
}

func (a *App) quit() (tea.Model, tea.Cmd) {
	a.env.ctrl.CancelPending()
	a.cancel()
	if a.logbook != nil {
		a.logbook.Info("Session %s closed on %s", a.env.ctrl.Store().ID(), a.step)
	}
	return a, tea.Quit
}

// View renders the current state.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}
	contentWidth := max(40, width-4)

	header := titleStyle.Render("✉ COVER LETTER WIZARD")
	sections := []string{header}
	if bar := renderProgress(a.step); bar != "" {
		sections = append(sections, bar)
	}
	s := a.screenFor(a.step)
	if s == nil {
		sections = append(sections, errorStyle.Render("unknown step "+a.step.String()))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}
	sections = append(sections, "", s.view(contentWidth))
	if logPanel := a.renderLogPanel(contentWidth); logPanel != "" {
		sections = append(sections, "", logPanel)
	}
	sections = append(sections, "", hintStyle.Render(s.help()+" • ctrl+c: quit"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *App) renderLogPanel(width int) string {
	if a.logbook == nil {
		return ""
	}
	lines, total := a.logbook.Tail(logPanelLines)
	if len(lines) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(lines))
	for _, line := range lines {
		entry, ok := logbook.ParseLine(line)
		if !ok {
			rendered = append(rendered, bodyStyle.Render(line))
			continue
		}
		style := bodyStyle
		switch entry.Level {
		case logbook.LevelWarn:
			style = lipgloss.NewStyle().Foreground(colorWarn)
		case logbook.LevelError:
			style = errorStyle
		}
		rendered = append(rendered, style.Render(entry.Time.Local().Format("15:04:05")+" "+entry.Message))
	}
	head := headStyle.Render("Session log")
	if total > len(lines) {
		head += hintStyle.Render("  (latest of " + strconv.Itoa(total) + ")")
	}
	return panelStyle.Width(width).Render(head + "\n" + strings.Join(rendered, "\n"))
}
