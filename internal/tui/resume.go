package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/coverwizard/internal/wizard"
)

type resumeState int

const (
	resumeIdle resumeState = iota
	resumeParsing
	resumeSuccess
	resumeError
)

const previewLines = 12

type resumeScreen struct {
	env     *env
	state   resumeState
	path    textinput.Model
	spinner spinner.Model
	task    *wizard.Task[wizard.ResumeRecord]
	parsed  wizard.ResumeRecord
	errMsg  string
}

func newResumeScreen(e *env) *resumeScreen {
	input := textinput.New()
	input.Placeholder = "path/to/resume.pdf"
	input.Prompt = "Resume file: "
	input.CharLimit = 1024
	input.Cursor.SetMode(cursor.CursorStatic)
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	return &resumeScreen{env: e, path: input, spinner: spin}
}

func (s *resumeScreen) enter() tea.Cmd {
	s.reset()
	return nil
}

func (s *resumeScreen) reset() {
	s.state = resumeIdle
	s.task = nil
	s.parsed = wizard.ResumeRecord{}
	s.errMsg = ""
	s.path.SetValue("")
	s.path.Focus()
}

func (s *resumeScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case uploadDoneMsg:
		return s.finishUpload(msg)
	case spinner.TickMsg:
		if s.state != resumeParsing {
			return nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return cmd
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return nil
}

func (s *resumeScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key == "esc" {
		_ = s.env.ctrl.Back()
		return nil
	}
	switch s.state {
	case resumeIdle:
		if key == "enter" {
			return s.beginUpload()
		}
		var cmd tea.Cmd
		s.path, cmd = s.path.Update(msg)
		return cmd
	case resumeSuccess:
		switch key {
		case "enter":
			_ = s.env.ctrl.ContinueToJob()
		case "c":
			s.reset()
		}
	case resumeError:
		switch key {
		case "enter", "r":
			s.reset()
		}
	}
	return nil
}

func (s *resumeScreen) beginUpload() tea.Cmd {
	path := strings.TrimSpace(s.path.Value())
	if path == "" {
		return nil
	}
	up, err := s.env.loadFile(path)
	if err != nil {
		s.fail(err)
		return nil
	}
	task, err := s.env.ctrl.BeginUpload(s.env.ctx, up)
	if err != nil {
		s.fail(err)
		return nil
	}
	s.task = task
	s.state = resumeParsing
	s.path.Blur()
	return tea.Batch(s.spinner.Tick, waitUpload(s.env.ctx, task))
}

func (s *resumeScreen) finishUpload(msg uploadDoneMsg) tea.Cmd {
	if msg.task != s.task || s.state != resumeParsing {
		return nil
	}
	s.task = nil
	if errors.Is(msg.err, wizard.ErrCancelled) {
		return nil
	}
	if msg.err != nil {
		s.fail(msg.err)
		return nil
	}
	if !s.env.ctrl.CompleteUpload(msg.record) {
		return nil
	}
	s.parsed = msg.record
	s.state = resumeSuccess
	return nil
}

func (s *resumeScreen) fail(err error) {
	s.state = resumeError
	s.path.Blur()
	var typeErr *wizard.UnsupportedFileTypeError
	if errors.As(err, &typeErr) {
		s.errMsg = "Please make sure your file is in PDF, DOCX, or TXT format."
		return
	}
	s.errMsg = err.Error()
}

func (s *resumeScreen) view(width int) string {
	out := headStyle.Render("Upload Your Resume") + "\n" +
		bodyStyle.Render("Upload your resume so we can analyze your skills and experience to create a personalized cover letter.") + "\n\n"
	var box string
	switch s.state {
	case resumeIdle:
		box = s.path.View() + "\n" + hintStyle.Render("Supports PDF, DOCX, TXT")
	case resumeParsing:
		box = s.spinner.View() + " Parsing resume..."
	case resumeSuccess:
		box = okStyle.Render("✓ Resume uploaded successfully") + "\n" +
			bodyStyle.Render(s.parsed.FileName) + "\n\n" +
			truncateLines(s.parsed.ExtractedText, previewLines) + "\n\n" +
			hintStyle.Render("c: change file")
	case resumeError:
		box = errorStyle.Render("✗ Unable to upload file") + "\n" +
			bodyStyle.Render(s.errMsg) + "\n\n" +
			hintStyle.Render("enter: try again")
	}
	out += panelStyle.Width(max(20, width-4)).Render(box)
	if s.state == resumeSuccess {
		out += "\n\n" + okStyle.Render("[ Continue ]")
	}
	return out
}

func (s *resumeScreen) help() string {
	switch s.state {
	case resumeSuccess:
		return "enter: continue • c: change file • esc: back"
	case resumeError:
		return "enter: try again • esc: back"
	case resumeParsing:
		return "esc: cancel and go back"
	default:
		return "enter: upload • esc: back"
	}
}

func truncateLines(text string, n int) string {
	lines := strings.Split(text, "\n")
	if len(lines) <= n {
		return text
	}
	return strings.Join(lines[:n], "\n") + "\n…"
}
