package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/coverwizard/internal/wizard"
)

type generatingScreen struct {
	env     *env
	spinner spinner.Model
	task    *wizard.Task[wizard.CoverLetterRecord]
	err     error
}

func newGeneratingScreen(e *env) *generatingScreen {
	spin := spinner.New()
	spin.Spinner = spinner.MiniDot
	return &generatingScreen{env: e, spinner: spin}
}

func (s *generatingScreen) enter() tea.Cmd {
	s.err = nil
	task, err := s.env.ctrl.BeginGeneration(s.env.ctx)
	if err != nil {
		s.task = nil
		s.err = err
		return nil
	}
	s.task = task
	return tea.Batch(s.spinner.Tick, waitLetter(s.env.ctx, task))
}

func (s *generatingScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case letterDoneMsg:
		if msg.task != s.task {
			return nil
		}
		s.task = nil
		if errors.Is(msg.err, wizard.ErrCancelled) {
			return nil
		}
		if msg.err != nil {
			s.err = msg.err
			return nil
		}
		s.env.ctrl.ApplyGenerated(msg.record)
	case spinner.TickMsg:
		if s.task == nil {
			return nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return cmd
	case tea.KeyMsg:
		if msg.String() == "esc" {
			_ = s.env.ctrl.Back()
		}
	}
	return nil
}

func (s *generatingScreen) view(width int) string {
	out := headStyle.Render("Generating Your Cover Letter") + "\n"
	if s.err != nil {
		return out + errorStyle.Render(s.err.Error()) + "\n" + hintStyle.Render("Go back and check your resume and job details.")
	}
	return out + bodyStyle.Width(max(20, width)).Render("Analyzing your resume and the job details to create a personalized cover letter...") +
		"\n\n" + s.spinner.View() + " Working"
}

func (s *generatingScreen) help() string {
	return "esc: cancel and go back"
}
