package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/coverwizard/internal/wizard"
)

// screen renders one wizard step. enter is called every time the step
// becomes current, so screens start from a clean slate on each visit.
type screen interface {
	enter() tea.Cmd
	update(msg tea.Msg) tea.Cmd
	view(width int) string
	help() string
}

// env is what screens share: the controller plus the outer surfaces.
type env struct {
	ctx       context.Context
	ctrl      *wizard.Controller
	loadFile  func(path string) (wizard.Upload, error)
	clipboard func(text string) error
	exportDir string
	flashFor  time.Duration
}

type welcomeScreen struct {
	env *env
}

func newWelcomeScreen(e *env) *welcomeScreen {
	return &welcomeScreen{env: e}
}

func (s *welcomeScreen) enter() tea.Cmd { return nil }

func (s *welcomeScreen) update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter", "s":
			_ = s.env.ctrl.Start()
		}
	}
	return nil
}

func (s *welcomeScreen) view(width int) string {
	cards := []struct{ title, body string }{
		{"Upload Resume", "Upload your resume and we'll analyze your skills and experience."},
		{"Add Job Details", "Enter the job description and requirements to tailor your cover letter."},
		{"Generate Cover Letter", "We'll craft a personalized cover letter that highlights your qualifications."},
	}
	out := headStyle.Render("Craft Perfect Cover Letters") + "\n" +
		bodyStyle.Width(max(20, width)).Render("Upload your resume, add the job details, and get a personalized cover letter that showcases your skills and experience.") + "\n\n"
	for i, card := range cards {
		out += panelStyle.Width(max(20, width-4)).Render(headStyle.Render(card.title)+"\n"+bodyStyle.Render(card.body)) + "\n"
		if i == len(cards)-1 {
			out += "\n"
		}
	}
	return out + okStyle.Render("[ Get Started ]")
}

func (s *welcomeScreen) help() string {
	return "enter: get started • q: quit"
}
