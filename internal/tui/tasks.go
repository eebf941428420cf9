package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/coverwizard/internal/wizard"
)

type uploadDoneMsg struct {
	task   *wizard.Task[wizard.ResumeRecord]
	record wizard.ResumeRecord
	err    error
}

type letterDoneMsg struct {
	task   *wizard.Task[wizard.CoverLetterRecord]
	record wizard.CoverLetterRecord
	err    error
}

type copyFlashDoneMsg struct {
	seq int
}

func waitUpload(ctx context.Context, task *wizard.Task[wizard.ResumeRecord]) tea.Cmd {
	return func() tea.Msg {
		rec, err := task.Wait(ctx)
		return uploadDoneMsg{task: task, record: rec, err: err}
	}
}

func waitLetter(ctx context.Context, task *wizard.Task[wizard.CoverLetterRecord]) tea.Cmd {
	return func() tea.Msg {
		rec, err := task.Wait(ctx)
		return letterDoneMsg{task: task, record: rec, err: err}
	}
}
