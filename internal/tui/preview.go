package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/coverwizard/internal/letter"
	"github.com/kingrea/coverwizard/internal/wizard"
)

type previewMode int

const (
	previewReading previewMode = iota
	previewEditing
	previewPicking
)

const defaultCopyFlash = 2 * time.Second

type templateItem struct {
	tmpl letter.Template
}

func (i templateItem) FilterValue() string { return i.tmpl.Name }

// templateDelegate renders one template per line with a marker for the
// template currently applied to the letter.
type templateDelegate struct {
	current func() wizard.TemplateID
}

func (d templateDelegate) Height() int                             { return 1 }
func (d templateDelegate) Spacing() int                            { return 0 }
func (d templateDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d templateDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(templateItem)
	if !ok {
		return
	}
	marker := "  "
	if d.current != nil && d.current() == ti.tmpl.ID {
		marker = "● "
	}
	line := fmt.Sprintf("%s%-13s %s", marker, ti.tmpl.Name, hintStyle.Render(ti.tmpl.Description))
	if index == m.Index() {
		line = headStyle.Render("› ") + line
	} else {
		line = "  " + line
	}
	fmt.Fprint(w, line)
}

type previewScreen struct {
	env       *env
	mode      previewMode
	editor    textarea.Model
	templates list.Model
	status    string
	statusErr bool
	copied    bool
	copySeq   int
}

func newPreviewScreen(e *env) *previewScreen {
	s := &previewScreen{env: e}
	editor := textarea.New()
	editor.ShowLineNumbers = false
	editor.CharLimit = 0
	editor.SetHeight(18)
	editor.Cursor.SetMode(cursor.CursorStatic)
	s.editor = editor

	items := make([]list.Item, 0, 4)
	for _, tmpl := range letter.Templates() {
		items = append(items, templateItem{tmpl: tmpl})
	}
	picker := list.New(items, templateDelegate{current: s.currentTemplate}, 40, len(items)+2)
	picker.Title = "Template"
	picker.SetShowStatusBar(false)
	picker.SetShowHelp(false)
	picker.SetShowPagination(false)
	picker.SetFilteringEnabled(false)
	s.templates = picker
	return s
}

func (s *previewScreen) currentTemplate() wizard.TemplateID {
	rec, ok := s.env.ctrl.Store().Letter()
	if !ok {
		return ""
	}
	return rec.Template
}

func (s *previewScreen) enter() tea.Cmd {
	s.mode = previewReading
	s.status = ""
	s.statusErr = false
	s.copied = false
	s.editor.Blur()
	return nil
}

func (s *previewScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case copyFlashDoneMsg:
		if msg.seq == s.copySeq {
			s.copied = false
		}
		return nil
	case tea.KeyMsg:
		switch s.mode {
		case previewEditing:
			return s.updateEditing(msg)
		case previewPicking:
			return s.updatePicking(msg)
		default:
			return s.updateReading(msg)
		}
	}
	return nil
}

func (s *previewScreen) updateReading(msg tea.KeyMsg) tea.Cmd {
	switch key := msg.String(); key {
	case "e":
		rec, ok := s.env.ctrl.Store().Letter()
		if !ok {
			s.setStatus(wizard.ErrNoLetter.Error(), true)
			return nil
		}
		s.editor.SetValue(rec.Content)
		s.editor.Focus()
		s.mode = previewEditing
	case "t":
		s.mode = previewPicking
		for i, id := range wizard.Templates() {
			if id == s.currentTemplate() {
				s.templates.Select(i)
			}
		}
	case "1", "2", "3", "4":
		ids := wizard.Templates()
		s.selectTemplate(ids[int(key[0]-'1')])
	case "c":
		return s.copy()
	case "d":
		s.download()
	case "n":
		_ = s.env.ctrl.GenerateNewLetter()
	case "b", "esc":
		_ = s.env.ctrl.Back()
	case "s":
		_ = s.env.ctrl.StartOver()
	}
	return nil
}

func (s *previewScreen) updateEditing(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+s":
		if err := s.env.ctrl.EditContent(s.editor.Value()); err != nil {
			s.setStatus(err.Error(), true)
		} else {
			s.setStatus("Edits saved", false)
		}
		s.editor.Blur()
		s.mode = previewReading
		return nil
	case "esc":
		s.editor.Blur()
		s.mode = previewReading
		s.setStatus("Edit discarded", false)
		return nil
	}
	var cmd tea.Cmd
	s.editor, cmd = s.editor.Update(msg)
	return cmd
}

func (s *previewScreen) updatePicking(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.mode = previewReading
		return nil
	case "enter":
		if item, ok := s.templates.SelectedItem().(templateItem); ok {
			s.selectTemplate(item.tmpl.ID)
		}
		s.mode = previewReading
		return nil
	case "up", "down", "k", "j":
		var cmd tea.Cmd
		s.templates, cmd = s.templates.Update(msg)
		return cmd
	}
	return nil
}

func (s *previewScreen) selectTemplate(id wizard.TemplateID) {
	if err := s.env.ctrl.SelectTemplate(id); err != nil {
		s.setStatus(err.Error(), true)
		return
	}
	s.setStatus("Template: "+id.Name(), false)
}

func (s *previewScreen) copy() tea.Cmd {
	rec, ok := s.env.ctrl.Store().Letter()
	if !ok {
		s.setStatus(wizard.ErrNoLetter.Error(), true)
		return nil
	}
	if err := s.env.clipboard(rec.Content); err != nil {
		s.setStatus("Copy failed: "+err.Error(), true)
		return nil
	}
	s.status = ""
	s.copied = true
	s.copySeq++
	seq := s.copySeq
	return tea.Tick(s.env.flashFor, func(time.Time) tea.Msg {
		return copyFlashDoneMsg{seq: seq}
	})
}

func (s *previewScreen) download() {
	export, err := s.env.ctrl.Export()
	if err != nil {
		s.setStatus(err.Error(), true)
		return
	}
	path, err := export.WriteTo(s.env.exportDir)
	if err != nil {
		s.setStatus(err.Error(), true)
		return
	}
	s.setStatus("Downloaded "+path, false)
}

func (s *previewScreen) setStatus(msg string, isErr bool) {
	s.status = msg
	s.statusErr = isErr
}

func (s *previewScreen) view(width int) string {
	var b strings.Builder
	b.WriteString(headStyle.Render("Your Cover Letter") + "\n")
	b.WriteString(bodyStyle.Render("Here's your personalized cover letter. You can edit it, change the template, or download it.") + "\n\n")

	rec, ok := s.env.ctrl.Store().Letter()
	if !ok {
		b.WriteString(errorStyle.Render("No cover letter yet. Go back to job details to generate one."))
		return b.String()
	}

	letterWidth := max(20, width-30)
	var body string
	if s.mode == previewEditing {
		s.editor.SetWidth(letterWidth)
		body = s.editor.View()
	} else {
		body = letterStyle(rec.Template, letterWidth).Render(rec.Content)
	}

	side := s.templates.View()
	if s.mode != previewPicking {
		side = s.templateSummary(rec.Template)
	}
	copyLabel := "c  Copy to Clipboard"
	if s.copied {
		copyLabel = okStyle.Render("✓  Copied!")
	}
	side += "\n\n" + strings.Join([]string{
		"e  Edit Content",
		copyLabel,
		"d  Download as TXT",
		"n  Generate New Letter",
	}, "\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", panelStyle.Render(side)))

	if s.status != "" {
		style := okStyle
		if s.statusErr {
			style = errorStyle
		}
		b.WriteString("\n" + style.Render(s.status))
	}
	return b.String()
}

func (s *previewScreen) templateSummary(current wizard.TemplateID) string {
	lines := []string{headStyle.Render("Template")}
	for i, id := range wizard.Templates() {
		marker := " "
		if id == current {
			marker = "●"
		}
		lines = append(lines, fmt.Sprintf("%s %d %s", marker, i+1, id.Name()))
	}
	return strings.Join(lines, "\n")
}

func (s *previewScreen) help() string {
	switch s.mode {
	case previewEditing:
		return "ctrl+s: save edits • esc: discard"
	case previewPicking:
		return "↑/↓: choose • enter: apply • esc: close"
	default:
		return "t/1-4: template • e: edit • c: copy • d: download • n: new letter • b: back to job details • s: start over"
	}
}
