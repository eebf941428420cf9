package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/coverwizard/internal/wizard"
)

type jobField int

const (
	jobTitle jobField = iota
	jobCompany
	jobLocation
	jobDescription
	jobSkills
	jobFieldCount
)

const maxSuggestions = 9

type jobScreen struct {
	env         *env
	inputs      [jobFieldCount]textinput.Model
	description textarea.Model
	focus       jobField
	errs        map[wizard.Field]bool
	suggestions []string
}

func newJobScreen(e *env) *jobScreen {
	s := &jobScreen{env: e, errs: map[wizard.Field]bool{}}
	labels := map[jobField][2]string{
		jobTitle:    {"Job Title* ", "e.g. Frontend Developer"},
		jobCompany:  {"Company*   ", "e.g. Acme Inc."},
		jobLocation: {"Location   ", "e.g. Remote, New York, NY"},
		jobSkills:   {"Skills     ", "e.g. JavaScript, React, TypeScript"},
	}
	for field, label := range labels {
		input := textinput.New()
		input.Prompt = label[0]
		input.Placeholder = label[1]
		input.Cursor.SetMode(cursor.CursorStatic)
		s.inputs[field] = input
	}
	desc := textarea.New()
	desc.Placeholder = "Paste the job description here..."
	desc.ShowLineNumbers = false
	desc.SetHeight(6)
	desc.Cursor.SetMode(cursor.CursorStatic)
	s.description = desc
	return s
}

func (s *jobScreen) enter() tea.Cmd {
	for i := range s.inputs {
		if i == int(jobDescription) {
			continue
		}
		s.inputs[i].SetValue("")
	}
	s.description.Reset()
	s.errs = map[wizard.Field]bool{}
	s.suggestions = s.env.ctrl.SuggestedSkills()
	if len(s.suggestions) > maxSuggestions {
		s.suggestions = s.suggestions[:maxSuggestions]
	}
	s.setFocus(jobTitle)
	return nil
}

func (s *jobScreen) setFocus(field jobField) {
	s.focus = field
	for i := range s.inputs {
		if i == int(jobDescription) {
			continue
		}
		if jobField(i) == field {
			s.inputs[i].Focus()
		} else {
			s.inputs[i].Blur()
		}
	}
	if field == jobDescription {
		s.description.Focus()
	} else {
		s.description.Blur()
	}
}

func (s *jobScreen) update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	str := key.String()
	switch str {
	case "esc":
		_ = s.env.ctrl.Back()
		return nil
	case "ctrl+s":
		s.submit()
		return nil
	case "tab", "down":
		if str == "down" && s.focus == jobDescription {
			break
		}
		s.setFocus((s.focus + 1) % jobFieldCount)
		return nil
	case "shift+tab", "up":
		if str == "up" && s.focus == jobDescription {
			break
		}
		s.setFocus((s.focus + jobFieldCount - 1) % jobFieldCount)
		return nil
	case "enter":
		if s.focus == jobSkills {
			s.submit()
			return nil
		}
		if s.focus != jobDescription {
			s.setFocus(s.focus + 1)
			return nil
		}
	}
	if strings.HasPrefix(str, "alt+") {
		if n, err := strconv.Atoi(strings.TrimPrefix(str, "alt+")); err == nil {
			s.addSuggestion(n - 1)
			return nil
		}
	}

	s.clearError(s.focus)
	var cmd tea.Cmd
	if s.focus == jobDescription {
		s.description, cmd = s.description.Update(msg)
	} else {
		s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	}
	return cmd
}

func (s *jobScreen) addSuggestion(index int) {
	if index < 0 || index >= len(s.suggestions) {
		return
	}
	skills := &s.inputs[jobSkills]
	skills.SetValue(wizard.AddSkill(skills.Value(), s.suggestions[index]))
	skills.CursorEnd()
}

func (s *jobScreen) clearError(field jobField) {
	switch field {
	case jobTitle:
		delete(s.errs, wizard.FieldTitle)
	case jobCompany:
		delete(s.errs, wizard.FieldCompany)
	case jobDescription:
		delete(s.errs, wizard.FieldDescription)
	}
}

func (s *jobScreen) form() wizard.JobForm {
	return wizard.JobForm{
		Title:       s.inputs[jobTitle].Value(),
		Company:     s.inputs[jobCompany].Value(),
		Location:    s.inputs[jobLocation].Value(),
		Description: s.description.Value(),
		Skills:      s.inputs[jobSkills].Value(),
	}
}

func (s *jobScreen) submit() {
	_, err := s.env.ctrl.SubmitJobDetails(s.form())
	if err == nil {
		return
	}
	var verr *wizard.ValidationError
	if !errors.As(err, &verr) {
		return
	}
	s.errs = map[wizard.Field]bool{}
	for _, field := range verr.Fields {
		s.errs[field] = true
	}
	switch verr.Fields[0] {
	case wizard.FieldTitle:
		s.setFocus(jobTitle)
	case wizard.FieldCompany:
		s.setFocus(jobCompany)
	case wizard.FieldDescription:
		s.setFocus(jobDescription)
	}
}

func (s *jobScreen) fieldError(field wizard.Field) string {
	if !s.errs[field] {
		return ""
	}
	return "\n" + errorStyle.Render("  "+field.Message())
}

func (s *jobScreen) view(width int) string {
	s.description.SetWidth(max(20, width-8))
	var b strings.Builder
	b.WriteString(headStyle.Render("Add Job Details") + "\n")
	b.WriteString(bodyStyle.Render("Enter information about the job you're applying for so we can tailor your cover letter.") + "\n\n")

	fields := s.inputs[jobTitle].View() + s.fieldError(wizard.FieldTitle) + "\n" +
		s.inputs[jobCompany].View() + s.fieldError(wizard.FieldCompany) + "\n" +
		s.inputs[jobLocation].View() + "\n\n" +
		bodyStyle.Render("Job Description*") + "\n" +
		s.description.View() + s.fieldError(wizard.FieldDescription) + "\n\n" +
		s.inputs[jobSkills].View() + "\n" +
		hintStyle.Render("  Separate skills with commas")

	if len(s.suggestions) > 0 {
		chips := make([]string, 0, len(s.suggestions))
		for i, skill := range s.suggestions {
			chips = append(chips, chipStyle.Render(fmt.Sprintf("alt+%d + %s", i+1, skill)))
		}
		fields += "\n\n" + bodyStyle.Render("Suggested skills from your resume:") + "\n" + strings.Join(chips, " ")
	}
	b.WriteString(panelStyle.Width(max(20, width-4)).Render(fields))
	b.WriteString("\n\n" + okStyle.Render("[ Generate Cover Letter ]"))
	return b.String()
}

func (s *jobScreen) help() string {
	return "tab: next field • ctrl+s: generate • alt+N: add suggested skill • esc: back"
}
