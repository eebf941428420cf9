package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/coverwizard/internal/analyzer"
	"github.com/kingrea/coverwizard/internal/letter"
	"github.com/kingrea/coverwizard/internal/logbook"
	"github.com/kingrea/coverwizard/internal/wizard"
)

func TestEveryStepHasAScreen(t *testing.T) {
	app, ctrl := newTestApp(t)
	for _, step := range wizard.Steps() {
		ctrl.Store().SetStep(step)
		app.step = step
		if app.screenFor(step) == nil {
			t.Fatalf("no screen for step %s", step)
		}
		view := app.View()
		if strings.Contains(view, "unknown step") {
			t.Fatalf("step %s rendered as unknown", step)
		}
		if step != wizard.StepWelcome && !strings.Contains(view, "Job Details") {
			t.Fatalf("expected progress bar on %s, got:\n%s", step, view)
		}
	}
	if app.screenFor(wizard.Step(99)) != nil {
		t.Fatalf("expected nil screen for invalid step")
	}
}

func TestWizardHappyPath(t *testing.T) {
	app, ctrl := newTestApp(t)
	resumePath := writeFile(t, "resume.txt", []byte("SKILLS\nGo, SQL\n"))

	app = runWith(t)(app.Update(key(tea.KeyEnter)))
	if ctrl.Step() != wizard.StepResume {
		t.Fatalf("expected resume step, got %s", ctrl.Step())
	}

	app = runWith(t)(app.Update(runes(resumePath)))
	app = runWith(t)(app.Update(key(tea.KeyEnter)))
	if app.resume.state != resumeSuccess {
		t.Fatalf("expected upload success, got state %d (%s)", app.resume.state, app.resume.errMsg)
	}
	if !strings.Contains(app.View(), "Resume uploaded successfully") {
		t.Fatalf("expected success message in view")
	}

	app = runWith(t)(app.Update(key(tea.KeyEnter)))
	if ctrl.Step() != wizard.StepJob {
		t.Fatalf("expected job step, got %s", ctrl.Step())
	}
	if !strings.Contains(app.View(), "JavaScript") {
		t.Fatalf("expected suggested skills on job screen")
	}

	app = runWith(t)(app.Update(runes("Backend Engineer")))
	app = runWith(t)(app.Update(key(tea.KeyTab)))
	app = runWith(t)(app.Update(runes("Acme Corp")))
	app = runWith(t)(app.Update(key(tea.KeyTab)))
	app = runWith(t)(app.Update(key(tea.KeyTab)))
	app = runWith(t)(app.Update(runes("Run the platform")))
	app = runWith(t)(app.Update(key(tea.KeyCtrlS)))

	if ctrl.Step() != wizard.StepPreview {
		t.Fatalf("expected preview step, got %s", ctrl.Step())
	}
	rec, ok := ctrl.Store().Letter()
	if !ok {
		t.Fatalf("expected generated letter")
	}
	if !strings.Contains(rec.Content, "Backend Engineer") || !strings.Contains(rec.Content, "Acme Corp") {
		t.Fatalf("letter missing job details:\n%s", rec.Content)
	}
	if !strings.Contains(app.View(), "Your Cover Letter") {
		t.Fatalf("expected preview view")
	}
}

func TestUnsupportedUploadStaysOnResume(t *testing.T) {
	app, ctrl := newTestApp(t)
	imagePath := writeFile(t, "resume.pdf", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))

	app = runWith(t)(app.Update(key(tea.KeyEnter)))
	app = runWith(t)(app.Update(runes(imagePath)))
	app = runWith(t)(app.Update(key(tea.KeyEnter)))

	if ctrl.Step() != wizard.StepResume {
		t.Fatalf("expected to stay on resume, got %s", ctrl.Step())
	}
	if app.resume.state != resumeError {
		t.Fatalf("expected error state, got %d", app.resume.state)
	}
	if !strings.Contains(app.View(), "PDF, DOCX, or TXT") {
		t.Fatalf("expected file type hint in view")
	}

	app = runWith(t)(app.Update(key(tea.KeyEnter)))
	if app.resume.state != resumeIdle {
		t.Fatalf("expected try again to reset, got %d", app.resume.state)
	}
}

func TestJobValidationShowsInlineErrors(t *testing.T) {
	app, ctrl := newTestApp(t)
	if err := ctrl.AdvanceTo(wizard.StepJob, wizard.ResumeRecord{FileName: "cv.txt"}); err != nil {
		t.Fatalf("advance: %v", err)
	}
	app = runCommands(t, app, app.syncStep())

	app = runWith(t)(app.Update(runes("Engineer")))
	app = runWith(t)(app.Update(key(tea.KeyCtrlS)))
	if ctrl.Step() != wizard.StepJob {
		t.Fatalf("expected to stay on job, got %s", ctrl.Step())
	}
	view := app.View()
	for _, want := range []string{"Company name is required", "Job description is required"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view", want)
		}
	}
	if strings.Contains(view, "Job title is required") {
		t.Fatalf("title was filled and should not be flagged")
	}
	if app.job.focus != jobCompany {
		t.Fatalf("expected focus on first failing field, got %d", app.job.focus)
	}

	app = runWith(t)(app.Update(runes("A")))
	if strings.Contains(app.View(), "Company name is required") {
		t.Fatalf("typing should clear the company error")
	}
}

func TestSuggestedSkillChips(t *testing.T) {
	app, ctrl := newTestApp(t)
	if err := ctrl.AdvanceTo(wizard.StepJob, wizard.ResumeRecord{Skills: []string{"Go", "SQL"}}); err != nil {
		t.Fatalf("advance: %v", err)
	}
	app = runCommands(t, app, app.syncStep())

	alt := func(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true} }
	app = runWith(t)(app.Update(alt('2')))
	app = runWith(t)(app.Update(alt('1')))
	app = runWith(t)(app.Update(alt('2')))
	if got := app.job.inputs[jobSkills].Value(); got != "SQL, Go" {
		t.Fatalf("skills = %q, want %q", got, "SQL, Go")
	}
}

func TestPreviewActions(t *testing.T) {
	var copied string
	exportDir := t.TempDir()
	app, ctrl := newTestApp(t,
		WithClipboard(func(text string) error { copied = text; return nil }),
		WithExportDir(exportDir),
	)
	enterPreview(t, app, ctrl)

	model, cmd := app.Update(runes("c"))
	app = model.(*App)
	if copied == "" {
		t.Fatalf("expected letter to be copied")
	}
	if !strings.Contains(app.View(), "Copied!") {
		t.Fatalf("expected copied flash")
	}
	app = runCommands(t, app, cmd)
	if strings.Contains(app.View(), "Copied!") {
		t.Fatalf("expected copied flash to clear")
	}

	app = runWith(t)(app.Update(runes("3")))
	if rec, _ := ctrl.Store().Letter(); rec.Template != wizard.TemplateCreative {
		t.Fatalf("expected creative template, got %s", rec.Template)
	}

	app = runWith(t)(app.Update(runes("t")))
	app = runWith(t)(app.Update(key(tea.KeyDown)))
	app = runWith(t)(app.Update(key(tea.KeyEnter)))
	if rec, _ := ctrl.Store().Letter(); rec.Template != wizard.TemplateSimple {
		t.Fatalf("expected simple template from picker, got %s", rec.Template)
	}

	app = runWith(t)(app.Update(runes("d")))
	if _, err := os.Stat(filepath.Join(exportDir, "Cover_Letter_Acme_Corp.txt")); err != nil {
		t.Fatalf("expected exported file: %v", err)
	}

	app = runWith(t)(app.Update(runes("e")))
	app = runWith(t)(app.Update(runes(" P.S. hello")))
	app = runWith(t)(app.Update(key(tea.KeyCtrlS)))
	if rec, _ := ctrl.Store().Letter(); !strings.Contains(rec.Content, "P.S. hello") {
		t.Fatalf("expected edited content to persist")
	}

	app = runWith(t)(app.Update(runes("s")))
	if ctrl.Step() != wizard.StepWelcome {
		t.Fatalf("expected start over to land on welcome, got %s", ctrl.Step())
	}
	if _, ok := ctrl.Store().Letter(); !ok {
		t.Fatalf("start over should keep the letter")
	}
	_ = app
}

func TestPreviewBackLandsOnJob(t *testing.T) {
	app, ctrl := newTestApp(t)
	enterPreview(t, app, ctrl)
	app = runWith(t)(app.Update(runes("b")))
	if ctrl.Step() != wizard.StepJob {
		t.Fatalf("expected job step after back, got %s", ctrl.Step())
	}
	app = runWith(t)(app.Update(key(tea.KeyEsc)))
	if ctrl.Step() != wizard.StepResume {
		t.Fatalf("expected resume step after esc, got %s", ctrl.Step())
	}
}

func TestEscDuringGenerationCancels(t *testing.T) {
	ctrl := wizard.NewController(wizard.NewStore(), analyzer.Canned{}, letter.Generator{},
		wizard.WithDelays(0, time.Hour))
	app := New(ctrl, WithClipboard(func(string) error { return nil }))

	if err := ctrl.AdvanceTo(wizard.StepJob, wizard.ResumeRecord{FileName: "cv.txt"}); err != nil {
		t.Fatalf("advance: %v", err)
	}
	app.syncStep()
	app = runWith(t)(app.Update(runes("Engineer")))
	app = runWith(t)(app.Update(key(tea.KeyTab)))
	app = runWith(t)(app.Update(runes("Acme")))
	app = runWith(t)(app.Update(key(tea.KeyTab)))
	app = runWith(t)(app.Update(key(tea.KeyTab)))
	app = runWith(t)(app.Update(runes("Build")))

	model, pending := app.Update(key(tea.KeyCtrlS))
	app = model.(*App)
	if ctrl.Step() != wizard.StepGenerating {
		t.Fatalf("expected generating step, got %s", ctrl.Step())
	}
	app = runWith(t)(app.Update(key(tea.KeyEsc)))
	if ctrl.Step() != wizard.StepJob {
		t.Fatalf("expected job step after esc, got %s", ctrl.Step())
	}
	app = runCommands(t, app, pending)
	if _, ok := ctrl.Store().Letter(); ok {
		t.Fatalf("cancelled generation must not store a letter")
	}
	if ctrl.Step() != wizard.StepJob {
		t.Fatalf("late result moved the wizard to %s", ctrl.Step())
	}
}

func TestLogPanelTailsLogbook(t *testing.T) {
	book, err := logbook.New(filepath.Join(t.TempDir(), "session.log"))
	if err != nil {
		t.Fatalf("logbook: %v", err)
	}
	ctrl := wizard.NewController(wizard.NewStore(), analyzer.Canned{}, letter.Generator{},
		wizard.WithDelays(0, 0), wizard.WithJournal(book))
	app := New(ctrl, WithLogbook(book))
	app = runWith(t)(app.Update(key(tea.KeyEnter)))
	app = runWith(t)(app.Update(key(tea.KeyEsc)))
	view := app.View()
	if !strings.Contains(view, "Session log") || !strings.Contains(view, "resume → welcome") {
		t.Fatalf("expected log panel with transitions, got:\n%s", view)
	}
}

func TestNewAppOpensProjectSession(t *testing.T) {
	t.Setenv("COVERWIZARD_PARSE_DELAY", "0s")
	projectDir := t.TempDir()
	app, err := NewApp(projectDir, WithClipboard(func(string) error { return nil }))
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	if app.Controller().Step() != wizard.StepWelcome {
		t.Fatalf("expected welcome step")
	}
	if app.env.exportDir != filepath.Join(projectDir, ".coverwizard", "exports") {
		t.Fatalf("unexpected export dir %s", app.env.exportDir)
	}
	if !strings.Contains(app.View(), "opened") {
		t.Fatalf("expected session open entry in log panel")
	}
}

func newTestApp(t *testing.T, opts ...AppOption) (*App, *wizard.Controller) {
	t.Helper()
	now := func() time.Time { return time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC) }
	ctrl := wizard.NewController(wizard.NewStore(), analyzer.Canned{}, letter.Generator{Now: now},
		wizard.WithDelays(0, 0), wizard.WithClock(now))
	base := []AppOption{
		WithClipboard(func(string) error { return nil }),
		WithExportDir(t.TempDir()),
		WithCopyFlash(0),
	}
	app := New(ctrl, append(base, opts...)...)
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	runCommands(t, app, app.Init())
	return app, ctrl
}

func enterPreview(t *testing.T, app *App, ctrl *wizard.Controller) {
	t.Helper()
	resume := wizard.ResumeRecord{FileName: "cv.txt", Skills: analyzer.CannedSkills()}
	job := wizard.JobRecord{Title: "Frontend Developer", Company: "Acme Corp", Description: "UI"}
	ctrl.Store().SetResume(resume)
	ctrl.Store().SetJob(job)
	ctrl.CompleteGeneration(resume, job)
	runCommands(t, app, app.syncStep())
	if app.step != wizard.StepPreview {
		t.Fatalf("expected preview step, got %s", app.step)
	}
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// runCommands executes cmd and feeds every resulting message back into the
// app. Batches are expanded; spinner ticks are dropped so animations do not
// loop forever.
func runCommands(t *testing.T, model tea.Model, cmd tea.Cmd) *App {
	t.Helper()
	app, ok := model.(*App)
	if !ok {
		t.Fatalf("unexpected model type: %T", model)
	}
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 100 {
			t.Fatalf("command loop did not settle")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		switch msg := msg.(type) {
		case nil:
			continue
		case tea.BatchMsg:
			queue = append(queue, msg...)
			continue
		case spinner.TickMsg:
			continue
		}
		nextModel, nextCmd := app.Update(msg)
		if app, ok = nextModel.(*App); !ok {
			t.Fatalf("unexpected model type: %T", nextModel)
		}
		queue = append(queue, nextCmd)
	}
	return app
}

// runWith adapts runCommands so the two results of Update can be passed
// directly: runWith(t)(app.Update(msg)).
func runWith(t *testing.T) func(tea.Model, tea.Cmd) *App {
	t.Helper()
	return func(model tea.Model, cmd tea.Cmd) *App {
		t.Helper()
		return runCommands(t, model, cmd)
	}
}
