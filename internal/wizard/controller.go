// internal/wizard/controller.go
//
// The Controller owns the session Store and is the only thing that moves the
// wizard between steps. Views call into it; they never write the Store.

package wizard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultParseDelay mirrors the simulated resume parsing time.
	DefaultParseDelay = 1500 * time.Millisecond
	// DefaultGenerateDelay mirrors the simulated letter generation time.
	DefaultGenerateDelay = 3 * time.Second
)

// ResumeAnalyzer turns an accepted upload into a ResumeRecord.
type ResumeAnalyzer interface {
	Analyze(ctx context.Context, up Upload) (ResumeRecord, error)
}

// LetterGenerator renders letter content from a resume and job.
type LetterGenerator interface {
	Generate(resume ResumeRecord, job JobRecord) string
}

// Journal receives progress lines. *logbook.Logbook satisfies it.
type Journal interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

type nopJournal struct{}

func (nopJournal) Info(string, ...any)  {}
func (nopJournal) Warn(string, ...any)  {}
func (nopJournal) Error(string, ...any) {}

// Option customizes a Controller.
type Option func(*Controller)

// WithClock overrides the clock used for GeneratedAt.
func WithClock(clock func() time.Time) Option {
	return func(c *Controller) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithDelays sets the simulated parse and generation delays. Negative values
// are treated as zero.
func WithDelays(parse, generate time.Duration) Option {
	return func(c *Controller) {
		c.parseDelay = nonNegative(parse)
		c.generateDelay = nonNegative(generate)
	}
}

// WithJournal routes controller progress into a journal.
func WithJournal(j Journal) Option {
	return func(c *Controller) {
		if j != nil {
			c.journal = j
		}
	}
}

// WithDefaultTemplate sets the template stamped on new letters.
func WithDefaultTemplate(id TemplateID) Option {
	return func(c *Controller) {
		if id.Valid() {
			c.defaultTemplate = id
		}
	}
}

// Controller drives the wizard state machine.
type Controller struct {
	store     *Store
	analyzer  ResumeAnalyzer
	generator LetterGenerator
	journal   Journal
	clock     func() time.Time

	parseDelay      time.Duration
	generateDelay   time.Duration
	defaultTemplate TemplateID

	pendingUpload *Task[ResumeRecord]
	pendingLetter *Task[CoverLetterRecord]
}

// NewController wires a controller around store. A nil store starts a fresh session.
func NewController(store *Store, analyzer ResumeAnalyzer, generator LetterGenerator, opts ...Option) *Controller {
	if store == nil {
		store = NewStore()
	}
	c := &Controller{
		store:           store,
		analyzer:        analyzer,
		generator:       generator,
		journal:         nopJournal{},
		clock:           time.Now,
		parseDelay:      DefaultParseDelay,
		generateDelay:   DefaultGenerateDelay,
		defaultTemplate: DefaultTemplate,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Store exposes the session for read access by views.
func (c *Controller) Store() *Store {
	return c.store
}

// Step returns the current step.
func (c *Controller) Step() Step {
	return c.store.Step()
}

// AdvanceTo stores payload (when non-nil) in its slot and moves to step.
// Prerequisites are not enforced; a missing record is journaled as a warning.
func (c *Controller) AdvanceTo(step Step, payload Record) error {
	if !step.Valid() {
		return fmt.Errorf("wizard: advance to invalid step %d", int(step))
	}
	if payload != nil {
		payload.storeIn(c.store)
	}
	from := c.store.Step()
	c.store.SetStep(step)
	if missing := c.MissingPrerequisites(step); len(missing) > 0 {
		c.journal.Warn("Session %s · %s reached without %s", c.shortID(), step, strings.Join(missing, ", "))
	}
	if from != step {
		c.journal.Info("Session %s · %s → %s", c.shortID(), from, step)
	}
	return nil
}

// MissingPrerequisites lists the records step expects but the store lacks.
func (c *Controller) MissingPrerequisites(step Step) []string {
	var missing []string
	_, hasResume := c.store.Resume()
	_, hasJob := c.store.Job()
	_, hasLetter := c.store.Letter()
	switch step {
	case StepJob:
		if !hasResume {
			missing = append(missing, "resume")
		}
	case StepGenerating:
		if !hasResume {
			missing = append(missing, "resume")
		}
		if !hasJob {
			missing = append(missing, "job details")
		}
	case StepPreview:
		if !hasLetter {
			missing = append(missing, "cover letter")
		}
	}
	return missing
}

// Start moves from welcome to the resume step.
func (c *Controller) Start() error {
	return c.AdvanceTo(StepResume, nil)
}

// BeginUpload type-checks up and schedules the analyzer after the parse delay.
// A rejected upload leaves the step untouched and never reaches the analyzer.
// Any earlier pending upload is cancelled.
func (c *Controller) BeginUpload(ctx context.Context, up Upload) (*Task[ResumeRecord], error) {
	if err := CheckUpload(up); err != nil {
		c.journal.Warn("Session %s · upload rejected: %s (%s)", c.shortID(), up.Name, up.Type)
		return nil, err
	}
	if c.analyzer == nil {
		return nil, fmt.Errorf("wizard: no resume analyzer configured")
	}
	c.cancelUpload()
	analyzer := c.analyzer
	task := Schedule(ctx, c.parseDelay, func(ctx context.Context) (ResumeRecord, error) {
		return analyzer.Analyze(ctx, up)
	})
	c.pendingUpload = task
	c.journal.Info("Session %s · parsing %s", c.shortID(), up.Name)
	return task, nil
}

// CompleteUpload stores an analyzed resume. It only applies while the wizard
// is on the resume step and reports whether the record was kept.
func (c *Controller) CompleteUpload(rec ResumeRecord) bool {
	c.pendingUpload = nil
	if c.store.Step() != StepResume {
		c.journal.Warn("Session %s · discarded parsed resume %s (now on %s)", c.shortID(), rec.FileName, c.store.Step())
		return false
	}
	c.store.SetResume(rec)
	c.journal.Info("Session %s · resume %s parsed (%d skills)", c.shortID(), rec.FileName, len(rec.Skills))
	return true
}

// Upload runs BeginUpload, waits for the result and completes it.
func (c *Controller) Upload(ctx context.Context, up Upload) (ResumeRecord, error) {
	task, err := c.BeginUpload(ctx, up)
	if err != nil {
		return ResumeRecord{}, err
	}
	rec, err := task.Wait(ctx)
	if err != nil {
		c.pendingUpload = nil
		c.journal.Error("Session %s · resume parse failed: %v", c.shortID(), err)
		return ResumeRecord{}, err
	}
	if !c.CompleteUpload(rec) {
		return ResumeRecord{}, ErrCancelled
	}
	return rec, nil
}

// ContinueToJob advances from the resume screen to job details.
func (c *Controller) ContinueToJob() error {
	return c.AdvanceTo(StepJob, nil)
}

// SubmitJobDetails validates form and, on success, stores the job and
// advances to generating. On failure the step is unchanged and the error is a
// *ValidationError naming every empty required field.
func (c *Controller) SubmitJobDetails(form JobForm) (JobRecord, error) {
	if err := form.Validate(); err != nil {
		c.journal.Warn("Session %s · job details rejected: %v", c.shortID(), err)
		return JobRecord{}, err
	}
	rec := form.Normalize()
	if err := c.AdvanceTo(StepGenerating, rec); err != nil {
		return JobRecord{}, err
	}
	return rec, nil
}

// BeginGeneration schedules letter generation from the stored resume and job.
func (c *Controller) BeginGeneration(ctx context.Context) (*Task[CoverLetterRecord], error) {
	resume, hasResume := c.store.Resume()
	job, hasJob := c.store.Job()
	if !hasResume || !hasJob {
		c.journal.Error("Session %s · generation requested without resume and job details", c.shortID())
		return nil, ErrMissingRecords
	}
	if c.generator == nil {
		return nil, fmt.Errorf("wizard: no letter generator configured")
	}
	c.cancelLetter()
	task := Schedule(ctx, c.generateDelay, func(context.Context) (CoverLetterRecord, error) {
		return c.buildLetter(resume, job), nil
	})
	c.pendingLetter = task
	c.journal.Info("Session %s · generating letter for %s at %s", c.shortID(), job.Title, job.Company)
	return task, nil
}

// ApplyGenerated stores a generated letter and advances to preview. Results
// that arrive after the wizard left the generating step are discarded.
func (c *Controller) ApplyGenerated(rec CoverLetterRecord) bool {
	c.pendingLetter = nil
	if c.store.Step() != StepGenerating {
		c.journal.Warn("Session %s · discarded generated letter (now on %s)", c.shortID(), c.store.Step())
		return false
	}
	_ = c.AdvanceTo(StepPreview, rec)
	return true
}

// CompleteGeneration renders the letter synchronously, stores it and
// advances to preview.
func (c *Controller) CompleteGeneration(resume ResumeRecord, job JobRecord) CoverLetterRecord {
	c.cancelLetter()
	rec := c.buildLetter(resume, job)
	_ = c.AdvanceTo(StepPreview, rec)
	return rec
}

func (c *Controller) buildLetter(resume ResumeRecord, job JobRecord) CoverLetterRecord {
	return CoverLetterRecord{
		ID:          uuid.NewString(),
		Content:     c.generator.Generate(resume, job),
		Template:    c.defaultTemplate,
		GeneratedAt: c.clock(),
	}
}

// Back moves one step toward welcome. Generating is transient, so backing out
// of preview lands on job details.
func (c *Controller) Back() error {
	c.CancelPending()
	step := c.store.Step()
	target := step.Prev()
	if step == StepPreview {
		target = StepJob
	}
	return c.AdvanceTo(target, nil)
}

// StartOver jumps to welcome. Stored records are kept.
func (c *Controller) StartOver() error {
	c.CancelPending()
	return c.AdvanceTo(StepWelcome, nil)
}

// GenerateNewLetter jumps back to job details.
func (c *Controller) GenerateNewLetter() error {
	c.CancelPending()
	return c.AdvanceTo(StepJob, nil)
}

// CancelPending discards any in-flight upload or generation.
func (c *Controller) CancelPending() {
	c.cancelUpload()
	c.cancelLetter()
}

func (c *Controller) cancelUpload() {
	if c.pendingUpload == nil {
		return
	}
	c.pendingUpload.Cancel()
	c.pendingUpload = nil
	c.journal.Info("Session %s · pending resume parse cancelled", c.shortID())
}

func (c *Controller) cancelLetter() {
	if c.pendingLetter == nil {
		return
	}
	c.pendingLetter.Cancel()
	c.pendingLetter = nil
	c.journal.Info("Session %s · pending generation cancelled", c.shortID())
}

// EditContent replaces the letter body in place.
func (c *Controller) EditContent(content string) error {
	rec, ok := c.store.Letter()
	if !ok {
		return ErrNoLetter
	}
	rec.Content = content
	c.store.SetLetter(rec)
	c.journal.Info("Session %s · letter edited (%d chars)", c.shortID(), len(content))
	return nil
}

// SelectTemplate changes the presentation template without touching content.
func (c *Controller) SelectTemplate(id TemplateID) error {
	if !id.Valid() {
		return fmt.Errorf("wizard: unknown template %q", string(id))
	}
	rec, ok := c.store.Letter()
	if !ok {
		return ErrNoLetter
	}
	if rec.Template == id {
		return nil
	}
	rec.Template = id
	c.store.SetLetter(rec)
	c.journal.Info("Session %s · template set to %s", c.shortID(), id)
	return nil
}

// SuggestedSkills returns the resume skills offered as job form chips.
func (c *Controller) SuggestedSkills() []string {
	resume, ok := c.store.Resume()
	if !ok {
		return nil
	}
	return resume.Skills
}

// Export renders the current letter as plain text with its suggested file name.
func (c *Controller) Export() (Export, error) {
	rec, ok := c.store.Letter()
	if !ok {
		return Export{}, ErrNoLetter
	}
	company := ""
	if job, ok := c.store.Job(); ok {
		company = job.Company
	}
	return Export{
		FileName: ExportFileName(company),
		Content:  rec.Content,
	}, nil
}

func (c *Controller) shortID() string {
	id := c.store.ID()
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func nonNegative(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
