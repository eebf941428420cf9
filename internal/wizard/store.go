package wizard

import "github.com/google/uuid"

// Store holds the session: the current step plus the three optional
// records. Setters replace wholesale and nothing here checks cross-record
// invariants; that is the Controller's job.
type Store struct {
	id     string
	step   Step
	resume *ResumeRecord
	job    *JobRecord
	letter *CoverLetterRecord
}

// NewStore creates an empty session positioned on the welcome step.
func NewStore() *Store {
	return &Store{
		id:   uuid.NewString(),
		step: StepWelcome,
	}
}

// ID identifies the session in journal output.
func (s *Store) ID() string {
	return s.id
}

// Step returns the current step.
func (s *Store) Step() Step {
	return s.step
}

// SetStep replaces the current step.
func (s *Store) SetStep(step Step) {
	s.step = step
}

// Resume returns the stored resume, if any.
func (s *Store) Resume() (ResumeRecord, bool) {
	if s.resume == nil {
		return ResumeRecord{}, false
	}
	return s.resume.clone(), true
}

// SetResume replaces the stored resume.
func (s *Store) SetResume(r ResumeRecord) {
	r = r.clone()
	s.resume = &r
}

// Job returns the stored job details, if any.
func (s *Store) Job() (JobRecord, bool) {
	if s.job == nil {
		return JobRecord{}, false
	}
	return s.job.clone(), true
}

// SetJob replaces the stored job details.
func (s *Store) SetJob(j JobRecord) {
	j = j.clone()
	s.job = &j
}

// Letter returns the stored cover letter, if any.
func (s *Store) Letter() (CoverLetterRecord, bool) {
	if s.letter == nil {
		return CoverLetterRecord{}, false
	}
	return *s.letter, true
}

// SetLetter replaces the stored cover letter.
func (s *Store) SetLetter(c CoverLetterRecord) {
	s.letter = &c
}

// Reset drops every record and returns to welcome. The session ID is kept.
func (s *Store) Reset() {
	s.step = StepWelcome
	s.resume = nil
	s.job = nil
	s.letter = nil
}
