// internal/wizard/step.go
//
// Step enumerates the stages of the cover letter wizard.
// The order is linear: welcome -> resume -> job -> generating -> preview.

package wizard

import (
	"fmt"
	"strings"
)

// Step represents one stage of the wizard
type Step int

const (
	StepWelcome Step = iota
	StepResume
	StepJob
	StepGenerating
	StepPreview
)

var stepOrder = []Step{
	StepWelcome,
	StepResume,
	StepJob,
	StepGenerating,
	StepPreview,
}

// Steps returns every step in wizard order.
func Steps() []Step {
	return append([]Step(nil), stepOrder...)
}

// String returns the stable identifier for the step
func (s Step) String() string {
	switch s {
	case StepWelcome:
		return "welcome"
	case StepResume:
		return "resume"
	case StepJob:
		return "job"
	case StepGenerating:
		return "generating"
	case StepPreview:
		return "preview"
	default:
		return "unknown"
	}
}

// FriendlyName returns the label shown in the progress bar
func (s Step) FriendlyName() string {
	switch s {
	case StepWelcome:
		return "Welcome"
	case StepResume:
		return "Resume"
	case StepJob:
		return "Job Details"
	case StepGenerating:
		return "Generate"
	case StepPreview:
		return "Preview"
	default:
		return "Unknown"
	}
}

// Valid reports whether s is one of the declared steps.
func (s Step) Valid() bool {
	return s >= StepWelcome && s <= StepPreview
}

// Next returns the following step, staying on preview once reached
func (s Step) Next() Step {
	if s >= StepPreview {
		return StepPreview
	}
	if s < StepWelcome {
		return StepWelcome
	}
	return s + 1
}

// Prev returns the preceding step, staying on welcome once reached
func (s Step) Prev() Step {
	if s <= StepWelcome {
		return StepWelcome
	}
	if s > StepPreview {
		return StepPreview
	}
	return s - 1
}

// ProgressIndex maps a step onto the 1-based progress bar. Welcome sits
// outside the bar and reports 0.
func (s Step) ProgressIndex() int {
	if !s.Valid() {
		return 0
	}
	return int(s)
}

// ParseStep resolves a step identifier such as "job".
func ParseStep(value string) (Step, error) {
	key := strings.ToLower(strings.TrimSpace(value))
	for _, step := range stepOrder {
		if step.String() == key {
			return step, nil
		}
	}
	return StepWelcome, fmt.Errorf("wizard: unknown step %q", value)
}
