package wizard

import (
	"fmt"
	"strings"
	"time"
)

// Record is implemented by the three session payloads. AdvanceTo uses it to
// pick the slot a payload belongs in.
type Record interface {
	storeIn(s *Store)
}

// ResumeRecord is the analyzed resume. It is replaced wholesale on re-upload.
type ResumeRecord struct {
	FileName      string
	ExtractedText string
	Skills        []string
}

func (r ResumeRecord) storeIn(s *Store) { s.SetResume(r) }

func (r ResumeRecord) clone() ResumeRecord {
	r.Skills = cloneStrings(r.Skills)
	return r
}

// JobRecord captures a validated job details submission.
type JobRecord struct {
	Title          string
	Company        string
	Location       string
	Description    string
	RequiredSkills []string
}

func (j JobRecord) storeIn(s *Store) { s.SetJob(j) }

func (j JobRecord) clone() JobRecord {
	j.RequiredSkills = cloneStrings(j.RequiredSkills)
	return j
}

// HasLocation reports whether the optional location was supplied.
func (j JobRecord) HasLocation() bool {
	return strings.TrimSpace(j.Location) != ""
}

// CoverLetterRecord is a generated letter. Content may be edited in place and
// the template swapped independently of the content.
type CoverLetterRecord struct {
	ID          string
	Content     string
	Template    TemplateID
	GeneratedAt time.Time
}

func (c CoverLetterRecord) storeIn(s *Store) { s.SetLetter(c) }

// TemplateID names a presentation style for a letter.
type TemplateID string

const (
	TemplateProfessional TemplateID = "professional"
	TemplateModern       TemplateID = "modern"
	TemplateCreative     TemplateID = "creative"
	TemplateSimple       TemplateID = "simple"
)

// DefaultTemplate is applied to freshly generated letters unless configured otherwise.
const DefaultTemplate = TemplateProfessional

var templateOrder = []TemplateID{
	TemplateProfessional,
	TemplateModern,
	TemplateCreative,
	TemplateSimple,
}

// Templates returns the template identifiers in display order.
func Templates() []TemplateID {
	return append([]TemplateID(nil), templateOrder...)
}

// Name returns the display name of the template.
func (t TemplateID) Name() string {
	switch t {
	case TemplateProfessional:
		return "Professional"
	case TemplateModern:
		return "Modern"
	case TemplateCreative:
		return "Creative"
	case TemplateSimple:
		return "Simple"
	default:
		return string(t)
	}
}

// Valid reports whether t is a known template.
func (t TemplateID) Valid() bool {
	for _, candidate := range templateOrder {
		if t == candidate {
			return true
		}
	}
	return false
}

// ParseTemplate resolves a template identifier, ignoring case and whitespace.
func ParseTemplate(value string) (TemplateID, error) {
	id := TemplateID(strings.ToLower(strings.TrimSpace(value)))
	if !id.Valid() {
		return "", fmt.Errorf("wizard: unknown template %q", value)
	}
	return id, nil
}

// Upload is a resume file as handed to the wizard. Type is the declared MIME
// type, which decides whether the analyzer is invoked at all.
type Upload struct {
	Name string
	Type string
	Data []byte
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
