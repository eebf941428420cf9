package wizard

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoLetter is returned by preview operations before a letter exists.
	ErrNoLetter = errors.New("wizard: no cover letter has been generated")
	// ErrMissingRecords is returned when generation starts without a resume or job.
	ErrMissingRecords = errors.New("wizard: resume and job details are required")
	// ErrCancelled is reported by a Task that was cancelled before completing.
	ErrCancelled = errors.New("wizard: task cancelled")
)

// Field identifies a required job detail input.
type Field string

const (
	FieldTitle       Field = "title"
	FieldCompany     Field = "company"
	FieldDescription Field = "description"
)

// requiredFields is also the order in which failures are reported.
var requiredFields = []Field{FieldTitle, FieldCompany, FieldDescription}

// Message returns the inline message shown under the field.
func (f Field) Message() string {
	switch f {
	case FieldTitle:
		return "Job title is required"
	case FieldCompany:
		return "Company name is required"
	case FieldDescription:
		return "Job description is required"
	default:
		return fmt.Sprintf("%s is required", string(f))
	}
}

// ValidationError lists the required fields that were empty after trimming.
type ValidationError struct {
	Fields []Field
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = string(f)
	}
	return fmt.Sprintf("wizard: missing required job details: %s", strings.Join(names, ", "))
}

// Has reports whether field failed validation.
func (e *ValidationError) Has(field Field) bool {
	if e == nil {
		return false
	}
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// UnsupportedFileTypeError rejects an upload whose declared type is not accepted.
type UnsupportedFileTypeError struct {
	FileName string
	Type     string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("wizard: unable to upload %s: unsupported file type %q (use PDF, DOCX, or TXT)", e.FileName, e.Type)
}
