package analyzer

import (
	"fmt"
	"strings"

	"github.com/kingrea/coverwizard/internal/wizard"
)

const (
	KindCanned   = "canned"
	KindDocument = "document"
)

// New returns the analyzer selected by kind. An empty kind picks Canned.
func New(kind string) (wizard.ResumeAnalyzer, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindCanned:
		return Canned{}, nil
	case KindDocument:
		return Document{}, nil
	default:
		return nil, fmt.Errorf("analyzer: unknown kind %q", kind)
	}
}
