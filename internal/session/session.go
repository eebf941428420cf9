// Package session assembles a wizard controller from the project configuration.
package session

import (
	"fmt"

	"github.com/kingrea/coverwizard/internal/analyzer"
	"github.com/kingrea/coverwizard/internal/config"
	"github.com/kingrea/coverwizard/internal/letter"
	"github.com/kingrea/coverwizard/internal/logbook"
	"github.com/kingrea/coverwizard/internal/wizard"
)

// Session bundles everything one wizard run needs.
type Session struct {
	Config     *config.Config
	Logbook    *logbook.Logbook
	Controller *wizard.Controller
}

// Open initializes .coverwizard/ under projectDir, loads its config and wires
// a controller around a fresh store.
func Open(projectDir string) (*Session, error) {
	if err := config.InitProjectDir(projectDir); err != nil {
		return nil, err
	}
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return nil, err
	}
	book, err := logbook.New(cfg.SessionLogPath())
	if err != nil {
		return nil, err
	}
	ctrl, err := NewController(cfg, book)
	if err != nil {
		return nil, err
	}
	book.Info("Session %s opened · analyzer %s · template %s", ctrl.Store().ID(), cfg.AnalyzerKind(), cfg.DefaultTemplate())
	return &Session{Config: cfg, Logbook: book, Controller: ctrl}, nil
}

// NewController builds a controller from cfg. A nil journal discards entries.
func NewController(cfg *config.Config, journal wizard.Journal) (*wizard.Controller, error) {
	resumeAnalyzer, err := analyzer.New(cfg.AnalyzerKind())
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	generator := letter.Generator{Signature: cfg.Signature()}
	opts := []wizard.Option{
		wizard.WithDelays(cfg.ParseDelay(), cfg.GenerateDelay()),
		wizard.WithDefaultTemplate(cfg.DefaultTemplate()),
	}
	if journal != nil {
		opts = append(opts, wizard.WithJournal(journal))
	}
	return wizard.NewController(wizard.NewStore(), resumeAnalyzer, generator, opts...), nil
}
