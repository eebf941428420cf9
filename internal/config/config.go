// internal/config/config.go
//
// This package handles configuration and the .coverwizard directory.
// Every project directory the wizard runs in gets a .coverwizard/ folder
// holding config.yaml, the session log and, by default, exported letters.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kingrea/coverwizard/internal/wizard"
)

const (
	// ProjectDirName is the name of the directory we create in each project
	ProjectDirName = ".coverwizard"

	AnalyzerCanned   = "canned"
	AnalyzerDocument = "document"

	defaultSignature = "[Your Name]"
	defaultExportDir = "exports"
)

const defaultProjectConfigYAML = `# coverwizard project configuration
version: 1

# Resume analyzer: canned returns a fixed sample resume, document reads the file.
analyzer: canned

# Simulated processing delays.
timing:
  parse_delay: 1.5s
  generate_delay: 3s

letter:
  # professional, modern, creative or simple
  default_template: professional
  signature: "[Your Name]"

# Where downloaded letters are written, relative to the project directory.
export:
  dir: .coverwizard/exports
`

// TimingConfig controls the simulated delays.
type TimingConfig struct {
	ParseDelay    time.Duration `yaml:"parse_delay"`
	GenerateDelay time.Duration `yaml:"generate_delay"`
}

// LetterConfig captures letter preferences.
type LetterConfig struct {
	DefaultTemplate string `yaml:"default_template"`
	Signature       string `yaml:"signature"`
}

// ExportConfig captures where TXT downloads land.
type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// ProjectConfig models .coverwizard/config.yaml.
type ProjectConfig struct {
	Version  int          `yaml:"version"`
	Analyzer string       `yaml:"analyzer"`
	Timing   TimingConfig `yaml:"timing"`
	Letter   LetterConfig `yaml:"letter"`
	Export   ExportConfig `yaml:"export"`
}

// Config holds the runtime configuration for the wizard.
type Config struct {
	// ProjectDir is the directory the wizard was started in
	ProjectDir string

	// WizardDir is ProjectDir/.coverwizard
	WizardDir string

	Project ProjectConfig
}

// InitProjectDir creates the .coverwizard directory structure in the given
// project directory and writes a default config.yaml if none exists.
//
// Structure created:
// .coverwizard/
// ├── config.yaml
// ├── logs/      <- session journal
// └── exports/   <- default TXT download target
func InitProjectDir(projectDir string) error {
	wizardDir := filepath.Join(projectDir, ProjectDirName)
	dirs := []string{
		filepath.Join(wizardDir, "logs"),
		filepath.Join(wizardDir, defaultExportDir),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("config: create %s: %w", dir, err)
		}
	}
	return ensureProjectConfig(filepath.Join(wizardDir, "config.yaml"))
}

// NewConfig loads config.yaml for projectDir and applies environment overrides.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir: projectDir,
		WizardDir:  filepath.Join(projectDir, ProjectDirName),
		Project:    defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	cfg.Project.applyEnvOverrides()
	cfg.Project.normalize(projectDir)
	return cfg, nil
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.WizardDir, "logs")
}

// SessionLogPath returns the journal file written by the wizard.
func (c *Config) SessionLogPath() string {
	return filepath.Join(c.LogsDir(), "session.log")
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.WizardDir, "config.yaml")
}

// ExportDir returns the resolved directory for TXT downloads.
func (c *Config) ExportDir() string {
	if c.Project.Export.Dir == "" {
		return filepath.Join(c.WizardDir, defaultExportDir)
	}
	return c.Project.Export.Dir
}

// AnalyzerKind returns the configured analyzer name.
func (c *Config) AnalyzerKind() string {
	return c.Project.Analyzer
}

// ParseDelay returns the simulated resume parsing delay.
func (c *Config) ParseDelay() time.Duration {
	return c.Project.Timing.ParseDelay
}

// GenerateDelay returns the simulated generation delay.
func (c *Config) GenerateDelay() time.Duration {
	return c.Project.Timing.GenerateDelay
}

// DefaultTemplate returns the template applied to new letters.
func (c *Config) DefaultTemplate() wizard.TemplateID {
	id, err := wizard.ParseTemplate(c.Project.Letter.DefaultTemplate)
	if err != nil {
		return wizard.DefaultTemplate
	}
	return id
}

// Signature returns the closing name for generated letters.
func (c *Config) Signature() string {
	return c.Project.Letter.Signature
}

// SetDefaultTemplate updates the default template and persists the value back
// to .coverwizard/config.yaml.
func (c *Config) SetDefaultTemplate(value string) error {
	id, err := wizard.ParseTemplate(value)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.Project.Letter.DefaultTemplate = string(id)
	return c.saveProjectConfig()
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.Project.normalize(c.ProjectDir)
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	// Keys left out of the file keep their default values.
	parsed := defaultProjectConfig()
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	parsed.normalize(c.ProjectDir)

	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version:  1,
		Analyzer: AnalyzerCanned,
		Timing: TimingConfig{
			ParseDelay:    wizard.DefaultParseDelay,
			GenerateDelay: wizard.DefaultGenerateDelay,
		},
		Letter: LetterConfig{
			DefaultTemplate: string(wizard.DefaultTemplate),
			Signature:       defaultSignature,
		},
		Export: ExportConfig{
			Dir: filepath.Join(ProjectDirName, defaultExportDir),
		},
	}
}

// applyDefaults refills keys that were set to blank values. Explicit zero
// delays are kept.
func (pc *ProjectConfig) applyDefaults() {
	defaults := defaultProjectConfig()
	if pc.Version == 0 {
		pc.Version = defaults.Version
	}
	if strings.TrimSpace(pc.Analyzer) == "" {
		pc.Analyzer = defaults.Analyzer
	}
	if strings.TrimSpace(pc.Letter.DefaultTemplate) == "" {
		pc.Letter.DefaultTemplate = defaults.Letter.DefaultTemplate
	}
	if strings.TrimSpace(pc.Letter.Signature) == "" {
		pc.Letter.Signature = defaults.Letter.Signature
	}
	if strings.TrimSpace(pc.Export.Dir) == "" {
		pc.Export.Dir = defaults.Export.Dir
	}
}

func (pc *ProjectConfig) applyEnvOverrides() {
	if pc == nil {
		return
	}
	if value := strings.TrimSpace(os.Getenv("COVERWIZARD_ANALYZER")); value != "" {
		if kind := normalizeKind(value); isValidAnalyzer(kind) {
			pc.Analyzer = kind
		}
	}
	if value := strings.TrimSpace(os.Getenv("COVERWIZARD_TEMPLATE")); value != "" {
		if id, err := wizard.ParseTemplate(value); err == nil {
			pc.Letter.DefaultTemplate = string(id)
		}
	}
	if value := strings.TrimSpace(os.Getenv("COVERWIZARD_PARSE_DELAY")); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d >= 0 {
			pc.Timing.ParseDelay = d
		}
	}
	if value := strings.TrimSpace(os.Getenv("COVERWIZARD_GENERATE_DELAY")); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d >= 0 {
			pc.Timing.GenerateDelay = d
		}
	}
	if value := strings.TrimSpace(os.Getenv("COVERWIZARD_EXPORT_DIR")); value != "" {
		pc.Export.Dir = value
	}
}

func (pc *ProjectConfig) normalize(base string) {
	pc.Analyzer = normalizeKind(pc.Analyzer)
	pc.Letter.DefaultTemplate = strings.ToLower(strings.TrimSpace(pc.Letter.DefaultTemplate))
	pc.Letter.Signature = strings.TrimSpace(pc.Letter.Signature)
	pc.Export.Dir = resolvePath(base, pc.Export.Dir)
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if kind := normalizeKind(pc.Analyzer); !isValidAnalyzer(kind) {
		return fmt.Errorf("analyzer must be '%s' or '%s'", AnalyzerCanned, AnalyzerDocument)
	}
	if pc.Timing.ParseDelay < 0 {
		return fmt.Errorf("timing.parse_delay must be >= 0")
	}
	if pc.Timing.GenerateDelay < 0 {
		return fmt.Errorf("timing.generate_delay must be >= 0")
	}
	if _, err := wizard.ParseTemplate(pc.Letter.DefaultTemplate); err != nil {
		return fmt.Errorf("letter.default_template: %w", err)
	}
	return nil
}

func normalizeKind(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isValidAnalyzer(kind string) bool {
	return kind == AnalyzerCanned || kind == AnalyzerDocument
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0644)
}

// saveProjectConfig writes the project config with export.dir relative to
// the project directory when it lives inside it.
func (c *Config) saveProjectConfig() error {
	if c == nil {
		return fmt.Errorf("config: nil receiver")
	}
	c.Project.applyDefaults()
	if err := c.Project.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.Project.normalize(c.ProjectDir)
	if err := os.MkdirAll(c.WizardDir, 0o755); err != nil {
		return fmt.Errorf("config: ensure %s dir: %w", ProjectDirName, err)
	}
	out := c.Project
	if rel, err := filepath.Rel(c.ProjectDir, out.Export.Dir); err == nil && !strings.HasPrefix(rel, "..") {
		out.Export.Dir = rel
	}
	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}
	if err := os.WriteFile(c.ProjectConfigPath(), data, 0644); err != nil {
		return fmt.Errorf("config: write project config: %w", err)
	}
	return nil
}
