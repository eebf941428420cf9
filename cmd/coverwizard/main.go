// cmd/coverwizard/main.go
//
// Entry point for the coverwizard CLI. Running `coverwizard` with no
// subcommand opens the interactive wizard for the current directory;
// `coverwizard generate` runs the same steps non-interactively.

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kingrea/coverwizard/internal/tui"
)

var projectDir string

var rootCmd = &cobra.Command{
	Use:   "coverwizard",
	Short: "Cover letter wizard",
	Long:  "coverwizard walks you from a resume and a job posting to a tailored cover letter you can edit, restyle and export.",
	RunE:  runWizard,

	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&projectDir, "dir", "", "Project directory holding .coverwizard/ (defaults to the working directory)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func resolveProjectDir() (string, error) {
	if projectDir != "" {
		return projectDir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return cwd, nil
}

func runWizard(_ *cobra.Command, _ []string) error {
	dir, err := resolveProjectDir()
	if err != nil {
		return err
	}
	app, err := tui.NewApp(dir)
	if err != nil {
		return fmt.Errorf("opening wizard session: %w", err)
	}

	// Run blocks until the user quits
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
