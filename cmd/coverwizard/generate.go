package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kingrea/coverwizard/internal/analyzer"
	"github.com/kingrea/coverwizard/internal/session"
	"github.com/kingrea/coverwizard/internal/wizard"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a cover letter without the interactive wizard",
	Long:  "Upload a resume, submit job details and write the generated cover letter as a text file, running the same steps as the interactive wizard.",
	RunE:  runGenerate,
}

type generateOptions struct {
	Resume       string
	Form         wizard.JobForm
	Template     string
	Out          string
	SaveTemplate bool
}

var genOpts generateOptions

func init() {
	flags := generateCmd.Flags()
	flags.StringVarP(&genOpts.Resume, "resume", "r", "", "Path to the resume (PDF, DOCX or TXT)")
	flags.StringVar(&genOpts.Form.Title, "title", "", "Job title")
	flags.StringVar(&genOpts.Form.Company, "company", "", "Company name")
	flags.StringVar(&genOpts.Form.Location, "location", "", "Job location")
	flags.StringVar(&genOpts.Form.Description, "description", "", "Job description")
	flags.StringVar(&genOpts.Form.Skills, "skills", "", "Comma separated skills to highlight")
	flags.StringVarP(&genOpts.Template, "template", "t", "", "Letter template (professional, modern, creative, simple)")
	flags.StringVarP(&genOpts.Out, "out", "o", "", "Directory for the exported letter (defaults to the configured export dir)")
	flags.BoolVar(&genOpts.SaveTemplate, "save-template", false, "Persist --template as the project default")
	_ = generateCmd.MarkFlagRequired("resume")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	dir, err := resolveProjectDir()
	if err != nil {
		return err
	}
	path, err := generateLetter(cmd.Context(), dir, genOpts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Cover letter written to %s\n", path)
	return nil
}

// generateLetter drives one session from resume upload to export and returns
// the path of the written letter.
func generateLetter(ctx context.Context, dir string, opts generateOptions, stderr io.Writer) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	var template wizard.TemplateID
	if opts.Template != "" {
		id, err := wizard.ParseTemplate(opts.Template)
		if err != nil {
			return "", err
		}
		template = id
	} else if opts.SaveTemplate {
		return "", fmt.Errorf("--save-template requires --template")
	}

	s, err := session.Open(dir)
	if err != nil {
		return "", fmt.Errorf("opening session: %w", err)
	}
	ctrl := s.Controller
	defer func() {
		s.Logbook.Info("Session %s closed on %s", ctrl.Store().ID(), ctrl.Step())
	}()

	if err := ctrl.Start(); err != nil {
		return "", err
	}
	up, err := analyzer.LoadFile(opts.Resume)
	if err != nil {
		return "", fmt.Errorf("reading resume: %w", err)
	}
	if _, err := ctrl.Upload(ctx, up); err != nil {
		var typeErr *wizard.UnsupportedFileTypeError
		if errors.As(err, &typeErr) {
			return "", fmt.Errorf("%s: please make sure your file is in PDF, DOCX, or TXT format", up.Name)
		}
		return "", fmt.Errorf("uploading resume: %w", err)
	}
	if err := ctrl.ContinueToJob(); err != nil {
		return "", err
	}

	if _, err := ctrl.SubmitJobDetails(opts.Form); err != nil {
		var verr *wizard.ValidationError
		if errors.As(err, &verr) {
			for _, field := range verr.Fields {
				_, _ = fmt.Fprintf(stderr, "  %s\n", field.Message())
			}
		}
		return "", err
	}

	task, err := ctrl.BeginGeneration(ctx)
	if err != nil {
		return "", err
	}
	rec, err := task.Wait(ctx)
	if err != nil {
		ctrl.CancelPending()
		return "", fmt.Errorf("generating letter: %w", err)
	}
	ctrl.ApplyGenerated(rec)

	if template != "" {
		if err := ctrl.SelectTemplate(template); err != nil {
			return "", err
		}
		if opts.SaveTemplate {
			if err := s.Config.SetDefaultTemplate(string(template)); err != nil {
				return "", err
			}
		}
	}

	export, err := ctrl.Export()
	if err != nil {
		return "", err
	}
	outDir := opts.Out
	if outDir == "" {
		outDir = s.Config.ExportDir()
	}
	path, err := export.WriteTo(outDir)
	if err != nil {
		return "", err
	}
	s.Logbook.Info("Session %s · exported %s", ctrl.Store().ID(), path)
	return path, nil
}
