// Package analyzer turns uploaded resumes into wizard.ResumeRecord values.
package analyzer

import (
	"context"

	"github.com/kingrea/coverwizard/internal/wizard"
)

// CannedText is the fixed extraction returned by Canned.
const CannedText = `PROFESSIONAL SUMMARY
Dedicated software engineer with 5 years of experience in web development.

SKILLS
JavaScript, React, Node.js, TypeScript, HTML, CSS

EXPERIENCE
Senior Frontend Developer - TechCorp (2020-Present)
- Developed responsive web applications
- Improved page load times by 40%

EDUCATION
BS in Computer Science - Tech University`

var cannedSkills = []string{"JavaScript", "React", "Node.js", "TypeScript", "HTML", "CSS"}

// CannedSkills returns the skill list reported by Canned.
func CannedSkills() []string {
	return append([]string(nil), cannedSkills...)
}

// Canned ignores the file contents and reports the same resume every time.
type Canned struct{}

// Analyze implements wizard.ResumeAnalyzer.
func (Canned) Analyze(ctx context.Context, up wizard.Upload) (wizard.ResumeRecord, error) {
	if err := ctx.Err(); err != nil {
		return wizard.ResumeRecord{}, err
	}
	return wizard.ResumeRecord{
		FileName:      up.Name,
		ExtractedText: CannedText,
		Skills:        CannedSkills(),
	}, nil
}
