// Package letter renders cover letter content from a resume and a job.
package letter

import (
	"strings"
	"text/template"
	"time"

	"github.com/kingrea/coverwizard/internal/wizard"
)

// DefaultSignature closes letters when no signature is configured.
const DefaultSignature = "[Your Name]"

// DateLayout formats the letter date as "March 5, 2024".
const DateLayout = "January 2, 2006"

const fallbackSkills = "my core skills"

var body = template.Must(template.New("letter").Parse(`{{.Date}}

Dear Hiring Manager,

I am writing to express my interest in the {{.Title}} position at {{.Company}}. With 5 years of experience in web development and a strong foundation in {{.TopSkills}}, I am confident in my ability to make a valuable contribution to your team.

The opportunity to apply my expertise in {{.Expertise}} to help {{.Company}} achieve its goals is particularly exciting to me. Throughout my career, I have focused on developing responsive web applications and improving page load times, which aligns well with the requirements outlined in your job posting.

My background includes:
• Developing responsive web applications using modern frameworks
• Improving page load times by 40% through optimization techniques
• Collaborating with cross-functional teams to deliver high-quality products

I am particularly drawn to {{.Company}}'s innovative approach to technology solutions and commitment to excellence. I believe that my skills and experience make me a strong candidate for this position, and I am excited about the possibility of joining your team.

Thank you for considering my application. I look forward to the opportunity to discuss how my background, skills, and experience would be beneficial to {{.Company}}.

Sincerely,
{{.Signature}}`))

type letterData struct {
	Date      string
	Title     string
	Company   string
	TopSkills string
	Expertise string
	Signature string
}

// Generator fills the letter template. The zero value uses time.Now and
// DefaultSignature.
type Generator struct {
	Now       func() time.Time
	Signature string
}

// Generate implements wizard.LetterGenerator.
func (g Generator) Generate(resume wizard.ResumeRecord, job wizard.JobRecord) string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	signature := strings.TrimSpace(g.Signature)
	if signature == "" {
		signature = DefaultSignature
	}
	data := letterData{
		Date:      now().Format(DateLayout),
		Title:     job.Title,
		Company:   job.Company,
		TopSkills: topSkills(resume.Skills, 3),
		Expertise: expertise(resume.Skills),
		Signature: signature,
	}
	var out strings.Builder
	if err := body.Execute(&out, data); err != nil {
		panic(err)
	}
	return out.String()
}

func topSkills(skills []string, n int) string {
	if len(skills) == 0 {
		return fallbackSkills
	}
	if len(skills) > n {
		skills = skills[:n]
	}
	return strings.Join(skills, ", ")
}

func expertise(skills []string) string {
	switch len(skills) {
	case 0:
		return fallbackSkills
	case 1:
		return skills[0]
	default:
		return skills[0] + " and " + skills[1]
	}
}
