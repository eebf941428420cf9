package wizard

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// JobForm is the raw job details input. Skills is the comma-separated list
// typed by the user.
type JobForm struct {
	Title       string
	Company     string
	Location    string
	Description string
	Skills      string
}

// requiredJobDetails is the validated view of a trimmed JobForm.
type requiredJobDetails struct {
	Title       string `form:"title" validate:"required"`
	Company     string `form:"company" validate:"required"`
	Description string `form:"description" validate:"required"`
}

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("form")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Normalize trims every field and splits the skills list into a JobRecord.
// It does not validate.
func (f JobForm) Normalize() JobRecord {
	return JobRecord{
		Title:          strings.TrimSpace(f.Title),
		Company:        strings.TrimSpace(f.Company),
		Location:       strings.TrimSpace(f.Location),
		Description:    strings.TrimSpace(f.Description),
		RequiredSkills: SplitSkills(f.Skills),
	}
}

// Validate checks that title, company and description are non-empty after
// trimming. The returned *ValidationError lists failures in form order.
func (f JobForm) Validate() error {
	rec := f.Normalize()
	err := formValidator.Struct(requiredJobDetails{
		Title:       rec.Title,
		Company:     rec.Company,
		Description: rec.Description,
	})
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	failed := map[Field]struct{}{}
	for _, fe := range fieldErrs {
		failed[Field(fe.Field())] = struct{}{}
	}
	verr := &ValidationError{}
	for _, field := range requiredFields {
		if _, ok := failed[field]; ok {
			verr.Fields = append(verr.Fields, field)
		}
	}
	return verr
}

// SplitSkills turns "JavaScript, React ,Node.js" into its trimmed,
// non-empty tokens.
func SplitSkills(value string) []string {
	skills := []string{}
	for _, part := range strings.Split(value, ",") {
		if skill := strings.TrimSpace(part); skill != "" {
			skills = append(skills, skill)
		}
	}
	return skills
}

// AddSkill appends skill to a comma-separated list unless it is already there.
func AddSkill(skills, skill string) string {
	skill = strings.TrimSpace(skill)
	current := SplitSkills(skills)
	if skill == "" {
		return strings.Join(current, ", ")
	}
	for _, existing := range current {
		if existing == skill {
			return strings.Join(current, ", ")
		}
	}
	return strings.Join(append(current, skill), ", ")
}
