package letter

import "github.com/kingrea/coverwizard/internal/wizard"

// Template describes one presentation style offered in the preview.
type Template struct {
	ID          wizard.TemplateID
	Name        string
	Description string
}

var templateDescriptions = map[wizard.TemplateID]string{
	wizard.TemplateProfessional: "Serif body on white",
	wizard.TemplateModern:       "Sans-serif with a slate background",
	wizard.TemplateCreative:     "Accent border on a tinted card",
	wizard.TemplateSimple:       "Plain text, no decoration",
}

// Templates lists the available templates in display order.
func Templates() []Template {
	ids := wizard.Templates()
	out := make([]Template, 0, len(ids))
	for _, id := range ids {
		out = append(out, Template{ID: id, Name: id.Name(), Description: templateDescriptions[id]})
	}
	return out
}
