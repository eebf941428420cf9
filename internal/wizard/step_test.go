package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepOrderIsLinear(t *testing.T) {
	steps := Steps()
	require.Len(t, steps, 5)
	for i := 0; i < len(steps)-1; i++ {
		assert.Equal(t, steps[i+1], steps[i].Next(), "next of %s", steps[i])
		assert.Equal(t, steps[i], steps[i+1].Prev(), "prev of %s", steps[i+1])
	}
	assert.Equal(t, StepPreview, StepPreview.Next())
	assert.Equal(t, StepWelcome, StepWelcome.Prev())
}

func TestStepStringsRoundTrip(t *testing.T) {
	for _, step := range Steps() {
		parsed, err := ParseStep(step.String())
		require.NoError(t, err)
		assert.Equal(t, step, parsed)
	}
	_, err := ParseStep("checkout")
	assert.Error(t, err)
	assert.Equal(t, "unknown", Step(42).String())
}

func TestProgressIndex(t *testing.T) {
	tests := []struct {
		step Step
		want int
	}{
		{StepWelcome, 0},
		{StepResume, 1},
		{StepJob, 2},
		{StepGenerating, 3},
		{StepPreview, 4},
		{Step(-1), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.step.ProgressIndex(), tt.step.String())
	}
}

func TestParseTemplate(t *testing.T) {
	id, err := ParseTemplate("  Modern ")
	require.NoError(t, err)
	assert.Equal(t, TemplateModern, id)
	assert.Equal(t, "Modern", id.Name())

	_, err = ParseTemplate("gothic")
	assert.Error(t, err)
	assert.Len(t, Templates(), 4)
	assert.Equal(t, TemplateProfessional, Templates()[0])
}
