package diagnosis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkspaceFlow(t *testing.T) {
	w := NewWorkspace()
	assert.Equal(t, SectionDiagnose, w.Section)

	w.Switch(SectionPlan)
	assert.Equal(t, SectionPlan, w.Section)
	w.Switch(Section("bogus"))
	assert.Equal(t, SectionPlan, w.Section)
	w.Switch(SectionDiagnose)

	w.CompleteDiagnosis()
	assert.True(t, w.DiagnoseComplete)
	assert.Equal(t, SectionPlan, w.Section)

	assert.True(t, w.CompletePlan())
	assert.True(t, w.PlanComplete)
	assert.False(t, w.CompletePlan(), "second completion must not reschedule")
}

func TestValidateDate(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"", false},
		{"2024-05-01", false},
		{" 2024-05-01 ", false},
		{"2024-13-01", true},
		{"05/01/2024", true},
	}
	for _, tt := range tests {
		err := ValidateDate(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
		} else {
			assert.NoError(t, err, tt.in)
		}
	}
}

func TestValidateDuration(t *testing.T) {
	for _, ok := range []string{"", "4 weeks", "1 week", "10 Days", "6months", "2 years"} {
		assert.NoError(t, ValidateDuration(ok), ok)
	}
	for _, bad := range []string{"weeks", "four weeks", "4 fortnights", "-2 days"} {
		assert.Error(t, ValidateDuration(bad), bad)
	}
}
