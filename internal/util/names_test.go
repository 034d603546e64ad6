package util

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePatientName_Format(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	for i := 0; i < 100; i++ {
		name := GeneratePatientName("M", rng)
		parts := strings.Split(name, "^")
		require.Len(t, parts, 2, "name %q should have FAMILY^Given form", name)
		assert.NotEmpty(t, parts[0], "name %q has an empty family name", name)
		assert.NotEmpty(t, parts[1], "name %q has an empty given name", name)
	}
}

func TestGeneratePatientName_Deterministic(t *testing.T) {
	a := GeneratePatientName("F", rand.New(rand.NewPCG(7, 7)))
	b := GeneratePatientName("F", rand.New(rand.NewPCG(7, 7)))
	assert.Equal(t, a, b)
}

func TestGeneratePatientName_NilRNG(t *testing.T) {
	assert.Contains(t, GeneratePatientName("F", nil), "^")
}

func TestGeneratePatient(t *testing.T) {
	p := GeneratePatient(4, rand.New(rand.NewPCG(1, 2)))

	assert.Equal(t, "PAT000005", p.ID)
	assert.Contains(t, []string{"M", "F"}, p.Sex)
	assert.Len(t, p.BirthDate, 8, "BirthDate should be YYYYMMDD")
}
