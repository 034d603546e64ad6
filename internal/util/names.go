// Package util generates the synthetic patient identities used by the
// demo study writer.
package util

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Package-level default RNG to avoid allocations when rng is nil
var defaultRNG = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))

// FrenchNameProbability is the probability (0.0-1.0) of generating a French name
const FrenchNameProbability = 0.20

var (
	englishMaleFirstNames = []string{
		"James", "John", "Robert", "Michael", "William", "David", "Richard", "Joseph",
		"Thomas", "Charles", "Daniel", "Matthew", "Anthony", "Mark", "Paul", "Andrew",
	}

	englishFemaleFirstNames = []string{
		"Mary", "Patricia", "Jennifer", "Linda", "Barbara", "Elizabeth", "Susan", "Jessica",
		"Sarah", "Karen", "Lisa", "Nancy", "Emily", "Margaret", "Laura", "Helen",
	}

	englishLastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
		"Wilson", "Anderson", "Taylor", "Moore", "Jackson", "Martin", "Lee", "White",
	}

	frenchMaleFirstNames = []string{
		"Jean", "Pierre", "Michel", "André", "Philippe", "René", "Louis", "Jérôme",
		"François", "Benoît",
	}

	frenchFemaleFirstNames = []string{
		"Marie", "Jeanne", "Françoise", "Monique", "Catherine", "Hélène", "Émilie", "Céline",
		"Nathalie", "Inès",
	}

	frenchLastNames = []string{
		"Martin", "Bernard", "Dubois", "Thomas", "Robert", "Richard", "Petit", "Durand",
		"Lefèvre", "Mercier",
	}
)

// GeneratePatientName returns a realistic name in DICOM person-name format
// (FAMILY^Given). Sex "M" picks a male first name, anything else a female
// one. A nil rng uses the shared default.
func GeneratePatientName(sex string, rng *rand.Rand) string {
	if rng == nil {
		rng = defaultRNG
	}

	first, last := englishFemaleFirstNames, englishLastNames
	if rng.Float64() < FrenchNameProbability {
		first, last = frenchFemaleFirstNames, frenchLastNames
		if sex == "M" {
			first = frenchMaleFirstNames
		}
	} else if sex == "M" {
		first = englishMaleFirstNames
	}

	return last[rng.IntN(len(last))] + "^" + first[rng.IntN(len(first))]
}

// Patient is a generated demo identity.
type Patient struct {
	Name      string
	ID        string
	BirthDate string // YYYYMMDD, DICOM DA format
	Sex       string
}

// GeneratePatient creates a random demo patient. index feeds the patient ID.
func GeneratePatient(index int, rng *rand.Rand) Patient {
	if rng == nil {
		rng = defaultRNG
	}

	sex := []string{"M", "F"}[rng.IntN(2)]
	birthYear := 1950 + rng.IntN(50)
	birthMonth := 1 + rng.IntN(12)
	birthDay := 1 + rng.IntN(28)

	return Patient{
		Name:      GeneratePatientName(sex, rng),
		ID:        fmt.Sprintf("PAT%06d", index+1),
		BirthDate: fmt.Sprintf("%04d%02d%02d", birthYear, birthMonth, birthDay),
		Sex:       sex,
	}
}
