package classifypersona

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"motomind/internal/models"
)

func TestClassify_KnownStyles(t *testing.T) {
	tests := []struct {
		style string
		want  models.Persona
	}{
		{"City", models.PersonaEconomizer},
		{"Family", models.PersonaSafetyFirst},
		{"Performance", models.PersonaEnthusiast},
	}

	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.style))
		})
	}
}

func TestClassify_FallsBackToStandard(t *testing.T) {
	inputs := []string{
		"",
		"city",
		"FAMILY",
		" Family",
		"Family ",
		"performance",
		"Offroad",
		"Standard",
		"Economizer",
		"SafetyFirst",
		"🚗",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, models.PersonaStandard, Classify(in))
		})
	}
}
