// internal/pipeline/classify-persona/handler.go
package classifypersona

import "motomind/internal/models"

const (
	StageName = "classify-persona"
)

// Driving-style literals recognised by Classify. Matching is exact and
// case-sensitive.
const (
	StyleCity        = "City"
	StyleFamily      = "Family"
	StylePerformance = "Performance"
)

// Classify maps a driving style to a persona. Unknown or empty styles fall
// back to PersonaStandard; it never fails.
func Classify(drivingStyle string) models.Persona {
	switch drivingStyle {
	case StyleCity:
		return models.PersonaEconomizer
	case StyleFamily:
		return models.PersonaSafetyFirst
	case StylePerformance:
		return models.PersonaEnthusiast
	default:
		return models.PersonaStandard
	}
}
