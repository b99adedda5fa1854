// internal/models/persona.go
package models

import "fmt"

// Persona is the buyer-intent class that selects ranking criteria. The set
// is closed: every switch over Persona lists all four values.
type Persona int

const (
	PersonaStandard Persona = iota
	PersonaEconomizer
	PersonaSafetyFirst
	PersonaEnthusiast
)

// AllPersonas lists every persona in declaration order.
func AllPersonas() []Persona {
	return []Persona{PersonaStandard, PersonaEconomizer, PersonaSafetyFirst, PersonaEnthusiast}
}

func (p Persona) String() string {
	switch p {
	case PersonaStandard:
		return "Standard"
	case PersonaEconomizer:
		return "Economizer"
	case PersonaSafetyFirst:
		return "SafetyFirst"
	case PersonaEnthusiast:
		return "Enthusiast"
	default:
		return fmt.Sprintf("Persona(%d)", int(p))
	}
}

// Valid reports whether p is one of the declared personas.
func (p Persona) Valid() bool {
	return p >= PersonaStandard && p <= PersonaEnthusiast
}

func (p Persona) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("unknown persona %d", int(p))
	}
	return []byte(p.String()), nil
}
