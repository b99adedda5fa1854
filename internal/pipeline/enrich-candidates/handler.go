// internal/pipeline/enrich-candidates/handler.go
package enrichcandidates

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	apperrors "motomind/internal/common/errors"
	"motomind/internal/models"
)

const (
	StageName = "enrich-candidates"
)

const (
	LowSafetySuffix = " | WARNING: Low Safety Grade for Family use."
	EndOfLifeSuffix = " | Near Scrapping Age (End of Life Risk)."
)

// Flag names a rule that fired for a candidate.
type Flag string

const (
	FlagLowSafety Flag = "low_safety"
	FlagEndOfLife Flag = "end_of_life"
	FlagSurcharge Flag = "aging_surcharge"
)

type Handler struct {
	config *Config
	now    func() time.Time
}

type Option func(*Handler)

// WithClock overrides the clock used to compute vehicle age.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		h.now = now
	}
}

func NewHandler(config *Config, opts ...Option) *Handler {
	h := &Handler{config: config, now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Enrich returns an adjusted copy of score. The input bundle is never
// modified. Applying Enrich to its own output compounds the surcharge.
func (h *Handler) Enrich(listing models.Listing, score models.ScoreBundle, persona models.Persona) (models.ScoreBundle, error) {
	out, _, err := h.enrich(listing, score, persona, h.now().Year())
	return out, err
}

// Summary counts the rules fired across one EnrichAll call.
type Summary map[Flag]int

// EnrichAll enriches every candidate exactly once and returns a new slice.
// The first failure aborts the whole batch.
func (h *Handler) EnrichAll(candidates []models.Recommendation, persona models.Persona) ([]models.Recommendation, Summary, error) {
	year := h.now().Year()
	summary := Summary{}
	out := make([]models.Recommendation, 0, len(candidates))

	for _, c := range candidates {
		score, flags, err := h.enrich(c.Listing, c.ScoreBundle, persona, year)
		if err != nil {
			return nil, nil, err
		}
		for _, f := range flags {
			summary[f]++
		}
		out = append(out, models.Recommendation{Listing: c.Listing, ScoreBundle: score})
	}

	return out, summary, nil
}

func (h *Handler) enrich(listing models.Listing, score models.ScoreBundle, persona models.Persona, currentYear int) (models.ScoreBundle, []Flag, error) {
	out := score.Clone()
	var flags []Flag

	warn, err := h.safetyWarningApplies(listing, persona)
	if err != nil {
		return models.ScoreBundle{}, nil, apperrors.NewInternalError(err)
	}
	if warn {
		appendStrategy(&out, LowSafetySuffix)
		flags = append(flags, FlagLowSafety)
	}

	age := currentYear - listing.Year
	switch {
	case age > h.config.EndOfLifeAge:
		out.EndOfLifeWarning = true
		appendStrategy(&out, EndOfLifeSuffix)
		flags = append(flags, FlagEndOfLife)
	case age > h.config.AgingAge:
		if out.MaintenanceCost == nil {
			return models.ScoreBundle{}, nil, apperrors.NewInternalError(
				fmt.Errorf("listing %s: maintenance cost projection is null for a %d year old vehicle", listing.ID, age))
		}
		cost := decimal.NewFromFloat(*out.MaintenanceCost).Mul(h.config.SurchargeFactor).InexactFloat64()
		out.MaintenanceCost = &cost
		flags = append(flags, FlagSurcharge)
	}

	return out, flags, nil
}

func (h *Handler) safetyWarningApplies(listing models.Listing, persona models.Persona) (bool, error) {
	switch persona {
	case models.PersonaSafetyFirst:
		return listing.SafetyGrade != nil && *listing.SafetyGrade < h.config.LowSafetyGrade, nil
	case models.PersonaStandard, models.PersonaEconomizer, models.PersonaEnthusiast:
		return false, nil
	default:
		return false, fmt.Errorf("no enrichment rules for %s", persona)
	}
}

// appendStrategy treats a NULL strategy as empty text.
func appendStrategy(score *models.ScoreBundle, suffix string) {
	var s string
	if score.NegotiationStrategy != nil {
		s = *score.NegotiationStrategy
	}
	s += suffix
	score.NegotiationStrategy = &s
}
