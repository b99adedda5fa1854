// Package pipeline runs a recommendation request through the four stages:
// persona classification, candidate planning, enrichment and composition.
package pipeline

import (
	"context"
	"strings"
	"time"

	"motomind/internal/common/config"
	apperrors "motomind/internal/common/errors"
	"motomind/internal/common/logger"
	"motomind/internal/common/metrics"
	"motomind/internal/common/observability"
	"motomind/internal/models"
	classifypersona "motomind/internal/pipeline/classify-persona"
	composeresults "motomind/internal/pipeline/compose-results"
	enrichcandidates "motomind/internal/pipeline/enrich-candidates"
	plancandidates "motomind/internal/pipeline/plan-candidates"
	"motomind/internal/store"
)

// Pipeline is stateless apart from its immutable stage configuration and is
// safe for concurrent use.
type Pipeline struct {
	planner  *plancandidates.Handler
	enricher *enrichcandidates.Handler
	composer *composeresults.Handler
	store    store.ListingStore
	obs      *observability.Observability
	logger   logger.Logger
}

type Option func(*options)

type options struct {
	enrich []enrichcandidates.Option
	obs    *observability.Observability
}

// WithClock fixes the clock used for vehicle age.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.enrich = append(o.enrich, enrichcandidates.WithClock(now))
	}
}

func WithObservability(obs *observability.Observability) Option {
	return func(o *options) {
		o.obs = obs
	}
}

func New(cfg config.RecommendationConfig, listings store.ListingStore, log logger.Logger, opts ...Option) *Pipeline {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return &Pipeline{
		planner:  plancandidates.NewHandler(plancandidates.LoadConfig(cfg)),
		enricher: enrichcandidates.NewHandler(enrichcandidates.LoadConfig(cfg), o.enrich...),
		composer: composeresults.NewHandler(composeresults.LoadConfig(cfg)),
		store:    listings,
		obs:      o.obs,
		logger:   log.WithFields(map[string]interface{}{"component": "pipeline"}),
	}
}

// Recommend returns at most ResultSize enriched listings. Any stage failure
// aborts the request; there are no partial results and no retries.
func (p *Pipeline) Recommend(ctx context.Context, req models.RecommendationRequest) ([]models.Recommendation, error) {
	start := time.Now()
	log := logger.FromContext(ctx, p.logger)

	persona := classifypersona.Classify(req.DrivingStyle)
	fields := map[string]interface{}{
		"persona":         persona.String(),
		"budget":          req.Budget,
		"experienceLevel": req.ExperienceLevel,
	}

	result, err := p.run(ctx, req, persona, fields)

	status := "success"
	if err != nil {
		status = strings.ToLower(string(apperrors.CodeOf(err)))
	}
	elapsed := time.Since(start)
	metrics.RecommendationRequests.WithLabelValues(persona.String(), status).Inc()
	metrics.RecommendationDuration.WithLabelValues(persona.String()).Observe(elapsed.Seconds())
	p.obs.RecordRequest(ctx, persona.String(), status)
	p.obs.RecordDuration(ctx, elapsed, status)

	fields["durationMs"] = elapsed.Milliseconds()
	if err != nil {
		fields["errorCode"] = apperrors.CodeOf(err)
		log.Warn("recommendation failed", fields)
		return nil, err
	}

	fields["returned"] = len(result)
	log.Info("recommendation served", fields)
	return result, nil
}

func (p *Pipeline) run(ctx context.Context, req models.RecommendationRequest, persona models.Persona, fields map[string]interface{}) ([]models.Recommendation, error) {
	query, err := p.planner.Plan(req.Budget, persona)
	if err != nil {
		return nil, err
	}
	fields["priceCeiling"] = query.PriceCeiling.String()

	candidates, err := p.store.FindCandidates(ctx, query)
	if err != nil {
		return nil, apperrors.AsStandardError(err)
	}
	fields["candidates"] = len(candidates)
	metrics.CandidatesFetched.Observe(float64(len(candidates)))

	enriched, summary, err := p.enricher.EnrichAll(candidates, persona)
	if err != nil {
		return nil, err
	}
	for flag, n := range summary {
		metrics.EnrichmentFlags.WithLabelValues(string(flag)).Add(float64(n))
	}

	result, mode := p.composer.Compose(enriched)
	metrics.HunterInclusions.WithLabelValues(string(mode)).Inc()
	fields["hunterInclusion"] = string(mode)

	return result, nil
}
