// internal/govcheck/handler.go
package govcheck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "motomind/internal/common/errors"
	"motomind/internal/common/logger"
	"motomind/internal/common/metrics"
)

const (
	ComponentName = "gov-check"
	dateLayout    = "2006-01-02"
)

var platePattern = regexp.MustCompile(`^\d{2,3}-\d{2,3}-\d{2}$`)

// Handler answers read-only lookups against government vehicle records
// that an external loader keeps in Redis.
type Handler struct {
	config *Config
	redis  *redis.Client
	logger logger.Logger
	now    func() time.Time
}

func NewHandler(config *Config, redisClient *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		redis:  redisClient,
		logger: log.WithFields(map[string]interface{}{"component": ComponentName}),
		now:    time.Now,
	}
}

// Lookup fetches the record for plate and derives its status.
func (h *Handler) Lookup(ctx context.Context, plate string) (*Output, error) {
	if !platePattern.MatchString(plate) {
		return nil, apperrors.NewInvalidPlateError(plate)
	}

	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	key := h.config.KeyPrefix + plate
	val, err := h.redis.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.GovChecks.WithLabelValues("not_found").Inc()
			return nil, apperrors.NewGovRecordNotFoundError(plate)
		}
		metrics.GovChecks.WithLabelValues("error").Inc()
		return nil, apperrors.NewGovLookupFailedError(err)
	}

	var rec Record
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		metrics.GovChecks.WithLabelValues("error").Inc()
		return nil, apperrors.NewGovLookupFailedError(fmt.Errorf("decode %s: %w", key, err))
	}

	status, err := h.status(rec)
	if err != nil {
		metrics.GovChecks.WithLabelValues("error").Inc()
		return nil, apperrors.NewGovLookupFailedError(fmt.Errorf("record %s: %w", key, err))
	}
	metrics.GovChecks.WithLabelValues(string(status)).Inc()

	h.logger.Debug("gov record resolved", map[string]interface{}{
		"plate":  plate,
		"status": status,
	})

	return &Output{
		Plate:        plate,
		SafetyGrade:  rec.Safety,
		TestValidity: rec.TestValidity,
		Stolen:       rec.Stolen,
		Status:       status,
	}, nil
}

func (h *Handler) status(rec Record) (Status, error) {
	if rec.Stolen {
		return StatusStolen, nil
	}
	validUntil, err := time.Parse(dateLayout, rec.TestValidity)
	if err != nil {
		return "", fmt.Errorf("test_validity: %w", err)
	}
	today := h.now().UTC().Truncate(24 * time.Hour)
	if validUntil.Before(today) {
		return StatusTestExpired, nil
	}
	return StatusValid, nil
}

// Ping reports whether the registry backend is reachable.
func (h *Handler) Ping(ctx context.Context) error {
	return h.redis.Ping(ctx).Err()
}
