// internal/server/handlers.go
package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	apperrors "motomind/internal/common/errors"
	"motomind/internal/common/logger"
	"motomind/internal/models"
)

const maxBodyBytes = 64 << 10

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.errHandler.WriteHTTPError(w, r, apperrors.NewInvalidRequestError("read body: "+err.Error()))
		return
	}

	if result := s.validator.Validate(body); !result.Valid {
		s.errHandler.WriteHTTPError(w, r, apperrors.NewInvalidRequestError(result.Summary()))
		return
	}

	req, err := decodeRecommendationRequest(body)
	if err != nil {
		s.errHandler.WriteHTTPError(w, r, apperrors.NewInvalidRequestError(err.Error()))
		return
	}

	recs, err := s.deps.Recommender.Recommend(r.Context(), req)
	if err != nil {
		s.errHandler.WriteHTTPError(w, r, err)
		return
	}
	if recs == nil {
		recs = []models.Recommendation{}
	}

	writeJSON(w, http.StatusOK, recs)
}

// decodeRecommendationRequest reads a schema-checked body. drivingStyle
// and experienceLevel that are not strings are treated as absent.
func decodeRecommendationRequest(body []byte) (models.RecommendationRequest, error) {
	var raw struct {
		Budget          float64     `json:"budget"`
		DrivingStyle    interface{} `json:"drivingStyle"`
		ExperienceLevel interface{} `json:"experienceLevel"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return models.RecommendationRequest{}, err
	}

	req := models.RecommendationRequest{Budget: raw.Budget}
	if s, ok := raw.DrivingStyle.(string); ok {
		req.DrivingStyle = s
	}
	if s, ok := raw.ExperienceLevel.(string); ok {
		req.ExperienceLevel = s
	}
	return req, nil
}

func (s *Server) handleGovCheck(w http.ResponseWriter, r *http.Request) {
	out, err := s.deps.GovCheck.Lookup(r.Context(), r.PathValue("plate"))
	if err != nil {
		s.errHandler.WriteHTTPError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := make(map[string]string, len(s.deps.Readiness))
	ready := true
	for name, p := range s.deps.Readiness {
		if err := p.Ping(ctx); err != nil {
			ready = false
			checks[name] = "unavailable"
			logger.FromContext(r.Context(), s.logger).Warn("readiness check failed", map[string]interface{}{
				"dependency": name,
				"error":      err.Error(),
			})
			continue
		}
		checks[name] = "ok"
	}

	if !ready {
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{"status": "not ready", "checks": checks})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ready", "checks": checks})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
