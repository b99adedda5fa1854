// internal/store/store.go
package store

import (
	"context"

	"motomind/internal/models"
)

// ListingStore returns the candidate rows for a planned query, already
// filtered, ordered and limited. Each call returns fresh values the caller
// may keep.
type ListingStore interface {
	FindCandidates(ctx context.Context, q *models.CandidateQuery) ([]models.Recommendation, error)
}
