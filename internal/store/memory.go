// internal/store/memory.go
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	apperrors "motomind/internal/common/errors"
	"motomind/internal/models"
)

// MemoryListing is a fixture row: a candidate plus its listing status.
type MemoryListing struct {
	models.Recommendation
	Status string
}

// MemoryListingStore evaluates a CandidateQuery over in-memory rows with
// the same semantics as the SQL statement, NULL sort keys last. It backs
// tests and local demos.
type MemoryListingStore struct {
	mu   sync.RWMutex
	rows []MemoryListing
}

func NewMemoryListingStore(rows ...MemoryListing) *MemoryListingStore {
	return &MemoryListingStore{rows: rows}
}

// Add appends fixture rows.
func (s *MemoryListingStore) Add(rows ...MemoryListing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, rows...)
}

func (s *MemoryListingStore) FindCandidates(ctx context.Context, q *models.CandidateQuery) ([]models.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewStoreUnavailableError(err)
	}
	// same validation as the SQL path
	if _, _, err := BuildCandidateSQL(q); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.mu.RLock()
	matched := make([]models.Recommendation, 0, len(s.rows))
	for _, row := range s.rows {
		if row.Status != q.Status || !q.Admits(decimal.NewFromFloat(row.Price)) {
			continue
		}
		rec := row.Recommendation
		rec.ScoreBundle = rec.ScoreBundle.Clone()
		matched = append(matched, rec)
	}
	s.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return less(matched[i], matched[j], q.OrderBy)
	})

	if len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

func less(a, b models.Recommendation, keys []models.SortKey) bool {
	for _, key := range keys {
		av, bv := sortValue(a, key.Column), sortValue(b, key.Column)
		switch {
		case av == nil && bv == nil:
			continue
		case av == nil:
			return false
		case bv == nil:
			return true
		case *av == *bv:
			continue
		case key.Direction == models.Descending:
			return *av > *bv
		default:
			return *av < *bv
		}
	}
	return false
}

func sortValue(r models.Recommendation, col models.SortColumn) *float64 {
	switch col {
	case models.SortSafetyGrade:
		if r.SafetyGrade == nil {
			return nil
		}
		v := float64(*r.SafetyGrade)
		return &v
	case models.SortReliabilityScore:
		return r.ReliabilityScore
	case models.SortMaintenanceCost:
		return r.MaintenanceCost
	case models.SortResaleValue24m:
		return r.ResaleValue24m
	case models.SortSmartScore:
		return r.SmartScore
	default:
		return nil
	}
}
