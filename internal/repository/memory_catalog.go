package repository

import (
	"context"

	"astromatch/internal/domain"
)

// MemoryCatalogRepository mantiene el catálogo en memoria. Sirve para tests
// y para la herramienta offline; aplica exactamente el mismo predicado que
// la implementación Postgres, evaluado en Go.
type MemoryCatalogRepository struct {
	records []domain.CandidateRecord
}

func NewMemoryCatalogRepository(records []domain.CandidateRecord) *MemoryCatalogRepository {
	return &MemoryCatalogRepository{records: records}
}

func (r *MemoryCatalogRepository) FetchCandidates(ctx context.Context, pred domain.CandidatePredicate, cap int) ([]domain.CandidateRecord, error) {
	if cap <= 0 {
		cap = 1
	}
	var candidates []domain.CandidateRecord
	for _, record := range r.records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !pred.Matches(record) {
			continue
		}
		candidates = append(candidates, record)
		if len(candidates) >= cap {
			break
		}
	}
	return candidates, nil
}
