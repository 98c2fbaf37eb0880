package repository

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5/pgxpool"

	"astromatch/internal/domain"
)

// CatalogRepository expone el catálogo de perfiles precomputados. El motor
// solo emite el OR-predicado escalar; no necesita garantías de orden ni
// transaccionales de esta llamada.
type CatalogRepository interface {
	FetchCandidates(ctx context.Context, pred domain.CandidatePredicate, cap int) ([]domain.CandidateRecord, error)
}

type PgCatalogRepository struct {
	pool *pgxpool.Pool
}

func NewPgCatalogRepository(pool *pgxpool.Pool) *PgCatalogRepository {
	return &PgCatalogRepository{pool: pool}
}

// FetchCandidates traduce el predicado a SQL sobre las columnas escalares
// indexadas; el perfil completo viaja como documento JSONB. Los campos
// vacíos del query quedan neutralizados con el guard <> ''.
//
// Contrato de almacenamiento con la ingesta: life_path_forms guarda
// NumberToken.Forms() del candidato (forma cruda y reducida), así el
// solape && reproduce la equivalencia de número maestro del predicado en
// memoria; has_aspect_data y has_stellium_data marcan secuencias no
// vacías en cualquiera de los dos sistemas.
func (r *PgCatalogRepository) FetchCandidates(ctx context.Context, pred domain.CandidatePredicate, cap int) ([]domain.CandidateRecord, error) {
	const query = `
		SELECT id, name, reference_url, occupation, popularity, profile
		FROM catalog_profiles
		WHERE ($1 <> '' AND sidereal_sun = $1)
		   OR ($2 <> '' AND sidereal_moon = $2)
		   OR ($3 <> '' AND tropical_sun = $3)
		   OR ($4 <> '' AND tropical_moon = $4)
		   OR (cardinality($5::text[]) > 0 AND life_path_forms && $5::text[])
		   OR ($6 <> '' AND chinese_zodiac = $6)
		   OR has_aspect_data
		   OR has_stellium_data
		LIMIT $7
	`

	if cap <= 0 {
		cap = 1
	}
	lifePathForms := pred.LifePathForms
	if lifePathForms == nil {
		lifePathForms = []string{}
	}

	rows, err := r.pool.Query(ctx, query,
		string(pred.SiderealSun),
		string(pred.SiderealMoon),
		string(pred.TropicalSun),
		string(pred.TropicalMoon),
		lifePathForms,
		pred.ChineseZodiac,
		cap,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}
	defer rows.Close()

	var candidates []domain.CandidateRecord
	for rows.Next() {
		var record domain.CandidateRecord
		var profileRaw []byte
		if err := rows.Scan(
			&record.ID,
			&record.Name,
			&record.ReferenceURL,
			&record.Occupation,
			&record.Popularity,
			&profileRaw,
		); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		if err := json.Unmarshal(profileRaw, &record.Profile); err != nil {
			return nil, fmt.Errorf("decode candidate profile %s: %w", record.ID, err)
		}
		candidates = append(candidates, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}
	return candidates, nil
}
