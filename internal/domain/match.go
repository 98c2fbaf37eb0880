package domain

// MatchCategory es la categoría dominante asignada a un candidato para
// ordenamiento y display. Las familias de reglas no son excluyentes; el
// ranker elige la de mayor prioridad.
type MatchCategory string

const (
	CategoryStrict     MatchCategory = "strict"
	CategoryAspect     MatchCategory = "aspect"
	CategoryStellium   MatchCategory = "stellium"
	CategoryScoredOnly MatchCategory = "scored_only"
)

// Priority devuelve la prioridad de orden (menor primero). Strict gana
// siempre sobre Aspect, Aspect sobre Stellium, independiente del score.
func (c MatchCategory) Priority() int {
	switch c {
	case CategoryStrict:
		return 0
	case CategoryAspect:
		return 1
	case CategoryStellium:
		return 2
	}
	return 3
}

// MatchResult es la unidad de salida por candidato. Se crea fresca por
// query; este motor no la persiste (memoizar es trabajo del cache).
type MatchResult struct {
	CandidateID     string        `json:"candidate_id"`
	Name            string        `json:"name"`
	ReferenceURL    string        `json:"reference_url,omitempty"`
	Occupation      string        `json:"occupation,omitempty"`
	SimilarityScore float64       `json:"similarity_score"`
	MatchReasons    []string      `json:"match_reasons"`
	MatchCategory   MatchCategory `json:"match_category"`
}

// RankedResultList es la respuesta completa de un query de matching.
type RankedResultList struct {
	Matches       []MatchResult `json:"matches"`
	TotalCompared int           `json:"total_compared"`
	MatchesFound  int           `json:"matches_found"`
}
