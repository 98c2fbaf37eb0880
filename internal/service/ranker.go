package service

import (
	"sort"

	"astromatch/internal/domain"
)

// ScoredCandidate junta clasificación y score de un candidato ya evaluado.
type ScoredCandidate struct {
	Candidate      domain.CandidateRecord
	Classification Classification
	Score          float64
	ScoreReasons   []string
}

// DominantCategory elige la categoría de display por prioridad:
// Strict > Aspect > Stellium > ScoredOnly.
func (s ScoredCandidate) DominantCategory() domain.MatchCategory {
	switch {
	case s.Classification.Strict:
		return domain.CategoryStrict
	case s.Classification.Aspect:
		return domain.CategoryAspect
	case s.Classification.Stellium:
		return domain.CategoryStellium
	}
	return domain.CategoryScoredOnly
}

// RankResults descarta candidatos sin nada que reportar, ordena de forma
// determinista y trunca al límite pedido. El orden final depende solo de la
// clave de orden (categoría, score, ID), nunca del orden de llegada: eso es
// lo que mantiene la salida estable bajo evaluación paralela.
func RankResults(scored []ScoredCandidate, limit int) domain.RankedResultList {
	totalCompared := len(scored)

	results := make([]domain.MatchResult, 0, len(scored))
	for _, sc := range scored {
		if sc.Score == 0 && !sc.Classification.AnyMatch() {
			continue
		}
		reasons := make([]string, 0, len(sc.Classification.Reasons)+len(sc.ScoreReasons))
		reasons = append(reasons, sc.Classification.Reasons...)
		reasons = append(reasons, sc.ScoreReasons...)
		results = append(results, domain.MatchResult{
			CandidateID:     sc.Candidate.ID,
			Name:            sc.Candidate.Name,
			ReferenceURL:    sc.Candidate.ReferenceURL,
			Occupation:      sc.Candidate.Occupation,
			SimilarityScore: sc.Score,
			MatchReasons:    reasons,
			MatchCategory:   sc.DominantCategory(),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		pi, pj := results[i].MatchCategory.Priority(), results[j].MatchCategory.Priority()
		if pi != pj {
			return pi < pj
		}
		if results[i].SimilarityScore != results[j].SimilarityScore {
			return results[i].SimilarityScore > results[j].SimilarityScore
		}
		return results[i].CandidateID < results[j].CandidateID
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	return domain.RankedResultList{
		Matches:       results,
		TotalCompared: totalCompared,
		MatchesFound:  len(results),
	}
}
