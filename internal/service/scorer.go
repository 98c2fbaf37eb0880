package service

import (
	"fmt"
	"strings"

	"astromatch/internal/domain"
)

// Pesos por factor. Los de posiciones aplican por sistema; los de
// numerología y zodiaco chino son agnósticos al sistema.
var placementWeights = []struct {
	Body   domain.Body
	Weight float64
}{
	{domain.BodySun, 8},
	{domain.BodyMoon, 8},
	{domain.BodyMercury, 3},
	{domain.BodyVenus, 3},
	{domain.BodyMars, 3},
	{domain.BodyJupiter, 2},
	{domain.BodySaturn, 2},
	{domain.BodyUranus, 1.5},
	{domain.BodyNeptune, 1.5},
	{domain.BodyPluto, 1.5},
}

const (
	risingWeight   = 4
	aspectWeight   = 2
	lifePathWeight = 5
	dayWeight      = 3
	zodiacWeight   = 4
	elementWeight  = 2
)

// SimilarityScorer calcula el score continuo 0-100, independiente de la
// clasificación. El denominador es dinámico: cada factor suma a los puntos
// posibles solo cuando ambos lados tienen el dato, así un perfil con datos
// opcionales faltantes no queda penalizado frente a uno completo.
type SimilarityScorer struct{}

// Score devuelve el score normalizado y las razones de cada factor ganado.
// Las razones se generan iterando sistemas y cuerpos en orden declarado,
// para que dos corridas sobre el mismo input sean byte-idénticas.
func (SimilarityScorer) Score(query, candidate domain.ChartProfile) (float64, []string) {
	var earned, possible float64
	var reasons []string

	for _, sys := range domain.SystemOrder {
		for _, pw := range placementWeights {
			querySign, okQ := query.Placement(sys, pw.Body)
			candidateSign, okC := candidate.Placement(sys, pw.Body)
			if !okQ || !okC {
				continue
			}
			possible += pw.Weight
			if querySign == candidateSign {
				earned += pw.Weight
				reasons = append(reasons, fmt.Sprintf("%s %s: both %s", sys.DisplayName(), pw.Body.DisplayName(), querySign))
			}
		}

		// Rising entra al numerador y al denominador solo cuando ambos
		// lados conocen la hora de nacimiento.
		if query.HasKnownBirthTime && candidate.HasKnownBirthTime {
			querySign, okQ := query.Placement(sys, domain.BodyRising)
			candidateSign, okC := candidate.Placement(sys, domain.BodyRising)
			if okQ && okC {
				possible += risingWeight
				if querySign == candidateSign {
					earned += risingWeight
					reasons = append(reasons, fmt.Sprintf("%s Rising: both %s", sys.DisplayName(), querySign))
				}
			}
		}

		sharedAspects, possibleAspects := countSharedAspects(query.Aspects[sys], candidate.Aspects[sys])
		if possibleAspects > 0 {
			possible += aspectWeight * float64(possibleAspects)
			if sharedAspects > 0 {
				earned += aspectWeight * float64(sharedAspects)
				reasons = append(reasons, fmt.Sprintf("%d %s aspects in common", sharedAspects, sys.DisplayName()))
			}
		}
	}

	if !query.LifePath.IsZero() && !candidate.LifePath.IsZero() {
		possible += lifePathWeight
		if query.LifePath.Matches(candidate.LifePath) {
			earned += lifePathWeight
			reasons = append(reasons, fmt.Sprintf("Life path number %s in common", query.LifePath))
		}
	}
	if !query.DayNumber.IsZero() && !candidate.DayNumber.IsZero() {
		possible += dayWeight
		if query.DayNumber.Matches(candidate.DayNumber) {
			earned += dayWeight
			reasons = append(reasons, fmt.Sprintf("Day number %s in common", query.DayNumber))
		}
	}
	if query.ChineseZodiac != "" && candidate.ChineseZodiac != "" {
		possible += zodiacWeight
		if strings.EqualFold(query.ChineseZodiac, candidate.ChineseZodiac) {
			earned += zodiacWeight
			reasons = append(reasons, fmt.Sprintf("Same Chinese zodiac animal (%s)", query.ChineseZodiac))
		}
	}
	for _, sys := range domain.SystemOrder {
		queryElement := query.DominantElement[sys]
		candidateElement := candidate.DominantElement[sys]
		if queryElement == "" || candidateElement == "" {
			continue
		}
		possible += elementWeight
		if strings.EqualFold(queryElement, candidateElement) {
			earned += elementWeight
			reasons = append(reasons, fmt.Sprintf("Dominant %s element: both %s", sys.DisplayName(), queryElement))
		}
	}

	if possible == 0 {
		return 0, reasons
	}
	return 100 * earned / possible, reasons
}

// countSharedAspects compara los prefijos top-10 de ambos perfiles por par
// no ordenado más tipo. Los puntos posibles son el mínimo de los dos
// prefijos: más de eso no puede coincidir.
func countSharedAspects(queryAspects, candidateAspects []domain.Aspect) (shared, possible int) {
	if len(queryAspects) == 0 || len(candidateAspects) == 0 {
		return 0, 0
	}
	possible = len(queryAspects)
	if len(candidateAspects) < possible {
		possible = len(candidateAspects)
	}
	candidateKeys := aspectKeySet(candidateAspects)
	for _, aspect := range queryAspects {
		if _, ok := candidateKeys[aspect.PairKey()]; ok {
			shared++
		}
	}
	if shared > possible {
		shared = possible
	}
	return shared, possible
}
