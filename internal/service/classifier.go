package service

import (
	"fmt"
	"strings"

	"astromatch/internal/domain"
)

// Prefijo de aspectos que mira la clasificación (el scorer usa el prefijo
// completo retenido por el extractor).
const classifierAspectPrefix = 3

// Mínimo de aspectos compartidos en el prefijo para declarar match Aspect.
const minSharedAspects = 2

// MatchClassifier evalúa las tres familias de reglas de forma independiente.
// Cada regla es conmutativa: intercambiar query y candidato produce los
// mismos booleanos. Un dato ausente en cualquiera de los dos lados cuenta
// como no-match, nunca como error.
type MatchClassifier struct{}

// Classification es el resultado booleano por familia más las razones
// legibles, en orden estable: strict, luego aspect, luego stellium.
type Classification struct {
	Strict   bool
	Aspect   bool
	Stellium bool
	Reasons  []string
}

// AnyMatch indica si alguna familia de reglas dio match.
func (c Classification) AnyMatch() bool {
	return c.Strict || c.Aspect || c.Stellium
}

// Classify corre las tres familias contra un candidato.
func (MatchClassifier) Classify(query, candidate domain.ChartProfile) Classification {
	var cl Classification
	var reasons []string

	cl.Strict, reasons = classifyStrict(query, candidate)
	cl.Reasons = append(cl.Reasons, reasons...)

	cl.Aspect, reasons = classifyAspects(query, candidate)
	cl.Reasons = append(cl.Reasons, reasons...)

	cl.Stellium, reasons = classifyStelliums(query, candidate)
	cl.Reasons = append(cl.Reasons, reasons...)

	return cl
}

// classifyStrict evalúa las cuatro sub-reglas estrictas. Las comparaciones
// de signos son siempre dentro del mismo sistema.
func classifyStrict(query, candidate domain.ChartProfile) (bool, []string) {
	var reasons []string

	// a/b: Sol y Luna iguales dentro de un mismo sistema.
	for _, sys := range domain.SystemOrder {
		sunMatch, sunSign := samePlacement(query, candidate, sys, domain.BodySun)
		moonMatch, moonSign := samePlacement(query, candidate, sys, domain.BodyMoon)
		if sunMatch && moonMatch {
			reasons = append(reasons, fmt.Sprintf("Same %s Sun and Moon signs (%s, %s)", sys.DisplayName(), sunSign, moonSign))
		}
	}

	// c: día y camino de vida iguales, con equivalencia de número maestro
	// aplicada a cada uno por separado.
	dayMatch := query.DayNumber.Matches(candidate.DayNumber)
	lifeMatch := query.LifePath.Matches(candidate.LifePath)
	if dayMatch && lifeMatch {
		reasons = append(reasons, fmt.Sprintf("Same life path and day numbers (%s, %s)", query.LifePath, query.DayNumber))
	}

	// d: animal zodiacal chino igual más alguna coincidencia numerológica.
	zodiacMatch := query.ChineseZodiac != "" && strings.EqualFold(query.ChineseZodiac, candidate.ChineseZodiac)
	if zodiacMatch && (dayMatch || lifeMatch) {
		reasons = append(reasons, fmt.Sprintf("Same Chinese zodiac animal (%s) with shared numerology", query.ChineseZodiac))
	}

	return len(reasons) > 0, reasons
}

// classifyAspects cuenta aspectos compartidos en el prefijo top-3, sistema
// por sistema. Un match en cualquiera de los dos sistemas basta; las razones
// nombran el sistema y los pares coincidentes.
func classifyAspects(query, candidate domain.ChartProfile) (bool, []string) {
	var reasons []string
	matched := false

	for _, sys := range domain.SystemOrder {
		queryPrefix := aspectPrefix(query.Aspects[sys], classifierAspectPrefix)
		candidateKeys := aspectKeySet(aspectPrefix(candidate.Aspects[sys], classifierAspectPrefix))
		if len(queryPrefix) == 0 || len(candidateKeys) == 0 {
			continue
		}

		var shared []string
		for _, aspect := range queryPrefix {
			if _, ok := candidateKeys[aspect.PairKey()]; ok {
				shared = append(shared, aspect.DisplayName())
			}
		}
		if len(shared) >= minSharedAspects {
			matched = true
			reasons = append(reasons, fmt.Sprintf("%s aspects in common: %s", sys.DisplayName(), strings.Join(shared, ", ")))
		}
	}

	return matched, reasons
}

// classifyStelliums busca un stellium compartido (mismo kind y mismo valor)
// dentro de cada sistema. Jamás se compara un stellium Sidereal contra uno
// Tropical.
func classifyStelliums(query, candidate domain.ChartProfile) (bool, []string) {
	var reasons []string
	matched := false

	for _, sys := range domain.SystemOrder {
		candidateKeys := make(map[string]struct{}, len(candidate.Stelliums[sys]))
		for _, st := range candidate.Stelliums[sys] {
			candidateKeys[st.GroupKey()] = struct{}{}
		}
		for _, st := range query.Stelliums[sys] {
			if _, ok := candidateKeys[st.GroupKey()]; !ok {
				continue
			}
			matched = true
			if st.Kind == domain.StelliumBySign {
				reasons = append(reasons, fmt.Sprintf("Shared %s sign stellium in %s", sys.DisplayName(), st.Value))
			} else {
				reasons = append(reasons, fmt.Sprintf("Shared %s house stellium in house %s", sys.DisplayName(), st.Value))
			}
		}
	}

	return matched, reasons
}

func samePlacement(query, candidate domain.ChartProfile, sys domain.System, body domain.Body) (bool, domain.Sign) {
	querySign, okQ := query.Placement(sys, body)
	candidateSign, okC := candidate.Placement(sys, body)
	if !okQ || !okC || querySign != candidateSign {
		return false, ""
	}
	return true, querySign
}

func aspectPrefix(aspects []domain.Aspect, n int) []domain.Aspect {
	if len(aspects) > n {
		return aspects[:n]
	}
	return aspects
}

func aspectKeySet(aspects []domain.Aspect) map[string]struct{} {
	keys := make(map[string]struct{}, len(aspects))
	for _, aspect := range aspects {
		keys[aspect.PairKey()] = struct{}{}
	}
	return keys
}
