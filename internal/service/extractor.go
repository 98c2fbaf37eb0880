package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"astromatch/internal/domain"
)

const (
	// Prefijo de aspectos retenido por sistema al extraer.
	maxAspectsPerSystem = 10
	// Un stellium requiere al menos tres cuerpos agrupados.
	minStelliumBodies = 3
)

// ExtractChartProfile convierte el payload crudo de una carta (anidado,
// claves con casing arbitrario, números a veces como strings) en un
// ChartProfile normalizado. Es una función pura: sin I/O ni estado.
// Falla solo cuando ningún sistema aporta posiciones recuperables.
func ExtractChartProfile(payload []byte) (domain.ChartProfile, error) {
	var raw map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return domain.ChartProfile{}, domain.NewMalformedChartError("invalid json: " + err.Error())
	}
	return ExtractChartProfileMap(raw)
}

// ExtractChartProfileMap extrae el perfil desde un payload ya decodificado.
func ExtractChartProfileMap(raw map[string]any) (domain.ChartProfile, error) {
	if raw == nil {
		return domain.ChartProfile{}, domain.NewMalformedChartError("empty payload")
	}

	profile := domain.ChartProfile{
		Placements:      make(map[domain.System]map[domain.Body]domain.Sign),
		Aspects:         make(map[domain.System][]domain.Aspect),
		Stelliums:       make(map[domain.System][]domain.Stellium),
		DominantElement: make(map[domain.System]string),
	}

	for _, sys := range domain.SystemOrder {
		sysRaw := lookupMap(raw, string(sys))
		if sysRaw == nil {
			continue
		}

		if placements := extractPlacements(sysRaw); len(placements) > 0 {
			profile.Placements[sys] = placements
		}
		if aspects := extractAspects(sysRaw); len(aspects) > 0 {
			profile.Aspects[sys] = aspects
		}
		if stelliums := extractStelliums(sysRaw); len(stelliums) > 0 {
			profile.Stelliums[sys] = stelliums
		}
		if element := lookupString(sysRaw, "dominant_element", "element"); element != "" {
			profile.DominantElement[sys] = normalizeName(element)
		}
	}

	if len(profile.Placements) == 0 {
		return domain.ChartProfile{}, domain.NewMalformedChartError("no placements recoverable for any system")
	}

	// Rising solo existe cuando se conoce la hora de nacimiento.
	for _, sys := range domain.SystemOrder {
		if _, ok := profile.Placement(sys, domain.BodyRising); ok {
			profile.HasKnownBirthTime = true
			break
		}
	}

	if numerology := lookupMap(raw, "numerology"); numerology != nil {
		profile.LifePath = parseNumberToken(lookupValue(numerology, "life_path", "lifepath", "life_path_number"))
		profile.DayNumber = parseNumberToken(lookupValue(numerology, "day", "day_number"))
	}
	profile.ChineseZodiac = normalizeName(lookupString(raw, "chinese_zodiac", "zodiac_animal", "chinese_sign"))

	return profile, nil
}

// extractPlacements acepta tanto un submapa "placements" como los cuerpos
// sueltos directamente dentro del objeto del sistema.
func extractPlacements(sysRaw map[string]any) map[domain.Body]domain.Sign {
	source := lookupMap(sysRaw, "placements", "positions", "signs")
	if source == nil {
		source = sysRaw
	}

	placements := make(map[domain.Body]domain.Sign)
	for key, value := range source {
		body, ok := parseBody(key)
		if !ok {
			continue
		}
		sign := normalizeName(asString(value))
		if sign == "" {
			continue
		}
		placements[body] = domain.Sign(sign)
	}
	if len(placements) == 0 {
		return nil
	}
	return placements
}

func extractAspects(sysRaw map[string]any) []domain.Aspect {
	items, ok := lookupValue(sysRaw, "aspects").([]any)
	if !ok {
		return nil
	}

	aspects := make([]domain.Aspect, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		bodyA, okA := parseBody(lookupString(entry, "body_a", "body1", "first"))
		bodyB, okB := parseBody(lookupString(entry, "body_b", "body2", "second"))
		aspectType := normalizeName(lookupString(entry, "type", "aspect", "aspect_type"))
		if !okA || !okB || aspectType == "" {
			continue
		}
		aspects = append(aspects, domain.Aspect{
			BodyA:    bodyA,
			BodyB:    bodyB,
			Type:     aspectType,
			Strength: asFloat(lookupValue(entry, "strength", "score")),
			Orb:      asFloat(lookupValue(entry, "orb")),
		})
	}

	// Pre-orden por fuerza descendente y orbe ascendente antes de truncar.
	sort.SliceStable(aspects, func(i, j int) bool {
		if aspects[i].Strength != aspects[j].Strength {
			return aspects[i].Strength > aspects[j].Strength
		}
		return aspects[i].Orb < aspects[j].Orb
	})
	if len(aspects) > maxAspectsPerSystem {
		aspects = aspects[:maxAspectsPerSystem]
	}
	return aspects
}

func extractStelliums(sysRaw map[string]any) []domain.Stellium {
	items, ok := lookupValue(sysRaw, "stelliums", "stellia").([]any)
	if !ok {
		return nil
	}

	var stelliums []domain.Stellium
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		kind := parseStelliumKind(lookupString(entry, "kind", "grouping", "type"))
		value := normalizeName(lookupString(entry, "value", "sign", "house"))
		count := int(asFloat(lookupValue(entry, "body_count", "count", "bodies")))
		if kind == "" || value == "" || count < minStelliumBodies {
			continue
		}
		stelliums = append(stelliums, domain.Stellium{
			Kind:      kind,
			Value:     value,
			BodyCount: count,
			Element:   normalizeName(lookupString(entry, "element")),
		})
	}
	return stelliums
}

func parseStelliumKind(raw string) domain.StelliumKind {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "sign":
		return domain.StelliumBySign
	case "house":
		return domain.StelliumByHouse
	}
	return ""
}

var bodyNames = map[string]domain.Body{
	"sun":       domain.BodySun,
	"moon":      domain.BodyMoon,
	"mercury":   domain.BodyMercury,
	"venus":     domain.BodyVenus,
	"mars":      domain.BodyMars,
	"jupiter":   domain.BodyJupiter,
	"saturn":    domain.BodySaturn,
	"uranus":    domain.BodyUranus,
	"neptune":   domain.BodyNeptune,
	"pluto":     domain.BodyPluto,
	"rising":    domain.BodyRising,
	"ascendant": domain.BodyRising,
	"asc":       domain.BodyRising,
}

func parseBody(raw string) (domain.Body, bool) {
	body, ok := bodyNames[normalizeKey(raw)]
	return body, ok
}

// parseNumberToken acepta números, strings numéricos y la forma compuesta
// de número maestro "33/6". Un número maestro simple ("33") recibe su
// reducción calculada para que la equivalencia funcione en ambos sentidos.
func parseNumberToken(value any) domain.NumberToken {
	s := strings.TrimSpace(asString(value))
	if s == "" {
		return domain.NumberToken{}
	}
	if raw, reduced, found := strings.Cut(s, "/"); found {
		return domain.NumberToken{Raw: strings.TrimSpace(raw), Reduced: strings.TrimSpace(reduced)}
	}
	return domain.NumberToken{Raw: s, Reduced: reduceMasterNumber(s)}
}

var masterNumbers = map[string]struct{}{"11": {}, "22": {}, "33": {}}

func reduceMasterNumber(raw string) string {
	if _, ok := masterNumbers[raw]; !ok {
		return ""
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return ""
	}
	for n > 9 {
		sum := 0
		for n > 0 {
			sum += n % 10
			n /= 10
		}
		n = sum
	}
	return strconv.Itoa(n)
}

// lookupValue busca la primera clave presente, tolerando casing y
// separadores arbitrarios en el payload.
func lookupValue(m map[string]any, keys ...string) any {
	if m == nil {
		return nil
	}
	for _, want := range keys {
		normalized := normalizeKey(want)
		for key, value := range m {
			if normalizeKey(key) == normalized {
				return value
			}
		}
	}
	return nil
}

func lookupMap(m map[string]any, keys ...string) map[string]any {
	nested, _ := lookupValue(m, keys...).(map[string]any)
	return nested
}

func lookupString(m map[string]any, keys ...string) string {
	return asString(lookupValue(m, keys...))
}

func normalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.ReplaceAll(key, "_", "")
	key = strings.ReplaceAll(key, "-", "")
	return key
}

// normalizeName deja nombres con mayúscula inicial ("aries" -> "Aries").
func normalizeName(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	lower := strings.ToLower(raw)
	return strings.ToUpper(lower[:1]) + lower[1:]
}

// asString tolera valores dados como número o string numérico.
func asString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case json.Number:
		return v.String()
	case nil:
		return ""
	}
	return fmt.Sprintf("%v", value)
}

func asFloat(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}
