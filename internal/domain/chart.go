package domain

import "strings"

// System identifica el sistema de coordenadas zodiacal. Los datos de un
// sistema nunca se comparan contra los del otro.
type System string

const (
	SystemSidereal System = "sidereal"
	SystemTropical System = "tropical"
)

// SystemOrder fija el orden de iteración para que los textos de razones
// sean byte-idénticos entre corridas.
var SystemOrder = []System{SystemSidereal, SystemTropical}

// DisplayName devuelve el nombre del sistema para textos de razones.
func (s System) DisplayName() string {
	switch s {
	case SystemSidereal:
		return "Sidereal"
	case SystemTropical:
		return "Tropical"
	}
	return string(s)
}

// Body es un cuerpo celeste (o el ascendente) dentro de una carta.
type Body string

const (
	BodySun     Body = "sun"
	BodyMoon    Body = "moon"
	BodyMercury Body = "mercury"
	BodyVenus   Body = "venus"
	BodyMars    Body = "mars"
	BodyJupiter Body = "jupiter"
	BodySaturn  Body = "saturn"
	BodyUranus  Body = "uranus"
	BodyNeptune Body = "neptune"
	BodyPluto   Body = "pluto"
	BodyRising  Body = "rising"
)

// BodyOrder fija el orden de iteración de cuerpos (Rising al final;
// solo presente cuando se conoce la hora de nacimiento).
var BodyOrder = []Body{
	BodySun, BodyMoon, BodyMercury, BodyVenus, BodyMars,
	BodyJupiter, BodySaturn, BodyUranus, BodyNeptune, BodyPluto,
	BodyRising,
}

// DisplayName devuelve el nombre del cuerpo con mayúscula inicial.
func (b Body) DisplayName() string {
	if b == "" {
		return ""
	}
	return strings.ToUpper(string(b[:1])) + string(b[1:])
}

// Sign es un signo zodiacal normalizado (ej: "Aries").
type Sign string

// Aspect es una relación angular entre dos cuerpos, con fuerza y orbe.
// La identidad para comparar entre perfiles es el par no ordenado más el tipo;
// fuerza y orbe solo ordenan el prefijo retenido dentro de cada perfil.
type Aspect struct {
	BodyA    Body    `json:"body_a"`
	BodyB    Body    `json:"body_b"`
	Type     string  `json:"type"`
	Strength float64 `json:"strength"`
	Orb      float64 `json:"orb"`
}

// PairKey devuelve la clave de identidad par-no-ordenado + tipo.
func (a Aspect) PairKey() string {
	x, y := string(a.BodyA), string(a.BodyB)
	if x > y {
		x, y = y, x
	}
	return x + "|" + y + "|" + strings.ToLower(a.Type)
}

// DisplayName devuelve el aspecto legible, ej: "Sun Trine Jupiter".
func (a Aspect) DisplayName() string {
	return a.BodyA.DisplayName() + " " + a.Type + " " + a.BodyB.DisplayName()
}

// StelliumKind distingue agrupaciones por signo o por casa.
type StelliumKind string

const (
	StelliumBySign  StelliumKind = "sign"
	StelliumByHouse StelliumKind = "house"
)

// Stellium es una agrupación de tres o más cuerpos en un mismo signo o casa.
type Stellium struct {
	Kind      StelliumKind `json:"kind"`
	Value     string       `json:"value"`
	BodyCount int          `json:"body_count"`
	Element   string       `json:"element,omitempty"`
}

// GroupKey devuelve la clave kind+value usada para detectar stelliums compartidos.
func (s Stellium) GroupKey() string {
	return string(s.Kind) + "|" + strings.ToLower(s.Value)
}

// NumberToken modela un número de numerología que puede tener forma compuesta
// de número maestro (ej: "33/6"). Dos tokens coinciden si cualquiera de sus
// representaciones coincide.
type NumberToken struct {
	Raw     string `json:"raw"`
	Reduced string `json:"reduced,omitempty"`
}

// IsZero indica si el token está vacío (dato no disponible).
func (t NumberToken) IsZero() bool {
	return t.Raw == "" && t.Reduced == ""
}

// Matches compara por intersección de representaciones: "33/6" coincide
// tanto con "33" como con "6".
func (t NumberToken) Matches(other NumberToken) bool {
	for _, a := range t.Forms() {
		for _, b := range other.Forms() {
			if a == b {
				return true
			}
		}
	}
	return false
}

// Forms devuelve todas las representaciones del token. Es el contrato de
// equivalencia compartido por el predicado en memoria y por la ingesta,
// que persiste exactamente estas formas en la columna life_path_forms.
func (t NumberToken) Forms() []string {
	if t.IsZero() {
		return nil
	}
	if t.Reduced == "" || t.Reduced == t.Raw {
		return []string{t.Raw}
	}
	return []string{t.Raw, t.Reduced}
}

// String devuelve la forma compuesta "33/6" o el valor simple.
func (t NumberToken) String() string {
	if t.Reduced != "" && t.Reduced != t.Raw {
		return t.Raw + "/" + t.Reduced
	}
	return t.Raw
}

// ChartProfile es el valor inmutable extraído una sola vez por carta.
// Invariante: cada campo por-sistema se llena solo con datos de ese sistema.
type ChartProfile struct {
	Placements        map[System]map[Body]Sign `json:"placements"`
	Aspects           map[System][]Aspect      `json:"aspects"`
	Stelliums         map[System][]Stellium    `json:"stelliums"`
	LifePath          NumberToken              `json:"life_path"`
	DayNumber         NumberToken              `json:"day_number"`
	ChineseZodiac     string                   `json:"chinese_zodiac,omitempty"`
	DominantElement   map[System]string        `json:"dominant_element,omitempty"`
	HasKnownBirthTime bool                     `json:"has_known_birth_time"`
}

// Placement devuelve el signo de un cuerpo en un sistema, si existe.
func (p ChartProfile) Placement(sys System, body Body) (Sign, bool) {
	bodies, ok := p.Placements[sys]
	if !ok {
		return "", false
	}
	sign, ok := bodies[body]
	return sign, ok && sign != ""
}

// HasAspectOrStelliumData indica si el perfil trae aspectos o stelliums
// en cualquiera de los dos sistemas.
func (p ChartProfile) HasAspectOrStelliumData() bool {
	for _, sys := range SystemOrder {
		if len(p.Aspects[sys]) > 0 || len(p.Stelliums[sys]) > 0 {
			return true
		}
	}
	return false
}
