package domain

import "strings"

// CandidateRecord es un perfil del catálogo más su metadata. Lo crea el
// proceso de ingesta; el motor de matching solo lo lee, nunca lo muta.
type CandidateRecord struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	ReferenceURL string       `json:"reference_url,omitempty"`
	Occupation   string       `json:"occupation,omitempty"`
	Popularity   int          `json:"popularity"`
	Profile      ChartProfile `json:"profile"`
}

// CandidatePredicate es el filtro escalar OR que acota el catálogo antes de
// clasificar y puntuar. Se evalúa solo sobre campos indexables; el repositorio
// Postgres lo traduce a SQL y el de memoria lo aplica con Matches.
type CandidatePredicate struct {
	SiderealSun   Sign
	SiderealMoon  Sign
	TropicalSun   Sign
	TropicalMoon  Sign
	LifePathForms []string
	ChineseZodiac string
}

// Matches evalúa el predicado contra un candidato. Un campo vacío del query
// nunca cuenta como coincidencia; un candidato con datos de aspectos o
// stelliums pasa siempre, para que esas familias de reglas tengan oportunidad.
func (p CandidatePredicate) Matches(c CandidateRecord) bool {
	if c.Profile.HasAspectOrStelliumData() {
		return true
	}
	if sign, ok := c.Profile.Placement(SystemSidereal, BodySun); ok && p.SiderealSun != "" && sign == p.SiderealSun {
		return true
	}
	if sign, ok := c.Profile.Placement(SystemSidereal, BodyMoon); ok && p.SiderealMoon != "" && sign == p.SiderealMoon {
		return true
	}
	if sign, ok := c.Profile.Placement(SystemTropical, BodySun); ok && p.TropicalSun != "" && sign == p.TropicalSun {
		return true
	}
	if sign, ok := c.Profile.Placement(SystemTropical, BodyMoon); ok && p.TropicalMoon != "" && sign == p.TropicalMoon {
		return true
	}
	for _, form := range p.LifePathForms {
		if form == "" {
			continue
		}
		for _, candForm := range c.Profile.LifePath.Forms() {
			if form == candForm {
				return true
			}
		}
	}
	if p.ChineseZodiac != "" && strings.EqualFold(p.ChineseZodiac, c.Profile.ChineseZodiac) {
		return true
	}
	return false
}
