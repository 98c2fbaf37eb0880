package service

import "astromatch/internal/domain"

// BuildCandidatePredicate arma el filtro escalar OR a partir del perfil del
// query. Solo usa campos indexables; la clasificación cara corre después,
// sobre el conjunto ya acotado. Nunca falla: un predicado vacío simplemente
// no selecciona candidatos por campos escalares.
func BuildCandidatePredicate(query domain.ChartProfile) domain.CandidatePredicate {
	pred := domain.CandidatePredicate{
		ChineseZodiac: query.ChineseZodiac,
	}
	if sign, ok := query.Placement(domain.SystemSidereal, domain.BodySun); ok {
		pred.SiderealSun = sign
	}
	if sign, ok := query.Placement(domain.SystemSidereal, domain.BodyMoon); ok {
		pred.SiderealMoon = sign
	}
	if sign, ok := query.Placement(domain.SystemTropical, domain.BodySun); ok {
		pred.TropicalSun = sign
	}
	if sign, ok := query.Placement(domain.SystemTropical, domain.BodyMoon); ok {
		pred.TropicalMoon = sign
	}
	pred.LifePathForms = query.LifePath.Forms()
	return pred
}
