package service

import (
	"reflect"
	"testing"

	"astromatch/internal/domain"
)

func TestBuildCandidatePredicate(t *testing.T) {
	query := placementsProfile("Aries", "Cancer", "Taurus", "Leo")
	query.LifePath = domain.NumberToken{Raw: "33", Reduced: "6"}
	query.ChineseZodiac = "Dragon"

	pred := BuildCandidatePredicate(query)

	if pred.SiderealSun != "Aries" || pred.SiderealMoon != "Cancer" {
		t.Fatalf("unexpected sidereal fields: %+v", pred)
	}
	if pred.TropicalSun != "Taurus" || pred.TropicalMoon != "Leo" {
		t.Fatalf("unexpected tropical fields: %+v", pred)
	}
	if !reflect.DeepEqual(pred.LifePathForms, []string{"33", "6"}) {
		t.Fatalf("expected both master forms, got %v", pred.LifePathForms)
	}
	if pred.ChineseZodiac != "Dragon" {
		t.Fatalf("unexpected zodiac: %q", pred.ChineseZodiac)
	}
}

func TestBuildCandidatePredicate_SparseProfile(t *testing.T) {
	query := domain.ChartProfile{
		Placements: map[domain.System]map[domain.Body]domain.Sign{
			domain.SystemTropical: {domain.BodySun: "Pisces"},
		},
	}

	pred := BuildCandidatePredicate(query)

	if pred.SiderealSun != "" || pred.SiderealMoon != "" || pred.TropicalMoon != "" {
		t.Fatalf("missing placements must stay empty: %+v", pred)
	}
	if pred.TropicalSun != "Pisces" {
		t.Fatalf("expected tropical sun carried over, got %q", pred.TropicalSun)
	}
	if len(pred.LifePathForms) != 0 || pred.ChineseZodiac != "" {
		t.Fatalf("missing numerology and zodiac must stay empty: %+v", pred)
	}
}
