package service

import (
	"testing"

	"astromatch/internal/domain"
)

func TestQueryFingerprint_Stable(t *testing.T) {
	profile := placementsProfile("Aries", "Cancer", "Taurus", "Leo")
	profile.LifePath = domain.NumberToken{Raw: "33", Reduced: "6"}
	profile.ChineseZodiac = "Dragon"

	first := QueryFingerprint(profile, 10)
	second := QueryFingerprint(profile, 10)
	if first != second {
		t.Fatalf("fingerprint must be stable: %s vs %s", first, second)
	}
	if len(first) != 16 {
		t.Fatalf("expected 16 hex chars, got %q", first)
	}
}

func TestQueryFingerprint_LimitChangesHash(t *testing.T) {
	profile := placementsProfile("Aries", "Cancer", "Taurus", "Leo")
	if QueryFingerprint(profile, 10) == QueryFingerprint(profile, 11) {
		t.Fatalf("different limits must not share a fingerprint")
	}
}

func TestQueryFingerprint_ProfileChangesHash(t *testing.T) {
	a := placementsProfile("Aries", "Cancer", "Taurus", "Leo")
	b := placementsProfile("Aries", "Cancer", "Taurus", "Virgo")
	if QueryFingerprint(a, 10) == QueryFingerprint(b, 10) {
		t.Fatalf("different profiles must not share a fingerprint")
	}
}

func TestQueryFingerprint_SystemsNotInterchangeable(t *testing.T) {
	a := domain.ChartProfile{
		Placements: map[domain.System]map[domain.Body]domain.Sign{
			domain.SystemSidereal: {domain.BodySun: "Aries"},
		},
	}
	b := domain.ChartProfile{
		Placements: map[domain.System]map[domain.Body]domain.Sign{
			domain.SystemTropical: {domain.BodySun: "Aries"},
		},
	}
	if QueryFingerprint(a, 10) == QueryFingerprint(b, 10) {
		t.Fatalf("the same sign in different systems must hash differently")
	}
}
