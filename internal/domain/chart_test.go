package domain

import "testing"

func TestNumberTokenMatches_MasterEquivalence(t *testing.T) {
	compound := NumberToken{Raw: "33", Reduced: "6"}

	if !compound.Matches(NumberToken{Raw: "33"}) {
		t.Fatalf("expected 33/6 to match 33")
	}
	if !compound.Matches(NumberToken{Raw: "6"}) {
		t.Fatalf("expected 33/6 to match 6")
	}
	if !(NumberToken{Raw: "6"}).Matches(compound) {
		t.Fatalf("expected 6 to match 33/6")
	}
	if compound.Matches(NumberToken{Raw: "7"}) {
		t.Fatalf("did not expect 33/6 to match 7")
	}
}

func TestNumberTokenMatches_EmptyNeverMatches(t *testing.T) {
	if (NumberToken{}).Matches(NumberToken{}) {
		t.Fatalf("empty tokens must not match each other")
	}
	if (NumberToken{Raw: "7"}).Matches(NumberToken{}) {
		t.Fatalf("a value must not match a missing token")
	}
}

func TestNumberTokenForms(t *testing.T) {
	forms := (NumberToken{Raw: "33", Reduced: "6"}).Forms()
	if len(forms) != 2 || forms[0] != "33" || forms[1] != "6" {
		t.Fatalf("expected both master forms, got %v", forms)
	}
	if forms := (NumberToken{Raw: "7"}).Forms(); len(forms) != 1 || forms[0] != "7" {
		t.Fatalf("expected single form, got %v", forms)
	}
	if forms := (NumberToken{}).Forms(); forms != nil {
		t.Fatalf("expected no forms for an empty token, got %v", forms)
	}
}

func TestNumberTokenString(t *testing.T) {
	if got := (NumberToken{Raw: "33", Reduced: "6"}).String(); got != "33/6" {
		t.Fatalf("expected 33/6, got %q", got)
	}
	if got := (NumberToken{Raw: "7"}).String(); got != "7" {
		t.Fatalf("expected 7, got %q", got)
	}
}

func TestAspectPairKey_Unordered(t *testing.T) {
	a := Aspect{BodyA: BodySun, BodyB: BodyJupiter, Type: "Trine"}
	b := Aspect{BodyA: BodyJupiter, BodyB: BodySun, Type: "trine"}
	if a.PairKey() != b.PairKey() {
		t.Fatalf("expected unordered pair keys to be equal: %q vs %q", a.PairKey(), b.PairKey())
	}
	c := Aspect{BodyA: BodySun, BodyB: BodyJupiter, Type: "Square"}
	if a.PairKey() == c.PairKey() {
		t.Fatalf("different aspect types must not share a key")
	}
}

func TestMatchCategoryPriority(t *testing.T) {
	order := []MatchCategory{CategoryStrict, CategoryAspect, CategoryStellium, CategoryScoredOnly}
	for i := 1; i < len(order); i++ {
		if order[i-1].Priority() >= order[i].Priority() {
			t.Fatalf("expected %s to outrank %s", order[i-1], order[i])
		}
	}
}

func TestCandidatePredicateMatches(t *testing.T) {
	record := CandidateRecord{
		ID: "c1",
		Profile: ChartProfile{
			Placements: map[System]map[Body]Sign{
				SystemSidereal: {BodySun: "Aries"},
				SystemTropical: {BodySun: "Taurus"},
			},
			LifePath:      NumberToken{Raw: "33", Reduced: "6"},
			ChineseZodiac: "Dragon",
		},
	}

	pred := CandidatePredicate{SiderealSun: "Aries"}
	if !pred.Matches(record) {
		t.Fatalf("expected sidereal sun match")
	}

	// El signo tropical del candidato no debe satisfacer el campo sidereal.
	pred = CandidatePredicate{SiderealSun: "Taurus"}
	if pred.Matches(record) {
		t.Fatalf("tropical placement must not satisfy a sidereal predicate field")
	}

	pred = CandidatePredicate{LifePathForms: []string{"6"}}
	if !pred.Matches(record) {
		t.Fatalf("expected reduced life path form to match")
	}

	pred = CandidatePredicate{ChineseZodiac: "dragon"}
	if !pred.Matches(record) {
		t.Fatalf("expected case-insensitive zodiac match")
	}

	pred = CandidatePredicate{}
	if pred.Matches(record) {
		t.Fatalf("empty predicate must not match a candidate without aspect data")
	}
}

func TestCandidatePredicateMatches_ReducedFormSelectsMaster(t *testing.T) {
	// Candidato guardado con número maestro y sin datos de aspectos ni
	// stelliums: solo el campo numerológico puede seleccionarlo.
	record := CandidateRecord{
		ID: "c3",
		Profile: ChartProfile{
			LifePath: NumberToken{Raw: "33", Reduced: "6"},
		},
	}

	pred := CandidatePredicate{LifePathForms: []string{"6"}}
	if !pred.Matches(record) {
		t.Fatalf("a reduced-form query must select a master-number candidate")
	}

	pred = CandidatePredicate{LifePathForms: []string{"33"}}
	if !pred.Matches(record) {
		t.Fatalf("a master-form query must select a master-number candidate")
	}

	pred = CandidatePredicate{LifePathForms: []string{"7"}}
	if pred.Matches(record) {
		t.Fatalf("unrelated life path forms must not match")
	}
}

func TestCandidatePredicateMatches_AspectDataAlwaysPasses(t *testing.T) {
	record := CandidateRecord{
		ID: "c2",
		Profile: ChartProfile{
			Aspects: map[System][]Aspect{
				SystemSidereal: {{BodyA: BodySun, BodyB: BodyMoon, Type: "Trine"}},
			},
		},
	}
	if !(CandidatePredicate{}).Matches(record) {
		t.Fatalf("a candidate with aspect data must pass the filter regardless of scalar fields")
	}

	stelliumOnly := CandidateRecord{
		ID: "c4",
		Profile: ChartProfile{
			Stelliums: map[System][]Stellium{
				SystemTropical: {{Kind: StelliumBySign, Value: "Taurus", BodyCount: 3}},
			},
		},
	}
	if !(CandidatePredicate{}).Matches(stelliumOnly) {
		t.Fatalf("a candidate with stellium data must pass the filter regardless of scalar fields")
	}
}
