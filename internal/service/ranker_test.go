package service

import (
	"testing"

	"astromatch/internal/domain"
)

func scoredFixture(id string, cl Classification, score float64) ScoredCandidate {
	return ScoredCandidate{
		Candidate:      domain.CandidateRecord{ID: id, Name: "candidate " + id},
		Classification: cl,
		Score:          score,
	}
}

func TestRankResults_CategoryBeforeScore(t *testing.T) {
	scored := []ScoredCandidate{
		scoredFixture("b", Classification{}, 95),
		scoredFixture("a", Classification{Strict: true, Reasons: []string{"strict"}}, 10),
		scoredFixture("c", Classification{Aspect: true, Reasons: []string{"aspect"}}, 80),
		scoredFixture("d", Classification{Stellium: true, Reasons: []string{"stellium"}}, 90),
	}

	list := RankResults(scored, 10)
	if list.TotalCompared != 4 || list.MatchesFound != 4 {
		t.Fatalf("unexpected totals: %+v", list)
	}

	gotOrder := []string{}
	for _, m := range list.Matches {
		gotOrder = append(gotOrder, m.CandidateID)
	}
	// Strict primero aunque tenga el score más bajo; ScoredOnly al final
	// aunque tenga el más alto.
	want := []string{"a", "c", "d", "b"}
	for i := range want {
		if gotOrder[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, gotOrder)
		}
	}
	if list.Matches[0].MatchCategory != domain.CategoryStrict {
		t.Fatalf("expected strict category, got %s", list.Matches[0].MatchCategory)
	}
	if list.Matches[3].MatchCategory != domain.CategoryScoredOnly {
		t.Fatalf("expected scored_only category, got %s", list.Matches[3].MatchCategory)
	}
}

func TestRankResults_ScoreThenIDTieBreak(t *testing.T) {
	scored := []ScoredCandidate{
		scoredFixture("z", Classification{}, 50),
		scoredFixture("m", Classification{}, 50),
		scoredFixture("a", Classification{}, 50),
		scoredFixture("q", Classification{}, 70),
	}

	list := RankResults(scored, 10)
	want := []string{"q", "a", "m", "z"}
	for i := range want {
		if list.Matches[i].CandidateID != want[i] {
			t.Fatalf("expected deterministic tie-break %v, got %+v", want, list.Matches)
		}
	}
}

func TestRankResults_DropsNothingToReport(t *testing.T) {
	scored := []ScoredCandidate{
		scoredFixture("a", Classification{}, 0),
		scoredFixture("b", Classification{Stellium: true, Reasons: []string{"stellium"}}, 0),
		scoredFixture("c", Classification{}, 12),
	}

	list := RankResults(scored, 10)
	if list.TotalCompared != 3 {
		t.Fatalf("dropped candidates still count as compared, got %d", list.TotalCompared)
	}
	if list.MatchesFound != 2 {
		t.Fatalf("expected the zero-score unmatched candidate dropped, got %d", list.MatchesFound)
	}
	for _, m := range list.Matches {
		if m.CandidateID == "a" {
			t.Fatalf("candidate with nothing to report must be dropped")
		}
	}
}

func TestRankResults_LimitTruncation(t *testing.T) {
	var scored []ScoredCandidate
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		scored = append(scored, scoredFixture(id, Classification{Strict: true, Reasons: []string{"strict"}}, 60))
	}

	list := RankResults(scored, 1)
	if list.MatchesFound != 1 || len(list.Matches) != 1 {
		t.Fatalf("expected exactly one match, got %+v", list)
	}
	if list.TotalCompared != 10 {
		t.Fatalf("expected totalCompared 10, got %d", list.TotalCompared)
	}
	if list.Matches[0].CandidateID != "a" {
		t.Fatalf("expected the id tie-break winner, got %s", list.Matches[0].CandidateID)
	}
}

func TestRankResults_MergesReasons(t *testing.T) {
	sc := scoredFixture("a", Classification{Strict: true, Reasons: []string{"strict reason"}}, 40)
	sc.ScoreReasons = []string{"score reason"}

	list := RankResults([]ScoredCandidate{sc}, 10)
	reasons := list.Matches[0].MatchReasons
	if len(reasons) != 2 || reasons[0] != "strict reason" || reasons[1] != "score reason" {
		t.Fatalf("expected classifier reasons before scorer reasons, got %v", reasons)
	}
}
