package service

import (
	"context"
	"testing"
	"time"

	"astromatch/internal/domain"
)

func TestMemoryResultCache_PutGet(t *testing.T) {
	cache := NewMemoryResultCache()
	ctx := context.Background()

	list := domain.RankedResultList{
		Matches:       []domain.MatchResult{{CandidateID: "c1", SimilarityScore: 80}},
		TotalCompared: 5,
		MatchesFound:  1,
	}

	if _, ok, err := cache.Get(ctx, "fp"); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}
	if err := cache.Put(ctx, "fp", list, time.Minute); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	got, ok, err := cache.Get(ctx, "fp")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got.TotalCompared != 5 || len(got.Matches) != 1 || got.Matches[0].CandidateID != "c1" {
		t.Fatalf("unexpected cached list: %+v", got)
	}
}

func TestMemoryResultCache_Expiry(t *testing.T) {
	cache := NewMemoryResultCache()
	ctx := context.Background()

	if err := cache.Put(ctx, "fp", domain.RankedResultList{MatchesFound: 1}, time.Nanosecond); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, ok, _ := cache.Get(ctx, "fp"); ok {
		t.Fatalf("expected expired entry to miss")
	}
}

func TestMemoryResultCache_IgnoresEmptyKeyAndTTL(t *testing.T) {
	cache := NewMemoryResultCache()
	ctx := context.Background()

	if err := cache.Put(ctx, "", domain.RankedResultList{}, time.Minute); err != nil {
		t.Fatalf("empty fingerprint must be a no-op, got %v", err)
	}
	if err := cache.Put(ctx, "fp", domain.RankedResultList{}, 0); err != nil {
		t.Fatalf("zero ttl must be a no-op, got %v", err)
	}
	if _, ok, _ := cache.Get(ctx, "fp"); ok {
		t.Fatalf("expected no entry stored with zero ttl")
	}
}
