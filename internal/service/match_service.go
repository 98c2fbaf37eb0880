package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"astromatch/internal/domain"
	"astromatch/internal/repository"
)

// MatchOptions acota los parámetros operativos del motor.
type MatchOptions struct {
	CandidateCap int
	DefaultLimit int
	MaxLimit     int
	CacheTTL     time.Duration
	Workers      int
}

func (o MatchOptions) withDefaults() MatchOptions {
	if o.CandidateCap <= 0 {
		o.CandidateCap = 2000
	}
	if o.DefaultLimit <= 0 {
		o.DefaultLimit = 10
	}
	if o.MaxLimit <= 0 {
		o.MaxLimit = 50
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = 10 * time.Minute
	}
	if o.Workers <= 0 {
		o.Workers = 8
	}
	return o
}

// MatchService orquesta el pipeline completo: extracción, filtro, fan-out
// de clasificación y scoring, ranking y memoización. No guarda estado
// mutable propio; catálogo y cache son colaboradores inyectados.
type MatchService struct {
	catalog    repository.CatalogRepository
	cache      ResultCache
	classifier MatchClassifier
	scorer     SimilarityScorer
	opts       MatchOptions
	logger     *zap.Logger
}

func NewMatchService(
	logger *zap.Logger,
	catalog repository.CatalogRepository,
	cache ResultCache,
	opts MatchOptions,
) *MatchService {
	if cache == nil {
		cache = NewMemoryResultCache()
	}
	return &MatchService{
		catalog: catalog,
		cache:   cache,
		opts:    opts.withDefaults(),
		logger:  logger,
	}
}

// FindMatches corre un query completo a partir del payload crudo de la
// carta. Un payload sin posiciones recuperables aborta con
// MalformedChartError; todo lo demás degrada a menos matches, nunca a error.
func (s *MatchService) FindMatches(ctx context.Context, chartPayload []byte, limit int) (domain.RankedResultList, error) {
	profile, err := ExtractChartProfile(chartPayload)
	if err != nil {
		return domain.RankedResultList{}, err
	}
	return s.FindMatchesForProfile(ctx, profile, limit)
}

// FindMatchesForProfile corre el pipeline sobre un perfil ya extraído.
func (s *MatchService) FindMatchesForProfile(ctx context.Context, profile domain.ChartProfile, limit int) (domain.RankedResultList, error) {
	limit = s.normalizeLimit(limit)
	fingerprint := QueryFingerprint(profile, limit)

	if cached, ok, err := s.cache.Get(ctx, fingerprint); err != nil {
		s.logger.Warn("result cache get failed", zap.Error(err), zap.String("fingerprint", fingerprint))
	} else if ok {
		return cached, nil
	}

	pred := BuildCandidatePredicate(profile)
	candidates, err := s.catalog.FetchCandidates(ctx, pred, s.opts.CandidateCap)
	if err != nil {
		return domain.RankedResultList{}, fmt.Errorf("fetch candidates: %w", err)
	}
	if len(candidates) == 0 {
		return domain.RankedResultList{Matches: []domain.MatchResult{}}, nil
	}

	scored, err := s.evaluateCandidates(ctx, profile, candidates)
	if err != nil {
		return domain.RankedResultList{}, err
	}

	list := RankResults(scored, limit)

	if err := s.cache.Put(ctx, fingerprint, list, s.opts.CacheTTL); err != nil {
		s.logger.Warn("result cache put failed", zap.Error(err), zap.String("fingerprint", fingerprint))
	}
	return list, nil
}

// evaluateCandidates clasifica y puntúa en paralelo. Cada candidato es
// independiente y escribe en su propio slot, así el resultado no depende
// del orden de terminación; el orden final lo decide solo el ranker.
func (s *MatchService) evaluateCandidates(ctx context.Context, query domain.ChartProfile, candidates []domain.CandidateRecord) ([]ScoredCandidate, error) {
	scored := make([]ScoredCandidate, len(candidates))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(s.opts.Workers)
	for i, candidate := range candidates {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			classification := s.classifier.Classify(query, candidate.Profile)
			score, reasons := s.scorer.Score(query, candidate.Profile)
			scored[i] = ScoredCandidate{
				Candidate:      candidate,
				Classification: classification,
				Score:          score,
				ScoreReasons:   reasons,
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return scored, nil
}

func (s *MatchService) normalizeLimit(limit int) int {
	if limit <= 0 {
		return s.opts.DefaultLimit
	}
	if limit > s.opts.MaxLimit {
		return s.opts.MaxLimit
	}
	return limit
}
