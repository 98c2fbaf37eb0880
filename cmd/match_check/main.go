package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"astromatch/internal/domain"
	"astromatch/internal/repository"
	"astromatch/internal/service"
)

const (
	colorGreen = "\033[32m"
	colorCyan  = "\033[36m"
	colorReset = "\033[0m"
)

// catalogEntry es el formato del fixture de catálogo: metadata más el
// payload crudo de la carta, extraído acá igual que lo haría la ingesta.
type catalogEntry struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	ReferenceURL string          `json:"reference_url"`
	Occupation   string          `json:"occupation"`
	Popularity   int             `json:"popularity"`
	Chart        json.RawMessage `json:"chart"`
}

func main() {
	chartPath := flag.String("chart", "chart.json", "payload de la carta query")
	catalogPath := flag.String("catalog", "catalog.json", "fixture de catálogo")
	limit := flag.Int("limit", 10, "máximo de matches a mostrar")
	flag.Parse()

	ctx := context.Background()
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	chartPayload, err := os.ReadFile(*chartPath)
	if err != nil {
		log.Fatalf("read chart: %v", err)
	}
	catalogPayload, err := os.ReadFile(*catalogPath)
	if err != nil {
		log.Fatalf("read catalog: %v", err)
	}

	var entries []catalogEntry
	if err := json.Unmarshal(catalogPayload, &entries); err != nil {
		log.Fatalf("decode catalog: %v", err)
	}

	records := make([]domain.CandidateRecord, 0, len(entries))
	for _, entry := range entries {
		profile, err := service.ExtractChartProfile(entry.Chart)
		if err != nil {
			logger.Warn("skipping catalog entry", zap.String("name", entry.Name), zap.Error(err))
			continue
		}
		if entry.ID == "" {
			entry.ID = uuid.NewString()
		}
		records = append(records, domain.CandidateRecord{
			ID:           entry.ID,
			Name:         entry.Name,
			ReferenceURL: entry.ReferenceURL,
			Occupation:   entry.Occupation,
			Popularity:   entry.Popularity,
			Profile:      profile,
		})
	}

	matchSvc := service.NewMatchService(
		logger,
		repository.NewMemoryCatalogRepository(records),
		service.NewMemoryResultCache(),
		service.MatchOptions{},
	)

	list, err := matchSvc.FindMatches(ctx, chartPayload, *limit)
	if err != nil {
		log.Fatalf("match query: %v", err)
	}

	fmt.Printf("%sCompared %d candidates, %d matches%s\n\n", colorCyan, list.TotalCompared, list.MatchesFound, colorReset)
	for i, match := range list.Matches {
		fmt.Printf("%s%2d. %s%s  [%s]  score=%.1f\n", colorGreen, i+1, match.Name, colorReset, match.MatchCategory, match.SimilarityScore)
		for _, reason := range match.MatchReasons {
			fmt.Printf("      - %s\n", reason)
		}
	}
}
