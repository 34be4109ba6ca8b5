package overview

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/klasbord/klasbord/core"
)

// Cache holds computed summaries between dashboard refreshes.
// Get reports a miss with ok=false; implementations handle their own encoding.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (ok bool, err error)
	Set(ctx context.Context, key string, val interface{}) error
}

// NopCache is used when no cache backend is configured.
type NopCache struct{}

func (NopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (NopCache) Set(context.Context, string, interface{}) error         { return nil }

type ServiceInterface interface {
	RecordScore(ctx context.Context, s Score) (Score, error)
	StudentRows(ctx context.Context, subjectID, kind string) ([]StudentRow, error)
	Histogram(ctx context.Context, subjectID, kind string) ([]CategoryHistogram, error)
	Spreads(ctx context.Context, subjectID, kind string) ([]Spread, error)
}

type Service struct {
	repo   Repository
	cache  Cache
	logger core.Logger
}

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, cache Cache, logger core.Logger) *Service {
	if cache == nil {
		cache = NopCache{}
	}
	return &Service{repo: repo, cache: cache, logger: logger}
}

func (svc *Service) RecordScore(ctx context.Context, s Score) (Score, error) {
	if !ValidKind(s.Kind) {
		return Score{}, ErrUnknownKind
	}
	return svc.repo.CreateScore(ctx, s)
}

// StudentRows builds one monitor row per student, sorted by student name.
func (svc *Service) StudentRows(ctx context.Context, subjectID, kind string) ([]StudentRow, error) {
	if !ValidKind(kind) {
		return nil, ErrUnknownKind
	}

	var rows []StudentRow
	key := cacheKey(subjectID, kind, "students")
	if hit, err := svc.cache.Get(ctx, key, &rows); err != nil {
		svc.logger.Warn(fmt.Sprintf("overview cache get %s: %v", key, err))
	} else if hit {
		return rows, nil
	}

	scores, err := svc.repo.QueryScores(ctx, subjectID, kind)
	if err != nil {
		return nil, err
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, s := range scores {
		sums[s.Student] += s.Value
		counts[s.Student]++
	}

	rows = make([]StudentRow, 0, len(sums))
	for student, sum := range sums {
		avg := sum / float64(counts[student])
		avg = math.Round(avg*10) / 10
		rows = append(rows, StudentRow{
			Student: student,
			Count:   counts[student],
			Average: avg,
			Color:   ScoreColor(avg),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Student < rows[j].Student })

	svc.cacheSet(ctx, key, rows)
	return rows, nil
}

// Histogram buckets each category's scores by color, sorted by category.
func (svc *Service) Histogram(ctx context.Context, subjectID, kind string) ([]CategoryHistogram, error) {
	if !ValidKind(kind) {
		return nil, ErrUnknownKind
	}

	var hists []CategoryHistogram
	key := cacheKey(subjectID, kind, "histogram")
	if hit, err := svc.cache.Get(ctx, key, &hists); err != nil {
		svc.logger.Warn(fmt.Sprintf("overview cache get %s: %v", key, err))
	} else if hit {
		return hists, nil
	}

	scores, err := svc.repo.QueryScores(ctx, subjectID, kind)
	if err != nil {
		return nil, err
	}

	byCat := make(map[string]map[string]int)
	for _, s := range scores {
		if byCat[s.Category] == nil {
			byCat[s.Category] = make(map[string]int, len(Colors))
		}
		byCat[s.Category][ScoreColor(s.Value)]++
	}

	hists = make([]CategoryHistogram, 0, len(byCat))
	for cat, counts := range byCat {
		total := 0
		for _, n := range counts {
			total += n
		}
		hists = append(hists, CategoryHistogram{Category: cat, Counts: counts, Total: total})
	}
	sort.Slice(hists, func(i, j int) bool { return hists[i].Category < hists[j].Category })

	svc.cacheSet(ctx, key, hists)
	return hists, nil
}

// Spreads computes the five-number summary per category, sorted by category.
func (svc *Service) Spreads(ctx context.Context, subjectID, kind string) ([]Spread, error) {
	if !ValidKind(kind) {
		return nil, ErrUnknownKind
	}

	var spreads []Spread
	key := cacheKey(subjectID, kind, "spread")
	if hit, err := svc.cache.Get(ctx, key, &spreads); err != nil {
		svc.logger.Warn(fmt.Sprintf("overview cache get %s: %v", key, err))
	} else if hit {
		return spreads, nil
	}

	scores, err := svc.repo.QueryScores(ctx, subjectID, kind)
	if err != nil {
		return nil, err
	}

	byCat := make(map[string][]float64)
	for _, s := range scores {
		byCat[s.Category] = append(byCat[s.Category], s.Value)
	}

	spreads = make([]Spread, 0, len(byCat))
	for cat, vals := range byCat {
		sort.Float64s(vals)
		spreads = append(spreads, Spread{
			Category: cat,
			Min:      vals[0],
			P25:      percentile(vals, .25),
			Median:   percentile(vals, .5),
			P75:      percentile(vals, .75),
			Max:      vals[len(vals)-1],
		})
	}
	sort.Slice(spreads, func(i, j int) bool { return spreads[i].Category < spreads[j].Category })

	svc.cacheSet(ctx, key, spreads)
	return spreads, nil
}

func (svc *Service) cacheSet(ctx context.Context, key string, val interface{}) {
	if err := svc.cache.Set(ctx, key, val); err != nil {
		svc.logger.Warn(fmt.Sprintf("overview cache set %s: %v", key, err))
	}
}

func cacheKey(subjectID, kind, view string) string {
	return fmt.Sprintf("overview:%s:%s:%s", subjectID, kind, view)
}

// percentile interpolates linearly between the closest ranks of a
// sorted sample.
func percentile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
