package workout

import (
	"context"
	"sort"
	"time"
)

// DefaultHistoryLimit bounds history listings when no limit is given.
const DefaultHistoryLimit = 100

// WeightPoint is one point of the weight-over-time series for charting.
type WeightPoint struct {
	Date   time.Time
	Weight float64
}

// StatsReport summarizes all logged entries of one exercise.
// AverageWeight is the unweighted mean over entries, not over sets.
type StatsReport struct {
	Exercise      string
	MaxWeight     float64
	AverageWeight float64
	TotalSets     int
	Series        []WeightPoint
}

// Aggregator produces read-only historical and statistical views over the
// store. It never mutates anything.
type Aggregator struct {
	store Store
}

// NewAggregator builds an aggregator over the given store.
func NewAggregator(store Store) *Aggregator {
	return &Aggregator{store: store}
}

// ListHistory returns the user's sessions, most recent first, bounded by
// limit (DefaultHistoryLimit when limit <= 0). No history is an empty
// slice, never an error.
func (a *Aggregator) ListHistory(ctx context.Context, userID int64, limit int) ([]WorkoutSession, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return a.store.FetchHistory(ctx, userID, limit)
}

// HasHistory reports whether any entries exist for the user. This existence
// check is deliberately separate from the exact-match stats lookup.
func (a *Aggregator) HasHistory(ctx context.Context, userID int64) (bool, error) {
	return a.store.HasEntries(ctx, userID)
}

// ExerciseStats computes max/average weight, total set count, and the
// chronological weight series for one exercise, matched by exact name.
// Returns ErrNoData when the user never logged that exercise.
func (a *Aggregator) ExerciseStats(ctx context.Context, userID int64, name string) (*StatsReport, error) {
	entries, err := a.store.FetchEntriesByName(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoData
	}

	report := &StatsReport{
		Exercise: name,
		Series:   make([]WeightPoint, 0, len(entries)),
	}
	var sum float64
	for _, e := range entries {
		if e.Weight > report.MaxWeight {
			report.MaxWeight = e.Weight
		}
		sum += e.Weight
		report.TotalSets += e.Sets
		report.Series = append(report.Series, WeightPoint{Date: e.PerformedAt, Weight: e.Weight})
	}
	report.AverageWeight = sum / float64(len(entries))
	return report, nil
}

// KnownExerciseNames returns the distinct exercise names the user has ever
// logged, sorted for a stable menu. Derived from history rather than a
// dedicated table.
func (a *Aggregator) KnownExerciseNames(ctx context.Context, userID int64) ([]string, error) {
	sessions, err := a.store.FetchHistory(ctx, userID, DefaultHistoryLimit)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var names []string
	for _, sess := range sessions {
		for _, e := range sess.Entries {
			if _, ok := seen[e.Name]; ok {
				continue
			}
			seen[e.Name] = struct{}{}
			names = append(names, e.Name)
		}
	}
	sort.Strings(names)
	return names, nil
}
