package analysis

import (
	"math"
	"sort"

	"happydash/domain/happiness"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// minCorrelationPairs is the fewest paired observations a correlation is reported for
const minCorrelationPairs = 3

// meanGroup holds the per-field means of one group of rows
type meanGroup[K comparable] struct {
	Key   K
	Rows  int
	means map[happiness.Field]happiness.Measure
}

// Mean returns the group's mean for the field, missing when the group had no values
func (g meanGroup[K]) Mean(f happiness.Field) happiness.Measure {
	return g.means[f]
}

// groupMeans groups rows by key in first-appearance order and averages each
// field over its non-missing values. Duplicate rows count twice.
func groupMeans[K comparable](rows []happiness.Record, key func(happiness.Record) K, fields ...happiness.Field) []meanGroup[K] {
	var order []K
	values := make(map[K]map[happiness.Field][]float64)
	counts := make(map[K]int)

	for _, r := range rows {
		k := key(r)
		vals, ok := values[k]
		if !ok {
			vals = make(map[happiness.Field][]float64, len(fields))
			values[k] = vals
			order = append(order, k)
		}
		counts[k]++
		for _, f := range fields {
			if m := r.Get(f); m.Valid {
				vals[f] = append(vals[f], m.Value)
			}
		}
	}

	groups := make([]meanGroup[K], 0, len(order))
	for _, k := range order {
		g := meanGroup[K]{Key: k, Rows: counts[k], means: make(map[happiness.Field]happiness.Measure, len(fields))}
		for _, f := range fields {
			g.means[f] = mean(values[k][f])
		}
		groups = append(groups, g)
	}
	return groups
}

func byCountry(r happiness.Record) string { return r.Country }

func byYear(r happiness.Record) int { return r.Year }

// countryMeans averages fields per country
func countryMeans(rows []happiness.Record, fields ...happiness.Field) []meanGroup[string] {
	return groupMeans(rows, byCountry, fields...)
}

// yearMeans averages fields per year, years ascending
func yearMeans(rows []happiness.Record, fields ...happiness.Field) []meanGroup[int] {
	groups := groupMeans(rows, byYear, fields...)
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	return groups
}

// withValid keeps groups whose mean is present for every listed field
func withValid[K comparable](groups []meanGroup[K], fields ...happiness.Field) []meanGroup[K] {
	out := make([]meanGroup[K], 0, len(groups))
	for _, g := range groups {
		ok := true
		for _, f := range fields {
			if !g.Mean(f).Valid {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, g)
		}
	}
	return out
}

// column extracts one field's means, all assumed present
func column[K comparable](groups []meanGroup[K], f happiness.Field) []float64 {
	out := make([]float64, len(groups))
	for i, g := range groups {
		out[i] = g.Mean(f).Value
	}
	return out
}

// mean is the arithmetic mean, missing for an empty input
func mean(values []float64) happiness.Measure {
	if len(values) == 0 {
		return happiness.Missing
	}
	m, err := stats.Mean(values)
	if err != nil || math.IsNaN(m) {
		return happiness.Missing
	}
	return happiness.Some(m)
}

// median returns the median of values
func median(values []float64) (float64, bool) {
	m, err := stats.Median(values)
	if err != nil || math.IsNaN(m) {
		return 0, false
	}
	return m, true
}

// pearson returns the Pearson correlation of the paired samples; fewer than
// minCorrelationPairs pairs or a zero-variance side leave it undefined.
func pearson(x, y []float64) (float64, bool) {
	if len(x) != len(y) || len(x) < minCorrelationPairs {
		return 0, false
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	return r, true
}

// skipIfMissing returns the raw names of required columns absent from the source
func skipIfMissing(sub Subset, id happiness.AnalysisID) []string {
	return sub.Missing(Requirements(id)...)
}

// noRows distinguishes a filter that matched nothing from rows that carried
// no usable observations
func noRows[R any](sub Subset, id happiness.AnalysisID, reason string) happiness.Table[R] {
	if sub.Empty() {
		return happiness.Empty[R](id, "no rows match the current filters")
	}
	return happiness.NoData[R](id, reason)
}
