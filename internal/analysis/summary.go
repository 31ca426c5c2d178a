package analysis

import (
	"happydash/domain/happiness"
)

// Summary is the KPI row shown above the charts
type Summary struct {
	Countries int `json:"countries"`
	Years     int `json:"years"`
	Rows      int `json:"rows"`
}

// Summarize counts distinct countries, distinct years and rows of the
// year-range filtered data. The country selection does not narrow the KPIs.
func Summarize(ds *happiness.Dataset, yearMin, yearMax int) Summary {
	sub := Filter(ds, yearMin, yearMax, nil)
	return Summary{
		Countries: len(happiness.DistinctCountries(sub.Rows)),
		Years:     len(sub.Years()),
		Rows:      sub.Len(),
	}
}

// Options are the values a filter widget may offer
type Options struct {
	Years     []int    `json:"years"`
	Countries []string `json:"countries"`
	YearMin   int      `json:"year_min"`
	YearMax   int      `json:"year_max"`
	Factors   []Factor `json:"factors"`
}

// Factor is a selectable explained-by factor
type Factor struct {
	Field happiness.Field `json:"field"`
	Label string          `json:"label"`
}

// FilterOptions lists every dataset year and the countries present in the
// chosen year range, both sorted.
func FilterOptions(ds *happiness.Dataset, yearMin, yearMax int) Options {
	opts := Options{
		Years:     ds.Years(),
		Countries: happiness.DistinctCountries(Filter(ds, yearMin, yearMax, nil).Rows),
		YearMin:   yearMin,
		YearMax:   yearMax,
	}
	for _, f := range happiness.Factors {
		opts.Factors = append(opts.Factors, Factor{Field: f, Label: f.Label()})
	}
	return opts
}
