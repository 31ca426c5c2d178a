package analysis

import (
	"fmt"

	"happydash/domain/happiness"
)

// Subset is the year/country filtered view every analysis reads.
// Rows is a fresh slice; the dataset itself is never touched.
type Subset struct {
	Rows      []happiness.Record
	YearMin   int
	YearMax   int
	Countries []string

	ds *happiness.Dataset
}

// Filter keeps rows with yearMin <= year <= yearMax and, when countries is
// non-empty, whose country is in the allow-list. A range or allow-list that
// matches nothing yields an empty subset, not an error.
func Filter(ds *happiness.Dataset, yearMin, yearMax int, countries []string) Subset {
	allow := make(map[string]bool, len(countries))
	for _, c := range countries {
		allow[c] = true
	}

	var rows []happiness.Record
	ds.Each(func(r happiness.Record) {
		if r.Year < yearMin || r.Year > yearMax {
			return
		}
		if len(allow) > 0 && !allow[r.Country] {
			return
		}
		rows = append(rows, r)
	})

	return Subset{
		Rows:      rows,
		YearMin:   yearMin,
		YearMax:   yearMax,
		Countries: append([]string(nil), countries...),
		ds:        ds,
	}
}

// Len returns the number of rows in the subset
func (s Subset) Len() int {
	return len(s.Rows)
}

// Empty reports whether no row survived the filter
func (s Subset) Empty() bool {
	return len(s.Rows) == 0
}

// Years returns the sorted distinct years of the subset
func (s Subset) Years() []int {
	return happiness.DistinctYears(s.Rows)
}

// HasYear reports whether any subset row falls in the given year
func (s Subset) HasYear(year int) bool {
	for _, r := range s.Rows {
		if r.Year == year {
			return true
		}
	}
	return false
}

// Missing returns the raw column names of fields the source dataset lacked
func (s Subset) Missing(fields ...happiness.Field) []string {
	if s.ds == nil {
		return nil
	}
	return s.ds.MissingColumns(fields...)
}

// CapSelection truncates a country selection to the first max entries,
// keeping the caller's order. Truncation is reported through the warning,
// never as an error. A max below one disables the cap.
func CapSelection(selection []string, max int) ([]string, string) {
	if max < 1 || len(selection) <= max {
		return append([]string(nil), selection...), ""
	}
	capped := append([]string(nil), selection[:max]...)
	return capped, fmt.Sprintf("too many countries selected (%d); showing the first %d", len(selection), max)
}
