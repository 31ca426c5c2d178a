package happiness

import (
	"sort"
	"strconv"
	"time"

	"happydash/domain/core"
)

// Dataset is the immutable in-memory table loaded once per process.
// Accessors hand out copies so callers can never mutate the cached rows.
type Dataset struct {
	records     []Record
	present     map[Field]bool
	source      string
	loadedAt    time.Time
	fingerprint core.Hash
}

// NewDataset builds a dataset from records and the fields found in the source header
func NewDataset(records []Record, present []Field, source string) *Dataset {
	rows := make([]Record, len(records))
	copy(rows, records)

	fields := make(map[Field]bool, len(present))
	for _, f := range present {
		fields[f] = true
	}

	loadedAt := time.Now()
	return &Dataset{
		records:     rows,
		present:     fields,
		source:      source,
		loadedAt:    loadedAt,
		fingerprint: core.HashParts(source, strconv.Itoa(len(rows)), loadedAt.Format(time.RFC3339Nano)),
	}
}

// NewCompleteDataset builds a dataset that carries every schema column
func NewCompleteDataset(records []Record, source string) *Dataset {
	fields := make([]Field, 0, len(Schema))
	for _, c := range Schema {
		fields = append(fields, c.Field)
	}
	return NewDataset(records, fields, source)
}

// Len returns the number of rows
func (d *Dataset) Len() int {
	return len(d.records)
}

// Records returns a copy of all rows in source order
func (d *Dataset) Records() []Record {
	rows := make([]Record, len(d.records))
	copy(rows, d.records)
	return rows
}

// Each visits rows in source order without copying the backing slice
func (d *Dataset) Each(fn func(Record)) {
	for _, r := range d.records {
		fn(r)
	}
}

// Source returns the path the dataset was loaded from
func (d *Dataset) Source() string {
	return d.source
}

// LoadedAt returns when the dataset was built
func (d *Dataset) LoadedAt() time.Time {
	return d.loadedAt
}

// Fingerprint identifies this loaded snapshot for cache keys and ETags
func (d *Dataset) Fingerprint() core.Hash {
	return d.fingerprint
}

// Has reports whether the source file carried the field's column
func (d *Dataset) Has(f Field) bool {
	return d.present[f]
}

// MissingColumns returns the raw headers of the requested fields that the source lacked
func (d *Dataset) MissingColumns(fields ...Field) []string {
	var missing []string
	for _, f := range fields {
		if !d.present[f] {
			missing = append(missing, f.Raw())
		}
	}
	return missing
}

// Years returns the sorted distinct years present in the data
func (d *Dataset) Years() []int {
	return DistinctYears(d.records)
}

// Countries returns the sorted distinct country names
func (d *Dataset) Countries() []string {
	return DistinctCountries(d.records)
}

// YearBounds returns the smallest and largest year in the data
func (d *Dataset) YearBounds() (int, int, bool) {
	years := d.Years()
	if len(years) == 0 {
		return 0, 0, false
	}
	return years[0], years[len(years)-1], true
}

// DistinctYears returns the sorted distinct years of the rows
func DistinctYears(rows []Record) []int {
	seen := make(map[int]bool)
	var years []int
	for _, r := range rows {
		if !seen[r.Year] {
			seen[r.Year] = true
			years = append(years, r.Year)
		}
	}
	sort.Ints(years)
	return years
}

// DistinctCountries returns the sorted distinct countries of the rows
func DistinctCountries(rows []Record) []string {
	seen := make(map[string]bool)
	var countries []string
	for _, r := range rows {
		if !seen[r.Country] {
			seen[r.Country] = true
			countries = append(countries, r.Country)
		}
	}
	sort.Strings(countries)
	return countries
}
