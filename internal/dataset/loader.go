package dataset

import (
	"context"
	"log"
	"strings"
	"time"

	"happydash/adapters/datareadiness/coercer"
	"happydash/adapters/excel"
	"happydash/domain/happiness"
	"happydash/internal/errors"
)

// LoadReport summarises what the loader did with the raw file
type LoadReport struct {
	Source           string                            `json:"source"`
	Rows             int                               `json:"rows"`
	DroppedRows      int                               `json:"dropped_rows"`
	CoercionFailures map[string]int                    `json:"coercion_failures,omitempty"`
	PresentFields    []happiness.Field                 `json:"present_fields"`
	MissingColumns   []string                          `json:"missing_columns,omitempty"`
	UnknownColumns   []string                          `json:"unknown_columns,omitempty"`
	Columns          map[string]coercer.ColumnAnalysis `json:"columns,omitempty"` // keyed by raw header, kept rows only
	Duration         time.Duration                     `json:"duration"`
}

// Loader turns a raw tabular file into the immutable dataset
type Loader struct {
	coercer *coercer.TypeCoercer
}

// NewLoader creates a loader with the given coercion rules
func NewLoader(config coercer.CoercionConfig) *Loader {
	return &Loader{coercer: coercer.NewTypeCoercer(config)}
}

// Load reads and coerces the configured file
func (l *Loader) Load(config excel.ReaderConfig) (*happiness.Dataset, *LoadReport, error) {
	start := time.Now()

	data, err := excel.NewDataReaderWithConfig(config).ReadData()
	if err != nil {
		return nil, nil, errors.DatasetLoad("failed to read dataset file", err)
	}

	ds, report, err := l.Build(data, config.FilePath)
	if err != nil {
		return nil, nil, err
	}
	report.Duration = time.Since(start)

	log.Printf("[DatasetLoader] Loaded %s: %d rows (%d dropped), %d coercion failures in %.2fms",
		config.FilePath, report.Rows, report.DroppedRows, totalFailures(report.CoercionFailures),
		float64(report.Duration.Nanoseconds())/1e6)
	if len(report.MissingColumns) > 0 {
		log.Printf("[DatasetLoader] WARNING: columns absent from source, dependent analyses will be skipped: %s",
			strings.Join(report.MissingColumns, ", "))
	}

	return ds, report, nil
}

// RecordSource yields already typed records, such as the rows of a database table
type RecordSource interface {
	Name() string
	Records(ctx context.Context) ([]happiness.Record, error)
}

// LoadRecords builds a dataset from typed records. Every schema column is
// present; rows without a country or year are dropped.
func (l *Loader) LoadRecords(ctx context.Context, src RecordSource) (*happiness.Dataset, *LoadReport, error) {
	start := time.Now()

	records, err := src.Records(ctx)
	if err != nil {
		return nil, nil, errors.DatasetLoad("failed to read dataset records", err)
	}

	report := &LoadReport{Source: src.Name()}
	for _, col := range happiness.Schema {
		report.PresentFields = append(report.PresentFields, col.Field)
	}

	kept := make([]happiness.Record, 0, len(records))
	for _, rec := range records {
		rec.Country = strings.TrimSpace(rec.Country)
		if rec.Country == "" || rec.Year == 0 {
			report.DroppedRows++
			continue
		}
		kept = append(kept, rec)
	}
	report.Rows = len(kept)
	report.Duration = time.Since(start)

	log.Printf("[DatasetLoader] Loaded %s: %d rows (%d dropped) in %.2fms",
		report.Source, report.Rows, report.DroppedRows, float64(report.Duration.Nanoseconds())/1e6)

	return happiness.NewDataset(kept, report.PresentFields, report.Source), report, nil
}

// Build converts already-read rows into a dataset.
// Country and year are mandatory; numeric columns may be absent.
func (l *Loader) Build(data *excel.ExcelData, source string) (*happiness.Dataset, *LoadReport, error) {
	report := &LoadReport{
		Source:           source,
		CoercionFailures: make(map[string]int),
	}

	headerFor := make(map[happiness.Field]string)
	for _, header := range data.Headers {
		field, ok := happiness.FieldByRaw(header)
		if !ok {
			report.UnknownColumns = append(report.UnknownColumns, header)
			continue
		}
		if _, dup := headerFor[field]; !dup {
			headerFor[field] = header
		}
	}

	for _, col := range happiness.Schema {
		if _, ok := headerFor[col.Field]; ok {
			report.PresentFields = append(report.PresentFields, col.Field)
		} else {
			report.MissingColumns = append(report.MissingColumns, col.Raw)
		}
	}

	var required []string
	for _, f := range []happiness.Field{happiness.FieldCountry, happiness.FieldYear} {
		if _, ok := headerFor[f]; !ok {
			required = append(required, f.Raw())
		}
	}
	if len(required) > 0 {
		return nil, nil, errors.Wrap(errors.MissingColumns(required), "dataset cannot be indexed")
	}

	cells := make(map[happiness.Field][]string)
	records := make([]happiness.Record, 0, len(data.Rows))
	for _, row := range data.Rows {
		country := strings.TrimSpace(row[headerFor[happiness.FieldCountry]])
		year, ok := l.coercer.CoerceYear(row[headerFor[happiness.FieldYear]])
		if country == "" || !ok || year == 0 {
			report.DroppedRows++
			continue
		}

		rec := happiness.Record{Country: country, Year: year}
		for _, col := range happiness.Schema {
			if !col.Numeric {
				continue
			}
			header, present := headerFor[col.Field]
			if !present {
				continue
			}
			m, _ := l.coercer.CoerceNumeric(row[header])
			rec = rec.Set(col.Field, m)
			cells[col.Field] = append(cells[col.Field], row[header])
		}
		records = append(records, rec)
	}
	report.Rows = len(records)

	report.Columns = make(map[string]coercer.ColumnAnalysis)
	for _, col := range happiness.Schema {
		if _, present := headerFor[col.Field]; !present || !col.Numeric {
			continue
		}
		analysis := l.coercer.AnalyzeColumn(cells[col.Field])
		report.Columns[col.Raw] = analysis
		if analysis.FailureCount > 0 {
			report.CoercionFailures[col.Raw] = analysis.FailureCount
		}
	}

	return happiness.NewDataset(records, report.PresentFields, source), report, nil
}

func totalFailures(failures map[string]int) int {
	total := 0
	for _, n := range failures {
		total += n
	}
	return total
}
