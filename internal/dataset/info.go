package dataset

import (
	"context"
	"time"

	"happydash/domain/happiness"
)

// Info describes the loaded dataset for the API, the CLI and the MCP tools
type Info struct {
	Source      string      `json:"source"`
	Fingerprint string      `json:"fingerprint"`
	LoadedAt    time.Time   `json:"loaded_at"`
	Rows        int         `json:"rows"`
	Countries   int         `json:"countries"`
	Years       []int       `json:"years"`
	YearMin     int         `json:"year_min"`
	YearMax     int         `json:"year_max"`
	Report      *LoadReport `json:"report,omitempty"`
}

// Describe summarises a dataset and its load report
func Describe(ds *happiness.Dataset, report *LoadReport) Info {
	lo, hi, _ := ds.YearBounds()
	return Info{
		Source:      ds.Source(),
		Fingerprint: ds.Fingerprint().Short(),
		LoadedAt:    ds.LoadedAt(),
		Rows:        ds.Len(),
		Countries:   len(ds.Countries()),
		Years:       ds.Years(),
		YearMin:     lo,
		YearMax:     hi,
		Report:      report,
	}
}

// Info loads the dataset if needed and describes it
func (s *Store) Info(ctx context.Context) (Info, error) {
	ds, err := s.Get(ctx)
	if err != nil {
		return Info{}, err
	}
	return Describe(ds, s.Report()), nil
}
