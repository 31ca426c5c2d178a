package ui

import (
	"fmt"

	"happydash/domain/happiness"
	"happydash/internal/analysis"
)

const previewRows = 10

// page is the data behind dashboard.html
type page struct {
	Dashboard *analysis.Dashboard
	Options   analysis.Options
	Selected  map[string]bool
	Factors   map[happiness.Field]bool
	Groups    []group
	Error     string
}

// group is one dashboard section with its analyses
type group struct {
	Name     string
	Sections []section
}

type section struct {
	Entry    analysis.Entry
	Frame    happiness.Frame
	ChartURL string
	Message  string
	Preview  [][]any
	More     int
}

func newPage(ds *happiness.Dataset, d *analysis.Dashboard) page {
	p := page{
		Dashboard: d,
		Options:   analysis.FilterOptions(ds, d.Params.YearMin, d.Params.YearMax),
		Selected:  make(map[string]bool, len(d.Params.Countries)),
		Factors:   make(map[happiness.Field]bool, len(d.Params.ScatterFactors)),
	}
	for _, c := range d.Params.Countries {
		p.Selected[c] = true
	}
	for _, f := range d.Params.ScatterFactors {
		p.Factors[f] = true
	}

	query := d.Params.Query().Encode()
	for _, entry := range analysis.Catalog {
		frame, ok := d.Frame(entry.ID)
		if !ok {
			continue
		}
		sec := section{Entry: entry, Frame: frame, Preview: frame.Rows}
		if len(sec.Preview) > previewRows {
			sec.More = len(sec.Preview) - previewRows
			sec.Preview = sec.Preview[:previewRows]
		}
		if frame.Status == happiness.StatusOK {
			sec.ChartURL = fmt.Sprintf("/charts/%s.png?%s", entry.ID, query)
			if entry.ID == happiness.AnalysisChange {
				sec.Frame.Title = fmt.Sprintf("%s (%d → %d)", frame.Title, d.Params.ChangeFrom, d.Params.ChangeTo)
			}
		} else {
			sec.Message = statusMessage(frame)
		}

		if n := len(p.Groups); n == 0 || p.Groups[n-1].Name != entry.Section {
			p.Groups = append(p.Groups, group{Name: entry.Section})
		}
		last := &p.Groups[len(p.Groups)-1]
		last.Sections = append(last.Sections, sec)
	}
	return p
}

// statusMessage is the notice shown in place of a chart
func statusMessage(f happiness.Frame) string {
	switch f.Status {
	case happiness.StatusSkipped:
		return fmt.Sprintf("Skipped: the dataset has no %v column.", f.Missing)
	case happiness.StatusEmpty:
		if f.Reason != "" {
			return "Nothing to show: " + f.Reason + "."
		}
		return "Nothing to show for the current filters."
	case happiness.StatusNoData:
		return "Not enough data: " + f.Reason + "."
	default:
		return "Not available: " + f.Reason + "."
	}
}
