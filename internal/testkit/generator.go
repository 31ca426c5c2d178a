package testkit

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"

	"happydash/domain/happiness"

	"github.com/xuri/excelize/v2"
)

// GeneratorConfig configures the synthetic happiness panel
type GeneratorConfig struct {
	Countries   int     `json:"countries"`
	YearFrom    int     `json:"year_from"`
	YearTo      int     `json:"year_to"`
	MissingRate float64 `json:"missing_rate"`
	Seed        int64   `json:"seed"`
}

// DefaultGeneratorConfig returns a small panel with a few gaps
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Countries:   12,
		YearFrom:    2018,
		YearTo:      2022,
		MissingRate: 0.05,
		Seed:        42,
	}
}

// Generator produces deterministic country-year records whose life
// evaluation is driven by the six factors plus noise
type Generator struct {
	config GeneratorConfig
	rng    *rand.Rand
}

// NewGenerator creates a generator
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Records generates one record per country and year
func (g *Generator) Records() []happiness.Record {
	var records []happiness.Record
	for c := 0; c < g.config.Countries; c++ {
		name := countryName(c)
		base := g.rng.Float64()
		for year := g.config.YearFrom; year <= g.config.YearTo; year++ {
			records = append(records, g.record(name, year, base))
		}
	}
	return records
}

// Dataset wraps Records in a dataset with every column present
func (g *Generator) Dataset() *happiness.Dataset {
	return happiness.NewCompleteDataset(g.Records(), fmt.Sprintf("synthetic-%d", g.config.Seed))
}

func (g *Generator) record(country string, year int, base float64) happiness.Record {
	drift := float64(year-g.config.YearFrom) * 0.02
	factors := []float64{
		1.8*base + 0.1*g.rng.Float64(),
		1.5*base + 0.1*g.rng.Float64(),
		0.7*base + 0.05*g.rng.Float64(),
		0.6*base + 0.05*g.rng.Float64() + drift,
		0.1 + 0.2*g.rng.Float64(),
		0.05 + 0.3*base*g.rng.Float64(),
	}

	r := happiness.Record{Country: country, Year: year}
	life := 2.0
	for i, f := range happiness.Factors {
		v := round3(factors[i])
		life += v
		if g.rng.Float64() < g.config.MissingRate {
			continue
		}
		r = r.Set(f, happiness.Some(v))
	}
	life += 0.3 * g.rng.NormFloat64()
	if g.rng.Float64() >= g.config.MissingRate {
		r.LifeEval = happiness.Some(round3(life))
	}
	return r
}

var countryNames = []string{
	"Finland", "Denmark", "Iceland", "Sweden", "Netherlands", "Norway",
	"Costa Rica", "Mexico", "Brazil", "Japan", "Kenya", "India",
	"Chad", "Nepal", "Chile", "Portugal", "Ghana", "Vietnam",
}

func countryName(i int) string {
	if i < len(countryNames) {
		return countryNames[i]
	}
	return fmt.Sprintf("Country %03d", i+1)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// Drivers is a fixed five-country panel with every factor present, small
// enough to verify analyses by hand
func Drivers() *happiness.Dataset {
	row := func(country string, year int, life float64, f ...float64) happiness.Record {
		r := happiness.Record{Country: country, Year: year, LifeEval: happiness.Some(life)}
		for i, v := range f {
			r = r.Set(happiness.Factors[i], happiness.Some(v))
		}
		return r
	}
	return happiness.NewCompleteDataset([]happiness.Record{
		row("Finland", 2019, 7.8, 1.9, 1.5, 0.8, 0.7, 0.10, 0.50),
		row("Finland", 2020, 7.9, 1.9, 1.6, 0.8, 0.7, 0.12, 0.52),
		row("Kenya", 2019, 4.5, 0.6, 0.7, 0.4, 0.5, 0.30, 0.08),
		row("Kenya", 2020, 4.6, 0.6, 0.8, 0.4, 0.5, 0.28, 0.07),
		row("Costa Rica", 2019, 7.0, 0.9, 1.3, 0.7, 0.6, 0.12, 0.10),
		row("Costa Rica", 2020, 7.1, 0.9, 1.3, 0.7, 0.6, 0.11, 0.11),
		row("Chad", 2019, 4.2, 0.4, 0.5, 0.2, 0.3, 0.18, 0.05),
		row("Chad", 2020, 4.0, 0.4, 0.4, 0.2, 0.3, 0.17, 0.06),
		row("Japan", 2019, 6.0, 1.7, 1.4, 0.9, 0.5, 0.05, 0.15),
		row("Japan", 2020, 6.1, 1.7, 1.4, 0.9, 0.5, 0.06, 0.16),
	}, "drivers")
}

// Header returns the raw source headers in schema order
func Header() []string {
	header := make([]string, len(happiness.Schema))
	for i, c := range happiness.Schema {
		header[i] = c.Raw
	}
	return header
}

// Cells renders a record as raw source cells; missing values are blank
func Cells(r happiness.Record) []string {
	cells := make([]string, len(happiness.Schema))
	for i, c := range happiness.Schema {
		switch c.Field {
		case happiness.FieldCountry:
			cells[i] = r.Country
		case happiness.FieldYear:
			cells[i] = strconv.Itoa(r.Year)
		default:
			if m := r.Get(c.Field); m.Valid {
				cells[i] = strconv.FormatFloat(m.Value, 'f', -1, 64)
			}
		}
	}
	return cells
}

// WriteCSV writes records in the source file layout
func WriteCSV(path string, records []happiness.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header()); err != nil {
		return err
	}
	for _, r := range records {
		if err := w.Write(Cells(r)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteXLSX writes records to the first sheet of a workbook in the source layout
func WriteXLSX(path string, records []happiness.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}

	header := make([]any, 0, len(happiness.Schema))
	for _, h := range Header() {
		header = append(header, h)
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for i, r := range records {
		row := make([]any, 0, len(happiness.Schema))
		for _, c := range happiness.Schema {
			switch c.Field {
			case happiness.FieldCountry:
				row = append(row, r.Country)
			case happiness.FieldYear:
				row = append(row, r.Year)
			default:
				if m := r.Get(c.Field); m.Valid {
					row = append(row, m.Value)
				} else {
					row = append(row, nil)
				}
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.SaveAs(path)
}
