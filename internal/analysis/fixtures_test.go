package analysis

import (
	"math"

	"happydash/domain/happiness"
)

var nan = math.NaN()

func measure(v float64) happiness.Measure {
	if math.IsNaN(v) {
		return happiness.Missing
	}
	return happiness.Some(v)
}

// rec builds a record; factors are gdp, social, health, freedom, generosity,
// corruption and NaN marks a missing value
func rec(country string, year int, life float64, factors ...float64) happiness.Record {
	r := happiness.Record{Country: country, Year: year, LifeEval: measure(life)}
	for i, v := range factors {
		if i >= len(happiness.Factors) {
			break
		}
		r = r.Set(happiness.Factors[i], measure(v))
	}
	return r
}

func newDataset(rows ...happiness.Record) *happiness.Dataset {
	return happiness.NewCompleteDataset(rows, "test")
}

func all(ds *happiness.Dataset) Subset {
	lo, hi, _ := ds.YearBounds()
	return Filter(ds, lo, hi, nil)
}

// driversDataset has five countries over two years with every factor present
func driversDataset() *happiness.Dataset {
	return newDataset(
		rec("Alpha", 2019, 3.0, 1.0, 0.5, 0.2, 0.3, 0.10, 0.05),
		rec("Alpha", 2020, 3.0, 1.0, 0.6, 0.2, 0.3, 0.20, 0.05),
		rec("Bravo", 2019, 4.0, 2.0, 0.9, 0.3, 0.4, 0.15, 0.10),
		rec("Bravo", 2020, 4.0, 2.0, 1.0, 0.3, 0.4, 0.05, 0.10),
		rec("Charlie", 2019, 5.0, 3.0, 1.2, 0.5, 0.5, 0.30, 0.20),
		rec("Charlie", 2020, 5.0, 3.0, 1.3, 0.5, 0.5, 0.10, 0.20),
		rec("Delta", 2019, 6.0, 4.0, 1.5, 0.6, 0.7, 0.12, 0.30),
		rec("Delta", 2020, 6.0, 4.0, 1.6, 0.6, 0.7, 0.22, 0.30),
		rec("Echo", 2019, 7.0, 0.5, 1.8, 0.7, 0.9, 0.25, 0.40),
		rec("Echo", 2020, 7.0, 0.5, 1.9, 0.7, 0.9, 0.15, 0.40),
	)
}
