package analysis

import (
	"happydash/domain/happiness"
)

// Entry describes one analysis for every presentation adapter
type Entry struct {
	ID       happiness.AnalysisID `json:"id"`
	Section  string               `json:"section"`
	Heading  string               `json:"heading"`
	Title    string               `json:"title"`
	XLabel   string               `json:"x_label"`
	YLabel   string               `json:"y_label"`
	Note     string               `json:"note,omitempty"`
	Requires []happiness.Field    `json:"requires"`
}

const correlationCaveat = "Correlation indicates association, not causation."

var (
	lifeOnly   = []happiness.Field{happiness.FieldLifeEval}
	lifeAndGDP = []happiness.Field{happiness.FieldLifeEval, happiness.FieldGDP}
	allDrivers = append([]happiness.Field{happiness.FieldLifeEval}, happiness.Factors...)
)

// Catalog lists the analyses in dashboard order
var Catalog = []Entry{
	{
		ID:       happiness.AnalysisTrend,
		Section:  "Overview",
		Heading:  "Global trend of life evaluation (with optional country comparison)",
		Title:    "Life evaluation over time (Global + Selected Countries)",
		XLabel:   "Year",
		YLabel:   "Life evaluation (3-year average)",
		Requires: lifeOnly,
	},
	{
		ID:       happiness.AnalysisRanking,
		Section:  "Rankings",
		Heading:  "Differences between countries (Top vs Bottom)",
		Title:    "Top and bottom countries by average life evaluation",
		XLabel:   "Average life evaluation",
		YLabel:   "Country",
		Requires: lifeOnly,
	},
	{
		ID:       happiness.AnalysisChange,
		Section:  "Changes",
		Heading:  "Biggest changes between the boundary years (increase vs decrease)",
		Title:    "Changes in life evaluation: top increases & decreases",
		XLabel:   "Life evaluation",
		YLabel:   "Country",
		Requires: lifeOnly,
	},
	{
		ID:       happiness.AnalysisScatter,
		Section:  "Drivers",
		Heading:  "Relationship: GDP per capita vs life evaluation (country averages)",
		Title:    "GDP per capita vs life evaluation (country averages)",
		XLabel:   "Avg Log GDP per capita",
		YLabel:   "Avg Life evaluation",
		Requires: allDrivers,
	},
	{
		ID:       happiness.AnalysisCorrelation,
		Section:  "Drivers",
		Heading:  "Which factor correlates most with life evaluation?",
		Title:    "Correlation with life evaluation (Country averages)",
		XLabel:   "Pearson correlation",
		YLabel:   "Factor",
		Note:     correlationCaveat,
		Requires: allDrivers,
	},
	{
		ID:       happiness.AnalysisFacets,
		Section:  "Drivers",
		Heading:  "Compare associations between key factors (faceted)",
		Title:    "Life Evaluation vs key factors (Country averages)",
		XLabel:   "Factor value",
		YLabel:   "Avg Life evaluation",
		Requires: allDrivers,
	},
	{
		ID:       happiness.AnalysisQuadrant,
		Section:  "Groups",
		Heading:  "High life evaluation despite low GDP (country averages)",
		Title:    "Countries with high life evaluation despite low GDP (averages)",
		XLabel:   "Avg life evaluation",
		YLabel:   "Country",
		Requires: lifeAndGDP,
	},
	{
		ID:       happiness.AnalysisProfile,
		Section:  "Groups",
		Heading:  "Factor profile: High vs Low life evaluation countries",
		Title:    "Average factor values by life evaluation group (country averages)",
		XLabel:   "Factor",
		YLabel:   "Average factor value",
		Requires: allDrivers,
	},
	{
		ID:       happiness.AnalysisEvolution,
		Section:  "Groups",
		Heading:  "How do happiness factors evolve over time? (global averages)",
		Title:    "Evolution of happiness factors (global yearly averages)",
		XLabel:   "Year",
		YLabel:   "Average factor value",
		Requires: happiness.Factors,
	},
	{
		ID:       happiness.AnalysisChoropleth,
		Section:  "Map",
		Heading:  "Global distribution of life evaluation",
		Title:    "Global distribution of life evaluation (selected years)",
		XLabel:   "Country",
		YLabel:   "Average life evaluation",
		Requires: lifeOnly,
	},
}

// Lookup returns the catalog entry of an analysis
func Lookup(id happiness.AnalysisID) (Entry, bool) {
	for _, e := range Catalog {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Requirements lists the numeric fields an analysis needs beyond country and year
func Requirements(id happiness.AnalysisID) []happiness.Field {
	if e, ok := Lookup(id); ok {
		return e.Requires
	}
	return nil
}

// Title returns the chart title of an analysis
func Title(id happiness.AnalysisID) string {
	if e, ok := Lookup(id); ok {
		return e.Title
	}
	return string(id)
}
