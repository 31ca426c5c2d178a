package happiness

// Row is implemented by every analysis row type so that exporters can
// flatten tables without knowing the concrete type.
type Row interface {
	Columns() []string
	Values() []any
}

// TrendPoint is one (series, year) point of P1
type TrendPoint struct {
	Series   string  `json:"series" parquet:"series"`
	Country  string  `json:"country,omitempty" parquet:"country"`
	Year     int     `json:"year" parquet:"year"`
	LifeEval float64 `json:"life_eval" parquet:"life_eval"`
	Global   bool    `json:"global" parquet:"global"`
	Visible  bool    `json:"visible" parquet:"visible"`
}

func (TrendPoint) Columns() []string {
	return []string{"series", "year", "life_eval", "visible"}
}

func (p TrendPoint) Values() []any {
	return []any{p.Series, p.Year, p.LifeEval, p.Visible}
}

// RankRow is one country of the P2 top/bottom ranking
type RankRow struct {
	Rank        int     `json:"rank" parquet:"rank"`
	Country     string  `json:"country" parquet:"country"`
	AvgLifeEval float64 `json:"avg_life_eval" parquet:"avg_life_eval"`
	Group       string  `json:"group" parquet:"group"`
}

func (RankRow) Columns() []string {
	return []string{"group", "rank", "country", "avg_life_eval"}
}

func (r RankRow) Values() []any {
	return []any{r.Group, r.Rank, r.Country, r.AvgLifeEval}
}

// ChangeRow pairs one country's boundary-year values for P3
type ChangeRow struct {
	Country   string  `json:"country" parquet:"country"`
	FromYear  int     `json:"from_year" parquet:"from_year"`
	ToYear    int     `json:"to_year" parquet:"to_year"`
	From      float64 `json:"from" parquet:"from"`
	To        float64 `json:"to" parquet:"to"`
	Change    float64 `json:"change" parquet:"change"`
	Direction string  `json:"direction" parquet:"direction"`
}

func (ChangeRow) Columns() []string {
	return []string{"direction", "country", "from_year", "from", "to_year", "to", "change"}
}

func (r ChangeRow) Values() []any {
	return []any{r.Direction, r.Country, r.FromYear, r.From, r.ToYear, r.To, r.Change}
}

// FactorPoint is one country's mean factor value against its mean life evaluation (P4, P6)
type FactorPoint struct {
	Country     string  `json:"country" parquet:"country"`
	Factor      Field   `json:"factor" parquet:"factor"`
	FactorLabel string  `json:"factor_label" parquet:"factor_label"`
	Value       float64 `json:"value" parquet:"value"`
	LifeEval    float64 `json:"life_eval" parquet:"life_eval"`
}

func (FactorPoint) Columns() []string {
	return []string{"factor", "country", "value", "life_eval"}
}

func (p FactorPoint) Values() []any {
	return []any{p.FactorLabel, p.Country, p.Value, p.LifeEval}
}

// CorrelationRow is one factor's Pearson correlation with life evaluation (P5)
type CorrelationRow struct {
	Factor      Field   `json:"factor" parquet:"factor"`
	Label       string  `json:"label" parquet:"label"`
	Correlation float64 `json:"correlation" parquet:"correlation"`
	Pairs       int     `json:"pairs" parquet:"pairs"`
}

func (CorrelationRow) Columns() []string {
	return []string{"factor", "correlation", "pairs"}
}

func (r CorrelationRow) Values() []any {
	return []any{r.Label, r.Correlation, r.Pairs}
}

// QuadrantRow is a country with high life evaluation despite low GDP (P7)
type QuadrantRow struct {
	Country  string  `json:"country" parquet:"country"`
	LifeEval float64 `json:"life_eval" parquet:"life_eval"`
	GDP      float64 `json:"gdp" parquet:"gdp"`
}

func (QuadrantRow) Columns() []string {
	return []string{"country", "life_eval", "gdp"}
}

func (r QuadrantRow) Values() []any {
	return []any{r.Country, r.LifeEval, r.GDP}
}

// ProfileRow is one (life group, factor) mean of P8
type ProfileRow struct {
	Group     string  `json:"group" parquet:"group"`
	Factor    Field   `json:"factor" parquet:"factor"`
	Label     string  `json:"label" parquet:"label"`
	Average   float64 `json:"average" parquet:"average"`
	Countries int     `json:"countries" parquet:"countries"`
}

func (ProfileRow) Columns() []string {
	return []string{"factor", "group", "average", "countries"}
}

func (r ProfileRow) Values() []any {
	return []any{r.Label, r.Group, r.Average, r.Countries}
}

// EvolutionRow is one (year, factor) global mean of P9
type EvolutionRow struct {
	Year    int     `json:"year" parquet:"year"`
	Factor  Field   `json:"factor" parquet:"factor"`
	Label   string  `json:"label" parquet:"label"`
	Average float64 `json:"average" parquet:"average"`
}

func (EvolutionRow) Columns() []string {
	return []string{"factor", "year", "average"}
}

func (r EvolutionRow) Values() []any {
	return []any{r.Label, r.Year, r.Average}
}

// MapRow is one country's mean life evaluation with its ISO 3166 alpha-3 code
type MapRow struct {
	Country     string  `json:"country" parquet:"country"`
	ISO3        string  `json:"iso3" parquet:"iso3"`
	AvgLifeEval float64 `json:"avg_life_eval" parquet:"avg_life_eval"`
}

func (MapRow) Columns() []string {
	return []string{"country", "iso3", "avg_life_eval"}
}

func (r MapRow) Values() []any {
	return []any{r.Country, r.ISO3, r.AvgLifeEval}
}

// Frame is a type-erased table: the shape every exporter, the JSON API and
// the MCP tools work with.
type Frame struct {
	Analysis AnalysisID `json:"analysis"`
	Title    string     `json:"title"`
	Status   Status     `json:"status"`
	Reason   string     `json:"reason,omitempty"`
	Missing  []string   `json:"missing_fields,omitempty"`
	Columns  []string   `json:"columns"`
	Rows     [][]any    `json:"rows"`
}

// ToFrame flattens a typed table
func ToFrame[R Row](t Table[R], title string) Frame {
	var zero R
	rows := make([][]any, 0, len(t.Rows))
	for _, r := range t.Rows {
		rows = append(rows, r.Values())
	}
	return Frame{
		Analysis: t.Analysis,
		Title:    title,
		Status:   t.Status,
		Reason:   t.Reason,
		Missing:  t.Missing,
		Columns:  zero.Columns(),
		Rows:     rows,
	}
}
