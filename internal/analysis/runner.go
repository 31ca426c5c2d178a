package analysis

import (
	"context"
	"fmt"
	"time"

	"happydash/domain/core"
	"happydash/domain/happiness"
	"happydash/internal"
	"happydash/internal/config"
	"happydash/internal/errors"

	"golang.org/x/sync/errgroup"
)

// DatasetSource yields the process-wide dataset
type DatasetSource interface {
	Get(ctx context.Context) (*happiness.Dataset, error)
}

// Runner executes the filter stage and every analysis for one parameter set
type Runner struct {
	source DatasetSource
	config config.AnalysisConfig
	memo   *Memo
	logger *internal.Logger
}

// NewRunner creates a runner; a nil memo disables memoization
func NewRunner(source DatasetSource, cfg config.AnalysisConfig, memo *Memo) *Runner {
	return &Runner{
		source: source,
		config: cfg,
		memo:   memo,
		logger: internal.NewComponentLogger("Dashboard"),
	}
}

// Dashboard is the output of one render cycle
type Dashboard struct {
	CycleID  core.CycleID `json:"cycle_id"`
	Params   Params       `json:"params"`
	Summary  Summary      `json:"summary"`
	Warnings []string     `json:"warnings,omitempty"`

	Trend       happiness.Table[happiness.TrendPoint]     `json:"trend"`
	Ranking     happiness.Table[happiness.RankRow]        `json:"ranking"`
	Change      happiness.Table[happiness.ChangeRow]      `json:"change"`
	Scatter     happiness.Table[happiness.FactorPoint]    `json:"scatter"`
	Correlation happiness.Table[happiness.CorrelationRow] `json:"correlation"`
	Facets      happiness.Table[happiness.FactorPoint]    `json:"facets"`
	Quadrant    happiness.Table[happiness.QuadrantRow]    `json:"quadrant"`
	Profile     happiness.Table[happiness.ProfileRow]     `json:"profile"`
	Evolution   happiness.Table[happiness.EvolutionRow]   `json:"evolution"`
	Map         happiness.Table[happiness.MapRow]         `json:"map"`
	MapScale    ColorScale                                `json:"map_scale"`

	Took time.Duration `json:"took"`
}

// Memo returns the runner's memo, nil when disabled
func (r *Runner) Memo() *Memo {
	return r.memo
}

// Dataset returns the loaded dataset
func (r *Runner) Dataset(ctx context.Context) (*happiness.Dataset, error) {
	return r.source.Get(ctx)
}

// Resolve fills zero parameters from the dataset and config, clamps N
// parameters to their bounds and reports any adjustment as a warning.
func (r *Runner) Resolve(ds *happiness.Dataset, p Params) (Params, []string, error) {
	if err := p.Validate(); err != nil {
		return Params{}, nil, err
	}

	var warnings []string
	lo, hi, _ := ds.YearBounds()
	if p.YearMin == 0 {
		p.YearMin = lo
	}
	if p.YearMax == 0 {
		p.YearMax = hi
	}
	if p.YearMin > p.YearMax {
		return Params{}, nil, errors.InvalidInput(fmt.Sprintf("year_min %d is after year_max %d", p.YearMin, p.YearMax))
	}

	clampN := func(name string, n, def int) int {
		clamped := r.config.ClampN(n, def)
		if n != 0 && clamped != n {
			warnings = append(warnings, fmt.Sprintf("%s %d out of range; using %d", name, n, clamped))
		}
		return clamped
	}
	p.TopN = clampN("top_n", p.TopN, r.config.TopNDefault)
	p.ChangeN = clampN("change_n", p.ChangeN, r.config.ChangeNDefault)

	maxCountries := r.config.ClampMaxCountries(p.MaxCountries)
	if p.MaxCountries != 0 && maxCountries != p.MaxCountries {
		warnings = append(warnings, fmt.Sprintf("max_countries %d out of range; using %d", p.MaxCountries, maxCountries))
	}
	p.MaxCountries = maxCountries

	if len(p.ScatterFactors) == 0 {
		p.ScatterFactors = append([]happiness.Field(nil), DefaultScatterFactors...)
	}

	if p.ChangeFrom == 0 {
		p.ChangeFrom = r.config.ChangeFromYear
	}
	if p.ChangeTo == 0 {
		p.ChangeTo = r.config.ChangeToYear
	}
	if p.ChangeFrom == 0 {
		p.ChangeFrom = lo
	}
	if p.ChangeTo == 0 {
		p.ChangeTo = hi
	}

	return p, warnings, nil
}

// Run filters the dataset and computes every analysis concurrently
func (r *Runner) Run(ctx context.Context, p Params) (*Dashboard, error) {
	start := time.Now()

	ds, err := r.source.Get(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "dataset unavailable")
	}
	resolved, warnings, err := r.Resolve(ds, p)
	if err != nil {
		return nil, err
	}

	selection, capWarning := CapSelection(resolved.Countries, resolved.MaxCountries)
	if capWarning != "" {
		warnings = append(warnings, capWarning)
	}

	d := &Dashboard{
		CycleID:  core.NewCycleID(),
		Params:   resolved,
		Summary:  Summarize(ds, resolved.YearMin, resolved.YearMax),
		Warnings: warnings,
	}

	sub := Filter(ds, resolved.YearMin, resolved.YearMax, resolved.Countries)
	prefix := ds.Fingerprint().Short() + "|" + resolved.Key() + "|"

	g, gctx := errgroup.WithContext(ctx)
	spawn := func(fn func()) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn()
			return nil
		})
	}

	spawn(func() {
		d.Trend = memoized(r.memo, prefix+string(happiness.AnalysisTrend), func() happiness.Table[happiness.TrendPoint] {
			return Trend(sub, selection)
		})
	})
	spawn(func() {
		d.Ranking = memoized(r.memo, prefix+string(happiness.AnalysisRanking), func() happiness.Table[happiness.RankRow] {
			return Ranking(sub, resolved.TopN)
		})
	})
	spawn(func() {
		d.Change = memoized(r.memo, prefix+string(happiness.AnalysisChange), func() happiness.Table[happiness.ChangeRow] {
			return Change(sub, resolved.ChangeFrom, resolved.ChangeTo, resolved.ChangeN)
		})
	})
	spawn(func() {
		d.Scatter = memoized(r.memo, prefix+string(happiness.AnalysisScatter), func() happiness.Table[happiness.FactorPoint] {
			return FactorScatter(sub)
		})
	})
	spawn(func() {
		d.Correlation = memoized(r.memo, prefix+string(happiness.AnalysisCorrelation), func() happiness.Table[happiness.CorrelationRow] {
			return FactorCorrelations(sub)
		})
	})
	spawn(func() {
		d.Facets = memoized(r.memo, prefix+string(happiness.AnalysisFacets), func() happiness.Table[happiness.FactorPoint] {
			return FactorFacets(sub, resolved.ScatterFactors)
		})
	})
	spawn(func() {
		d.Quadrant = memoized(r.memo, prefix+string(happiness.AnalysisQuadrant), func() happiness.Table[happiness.QuadrantRow] {
			return HighLifeLowGDP(sub)
		})
	})
	spawn(func() {
		d.Profile = memoized(r.memo, prefix+string(happiness.AnalysisProfile), func() happiness.Table[happiness.ProfileRow] {
			return FactorProfile(sub)
		})
	})
	spawn(func() {
		d.Evolution = memoized(r.memo, prefix+string(happiness.AnalysisEvolution), func() happiness.Table[happiness.EvolutionRow] {
			return FactorEvolution(sub)
		})
	})
	spawn(func() {
		d.Map = memoized(r.memo, prefix+string(happiness.AnalysisChoropleth), func() happiness.Table[happiness.MapRow] {
			return Choropleth(sub)
		})
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	d.MapScale, _ = MapScale(d.Map.Rows)
	d.Took = time.Since(start)

	for _, f := range d.Frames() {
		if f.Status == happiness.StatusSkipped || f.Status == happiness.StatusUnavailable {
			r.logger.Debug("%s %s: %s", f.Analysis, f.Status, f.Reason)
		}
	}
	r.logger.Info("Cycle %s: %d rows after filter, %d analyses in %.2fms",
		d.CycleID, sub.Len(), len(happiness.AnalysisIDs), float64(d.Took.Nanoseconds())/1e6)

	return d, nil
}

// RunOne runs a cycle and returns one analysis as a frame with the cycle warnings
func (r *Runner) RunOne(ctx context.Context, p Params, id happiness.AnalysisID) (happiness.Frame, []string, error) {
	d, err := r.Run(ctx, p)
	if err != nil {
		return happiness.Frame{}, nil, err
	}
	f, ok := d.Frame(id)
	if !ok {
		return happiness.Frame{}, nil, errors.NotFound(fmt.Sprintf("analysis %s", id))
	}
	return f, d.Warnings, nil
}

// Frames flattens every analysis in dashboard order
func (d *Dashboard) Frames() []happiness.Frame {
	return []happiness.Frame{
		happiness.ToFrame(d.Trend, Title(happiness.AnalysisTrend)),
		happiness.ToFrame(d.Ranking, Title(happiness.AnalysisRanking)),
		happiness.ToFrame(d.Change, Title(happiness.AnalysisChange)),
		happiness.ToFrame(d.Scatter, Title(happiness.AnalysisScatter)),
		happiness.ToFrame(d.Correlation, Title(happiness.AnalysisCorrelation)),
		happiness.ToFrame(d.Facets, Title(happiness.AnalysisFacets)),
		happiness.ToFrame(d.Quadrant, Title(happiness.AnalysisQuadrant)),
		happiness.ToFrame(d.Profile, Title(happiness.AnalysisProfile)),
		happiness.ToFrame(d.Evolution, Title(happiness.AnalysisEvolution)),
		happiness.ToFrame(d.Map, Title(happiness.AnalysisChoropleth)),
	}
}

// Frame returns one analysis as a frame
func (d *Dashboard) Frame(id happiness.AnalysisID) (happiness.Frame, bool) {
	for _, f := range d.Frames() {
		if f.Analysis == id {
			return f, true
		}
	}
	return happiness.Frame{}, false
}
