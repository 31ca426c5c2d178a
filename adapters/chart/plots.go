package chart

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"

	"happydash/domain/happiness"
	"happydash/internal/analysis"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// yearTicks labels every integer year in range
type yearTicks struct{}

func (yearTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for y := math.Ceil(min); y <= max; y++ {
		ticks = append(ticks, plot.Tick{Value: y, Label: strconv.Itoa(int(y))})
	}
	return ticks
}

func trendChart(p *plot.Plot, points []happiness.TrendPoint) error {
	var order []string
	series := make(map[string]plotter.XYs)
	for _, pt := range points {
		if !pt.Visible {
			continue
		}
		if _, ok := series[pt.Series]; !ok {
			order = append(order, pt.Series)
		}
		series[pt.Series] = append(series[pt.Series], plotter.XY{X: float64(pt.Year), Y: pt.LifeEval})
	}

	for i, name := range order {
		line, marks, err := plotter.NewLinePoints(series[name])
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(i)
		marks.Color = plotutil.Color(i)
		if name == analysis.GlobalSeries {
			line.Width = vg.Points(3)
			line.Color = color.Black
			marks.Color = color.Black
		}
		p.Add(line, marks)
		p.Legend.Add(name, line, marks)
	}
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	p.X.Tick.Marker = yearTicks{}
	return nil
}

// horizontalBars draws one bar per row with the first row at the top.
// Rows sharing a group share a bar series and color.
func horizontalBars(p *plot.Plot, labels []string, values []float64, groups []string, colors map[string]color.Color) error {
	n := len(values)
	reversed := make([]string, n)
	for i := range labels {
		reversed[n-1-i] = labels[i]
	}

	var names []string
	perGroup := make(map[string]plotter.Values)
	for i, v := range values {
		g := groups[i]
		if _, ok := perGroup[g]; !ok {
			names = append(names, g)
			perGroup[g] = make(plotter.Values, n)
		}
		perGroup[g][n-1-i] = v
	}

	for i, g := range names {
		bars, err := plotter.NewBarChart(perGroup[g], vg.Points(10))
		if err != nil {
			return err
		}
		bars.Horizontal = true
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		if c, ok := colors[g]; ok {
			bars.Color = c
		}
		p.Add(bars)
		if g != "" {
			p.Legend.Add(g, bars)
		}
	}
	p.NominalY(reversed...)
	p.Legend.Top = true
	return nil
}

func rankingChart(p *plot.Plot, rows []happiness.RankRow) error {
	labels := make([]string, len(rows))
	values := make([]float64, len(rows))
	groups := make([]string, len(rows))
	for i, r := range rows {
		labels[i] = r.Country
		values[i] = r.AvgLifeEval
		groups[i] = r.Group
	}
	return horizontalBars(p, labels, values, groups, map[string]color.Color{
		analysis.GroupTop:    topColor,
		analysis.GroupBottom: bottomColor,
	})
}

func correlationChart(p *plot.Plot, rows []happiness.CorrelationRow) error {
	labels := make([]string, len(rows))
	values := make([]float64, len(rows))
	groups := make([]string, len(rows))
	for i, r := range rows {
		labels[i] = r.Label
		values[i] = r.Correlation
	}
	return horizontalBars(p, labels, values, groups, map[string]color.Color{"": fromColor})
}

func quadrantChart(p *plot.Plot, rows []happiness.QuadrantRow) error {
	labels := make([]string, len(rows))
	values := make([]float64, len(rows))
	groups := make([]string, len(rows))
	for i, r := range rows {
		labels[i] = r.Country
		values[i] = r.LifeEval
	}
	return horizontalBars(p, labels, values, groups, map[string]color.Color{"": topColor})
}

// changeChart is a dumbbell plot joining each country's two boundary values
func changeChart(p *plot.Plot, rows []happiness.ChangeRow) error {
	n := len(rows)
	labels := make([]string, n)
	from := make(plotter.XYs, n)
	to := make(plotter.XYs, n)

	for i, r := range rows {
		y := float64(n - 1 - i)
		labels[n-1-i] = r.Country
		from[i] = plotter.XY{X: r.From, Y: y}
		to[i] = plotter.XY{X: r.To, Y: y}

		bar, err := plotter.NewLine(plotter.XYs{from[i], to[i]})
		if err != nil {
			return err
		}
		bar.Width = vg.Points(2)
		bar.Color = lineColor
		p.Add(bar)
	}

	fromMarks, err := plotter.NewScatter(from)
	if err != nil {
		return err
	}
	fromMarks.GlyphStyle.Color = fromColor
	fromMarks.GlyphStyle.Shape = draw.CircleGlyph{}

	toMarks, err := plotter.NewScatter(to)
	if err != nil {
		return err
	}
	toMarks.GlyphStyle.Color = toColor
	toMarks.GlyphStyle.Shape = draw.CircleGlyph{}

	p.Add(fromMarks, toMarks)
	if n > 0 {
		p.Legend.Add(strconv.Itoa(rows[0].FromYear), fromMarks)
		p.Legend.Add(strconv.Itoa(rows[0].ToYear), toMarks)
	}
	p.NominalY(labels...)
	p.Legend.Top = true
	return nil
}

// scatterChart draws one colored series per factor with an optional
// least-squares line per series
func scatterChart(p *plot.Plot, rows []happiness.FactorPoint, overlay bool) error {
	var order []happiness.Field
	xs := make(map[happiness.Field][]float64)
	ys := make(map[happiness.Field][]float64)
	for _, r := range rows {
		if _, ok := xs[r.Factor]; !ok {
			order = append(order, r.Factor)
		}
		xs[r.Factor] = append(xs[r.Factor], r.Value)
		ys[r.Factor] = append(ys[r.Factor], r.LifeEval)
	}

	for i, f := range order {
		pts := make(plotter.XYs, len(xs[f]))
		for j := range pts {
			pts[j] = plotter.XY{X: xs[f][j], Y: ys[f][j]}
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = plotutil.Color(i)
		s.GlyphStyle.Radius = vg.Points(3)
		p.Add(s)
		p.Legend.Add(f.Label(), s)

		if overlay {
			if fit, ok := regressionLine(xs[f], ys[f]); ok {
				fit.Color = plotutil.Color(i)
				fit.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
				p.Add(fit)
			}
		}
	}
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	return nil
}

// regressionLine fits y = alpha + beta*x by ordinary least squares
func regressionLine(xs, ys []float64) (*plotter.Function, bool) {
	if len(xs) < 2 {
		return nil, false
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	if math.IsNaN(alpha) || math.IsNaN(beta) || math.IsInf(beta, 0) {
		return nil, false
	}
	return plotter.NewFunction(func(x float64) float64 { return alpha + beta*x }), true
}

// profileChart draws grouped bars, one group per factor
func profileChart(p *plot.Plot, rows []happiness.ProfileRow) error {
	var factors []string
	index := make(map[string]int)
	for _, r := range rows {
		if _, ok := index[r.Label]; !ok {
			index[r.Label] = len(factors)
			factors = append(factors, r.Label)
		}
	}

	width := vg.Points(14)
	for i, group := range []string{analysis.GroupHighLife, analysis.GroupLowLife} {
		values := make(plotter.Values, len(factors))
		for _, r := range rows {
			if r.Group == group {
				values[index[r.Label]] = r.Average
			}
		}
		bars, err := plotter.NewBarChart(values, width)
		if err != nil {
			return err
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = vg.Length(2*i-1) * width / 2
		p.Add(bars)
		p.Legend.Add(group, bars)
	}
	p.NominalX(factors...)
	p.X.Tick.Label.Rotation = math.Pi / 8
	p.X.Tick.Label.XAlign = draw.XRight
	p.Legend.Top = true
	return nil
}

func evolutionChart(p *plot.Plot, rows []happiness.EvolutionRow) error {
	var order []string
	series := make(map[string]plotter.XYs)
	for _, r := range rows {
		if _, ok := series[r.Label]; !ok {
			order = append(order, r.Label)
		}
		series[r.Label] = append(series[r.Label], plotter.XY{X: float64(r.Year), Y: r.Average})
	}

	for i, name := range order {
		line, marks, err := plotter.NewLinePoints(series[name])
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(i)
		marks.Color = plotutil.Color(i)
		p.Add(line, marks)
		p.Legend.Add(name, line, marks)
	}
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	p.X.Tick.Marker = yearTicks{}
	return nil
}

// mapChart cannot draw borders, so it ranks countries as dots colored on
// the same continuous scale a choropleth would use
func mapChart(p *plot.Plot, rows []happiness.MapRow, scale analysis.ColorScale) error {
	sorted := make([]happiness.MapRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].AvgLifeEval < sorted[j].AvgLifeEval })

	cmap := moreland.SmoothBlueRed()
	lo, hi := scale.Min, scale.Max
	if hi <= lo {
		hi = lo + 1
	}
	cmap.SetMin(lo)
	cmap.SetMax(hi)

	pts := make(plotter.XYs, len(sorted))
	labels := make([]string, len(sorted))
	for i, r := range sorted {
		pts[i] = plotter.XY{X: r.AvgLifeEval, Y: float64(i)}
		labels[i] = r.Country
		if r.ISO3 != "" {
			labels[i] = fmt.Sprintf("%s (%s)", r.Country, r.ISO3)
		}
	}

	dots, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	dots.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		c, err := cmap.At(pts[i].X)
		if err != nil {
			c = lineColor
		}
		return draw.GlyphStyle{Color: c, Radius: vg.Points(4), Shape: draw.CircleGlyph{}}
	}
	p.Add(dots)
	p.NominalY(labels...)

	ticks := make(plot.ConstantTicks, len(scale.Ticks))
	for i, v := range scale.Ticks {
		ticks[i] = plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', 1, 64)}
	}
	if len(ticks) > 0 {
		p.X.Tick.Marker = ticks
	}
	return nil
}
