package chart

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"strings"
	"time"

	"happydash/domain/happiness"
	"happydash/internal/analysis"
	"happydash/internal/config"
	"happydash/internal/errors"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// Supported output formats
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// Renderer draws dashboard tables as static images
type Renderer struct {
	width   vg.Length
	height  vg.Length
	overlay bool
}

// NewRenderer creates a renderer sized from config
func NewRenderer(cfg config.ChartConfig) *Renderer {
	width, height := cfg.WidthIn, cfg.HeightIn
	if width <= 0 {
		width = 8
	}
	if height <= 0 {
		height = 4.5
	}
	return &Renderer{
		width:   vg.Length(width) * vg.Inch,
		height:  vg.Length(height) * vg.Inch,
		overlay: cfg.Overlay,
	}
}

// ParseFormat normalises an image format name
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "", FormatPNG:
		return FormatPNG, nil
	case FormatSVG:
		return FormatSVG, nil
	default:
		return "", errors.InvalidInput(fmt.Sprintf("unsupported chart format %q", s))
	}
}

// ContentType returns the MIME type of a format
func ContentType(format string) string {
	if format == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// Render writes one analysis of the dashboard as an image.
// Tables that are not in StatusOK cannot be drawn and yield INVALID_INPUT.
func (r *Renderer) Render(d *analysis.Dashboard, id happiness.AnalysisID, format string, w io.Writer) error {
	start := time.Now()

	p, err := r.build(d, id)
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(r.width, r.height, format)
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s chart", format)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return errors.Wrap(err, "failed to write chart")
	}

	log.Printf("[ChartRenderer] %s rendered as %s in %.2fms", id, format, float64(time.Since(start).Nanoseconds())/1e6)
	return nil
}

func (r *Renderer) build(d *analysis.Dashboard, id happiness.AnalysisID) (*plot.Plot, error) {
	frame, ok := d.Frame(id)
	if !ok {
		return nil, errors.NotFound(fmt.Sprintf("analysis %s", id))
	}
	if frame.Status != happiness.StatusOK {
		return nil, errors.InvalidInput(fmt.Sprintf("%s has no chart (%s): %s", id, frame.Status, frame.Reason))
	}

	entry, _ := analysis.Lookup(id)
	p := plot.New()
	p.Title.Text = entry.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = entry.XLabel
	p.Y.Label.Text = entry.YLabel

	var err error
	switch id {
	case happiness.AnalysisTrend:
		err = trendChart(p, d.Trend.Rows)
	case happiness.AnalysisRanking:
		err = rankingChart(p, d.Ranking.Rows)
	case happiness.AnalysisChange:
		p.Title.Text = fmt.Sprintf("Changes in life evaluation (%d → %d): top %d increases & decreases",
			d.Params.ChangeFrom, d.Params.ChangeTo, d.Params.ChangeN)
		err = changeChart(p, d.Change.Rows)
	case happiness.AnalysisScatter:
		err = scatterChart(p, d.Scatter.Rows, r.overlay)
	case happiness.AnalysisCorrelation:
		err = correlationChart(p, d.Correlation.Rows)
	case happiness.AnalysisFacets:
		err = scatterChart(p, d.Facets.Rows, r.overlay)
	case happiness.AnalysisQuadrant:
		err = quadrantChart(p, d.Quadrant.Rows)
	case happiness.AnalysisProfile:
		err = profileChart(p, d.Profile.Rows)
	case happiness.AnalysisEvolution:
		err = evolutionChart(p, d.Evolution.Rows)
	case happiness.AnalysisChoropleth:
		err = mapChart(p, d.Map.Rows, d.MapScale)
	default:
		return nil, errors.NotFound(fmt.Sprintf("chart for %s", id))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build %s chart", id)
	}
	return p, nil
}

var (
	topColor    = color.RGBA{R: 46, G: 139, B: 87, A: 255}
	bottomColor = color.RGBA{R: 178, G: 34, B: 34, A: 255}
	fromColor   = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	toColor     = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	lineColor   = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)
