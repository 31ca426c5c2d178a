package chart

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"happydash/domain/happiness"
	"happydash/internal/analysis"
	"happydash/internal/config"
	"happydash/internal/dataset"
	"happydash/internal/errors"
	"happydash/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dashboard(t *testing.T, ds *happiness.Dataset, p analysis.Params) *analysis.Dashboard {
	t.Helper()
	r := analysis.NewRunner(dataset.NewStaticStore(ds), config.Default().Analysis, nil)
	d, err := r.Run(context.Background(), p)
	require.NoError(t, err)
	return d
}

func TestRender_EveryAnalysisAsPNG(t *testing.T) {
	d := dashboard(t, testkit.Drivers(), analysis.Params{Countries: []string{"Finland", "Chad", "Kenya", "Japan", "Costa Rica"}})
	cfg := config.Default().Charts
	cfg.Overlay = true
	r := NewRenderer(cfg)

	for _, id := range happiness.AnalysisIDs {
		f, ok := d.Frame(id)
		require.True(t, ok)
		if f.Status != happiness.StatusOK {
			continue
		}
		var buf bytes.Buffer
		require.NoError(t, r.Render(d, id, FormatPNG, &buf), "analysis %s", id)
		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")), "analysis %s", id)
	}
}

func TestRender_SVG(t *testing.T) {
	d := dashboard(t, testkit.Drivers(), analysis.Params{})
	r := NewRenderer(config.Default().Charts)

	var buf bytes.Buffer
	require.NoError(t, r.Render(d, happiness.AnalysisProfile, FormatSVG, &buf))
	out := buf.String()
	assert.True(t, strings.Contains(out, "<svg"))
	assert.Contains(t, out, "High life evaluation")
}

func TestRender_NonRenderableStatus(t *testing.T) {
	records := testkit.Drivers().Records()
	ds := happiness.NewDataset(records, []happiness.Field{
		happiness.FieldCountry, happiness.FieldYear, happiness.FieldLifeEval,
	}, "life-only")
	d := dashboard(t, ds, analysis.Params{})
	r := NewRenderer(config.Default().Charts)

	err := r.Render(d, happiness.AnalysisScatter, FormatPNG, &bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	var buf bytes.Buffer
	assert.NoError(t, r.Render(d, happiness.AnalysisTrend, FormatPNG, &buf))
}

func TestRender_UnknownAnalysis(t *testing.T) {
	d := dashboard(t, testkit.Drivers(), analysis.Params{})
	err := NewRenderer(config.Default().Charts).Render(d, "P42", FormatPNG, &bytes.Buffer{})
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]string{"": FormatPNG, "PNG": FormatPNG, " svg ": FormatSVG} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("gif")
	assert.Error(t, err)
	assert.Equal(t, "image/svg+xml", ContentType(FormatSVG))
	assert.Equal(t, "image/png", ContentType(FormatPNG))
}

func TestRegressionLine(t *testing.T) {
	fit, ok := regressionLine([]float64{1, 2, 3}, []float64{2, 4, 6})
	require.True(t, ok)
	assert.InDelta(t, 8.0, fit.F(4), 1e-9)

	_, ok = regressionLine([]float64{1}, []float64{1})
	assert.False(t, ok)
}
