package outwriter

import (
	"fmt"
	"os"
	"path/filepath"

	"happydash/domain/happiness"
	"happydash/internal/analysis"

	"github.com/parquet-go/parquet-go"
)

// writeParquet writes one file per analysis using the typed rows so every
// column keeps its native type
func writeParquet(dir string, d *analysis.Dashboard, frames []happiness.Frame) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var paths []string
	for _, fr := range frames {
		path := filepath.Join(dir, FileName(fr.Analysis, "parquet"))
		var err error
		switch fr.Analysis {
		case happiness.AnalysisTrend:
			err = writeParquetFile(path, d.Trend.Rows)
		case happiness.AnalysisRanking:
			err = writeParquetFile(path, d.Ranking.Rows)
		case happiness.AnalysisChange:
			err = writeParquetFile(path, d.Change.Rows)
		case happiness.AnalysisScatter:
			err = writeParquetFile(path, d.Scatter.Rows)
		case happiness.AnalysisCorrelation:
			err = writeParquetFile(path, d.Correlation.Rows)
		case happiness.AnalysisFacets:
			err = writeParquetFile(path, d.Facets.Rows)
		case happiness.AnalysisQuadrant:
			err = writeParquetFile(path, d.Quadrant.Rows)
		case happiness.AnalysisProfile:
			err = writeParquetFile(path, d.Profile.Rows)
		case happiness.AnalysisEvolution:
			err = writeParquetFile(path, d.Evolution.Rows)
		case happiness.AnalysisChoropleth:
			err = writeParquetFile(path, d.Map.Rows)
		default:
			err = fmt.Errorf("no parquet layout for %s", fr.Analysis)
		}
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// writeParquetFile writes rows to a Parquet file; the schema is inferred
// from the row struct tags
func writeParquetFile[R any](path string, rows []R) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[R](file)
	if len(rows) > 0 {
		if _, err := writer.Write(rows); err != nil {
			_ = writer.Close()
			return fmt.Errorf("failed to write data to parquet file: %w", err)
		}
	}
	return writer.Close()
}
