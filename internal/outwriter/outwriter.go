// Package outwriter exports dashboard tables as terminal tables, CSV, JSON,
// XLSX workbooks and Parquet files.
package outwriter

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"happydash/domain/happiness"
	"happydash/internal/analysis"
	"happydash/internal/errors"
)

// Format is an export format
type Format string

const (
	FormatText    Format = "text"
	FormatCSV     Format = "csv"
	FormatJSON    Format = "json"
	FormatXLSX    Format = "xlsx"
	FormatParquet Format = "parquet"
)

// Formats lists every supported format
var Formats = []Format{FormatText, FormatCSV, FormatJSON, FormatXLSX, FormatParquet}

// ParseFormat resolves a format name
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" || f == "table" {
		return FormatText, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.InvalidInput(fmt.Sprintf("unsupported export format %q", s))
}

// Options configures an OutWriter
type Options struct {
	Format    Format
	Precision int
	// Dest is a file for text, JSON and XLSX, a directory for CSV and Parquet.
	// Empty or "-" writes text, JSON or a single CSV table to Stdout.
	Dest string
	// MaxRows truncates text tables; 0 prints every row
	MaxRows int
}

// OutWriter exports dashboards in the configured format
type OutWriter struct {
	opts   Options
	Stdout io.Writer
}

// NewOutWriter creates a new instance of the output writer
func NewOutWriter(opts Options) *OutWriter {
	if opts.Format == "" {
		opts.Format = FormatText
	}
	if opts.Precision <= 0 {
		opts.Precision = 3
	}
	return &OutWriter{opts: opts, Stdout: os.Stdout}
}

// Write exports the selected analyses of a dashboard; an empty selection
// exports all of them. It returns the paths written, if any.
func (ow *OutWriter) Write(d *analysis.Dashboard, ids []happiness.AnalysisID) ([]string, error) {
	start := time.Now()
	frames, err := selectFrames(d, ids)
	if err != nil {
		return nil, err
	}

	var paths []string
	switch ow.opts.Format {
	case FormatText:
		paths, err = ow.toStream(func(w io.Writer) error { return writeText(w, d, frames, ow.opts) })
	case FormatJSON:
		paths, err = ow.toStream(func(w io.Writer) error { return writeJSON(w, d, frames) })
	case FormatCSV:
		paths, err = ow.writeCSV(frames)
	case FormatXLSX:
		if ow.toStdout() {
			return nil, errors.InvalidInput("xlsx export needs a destination file")
		}
		err = writeXLSX(ow.opts.Dest, d, frames)
		paths = []string{ow.opts.Dest}
	case FormatParquet:
		if ow.toStdout() {
			return nil, errors.InvalidInput("parquet export needs a destination directory")
		}
		paths, err = writeParquet(ow.opts.Dest, d, frames)
	default:
		return nil, errors.InvalidInput(fmt.Sprintf("unsupported export format %q", ow.opts.Format))
	}
	if err != nil {
		return nil, errors.ExportError(string(ow.opts.Format), err)
	}

	log.Printf("[OutWriter] %d analyses exported as %s in %.2fms", len(frames), ow.opts.Format,
		float64(time.Since(start).Nanoseconds())/1e6)
	return paths, nil
}

func (ow *OutWriter) toStdout() bool {
	return ow.opts.Dest == "" || ow.opts.Dest == "-"
}

// toStream writes to Stdout or to the destination file
func (ow *OutWriter) toStream(write func(io.Writer) error) ([]string, error) {
	if ow.toStdout() {
		return nil, write(ow.Stdout)
	}
	file, err := os.Create(ow.opts.Dest)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := write(file); err != nil {
		return nil, err
	}
	return []string{ow.opts.Dest}, nil
}

func (ow *OutWriter) writeCSV(frames []happiness.Frame) ([]string, error) {
	if ow.toStdout() {
		if len(frames) != 1 {
			return nil, fmt.Errorf("csv to stdout needs exactly one analysis, got %d", len(frames))
		}
		return nil, writeCSVFrame(ow.Stdout, frames[0], ow.opts.Precision)
	}

	if err := os.MkdirAll(ow.opts.Dest, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	var paths []string
	for _, f := range frames {
		path := filepath.Join(ow.opts.Dest, FileName(f.Analysis, "csv"))
		if err := writeCSVFile(path, f, ow.opts.Precision); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// FileName is the per-analysis file name used by directory exports
func FileName(id happiness.AnalysisID, ext string) string {
	return strings.ToLower(string(id)) + "." + ext
}

// selectFrames returns the requested frames in dashboard order
func selectFrames(d *analysis.Dashboard, ids []happiness.AnalysisID) ([]happiness.Frame, error) {
	all := d.Frames()
	if len(ids) == 0 {
		return all, nil
	}
	want := make(map[happiness.AnalysisID]bool, len(ids))
	for _, id := range ids {
		if _, ok := d.Frame(id); !ok {
			return nil, errors.NotFound(fmt.Sprintf("analysis %s", id))
		}
		want[id] = true
	}
	var frames []happiness.Frame
	for _, f := range all {
		if want[f.Analysis] {
			frames = append(frames, f)
		}
	}
	return frames, nil
}
