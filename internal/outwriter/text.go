package outwriter

import (
	"fmt"
	"io"
	"strconv"

	"happydash/domain/happiness"
	"happydash/internal/analysis"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

var (
	titleColor   = color.New(color.Bold)
	okColor      = color.New(color.FgGreen)
	emptyColor   = color.New(color.FgHiBlack)
	skippedColor = color.New(color.FgYellow)
	failedColor  = color.New(color.FgRed, color.Bold)
	warnColor    = color.New(color.FgYellow)
)

// statusLabel colors a status the way the terminal report shows it
func statusLabel(s happiness.Status) string {
	switch s {
	case happiness.StatusOK:
		return okColor.Sprint(string(s))
	case happiness.StatusEmpty, happiness.StatusNoData:
		return emptyColor.Sprint(string(s))
	case happiness.StatusSkipped:
		return skippedColor.Sprint(string(s))
	default:
		return failedColor.Sprint(string(s))
	}
}

// writeText prints the KPI row, the warnings and one table per analysis
func writeText(w io.Writer, d *analysis.Dashboard, frames []happiness.Frame, opts Options) error {
	p := d.Params
	fmt.Fprintf(w, "%s\n", titleColor.Sprintf("Happiness dashboard %d–%d", p.YearMin, p.YearMax))
	fmt.Fprintf(w, "Countries: %d  Years: %d  Rows: %d\n", d.Summary.Countries, d.Summary.Years, d.Summary.Rows)
	for _, warning := range d.Warnings {
		fmt.Fprintf(w, "%s %s\n", warnColor.Sprint("warning:"), warning)
	}

	for _, f := range frames {
		fmt.Fprintf(w, "\n%s %s [%s]\n", titleColor.Sprint(string(f.Analysis)), f.Title, statusLabel(f.Status))
		if f.Status != happiness.StatusOK {
			if len(f.Missing) > 0 {
				fmt.Fprintf(w, "  missing columns: %v\n", f.Missing)
			}
			if f.Reason != "" {
				fmt.Fprintf(w, "  %s\n", f.Reason)
			}
			continue
		}
		if entry, ok := analysis.Lookup(f.Analysis); ok && entry.Note != "" {
			fmt.Fprintf(w, "  %s\n", entry.Note)
		}
		if err := writeFrameTable(w, f, opts); err != nil {
			return err
		}
	}
	return nil
}

func writeFrameTable(w io.Writer, f happiness.Frame, opts Options) error {
	table := tablewriter.NewWriter(w)
	table.Header(f.Columns)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	rows := f.Rows
	truncated := 0
	if opts.MaxRows > 0 && len(rows) > opts.MaxRows {
		truncated = len(rows) - opts.MaxRows
		rows = rows[:opts.MaxRows]
	}

	data := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = formatValue(v, opts.Precision)
		}
		data = append(data, cells)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if truncated > 0 {
		fmt.Fprintf(w, "  … %d more rows\n", truncated)
	}
	return nil
}

// formatValue prints one cell with a fixed float precision
func formatValue(v any, precision int) string {
	switch t := v.(type) {
	case float64:
		return strconv.FormatFloat(t, 'f', precision, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	case string:
		return t
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
