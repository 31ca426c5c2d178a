package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"happydash/domain/happiness"
)

// writeCSVFrame writes one analysis as a header row plus data rows
func writeCSVFrame(out io.Writer, f happiness.Frame, precision int) error {
	w := csv.NewWriter(out)
	if err := w.Write(f.Columns); err != nil {
		return err
	}
	for _, row := range f.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = formatValue(v, precision)
		}
		if err := w.Write(cells); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeCSVFile(path string, f happiness.Frame, precision int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return writeCSVFrame(file, f, precision)
}
