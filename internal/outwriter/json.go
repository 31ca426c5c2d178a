package outwriter

import (
	"encoding/json"
	"io"

	"happydash/domain/happiness"
	"happydash/internal/analysis"
)

// jsonExport is the document written by the JSON format
type jsonExport struct {
	CycleID  string              `json:"cycle_id"`
	Params   analysis.Params     `json:"params"`
	Summary  analysis.Summary    `json:"summary"`
	Warnings []string            `json:"warnings,omitempty"`
	Frames   []happiness.Frame   `json:"analyses"`
	Scale    analysis.ColorScale `json:"color_scale"`
}

func writeJSON(w io.Writer, d *analysis.Dashboard, frames []happiness.Frame) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonExport{
		CycleID:  d.CycleID.String(),
		Params:   d.Params,
		Summary:  d.Summary,
		Warnings: d.Warnings,
		Frames:   frames,
		Scale:    d.MapScale,
	})
}
