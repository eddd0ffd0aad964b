package driver

import (
	"encoding/json"
	"fmt"
	"strings"

	"zigscope/internal/diag"
	"zigscope/internal/observ"
	"zigscope/internal/source"
)

type timingPayload struct {
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// appendTimingDiagnostic attaches the per-file phase report to bag as an
// ObsTimings info diagnostic: a one-line summary plus the JSON report as a
// note. It ignores the bag limit.
func appendTimingDiagnostic(bag *diag.Bag, payload timingPayload) {
	if bag == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	parts := make([]string, 0, len(payload.Phases))
	for _, p := range payload.Phases {
		parts = append(parts, fmt.Sprintf("%s %.2f", p.Name, p.DurationMS))
	}
	msg := fmt.Sprintf("timings: %.2f ms", payload.TotalMS)
	if len(parts) > 0 {
		msg += " (" + strings.Join(parts, ", ") + ")"
	}
	if payload.Path != "" {
		msg += " " + payload.Path
	}

	single := diag.NewBag(1)
	single.Add(diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, msg).
		WithNote(source.Span{}, string(data)))
	bag.Merge(single)
}
