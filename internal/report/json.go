package report

import (
	"encoding/json"
	"time"

	"github.com/joshdayorg/vibe-check/internal/finding"
	"github.com/joshdayorg/vibe-check/internal/scan"
)

// jsonReport is the lossless machine-readable dump: no grouping, findings
// in post-processed order.
type jsonReport struct {
	Summary jsonSummary       `json:"summary"`
	Results []finding.Finding `json:"results"`
}

type jsonSummary struct {
	Total     int       `json:"total"`
	Passed    int       `json:"passed"`
	Failed    int       `json:"failed"`
	Timestamp time.Time `json:"timestamp"`
}

func renderJSON(result *scan.Result) ([]byte, error) {
	payload := jsonReport{
		Summary: jsonSummary{
			Total:     result.Summary.Total,
			Passed:    result.Summary.Passed,
			Failed:    result.Summary.Failed,
			Timestamp: time.Now().UTC(),
		},
		Results: result.Findings,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// ParseJSON reads a json report back into findings, used by tooling that
// consumes persisted reports.
func ParseJSON(data []byte) ([]finding.Finding, error) {
	var payload jsonReport
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}
