// internal/models/metric.go
package models

import "time"

// BusinessMetric is a single measurable quantity reported by a connector.
type BusinessMetric struct {
	Name       string    `json:"name"`
	Value      float64   `json:"value"`
	Target     float64   `json:"target"`
	Unit       string    `json:"unit,omitempty"`
	Category   Category  `json:"category"`
	Source     string    `json:"source,omitempty"`
	ObservedAt time.Time `json:"observedAt,omitempty"`
}

// HealthScoreResult is the composite score and its per-category breakdown.
type HealthScoreResult struct {
	OverallScore int              `json:"overallScore"`
	Breakdown    map[Category]int `json:"-"`
	Status       string           `json:"status"`
	MetricsUsed  int              `json:"metricsUsed"`
}

// BreakdownByName returns the breakdown keyed by category name, which is the
// shape stored in job variables and history documents.
func (r HealthScoreResult) BreakdownByName() map[string]int {
	out := make(map[string]int, len(r.Breakdown))
	for c, v := range r.Breakdown {
		out[c.String()] = v
	}
	return out
}
