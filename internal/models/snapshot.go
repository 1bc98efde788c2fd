// internal/models/snapshot.go
package models

import "time"

// HealthSnapshot is one recorded health score for a tenant.
type HealthSnapshot struct {
	ID           string         `json:"id"`
	TenantID     string         `json:"tenantId"`
	OverallScore int            `json:"overallScore"`
	Breakdown    map[string]int `json:"breakdown"`
	Status       string         `json:"status"`
	MetricsUsed  int            `json:"metricsUsed"`
	RecordedAt   time.Time      `json:"recordedAt"`
}
