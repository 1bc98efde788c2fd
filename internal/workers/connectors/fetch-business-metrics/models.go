// internal/workers/connectors/fetch-business-metrics/models.go
package fetchbusinessmetrics

import "bizcoach-workers/internal/models"

type Input struct {
	TenantID string `json:"tenantId"`
	APIToken string `json:"apiToken,omitempty"`
}

type Output struct {
	Metrics          []models.BusinessMetric `json:"metrics"`
	MetricsAvailable bool                    `json:"metricsAvailable"`
	MetricCount      int                     `json:"metricCount"`
}

const inputSchema = `{
	"type": "object",
	"required": ["tenantId"],
	"properties": {
		"tenantId": {"type": "string", "minLength": 1},
		"apiToken": {"type": "string"}
	}
}`
