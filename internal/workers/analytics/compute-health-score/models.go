// internal/workers/analytics/compute-health-score/models.go
package computehealthscore

import "bizcoach-workers/internal/models"

// Input carries either the metrics to score or a tenant to fetch them for.
// An absent metrics field triggers a fetch; an empty list does not.
type Input struct {
	TenantID string                  `json:"tenantId"`
	APIToken string                  `json:"apiToken,omitempty"`
	Metrics  []models.BusinessMetric `json:"metrics"`
}

const (
	SourceInput     = "input"
	SourceConnector = "connector"
	SourceNone      = "none"
)

type Output struct {
	OverallScore  int            `json:"overallScore"`
	Breakdown     map[string]int `json:"breakdown"`
	Status        string         `json:"status"`
	MetricsUsed   int            `json:"metricsUsed"`
	MetricsSource string         `json:"metricsSource"`
}

const inputSchema = `{
	"type": "object",
	"anyOf": [
		{"required": ["tenantId"]},
		{"required": ["metrics"]}
	],
	"properties": {
		"tenantId": {"type": "string"},
		"apiToken": {"type": "string"},
		"metrics": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["name", "value", "target"],
				"properties": {
					"name": {"type": "string"},
					"value": {"type": "number"},
					"target": {"type": "number"},
					"category": {"type": "string"}
				}
			}
		}
	}
}`
