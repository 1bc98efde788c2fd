// internal/workers/connectors/ingest-business-metrics/models.go
package ingestbusinessmetrics

import "bizcoach-workers/internal/models"

type Input struct {
	TenantID  string                  `json:"tenantId"`
	Connector string                  `json:"connector"`
	Metrics   []models.BusinessMetric `json:"metrics"`
}

type Output struct {
	Ingested int      `json:"ingested"`
	Skipped  []string `json:"skipped"`
}

const inputSchema = `{
	"type": "object",
	"required": ["tenantId", "connector", "metrics"],
	"properties": {
		"tenantId": {"type": "string", "minLength": 1},
		"connector": {"type": "string", "minLength": 1},
		"metrics": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["name", "value", "target", "category"],
				"properties": {
					"name": {"type": "string", "minLength": 1},
					"value": {"type": "number"},
					"target": {"type": "number"},
					"unit": {"type": "string"},
					"category": {"type": "string"}
				}
			}
		}
	}
}`
