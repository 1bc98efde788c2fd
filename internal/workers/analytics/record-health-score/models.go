// internal/workers/analytics/record-health-score/models.go
package recordhealthscore

type Input struct {
	TenantID     string         `json:"tenantId"`
	OverallScore int            `json:"overallScore"`
	Breakdown    map[string]int `json:"breakdown"`
	Status       string         `json:"status"`
	MetricsUsed  int            `json:"metricsUsed"`
}

type Output struct {
	SnapshotID string `json:"snapshotId"`
	RecordedAt string `json:"recordedAt"`
}

const inputSchema = `{
	"type": "object",
	"required": ["tenantId", "overallScore", "breakdown"],
	"properties": {
		"tenantId": {"type": "string", "minLength": 1},
		"overallScore": {"type": "integer", "minimum": 0, "maximum": 100},
		"breakdown": {
			"type": "object",
			"additionalProperties": {"type": "integer", "minimum": 0, "maximum": 100}
		},
		"status": {"type": "string"},
		"metricsUsed": {"type": "integer", "minimum": 0}
	}
}`
