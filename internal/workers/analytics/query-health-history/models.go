// internal/workers/analytics/query-health-history/models.go
package queryhealthhistory

import "bizcoach-workers/internal/models"

type Input struct {
	TenantID string `json:"tenantId"`
	Days     int    `json:"days,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

type Output struct {
	Snapshots    []models.HealthSnapshot `json:"snapshots"`
	TotalHits    int64                   `json:"totalHits"`
	LatestScore  *int                    `json:"latestScore"`
	Trend        string                  `json:"trend"`
	WindowDays   int                     `json:"windowDays"`
	IndexMissing bool                    `json:"indexMissing"`
}

const (
	TrendImproving    = "improving"
	TrendDeclining    = "declining"
	TrendStable       = "stable"
	TrendInsufficient = "insufficient_data"
)

const inputSchema = `{
	"type": "object",
	"required": ["tenantId"],
	"properties": {
		"tenantId": {"type": "string", "minLength": 1},
		"days": {"type": "integer", "minimum": 0, "maximum": 366},
		"limit": {"type": "integer", "minimum": 0}
	}
}`
