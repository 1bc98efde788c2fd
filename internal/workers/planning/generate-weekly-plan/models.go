// internal/workers/planning/generate-weekly-plan/models.go
package generateweeklyplan

import "bizcoach-workers/internal/models"

type Input struct {
	Goals []models.Goal `json:"goals"`
	Limit int           `json:"limit,omitempty"`
}

type Output struct {
	Tasks      []models.PlanTask `json:"tasks"`
	TaskCount  int               `json:"taskCount"`
	GoalCount  int               `json:"goalCount"`
	ByCategory map[string]int    `json:"byCategory"`
}

const inputSchema = `{
	"type": "object",
	"required": ["goals"],
	"properties": {
		"goals": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["title"],
				"properties": {
					"id": {"type": "string"},
					"title": {"type": "string", "minLength": 1},
					"category": {"type": "string"},
					"deadline": {"type": ["string", "null"]}
				}
			}
		},
		"limit": {"type": "integer", "minimum": 0}
	}
}`
