// internal/workers/planning/create-action-plan/models.go
package createactionplan

import "bizcoach-workers/internal/models"

type Input struct {
	TenantID string `json:"tenantId"`
	// WeekStart is a YYYY-MM-DD date; any day is normalised to its Monday.
	// Empty means the current week.
	WeekStart string        `json:"weekStart,omitempty"`
	Goals     []models.Goal `json:"goals"`
}

type Output struct {
	PlanID    string            `json:"planId"`
	WeekStart string            `json:"weekStart"`
	Tasks     []models.PlanTask `json:"tasks"`
	TaskCount int               `json:"taskCount"`
	Status    string            `json:"planStatus"`
	CreatedAt string            `json:"createdAt"`
}

const PlanStatusActive = "active"

const inputSchema = `{
	"type": "object",
	"required": ["tenantId", "goals"],
	"properties": {
		"tenantId": {"type": "string", "minLength": 1},
		"weekStart": {"type": "string", "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"},
		"goals": {
			"type": "array",
			"minItems": 1,
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
		}
	}
}`
