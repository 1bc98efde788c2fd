// internal/workers/planning/generate-goal-tasks/models.go
package generategoaltasks

import "bizcoach-workers/internal/models"

type Input struct {
	Goal models.Goal `json:"goal"`
}

type Output struct {
	Tasks     []models.PlanTask `json:"tasks"`
	TaskCount int               `json:"taskCount"`
	Category  string            `json:"category"`
	Progress  int               `json:"progress"`
}

const inputSchema = `{
	"type": "object",
	"required": ["goal"],
	"properties": {
		"goal": {
			"type": "object",
			"required": ["title"],
			"properties": {
				"id": {"type": "string"},
				"title": {"type": "string", "minLength": 1},
				"current": {"type": "number"},
				"target": {"type": "number"},
				"category": {"type": "string"},
				"deadline": {"type": ["string", "null"]}
			}
		}
	}
}`
