// internal/workers/notifications/send-plan-digest/models.go
package sendplandigest

import "bizcoach-workers/internal/models"

type Recipient struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type Input struct {
	TenantID     string            `json:"tenantId"`
	Recipient    Recipient         `json:"recipient"`
	WeekStart    string            `json:"weekStart"`
	Tasks        []models.PlanTask `json:"tasks"`
	OverallScore *int              `json:"overallScore,omitempty"`
}

type Output struct {
	NotificationID string   `json:"notificationId"`
	Status         string   `json:"digestStatus"`
	Channels       []string `json:"channels"`
	SentAt         string   `json:"sentAt"`
}

const (
	StatusSent     = "sent"
	StatusDisabled = "disabled"
)

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

const inputSchema = `{
	"type": "object",
	"required": ["tenantId", "recipient", "weekStart", "tasks"],
	"properties": {
		"tenantId": {"type": "string", "minLength": 1},
		"recipient": {
			"type": "object",
			"properties": {
				"name": {"type": "string"},
				"email": {"type": "string"},
				"phone": {"type": "string", "pattern": "^\\+[1-9][0-9]{6,14}$"}
			}
		},
		"weekStart": {"type": "string", "minLength": 1},
		"tasks": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["title"],
				"properties": {
					"title": {"type": "string"},
					"category": {"type": "string"},
					"priority": {"type": "integer"}
				}
			}
		},
		"overallScore": {"type": "integer", "minimum": 0, "maximum": 100}
	}
}`
