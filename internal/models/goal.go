// internal/models/goal.go
package models

// Goal is a user-defined target with current/target progress.
type Goal struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Current     float64 `json:"current"`
	Target      float64 `json:"target"`
	Unit        string  `json:"unit,omitempty"`
	Category    string  `json:"category"`
	Deadline    Date    `json:"deadline"`
}

// Progress returns current/target as a percentage in [0, 100]. Goals without
// a positive target report 0.
func (g Goal) Progress() int {
	if g.Target <= 0 {
		return 0
	}
	p := int(g.Current / g.Target * 100)
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// PlanTask is one recommended unit of work derived from a goal.
type PlanTask struct {
	ID        string `json:"id"`
	GoalID    string `json:"goalId"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	Priority  int    `json:"priority"`
	Completed bool   `json:"completed"`
}
