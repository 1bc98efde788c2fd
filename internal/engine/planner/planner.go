// Package planner turns goals into weekly action-plan task previews. Output
// depends only on the goals passed in.
package planner

import (
	"fmt"

	"bizcoach-workers/internal/models"

	"github.com/google/uuid"
)

// DefaultPreviewSize is how many tasks a weekly preview surfaces.
const DefaultPreviewSize = 5

// taskNamespace scopes the name-based task ids.
var taskNamespace = uuid.MustParse("6f1c2a52-3d0e-4b8e-9a57-0c1f9d0b7e21")

// GenerateTasksForGoal returns the goal's category template tasks in priority
// order. An unrecognized category yields the generic template set.
func GenerateTasksForGoal(goal models.Goal) []models.PlanTask {
	category, _ := models.ParseCategory(goal.Category)
	set := templatesFor(category)

	tasks := make([]models.PlanTask, 0, len(set.titles))
	for i, title := range set.titles {
		priority := i + 1
		tasks = append(tasks, models.PlanTask{
			ID:        taskID(goal, priority),
			GoalID:    goal.ID,
			Title:     title,
			Category:  set.category,
			Priority:  priority,
			Completed: false,
		})
	}
	return tasks
}

// GenerateWeeklyPlanForGoals interleaves every goal's tasks by priority (all
// priority-1 tasks in goal order, then priority-2, ...) and returns at most
// limit of them. limit <= 0 means DefaultPreviewSize.
func GenerateWeeklyPlanForGoals(goals []models.Goal, limit int) []models.PlanTask {
	if limit <= 0 {
		limit = DefaultPreviewSize
	}

	perGoal := make([][]models.PlanTask, 0, len(goals))
	longest := 0
	for _, g := range goals {
		tasks := GenerateTasksForGoal(g)
		perGoal = append(perGoal, tasks)
		if len(tasks) > longest {
			longest = len(tasks)
		}
	}

	plan := make([]models.PlanTask, 0, limit)
	for round := 0; round < longest; round++ {
		for _, tasks := range perGoal {
			if round >= len(tasks) {
				continue
			}
			plan = append(plan, tasks[round])
			if len(plan) == limit {
				return plan
			}
		}
	}
	return plan
}

// taskID derives a stable id from the goal and priority. Goals without an id
// fall back to title and category.
func taskID(goal models.Goal, priority int) string {
	key := goal.ID
	if key == "" {
		key = goal.Title + "|" + goal.Category
	}
	return uuid.NewSHA1(taskNamespace, []byte(fmt.Sprintf("%s#%d", key, priority))).String()
}
