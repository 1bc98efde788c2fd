package planner

import (
	"fmt"
	"strings"
	"testing"

	"bizcoach-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestGoal(id, category string) models.Goal {
	return models.Goal{
		ID:       id,
		Title:    "Goal " + id,
		Current:  78500,
		Target:   100000,
		Unit:     "USD",
		Category: category,
		Deadline: models.NewDate(2026, 12, 31),
	}
}

// ==========================
// GenerateTasksForGoal Tests
// ==========================

func TestGenerateTasksForGoal_Revenue(t *testing.T) {
	tasks := GenerateTasksForGoal(createTestGoal("goal-1", "revenue"))

	expected := []string{
		"Review last month's revenue by product line",
		"Identify the top three customers by lifetime value",
		"Launch a limited-time promotion for best-selling products",
		"Review pricing against two direct competitors",
		"Follow up on all open quotes older than 7 days",
		"Set up an upsell offer at checkout",
	}

	require.Len(t, tasks, len(expected))
	var sawPromotion, sawPricing bool
	for i, task := range tasks {
		assert.Equal(t, expected[i], task.Title)
		assert.Equal(t, "revenue", task.Category)
		assert.Equal(t, "goal-1", task.GoalID)
		assert.Equal(t, i+1, task.Priority)
		assert.False(t, task.Completed)
		sawPromotion = sawPromotion || strings.Contains(task.Title, "promotion")
		sawPricing = sawPricing || strings.Contains(task.Title, "pricing")
	}
	assert.True(t, sawPromotion)
	assert.True(t, sawPricing)
}

func TestGenerateTasksForGoal_TaskCount(t *testing.T) {
	tests := []struct {
		category         string
		expectedCategory string
		min, max         int
	}{
		{"revenue", "revenue", 5, 7},
		{"operations", "operations", 5, 7},
		{"customer", "customer", 5, 7},
		{"Customer ", "customer", 5, 7},
		{"marketing", "general", 1, 7},
		{"", "general", 1, 7},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("category %q", tt.category), func(t *testing.T) {
			tasks := GenerateTasksForGoal(createTestGoal("g", tt.category))

			assert.GreaterOrEqual(t, len(tasks), tt.min)
			assert.LessOrEqual(t, len(tasks), tt.max)
			for _, task := range tasks {
				assert.Equal(t, tt.expectedCategory, task.Category)
				assert.NotEmpty(t, task.Title)
			}
		})
	}
}

func TestGenerateTasksForGoal_Deterministic(t *testing.T) {
	goal := createTestGoal("goal-42", "operations")

	first := GenerateTasksForGoal(goal)
	second := GenerateTasksForGoal(goal)

	assert.Equal(t, first, second)
}

func TestGenerateTasksForGoal_IDs(t *testing.T) {
	a := GenerateTasksForGoal(createTestGoal("goal-a", "customer"))
	b := GenerateTasksForGoal(createTestGoal("goal-b", "customer"))

	seen := make(map[string]struct{})
	for _, task := range append(a, b...) {
		_, dup := seen[task.ID]
		assert.False(t, dup, "duplicate id %s", task.ID)
		seen[task.ID] = struct{}{}
	}

	anonymous := createTestGoal("", "customer")
	assert.Equal(t, GenerateTasksForGoal(anonymous)[0].ID, GenerateTasksForGoal(anonymous)[0].ID)
}

func TestGenerateTasksForGoal_IgnoresProgress(t *testing.T) {
	g1 := createTestGoal("goal-1", "revenue")
	g2 := g1
	g2.Current = 0
	g2.Target = 1

	assert.Equal(t, GenerateTasksForGoal(g1), GenerateTasksForGoal(g2))
}

// ==========================
// GenerateWeeklyPlanForGoals Tests
// ==========================

func TestGenerateWeeklyPlanForGoals(t *testing.T) {
	tests := []struct {
		name           string
		goals          []models.Goal
		limit          int
		expectedLen    int
		validateOutput func(t *testing.T, plan []models.PlanTask)
	}{
		{
			name:        "no goals",
			goals:       nil,
			limit:       5,
			expectedLen: 0,
		},
		{
			name:        "single goal capped at default preview",
			goals:       []models.Goal{createTestGoal("g1", "revenue")},
			limit:       0,
			expectedLen: DefaultPreviewSize,
			validateOutput: func(t *testing.T, plan []models.PlanTask) {
				for i, task := range plan {
					assert.Equal(t, i+1, task.Priority)
				}
			},
		},
		{
			name: "interleaves by priority",
			goals: []models.Goal{
				createTestGoal("g1", "revenue"),
				createTestGoal("g2", "operations"),
				createTestGoal("g3", "customer"),
			},
			limit:       5,
			expectedLen: 5,
			validateOutput: func(t *testing.T, plan []models.PlanTask) {
				assert.Equal(t, []string{"g1", "g2", "g3", "g1", "g2"}, goalIDs(plan))
				assert.Equal(t, []int{1, 1, 1, 2, 2}, priorities(plan))
			},
		},
		{
			name: "limit larger than available",
			goals: []models.Goal{
				createTestGoal("g1", "customer"),
				createTestGoal("g2", "unknown"),
			},
			limit:       50,
			expectedLen: 10,
			validateOutput: func(t *testing.T, plan []models.PlanTask) {
				assert.Equal(t, "g1", plan[0].GoalID)
				assert.Equal(t, "g2", plan[1].GoalID)
			},
		},
		{
			name: "uneven template sizes",
			goals: []models.Goal{
				createTestGoal("g1", "customer"),
				createTestGoal("g2", "operations"),
			},
			limit:       100,
			expectedLen: 12,
			validateOutput: func(t *testing.T, plan []models.PlanTask) {
				tail := plan[len(plan)-2:]
				assert.Equal(t, []string{"g2", "g2"}, goalIDs(tail))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := GenerateWeeklyPlanForGoals(tt.goals, tt.limit)

			assert.Len(t, plan, tt.expectedLen)
			if tt.validateOutput != nil {
				tt.validateOutput(t, plan)
			}
		})
	}
}

func TestGenerateWeeklyPlanForGoals_Deterministic(t *testing.T) {
	goals := []models.Goal{createTestGoal("g1", "revenue"), createTestGoal("g2", "customer")}

	assert.Equal(t, GenerateWeeklyPlanForGoals(goals, 7), GenerateWeeklyPlanForGoals(goals, 7))
}

func goalIDs(tasks []models.PlanTask) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.GoalID
	}
	return out
}

func priorities(tasks []models.PlanTask) []int {
	out := make([]int, len(tasks))
	for i, task := range tasks {
		out[i] = task.Priority
	}
	return out
}

// ==========================
// Benchmark Tests
// ==========================

func BenchmarkGenerateWeeklyPlanForGoals(b *testing.B) {
	goals := []models.Goal{
		createTestGoal("g1", "revenue"),
		createTestGoal("g2", "operations"),
		createTestGoal("g3", "customer"),
	}
	for i := 0; i < b.N; i++ {
		_ = GenerateWeeklyPlanForGoals(goals, 5)
	}
}
