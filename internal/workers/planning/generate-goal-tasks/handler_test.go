// internal/workers/planning/generate-goal-tasks/handler_test.go
package generategoaltasks

import (
	"context"
	"encoding/json"
	"testing"

	"bizcoach-workers/internal/common/logger"
	"bizcoach-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name           string
		goal           models.Goal
		validateOutput func(t *testing.T, out *Output)
	}{
		{
			name: "revenue goal",
			goal: models.Goal{ID: "g-1", Title: "Grow revenue", Category: "revenue", Current: 78500, Target: 100000},
			validateOutput: func(t *testing.T, out *Output) {
				assert.Equal(t, "revenue", out.Category)
				assert.Equal(t, 78, out.Progress)
				assert.Equal(t, 6, out.TaskCount)
				for i, task := range out.Tasks {
					assert.Equal(t, i+1, task.Priority)
					assert.Equal(t, "g-1", task.GoalID)
					assert.False(t, task.Completed)
				}
			},
		},
		{
			name: "unknown category falls back to general",
			goal: models.Goal{ID: "g-2", Title: "Hire a bookkeeper", Category: "people"},
			validateOutput: func(t *testing.T, out *Output) {
				assert.Equal(t, "general", out.Category)
				assert.Equal(t, 5, out.TaskCount)
				assert.Equal(t, 0, out.Progress)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(LoadConfig(), logger.NewTestLogger(t))
			out, err := h.Execute(context.Background(), &Input{Goal: tt.goal})
			require.NoError(t, err)
			assert.Len(t, out.Tasks, out.TaskCount)
			tt.validateOutput(t, out)
		})
	}
}

func TestHandler_Execute_Deterministic(t *testing.T) {
	h := NewHandler(LoadConfig(), logger.NewNoOpLogger())
	in := &Input{Goal: models.Goal{ID: "g-1", Title: "Cut fulfilment time", Category: "operations"}}

	first, err := h.Execute(context.Background(), in)
	require.NoError(t, err)
	second, err := h.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestInputSchema(t *testing.T) {
	valid, _ := json.Marshal(map[string]interface{}{
		"goal": map[string]interface{}{"id": "g", "title": "Grow", "category": "revenue", "current": 1, "target": 2},
	})
	assert.NoError(t, schema.Validate(string(valid)))
	assert.Error(t, schema.Validate(`{"goal":{"title":""}}`))
	assert.Error(t, schema.Validate(`{}`))
}

func TestHandler_DateOnlyDeadline(t *testing.T) {
	variables := `{"goal":{"id":"g-1","title":"Grow revenue","category":"revenue","current":78500,"target":100000,"deadline":"2025-12-31"}}`
	require.NoError(t, schema.Validate(variables))

	var input Input
	require.NoError(t, json.Unmarshal([]byte(variables), &input))
	assert.Equal(t, "2025-12-31", input.Goal.Deadline.String())

	h := NewHandler(LoadConfig(), logger.NewTestLogger(t))
	out, err := h.Execute(context.Background(), &input)
	require.NoError(t, err)
	assert.Equal(t, "revenue", out.Category)
	assert.Equal(t, 6, out.TaskCount)
}
