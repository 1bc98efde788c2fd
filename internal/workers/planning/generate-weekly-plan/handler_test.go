// internal/workers/planning/generate-weekly-plan/handler_test.go
package generateweeklyplan

import (
	"context"
	"encoding/json"
	"testing"

	"bizcoach-workers/internal/common/errors"
	"bizcoach-workers/internal/common/logger"
	"bizcoach-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeGoals() []models.Goal {
	return []models.Goal{
		{ID: "g-rev", Title: "Grow revenue", Category: "revenue"},
		{ID: "g-ops", Title: "Ship faster", Category: "operations"},
		{ID: "g-cus", Title: "Delight customers", Category: "customer"},
	}
}

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name           string
		config         func() *Config
		input          *Input
		expectError    bool
		validateOutput func(t *testing.T, out *Output)
	}{
		{
			name:   "default preview size",
			config: LoadConfig,
			input:  &Input{Goals: threeGoals()},
			validateOutput: func(t *testing.T, out *Output) {
				require.Equal(t, 5, out.TaskCount)
				assert.Equal(t, 3, out.GoalCount)
				// priority-1 of each goal first, then priority-2
				assert.Equal(t, "g-rev", out.Tasks[0].GoalID)
				assert.Equal(t, "g-ops", out.Tasks[1].GoalID)
				assert.Equal(t, "g-cus", out.Tasks[2].GoalID)
				assert.Equal(t, 2, out.Tasks[3].Priority)
				assert.Equal(t, map[string]int{"revenue": 2, "operations": 2, "customer": 1}, out.ByCategory)
			},
		},
		{
			name:   "explicit limit",
			config: LoadConfig,
			input:  &Input{Goals: threeGoals(), Limit: 9},
			validateOutput: func(t *testing.T, out *Output) {
				assert.Equal(t, 9, out.TaskCount)
			},
		},
		{
			name: "configured preview size",
			config: func() *Config {
				cfg := LoadConfig()
				cfg.PreviewSize = 2
				return cfg
			},
			input: &Input{Goals: threeGoals()},
			validateOutput: func(t *testing.T, out *Output) {
				assert.Equal(t, 2, out.TaskCount)
			},
		},
		{
			name:   "no goals",
			config: LoadConfig,
			input:  &Input{Goals: []models.Goal{}},
			validateOutput: func(t *testing.T, out *Output) {
				assert.Zero(t, out.TaskCount)
				assert.NotNil(t, out.Tasks)
			},
		},
		{
			name: "too many goals",
			config: func() *Config {
				cfg := LoadConfig()
				cfg.MaxGoals = 2
				return cfg
			},
			input:       &Input{Goals: threeGoals()},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(tt.config(), logger.NewTestLogger(t))
			out, err := h.Execute(context.Background(), tt.input)
			if tt.expectError {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))
				return
			}
			require.NoError(t, err)
			tt.validateOutput(t, out)
		})
	}
}

func TestInputSchema(t *testing.T) {
	assert.NoError(t, schema.Validate(`{"goals":[{"title":"Grow","category":"revenue"}],"limit":3}`))
	assert.Error(t, schema.Validate(`{"goals":"revenue"}`))
	assert.Error(t, schema.Validate(`{"goals":[],"limit":-2}`))
}

func TestHandler_DeadlineForms(t *testing.T) {
	variables := `{"goals":[
		{"id":"g-rev","title":"Grow revenue","category":"revenue","deadline":"2025-12-31"},
		{"id":"g-ops","title":"Ship faster","category":"operations","deadline":"2026-01-15T00:00:00Z"},
		{"id":"g-cus","title":"Delight customers","category":"customer","deadline":null}
	],"limit":3}`
	require.NoError(t, schema.Validate(variables))

	var input Input
	require.NoError(t, json.Unmarshal([]byte(variables), &input))
	assert.Equal(t, "2025-12-31", input.Goals[0].Deadline.String())
	assert.Equal(t, "2026-01-15", input.Goals[1].Deadline.String())
	assert.True(t, input.Goals[2].Deadline.IsZero())

	h := NewHandler(LoadConfig(), logger.NewTestLogger(t))
	out, err := h.Execute(context.Background(), &input)
	require.NoError(t, err)
	assert.Len(t, out.Tasks, 3)
}
