// internal/workers/connectors/fetch-business-metrics/handler_test.go
package fetchbusinessmetrics

import (
	"context"
	"encoding/json"
	"testing"

	"bizcoach-workers/internal/common/errors"
	"bizcoach-workers/internal/common/logger"
	"bizcoach-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type stubSource struct {
	metrics []models.BusinessMetric
	err     error
	scope   models.TenantScope
}

func (s *stubSource) CurrentMetrics(_ context.Context, scope models.TenantScope) ([]models.BusinessMetric, error) {
	s.scope = scope
	return s.metrics, s.err
}

func createMockJob(key int64, variables map[string]interface{}) entities.Job {
	variablesJSON, _ := json.Marshal(variables)
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:                key,
		Type:               TaskType,
		ProcessInstanceKey: key * 10,
		Retries:            3,
		Variables:          string(variablesJSON),
	}}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name           string
		source         *stubSource
		input          *Input
		expectError    bool
		validateOutput func(t *testing.T, out *Output, src *stubSource)
	}{
		{
			name: "metrics returned",
			source: &stubSource{metrics: []models.BusinessMetric{
				{Name: "monthly_revenue", Value: 8500, Target: 10000, Category: models.CategoryRevenue},
				{Name: "nps", Value: 42, Target: 50, Category: models.CategoryCustomer},
			}},
			input: &Input{TenantID: "tenant-1", APIToken: "secret"},
			validateOutput: func(t *testing.T, out *Output, src *stubSource) {
				assert.True(t, out.MetricsAvailable)
				assert.Equal(t, 2, out.MetricCount)
				assert.Equal(t, "secret", src.scope.APIToken)
			},
		},
		{
			name:   "connector failure degrades to empty list",
			source: &stubSource{err: errors.NewMetricsFetchFailedError("tenant-1", assert.AnError)},
			input:  &Input{TenantID: "tenant-1"},
			validateOutput: func(t *testing.T, out *Output, _ *stubSource) {
				assert.False(t, out.MetricsAvailable)
				assert.NotNil(t, out.Metrics)
				assert.Empty(t, out.Metrics)
			},
		},
		{
			name:        "missing tenant",
			source:      &stubSource{},
			input:       &Input{},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(LoadConfig(), tt.source, logger.NewTestLogger(t))

			out, err := h.Execute(context.Background(), tt.input)
			if tt.expectError {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))
				return
			}
			require.NoError(t, err)
			tt.validateOutput(t, out, tt.source)
		})
	}
}

func TestInputSchema(t *testing.T) {
	assert.NoError(t, schema.Validate(createMockJob(1, map[string]interface{}{"tenantId": "t"}).Variables))
	assert.Error(t, schema.Validate(createMockJob(2, map[string]interface{}{"tenantId": ""}).Variables))
	assert.Error(t, schema.Validate(createMockJob(3, map[string]interface{}{}).Variables))
}

func TestOutputVariables(t *testing.T) {
	out := &Output{Metrics: []models.BusinessMetric{{Name: "nps", Category: models.CategoryCustomer}}, MetricsAvailable: true, MetricCount: 1}
	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"category":"customer"`)
	assert.Contains(t, string(raw), `"metricsAvailable":true`)
}
