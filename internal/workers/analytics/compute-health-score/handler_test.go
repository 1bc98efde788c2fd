// internal/workers/analytics/compute-health-score/handler_test.go
package computehealthscore

import (
	"context"
	"encoding/json"
	"testing"

	"bizcoach-workers/internal/common/errors"
	"bizcoach-workers/internal/common/logger"
	"bizcoach-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// ==========================
// Test Helper Functions
// ==========================

type stubSource struct {
	metrics []models.BusinessMetric
	err     error
	calls   int
}

func (s *stubSource) CurrentMetrics(context.Context, models.TenantScope) ([]models.BusinessMetric, error) {
	s.calls++
	return s.metrics, s.err
}

func sampleMetrics() []models.BusinessMetric {
	return []models.BusinessMetric{
		{Name: "monthly_revenue", Value: 8500, Target: 10000, Category: models.CategoryRevenue},
		{Name: "fulfilment_rate", Value: 0.72, Target: 1, Category: models.CategoryOperations},
		{Name: "nps", Value: 40.5, Target: 50, Category: models.CategoryCustomer},
	}
}

func newHandler(t *testing.T, cfg *Config, src *stubSource) *Handler {
	log := logger.NewZapAdapter(zaptest.NewLogger(t))
	if src == nil {
		return NewHandler(cfg, nil, log)
	}
	return NewHandler(cfg, src, log)
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name           string
		config         func() *Config
		source         *stubSource
		input          *Input
		validateOutput func(t *testing.T, out *Output, src *stubSource)
	}{
		{
			name:   "inline metrics equal weights",
			config: LoadConfig,
			source: &stubSource{},
			input:  &Input{TenantID: "t", Metrics: sampleMetrics()},
			validateOutput: func(t *testing.T, out *Output, src *stubSource) {
				assert.Equal(t, 79, out.OverallScore)
				assert.Equal(t, map[string]int{"revenue": 85, "operations": 72, "customer": 81}, out.Breakdown)
				assert.Equal(t, "good", out.Status)
				assert.Equal(t, SourceInput, out.MetricsSource)
				assert.Zero(t, src.calls)
			},
		},
		{
			name: "configured weights",
			config: func() *Config {
				cfg := LoadConfig()
				cfg.Weights = map[string]float64{"revenue": 0.4, "operations": 0.3, "customer": 0.3}
				return cfg
			},
			input: &Input{Metrics: sampleMetrics()},
			validateOutput: func(t *testing.T, out *Output, _ *stubSource) {
				assert.Equal(t, 80, out.OverallScore)
				assert.Equal(t, "excellent", out.Status)
			},
		},
		{
			name:   "metrics fetched by tenant",
			config: LoadConfig,
			source: &stubSource{metrics: sampleMetrics()},
			input:  &Input{TenantID: "tenant-1"},
			validateOutput: func(t *testing.T, out *Output, src *stubSource) {
				assert.Equal(t, 1, src.calls)
				assert.Equal(t, SourceConnector, out.MetricsSource)
				assert.Equal(t, 3, out.MetricsUsed)
			},
		},
		{
			name:   "fetch failure scores neutral",
			config: LoadConfig,
			source: &stubSource{err: errors.NewMetricsFetchFailedError("tenant-1", assert.AnError)},
			input:  &Input{TenantID: "tenant-1"},
			validateOutput: func(t *testing.T, out *Output, _ *stubSource) {
				assert.Equal(t, 50, out.OverallScore)
				assert.Equal(t, SourceNone, out.MetricsSource)
				assert.Equal(t, map[string]int{"revenue": 50, "operations": 50, "customer": 50}, out.Breakdown)
			},
		},
		{
			name:   "explicit empty list does not fetch",
			config: LoadConfig,
			source: &stubSource{metrics: sampleMetrics()},
			input:  &Input{TenantID: "tenant-1", Metrics: []models.BusinessMetric{}},
			validateOutput: func(t *testing.T, out *Output, src *stubSource) {
				assert.Zero(t, src.calls)
				assert.Equal(t, 50, out.OverallScore)
				assert.Equal(t, SourceInput, out.MetricsSource)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandler(t, tt.config(), tt.source)
			out, err := h.Execute(context.Background(), tt.input)
			require.NoError(t, err)
			tt.validateOutput(t, out, tt.source)
		})
	}
}

func TestInputDecoding_AbsentVersusEmptyMetrics(t *testing.T) {
	var absent, empty Input
	require.NoError(t, json.Unmarshal([]byte(`{"tenantId":"t"}`), &absent))
	require.NoError(t, json.Unmarshal([]byte(`{"tenantId":"t","metrics":[]}`), &empty))
	assert.Nil(t, absent.Metrics)
	assert.NotNil(t, empty.Metrics)
}

func TestInputSchema(t *testing.T) {
	assert.NoError(t, schema.Validate(`{"tenantId":"t"}`))
	assert.NoError(t, schema.Validate(`{"metrics":[{"name":"x","value":1,"target":2,"category":"ops"}]}`))
	assert.Error(t, schema.Validate(`{}`))
	assert.Error(t, schema.Validate(`{"metrics":[{"name":"x","value":"high","target":2}]}`))
}

// ==========================
// Benchmark Tests
// ==========================

func BenchmarkHandler_Execute(b *testing.B) {
	h := NewHandler(LoadConfig(), nil, logger.NewNoOpLogger())
	input := &Input{Metrics: sampleMetrics()}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = h.Execute(ctx, input)
	}
}
