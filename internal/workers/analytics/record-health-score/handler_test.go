// internal/workers/analytics/record-health-score/handler_test.go
package recordhealthscore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bizcoach-workers/internal/common/errors"
	"bizcoach-workers/internal/common/logger"
	"bizcoach-workers/internal/models"
	"bizcoach-workers/internal/services/history"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type memoryWriter struct {
	saved []models.HealthSnapshot
	err   error
}

func (m *memoryWriter) Save(_ context.Context, snap models.HealthSnapshot) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, snap)
	return nil
}

func fixedClock() time.Time {
	return time.Date(2026, 3, 9, 8, 30, 0, 0, time.UTC)
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name           string
		input          *Input
		validateOutput func(t *testing.T, out *Output, saved models.HealthSnapshot)
	}{
		{
			name: "status carried through",
			input: &Input{
				TenantID:     "tenant-1",
				OverallScore: 79,
				Breakdown:    map[string]int{"revenue": 85, "operations": 72, "customer": 81},
				Status:       "good",
				MetricsUsed:  3,
			},
			validateOutput: func(t *testing.T, out *Output, saved models.HealthSnapshot) {
				assert.Equal(t, "good", saved.Status)
				assert.Equal(t, 3, saved.MetricsUsed)
				assert.Equal(t, "2026-03-09T08:30:00Z", out.RecordedAt)
			},
		},
		{
			name:  "status derived when absent",
			input: &Input{TenantID: "tenant-1", OverallScore: 35, Breakdown: map[string]int{}},
			validateOutput: func(t *testing.T, _ *Output, saved models.HealthSnapshot) {
				assert.Equal(t, "poor", saved.Status)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &memoryWriter{}
			h := NewHandler(LoadConfig(), w, logger.NewTestLogger(t))
			h.now = fixedClock

			out, err := h.Execute(context.Background(), tt.input)
			require.NoError(t, err)
			require.Len(t, w.saved, 1)

			_, parseErr := uuid.Parse(out.SnapshotID)
			assert.NoError(t, parseErr)
			assert.Equal(t, out.SnapshotID, w.saved[0].ID)
			tt.validateOutput(t, out, w.saved[0])
		})
	}
}

func TestHandler_Execute_StoreError(t *testing.T) {
	w := &memoryWriter{err: errors.NewElasticsearchConnectionFailedError(assert.AnError)}
	h := NewHandler(LoadConfig(), w, logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), &Input{TenantID: "t", OverallScore: 50})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeElasticsearchConnectionFailed))
}

func TestHandler_Execute_AgainstElasticsearchAPI(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	}))
	defer srv.Close()

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)

	h := NewHandler(LoadConfig(), history.NewStore(client, "health-scores"), logger.NewTestLogger(t))
	out, err := h.Execute(context.Background(), &Input{TenantID: "t", OverallScore: 64, Breakdown: map[string]int{"revenue": 64}})
	require.NoError(t, err)
	assert.Equal(t, "/health-scores/_doc/"+out.SnapshotID, gotPath)
}

func TestInputSchema(t *testing.T) {
	assert.NoError(t, schema.Validate(`{"tenantId":"t","overallScore":80,"breakdown":{"revenue":80}}`))
	assert.Error(t, schema.Validate(`{"tenantId":"t","overallScore":120,"breakdown":{}}`))
	assert.Error(t, schema.Validate(`{"tenantId":"t","overallScore":80,"breakdown":{"revenue":-1}}`))
	assert.Error(t, schema.Validate(`{"overallScore":80,"breakdown":{}}`))
}
