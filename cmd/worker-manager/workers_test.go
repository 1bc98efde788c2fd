package main

import (
	"testing"
	"time"

	"bizcoach-workers/internal/common/config"
	"bizcoach-workers/internal/common/database"
	"bizcoach-workers/internal/common/logger"
	"bizcoach-workers/internal/services/connectors"
	"bizcoach-workers/internal/services/history"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Workers: map[string]config.WorkerConfig{
			"compute-health-score": {Enabled: true, Timeout: 2500},
			"send-plan-digest":     {Enabled: false},
		},
		Scoring:  config.ScoringConfig{Weights: map[string]float64{"revenue": 2}, NeutralScore: 50},
		Planning: config.PlanningConfig{PreviewSize: 5, MaxGoals: 10},
		History:  config.HistoryConfig{Index: "health-scores", DefaultDays: 30, MaxResults: 100},
	}
}

func TestEnabledTaskTypes(t *testing.T) {
	got := enabledTaskTypes(testConfig())

	assert.Len(t, got, len(allTaskTypes)-1)
	assert.NotContains(t, got, "send-plan-digest")
	assert.Contains(t, got, "compute-health-score")
}

func TestHandlerTimeout(t *testing.T) {
	cfg := testConfig()

	assert.Equal(t, 2500*time.Millisecond, handlerTimeout(cfg, "compute-health-score", time.Second))
	assert.Equal(t, time.Second, handlerTimeout(cfg, "generate-goal-tasks", time.Second))
}

func TestBuildHandlers_SkipsDisabled(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	log := logger.NewTestLogger(t)
	deps := &dependencies{
		metrics: connectors.NewMetricStore(db, nil, time.Minute, log),
		history: history.NewStore(nil, "health-scores"),
		pg:      &database.PostgresClient{DB: db},
	}

	handlers := buildHandlers(testConfig(), deps, log)

	assert.Len(t, handlers, len(allTaskTypes)-1)
	assert.NotContains(t, handlers, "send-plan-digest")
	for _, taskType := range enabledTaskTypes(testConfig()) {
		assert.Contains(t, handlers, taskType)
	}
}
