package connectors

import (
	"context"
	"testing"
	"time"

	"bizcoach-workers/internal/common/database"
	"bizcoach-workers/internal/common/errors"
	"bizcoach-workers/internal/common/logger"
	"bizcoach-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

var metricColumns = []string{"name", "value", "target", "unit", "category", "connector", "observed_at"}

func setupStore(t *testing.T) (*MetricStore, sqlmock.Sqlmock, *miniredis.Miniredis) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return NewMetricStore(db, rdb, time.Minute, logger.NewTestLogger(t)), mock, mr
}

func scope() models.TenantScope {
	return models.TenantScope{TenantID: "tenant-1", APIToken: "tok"}
}

// ==========================
// CurrentMetrics Tests
// ==========================

func TestCurrentMetrics_MissQueriesDatabaseAndCaches(t *testing.T) {
	store, mock, mr := setupStore(t)
	observed := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT name, value, target, unit, category, connector, observed_at`).
		WithArgs("tenant-1").
		WillReturnRows(sqlmock.NewRows(metricColumns).
			AddRow("monthly_revenue", 8500.0, 10000.0, "USD", "revenue", "shopify", observed).
			AddRow("fulfilment_rate", 0.9, 1.0, "", "ops", "csv", observed).
			AddRow("mystery", 1.0, 2.0, "", "marketing", "csv", observed))

	got, err := store.CurrentMetrics(context.Background(), scope())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.CategoryRevenue, got[0].Category)
	assert.Equal(t, "shopify", got[0].Source)
	assert.Equal(t, models.CategoryOperations, got[1].Category)
	assert.NoError(t, mock.ExpectationsWereMet())

	assert.True(t, mr.Exists(cacheKey("tenant-1")))
	assert.True(t, mr.TTL(cacheKey("tenant-1")) > 0)
}

func TestCurrentMetrics_HitSkipsDatabase(t *testing.T) {
	store, mock, _ := setupStore(t)

	cached := []models.BusinessMetric{
		{Name: "nps", Value: 40, Target: 50, Category: models.CategoryCustomer},
	}
	require.NoError(t, database.SetJSON(context.Background(), store.cache, cacheKey("tenant-1"), cached, time.Minute))

	got, err := store.CurrentMetrics(context.Background(), scope())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "nps", got[0].Name)
	assert.Equal(t, models.CategoryCustomer, got[0].Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCurrentMetrics_CacheDownFallsBackToDatabase(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// nothing listens on port 1
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer rdb.Close()
	store := NewMetricStore(db, rdb, time.Minute, logger.NewTestLogger(t))

	mock.ExpectQuery(`SELECT name, value, target`).
		WithArgs("tenant-1").
		WillReturnRows(sqlmock.NewRows(metricColumns))

	got, err := store.CurrentMetrics(context.Background(), scope())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestCurrentMetrics_DatabaseError(t *testing.T) {
	store, mock, _ := setupStore(t)

	mock.ExpectQuery(`SELECT name, value, target`).
		WithArgs("tenant-1").
		WillReturnError(assert.AnError)

	_, err := store.CurrentMetrics(context.Background(), scope())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeMetricsFetchFailed))
}

func TestCurrentMetrics_MissingTenant(t *testing.T) {
	store, _, _ := setupStore(t)

	_, err := store.CurrentMetrics(context.Background(), models.TenantScope{})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))
}

func TestCurrentMetrics_WithoutCache(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewMetricStore(db, nil, time.Minute, logger.NewNoOpLogger())
	mock.ExpectQuery(`SELECT name, value, target`).
		WillReturnRows(sqlmock.NewRows(metricColumns).
			AddRow("repeat_rate", 0.3, 0.4, "", "customer", "shopify", time.Now()))

	got, err := store.CurrentMetrics(context.Background(), scope())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

// ==========================
// Record Tests
// ==========================

func TestRecord_UpsertsAndInvalidates(t *testing.T) {
	store, mock, mr := setupStore(t)
	require.NoError(t, mr.Set(cacheKey("tenant-1"), "[]"))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO connector_metrics`).
		WithArgs("tenant-1", "shopify", "monthly_revenue", "revenue", 1200.0, 1000.0, "USD", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO connector_metrics`).
		WithArgs("tenant-1", "shopify", "repeat_rate", "customer", 0.2, 0.4, "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.Record(context.Background(), scope(), "shopify", []models.BusinessMetric{
		{Name: "monthly_revenue", Value: 1200, Target: 1000, Unit: "USD", Category: models.CategoryRevenue},
		{Name: "repeat_rate", Value: 0.2, Target: 0.4, Category: models.CategoryCustomer},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.False(t, mr.Exists(cacheKey("tenant-1")))
}

func TestRecord_RollsBackOnError(t *testing.T) {
	store, mock, _ := setupStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO connector_metrics`).WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := store.Record(context.Background(), scope(), "csv", []models.BusinessMetric{
		{Name: "x", Value: 1, Target: 1, Category: models.CategoryOperations},
	})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeQueryExecutionFailed))
	assert.NoError(t, mock.ExpectationsWereMet())
}
