// Package connectors reads and writes the business metrics that connected
// data sources (e-commerce, accounting, CSV uploads) report per tenant.
package connectors

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"bizcoach-workers/internal/common/database"
	"bizcoach-workers/internal/common/errors"
	"bizcoach-workers/internal/common/logger"
	"bizcoach-workers/internal/common/metrics"
	"bizcoach-workers/internal/models"

	"github.com/redis/go-redis/v9"
)

// MetricSource returns a tenant's current metrics.
type MetricSource interface {
	CurrentMetrics(ctx context.Context, scope models.TenantScope) ([]models.BusinessMetric, error)
}

// MetricStore serves metrics from redis and falls back to postgres on a miss.
// When postgres has nothing for the tenant and a remote source is set, the
// remote source is asked with the tenant's token.
type MetricStore struct {
	db     *sql.DB
	cache  redis.Cmdable
	remote MetricSource
	ttl    time.Duration
	logger logger.Logger
}

func NewMetricStore(db *sql.DB, cache redis.Cmdable, ttl time.Duration, log logger.Logger) *MetricStore {
	return &MetricStore{
		db:     db,
		cache:  cache,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "connector-metric-store"}),
	}
}

// WithRemote sets the source consulted when postgres has no rows.
func (s *MetricStore) WithRemote(remote MetricSource) *MetricStore {
	s.remote = remote
	return s
}

func cacheKey(tenantID string) string {
	return "connector:metrics:" + tenantID
}

const selectMetrics = `
	SELECT name, value, target, unit, category, connector, observed_at
	FROM connector_metrics
	WHERE tenant_id = $1
	ORDER BY category, name`

// CurrentMetrics returns the tenant's metrics. A cache failure is logged and
// skipped; a database failure is returned as METRICS_FETCH_FAILED. Empty
// results are never cached.
func (s *MetricStore) CurrentMetrics(ctx context.Context, scope models.TenantScope) ([]models.BusinessMetric, error) {
	if err := scope.Validate(); err != nil {
		return nil, errors.NewInvalidInputError(err.Error())
	}
	key := cacheKey(scope.TenantID)

	if s.cache != nil {
		var cached []models.BusinessMetric
		err := database.GetJSON(ctx, s.cache, key, &cached)
		switch {
		case err == nil:
			metrics.MetricsCacheLookups.WithLabelValues("hit").Inc()
			return cached, nil
		case err == redis.Nil:
			metrics.MetricsCacheLookups.WithLabelValues("miss").Inc()
		default:
			metrics.MetricsCacheLookups.WithLabelValues("error").Inc()
			s.logger.Warn("metric cache read failed", map[string]interface{}{
				"tenantId": scope.TenantID,
				"error":    err.Error(),
			})
		}
	}

	found, err := s.query(ctx, scope.TenantID)
	if err != nil {
		return nil, errors.NewMetricsFetchFailedError(scope.TenantID, err)
	}
	if len(found) == 0 && s.remote != nil && scope.APIToken != "" {
		found = s.fetchRemote(ctx, scope)
	}

	// An empty list may come from a failed remote call or a caller without a
	// token, so only real results are cached.
	if s.cache != nil && len(found) > 0 {
		if err := database.SetJSON(ctx, s.cache, key, found, s.ttl); err != nil {
			s.logger.Warn("metric cache write failed", map[string]interface{}{
				"tenantId": scope.TenantID,
				"error":    err.Error(),
			})
		}
	}
	return found, nil
}

// fetchRemote never fails; an unreachable API leaves the tenant with no
// metrics, same as no connectors at all.
func (s *MetricStore) fetchRemote(ctx context.Context, scope models.TenantScope) []models.BusinessMetric {
	found, err := s.remote.CurrentMetrics(ctx, scope)
	if err != nil {
		metrics.ConnectorAPIFetches.WithLabelValues("error").Inc()
		fields := scope.LogFields()
		fields["error"] = err.Error()
		s.logger.Warn("remote connector fetch failed", fields)
		return make([]models.BusinessMetric, 0)
	}
	metrics.ConnectorAPIFetches.WithLabelValues("ok").Inc()
	return found
}

func (s *MetricStore) query(ctx context.Context, tenantID string) ([]models.BusinessMetric, error) {
	rows, err := s.db.QueryContext(ctx, selectMetrics, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.BusinessMetric, 0)
	for rows.Next() {
		var (
			m        models.BusinessMetric
			category string
		)
		if err := rows.Scan(&m.Name, &m.Value, &m.Target, &m.Unit, &category, &m.Source, &m.ObservedAt); err != nil {
			return nil, fmt.Errorf("scan connector metric: %w", err)
		}
		c, ok := models.ParseCategory(category)
		if !ok {
			s.logger.Warn("dropping metric with unknown category", map[string]interface{}{
				"tenantId": tenantID,
				"metric":   m.Name,
				"category": category,
			})
			continue
		}
		m.Category = c
		out = append(out, m)
	}
	return out, rows.Err()
}

const upsertMetric = `
	INSERT INTO connector_metrics (tenant_id, connector, name, category, value, target, unit, observed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (tenant_id, connector, name)
	DO UPDATE SET category = EXCLUDED.category, value = EXCLUDED.value, target = EXCLUDED.target,
		unit = EXCLUDED.unit, observed_at = EXCLUDED.observed_at`

// Record upserts metrics reported by connector for the tenant in one
// transaction and drops the tenant's cache entry.
func (s *MetricStore) Record(ctx context.Context, scope models.TenantScope, connector string, batch []models.BusinessMetric) error {
	if err := scope.Validate(); err != nil {
		return errors.NewInvalidInputError(err.Error())
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewDatabaseConnectionFailedError(err)
	}
	defer tx.Rollback()

	for _, m := range batch {
		observed := m.ObservedAt
		if observed.IsZero() {
			observed = time.Now().UTC()
		}
		if _, err := tx.ExecContext(ctx, upsertMetric,
			scope.TenantID, connector, m.Name, m.Category.String(), m.Value, m.Target, m.Unit, observed,
		); err != nil {
			return errors.NewQueryExecutionFailedError("upsert_connector_metric", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewQueryExecutionFailedError("commit_connector_metrics", err)
	}

	if s.cache != nil {
		if err := s.cache.Del(ctx, cacheKey(scope.TenantID)).Err(); err != nil {
			s.logger.Warn("metric cache invalidation failed", map[string]interface{}{
				"tenantId": scope.TenantID,
				"error":    err.Error(),
			})
		}
	}
	return nil
}
