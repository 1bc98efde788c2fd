package connectors

import (
	"context"
	"math"
	"net/url"
	"time"

	httpclient "bizcoach-workers/internal/common/http"
	"bizcoach-workers/internal/common/logger"
	"bizcoach-workers/internal/models"
)

// apiMetric is the connector API's wire shape. Pointers tell a missing
// value apart from zero.
type apiMetric struct {
	Name       string   `json:"name"`
	Value      *float64 `json:"value"`
	Target     *float64 `json:"target"`
	Unit       string   `json:"unit"`
	Category   string   `json:"category"`
	Connector  string   `json:"connector"`
	ObservedAt string   `json:"observedAt"`
}

type apiMetricsResponse struct {
	Metrics []apiMetric `json:"metrics"`
}

// APISource reads current metrics live from the connector REST API using
// the tenant's own token.
type APISource struct {
	client *httpclient.Client
	logger logger.Logger
}

func NewAPISource(client *httpclient.Client, log logger.Logger) *APISource {
	return &APISource{
		client: client,
		logger: log.WithFields(map[string]interface{}{"component": "connector-api"}),
	}
}

func (s *APISource) CurrentMetrics(ctx context.Context, scope models.TenantScope) ([]models.BusinessMetric, error) {
	var resp apiMetricsResponse
	path := "/v1/tenants/" + url.PathEscape(scope.TenantID) + "/connectors/metrics"
	if err := s.client.GetJSON(ctx, path, scope.APIToken, &resp); err != nil {
		return nil, err
	}
	return s.toMetrics(scope.TenantID, resp.Metrics), nil
}

// toMetrics keeps only entries with a name, a known category and finite
// numbers. Everything else is logged and dropped here so the engines never
// see upstream schema drift.
func (s *APISource) toMetrics(tenantID string, raw []apiMetric) []models.BusinessMetric {
	out := make([]models.BusinessMetric, 0, len(raw))
	for _, m := range raw {
		category, ok := models.ParseCategory(m.Category)
		if !ok || m.Name == "" || m.Value == nil || m.Target == nil ||
			math.IsNaN(*m.Value) || math.IsInf(*m.Value, 0) {
			s.logger.Warn("dropping malformed connector metric", map[string]interface{}{
				"tenantId": tenantID,
				"metric":   m.Name,
				"category": m.Category,
			})
			continue
		}
		var observed time.Time
		if m.ObservedAt != "" {
			t, err := time.Parse(time.RFC3339, m.ObservedAt)
			if err != nil {
				s.logger.Warn("dropping connector metric with bad observedAt", map[string]interface{}{
					"tenantId":   tenantID,
					"metric":     m.Name,
					"observedAt": m.ObservedAt,
				})
				continue
			}
			observed = t.UTC()
		}
		out = append(out, models.BusinessMetric{
			Name:       m.Name,
			Value:      *m.Value,
			Target:     *m.Target,
			Unit:       m.Unit,
			Category:   category,
			Source:     m.Connector,
			ObservedAt: observed,
		})
	}
	return out
}
