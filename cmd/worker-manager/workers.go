// cmd/worker-manager/workers.go
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	awsclients "bizcoach-workers/internal/common/aws"
	"bizcoach-workers/internal/common/camunda"
	"bizcoach-workers/internal/common/config"
	"bizcoach-workers/internal/common/database"
	httpclient "bizcoach-workers/internal/common/http"
	"bizcoach-workers/internal/common/logger"
	"bizcoach-workers/internal/common/observability"
	"bizcoach-workers/internal/services/connectors"
	"bizcoach-workers/internal/services/history"

	// Connectors (2)
	fbm "bizcoach-workers/internal/workers/connectors/fetch-business-metrics"
	ibm "bizcoach-workers/internal/workers/connectors/ingest-business-metrics"

	// Analytics (3)
	chs "bizcoach-workers/internal/workers/analytics/compute-health-score"
	qhh "bizcoach-workers/internal/workers/analytics/query-health-history"
	rhs "bizcoach-workers/internal/workers/analytics/record-health-score"

	// Planning (3)
	cpa "bizcoach-workers/internal/workers/planning/create-action-plan"
	ggt "bizcoach-workers/internal/workers/planning/generate-goal-tasks"
	gwp "bizcoach-workers/internal/workers/planning/generate-weekly-plan"

	// Notifications (1)
	spd "bizcoach-workers/internal/workers/notifications/send-plan-digest"
)

// allTaskTypes lists every worker this binary can run.
var allTaskTypes = []string{
	fbm.TaskType,
	ibm.TaskType,
	chs.TaskType,
	rhs.TaskType,
	qhh.TaskType,
	ggt.TaskType,
	gwp.TaskType,
	cpa.TaskType,
	spd.TaskType,
}

// dependencies are the shared services handed to the handlers.
type dependencies struct {
	metrics *connectors.MetricStore
	history *history.Store
	pg      *database.PostgresClient
	email   awsclients.EmailSender
	sms     awsclients.SMSSender
}

func buildDependencies(
	ctx context.Context,
	cfg *config.Config,
	pg *database.PostgresClient,
	es *database.ElasticsearchClient,
	rdb *database.RedisClient,
	log logger.Logger,
) (*dependencies, error) {
	deps := &dependencies{
		metrics: connectors.NewMetricStore(pg.DB, rdb.Client, time.Duration(cfg.Connectors.CacheTTL)*time.Second, log),
		history: history.NewStore(es.Client, cfg.History.Index),
		pg:      pg,
	}
	if cfg.Connectors.APIBaseURL != "" {
		client := httpclient.NewClient(cfg.Connectors.APIBaseURL, "connector-api", config.GetDuration(cfg.Connectors.APITimeout))
		deps.metrics.WithRemote(connectors.NewAPISource(client, log))
	}

	if !config.IsWorkerEnabled(cfg, spd.TaskType) {
		return deps, nil
	}
	if cfg.Notifications.Email.Enabled {
		client, err := awsclients.NewSESClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			return nil, fmt.Errorf("ses client: %w", err)
		}
		deps.email = client
	}
	if cfg.Notifications.SMS.Enabled {
		client, err := awsclients.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			return nil, fmt.Errorf("sns client: %w", err)
		}
		deps.sms = client
	}
	return deps, nil
}

// enabledTaskTypes returns the task types that will be polled.
func enabledTaskTypes(cfg *config.Config) []string {
	var out []string
	for _, taskType := range allTaskTypes {
		if config.IsWorkerEnabled(cfg, taskType) {
			out = append(out, taskType)
		}
	}
	return out
}

// handlerTimeout prefers the configured worker timeout over the package default.
func handlerTimeout(cfg *config.Config, taskType string, fallback time.Duration) time.Duration {
	if w, ok := cfg.Workers[taskType]; ok && w.Timeout > 0 {
		return config.GetDuration(w.Timeout)
	}
	return fallback
}

// buildHandlers constructs a handler for every enabled task type.
func buildHandlers(cfg *config.Config, deps *dependencies, log logger.Logger) map[string]camunda.HandlerFunc {
	handlers := make(map[string]camunda.HandlerFunc, len(allTaskTypes))

	{
		c := fbm.LoadConfig()
		c.Timeout = handlerTimeout(cfg, fbm.TaskType, c.Timeout)
		handlers[fbm.TaskType] = fbm.NewHandler(c, deps.metrics, log).Handle
	}
	{
		c := ibm.LoadConfig()
		c.Timeout = handlerTimeout(cfg, ibm.TaskType, c.Timeout)
		handlers[ibm.TaskType] = ibm.NewHandler(c, deps.metrics, log).Handle
	}
	{
		c := chs.LoadConfig()
		c.Timeout = handlerTimeout(cfg, chs.TaskType, c.Timeout)
		c.Weights = cfg.Scoring.Weights
		c.NeutralScore = cfg.Scoring.NeutralScore
		handlers[chs.TaskType] = chs.NewHandler(c, deps.metrics, log).Handle
	}
	{
		c := rhs.LoadConfig()
		c.Timeout = handlerTimeout(cfg, rhs.TaskType, c.Timeout)
		handlers[rhs.TaskType] = rhs.NewHandler(c, deps.history, log).Handle
	}
	{
		c := qhh.LoadConfig()
		c.Timeout = handlerTimeout(cfg, qhh.TaskType, c.Timeout)
		c.DefaultDays = cfg.History.DefaultDays
		c.MaxResults = cfg.History.MaxResults
		handlers[qhh.TaskType] = qhh.NewHandler(c, deps.history, log).Handle
	}
	{
		c := ggt.LoadConfig()
		c.Timeout = handlerTimeout(cfg, ggt.TaskType, c.Timeout)
		handlers[ggt.TaskType] = ggt.NewHandler(c, log).Handle
	}
	{
		c := gwp.LoadConfig()
		c.Timeout = handlerTimeout(cfg, gwp.TaskType, c.Timeout)
		c.PreviewSize = cfg.Planning.PreviewSize
		c.MaxGoals = cfg.Planning.MaxGoals
		handlers[gwp.TaskType] = gwp.NewHandler(c, log).Handle
	}
	{
		c := cpa.LoadConfig()
		c.Timeout = handlerTimeout(cfg, cpa.TaskType, c.Timeout)
		c.MaxGoals = cfg.Planning.MaxGoals
		handlers[cpa.TaskType] = cpa.NewHandler(c, deps.pg.DB, log).Handle
	}
	{
		c := spd.LoadConfig()
		c.Timeout = handlerTimeout(cfg, spd.TaskType, c.Timeout)
		c.EmailEnabled = cfg.Notifications.Email.Enabled
		c.SMSEnabled = cfg.Notifications.SMS.Enabled
		c.FromEmail = cfg.Notifications.Email.FromEmail
		c.SenderID = cfg.Notifications.SMS.SenderID
		handlers[spd.TaskType] = spd.NewHandler(c, deps.email, deps.sms, log).Handle
	}

	for taskType := range handlers {
		if !config.IsWorkerEnabled(cfg, taskType) {
			delete(handlers, taskType)
		}
	}
	return handlers
}

// registerWorkers opens a job worker per enabled handler.
func registerWorkers(
	cfg *config.Config,
	deps *dependencies,
	client zbc.Client,
	obs *observability.Observability,
	log logger.Logger,
) []*camunda.CamundaWorker {
	handlers := buildHandlers(cfg, deps, log)

	var workers []*camunda.CamundaWorker
	for _, taskType := range allTaskTypes {
		handle, ok := handlers[taskType]
		if !ok {
			log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
			continue
		}
		wcfg := config.GetWorkerConfig(cfg, taskType)
		workers = append(workers, camunda.NewWorker(client, taskType, camunda.WorkerOptions{
			MaxJobsActive: wcfg.MaxJobsActive,
			Timeout:       config.GetDuration(wcfg.Timeout),
			Name:          cfg.App.Name,
		}, handle, obs, log))
	}
	return workers
}
