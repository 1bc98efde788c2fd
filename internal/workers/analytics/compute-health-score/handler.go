// internal/workers/analytics/compute-health-score/handler.go
package computehealthscore

import (
	"context"
	"encoding/json"

	"bizcoach-workers/internal/common/errors"
	"bizcoach-workers/internal/common/logger"
	"bizcoach-workers/internal/common/metrics"
	"bizcoach-workers/internal/common/validation"
	"bizcoach-workers/internal/engine/healthscore"
	"bizcoach-workers/internal/models"
	"bizcoach-workers/internal/services/connectors"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "compute-health-score"
)

var schema = validation.MustCompile(TaskType, inputSchema)

type Handler struct {
	config       *Config
	calculator   *healthscore.Calculator
	source       connectors.MetricSource
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

// NewHandler builds the handler. source may be nil, in which case jobs
// without inline metrics are scored as empty.
func NewHandler(config *Config, source connectors.MetricSource, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		calculator:   healthscore.New(healthscore.WeightsFromNames(config.Weights), config.NeutralScore),
		source:       source,
		errorHandler: errors.NewErrorHandler(scoped),
		logger:       scoped,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	if err := schema.Validate(job.Variables); err != nil {
		return h.failJob(client, job, err)
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		return h.failJob(client, job, errors.NewInvalidInputError(err.Error()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		return h.failJob(client, job, err)
	}

	return h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	batch, source := h.resolveMetrics(ctx, input)

	result := h.calculator.Compute(batch)
	metrics.HealthScoreOverall.Observe(float64(result.OverallScore))

	h.logger.Info("health score computed", map[string]interface{}{
		"tenantId":      input.TenantID,
		"overallScore":  result.OverallScore,
		"status":        result.Status,
		"metricsUsed":   result.MetricsUsed,
		"metricsSource": source,
	})

	return &Output{
		OverallScore:  result.OverallScore,
		Breakdown:     result.BreakdownByName(),
		Status:        result.Status,
		MetricsUsed:   result.MetricsUsed,
		MetricsSource: source,
	}, nil
}

// resolveMetrics prefers inline metrics. A failed fetch scores as no metrics.
func (h *Handler) resolveMetrics(ctx context.Context, input *Input) ([]models.BusinessMetric, string) {
	if input.Metrics != nil {
		return input.Metrics, SourceInput
	}
	if h.source == nil || input.TenantID == "" {
		return nil, SourceNone
	}

	scope := models.TenantScope{TenantID: input.TenantID, APIToken: input.APIToken}
	found, err := h.source.CurrentMetrics(ctx, scope)
	if err != nil {
		fields := scope.LogFields()
		fields["error"] = err.Error()
		h.logger.Warn("scoring without connector metrics", fields)
		return nil, SourceNone
	}
	return found, SourceConnector
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	return nil
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error) error {
	if sendErr := h.errorHandler.HandleJobError(context.Background(), client, job, err); sendErr != nil {
		h.logger.Error("failed to report job failure", map[string]interface{}{
			"jobKey": job.Key,
			"error":  sendErr.Error(),
		})
	}
	return err
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
