// internal/workers/connectors/fetch-business-metrics/handler.go
package fetchbusinessmetrics

import (
	"context"
	"encoding/json"

	"bizcoach-workers/internal/common/errors"
	"bizcoach-workers/internal/common/logger"
	"bizcoach-workers/internal/common/validation"
	"bizcoach-workers/internal/models"
	"bizcoach-workers/internal/services/connectors"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "fetch-business-metrics"
)

var schema = validation.MustCompile(TaskType, inputSchema)

type Handler struct {
	config       *Config
	source       connectors.MetricSource
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, source connectors.MetricSource, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
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

// execute never fails on a connector outage: the process continues with no
// metrics and the score falls back to neutral.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	scope := models.TenantScope{TenantID: input.TenantID, APIToken: input.APIToken}
	if err := scope.Validate(); err != nil {
		return nil, errors.NewInvalidInputError(err.Error())
	}

	found, err := h.source.CurrentMetrics(ctx, scope)
	if err != nil {
		fields := scope.LogFields()
		fields["error"] = err.Error()
		h.logger.Warn("connector metrics unavailable", fields)
		return &Output{Metrics: []models.BusinessMetric{}, MetricsAvailable: false}, nil
	}

	h.logger.Info("connector metrics fetched", map[string]interface{}{
		"tenantId":    scope.TenantID,
		"metricCount": len(found),
	})

	return &Output{
		Metrics:          found,
		MetricsAvailable: true,
		MetricCount:      len(found),
	}, nil
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
