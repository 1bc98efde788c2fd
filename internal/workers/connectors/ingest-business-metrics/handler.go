// internal/workers/connectors/ingest-business-metrics/handler.go
package ingestbusinessmetrics

import (
	"context"
	"encoding/json"
	"fmt"

	"bizcoach-workers/internal/common/errors"
	"bizcoach-workers/internal/common/logger"
	"bizcoach-workers/internal/common/validation"
	"bizcoach-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "ingest-business-metrics"
)

var schema = validation.MustCompile(TaskType, inputSchema)

// MetricWriter stores a connector's metric batch for a tenant.
type MetricWriter interface {
	Record(ctx context.Context, scope models.TenantScope, connector string, batch []models.BusinessMetric) error
}

type Handler struct {
	config       *Config
	store        MetricWriter
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, store MetricWriter, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		store:        store,
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
	if h.config.MaxBatch > 0 && len(input.Metrics) > h.config.MaxBatch {
		return nil, errors.NewInvalidInputError(
			fmt.Sprintf("batch of %d metrics exceeds limit %d", len(input.Metrics), h.config.MaxBatch))
	}

	accepted := make([]models.BusinessMetric, 0, len(input.Metrics))
	skipped := make([]string, 0)
	for _, m := range input.Metrics {
		if !m.Category.Valid() {
			skipped = append(skipped, m.Name)
			continue
		}
		m.Source = input.Connector
		accepted = append(accepted, m)
	}

	if len(skipped) > 0 {
		h.logger.Warn("skipping metrics with unknown category", map[string]interface{}{
			"tenantId": input.TenantID,
			"metrics":  skipped,
		})
	}

	if len(accepted) > 0 {
		scope := models.TenantScope{TenantID: input.TenantID}
		if err := h.store.Record(ctx, scope, input.Connector, accepted); err != nil {
			return nil, err
		}
	}

	h.logger.Info("connector metrics ingested", map[string]interface{}{
		"tenantId":  input.TenantID,
		"connector": input.Connector,
		"ingested":  len(accepted),
	})

	return &Output{Ingested: len(accepted), Skipped: skipped}, nil
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
