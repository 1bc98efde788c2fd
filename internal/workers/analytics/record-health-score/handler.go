// internal/workers/analytics/record-health-score/handler.go
package recordhealthscore

import (
	"context"
	"encoding/json"
	"time"

	"bizcoach-workers/internal/common/errors"
	"bizcoach-workers/internal/common/logger"
	"bizcoach-workers/internal/common/validation"
	"bizcoach-workers/internal/engine/healthscore"
	"bizcoach-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "record-health-score"
)

var schema = validation.MustCompile(TaskType, inputSchema)

// SnapshotWriter persists a health snapshot.
type SnapshotWriter interface {
	Save(ctx context.Context, snap models.HealthSnapshot) error
}

type Handler struct {
	config       *Config
	store        SnapshotWriter
	now          func() time.Time
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, store SnapshotWriter, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		store:        store,
		now:          time.Now,
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
	status := input.Status
	if status == "" {
		status = healthscore.Status(input.OverallScore)
	}

	snap := models.HealthSnapshot{
		ID:           uuid.New().String(),
		TenantID:     input.TenantID,
		OverallScore: input.OverallScore,
		Breakdown:    input.Breakdown,
		Status:       status,
		MetricsUsed:  input.MetricsUsed,
		RecordedAt:   h.now().UTC(),
	}

	if err := h.store.Save(ctx, snap); err != nil {
		return nil, err
	}

	h.logger.Info("health score recorded", map[string]interface{}{
		"tenantId":     snap.TenantID,
		"snapshotId":   snap.ID,
		"overallScore": snap.OverallScore,
	})

	return &Output{
		SnapshotID: snap.ID,
		RecordedAt: snap.RecordedAt.Format(time.RFC3339),
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
