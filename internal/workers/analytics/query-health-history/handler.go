// internal/workers/analytics/query-health-history/handler.go
package queryhealthhistory

import (
	"context"
	"encoding/json"
	"time"

	"bizcoach-workers/internal/common/errors"
	"bizcoach-workers/internal/common/logger"
	"bizcoach-workers/internal/common/validation"
	"bizcoach-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "query-health-history"
)

// trendThreshold is the point change between oldest and newest snapshot
// needed before a trend is reported.
const trendThreshold = 3

var schema = validation.MustCompile(TaskType, inputSchema)

// SnapshotReader searches recorded snapshots.
type SnapshotReader interface {
	Query(ctx context.Context, tenantID string, since time.Time, size int) ([]models.HealthSnapshot, int64, error)
}

type Handler struct {
	config       *Config
	store        SnapshotReader
	now          func() time.Time
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, store SnapshotReader, log logger.Logger) *Handler {
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
	days := input.Days
	if days <= 0 {
		days = h.config.DefaultDays
	}
	limit := input.Limit
	if limit <= 0 || limit > h.config.MaxResults {
		limit = h.config.MaxResults
	}

	since := h.now().UTC().AddDate(0, 0, -days)
	snaps, total, err := h.store.Query(ctx, input.TenantID, since, limit)
	if err != nil {
		// a tenant that never recorded a score has no index yet
		if errors.HasCode(err, errors.ErrCodeIndexNotFound) {
			h.logger.Warn("health history index missing", map[string]interface{}{
				"tenantId": input.TenantID,
			})
			return &Output{
				Snapshots:    []models.HealthSnapshot{},
				Trend:        TrendInsufficient,
				WindowDays:   days,
				IndexMissing: true,
			}, nil
		}
		return nil, err
	}

	out := &Output{
		Snapshots:  snaps,
		TotalHits:  total,
		Trend:      trend(snaps),
		WindowDays: days,
	}
	if len(snaps) > 0 {
		latest := snaps[0].OverallScore
		out.LatestScore = &latest
	}

	h.logger.Info("health history queried", map[string]interface{}{
		"tenantId":  input.TenantID,
		"returned":  len(snaps),
		"totalHits": total,
		"trend":     out.Trend,
	})
	return out, nil
}

// trend compares the newest snapshot with the oldest one in the window.
// snaps is newest first.
func trend(snaps []models.HealthSnapshot) string {
	if len(snaps) < 2 {
		return TrendInsufficient
	}
	delta := snaps[0].OverallScore - snaps[len(snaps)-1].OverallScore
	switch {
	case delta >= trendThreshold:
		return TrendImproving
	case delta <= -trendThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
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
