// internal/workers/planning/generate-weekly-plan/handler.go
package generateweeklyplan

import (
	"context"
	"encoding/json"
	"fmt"

	"bizcoach-workers/internal/common/errors"
	"bizcoach-workers/internal/common/logger"
	"bizcoach-workers/internal/common/metrics"
	"bizcoach-workers/internal/common/validation"
	"bizcoach-workers/internal/engine/planner"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "generate-weekly-plan"
)

var schema = validation.MustCompile(TaskType, inputSchema)

type Handler struct {
	config       *Config
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
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

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if h.config.MaxGoals > 0 && len(input.Goals) > h.config.MaxGoals {
		return nil, errors.NewInvalidInputError(
			fmt.Sprintf("%d goals exceeds limit %d", len(input.Goals), h.config.MaxGoals))
	}

	limit := input.Limit
	if limit <= 0 {
		limit = h.config.PreviewSize
	}

	tasks := planner.GenerateWeeklyPlanForGoals(input.Goals, limit)

	byCategory := make(map[string]int)
	for _, task := range tasks {
		byCategory[task.Category]++
	}
	for category, n := range byCategory {
		metrics.PlanTasksGenerated.WithLabelValues(category).Add(float64(n))
	}

	h.logger.Info("weekly plan generated", map[string]interface{}{
		"goalCount": len(input.Goals),
		"taskCount": len(tasks),
		"limit":     limit,
	})

	return &Output{
		Tasks:      tasks,
		TaskCount:  len(tasks),
		GoalCount:  len(input.Goals),
		ByCategory: byCategory,
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
