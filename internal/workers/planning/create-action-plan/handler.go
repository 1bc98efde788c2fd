// internal/workers/planning/create-action-plan/handler.go
package createactionplan

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"bizcoach-workers/internal/common/errors"
	"bizcoach-workers/internal/common/logger"
	"bizcoach-workers/internal/common/metrics"
	"bizcoach-workers/internal/common/validation"
	"bizcoach-workers/internal/engine/planner"
	"bizcoach-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	TaskType = "create-action-plan"

	dateLayout = "2006-01-02"

	// uniqueViolation is the postgres SQLSTATE for a unique constraint hit.
	uniqueViolation = "23505"
)

var schema = validation.MustCompile(TaskType, inputSchema)

type Handler struct {
	config       *Config
	db           *sql.DB
	now          func() time.Time
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		db:           db,
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
	if h.config.MaxGoals > 0 && len(input.Goals) > h.config.MaxGoals {
		return nil, errors.NewInvalidInputError(
			fmt.Sprintf("%d goals exceeds limit %d", len(input.Goals), h.config.MaxGoals))
	}

	weekStart, err := h.resolveWeekStart(input.WeekStart)
	if err != nil {
		return nil, err
	}
	week := weekStart.Format(dateLayout)

	// the persisted plan keeps every generated task, in preview order
	total := 0
	for _, g := range input.Goals {
		total += len(planner.GenerateTasksForGoal(g))
	}
	tasks := planner.GenerateWeeklyPlanForGoals(input.Goals, total)

	planID := uuid.New().String()
	for i := range tasks {
		tasks[i].ID = uuid.New().String()
	}
	createdAt := h.now().UTC()

	if err := h.persist(ctx, input.TenantID, planID, weekStart, tasks, createdAt); err != nil {
		if isUniqueViolation(err) {
			return nil, errors.NewDuplicatePlanError(input.TenantID, week)
		}
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.NewQueryTimeoutError("create_action_plan")
		}
		return nil, errors.NewPlanPersistFailedError(err)
	}

	for _, task := range tasks {
		metrics.PlanTasksGenerated.WithLabelValues(task.Category).Inc()
	}

	h.logger.Info("action plan created", map[string]interface{}{
		"tenantId":  input.TenantID,
		"planId":    planID,
		"weekStart": week,
		"taskCount": len(tasks),
	})

	return &Output{
		PlanID:    planID,
		WeekStart: week,
		Tasks:     tasks,
		TaskCount: len(tasks),
		Status:    PlanStatusActive,
		CreatedAt: createdAt.Format(time.RFC3339),
	}, nil
}

func (h *Handler) persist(ctx context.Context, tenantID, planID string, weekStart time.Time, tasks []models.PlanTask, createdAt time.Time) error {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO action_plans (id, tenant_id, week_start, status, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		planID, tenantID, weekStart, PlanStatusActive, createdAt,
	); err != nil {
		return err
	}

	for _, task := range tasks {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO action_plan_tasks (id, plan_id, goal_id, title, category, priority, completed)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			task.ID, planID, task.GoalID, task.Title, task.Category, task.Priority, task.Completed,
		); err != nil {
			return err
		}
	}

	details, err := json.Marshal(map[string]interface{}{
		"weekStart": weekStart.Format(dateLayout),
		"taskCount": len(tasks),
	})
	if err != nil {
		details = []byte("{}")
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO audit_log (tenant_id, action, entity_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		tenantID, "action_plan_created", planID, string(details), createdAt,
	); err != nil {
		return err
	}

	return tx.Commit()
}

// resolveWeekStart returns the Monday of the given date, or of today.
func (h *Handler) resolveWeekStart(raw string) (time.Time, error) {
	day := h.now().UTC()
	if raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return time.Time{}, errors.NewInvalidInputError("weekStart must be YYYY-MM-DD")
		}
		day = parsed
	}
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset), nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return stderrors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
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
