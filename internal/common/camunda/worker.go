// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"time"

	"bizcoach-workers/internal/common/errors"
	"bizcoach-workers/internal/common/logger"
	"bizcoach-workers/internal/common/metrics"
	"bizcoach-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// HandlerFunc processes one job. It has already completed or failed the job
// through the client by the time it returns; the error is for instrumentation.
type HandlerFunc func(client worker.JobClient, job entities.Job) error

// WorkerOptions are the per task type polling settings.
type WorkerOptions struct {
	MaxJobsActive int
	Timeout       time.Duration
	Name          string
}

type CamundaWorker struct {
	worker   worker.JobWorker
	logger   logger.Logger
	taskType string
}

// NewWorker opens an instrumented job worker for taskType.
func NewWorker(
	client zbc.Client,
	taskType string,
	opts WorkerOptions,
	handle HandlerFunc,
	obs *observability.Observability,
	log logger.Logger,
) *CamundaWorker {
	builder := client.NewJobWorker().
		JobType(taskType).
		Handler(Instrument(taskType, handle, obs, log))

	if opts.MaxJobsActive > 0 {
		builder = builder.MaxJobsActive(opts.MaxJobsActive)
	}
	if opts.Timeout > 0 {
		builder = builder.Timeout(opts.Timeout)
	}
	if opts.Name != "" {
		builder = builder.Name(opts.Name)
	}

	w := &CamundaWorker{
		worker:   builder.Open(),
		logger:   log.WithFields(map[string]interface{}{"taskType": taskType}),
		taskType: taskType,
	}
	w.logger.Info("worker started", map[string]interface{}{
		"maxJobsActive": opts.MaxJobsActive,
		"timeoutMs":     opts.Timeout.Milliseconds(),
	})
	return w
}

// Instrument wraps handle with prometheus metrics, OpenTelemetry metrics and a
// job span.
func Instrument(taskType string, handle HandlerFunc, obs *observability.Observability, log logger.Logger) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		start := time.Now()
		active := metrics.WorkerJobsActive.WithLabelValues(taskType)
		active.Inc()
		defer active.Dec()

		ctx, span := obs.StartJobSpan(context.Background(), taskType, job.Key, job.ProcessInstanceKey)
		err := handle(client, job)

		elapsed := time.Since(start)
		metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(elapsed.Seconds())

		status := observability.StatusCompleted
		var code errors.ErrorCode
		if err != nil {
			status = observability.StatusFailed
			code = errors.Normalize(err).Code
			metrics.WorkerJobsFailed.WithLabelValues(taskType, string(code)).Inc()
			log.Debug("job finished with error", map[string]interface{}{
				"taskType":  taskType,
				"jobKey":    job.Key,
				"errorCode": string(code),
			})
		} else {
			metrics.WorkerJobsCompleted.WithLabelValues(taskType).Inc()
		}

		observability.EndJobSpan(span, string(code), err)
		obs.RecordJobProcessed(ctx, taskType, status)
		obs.RecordJobDuration(ctx, taskType, elapsed, status)
	}
}

// Stop closes the worker and waits for in-flight jobs.
func (w *CamundaWorker) Stop() {
	w.logger.Info("stopping worker", nil)
	w.worker.Close()
	w.worker.AwaitClose()
}
