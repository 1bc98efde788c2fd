package camunda

import (
	"context"
	"fmt"
	"testing"
	"time"

	"bizcoach-workers/internal/common/errors"
	"bizcoach-workers/internal/common/logger"
	"bizcoach-workers/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createMockJob(key int64, taskType string) entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:                key,
		Type:               taskType,
		ProcessInstanceKey: key * 10,
		Retries:            3,
		Variables:          "{}",
	}}
}

// ==========================
// Instrumentation Tests
// ==========================

func TestInstrument_RecordsCompletion(t *testing.T) {
	taskType := "instrument-test-ok"
	called := false
	handle := func(_ worker.JobClient, job entities.Job) error {
		called = true
		assert.Equal(t, int64(7), job.Key)
		return nil
	}

	Instrument(taskType, handle, nil, logger.NewTestLogger(t))(nil, createMockJob(7, taskType))

	assert.True(t, called)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WorkerJobsCompleted.WithLabelValues(taskType)))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.WorkerJobsActive.WithLabelValues(taskType)))
}

func TestInstrument_RecordsFailureCode(t *testing.T) {
	taskType := "instrument-test-fail"
	handle := func(worker.JobClient, entities.Job) error {
		return errors.NewInvalidInputError("tenantId is required")
	}

	wrapped := Instrument(taskType, handle, nil, logger.NewNoOpLogger())
	wrapped(nil, createMockJob(1, taskType))
	wrapped(nil, createMockJob(2, taskType))

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.WorkerJobsFailed.WithLabelValues(taskType, "INVALID_INPUT")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.WorkerJobsCompleted.WithLabelValues(taskType)))
}

// ==========================
// Retry Tests
// ==========================

func fastRetry() *RetryConfig {
	return &RetryConfig{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func TestExecuteWithRetry(t *testing.T) {
	t.Run("transient errors are retried", func(t *testing.T) {
		attempts := 0
		result, err := executeWithRetry(context.Background(), fastRetry(), func(context.Context) (interface{}, error) {
			attempts++
			if attempts < 3 {
				return nil, fmt.Errorf("rpc error: code = Unavailable")
			}
			return "ok", nil
		}, "publish")

		require.NoError(t, err)
		assert.Equal(t, "ok", result)
		assert.Equal(t, 3, attempts)
	})

	t.Run("permanent errors stop immediately", func(t *testing.T) {
		attempts := 0
		_, err := executeWithRetry(context.Background(), fastRetry(), func(context.Context) (interface{}, error) {
			attempts++
			return nil, fmt.Errorf("permission denied")
		}, "publish")

		require.Error(t, err)
		assert.Equal(t, 1, attempts)
		assert.True(t, errors.HasCode(err, errors.ErrCodeExternalService))
	})

	t.Run("exhausted timeouts map to timeout error", func(t *testing.T) {
		attempts := 0
		_, err := executeWithRetry(context.Background(), fastRetry(), func(context.Context) (interface{}, error) {
			attempts++
			return nil, fmt.Errorf("context deadline exceeded")
		}, "publish")

		assert.Equal(t, 4, attempts)
		assert.True(t, errors.HasCode(err, errors.ErrCodeTimeout))
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := executeWithRetry(ctx, &RetryConfig{MaxRetries: 2, BaseDelay: time.Second, MaxDelay: time.Second},
			func(context.Context) (interface{}, error) {
				return nil, fmt.Errorf("connection refused")
			}, "publish")

		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
