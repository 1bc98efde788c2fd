package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestJobSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	obs := &Observability{}
	obs.useTracerProvider(provider, "test-service")

	ctx := context.Background()
	_, span := obs.StartJobSpan(ctx, "compute-health-score", 42, 420)
	EndJobSpan(span, "", nil)

	_, span = obs.StartJobSpan(ctx, "create-action-plan", 43, 430)
	EndJobSpan(span, "DUPLICATE_PLAN", errors.New("plan exists"))

	ended := recorder.Ended()
	require.Len(t, ended, 2)

	assert.Equal(t, "compute-health-score", ended[0].Name())
	assert.Equal(t, codes.Ok, ended[0].Status().Code)
	assert.Contains(t, ended[0].Attributes(), attribute.Int64("job.key", 42))

	assert.Equal(t, codes.Error, ended[1].Status().Code)
	assert.Equal(t, "DUPLICATE_PLAN", ended[1].Status().Description)
	assert.Contains(t, ended[1].Attributes(), attribute.String("error.code", "DUPLICATE_PLAN"))
	require.Len(t, ended[1].Events(), 1)

	assert.NoError(t, obs.Shutdown(ctx))
}

func TestStartJobSpan_WithoutTracing(t *testing.T) {
	var obs *Observability
	assert.NotPanics(t, func() {
		_, span := obs.StartJobSpan(context.Background(), "x", 1, 1)
		EndJobSpan(span, "", nil)
	})
}
