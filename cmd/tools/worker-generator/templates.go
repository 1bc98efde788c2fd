// cmd/tools/worker-generator/templates.go
package main

var templates = map[string]string{
	"config.go": `// internal/workers/{{.Category}}/{{.TaskType}}/config.go
package {{.PackageName}}

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	timeout, err := time.ParseDuration("{{.Timeout}}")
	if err != nil {
		timeout = 10 * time.Second
	}
	return &Config{Timeout: timeout}
}
`,

	"models.go": `// internal/workers/{{.Category}}/{{.TaskType}}/models.go
package {{.PackageName}}

type Input struct {
	TenantID string ` + "`json:\"tenantId\"`" + `
}

type Output struct {
	Done bool ` + "`json:\"done\"`" + `
}

const inputSchema = ` + "`" + `{
	"type": "object",
	"required": ["tenantId"],
	"properties": {
		"tenantId": {"type": "string", "minLength": 1}
	}
}` + "`" + `
`,

	"handler.go": `// internal/workers/{{.Category}}/{{.TaskType}}/handler.go
package {{.PackageName}}

import (
	"context"
	"encoding/json"

	"bizcoach-workers/internal/common/errors"
	"bizcoach-workers/internal/common/logger"
	"bizcoach-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "{{.TaskType}}"
)

var schema = validation.MustCompile(TaskType, inputSchema)

// Handler implements {{.DisplayName}}.{{if .Description}} {{.Description}}{{end}}
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

func (h *Handler) execute(_ context.Context, _ *Input) (*Output, error) {
	return &Output{Done: true}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		return err
	}
	_, err = cmd.Send(context.Background())
	return err
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
`,

	"handler_test.go": `// internal/workers/{{.Category}}/{{.TaskType}}/handler_test.go
package {{.PackageName}}

import (
	"context"
	"testing"

	"bizcoach-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Execute(t *testing.T) {
	h := NewHandler(LoadConfig(), logger.NewTestLogger(t))
	out, err := h.Execute(context.Background(), &Input{TenantID: "tenant-1"})
	require.NoError(t, err)
	assert.True(t, out.Done)
}

func TestInputSchema(t *testing.T) {
	assert.NoError(t, schema.Validate(` + "`" + `{"tenantId":"t"}` + "`" + `))
	assert.Error(t, schema.Validate(` + "`" + `{}` + "`" + `))
}
`,
}
