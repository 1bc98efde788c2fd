// internal/workers/notifications/send-plan-digest/handler.go
package sendplandigest

import (
	"context"
	"encoding/json"
	"time"

	awsclients "bizcoach-workers/internal/common/aws"
	"bizcoach-workers/internal/common/errors"
	"bizcoach-workers/internal/common/logger"
	"bizcoach-workers/internal/common/validation"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "send-plan-digest"
)

var schema = validation.MustCompile(TaskType, inputSchema)

type Handler struct {
	config       *Config
	email        awsclients.EmailSender
	sms          awsclients.SMSSender
	now          func() time.Time
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

// NewHandler builds the handler. A nil sender disables its channel.
func NewHandler(config *Config, email awsclients.EmailSender, sms awsclients.SMSSender, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		email:        email,
		sms:          sms,
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
	subject, body, smsText, err := renderDigest(input, h.config.MaxTasks)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	channels := make([]string, 0, 2)

	if h.config.EmailEnabled && h.email != nil && input.Recipient.Email != "" {
		if err := h.sendEmail(ctx, input.Recipient.Email, subject, body); err != nil {
			return nil, errors.NewNotificationSendFailedError(ChannelEmail, err)
		}
		channels = append(channels, ChannelEmail)
	}

	if h.config.SMSEnabled && h.sms != nil && input.Recipient.Phone != "" {
		if err := h.sendSMS(ctx, input.Recipient.Phone, smsText); err != nil {
			return nil, errors.NewNotificationSendFailedError(ChannelSMS, err)
		}
		channels = append(channels, ChannelSMS)
	}

	status := StatusDisabled
	if len(channels) > 0 {
		status = StatusSent
	}

	out := &Output{
		NotificationID: uuid.New().String(),
		Status:         status,
		Channels:       channels,
		SentAt:         h.now().UTC().Format(time.RFC3339),
	}

	h.logger.Info("plan digest processed", map[string]interface{}{
		"tenantId":       input.TenantID,
		"notificationId": out.NotificationID,
		"status":         status,
		"channels":       channels,
	})
	return out, nil
}

func (h *Handler) sendEmail(ctx context.Context, to, subject, body string) error {
	_, err := h.email.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(h.config.FromEmail),
	})
	return err
}

func (h *Handler) sendSMS(ctx context.Context, to, message string) error {
	input := &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(message),
	}
	if h.config.SenderID != "" {
		input.MessageAttributes = map[string]snstypes.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {
				DataType:    aws.String("String"),
				StringValue: aws.String(h.config.SenderID),
			},
		}
	}
	_, err := h.sms.Publish(ctx, input)
	return err
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
