package worker

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"hiregate/internal/notify"
	"hiregate/internal/tasks"
)

// EmailTaskHandler 负责消费通知信投递任务。
type EmailTaskHandler struct {
	mailer *notify.Mailer
	logger *slog.Logger
}

// NewEmailTaskHandler 创建任务处理器。
func NewEmailTaskHandler(mailer *notify.Mailer, logger *slog.Logger) *EmailTaskHandler {
	return &EmailTaskHandler{
		mailer: mailer,
		logger: logger,
	}
}

// ProcessTask 实现 asynq.Handler。
// 投递失败只记录日志，不返回错误：通知信丢失不应阻塞业务流程，
// 也不值得让队列无限重试一封注定失败的信。
func (h *EmailTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload tasks.EmailSendPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		h.logger.Error("unmarshal task payload failed", slog.Any("error", err))
		return err
	}

	log := h.logger.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.String("to", payload.To),
		slog.String("subject", payload.Subject),
	)

	if ok := h.mailer.Send(payload.To, payload.Subject, payload.Body); !ok {
		log.Error("email delivery failed")
		return nil
	}

	log.Info("email delivered")
	return nil
}
