package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// 任务类型常量，确保队列生产者与消费者一致。
const (
	TypePDFExport = "pdf:export"
	TypeEmailSend = "email:send"
)

// PDFExportPayload 描述导出一份履历 PDF 所需的最小信息。
type PDFExportPayload struct {
	Email         string `json:"email"`
	CorrelationID string `json:"correlation_id"`
}

// NewPDFExportTask 构造一个新的履历 PDF 导出任务。
func NewPDFExportTask(email, correlationID string) (*asynq.Task, error) {
	payload, err := json.Marshal(PDFExportPayload{
		Email:         email,
		CorrelationID: correlationID,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePDFExport, payload), nil
}

// EmailSendPayload 描述一封待投递的通知信。
type EmailSendPayload struct {
	To            string `json:"to"`
	Subject       string `json:"subject"`
	Body          string `json:"body"`
	CorrelationID string `json:"correlation_id"`
}

// NewEmailSendTask 构造一个通知信投递任务。
func NewEmailSendTask(to, subject, body, correlationID string) (*asynq.Task, error) {
	payload, err := json.Marshal(EmailSendPayload{
		To:            to,
		Subject:       subject,
		Body:          body,
		CorrelationID: correlationID,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeEmailSend, payload), nil
}
