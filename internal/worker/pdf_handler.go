package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"hiregate/internal/errcode"
	"hiregate/internal/export"
	"hiregate/internal/lifecycle"
	"hiregate/internal/schema"
	"hiregate/internal/sheetstore"
	"hiregate/internal/storage"
	"hiregate/internal/tasks"
)

const logoSettingKey = "logo_base64"
const latestExportKeyPrefix = "export:pdf:"
const latestExportTTL = 7 * 24 * time.Hour

// PDFTaskHandler 负责消费履历 PDF 导出任务。
type PDFTaskHandler struct {
	store       sheetstore.Store
	lifecycle   *lifecycle.Service
	storage     *storage.Client
	redisClient redis.UniversalClient
	logger      *slog.Logger
}

// NewPDFTaskHandler 创建任务处理器。
func NewPDFTaskHandler(
	store sheetstore.Store,
	lifecycleService *lifecycle.Service,
	storageClient *storage.Client,
	redisClient redis.UniversalClient,
	logger *slog.Logger,
) *PDFTaskHandler {
	return &PDFTaskHandler{
		store:       store,
		lifecycle:   lifecycleService,
		storage:     storageClient,
		redisClient: redisClient,
		logger:      logger,
	}
}

// ProcessTask 实现 asynq.Handler。
func (h *PDFTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) (retErr error) {
	log := h.logger

	var payload tasks.PDFExportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error("unmarshal task payload failed", slog.Any("error", err))
		return err
	}

	log = log.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.String("email", payload.Email),
	)
	log.Info("starting resume pdf export task")

	resume, err := h.lifecycle.Get(ctx, payload.Email)
	if err != nil {
		if sheetstore.IsNotFound(err) {
			log.Warn("resume not found, skipping task")
			return nil
		}
		log.Error("load resume failed", slog.Any("error", err))
		return err
	}

	defer func() {
		if retErr == nil {
			return
		}
		if !isFinalAsynqAttempt(ctx) {
			return
		}

		notify := PDFExportNotifyMessage{
			Status:        "error",
			Email:         payload.Email,
			CorrelationID: payload.CorrelationID,
			ErrorCode:     errcode.SystemError,
			ErrorMessage:  strings.TrimSpace(retErr.Error()),
		}
		if err := h.publishExportNotify(ctx, payload.Email, notify); err != nil {
			log.Error("publish pdf error notification failed", slog.Any("error", err))
		}
	}()

	logo, errorCode := h.loadLogo(ctx, log)

	html, err := export.RenderHTML(resume, logo)
	if err != nil {
		log.Error("render resume html failed", slog.Any("error", err))
		return err
	}

	pdfBytes, err := export.GeneratePDFFromHTML(html)
	if err != nil {
		log.Error("generate pdf failed", slog.Any("error", err))
		return err
	}

	objectName := fmt.Sprintf("exports/%s/%s.pdf", payload.Email, uuid.NewString())
	pdfReader := bytes.NewReader(pdfBytes)
	if _, err := h.storage.UploadFile(ctx, objectName, pdfReader, int64(len(pdfBytes)), "application/pdf"); err != nil {
		log.Error("upload pdf to minio failed", slog.Any("error", err))
		return err
	}

	if err := h.redisClient.Set(ctx, latestExportKeyPrefix+payload.Email, objectName, latestExportTTL).Err(); err != nil {
		log.Error("record latest export failed", slog.Any("error", err))
		return err
	}

	notify := PDFExportNotifyMessage{
		Status:        "completed",
		Email:         payload.Email,
		CorrelationID: payload.CorrelationID,
		ErrorCode:     errorCode,
	}
	if errorCode == errcode.ResourceMissing {
		notify.ErrorMessage = "公司 Logo 缺失，已使用預設樣式產出"
	}
	if err := h.publishExportNotify(ctx, payload.Email, notify); err != nil {
		log.Error("publish redis notification failed", slog.Any("error", err))
		return err
	}

	log.Info("resume pdf export task completed", slog.String("object", objectName))
	return nil
}

// loadLogo 取回 Logo 设置；缺失或读取失败只降级为无 Logo，不中断导出。
func (h *PDFTaskHandler) loadLogo(ctx context.Context, log *slog.Logger) (string, int) {
	row, err := h.store.FindRow(ctx, &schema.Settings, logoSettingKey)
	if err != nil {
		if !sheetstore.IsNotFound(err) {
			log.Warn("load logo failed, exporting without logo", slog.Any("error", err))
		}
		return "", errcode.ResourceMissing
	}
	logo := strings.TrimSpace(row.Get("value"))
	if logo == "" {
		return "", errcode.ResourceMissing
	}
	return export.NormalizeLogo(logo), errcode.OK
}

func (h *PDFTaskHandler) publishExportNotify(ctx context.Context, email string, notify PDFExportNotifyMessage) error {
	data, err := json.Marshal(notify)
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}
	channel := "user_notify:" + email
	if err := h.redisClient.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publish redis notification to %q: %w", channel, err)
	}
	return nil
}

func isFinalAsynqAttempt(ctx context.Context) bool {
	retryCount, ok1 := asynq.GetRetryCount(ctx)
	maxRetry, ok2 := asynq.GetMaxRetry(ctx)
	if !ok1 || !ok2 {
		return false
	}
	return retryCount >= maxRetry
}
