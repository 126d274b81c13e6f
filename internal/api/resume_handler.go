package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"hiregate/internal/api/middleware"
	"hiregate/internal/lifecycle"
	"hiregate/internal/notify"
	"hiregate/internal/record"
	"hiregate/internal/sheetstore"
	"hiregate/internal/storage"
	"hiregate/internal/tasks"
)

const latestExportKeyPrefix = "export:pdf:"

// ResumeHandler 处理候选人对自己履历的读写、送审与导出。
type ResumeHandler struct {
	lifecycle   *lifecycle.Service
	asynqClient *asynq.Client
	storage     *storage.Client
	redis       redis.UniversalClient
	logger      *slog.Logger
}

// NewResumeHandler 构造 ResumeHandler。
func NewResumeHandler(lifecycleService *lifecycle.Service, asynqClient *asynq.Client, storageClient *storage.Client, redisClient redis.UniversalClient, logger *slog.Logger) *ResumeHandler {
	return &ResumeHandler{
		lifecycle:   lifecycleService,
		asynqClient: asynqClient,
		storage:     storageClient,
		redis:       redisClient,
		logger:      logger,
	}
}

// GetMyResume 返回当前候选人的履历全文。
func (h *ResumeHandler) GetMyResume(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	resume, err := h.lifecycle.Get(c.Request.Context(), identity.Email)
	if err != nil {
		h.replyStoreError(c, err, "failed to load resume")
		return
	}

	c.JSON(http.StatusOK, resume)
}

// SaveDraft 暂存表单内容，状态置为 Draft。
func (h *ResumeHandler) SaveDraft(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var form record.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		BadRequest(c, err.Error())
		return
	}

	if err := h.lifecycle.SaveDraft(c.Request.Context(), identity.Email, form); err != nil {
		if errors.Is(err, lifecycle.ErrApprovedLocked) {
			Conflict(c, "resume already approved")
			return
		}
		h.replyStoreError(c, err, "failed to save draft")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": record.StatusDraft})
}

// Submit 校验必填字段后送审，并通知邀请人。
func (h *ResumeHandler) Submit(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var form record.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	logger := middleware.LoggerFromContext(c).With(slog.String("email", identity.Email))

	if err := h.lifecycle.Submit(ctx, identity.Email, form); err != nil {
		var validationErr *lifecycle.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":          "missing required fields",
				"missing_fields": validationErr.Missing,
			})
			return
		}
		if errors.Is(err, lifecycle.ErrApprovedLocked) {
			Conflict(c, "resume already approved")
			return
		}
		h.replyStoreError(c, err, "failed to submit resume")
		return
	}

	// 通知邀请人；通知失败不影响送审结果。
	if identity.Creator != "" {
		candidateName := identity.Name
		if candidateName == "" {
			candidateName = identity.Email
		}
		subject, body := notify.SubmittedMessage(candidateName)
		if task, err := tasks.NewEmailSendTask(identity.Creator, subject, body, middleware.GetCorrelationID(c)); err == nil {
			if _, err := h.asynqClient.Enqueue(task, asynq.MaxRetry(3)); err != nil {
				logger.Error("enqueue submit notification failed", slog.Any("error", err))
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": record.StatusSubmitted})
}

// Export 将 PDF 导出任务入队并立即返回 202。
func (h *ResumeHandler) Export(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	// 先确认履历存在，避免排入注定失败的任务。
	if _, err := h.lifecycle.Get(c.Request.Context(), identity.Email); err != nil {
		h.replyStoreError(c, err, "failed to load resume")
		return
	}

	correlationID := middleware.GetCorrelationID(c)
	task, err := tasks.NewPDFExportTask(identity.Email, correlationID)
	if err != nil {
		Internal(c, "failed to create task")
		return
	}

	info, err := h.asynqClient.Enqueue(task, asynq.MaxRetry(5))
	if err != nil {
		Internal(c, "failed to enqueue pdf export")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "PDF export request accepted",
		"task_id": info.ID,
	})
}

// GetDownloadLink 返回最近一次导出 PDF 的预签名下载链接。
func (h *ResumeHandler) GetDownloadLink(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()
	objectKey, err := h.redis.Get(ctx, latestExportKeyPrefix+identity.Email).Result()
	if errors.Is(err, redis.Nil) || objectKey == "" {
		Conflict(c, "pdf not ready")
		return
	}
	if err != nil {
		Internal(c, "failed to resolve export")
		return
	}

	filename := fmt.Sprintf("resume_%s.pdf", identity.Email)
	signedURL, err := h.storage.GeneratePresignedURL(ctx, objectKey, 5*time.Minute, map[string]string{
		"response-content-disposition": fmt.Sprintf("attachment; filename=%q", filename),
	})
	if err != nil {
		Internal(c, "failed to generate download link")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": signedURL})
}

func (h *ResumeHandler) replyStoreError(c *gin.Context, err error, fallback string) {
	logger := middleware.LoggerFromContext(c)
	switch {
	case sheetstore.IsNotFound(err):
		NotFound(c, "resume not found")
	case sheetstore.IsUnreachable(err):
		logger.Error("workbook unreachable", slog.Any("error", err))
		Unavailable(c, "service unavailable")
	default:
		logger.Error(fallback, slog.Any("error", err))
		Internal(c, fallback)
	}
}
