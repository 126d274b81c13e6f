package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	"hiregate/internal/account"
	"hiregate/internal/api/middleware"
	"hiregate/internal/lifecycle"
	"hiregate/internal/notify"
	"hiregate/internal/record"
	"hiregate/internal/sheetstore"
	"hiregate/internal/tasks"
)

// ReviewHandler 处理 HR 侧操作：列表、审核、邀请候选人、建立员工账号。
type ReviewHandler struct {
	lifecycle   *lifecycle.Service
	accounts    *account.Service
	asynqClient *asynq.Client
	loginURL    string
	logger      *slog.Logger
}

// NewReviewHandler 构造 ReviewHandler。
func NewReviewHandler(lifecycleService *lifecycle.Service, accounts *account.Service, asynqClient *asynq.Client, loginURL string, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		lifecycle:   lifecycleService,
		accounts:    accounts,
		asynqClient: asynqClient,
		loginURL:    loginURL,
		logger:      logger,
	}
}

type resumeListItem struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	ResumeType string `json:"resume_type"`
	Phone      string `json:"phone"`
	UpdatedAt  string `json:"updated_at"`
}

// ListResumes 返回全部履历概要，可按状态过滤。
// 后端不可达时降级为空列表并附带告警标记，审核页不至于整页报错。
func (h *ReviewHandler) ListResumes(c *gin.Context) {
	statusFilter := strings.TrimSpace(c.Query("status"))

	resumes, err := h.lifecycle.List(c.Request.Context())
	if err != nil {
		if sheetstore.IsUnreachable(err) {
			middleware.LoggerFromContext(c).Error("workbook unreachable, degrading to empty list", slog.Any("error", err))
			c.JSON(http.StatusOK, gin.H{"items": []resumeListItem{}, "degraded": true})
			return
		}
		middleware.LoggerFromContext(c).Error("list resumes failed", slog.Any("error", err))
		Internal(c, "failed to list resumes")
		return
	}

	items := make([]resumeListItem, 0, len(resumes))
	for _, r := range resumes {
		if statusFilter != "" && r.Status != statusFilter {
			continue
		}
		items = append(items, resumeListItem{
			Email:      r.Email,
			Name:       r.Identity.NameCN,
			Status:     r.Status,
			ResumeType: r.ResumeType,
			Phone:      r.Identity.Phone,
			UpdatedAt:  r.UpdatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "degraded": false})
}

// GetResume 返回指定候选人的履历全文，供审核页展示。
func (h *ReviewHandler) GetResume(c *gin.Context) {
	email := strings.TrimSpace(c.Param("email"))
	if email == "" {
		BadRequest(c, "candidate email is required")
		return
	}

	resume, err := h.lifecycle.Get(c.Request.Context(), email)
	if err != nil {
		h.replyStoreError(c, err, "failed to load resume")
		return
	}

	c.JSON(http.StatusOK, resume)
}

type reviewRequest struct {
	Decision  string            `json:"decision" binding:"required"`
	Comment   string            `json:"comment"`
	Interview *record.Interview `json:"interview"`
}

// Review 写入审核结论并通知候选人。
func (h *ReviewHandler) Review(c *gin.Context) {
	email := strings.TrimSpace(c.Param("email"))
	if email == "" {
		BadRequest(c, "candidate email is required")
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if !lifecycle.ValidDecision(req.Decision) {
		BadRequest(c, "decision must be Approved or Returned")
		return
	}

	ctx := c.Request.Context()
	logger := middleware.LoggerFromContext(c).With(
		slog.String("candidate", email),
		slog.String("decision", req.Decision),
	)

	if err := h.lifecycle.Review(ctx, email, req.Decision, req.Comment, req.Interview); err != nil {
		h.replyStoreError(c, err, "failed to record review")
		return
	}

	var subject, body string
	if req.Decision == record.StatusApproved {
		subject, body = notify.ApprovedMessage(req.Comment)
	} else {
		subject, body = notify.ReturnedMessage(req.Comment)
	}
	if task, err := tasks.NewEmailSendTask(email, subject, body, middleware.GetCorrelationID(c)); err == nil {
		if _, err := h.asynqClient.Enqueue(task, asynq.MaxRetry(3)); err != nil {
			logger.Error("enqueue review notification failed", slog.Any("error", err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": req.Decision})
}

type inviteRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Name       string `json:"name"`
	ResumeType string `json:"resume_type"`
}

// InviteCandidate 建立候选人账号与空白履历，并寄出邀请信。
func (h *ReviewHandler) InviteCandidate(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var req inviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	logger := middleware.LoggerFromContext(c).With(slog.String("candidate", req.Email))

	user, err := h.accounts.InviteCandidate(ctx, identity.Email, req.Email, req.Name, req.ResumeType)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrEmailTaken):
			Conflict(c, "email already exists")
		case errors.Is(err, account.ErrUnknownResumeType):
			BadRequest(c, "resume_type must be HQ or Branch")
		case sheetstore.IsUnreachable(err):
			logger.Error("workbook unreachable", slog.Any("error", err))
			Unavailable(c, "service unavailable")
		default:
			logger.Error("invite candidate failed", slog.Any("error", err))
			Internal(c, "failed to invite candidate")
		}
		return
	}

	subject, body := notify.InviteMessage(user.Name, user.Email, h.loginURL)
	if task, err := tasks.NewEmailSendTask(user.Email, subject, body, middleware.GetCorrelationID(c)); err == nil {
		if _, err := h.asynqClient.Enqueue(task, asynq.MaxRetry(3)); err != nil {
			logger.Error("enqueue invite email failed", slog.Any("error", err))
		}
	}

	c.JSON(http.StatusCreated, user)
}

type createStaffRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
	Role  string `json:"role" binding:"required"`
}

// CreateStaff 建立 PM 或管理员账号（仅管理员可操作）。
func (h *ReviewHandler) CreateStaff(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var req createStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	logger := middleware.LoggerFromContext(c).With(
		slog.String("staff", req.Email),
		slog.String("role", req.Role),
	)

	user, err := h.accounts.CreateStaff(ctx, identity.Email, req.Email, req.Name, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrEmailTaken):
			Conflict(c, "email already exists")
		case errors.Is(err, account.ErrUnknownRole):
			BadRequest(c, "role must be pm or admin")
		case sheetstore.IsUnreachable(err):
			logger.Error("workbook unreachable", slog.Any("error", err))
			Unavailable(c, "service unavailable")
		default:
			logger.Error("create staff failed", slog.Any("error", err))
			Internal(c, "failed to create staff account")
		}
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *ReviewHandler) replyStoreError(c *gin.Context, err error, fallback string) {
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
