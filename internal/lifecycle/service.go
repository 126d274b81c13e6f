package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"hiregate/internal/record"
	"hiregate/internal/schema"
	"hiregate/internal/sheetstore"
)

// ErrApprovedLocked：Approved 是硬终态，候选人侧的暂存/送审一律拒绝。
// HR 仍可通过 Review 强制改判（纠错是合法操作）。
var ErrApprovedLocked = errors.New("resume already approved")

// ValidationError 列出送审时缺失的必填字段。
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// Decision 审核结论的合法取值。
func ValidDecision(decision string) bool {
	return decision == record.StatusApproved || decision == record.StatusReturned
}

// Service 实现履历状态机：
// New → Draft → Submitted → {Approved | Returned}，Returned 可再编辑重送。
type Service struct {
	store  sheetstore.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewService 构造生命周期服务。
func NewService(store sheetstore.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Get 按 email 取回一份履历。
func (s *Service) Get(ctx context.Context, email string) (record.Resume, error) {
	row, err := s.store.FindRow(ctx, &schema.Resumes, email)
	if err != nil {
		return record.Resume{}, err
	}
	return record.ResumeFromRow(row), nil
}

// List 取回全部履历，供审核列表使用。
// 后端不可达时如何降级（例如渲染空列表）由调用方按错误类别决定。
func (s *Service) List(ctx context.Context) ([]record.Resume, error) {
	rows, err := s.store.LoadTable(ctx, &schema.Resumes)
	if err != nil {
		return nil, err
	}
	resumes := make([]record.Resume, 0, len(rows))
	for _, row := range rows {
		resumes = append(resumes, record.ResumeFromRow(row))
	}
	return resumes, nil
}

// SaveDraft 合并表单字段并置状态为 Draft。内容不做校验，空字段照收。
func (s *Service) SaveDraft(ctx context.Context, email string, form record.Form) error {
	return s.writeForm(ctx, email, form, record.StatusDraft)
}

// Submit 校验必填字段后合并表单并置状态为 Submitted。
// 校验集中在核心层：中文姓名与电话必填；Branch 类型且愿意轮调时必须选择地点。
func (s *Service) Submit(ctx context.Context, email string, form record.Form) error {
	var missing []string
	if strings.TrimSpace(form.Identity.NameCN) == "" {
		missing = append(missing, "name_cn")
	}
	if strings.TrimSpace(form.Identity.Phone) == "" {
		missing = append(missing, "phone")
	}
	if form.ResumeType == record.TypeBranch &&
		schema.Normalize(form.Branch.Rotation) == "yes" &&
		strings.TrimSpace(form.Branch.Locations) == "" {
		missing = append(missing, "branch_locations")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}

	return s.writeForm(ctx, email, form, record.StatusSubmitted)
}

// Review 写入审核结论。不设转移前置条件：任何状态都可被强制改判。
// Approved 时附带写入面试安排；Returned 只写评语。
func (s *Service) Review(ctx context.Context, email, decision, comment string, interview *record.Interview) error {
	if !ValidDecision(decision) {
		return fmt.Errorf("invalid review decision %q", decision)
	}

	row, err := s.store.FindRow(ctx, &schema.Resumes, email)
	if err != nil {
		return err
	}

	fields := map[string]string{
		"status":     decision,
		"hr_comment": comment,
		"updated_at": s.timestamp(),
	}
	if decision == record.StatusApproved && interview != nil {
		for name, value := range interview.Fields() {
			fields[name] = value
		}
	}

	if err := s.store.WriteFields(ctx, &schema.Resumes, row.Index, fields); err != nil {
		return err
	}

	s.logger.Info("resume reviewed",
		slog.String("email", email),
		slog.String("decision", decision),
	)
	return nil
}

func (s *Service) writeForm(ctx context.Context, email string, form record.Form, status string) error {
	row, err := s.store.FindRow(ctx, &schema.Resumes, email)
	if err != nil {
		return err
	}
	if row.Get("status") == record.StatusApproved {
		return ErrApprovedLocked
	}

	fields := form.Fields()
	fields["status"] = status
	fields["updated_at"] = s.timestamp()

	if err := s.store.WriteFields(ctx, &schema.Resumes, row.Index, fields); err != nil {
		return err
	}

	s.logger.Info("resume saved",
		slog.String("email", email),
		slog.String("status", status),
	)
	return nil
}

func (s *Service) timestamp() string {
	return s.now().Format("2006-01-02 15:04:05")
}
