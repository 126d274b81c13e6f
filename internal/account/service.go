package account

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

var (
	// ErrInvalidCredentials 覆盖“账号不存在”与“密码不符”两种情况，
	// 对外不区分，避免暴露账号是否存在。
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken 邀请前置检查命中已有账号。
	// 检查与追加之间存在竞态窗口，按尽力而为处理，不做存储层唯一约束。
	ErrEmailTaken = errors.New("email already exists")

	ErrUnknownRole       = errors.New("unknown role")
	ErrUnknownResumeType = errors.New("unknown resume type")
)

// Service 管理账号与口令：建号、登录校验、改密。
type Service struct {
	store  sheetstore.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewService 构造账号服务。
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

// Authenticate 校验登录：email 两侧 trim+小写后匹配，密码逐字节精确比较。
func (s *Service) Authenticate(ctx context.Context, email, password string) (record.User, error) {
	row, err := s.store.FindRow(ctx, &schema.Users, email)
	if err != nil {
		if sheetstore.IsNotFound(err) {
			return record.User{}, ErrInvalidCredentials
		}
		return record.User{}, fmt.Errorf("find user: %w", err)
	}

	user := record.UserFromRow(row)
	if user.Password != password {
		return record.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// InviteCandidate 建立候选人账号（密码默认等于 email），
// 并同时追加一行状态为 New、其余字段为默认值的履历。
func (s *Service) InviteCandidate(ctx context.Context, inviterEmail, email, name, resumeType string) (record.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return record.User{}, errors.New("candidate email is required")
	}
	switch resumeType {
	case record.TypeHQ, record.TypeBranch:
	case "":
		resumeType = record.TypeHQ
	default:
		return record.User{}, fmt.Errorf("%w: %q", ErrUnknownResumeType, resumeType)
	}

	if err := s.ensureAbsent(ctx, email); err != nil {
		return record.User{}, err
	}

	user := record.User{
		Email:        email,
		Password:     email,
		Name:         name,
		Role:         record.RoleCandidate,
		CreatorEmail: inviterEmail,
		CreatedAt:    s.now().Format("2006-01-02"),
	}
	if err := s.appendUser(ctx, user); err != nil {
		return record.User{}, err
	}

	resumeRow, err := schema.Resumes.NewRow(map[string]string{
		"email":       email,
		"status":      record.StatusNew,
		"resume_type": resumeType,
		"name_cn":     name,
		"created_at":  user.CreatedAt,
	})
	if err != nil {
		return record.User{}, fmt.Errorf("build resume row: %w", err)
	}
	if err := s.store.AppendRow(ctx, &schema.Resumes, resumeRow); err != nil {
		return record.User{}, fmt.Errorf("append resume row: %w", err)
	}

	s.logger.Info("candidate invited",
		slog.String("email", email),
		slog.String("inviter", inviterEmail),
		slog.String("resume_type", resumeType),
	)
	return user, nil
}

// CreateStaff 建立 PM/管理员账号，不建立履历行。
func (s *Service) CreateStaff(ctx context.Context, inviterEmail, email, name, role string) (record.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return record.User{}, errors.New("staff email is required")
	}
	switch role {
	case record.RolePM, record.RoleAdmin:
	default:
		return record.User{}, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	if err := s.ensureAbsent(ctx, email); err != nil {
		return record.User{}, err
	}

	user := record.User{
		Email:        email,
		Password:     email,
		Name:         name,
		Role:         role,
		CreatorEmail: inviterEmail,
		CreatedAt:    s.now().Format("2006-01-02"),
	}
	if err := s.appendUser(ctx, user); err != nil {
		return record.User{}, err
	}

	s.logger.Info("staff account created",
		slog.String("email", email),
		slog.String("role", role),
		slog.String("inviter", inviterEmail),
	)
	return user, nil
}

// ChangePassword 原地覆盖密码字段。
func (s *Service) ChangePassword(ctx context.Context, email, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return errors.New("new password is required")
	}

	row, err := s.store.FindRow(ctx, &schema.Users, email)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if err := s.store.WriteFields(ctx, &schema.Users, row.Index, map[string]string{
		"password": newPassword,
	}); err != nil {
		return fmt.Errorf("write password: %w", err)
	}
	return nil
}

func (s *Service) ensureAbsent(ctx context.Context, email string) error {
	_, err := s.store.FindRow(ctx, &schema.Users, email)
	switch {
	case err == nil:
		return ErrEmailTaken
	case sheetstore.IsNotFound(err):
		return nil
	default:
		return fmt.Errorf("check existing user: %w", err)
	}
}

func (s *Service) appendUser(ctx context.Context, user record.User) error {
	row, err := schema.Users.NewRow(user.Values())
	if err != nil {
		return fmt.Errorf("build user row: %w", err)
	}
	if err := s.store.AppendRow(ctx, &schema.Users, row); err != nil {
		return fmt.Errorf("append user row: %w", err)
	}
	return nil
}
