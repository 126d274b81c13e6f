package account

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"hiregate/internal/record"
	"hiregate/internal/schema"
	"hiregate/internal/sheetstore"
)

type fakeStore struct {
	tables map[string][]sheetstore.Row
}

func newFakeStore() *fakeStore {
	return &fakeStore{tables: map[string][]sheetstore.Row{}}
}

func (s *fakeStore) LoadTable(_ context.Context, table *schema.Table) ([]sheetstore.Row, error) {
	return s.tables[table.Name], nil
}

func (s *fakeStore) FindRow(_ context.Context, table *schema.Table, keyValue string) (sheetstore.Row, error) {
	want := schema.Normalize(keyValue)
	for _, row := range s.tables[table.Name] {
		if schema.Normalize(row.Get(table.Key)) == want {
			return row, nil
		}
	}
	return sheetstore.Row{}, &sheetstore.Error{
		Kind:  sheetstore.KindNotFound,
		Op:    "find_row",
		Table: table.Name,
		Err:   fmt.Errorf("no row with %s=%q", table.Key, keyValue),
	}
}

func (s *fakeStore) WriteFields(_ context.Context, table *schema.Table, rowIndex int, fields map[string]string) error {
	for i, row := range s.tables[table.Name] {
		if row.Index != rowIndex {
			continue
		}
		for name, value := range fields {
			s.tables[table.Name][i].Values[name] = value
		}
		return nil
	}
	return &sheetstore.Error{
		Kind:  sheetstore.KindNotFound,
		Op:    "write_fields",
		Table: table.Name,
		Err:   fmt.Errorf("row %d not found", rowIndex),
	}
}

func (s *fakeStore) AppendRow(_ context.Context, table *schema.Table, values []string) error {
	valueMap := make(map[string]string, table.Width())
	for i, col := range table.Columns {
		if i < len(values) {
			valueMap[col.Name] = values[i]
		} else {
			valueMap[col.Name] = ""
		}
	}
	s.tables[table.Name] = append(s.tables[table.Name], sheetstore.Row{
		Index:  len(s.tables[table.Name]) + 2,
		Values: valueMap,
	})
	return nil
}

func newTestService(store sheetstore.Store) *Service {
	svc := NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestAuthenticate(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	if _, err := svc.InviteCandidate(ctx, "hr@corp.com", "Ann@Example.com", "Ann", ""); err != nil {
		t.Fatalf("invite: %v", err)
	}

	// 邀请后默认密码等于 email；email 匹配不区分大小写。
	user, err := svc.Authenticate(ctx, "  ann@example.COM ", "Ann@Example.com")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.Role != record.RoleCandidate {
		t.Fatalf("role = %q, want candidate", user.Role)
	}

	if _, err := svc.Authenticate(ctx, "ann@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Authenticate(ctx, "ghost@example.com", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestInviteCandidateCreatesAccountAndResume(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	user, err := svc.InviteCandidate(ctx, "hr@corp.com", "ann@example.com", "Ann", record.TypeBranch)
	if err != nil {
		t.Fatalf("invite: %v", err)
	}
	if user.CreatorEmail != "hr@corp.com" {
		t.Fatalf("creator = %q, want hr@corp.com", user.CreatorEmail)
	}
	if user.CreatedAt != "2025-06-01" {
		t.Fatalf("created_at = %q, want 2025-06-01", user.CreatedAt)
	}

	resumeRow, err := store.FindRow(ctx, &schema.Resumes, "ann@example.com")
	if err != nil {
		t.Fatalf("find resume row: %v", err)
	}
	if resumeRow.Get("status") != record.StatusNew {
		t.Fatalf("status = %q, want New", resumeRow.Get("status"))
	}
	if resumeRow.Get("resume_type") != record.TypeBranch {
		t.Fatalf("resume_type = %q, want Branch", resumeRow.Get("resume_type"))
	}
	if resumeRow.Get("name_cn") != "Ann" {
		t.Fatalf("name_cn = %q, want Ann", resumeRow.Get("name_cn"))
	}
}

func TestInviteCandidateRejectsDuplicates(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	if _, err := svc.InviteCandidate(ctx, "hr@corp.com", "ann@example.com", "Ann", ""); err != nil {
		t.Fatalf("first invite: %v", err)
	}
	if _, err := svc.InviteCandidate(ctx, "hr@corp.com", "ANN@example.com", "Ann", ""); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestInviteCandidateRejectsUnknownResumeType(t *testing.T) {
	svc := newTestService(newFakeStore())

	if _, err := svc.InviteCandidate(context.Background(), "hr@corp.com", "ann@example.com", "Ann", "Remote"); !errors.Is(err, ErrUnknownResumeType) {
		t.Fatalf("err = %v, want ErrUnknownResumeType", err)
	}
}

func TestCreateStaff(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	user, err := svc.CreateStaff(ctx, "admin@corp.com", "pm@corp.com", "PM", record.RolePM)
	if err != nil {
		t.Fatalf("create staff: %v", err)
	}
	if user.Role != record.RolePM {
		t.Fatalf("role = %q, want pm", user.Role)
	}

	// 员工账号不附带履历行。
	if _, err := store.FindRow(ctx, &schema.Resumes, "pm@corp.com"); !sheetstore.IsNotFound(err) {
		t.Fatalf("err = %v, want not-found for resume row", err)
	}

	if _, err := svc.CreateStaff(ctx, "admin@corp.com", "x@corp.com", "X", "superuser"); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("err = %v, want ErrUnknownRole", err)
	}
}

func TestChangePassword(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	if _, err := svc.InviteCandidate(ctx, "hr@corp.com", "ann@example.com", "Ann", ""); err != nil {
		t.Fatalf("invite: %v", err)
	}
	if err := svc.ChangePassword(ctx, "ann@example.com", "s3cret-pass"); err != nil {
		t.Fatalf("change password: %v", err)
	}

	if _, err := svc.Authenticate(ctx, "ann@example.com", "ann@example.com"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password should no longer work, err = %v", err)
	}
	if _, err := svc.Authenticate(ctx, "ann@example.com", "s3cret-pass"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}
