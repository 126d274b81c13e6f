package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"hiregate/internal/auth"
	"hiregate/internal/lifecycle"
	"hiregate/internal/record"
	"hiregate/internal/schema"
	"hiregate/internal/sheetstore"
)

type fakeStore struct {
	tables map[string][]sheetstore.Row
	// 注入的错误类别；非零时所有操作直接失败。
	failKind sheetstore.Kind
}

func newFakeStore() *fakeStore {
	return &fakeStore{tables: map[string][]sheetstore.Row{}}
}

func (s *fakeStore) fail(op, table string) error {
	return &sheetstore.Error{Kind: s.failKind, Op: op, Table: table, Err: fmt.Errorf("injected")}
}

func (s *fakeStore) LoadTable(_ context.Context, table *schema.Table) ([]sheetstore.Row, error) {
	if s.failKind != 0 {
		return nil, s.fail("load_table", table.Name)
	}
	return s.tables[table.Name], nil
}

func (s *fakeStore) FindRow(_ context.Context, table *schema.Table, keyValue string) (sheetstore.Row, error) {
	if s.failKind != 0 {
		return sheetstore.Row{}, s.fail("find_row", table.Name)
	}
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
	if s.failKind != 0 {
		return s.fail("write_fields", table.Name)
	}
	for i, row := range s.tables[table.Name] {
		if row.Index == rowIndex {
			for name, value := range fields {
				s.tables[table.Name][i].Values[name] = value
			}
			return nil
		}
	}
	return &sheetstore.Error{Kind: sheetstore.KindNotFound, Op: "write_fields", Table: table.Name, Err: fmt.Errorf("row %d", rowIndex)}
}

func (s *fakeStore) AppendRow(_ context.Context, table *schema.Table, values []string) error {
	if s.failKind != 0 {
		return s.fail("append_row", table.Name)
	}
	valueMap := make(map[string]string, table.Width())
	for i, col := range table.Columns {
		if i < len(values) {
			valueMap[col.Name] = values[i]
		}
	}
	s.tables[table.Name] = append(s.tables[table.Name], sheetstore.Row{
		Index:  len(s.tables[table.Name]) + 2,
		Values: valueMap,
	})
	return nil
}

func seedResume(t *testing.T, store *fakeStore, email, status string) {
	t.Helper()
	row, err := schema.Resumes.NewRow(map[string]string{"email": email, "status": status})
	if err != nil {
		t.Fatalf("build resume row: %v", err)
	}
	if err := store.AppendRow(context.Background(), &schema.Resumes, row); err != nil {
		t.Fatalf("append resume row: %v", err)
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testContext(t *testing.T, method, target, body string, identity *auth.Identity) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	c.Request = httptest.NewRequest(method, target, reader)
	if body != "" {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	if identity != nil {
		c.Set("identity", *identity)
	}
	return c, w
}

func TestGetMyResumeNotFound(t *testing.T) {
	store := newFakeStore()
	h := NewResumeHandler(lifecycle.NewService(store, testLogger()), nil, nil, nil, testLogger())

	c, w := testContext(t, http.MethodGet, "/v1/resume", "", &auth.Identity{
		Email: "ghost@example.com", Role: record.RoleCandidate,
	})
	h.GetMyResume(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404, body=%s", w.Code, w.Body.String())
	}
}

func TestGetMyResumeUnreachableStore(t *testing.T) {
	store := newFakeStore()
	store.failKind = sheetstore.KindUnreachable
	h := NewResumeHandler(lifecycle.NewService(store, testLogger()), nil, nil, nil, testLogger())

	c, w := testContext(t, http.MethodGet, "/v1/resume", "", &auth.Identity{
		Email: "ann@example.com", Role: record.RoleCandidate,
	})
	h.GetMyResume(c)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503, body=%s", w.Code, w.Body.String())
	}
}

func TestSubmitReportsMissingFields(t *testing.T) {
	store := newFakeStore()
	seedResume(t, store, "ann@example.com", record.StatusDraft)
	h := NewResumeHandler(lifecycle.NewService(store, testLogger()), nil, nil, nil, testLogger())

	c, w := testContext(t, http.MethodPost, "/v1/resume/submit", `{"resume_type":"HQ"}`, &auth.Identity{
		Email: "ann@example.com", Role: record.RoleCandidate,
	})
	h.Submit(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		MissingFields []string `json:"missing_fields"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(resp.MissingFields) != 2 {
		t.Fatalf("missing_fields = %v, want [name_cn phone]", resp.MissingFields)
	}
}

func TestSaveDraftRejectsApprovedResume(t *testing.T) {
	store := newFakeStore()
	seedResume(t, store, "ann@example.com", record.StatusApproved)
	h := NewResumeHandler(lifecycle.NewService(store, testLogger()), nil, nil, nil, testLogger())

	c, w := testContext(t, http.MethodPut, "/v1/resume/draft", `{"resume_type":"HQ"}`, &auth.Identity{
		Email: "ann@example.com", Role: record.RoleCandidate,
	})
	h.SaveDraft(c)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409, body=%s", w.Code, w.Body.String())
	}
}

func TestListResumesDegradesWhenUnreachable(t *testing.T) {
	store := newFakeStore()
	store.failKind = sheetstore.KindUnreachable
	h := NewReviewHandler(lifecycle.NewService(store, testLogger()), nil, nil, "", testLogger())

	c, w := testContext(t, http.MethodGet, "/v1/review/resumes", "", &auth.Identity{
		Email: "hr@corp.com", Role: record.RolePM,
	})
	h.ListResumes(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Items    []resumeListItem `json:"items"`
		Degraded bool             `json:"degraded"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !resp.Degraded || len(resp.Items) != 0 {
		t.Fatalf("resp = %+v, want degraded empty list", resp)
	}
}

func TestListResumesFiltersByStatus(t *testing.T) {
	store := newFakeStore()
	seedResume(t, store, "a@example.com", record.StatusSubmitted)
	seedResume(t, store, "b@example.com", record.StatusDraft)
	h := NewReviewHandler(lifecycle.NewService(store, testLogger()), nil, nil, "", testLogger())

	c, w := testContext(t, http.MethodGet, "/v1/review/resumes?status=Submitted", "", &auth.Identity{
		Email: "hr@corp.com", Role: record.RolePM,
	})
	h.ListResumes(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Items []resumeListItem `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].Email != "a@example.com" {
		t.Fatalf("items = %+v, want single submitted resume", resp.Items)
	}
}

func TestReviewRejectsUnknownDecision(t *testing.T) {
	store := newFakeStore()
	seedResume(t, store, "ann@example.com", record.StatusSubmitted)
	h := NewReviewHandler(lifecycle.NewService(store, testLogger()), nil, nil, "", testLogger())

	c, w := testContext(t, http.MethodPost, "/v1/review/resumes/ann@example.com/decision", `{"decision":"Maybe"}`, &auth.Identity{
		Email: "hr@corp.com", Role: record.RolePM,
	})
	c.Params = gin.Params{{Key: "email", Value: "ann@example.com"}}
	h.Review(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body=%s", w.Code, w.Body.String())
	}
}
