package sheetstore

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"hiregate/internal/schema"
)

var contactsTable = schema.Table{
	Name: "contacts",
	Key:  "email",
	Columns: []schema.Column{
		{Name: "email", Header: "Email"},
		{Name: "name", Header: "Name"},
		{Name: "status", Header: "Status", Default: "New"},
		{Name: "note", Header: "Note"},
	},
}

func newTestStore(t *testing.T, opts ...Option) *ExcelStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.xlsx")
	if err := CreateWorkbook(path, &contactsTable); err != nil {
		t.Fatalf("create workbook: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewExcelStore(path, logger, opts...)
}

func appendContact(t *testing.T, store *ExcelStore, overrides map[string]string) {
	t.Helper()
	row, err := contactsTable.NewRow(overrides)
	if err != nil {
		t.Fatalf("build row: %v", err)
	}
	if err := store.AppendRow(context.Background(), &contactsTable, row); err != nil {
		t.Fatalf("append row: %v", err)
	}
}

func TestAppendAndLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	appendContact(t, store, map[string]string{"email": "a@example.com", "name": "Alice"})
	appendContact(t, store, map[string]string{"email": "b@example.com", "name": "Bob", "status": "Draft"})

	rows, err := store.LoadTable(ctx, &contactsTable)
	if err != nil {
		t.Fatalf("load table: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Index != 2 || rows[1].Index != 3 {
		t.Fatalf("row indexes = %d,%d, want 2,3", rows[0].Index, rows[1].Index)
	}
	if rows[0].Get("status") != "New" {
		t.Fatalf("default status = %q, want New", rows[0].Get("status"))
	}
	if rows[1].Get("status") != "Draft" {
		t.Fatalf("status = %q, want Draft", rows[1].Get("status"))
	}
}

func TestFindRowIsCaseInsensitive(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	appendContact(t, store, map[string]string{"email": "Alice@Example.COM", "name": "Alice"})

	row, err := store.FindRow(ctx, &contactsTable, "  alice@example.com ")
	if err != nil {
		t.Fatalf("find row: %v", err)
	}
	if row.Get("name") != "Alice" {
		t.Fatalf("name = %q, want Alice", row.Get("name"))
	}
}

func TestFindRowNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.FindRow(context.Background(), &contactsTable, "ghost@example.com")
	if !IsNotFound(err) {
		t.Fatalf("err = %v, want not-found kind", err)
	}
}

func TestMissingWorkbookIsUnreachable(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := NewExcelStore(filepath.Join(t.TempDir(), "missing.xlsx"), logger)

	_, err := store.LoadTable(context.Background(), &contactsTable)
	if !IsUnreachable(err) {
		t.Fatalf("err = %v, want unreachable kind", err)
	}
}

func TestWriteFieldsPreservesUntouchedCells(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	appendContact(t, store, map[string]string{
		"email":  "a@example.com",
		"name":   "Alice",
		"status": "Draft",
		"note":   "keep me",
	})

	row, err := store.FindRow(ctx, &contactsTable, "a@example.com")
	if err != nil {
		t.Fatalf("find row: %v", err)
	}
	if err := store.WriteFields(ctx, &contactsTable, row.Index, map[string]string{
		"status": "Submitted",
	}); err != nil {
		t.Fatalf("write fields: %v", err)
	}

	updated, err := store.FindRow(ctx, &contactsTable, "a@example.com")
	if err != nil {
		t.Fatalf("reload row: %v", err)
	}
	if updated.Get("status") != "Submitted" {
		t.Fatalf("status = %q, want Submitted", updated.Get("status"))
	}
	if updated.Get("note") != "keep me" {
		t.Fatalf("note = %q, untouched cell was clobbered", updated.Get("note"))
	}
}

func TestWriteFieldsRejectsHeaderRow(t *testing.T) {
	store := newTestStore(t)

	err := store.WriteFields(context.Background(), &contactsTable, 1, map[string]string{"status": "X"})
	if KindOf(err) != KindInvalid {
		t.Fatalf("err = %v, want invalid kind", err)
	}
}

func TestWriteFieldsSkipsUnprovisionedColumn(t *testing.T) {
	// 表头里去掉 note 列，模拟尚未开通的字段。
	trimmed := schema.Table{
		Name: "contacts",
		Key:  "email",
		Columns: []schema.Column{
			{Name: "email", Header: "Email"},
			{Name: "name", Header: "Name"},
			{Name: "status", Header: "Status", Default: "New"},
		},
	}
	path := filepath.Join(t.TempDir(), "store.xlsx")
	if err := CreateWorkbook(path, &trimmed); err != nil {
		t.Fatalf("create workbook: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := NewExcelStore(path, logger)
	ctx := context.Background()

	row, err := trimmed.NewRow(map[string]string{"email": "a@example.com"})
	if err != nil {
		t.Fatalf("build row: %v", err)
	}
	if err := store.AppendRow(ctx, &trimmed, row); err != nil {
		t.Fatalf("append row: %v", err)
	}

	// note 在完整声明中存在，但此工作簿没有对应表头。
	if err := store.WriteFields(ctx, &contactsTable, 2, map[string]string{
		"status": "Draft",
		"note":   "dropped silently",
	}); err != nil {
		t.Fatalf("write fields: %v", err)
	}

	got, err := store.FindRow(ctx, &contactsTable, "a@example.com")
	if err != nil {
		t.Fatalf("find row: %v", err)
	}
	if got.Get("status") != "Draft" {
		t.Fatalf("status = %q, want Draft", got.Get("status"))
	}
	if got.Get("note") != "" {
		t.Fatalf("note = %q, want empty for unprovisioned column", got.Get("note"))
	}
}

func TestValidateHeadersReportsMissing(t *testing.T) {
	store := newTestStore(t)

	wider := schema.Table{
		Name: "contacts",
		Key:  "email",
		Columns: append([]schema.Column{}, append(contactsTable.Columns, schema.Column{
			Name: "phone", Header: "Phone",
		})...),
	}

	missing, err := store.ValidateHeaders(context.Background(), &wider)
	if err != nil {
		t.Fatalf("validate headers: %v", err)
	}
	if len(missing) != 1 || missing[0] != "phone" {
		t.Fatalf("missing = %v, want [phone]", missing)
	}
}

func TestPositionalResolutionIgnoresHeaders(t *testing.T) {
	store := newTestStore(t, WithPositionalResolution())
	ctx := context.Background()

	appendContact(t, store, map[string]string{"email": "a@example.com", "name": "Alice"})

	row, err := store.FindRow(ctx, &contactsTable, "a@example.com")
	if err != nil {
		t.Fatalf("find row: %v", err)
	}
	if row.Get("name") != "Alice" {
		t.Fatalf("name = %q, want Alice", row.Get("name"))
	}
}
