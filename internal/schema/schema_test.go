package schema

import (
	"testing"
)

func testTable() *Table {
	return &Table{
		Name: "contacts",
		Key:  "email",
		Columns: []Column{
			{Name: "email", Header: "Email"},
			{Name: "name", Header: "Name"},
			{Name: "status", Header: "Status", Default: "New"},
		},
	}
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"  Email ":  "email",
		"STATUS":    "status",
		"name_cn":   "name_cn",
		"\tPhone\n": "phone",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPositionalResolver(t *testing.T) {
	table := testTable()
	r := table.PositionalResolver()

	pos, ok := r.Lookup("status")
	if !ok || pos != 3 {
		t.Fatalf("Lookup(status) = (%d, %v), want (3, true)", pos, ok)
	}
	if _, ok := r.Lookup("ghost"); ok {
		t.Fatal("Lookup(ghost) should not resolve")
	}
}

func TestHeaderResolverSurvivesReorderAndCase(t *testing.T) {
	table := testTable()
	// 列顺序与声明不同，且大小写/空白不规范。
	r := table.HeaderResolver([]string{" status ", "EMAIL", "Name"})

	pos, ok := r.Lookup("email")
	if !ok || pos != 2 {
		t.Fatalf("Lookup(email) = (%d, %v), want (2, true)", pos, ok)
	}
	pos, ok = r.Lookup("status")
	if !ok || pos != 1 {
		t.Fatalf("Lookup(status) = (%d, %v), want (1, true)", pos, ok)
	}
}

func TestHeaderResolverMissingColumns(t *testing.T) {
	table := testTable()
	r := table.HeaderResolver([]string{"Email"})

	if _, ok := r.Lookup("status"); ok {
		t.Fatal("status should be unprovisioned")
	}

	missing := table.Missing(r)
	if len(missing) != 2 {
		t.Fatalf("Missing = %v, want 2 entries", missing)
	}
}

func TestNewRowAppliesDefaultsAndOverrides(t *testing.T) {
	table := testTable()

	row, err := table.NewRow(map[string]string{"email": "a@b.c"})
	if err != nil {
		t.Fatalf("NewRow: %v", err)
	}
	want := []string{"a@b.c", "", "New"}
	for i := range want {
		if row[i] != want[i] {
			t.Fatalf("row = %v, want %v", row, want)
		}
	}
}

func TestNewRowRejectsUnknownField(t *testing.T) {
	table := testTable()
	if _, err := table.NewRow(map[string]string{"emial": "typo"}); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestResumesTableDefaults(t *testing.T) {
	if Resumes.Key != "email" {
		t.Fatalf("Resumes.Key = %q, want email", Resumes.Key)
	}
	if got := Resumes.Default("status"); got != "New" {
		t.Fatalf("Default(status) = %q, want New", got)
	}
	if got := Resumes.Default("resume_type"); got != "HQ" {
		t.Fatalf("Default(resume_type) = %q, want HQ", got)
	}

	seen := make(map[string]struct{}, Resumes.Width())
	for _, col := range Resumes.Columns {
		if _, dup := seen[col.Name]; dup {
			t.Fatalf("duplicate column name %q", col.Name)
		}
		seen[col.Name] = struct{}{}
	}
}
