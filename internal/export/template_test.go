package export

import (
	"strings"
	"testing"

	"hiregate/internal/record"
)

func TestNormalizeLogo(t *testing.T) {
	cases := map[string]string{
		"":                          "",
		"  ":                        "",
		"https://cdn.example/a.png": "https://cdn.example/a.png",
		"data:image/png;base64,AAA": "data:image/png;base64,AAA",
		"iVBORw0KGgo=":              "data:image/png;base64,iVBORw0KGgo=",
	}
	for in, want := range cases {
		if got := NormalizeLogo(in); got != want {
			t.Errorf("NormalizeLogo(%q) = %q, want %q", in, got, want)
		}
	}
}

func sampleResume() record.Resume {
	r := record.Resume{
		Email:      "ann@example.com",
		Status:     record.StatusSubmitted,
		ResumeType: record.TypeHQ,
		Skills:     "Go, SQL",
		SelfIntro:  "多年餐飲經驗",
	}
	r.Identity.NameCN = "王小明"
	r.Identity.Phone = "0912345678"
	r.Education[0] = record.Education{School: "台灣大學", Major: "資工", Degree: "學士"}
	r.Employment[0] = record.Employment{Company: "範例公司", Title: "工程師"}
	return r
}

func TestRenderHTMLBasic(t *testing.T) {
	html, err := RenderHTML(sampleResume(), "")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{"王小明", "0912345678", "台灣大學", "範例公司", "Go, SQL"} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered html missing %q", want)
		}
	}
	if strings.Contains(html, "<img") {
		t.Error("logo img should be omitted when logo is empty")
	}
	if strings.Contains(html, "分店意願調查") {
		t.Error("branch section should be hidden for HQ resumes")
	}
	if strings.Contains(html, "面試安排") {
		t.Error("interview section should be hidden before scheduling")
	}
}

func TestRenderHTMLSkipsEmptyEntries(t *testing.T) {
	r := sampleResume()
	r.Education[1] = record.Education{Major: "  "}

	html, err := RenderHTML(r, "")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	// 只有一组学历有学校名，表格应只渲染一行数据。
	if got := strings.Count(html, "台灣大學"); got != 1 {
		t.Fatalf("education rows rendered %d times", got)
	}
}

func TestRenderHTMLBranchAndInterview(t *testing.T) {
	r := sampleResume()
	r.ResumeType = record.TypeBranch
	r.Branch = record.BranchSurvey{Region: "北區", Locations: "台北, 台中", Rotation: "yes"}
	r.Interview = record.Interview{Date: "2025-06-10", Time: "14:00", Manager: "林經理"}

	html, err := RenderHTML(r, "iVBORw0KGgo=")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "分店意願調查") {
		t.Error("branch section missing for Branch resume")
	}
	if !strings.Contains(html, "面試安排") {
		t.Error("interview section missing after scheduling")
	}
	if !strings.Contains(html, `src="data:image/png;base64,iVBORw0KGgo="`) {
		t.Error("logo src should carry data URI prefix")
	}
}
