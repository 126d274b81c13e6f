package export

import (
	"bytes"
	"html/template"
	"strings"

	"hiregate/internal/record"
)

// NormalizeLogo 把设置表里的 logo 值整理成可渲染的 src：
// 外链 URL 与 data URI 原样返回，裸 base64 自动补上 data URI 前缀。
func NormalizeLogo(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if strings.HasPrefix(value, "http") || strings.HasPrefix(value, "data:image") {
		return value
	}
	return "data:image/png;base64," + value
}

type templateData struct {
	Resume     record.Resume
	LogoSrc    string
	IsBranch   bool
	Education  []record.Education
	Employment []record.Employment
}

// RenderHTML 把一份完整履历渲染成固定版式的可打印 HTML。
// 纯函数：除读取记录与可选的 logo 外没有任何 I/O；
// logo 缺失时直接省略，不影响其余版面。
func RenderHTML(r record.Resume, logo string) (string, error) {
	data := templateData{
		Resume:   r,
		LogoSrc:  NormalizeLogo(logo),
		IsBranch: r.ResumeType == record.TypeBranch,
	}
	for _, edu := range r.Education {
		if strings.TrimSpace(edu.School) != "" {
			data.Education = append(data.Education, edu)
		}
	}
	for _, exp := range r.Employment {
		if strings.TrimSpace(exp.Company) != "" {
			data.Employment = append(data.Employment, exp)
		}
	}

	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var documentTemplate = template.Must(template.New("resume").Parse(`<!DOCTYPE html>
<html lang="zh-Hant">
<head>
<meta charset="utf-8">
<style>
  @page { size: A4; margin: 1.2cm; }
  body { font-family: "Noto Sans TC", "PingFang TC", sans-serif; font-size: 10.5pt; color: #222; }
  header { display: flex; align-items: center; justify-content: space-between; border-bottom: 2px solid #333; padding-bottom: 8px; }
  header img { max-height: 48px; }
  h1 { font-size: 16pt; margin: 0; }
  h2 { font-size: 12pt; border-left: 4px solid #333; padding-left: 8px; margin: 18px 0 6px; }
  table { width: 100%; border-collapse: collapse; }
  td, th { border: 1px solid #bbb; padding: 4px 6px; text-align: left; vertical-align: top; }
  th { background: #f0f0f0; white-space: nowrap; }
  .intro { white-space: pre-wrap; }
</style>
</head>
<body>
<header>
  <h1>應徵人員履歷表</h1>
  {{if .LogoSrc}}<img src="{{.LogoSrc}}" alt="logo">{{end}}
</header>

<h2>基本資料</h2>
<table>
  <tr><th>中文姓名</th><td>{{.Resume.Identity.NameCN}}</td><th>英文姓名</th><td>{{.Resume.Identity.NameEN}}</td></tr>
  <tr><th>聯絡電話</th><td>{{.Resume.Identity.Phone}}</td><th>出生年月日</th><td>{{.Resume.Identity.DOB}}</td></tr>
  <tr><th>通訊地址</th><td colspan="3">{{.Resume.Identity.Address}}</td></tr>
  <tr><th>身高 / 體重</th><td>{{.Resume.Identity.Height}} / {{.Resume.Identity.Weight}}</td><th>血型 / 婚姻</th><td>{{.Resume.Identity.BloodType}} / {{.Resume.Identity.MaritalStatus}}</td></tr>
  <tr><th>緊急聯絡人</th><td>{{.Resume.Identity.EmergencyName}}（{{.Resume.Identity.EmergencyRelation}}）</td><th>聯絡人電話</th><td>{{.Resume.Identity.EmergencyPhone}}</td></tr>
</table>

{{if .Education}}
<h2>學歷</h2>
<table>
  <tr><th>學校</th><th>科系</th><th>學位</th><th>狀態</th><th>起</th><th>迄</th></tr>
  {{range .Education}}
  <tr><td>{{.School}}</td><td>{{.Major}}</td><td>{{.Degree}}</td><td>{{.State}}</td><td>{{.Start}}</td><td>{{.End}}</td></tr>
  {{end}}
</table>
{{end}}

{{if .Employment}}
<h2>工作經歷</h2>
<table>
  <tr><th>公司</th><th>職稱</th><th>起</th><th>迄</th><th>薪資</th><th>主管</th><th>離職原因</th></tr>
  {{range .Employment}}
  <tr><td>{{.Company}}</td><td>{{.Title}}</td><td>{{.Start}}</td><td>{{.End}}</td><td>{{.Salary}}</td><td>{{.Supervisor}}</td><td>{{.LeavingReason}}</td></tr>
  {{end}}
</table>
{{end}}

<h2>專業技能</h2>
<div class="intro">{{.Resume.Skills}}</div>

<h2>自我介紹</h2>
<div class="intro">{{.Resume.SelfIntro}}</div>

{{if .IsBranch}}
<h2>分店意願調查</h2>
<table>
  <tr><th>希望區域</th><td>{{.Resume.Branch.Region}}</td><th>希望據點</th><td>{{.Resume.Branch.Locations}}</td></tr>
  <tr><th>可否輪調</th><td>{{.Resume.Branch.Rotation}}</td><th>可否輪班</th><td>{{.Resume.Branch.Shift}}</td></tr>
</table>
{{end}}

<h2>其他調查</h2>
<table>
  <tr><th>得知管道</th><td>{{.Resume.Survey.Source}}</td><th>介紹人</th><td>{{.Resume.Survey.Referrer}}</td></tr>
  <tr><th>教學經驗</th><td>{{.Resume.Survey.TeachingExp}}</td><th>兵役狀況</th><td>{{.Resume.Survey.Military}}</td></tr>
  <tr><th>健康狀況</th><td>{{.Resume.Survey.Health}}</td><th>通勤方式</th><td>{{.Resume.Survey.Commute}}</td></tr>
</table>

{{if .Resume.Interview.Date}}
<h2>面試安排</h2>
<table>
  <tr><th>日期</th><td>{{.Resume.Interview.Date}} {{.Resume.Interview.Time}}</td><th>地點</th><td>{{.Resume.Interview.Location}}</td></tr>
  <tr><th>部門</th><td>{{.Resume.Interview.Department}}</td><th>主管</th><td>{{.Resume.Interview.Manager}}</td></tr>
  <tr><th>備註</th><td colspan="3">{{.Resume.Interview.Notes}}</td></tr>
</table>
{{end}}
</body>
</html>
`))
