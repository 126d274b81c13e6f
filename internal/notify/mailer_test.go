package notify

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"gopkg.in/gomail.v2"

	"hiregate/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSendSimulatedWhenUnconfigured(t *testing.T) {
	m := NewMailer(config.SMTPConfig{Host: "smtp.gmail.com", Port: 587}, testLogger())

	if m.Configured() {
		t.Fatal("mailer should report unconfigured without sender credentials")
	}
	// 未配置时模拟寄出，视为成功。
	if !m.Send("ann@example.com", "主旨", "內文") {
		t.Fatal("simulated delivery should report success")
	}
}

func TestSendDeliversViaDialer(t *testing.T) {
	m := NewMailer(config.SMTPConfig{
		Host: "smtp.gmail.com", Port: 587, Sender: "hr@corp.com", Password: "app-pass",
	}, testLogger())

	var sent *gomail.Message
	m.dial = func(msg *gomail.Message) error {
		sent = msg
		return nil
	}

	if !m.Send("ann@example.com", "主旨", "內文") {
		t.Fatal("delivery should succeed")
	}
	if sent == nil {
		t.Fatal("dial was not invoked")
	}
	if got := sent.GetHeader("To"); len(got) != 1 || got[0] != "ann@example.com" {
		t.Fatalf("To = %v", got)
	}
}

func TestSendReportsFailure(t *testing.T) {
	m := NewMailer(config.SMTPConfig{
		Host: "smtp.gmail.com", Port: 587, Sender: "hr@corp.com", Password: "app-pass",
	}, testLogger())
	m.dial = func(*gomail.Message) error {
		return errors.New("connection refused")
	}

	if m.Send("ann@example.com", "主旨", "內文") {
		t.Fatal("failed delivery should report false")
	}
}

func TestInviteMessageContainsCredentials(t *testing.T) {
	subject, body := InviteMessage("Ann", "ann@example.com", "https://hire.example/login")

	if !strings.Contains(subject, "Ann") {
		t.Fatalf("subject = %q", subject)
	}
	if !strings.Contains(body, "https://hire.example/login") {
		t.Fatal("body missing login url")
	}
	// 預設密碼等於 email，邀請信需同時載明帳號與密碼。
	if strings.Count(body, "ann@example.com") != 2 {
		t.Fatalf("body should mention email twice (account and default password):\n%s", body)
	}
}

func TestReviewMessagesCarryComment(t *testing.T) {
	_, approved := ApprovedMessage("歡迎加入")
	if !strings.Contains(approved, "歡迎加入") {
		t.Fatal("approved body missing comment")
	}

	_, returned := ReturnedMessage("資料不全")
	if !strings.Contains(returned, "資料不全") {
		t.Fatal("returned body missing comment")
	}
}
