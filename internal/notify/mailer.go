package notify

import (
	"log/slog"

	"gopkg.in/gomail.v2"

	"hiregate/internal/config"
)

// Mailer 负责尽力而为的邮件投递。
// 发信配置缺失时降级为“模拟寄出”并返回成功；投递失败只记日志、
// 返回 false——侧信道永远不阻断主流程。
type Mailer struct {
	host     string
	port     int
	sender   string
	password string
	logger   *slog.Logger

	// 可注入的投递函数，测试时替换。
	dial func(msg *gomail.Message) error
}

// NewMailer 构造邮件服务。
func NewMailer(cfg config.SMTPConfig, logger *slog.Logger) *Mailer {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Mailer{
		host:     cfg.Host,
		port:     cfg.Port,
		sender:   cfg.Sender,
		password: cfg.Password,
		logger:   logger,
	}
	m.dial = func(msg *gomail.Message) error {
		d := gomail.NewDialer(m.host, m.port, m.sender, m.password)
		return d.DialAndSend(msg)
	}
	return m
}

// Configured 报告发信配置是否齐备。
func (m *Mailer) Configured() bool {
	return m.sender != "" && m.password != ""
}

// Send 投递一封纯文本邮件，返回是否成功。
func (m *Mailer) Send(to, subject, body string) bool {
	if !m.Configured() {
		m.logger.Info("mail delivery simulated (smtp not configured)",
			slog.String("to", to),
			slog.String("subject", subject),
		)
		return true
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dial(msg); err != nil {
		m.logger.Error("mail delivery failed",
			slog.String("to", to),
			slog.String("subject", subject),
			slog.Any("error", err),
		)
		return false
	}
	return true
}
