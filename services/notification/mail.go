package notification

import (
	"context"
	"fmt"
	"net/smtp"

	"barberqueue/models"

	"github.com/domodwyer/mailyak/v3"
	"go.uber.org/zap"
)

type MailConfig struct {
	Host     string
	Port     int
	User     string
	Pass     string
	FromName string
}

// MailNotifier sends e-mail over SMTP. Without credentials it only logs what
// it would have sent.
type MailNotifier struct {
	cfg    MailConfig
	logger *zap.Logger
}

func NewMailNotifier(cfg MailConfig, logger *zap.Logger) *MailNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.FromName == "" {
		cfg.FromName = "BarberQueue"
	}
	return &MailNotifier{cfg: cfg, logger: logger}
}

func (m *MailNotifier) Configured() bool {
	return m.cfg.Host != "" && m.cfg.User != "" && m.cfg.Pass != ""
}

func (m *MailNotifier) Send(_ context.Context, n models.Notification) error {
	if n.To == "" {
		return nil
	}
	if !m.Configured() {
		m.logger.Warn("Email not configured, skipping send",
			zap.String("to", n.To), zap.String("subject", n.Subject))
		return nil
	}

	mail := mailyak.New(
		fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port),
		smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host),
	)
	mail.To(n.To)
	mail.From(m.cfg.User)
	mail.FromName(m.cfg.FromName)
	mail.Subject(n.Subject)
	mail.Plain().Set(n.Text)
	mail.HTML().Set(n.HTML)

	if err := mail.Send(); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", n.To, err)
	}
	m.logger.Info("Email sent", zap.String("to", n.To), zap.String("subject", n.Subject))
	return nil
}
