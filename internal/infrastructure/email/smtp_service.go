package email

import (
	"context"
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	"blog-backend/internal/config"
	"blog-backend/internal/shared"
	"blog-backend/pkg/logger"
)

var headerBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

type EmailService interface {
	SendSantaAssignedEmail(ctx context.Context, data shared.SantaAssignedPayload) error
}

// sendMailFunc matches smtp.SendMail.
type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
	fromName string
	auth     smtp.Auth
	send     sendMailFunc
}

// NewSMTPEmailService sends plain text mail through the configured relay.
// Auth is only used when a username is set (MailHog and friends need none).
func NewSMTPEmailService(cfg config.SMTPConfig) EmailService {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &smtpEmailService{
		smtpAddr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		smtpFrom: cfg.FromEmail,
		fromName: cfg.FromName,
		auth:     auth,
		send:     smtp.SendMail,
	}
}

func (s *smtpEmailService) SendSantaAssignedEmail(ctx context.Context, data shared.SantaAssignedPayload) error {
	if data.SantaEmail == "" {
		return fmt.Errorf("santa has no email address")
	}

	subject := fmt.Sprintf("You are the Santa of \"%s\"", data.ArticleTitle)
	body := fmt.Sprintf(`Hi %s,

%s just published "%s" and picked you as its Santa.
As a Santa you can now edit and delete articles on the blog.

Read it here: %s
`, data.SantaName, data.AuthorName, data.ArticleTitle, data.ArticleURL)

	if err := s.send(s.smtpAddr, s.auth, s.smtpFrom, []string{data.SantaEmail}, s.buildMessage(data.SantaEmail, subject, body)); err != nil {
		logger.Info("Failed to send email", map[string]interface{}{
			"error":     err.Error(),
			"to":        data.SantaEmail,
			"smtp_addr": s.smtpAddr,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// buildMessage drops line breaks from header values and Q-encodes the
// display name and subject.
func (s *smtpEmailService) buildMessage(to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", mime.QEncoding.Encode("utf-8", headerBreaks.Replace(s.fromName)), headerBreaks.Replace(s.smtpFrom))
	fmt.Fprintf(&b, "To: %s\r\n", headerBreaks.Replace(to))
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", headerBreaks.Replace(subject)))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
