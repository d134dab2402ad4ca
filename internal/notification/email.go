package notification

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/sandeshk25/gym-management-backend/config"
)

// Channel is a transport for outbound notifications.
type Channel interface {
	Send(recipients []string, subject string, body string) error
}

// EmailSender implements Channel using SMTP
type EmailSender struct {
	Host     string
	Port     string
	Username string
	Password string
	FromName string
	FromAddr string
}

func NewEmailSender(cfg *config.Config) *EmailSender {
	return &EmailSender{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		FromName: cfg.SMTPFromName,
		FromAddr: cfg.SMTPFromEmail,
	}
}

// Send delivers an HTML email to the recipients
func (e *EmailSender) Send(to []string, subject string, body string) error {
	from := fmt.Sprintf("%s <%s>", e.FromName, e.FromAddr)
	headers := map[string]string{
		"From":         from,
		"To":           strings.Join(to, ", "),
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=\"UTF-8\"",
	}

	var msgBuilder strings.Builder
	for k, v := range headers {
		msgBuilder.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	msgBuilder.WriteString("\r\n" + body)
	message := []byte(msgBuilder.String())

	addr := fmt.Sprintf("%s:%s", e.Host, e.Port)
	if err := e.sendMailWithTLS(addr, to, message); err != nil {
		fmt.Println("❌ Email send failed:", err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	fmt.Println("✅ Email sent successfully to:", to)
	return nil
}

func (e *EmailSender) sendMailWithTLS(addr string, to []string, message []byte) error {
	// Skip verification for Docker environments; the host is pinned via ServerName
	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
		ServerName:         e.Host,
	}

	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}
	defer client.Close()

	if err = client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	auth := smtp.PlainAuth("", e.Username, e.Password, e.Host)
	if err = client.Auth(auth); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	if err = client.Mail(e.FromAddr); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	for _, recipient := range to {
		if err = client.Rcpt(recipient); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", recipient, err)
		}
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}

	if _, err = writer.Write(message); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}

	if err = writer.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}

	return client.Quit()
}
