// Package notify mails exported files to the configured address.
package notify

import (
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/smtp"
	"path/filepath"
	"strings"

	"github.com/jordan-wright/email"
	"github.com/qepting91/cs2-market-tracker/internal/config"
)

var ErrEmailNotConfigured = errors.New("email credentials missing: set EMAIL_USER, EMAIL_PASS and EMAIL_TO")

// implicitTLSPort is the SMTPS port; other ports are sent with STARTTLS.
const implicitTLSPort = 465

// NewFileEmail builds the message carrying path as an attachment.
func NewFileEmail(cfg config.EmailConfig, path string) (*email.Email, error) {
	if cfg.User == "" || cfg.Password == "" || cfg.To == "" {
		return nil, ErrEmailNotConfigured
	}

	name := filepath.Base(path)
	mail := email.NewEmail()
	mail.From = cfg.User
	mail.To = []string{cfg.To}
	mail.Subject = fmt.Sprintf("CS2 Inventory File: %s", name)
	mail.Text = []byte(fmt.Sprintf("Attached is your CS2 inventory file: %s", name))

	if _, err := mail.AttachFile(path); err != nil {
		return nil, fmt.Errorf("attach %s: %w", path, err)
	}
	return mail, nil
}

// SendFile mails path to cfg.To.
func SendFile(cfg config.EmailConfig, path string) error {
	mail, err := NewFileEmail(cfg, path)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	auth := smtp.PlainAuth("", cfg.User, cfg.Password, cfg.Host)

	if cfg.Port == implicitTLSPort {
		err = mail.SendWithTLS(addr, auth, &tls.Config{ServerName: cfg.Host})
	} else {
		err = mail.Send(addr, auth)
		if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
			err = mail.Send(addr, nil)
		}
	}
	if err != nil {
		return fmt.Errorf("send email via %s: %w", addr, err)
	}

	slog.Info("email sent", "to", cfg.To, "file", filepath.Base(path))
	return nil
}
