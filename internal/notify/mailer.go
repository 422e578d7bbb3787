package notify

import (
	"fmt"
	"net/smtp"

	"github.com/sanisamoj/Borai-sub000/internal/config"
)

type SMTPMailer struct {
	conf *config.MailConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(conf *config.MailConfig) *SMTPMailer {
	return &SMTPMailer{
		conf: conf,
		send: smtp.SendMail,
	}
}

func (m *SMTPMailer) SendEmail(to, subject, html string) error {
	auth := smtp.PlainAuth("", m.conf.Username, m.conf.Password, m.conf.Host)
	msg := []byte(fmt.Sprintf(
		"To: %s\r\n"+
			"From: %s <%s>\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n"+
			"%s\r\n",
		to, m.conf.SenderName, m.conf.SenderEmail, subject, html))

	addr := fmt.Sprintf("%s:%d", m.conf.Host, m.conf.Port)
	if err := m.send(addr, auth, m.conf.SenderEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp.SendMail -> %w", err)
	}
	return nil
}
