package utils

import (
	"gopkg.in/gomail.v2"

	"backend/config"
)

func SendEmail(settings *config.Settings, to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", settings.MailFrom)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(settings.SMTPHost, settings.SMTPPort, settings.SMTPUser, settings.SMTPPassword)

	return d.DialAndSend(m)
}
