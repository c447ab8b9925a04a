package notify

import (
	"context"
	"errors"

	"gopkg.in/gomail.v2"
)

// Email delivers messages over SMTP with STARTTLS. The recipient comes from
// the message, not the config: the caller picks the error or report inbox.
type Email struct {
	Host     string
	Port     int
	From     string
	Password string

	// send is replaced in tests.
	send func(m *gomail.Message) error
}

func NewEmail(host string, port int, from, password string) *Email {
	if host == "" || from == "" {
		return nil
	}
	e := &Email{Host: host, Port: port, From: from, Password: password}
	e.send = func(m *gomail.Message) error {
		return gomail.NewDialer(e.Host, e.Port, e.From, e.Password).DialAndSend(m)
	}
	return e
}

func (e *Email) Send(ctx context.Context, msg Message) error {
	if e == nil {
		return errors.New("email disabled")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.send(e.compose(msg))
}

func (e *Email) compose(msg Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", e.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)
	if msg.AttachmentPath != "" {
		m.Attach(msg.AttachmentPath)
	}
	return m
}
