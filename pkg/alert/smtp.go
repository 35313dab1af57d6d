package alert

import (
	"context"

	"gopkg.in/gomail.v2"

	"github.com/raids-lab/projecthub/pkg/config"
	"github.com/raids-lab/projecthub/pkg/logutils"
)

type SMTPAlerter struct {
	dialer *gomail.Dialer
	sender string
}

func newSMTPAlerter(cfg config.SMTPConfig) alertHandlerInterface {
	return &SMTPAlerter{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		sender: cfg.Sender,
	}
}

// SendMessageTo dials per message; notification volume is low and a held
// connection would go stale between sweeps.
func (s *SMTPAlerter) SendMessageTo(ctx context.Context, receiver *Recipient, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.sender)
	m.SetAddressHeader("To", receiver.Email, receiver.Name)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		logutils.Log.WithField("to", receiver.Email).Errorf("send mail: %v", err)
		return err
	}
	return nil
}
