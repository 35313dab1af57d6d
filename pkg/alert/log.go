package alert

import (
	"context"

	"github.com/raids-lab/projecthub/pkg/logutils"
)

// logAlerter writes notifications to the log instead of delivering them.
type logAlerter struct{}

func newLogAlerter() alertHandlerInterface {
	return logAlerter{}
}

func (logAlerter) SendMessageTo(_ context.Context, receiver *Recipient, subject, body string) error {
	logutils.Log.WithFields(logutils.Fields{
		"to":      receiver.Email,
		"subject": subject,
	}).Info("notification (not delivered, smtp disabled)")
	logutils.Log.Debug(body)
	return nil
}
