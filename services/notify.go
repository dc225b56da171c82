package services

import (
	"context"
	"errors"

	"github.com/rpupo63/folio-backend/config"
	"github.com/rs/zerolog/log"
)

// Notifier delivers a short message to the site owner.
type Notifier interface {
	Notify(ctx context.Context, subject, body string) error
}

// MultiNotifier fans a notification out to every channel. A failing channel
// does not stop the others; all errors are returned joined.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, subject, body string) error {
	var errList []error
	for _, n := range m {
		if err := n.Notify(ctx, subject, body); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}

// NewNotifierFromConfig enables the email and SMS channels whose settings are
// complete. With none configured the result is an empty MultiNotifier.
func NewNotifierFromConfig(c config.Config) MultiNotifier {
	var notifiers MultiNotifier

	apiKey := config.GetString(c, "RESEND_API_KEY", "")
	from := config.GetString(c, "RESEND_FROM_EMAIL", "")
	recipients := config.GetStrings(c, "CONTACT_NOTIFY_EMAILS")
	if apiKey != "" && from != "" && len(recipients) > 0 {
		notifiers = append(notifiers, NewEmailNotifier(apiKey, from, recipients))
	}

	sid := config.GetString(c, "TWILIO_ACCOUNT_SID", "")
	token := config.GetString(c, "TWILIO_AUTH_TOKEN", "")
	fromNumber := config.GetString(c, "TWILIO_FROM_NUMBER", "")
	toNumber := config.GetString(c, "CONTACT_NOTIFY_PHONE", "")
	if sid != "" && token != "" && fromNumber != "" && toNumber != "" {
		notifiers = append(notifiers, NewSMSNotifier(sid, token, fromNumber, toNumber))
	}

	log.Info().Int("channels", len(notifiers)).Msg("Contact notifications configured")
	return notifiers
}
