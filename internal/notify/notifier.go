package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blogs/internal/application"
	"github.com/oksasatya/go-ddd-blogs/pkg/mailer"
	"github.com/oksasatya/go-ddd-blogs/pkg/mailer/templates"
)

// ErrMalformed marks a message that can never be processed; it should be
// dropped rather than redelivered.
var ErrMalformed = errors.New("malformed event")

// Branding is copied into every rendered email.
type Branding struct {
	AppName     string
	CompanyName string
	SupportURL  string
}

// Notifier turns domain events into emails.
type Notifier struct {
	Sender   mailer.Sender
	Branding Branding
	Logger   *logrus.Logger
}

func NewNotifier(sender mailer.Sender, branding Branding, logger *logrus.Logger) *Notifier {
	return &Notifier{Sender: sender, Branding: branding, Logger: logger}
}

// JobFor returns the email for ev, or false when the event needs none.
func (n *Notifier) JobFor(ev application.Event) (mailer.EmailJob, bool, error) {
	switch ev.Type {
	case application.EventUserRegistered:
		if ev.Email == "" {
			return mailer.EmailJob{}, false, fmt.Errorf("%w: %s without email", ErrMalformed, ev.Type)
		}
		at := ev.OccurredAt
		if at.IsZero() {
			at = time.Now()
		}
		data := templates.NewEmailData(n.Branding.AppName, n.Branding.CompanyName, n.Branding.SupportURL,
			ev.Username, ev.Email, templates.WithTime(at))
		return mailer.EmailJob{To: ev.Email, Template: templates.Welcome, Data: data}, true, nil
	default:
		return mailer.EmailJob{}, false, nil
	}
}

// Handle decodes one queue message and sends its email, if any. Errors
// wrapping ErrMalformed are permanent; any other error is worth a retry.
func (n *Notifier) Handle(ctx context.Context, body []byte) error {
	var ev application.Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	job, ok, err := n.JobFor(ev)
	if err != nil || !ok {
		return err
	}

	subject, text, html, err := templates.Render(job.Template, job.Data)
	if err != nil {
		return fmt.Errorf("%w: render %s: %v", ErrMalformed, job.Template, err)
	}
	if err := n.Sender.Send(ctx, job.To, subject, text, html); err != nil {
		return fmt.Errorf("send %s: %w", job.Template, err)
	}
	if n.Logger != nil {
		n.Logger.WithFields(logrus.Fields{"event": ev.Type, "username": ev.Username}).Info("email sent")
	}
	return nil
}
