package email

import (
	"context"
	"fmt"
	"time"

	gomail "gopkg.in/gomail.v2"
)

// Notifier sends transactional mail for appointment lifecycle events.
// Sending is best-effort: callers log failures and move on.
type Notifier interface {
	AppointmentScheduled(ctx context.Context, to, petName, clinicName string, when time.Time) error
	AppointmentCompleted(ctx context.Context, to, petName, clinicName string) error
	AppointmentCancelled(ctx context.Context, to, petName, clinicName string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpNotifier struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPNotifier(cfg SMTPConfig) Notifier {
	return &smtpNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (n *smtpNotifier) AppointmentScheduled(ctx context.Context, to, petName, clinicName string, when time.Time) error {
	subject := fmt.Sprintf("Appointment scheduled for %s", petName)
	body := fmt.Sprintf(
		"Your appointment for %s at %s is confirmed for %s.",
		petName, clinicName, when.Format("Mon, 02 Jan 2006 15:04"),
	)
	return n.send(ctx, to, subject, body)
}

func (n *smtpNotifier) AppointmentCompleted(ctx context.Context, to, petName, clinicName string) error {
	subject := fmt.Sprintf("Appointment completed for %s", petName)
	body := fmt.Sprintf(
		"The appointment for %s at %s was completed. You can now review the clinic.",
		petName, clinicName,
	)
	return n.send(ctx, to, subject, body)
}

func (n *smtpNotifier) AppointmentCancelled(ctx context.Context, to, petName, clinicName string) error {
	subject := fmt.Sprintf("Appointment cancelled for %s", petName)
	body := fmt.Sprintf(
		"The appointment for %s at %s was cancelled.",
		petName, clinicName,
	)
	return n.send(ctx, to, subject, body)
}

func (n *smtpNotifier) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

type noopNotifier struct{}

// NewNoopNotifier is used when SMTP is not configured.
func NewNoopNotifier() Notifier {
	return noopNotifier{}
}

func (noopNotifier) AppointmentScheduled(context.Context, string, string, string, time.Time) error {
	return nil
}
func (noopNotifier) AppointmentCompleted(context.Context, string, string, string) error {
	return nil
}
func (noopNotifier) AppointmentCancelled(context.Context, string, string, string) error {
	return nil
}
