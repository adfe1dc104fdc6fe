// file: internals/mailer/mailer.go
package mailer

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	gomail "gopkg.in/gomail.v2"

	"gerejaku_backend/internals/configs"
)

/* =========================
   Contract
   ========================= */

// Payload carries everything a template needs. Fields holds the
// record-specific values (names, dates, locations).
type Payload struct {
	RecipientEmail string
	RecipientName  string
	Fields         map[string]string
}

// Notifier sends a status-appropriate email for a template kind such as
// "marriage-approved" or "burial-completed". Implementations must be safe for
// concurrent use; callers never let a send failure affect the primary
// operation.
type Notifier interface {
	Send(ctx context.Context, kind string, p Payload) error
}

/* =========================
   Template subjects
   ========================= */

var subjects = map[string]string{
	"created":     "We received your request",
	"pending":     "Your request is being reviewed",
	"approved":    "Your request has been approved",
	"disapproved": "Your request could not be approved",
	"completed":   "Your service has been completed",
	"cancelled":   "Your request has been cancelled",
}

var kindTitles = map[string]string{
	"baptism":    "Water Baptism",
	"marriage":   "Marriage Service",
	"burial":     "Burial Service",
	"dedication": "Child Dedication",
	"form":       "Form Submission",
}

// SubjectFor maps "<type>-<status>" to a human subject line.
func SubjectFor(kind string) string {
	recordType, status, ok := strings.Cut(kind, "-")
	if !ok || recordType == "" {
		return "Notification from " + configs.AppName
	}
	title := kindTitles[recordType]
	if title == "" {
		title = strings.ToUpper(recordType[:1]) + recordType[1:]
	}
	subj := subjects[status]
	if subj == "" {
		subj = "Update on your request"
	}
	return fmt.Sprintf("%s — %s", title, subj)
}

func renderBody(kind string, p Payload) string {
	var b strings.Builder
	name := p.RecipientName
	if strings.TrimSpace(name) == "" {
		name = "Friend"
	}
	fmt.Fprintf(&b, "Dear %s,\n\n%s.\n\n", name, SubjectFor(kind))

	keys := make([]string, 0, len(p.Fields))
	for k := range p.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\n", k, p.Fields[k])
	}
	fmt.Fprintf(&b, "\nGod bless,\n%s", configs.AppName)
	return b.String()
}

/* =========================
   SMTP implementation
   ========================= */

type smtpNotifier struct {
	cfg    configs.MailConfig
	dialer *gomail.Dialer
}

// New builds the notifier from an injected MailConfig. When SMTP is not
// configured it degrades to a log-only notifier so the request pipeline keeps
// working in dev.
func New(cfg configs.MailConfig) Notifier {
	if !cfg.Configured() {
		log.Println("⚠️ SMTP not configured, notifications will only be logged")
		return logNotifier{}
	}
	return &smtpNotifier{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (n *smtpNotifier) Send(ctx context.Context, kind string, p Payload) error {
	if strings.TrimSpace(p.RecipientEmail) == "" {
		return fmt.Errorf("mailer: no recipient for kind %s", kind)
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", n.cfg.From, n.cfg.FromName)
	msg.SetHeader("To", p.RecipientEmail)
	msg.SetHeader("Subject", SubjectFor(kind))
	msg.SetBody("text/plain", renderBody(kind, p))

	done := make(chan error, 1)
	go func() { done <- n.dialer.DialAndSend(msg) }()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

/* =========================
   Log fallback
   ========================= */

type logNotifier struct{}

func (logNotifier) Send(_ context.Context, kind string, p Payload) error {
	log.Printf("[MAIL] kind=%s to=%s fields=%d (smtp disabled)", kind, p.RecipientEmail, len(p.Fields))
	return nil
}

/* =========================
   Fire-and-forget dispatch
   ========================= */

// Dispatch sends in the background. Failures are logged, never surfaced —
// notification is best-effort by contract.
func Dispatch(n Notifier, kind string, p Payload) {
	if n == nil || strings.TrimSpace(p.RecipientEmail) == "" {
		return
	}
	go func() {
		if err := n.Send(context.Background(), kind, p); err != nil {
			log.Printf("[WARN] notify %s to %s failed: %v", kind, p.RecipientEmail, err)
		}
	}()
}
