package notify

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"
)

type EmailOptions struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	Recipients []string
}

// EmailSender delivers messages over SMTP with PLAIN auth when credentials
// are configured.
type EmailSender struct {
	opts     EmailOptions
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewEmailSender(opts EmailOptions) *EmailSender {
	return &EmailSender{opts: opts, sendMail: smtp.SendMail}
}

func (s *EmailSender) Send(ctx context.Context, msg Message) error {
	if len(s.opts.Recipients) == 0 {
		return errors.New("no recipients configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if s.opts.Username != "" {
		auth = smtp.PlainAuth("", s.opts.Username, s.opts.Password, s.opts.Host)
	}
	addr := net.JoinHostPort(s.opts.Host, strconv.Itoa(s.opts.Port))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.sendMail(addr, auth, s.opts.From, s.opts.Recipients, s.compose(msg, time.Now()))
	}()
	select {
	case err := <-errCh:
		if err != nil {
			return errors.Wrap(err, "send mail")
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *EmailSender) compose(msg Message, now time.Time) []byte {
	subject := msg.Subject
	if msg.Kind == KindFailure {
		subject = "[FAILURE] " + subject
	}
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.opts.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(s.opts.Recipients, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", sanitizeHeader(subject))
	fmt.Fprintf(&b, "Date: %s\r\n", now.Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	b.WriteString("\r\n")
	return []byte(b.String())
}

func sanitizeHeader(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
