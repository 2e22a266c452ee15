package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"secret-santa-go/internal/config"
	"secret-santa-go/internal/domain/gifts"
	"secret-santa-go/internal/domain/participant"
	"secret-santa-go/pkg/logger"
)

// SMTPNotifier sends plain-text mail through a single SMTP relay.
type SMTPNotifier struct {
	cfg config.NotifyConfig
	log logger.Logger

	// send is swappable for tests.
	send func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTP(cfg config.NotifyConfig, log logger.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		cfg:  cfg,
		log:  log,
		send: smtp.SendMail,
	}
}

func (n *SMTPNotifier) SendVerificationCode(ctx context.Context, name, email, code string) error {
	return n.deliver(email, "Confirm your registration", verificationBody(name, code))
}

func (n *SMTPNotifier) SendDrawResult(ctx context.Context, giver, receiver participant.Participant, wishlist []gifts.GiftItem) error {
	return n.deliver(giver.NotifyEmail(), "Your secret santa assignment", drawResultBody(giver, receiver, wishlist))
}

func (n *SMTPNotifier) SendUndoNotice(ctx context.Context, affected participant.Participant) error {
	return n.deliver(affected.NotifyEmail(), "The draw was reversed", undoNoticeBody(affected))
}

func (n *SMTPNotifier) deliver(to, subject, body string) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", n.cfg.FromAddress)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", n.cfg.SMTPHost, n.cfg.SMTPPort)

	var auth smtp.Auth
	if n.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", n.cfg.SMTPUser, n.cfg.SMTPPassword, n.cfg.SMTPHost)
	}

	if err := n.send(addr, auth, n.cfg.FromAddress, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}
