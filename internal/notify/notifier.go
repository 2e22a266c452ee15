package notify

import (
	"context"
	"fmt"
	"strings"

	"secret-santa-go/internal/config"
	"secret-santa-go/internal/domain/gifts"
	"secret-santa-go/internal/domain/participant"
	"secret-santa-go/pkg/logger"
)

// Notifier is the single outbound channel: verification codes, draw
// results and undo notices. Implementations are fire-and-forget from
// the caller's point of view; errors are for logging, not for rolling
// anything back.
type Notifier interface {
	SendVerificationCode(ctx context.Context, name, email, code string) error
	SendDrawResult(ctx context.Context, giver, receiver participant.Participant, wishlist []gifts.GiftItem) error
	SendUndoNotice(ctx context.Context, affected participant.Participant) error
}

// ShutdownFunc releases whatever the notifier holds open.
type ShutdownFunc func()

// New builds the notifier selected by config and returns it with its
// shutdown hook.
func New(cfg config.NotifyConfig, log logger.Logger) (Notifier, ShutdownFunc, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", "log":
		return NewLog(log), func() {}, nil
	case "smtp":
		return NewSMTP(cfg, log), func() {}, nil
	case "nats":
		return NewNATS(cfg, log)
	default:
		return nil, nil, fmt.Errorf("unknown notify driver %q", cfg.Driver)
	}
}

func drawResultBody(giver, receiver participant.Participant, wishlist []gifts.GiftItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", giver.DisplayName())
	fmt.Fprintf(&b, "The draw is done. You are the secret santa of %s.\n", receiver.DisplayName())

	if len(wishlist) == 0 {
		b.WriteString("\nThey have not added any wishes yet, so surprise them!\n")
		return b.String()
	}

	b.WriteString("\nTheir wish list:\n")
	for _, item := range wishlist {
		fmt.Fprintf(&b, "  - %s", item.Name)
		if item.URL != nil && *item.URL != "" {
			fmt.Fprintf(&b, " (%s)", *item.URL)
		}
		if item.Notes != nil && *item.Notes != "" {
			fmt.Fprintf(&b, ", %s", *item.Notes)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func undoNoticeBody(affected participant.Participant) string {
	return fmt.Sprintf(
		"Hi %s,\n\nThe last draw was reversed by the organizer. Please disregard your previous assignment; a new one will follow.\n",
		affected.DisplayName(),
	)
}

func verificationBody(name, code string) string {
	return fmt.Sprintf("Hi %s,\n\nYour verification code is %s.\n", name, code)
}
