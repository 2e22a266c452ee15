package notify

import (
	"context"

	"secret-santa-go/internal/domain/gifts"
	"secret-santa-go/internal/domain/participant"
	"secret-santa-go/pkg/logger"
)

// LogNotifier is the development default: it logs what would have been
// sent and never reveals a pairing above debug level.
type LogNotifier struct {
	log logger.Logger
}

func NewLog(log logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) SendVerificationCode(ctx context.Context, name, email, code string) error {
	n.log.Info("notify: verification code", "email", email)
	n.log.Debug("notify: verification code body", "email", email, "code", code)
	return nil
}

func (n *LogNotifier) SendDrawResult(ctx context.Context, giver, receiver participant.Participant, wishlist []gifts.GiftItem) error {
	n.log.Info("notify: draw result", "giver_email", giver.NotifyEmail(), "wishlist_items", len(wishlist))
	n.log.Debug("notify: draw result body", "body", drawResultBody(giver, receiver, wishlist))
	return nil
}

func (n *LogNotifier) SendUndoNotice(ctx context.Context, affected participant.Participant) error {
	n.log.Info("notify: undo notice", "email", affected.NotifyEmail())
	return nil
}
