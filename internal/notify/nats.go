package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"secret-santa-go/internal/config"
	"secret-santa-go/internal/domain/gifts"
	"secret-santa-go/internal/domain/participant"
	"secret-santa-go/pkg/logger"
)

// NATSNotifier hands messages to a broker and lets a downstream worker
// do the actual delivery. Payloads carry the rendered body, so the
// worker never needs domain knowledge.
type NATSNotifier struct {
	conn    *nats.Conn
	subject string
	log     logger.Logger
}

type natsMessage struct {
	Kind    string `json:"kind"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func NewNATS(cfg config.NotifyConfig, log logger.Logger) (*NATSNotifier, ShutdownFunc, error) {
	conn, err := nats.Connect(cfg.NATSURL, nats.Name("secret-santa-notifier"))
	if err != nil {
		return nil, nil, fmt.Errorf("nats connect: %w", err)
	}

	notifier := &NATSNotifier{
		conn:    conn,
		subject: cfg.NATSSubject,
		log:     log,
	}
	shutdown := func() {
		if err := conn.Drain(); err != nil {
			log.Error("notify: nats drain failed", "err", err)
		}
	}
	return notifier, shutdown, nil
}

func (n *NATSNotifier) SendVerificationCode(ctx context.Context, name, email, code string) error {
	return n.publish(natsMessage{
		Kind:    "verification_code",
		To:      email,
		Subject: "Confirm your registration",
		Body:    verificationBody(name, code),
	})
}

func (n *NATSNotifier) SendDrawResult(ctx context.Context, giver, receiver participant.Participant, wishlist []gifts.GiftItem) error {
	return n.publish(natsMessage{
		Kind:    "draw_result",
		To:      giver.NotifyEmail(),
		Subject: "Your secret santa assignment",
		Body:    drawResultBody(giver, receiver, wishlist),
	})
}

func (n *NATSNotifier) SendUndoNotice(ctx context.Context, affected participant.Participant) error {
	return n.publish(natsMessage{
		Kind:    "undo_notice",
		To:      affected.NotifyEmail(),
		Subject: "The draw was reversed",
		Body:    undoNoticeBody(affected),
	})
}

func (n *NATSNotifier) publish(msg natsMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if err := n.conn.Publish(n.subject, data); err != nil {
		return fmt.Errorf("nats publish: %w", err)
	}
	return nil
}
