package notify

import (
	"context"
	"net/smtp"
	"strings"
	"testing"

	"secret-santa-go/internal/config"
	"secret-santa-go/internal/domain/gifts"
	"secret-santa-go/internal/domain/participant"
	"secret-santa-go/pkg/logger"
)

func TestDrawResultBodyIncludesWishList(t *testing.T) {
	giver := participant.Participant{FirstName: "Alice", LastName: "Smith"}
	receiver := participant.Participant{FirstName: "Bob", LastName: "Jones"}
	url := "https://example.com/socks"
	wishlist := []gifts.GiftItem{
		{Name: "Wool socks", URL: &url},
		{Name: "Novel"},
	}

	body := drawResultBody(giver, receiver, wishlist)

	for _, want := range []string{"Alice Smith", "Bob Jones", "Wool socks", "https://example.com/socks", "Novel"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected body to contain %q, got:\n%s", want, body)
		}
	}
}

func TestDrawResultBodyEmptyWishList(t *testing.T) {
	giver := participant.Participant{FirstName: "Alice"}
	receiver := participant.Participant{FirstName: "Bob"}

	body := drawResultBody(giver, receiver, nil)

	if !strings.Contains(body, "surprise them") {
		t.Fatalf("expected placeholder for empty wish list, got:\n%s", body)
	}
}

func TestSMTPNotifierRoutesToGuardian(t *testing.T) {
	var sentTo []string
	notifier := NewSMTP(config.NotifyConfig{
		FromAddress: "santa@example.com",
		SMTPHost:    "localhost",
		SMTPPort:    2525,
	}, logger.NewFromEnv())
	notifier.send = func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
		sentTo = append(sentTo, to...)
		return nil
	}

	guardian := "parent@example.com"
	giver := participant.Participant{FirstName: "Kid", Email: "kid@example.com", GuardianEmail: &guardian}
	receiver := participant.Participant{FirstName: "Bob"}

	if err := notifier.SendDrawResult(context.Background(), giver, receiver, nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(sentTo) != 1 || sentTo[0] != guardian {
		t.Fatalf("expected mail to guardian, got %v", sentTo)
	}
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, _, err := New(config.NotifyConfig{Driver: "carrier-pigeon"}, logger.NewFromEnv())
	if err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
