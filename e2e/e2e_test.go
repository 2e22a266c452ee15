//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"secret-santa-go/internal/config"
	"secret-santa-go/internal/db"
	drawdomain "secret-santa-go/internal/domain/draw"
	eventdomain "secret-santa-go/internal/domain/event"
	giftsdomain "secret-santa-go/internal/domain/gifts"
	participantdomain "secret-santa-go/internal/domain/participant"
	"secret-santa-go/internal/metrics"
	"secret-santa-go/internal/repository/inmemory"
	drawrepo "secret-santa-go/internal/repository/postgres/draw"
	eventrepo "secret-santa-go/internal/repository/postgres/event"
	giftsrepo "secret-santa-go/internal/repository/postgres/gifts"
	participantrepo "secret-santa-go/internal/repository/postgres/participant"
	"secret-santa-go/internal/transport/httpserver"
	"secret-santa-go/internal/transport/httpserver/handler"
	"secret-santa-go/pkg/logger"
	"gorm.io/gorm"
)

// capturingNotifier records verification codes and draw notices so the
// test can complete the verify step without a real mailbox.
type capturingNotifier struct {
	mu          sync.Mutex
	codes       map[string]string
	drawNotices int
	undoNotices int
}

func newCapturingNotifier() *capturingNotifier {
	return &capturingNotifier{codes: make(map[string]string)}
}

func (n *capturingNotifier) SendVerificationCode(ctx context.Context, name, email, code string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.codes[email] = code
	return nil
}

func (n *capturingNotifier) SendDrawResult(ctx context.Context, giver, receiver participantdomain.Participant, wishlist []giftsdomain.GiftItem) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.drawNotices++
	return nil
}

func (n *capturingNotifier) SendUndoNotice(ctx context.Context, affected participantdomain.Participant) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.undoNotices++
	return nil
}

func (n *capturingNotifier) codeFor(email string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.codes[email]
}

func (n *capturingNotifier) counts() (int, int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.drawNotices, n.undoNotices
}

type testEnv struct {
	server   *httptest.Server
	db       *gorm.DB
	notifier *capturingNotifier
}

func setupE2E(t *testing.T) *testEnv {
	t.Helper()

	dsn := os.Getenv("E2E_DB_DSN")
	if dsn == "" {
		t.Skip("E2E_DB_DSN not set; skipping e2e tests")
	}

	log := logger.New(io.Discard, slog.LevelError, "text")

	cfg := config.Config{
		HTTPPort:           "0",
		DB:                 config.DBConfig{Driver: "postgres", DSN: dsn},
		CORSAllowedOrigins: []string{"http://localhost:5173"},
		Draw: config.DrawConfig{
			ShuffleAttempts:  10,
			CodeTTL:          time.Hour,
			SnapshotCacheTTL: time.Minute,
		},
	}

	dbConn, err := db.New(cfg.DB, log)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}

	if err := db.Migrate(context.Background(), dbConn, cfg.DB.Driver); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if err := cleanDB(dbConn); err != nil {
		t.Fatalf("clean db: %v", err)
	}

	notifier := newCapturingNotifier()
	m := metrics.New()

	participants := participantdomain.NewService(participantrepo.NewPostgres(dbConn), notifier, cfg.Draw.CodeTTL, log)
	gifts := giftsdomain.NewService(giftsrepo.NewPostgres(dbConn), inmemory.NewInMemoryGiftSnapshotCache(), cfg.Draw.SnapshotCacheTTL)
	eventRepo := eventrepo.NewPostgres(dbConn)
	events := eventdomain.NewService(eventRepo, participants, log)
	engine := drawdomain.NewEngine(
		drawrepo.NewPostgres(dbConn),
		eventRepo,
		participants,
		gifts,
		notifier,
		m,
		drawdomain.EngineOptions{ShuffleAttempts: cfg.Draw.ShuffleAttempts},
		log,
	)

	handlers := handler.New(participants, gifts, events, engine, log)
	router := httpserver.NewRouter(cfg, handlers, m)
	server := httptest.NewServer(router)

	return &testEnv{server: server, db: dbConn, notifier: notifier}
}

func (e *testEnv) Close() {
	e.server.Close()
	sqlDB, err := e.db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}

func cleanDB(dbConn *gorm.DB) error {
	return dbConn.WithContext(context.Background()).Exec(
		"TRUNCATE TABLE draw_history_entries, tickets, event_participants, events, gift_items, participants, pending_participants RESTART IDENTITY CASCADE",
	).Error
}

func requestJSON(t *testing.T, client *http.Client, method, url string, payload interface{}) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}

	return resp, respBody
}

type pendingResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type participantResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}

type eventResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type drawResponse struct {
	EventID     string `json:"event_id"`
	Status      string `json:"status"`
	TicketCount int    `json:"ticket_count"`
}

type historyEntryResponse struct {
	ID          string    `json:"id"`
	TicketCount int       `json:"ticket_count"`
	DrawnAt     time.Time `json:"drawn_at"`
}

func registerAndVerify(t *testing.T, env *testEnv, client *http.Client, firstName, email string) string {
	t.Helper()

	resp, body := requestJSON(t, client, http.MethodPost, env.server.URL+"/api/participants", map[string]interface{}{
		"first_name": firstName,
		"last_name":  "Tester",
		"email":      email,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: status %d, body %s", email, resp.StatusCode, body)
	}

	var pending pendingResponse
	if err := json.Unmarshal(body, &pending); err != nil {
		t.Fatalf("decode pending: %v", err)
	}

	code := env.notifier.codeFor(pending.Email)
	if code == "" {
		t.Fatalf("no verification code captured for %s", email)
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/participants/"+pending.ID+"/verify", map[string]string{"code": code})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("verify %s: status %d, body %s", email, resp.StatusCode, body)
	}

	var verified participantResponse
	if err := json.Unmarshal(body, &verified); err != nil {
		t.Fatalf("decode participant: %v", err)
	}
	if !verified.EmailVerified {
		t.Fatalf("participant %s not verified after code exchange", email)
	}
	return verified.ID
}

func TestE2EDrawLifecycle(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 10 * time.Second}

	emails := []string{"alice@example.com", "bob@example.com", "carol@example.com", "dave@example.com"}
	names := []string{"Alice", "Bob", "Carol", "Dave"}
	ids := make([]string, 0, len(emails))
	for i := range emails {
		ids = append(ids, registerAndVerify(t, env, client, names[i], emails[i]))
	}

	resp, body := requestJSON(t, client, http.MethodPost, env.server.URL+"/api/participants/"+ids[0]+"/gifts", map[string]interface{}{
		"name":     "wool socks",
		"priority": 3,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add gift: status %d, body %s", resp.StatusCode, body)
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/events", map[string]interface{}{
		"name": "Office Christmas",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create event: status %d, body %s", resp.StatusCode, body)
	}
	var created eventResponse
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if created.Status != eventdomain.StatusActive {
		t.Fatalf("new event status = %s, want active", created.Status)
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/events/"+created.ID+"/draw", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("draw: status %d, body %s", resp.StatusCode, body)
	}
	var drawn drawResponse
	if err := json.Unmarshal(body, &drawn); err != nil {
		t.Fatalf("decode draw: %v", err)
	}
	if drawn.Status != eventdomain.StatusDrawn || drawn.TicketCount != len(ids) {
		t.Fatalf("draw result = %+v, want drawn with %d tickets", drawn, len(ids))
	}

	drawNotices, _ := env.notifier.counts()
	if drawNotices != len(ids) {
		t.Fatalf("draw notices = %d, want %d", drawNotices, len(ids))
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/events/"+created.ID+"/draw", nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("second draw: status %d, want 409, body %s", resp.StatusCode, body)
	}

	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/events/"+created.ID+"/history", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("history: status %d, body %s", resp.StatusCode, body)
	}
	var history []historyEntryResponse
	if err := json.Unmarshal(body, &history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(history) != 1 || history[0].TicketCount != len(ids) {
		t.Fatalf("history = %+v, want one entry with %d tickets", history, len(ids))
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/events/"+created.ID+"/undo-draw", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("undo: status %d, body %s", resp.StatusCode, body)
	}
	var undone eventResponse
	if err := json.Unmarshal(body, &undone); err != nil {
		t.Fatalf("decode undone event: %v", err)
	}
	if undone.Status != eventdomain.StatusActive {
		t.Fatalf("event status after undo = %s, want active", undone.Status)
	}

	_, undoNotices := env.notifier.counts()
	if undoNotices != len(ids) {
		t.Fatalf("undo notices = %d, want %d", undoNotices, len(ids))
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/events/"+created.ID+"/undo-draw", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second undo: status %d, want 404, body %s", resp.StatusCode, body)
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/events/"+created.ID+"/draw", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("redraw: status %d, body %s", resp.StatusCode, body)
	}
}

func TestE2ECancelBlocksDraw(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 10 * time.Second}

	registerAndVerify(t, env, client, "Erin", "erin@example.com")
	registerAndVerify(t, env, client, "Frank", "frank@example.com")

	resp, body := requestJSON(t, client, http.MethodPost, env.server.URL+"/api/events", map[string]interface{}{
		"name": "Cancelled Party",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create event: status %d, body %s", resp.StatusCode, body)
	}
	var created eventResponse
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("decode event: %v", err)
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/events/"+created.ID+"/cancel", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("cancel: status %d, body %s", resp.StatusCode, body)
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/events/"+created.ID+"/draw", nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("draw after cancel: status %d, want 409, body %s", resp.StatusCode, body)
	}
}
