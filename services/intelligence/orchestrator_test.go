package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"trailmate/models"

	"go.uber.org/zap"
)

func newTestOrchestrator(f *fixture, gen Generator) *Orchestrator {
	return &Orchestrator{
		Generator:   gen,
		Executor:    f.executor(20),
		Transcripts: NewMemoryContextStore(),
		Logger:      zap.NewNop(),
	}
}

func newTestSession(f *fixture) *Session {
	return &Session{ID: "s1", UserID: "u1", CreatedAt: time.Now(), snapshot: f.snap}
}

func TestTurnHappyPath(t *testing.T) {
	f := newFixture(t, hikingActivity("act123", 0))
	gen := &scriptedGenerator{replies: []string{"Hello! How can I help you today?"}}
	o := newTestOrchestrator(f, gen)
	sess := newTestSession(f)

	res, err := o.Turn(context.Background(), sess, "hi")
	if err != nil {
		t.Fatalf("turn: %v", err)
	}
	msgs := sess.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Author != models.AuthorUser || msgs[0].Text != "hi" {
		t.Errorf("unexpected user message %+v", msgs[0])
	}
	if msgs[1].Author != models.AuthorAssistant || msgs[1].Text != "Hello! How can I help you today?" {
		t.Errorf("unexpected assistant message %+v", msgs[1])
	}
	if res.Outcome != nil || f.store.Commits() != 0 {
		t.Error("a plain reply must not touch bookings")
	}
	if gen.creds[0] != "test-key" {
		t.Errorf("expected the user's credential, got %q", gen.creds[0])
	}
	if sess.Busy() {
		t.Error("busy flag left set")
	}
}

func TestTurnConfirmedBooking(t *testing.T) {
	f := newFixture(t, hikingActivity("act123", 0))
	gen := &scriptedGenerator{replies: []string{
		"Hiking Trip is on May 1st. Would you like to book this activity?",
		"BOOK_ACTIVITY:act123",
	}}
	o := newTestOrchestrator(f, gen)
	sess := newTestSession(f)
	ctx := context.Background()

	if _, err := o.Turn(ctx, sess, "any hikes?"); err != nil {
		t.Fatalf("first turn: %v", err)
	}
	res, err := o.Turn(ctx, sess, "yes")
	if err != nil {
		t.Fatalf("second turn: %v", err)
	}
	if !strings.Contains(gen.lastPrompt(), "ACTIVE_BOOKING_DISCUSSION: true") {
		t.Error("second prompt should flag the open offer")
	}
	if res.Outcome == nil || res.Outcome.Kind != OutcomeSuccess {
		t.Fatalf("expected success outcome, got %+v", res.Outcome)
	}
	if !strings.Contains(res.AssistantMessage.Text, "Hiking Trip") {
		t.Errorf("confirmation should name the activity: %q", res.AssistantMessage.Text)
	}
	if strings.Contains(res.AssistantMessage.Text, BookingSentinel) {
		t.Error("sentinel leaked into the transcript")
	}
	if f.store.Inserts() != 1 {
		t.Errorf("expected one booking, got %d", f.store.Inserts())
	}
	if len(sess.Messages()) != 4 {
		t.Errorf("expected 4 messages, got %d", len(sess.Messages()))
	}
}

func TestTurnOfferMarkerIsStripped(t *testing.T) {
	f := newFixture(t, hikingActivity("act123", 0))
	gen := &scriptedGenerator{replies: []string{"Hiking Trip suits you. Shall we?\nOFFER_ACTIVITY:act123"}}
	o := newTestOrchestrator(f, gen)
	sess := newTestSession(f)

	res, err := o.Turn(context.Background(), sess, "something outdoors")
	if err != nil {
		t.Fatalf("turn: %v", err)
	}
	if res.AssistantMessage.Text != "Hiking Trip suits you. Shall we?" {
		t.Errorf("marker not stripped: %q", res.AssistantMessage.Text)
	}
	if res.AssistantMessage.Offer == nil || res.AssistantMessage.Offer.ActivityID != "act123" {
		t.Errorf("offer tag missing: %+v", res.AssistantMessage.Offer)
	}
	if !ActiveBookingDiscussion(sess.Messages()) {
		t.Error("tagged reply should open a booking discussion")
	}
}

func TestTurnAlwaysAnswers(t *testing.T) {
	tests := []struct {
		name string
		gen  *scriptedGenerator
		want string
	}{
		{"network error", &scriptedGenerator{errs: []error{errors.New("dial tcp: timeout")}}, ApologyMessage},
		{"malformed reply", &scriptedGenerator{errs: []error{ErrMalformedReply}}, ApologyMessage},
		{"rejected credential", &scriptedGenerator{errs: []error{ErrMissingCredential}}, MissingCredentialMessage},
		{"empty reply", &scriptedGenerator{replies: []string{"   "}}, ApologyMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, hikingActivity("act123", 0))
			o := newTestOrchestrator(f, tt.gen)
			sess := newTestSession(f)

			res, err := o.Turn(context.Background(), sess, "hello")
			if err != nil {
				t.Fatalf("turn: %v", err)
			}
			if res.AssistantMessage.Text != tt.want {
				t.Errorf("got %q, want %q", res.AssistantMessage.Text, tt.want)
			}
			if len(sess.Messages()) != 2 || sess.Busy() {
				t.Error("turn did not complete cleanly")
			}
		})
	}
}

func TestTurnWithoutCredential(t *testing.T) {
	f := newFixture(t)
	f.snap.credential = ""
	gen := &scriptedGenerator{}
	o := newTestOrchestrator(f, gen)

	res, err := o.Turn(context.Background(), newTestSession(f), "hello")
	if err != nil {
		t.Fatalf("turn: %v", err)
	}
	if res.AssistantMessage.Text != MissingCredentialMessage {
		t.Errorf("unexpected reply %q", res.AssistantMessage.Text)
	}
	if len(gen.prompts) != 0 {
		t.Error("generator must not be called without a credential")
	}
}

func TestTurnFallbackCredential(t *testing.T) {
	f := newFixture(t)
	f.snap.credential = ""
	gen := &scriptedGenerator{}
	o := newTestOrchestrator(f, gen)
	o.FallbackCredential = "server-key"

	if _, err := o.Turn(context.Background(), newTestSession(f), "hello"); err != nil {
		t.Fatalf("turn: %v", err)
	}
	if len(gen.creds) != 1 || gen.creds[0] != "server-key" {
		t.Errorf("expected server key, got %v", gen.creds)
	}
}

func TestTurnRejectsEmptyMessage(t *testing.T) {
	f := newFixture(t)
	sess := newTestSession(f)
	_, err := newTestOrchestrator(f, &scriptedGenerator{}).Turn(context.Background(), sess, "  \n ")
	if !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	if len(sess.Messages()) != 0 {
		t.Error("empty input must not be recorded")
	}
}

func TestTurnRejectsConcurrentMessage(t *testing.T) {
	f := newFixture(t)
	gen := &scriptedGenerator{block: make(chan struct{})}
	o := newTestOrchestrator(f, gen)
	sess := newTestSession(f)

	done := make(chan error, 1)
	go func() {
		_, err := o.Turn(context.Background(), sess, "first")
		done <- err
	}()

	deadline := time.Now().Add(2 * time.Second)
	for !sess.Busy() {
		if time.Now().After(deadline) {
			t.Fatal("first turn never started")
		}
		time.Sleep(time.Millisecond)
	}

	if _, err := o.Turn(context.Background(), sess, "second"); !errors.Is(err, ErrSessionBusy) {
		t.Fatalf("expected ErrSessionBusy, got %v", err)
	}
	close(gen.block)
	if err := <-done; err != nil {
		t.Fatalf("first turn: %v", err)
	}
	if len(sess.Messages()) != 2 {
		t.Errorf("rejected message must not be recorded, got %d messages", len(sess.Messages()))
	}
}

func TestTurnTimeout(t *testing.T) {
	f := newFixture(t)
	gen := &scriptedGenerator{block: make(chan struct{})}
	o := newTestOrchestrator(f, gen)
	o.Timeout = 20 * time.Millisecond

	res, err := o.Turn(context.Background(), newTestSession(f), "hello")
	if err != nil {
		t.Fatalf("turn: %v", err)
	}
	if res.AssistantMessage.Text != ApologyMessage {
		t.Errorf("expected apology after timeout, got %q", res.AssistantMessage.Text)
	}
}

func TestTurnMirrorsTranscript(t *testing.T) {
	f := newFixture(t)
	o := newTestOrchestrator(f, &scriptedGenerator{})
	sess := newTestSession(f)

	if _, err := o.Turn(context.Background(), sess, "hello"); err != nil {
		t.Fatalf("turn: %v", err)
	}
	stored, err := o.Transcripts.List(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 mirrored messages, got %d", len(stored))
	}
}
