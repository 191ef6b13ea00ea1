package ai

import (
	"context"
	"errors"
	"strings"
	"time"

	"trailmate/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ApologyMessage           = "Sorry, I'm having trouble responding right now. Please try again in a moment."
	MissingCredentialMessage = "I can't reply yet because no AI API key is set up. Add your key under Profile > AI settings and send your message again."
)

// TurnResult is what one completed turn appended to the transcript.
type TurnResult struct {
	UserMessage             models.ConversationMessage
	AssistantMessage        models.ConversationMessage
	Outcome                 *Outcome
	ActiveBookingDiscussion bool
}

// Orchestrator runs one user message through assembly, generation,
// interpretation and, when requested, booking.
type Orchestrator struct {
	Assembler   ContextAssembler
	Generator   Generator
	Executor    *BookingExecutor
	Transcripts TranscriptStore
	Logger      *zap.Logger

	// FallbackCredential is used when the user has no key of their own.
	FallbackCredential string
	// Timeout bounds the generation call; zero means no limit.
	Timeout time.Duration

	now func() time.Time
}

func (o *Orchestrator) clock() time.Time {
	if o.now != nil {
		return o.now()
	}
	return time.Now().UTC()
}

func (o *Orchestrator) newMessage(text string, author models.MessageAuthor, offer *models.Offer) models.ConversationMessage {
	return models.ConversationMessage{
		ID:        uuid.NewString(),
		Text:      text,
		Author:    author,
		Timestamp: o.clock(),
		Offer:     offer,
	}
}

// Turn handles one user message. It fails only when the message is empty or
// another turn is in flight; every accepted turn appends exactly one
// assistant message.
func (o *Orchestrator) Turn(ctx context.Context, sess *Session, text string) (*TurnResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if !sess.busy.CompareAndSwap(false, true) {
		return nil, ErrSessionBusy
	}
	defer sess.busy.Store(false)

	log := o.Logger.With(zap.String("session_id", sess.ID), zap.String("user_id", sess.UserID))

	userMsg := o.newMessage(text, models.AuthorUser, nil)
	sess.append(userMsg)
	o.mirror(ctx, log, sess.ID, userMsg)

	reply, offer, outcome, active := o.respond(ctx, log, sess)

	assistant := o.newMessage(reply, models.AuthorAssistant, offer)
	sess.append(assistant)
	o.mirror(ctx, log, sess.ID, assistant)
	sess.touch(o.clock())

	return &TurnResult{
		UserMessage:             userMsg,
		AssistantMessage:        assistant,
		Outcome:                 outcome,
		ActiveBookingDiscussion: active,
	}, nil
}

func (o *Orchestrator) respond(ctx context.Context, log *zap.Logger, sess *Session) (reply string, offer *models.Offer, outcome *Outcome, active bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("turn panicked", zap.Any("panic", r))
			reply, offer, outcome = ApologyMessage, nil, nil
		}
	}()

	snap := sess.snapshot
	credential := snap.Credential()
	if credential == "" {
		credential = o.FallbackCredential
	}
	if credential == "" {
		return MissingCredentialMessage, nil, nil, false
	}

	prompt := o.Assembler.Assemble(snap, sess.Messages())
	active = prompt.ActiveBookingDiscussion

	genCtx := ctx
	if o.Timeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}
	raw, err := o.Generator.Generate(genCtx, credential, prompt.Text)
	if err != nil {
		if errors.Is(err, ErrMissingCredential) {
			return MissingCredentialMessage, nil, nil, active
		}
		log.Warn("generation failed", zap.Error(err))
		return ApologyMessage, nil, nil, active
	}

	interpreted := Interpret(raw)
	if interpreted.Kind == ReplyBooking {
		out := o.Executor.Execute(ctx, snap, sess.UserID, interpreted.ActivityID)
		return out.Message, nil, &out, active
	}

	text, offer := SplitOffer(interpreted.Text)
	if strings.TrimSpace(text) == "" {
		return ApologyMessage, nil, nil, active
	}
	return text, offer, nil, active
}

func (o *Orchestrator) mirror(ctx context.Context, log *zap.Logger, sessionID string, msg models.ConversationMessage) {
	if o.Transcripts == nil {
		return
	}
	if err := o.Transcripts.Append(ctx, sessionID, msg); err != nil {
		log.Warn("transcript mirror failed", zap.String("message_id", msg.ID), zap.Error(err))
	}
}
