package ai

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"trailmate/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session is one conversation: a snapshot taken at start plus an
// append-only transcript. At most one turn runs at a time.
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time

	snapshot *Snapshot

	mu       sync.RWMutex
	messages []models.ConversationMessage

	busy     atomic.Bool
	lastSeen atomic.Int64
}

// Messages returns a copy of the transcript in arrival order.
func (s *Session) Messages() []models.ConversationMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ConversationMessage(nil), s.messages...)
}

func (s *Session) Snapshot() *Snapshot {
	return s.snapshot
}

// Busy reports whether a turn is in flight.
func (s *Session) Busy() bool {
	return s.busy.Load()
}

func (s *Session) append(m models.ConversationMessage) {
	s.mu.Lock()
	s.messages = append(s.messages, m)
	s.mu.Unlock()
}

func (s *Session) touch(t time.Time) {
	s.lastSeen.Store(t.UnixNano())
}

func (s *Session) idleSince(t time.Time) time.Duration {
	return t.Sub(time.Unix(0, s.lastSeen.Load()))
}

// SnapshotSource loads the per-session snapshot for a caller.
type SnapshotSource interface {
	Load(ctx context.Context, id models.Identity) (*Snapshot, error)
}

// SessionManager owns live sessions. Sessions idle longer than ttl are
// dropped from memory; their transcripts can be resumed from the store.
type SessionManager struct {
	source      SnapshotSource
	transcripts TranscriptStore
	ttl         time.Duration
	logger      *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Session

	now func() time.Time
}

func NewSessionManager(source SnapshotSource, transcripts TranscriptStore, ttl time.Duration, logger *zap.Logger) *SessionManager {
	return &SessionManager{
		source:      source,
		transcripts: transcripts,
		ttl:         ttl,
		logger:      logger,
		sessions:    make(map[string]*Session),
		now:         time.Now,
	}
}

// Start loads a fresh snapshot and opens a new session. It returns only
// after location enrichment has finished.
func (m *SessionManager) Start(ctx context.Context, id models.Identity) (*Session, error) {
	snap, err := m.source.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	now := m.now()
	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    id.UserID,
		CreatedAt: now,
		snapshot:  snap,
	}
	sess.touch(now)

	if err := m.transcripts.Open(ctx, sess.ID, id.UserID); err != nil {
		m.logger.Warn("transcript store unavailable, session kept in memory only",
			zap.String("session_id", sess.ID), zap.Error(err))
	}

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	m.logger.Info("conversation session started",
		zap.String("session_id", sess.ID),
		zap.String("user_id", id.UserID),
		zap.Int("locations", len(snap.Locations)),
		zap.Int("activities", len(snap.Activities)),
	)
	return sess, nil
}

// Get returns the caller's session, resuming it from the transcript store
// when it is no longer in memory.
func (m *SessionManager) Get(ctx context.Context, sessionID string, id models.Identity) (*Session, error) {
	m.mu.Lock()
	sess, ok := m.sessions[sessionID]
	m.mu.Unlock()
	if ok {
		if sess.UserID != id.UserID {
			return nil, ErrSessionNotFound
		}
		sess.touch(m.now())
		return sess, nil
	}
	return m.resume(ctx, sessionID, id)
}

func (m *SessionManager) resume(ctx context.Context, sessionID string, id models.Identity) (*Session, error) {
	owner, err := m.transcripts.Owner(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			m.logger.Warn("session owner lookup failed", zap.String("session_id", sessionID), zap.Error(err))
		}
		return nil, ErrSessionNotFound
	}
	if owner != id.UserID {
		return nil, ErrSessionNotFound
	}

	history, err := m.transcripts.List(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load transcript: %w", err)
	}
	snap, err := m.source.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	now := m.now()
	sess := &Session{
		ID:        sessionID,
		UserID:    id.UserID,
		CreatedAt: now,
		snapshot:  snap,
		messages:  history,
	}
	if len(history) > 0 {
		sess.CreatedAt = history[0].Timestamp
	}
	sess.touch(now)

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.sessions[sessionID]; ok {
		return existing, nil
	}
	m.sessions[sessionID] = sess
	m.logger.Info("conversation session resumed", zap.String("session_id", sessionID), zap.Int("messages", len(history)))
	return sess, nil
}

// End forgets the session and its stored transcript.
func (m *SessionManager) End(ctx context.Context, sessionID string, id models.Identity) error {
	sess, err := m.Get(ctx, sessionID, id)
	if err != nil {
		return err
	}
	if sess.Busy() {
		return ErrSessionBusy
	}

	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()

	if err := m.transcripts.Clear(ctx, sessionID); err != nil {
		m.logger.Warn("transcript clear failed", zap.String("session_id", sessionID), zap.Error(err))
	}
	return nil
}

// Sweep drops idle sessions from memory and returns how many were removed.
func (m *SessionManager) Sweep() int {
	if m.ttl <= 0 {
		return 0
	}
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, sess := range m.sessions {
		if !sess.Busy() && sess.idleSince(now) > m.ttl {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// RunJanitor sweeps idle sessions every interval until ctx is done.
func (m *SessionManager) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				m.logger.Debug("idle sessions swept", zap.Int("count", n))
			}
		}
	}
}
