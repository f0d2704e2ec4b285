package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

// GenerationState is the state of a session's generation flow
type GenerationState string

const (
	GenerationIdle       GenerationState = "idle"
	GenerationRequesting GenerationState = "requesting"
)

// GenerationStatus reports the current state and the outcome of the last attempt
type GenerationStatus struct {
	State        GenerationState `json:"state"`
	LastError    string          `json:"last_error,omitempty"`
	LastRecipeID string          `json:"last_recipe_id,omitempty"`
	UpdatedAt    time.Time       `json:"updated_at,omitempty"`
}

// Session owns one RecipeStore. Interactions on a session run one at a time.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu    sync.Mutex
	store *RecipeStore

	statusMu   sync.RWMutex
	generation GenerationStatus
}

func newSession(id string, now time.Time) *Session {
	return &Session{
		ID:         id,
		CreatedAt:  now,
		store:      NewRecipeStore(),
		generation: GenerationStatus{State: GenerationIdle},
	}
}

// Do runs fn with exclusive access to the session's store
func (s *Session) Do(fn func(store *RecipeStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.store)
}

// TryDo runs fn only if no other interaction holds the session. It reports
// whether fn ran.
func (s *Session) TryDo(fn func(store *RecipeStore)) bool {
	if !s.mu.TryLock() {
		return false
	}
	defer s.mu.Unlock()
	fn(s.store)
	return true
}

// GenerationStatus returns a snapshot of the generation flow state. It does
// not wait for a running interaction.
func (s *Session) GenerationStatus() GenerationStatus {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()
	return s.generation
}

func (s *Session) beginGeneration() {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.generation = GenerationStatus{
		State:        GenerationRequesting,
		LastRecipeID: s.generation.LastRecipeID,
		UpdatedAt:    time.Now(),
	}
}

func (s *Session) endGeneration(recipeID string, err error) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	status := GenerationStatus{State: GenerationIdle, UpdatedAt: time.Now()}
	if err != nil {
		status.LastError = err.Error()
		status.LastRecipeID = s.generation.LastRecipeID
	} else {
		status.LastRecipeID = recipeID
	}
	s.generation = status
}

// SessionManager keeps the live sessions. Sessions expire ttl after creation
// and the least recently used one is evicted once maxSessions is reached.
type SessionManager struct {
	sessions *expirable.LRU[string, *Session]
	ttl      time.Duration
	logger   *zap.Logger
}

// NewSessionManager creates a SessionManager
func NewSessionManager(maxSessions int, ttl time.Duration, logger *zap.Logger) *SessionManager {
	m := &SessionManager{ttl: ttl, logger: logger}
	m.sessions = expirable.NewLRU[string, *Session](maxSessions, m.onEvict, ttl)
	return m
}

func (m *SessionManager) onEvict(id string, s *Session) {
	m.logger.Info("session discarded", zap.String("session_id", id), zap.Duration("age", time.Since(s.CreatedAt)))
}

// Create starts a new session with an empty store
func (m *SessionManager) Create() *Session {
	s := newSession(uuid.NewString(), time.Now())
	m.sessions.Add(s.ID, s)
	m.logger.Info("session created", zap.String("session_id", s.ID))
	return s
}

// Get returns the live session with the given id
func (m *SessionManager) Get(id string) (*Session, error) {
	s, ok := m.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete ends a session and discards its store
func (m *SessionManager) Delete(id string) bool {
	return m.sessions.Remove(id)
}

// Len returns the number of live sessions
func (m *SessionManager) Len() int {
	return m.sessions.Len()
}

// TTL returns the session lifetime
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}
