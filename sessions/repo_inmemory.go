package sessions

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hitser/spotify-token-server/internal/errors"
)

var _ Store = (*InMemoryStore)(nil)

// InMemoryStore is a thread-safe in-memory implementation of Store
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]TokenRecord
	nowTime func() time.Time
}

// StoreOption defines a function type to modify the InMemoryStore instance.
type StoreOption func(*InMemoryStore)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) StoreOption {
	return func(s *InMemoryStore) {
		s.nowTime = nowFunc
	}
}

// NewInMemoryStore creates a new in-memory session store
func NewInMemoryStore(options ...StoreOption) *InMemoryStore {
	s := &InMemoryStore{
		records: make(map[string]TokenRecord),
		nowTime: time.Now,
	}

	for _, opt := range options {
		opt(s)
	}

	return s
}

// Create stores a new record under a fresh UUID handle.
func (s *InMemoryStore) Create(accessToken, refreshToken string, expiresIn int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowTime()
	sessionID := uuid.NewString()
	s.records[sessionID] = TokenRecord{
		ID:           sessionID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    now.Add(time.Duration(expiresIn) * time.Second),
		CreatedAt:    now,
	}

	return sessionID, nil
}

// Get retrieves a record by session handle.
func (s *InMemoryStore) Get(sessionID string) (TokenRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[sessionID]
	if !ok {
		return TokenRecord{}, errors.ErrSessionNotFound
	}

	return record, nil
}

// Update mutates a record in place. The handle and creation time never
// change; the refresh token only changes when a new one is supplied.
func (s *InMemoryStore) Update(sessionID, accessToken string, expiresIn int, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[sessionID]
	if !ok {
		return errors.ErrSessionNotFound
	}

	record.AccessToken = accessToken
	record.ExpiresAt = s.nowTime().Add(time.Duration(expiresIn) * time.Second)
	if refreshToken != "" {
		record.RefreshToken = refreshToken
	}
	s.records[sessionID] = record

	return nil
}
