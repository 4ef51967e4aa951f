package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/kavyanair/mindhaven/backend/internal/domain"
	"github.com/kavyanair/mindhaven/backend/internal/model/chat"
	"github.com/kavyanair/mindhaven/backend/internal/model/user"
)

// MemoryConversationStore implements ConversationStore without Postgres,
// for tests and local development. Records keep insertion order per user.
type MemoryConversationStore struct {
	mu      sync.RWMutex
	nextID  int64
	records map[int64][]chat.Record
}

func NewMemoryConversationStore() *MemoryConversationStore {
	return &MemoryConversationStore{records: make(map[int64][]chat.Record)}
}

func (s *MemoryConversationStore) Append(_ context.Context, userID int64, message, response string, mood chat.Mood) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	record := chat.Record{
		ID:        s.nextID,
		UserID:    userID,
		Message:   message,
		Response:  response,
		Mood:      mood,
		CreatedAt: time.Now().UTC(),
	}
	s.records[userID] = append(s.records[userID], record)
	return record.ID, nil
}

func (s *MemoryConversationStore) ListByUser(_ context.Context, userID int64) ([]chat.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.records[userID]
	entries := make([]chat.HistoryEntry, 0, len(stored))
	for _, record := range stored {
		entries = append(entries, chat.HistoryEntry{
			Message:   record.Message,
			Response:  record.Response,
			Mood:      record.Mood,
			Timestamp: record.CreatedAt,
		})
	}
	return entries, nil
}

// MemoryUserStore implements UserStore in memory with the same uniqueness
// contract as the Postgres store.
type MemoryUserStore struct {
	mu         sync.RWMutex
	nextID     int64
	byID       map[int64]user.User
	byUsername map[string]int64
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		byID:       make(map[int64]user.User),
		byUsername: make(map[string]int64),
	}
}

func (s *MemoryUserStore) Create(_ context.Context, username, passwordHash, name string) (int64, error) {
	key := strings.ToLower(username)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byUsername[key]; taken {
		return 0, domain.ErrUserExists
	}

	s.nextID++
	s.byID[s.nextID] = user.User{
		ID:           s.nextID,
		Username:     key,
		PasswordHash: passwordHash,
		Name:         name,
	}
	s.byUsername[key] = s.nextID
	return s.nextID, nil
}

func (s *MemoryUserStore) FindByUsername(_ context.Context, username string) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUsername[strings.ToLower(username)]
	if !ok {
		return user.User{}, domain.ErrUserNotFound
	}
	return s.byID[id], nil
}

func (s *MemoryUserStore) Exists(_ context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byID[id]
	return ok, nil
}
