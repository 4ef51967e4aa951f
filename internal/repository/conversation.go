package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kavyanair/mindhaven/backend/internal/model/chat"
)

// ConversationStore durably appends completed chat turns and retrieves them
// per user, oldest first. An unknown or quiet user yields an empty slice,
// not an error.
type ConversationStore interface {
	Append(ctx context.Context, userID int64, message, response string, mood chat.Mood) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]chat.HistoryEntry, error)
}

// PostgresConversationStore keeps chat turns in the chats table. created_at
// is assigned by the database, so stored order under concurrent submissions
// from one user reflects completion order, not submission order.
type PostgresConversationStore struct {
	pool *pgxpool.Pool
}

func NewPostgresConversationStore(pool *pgxpool.Pool) *PostgresConversationStore {
	return &PostgresConversationStore{pool: pool}
}

func (s *PostgresConversationStore) Append(ctx context.Context, userID int64, message, response string, mood chat.Mood) (int64, error) {
	const q = `INSERT INTO chats (user_id, message, response, mood) VALUES ($1, $2, $3, $4) RETURNING id`

	var id int64
	if err := s.pool.QueryRow(ctx, q, userID, message, response, string(mood)).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert chat record: %w", err)
	}
	return id, nil
}

func (s *PostgresConversationStore) ListByUser(ctx context.Context, userID int64) ([]chat.HistoryEntry, error) {
	const q = `SELECT message, response, mood, created_at FROM chats WHERE user_id = $1 ORDER BY created_at ASC, id ASC`

	rows, err := s.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("query chat history: %w", err)
	}
	defer rows.Close()

	entries := make([]chat.HistoryEntry, 0)
	for rows.Next() {
		var entry chat.HistoryEntry
		var mood string
		if err := rows.Scan(&entry.Message, &entry.Response, &mood, &entry.Timestamp); err != nil {
			return nil, fmt.Errorf("scan chat record: %w", err)
		}
		entry.Mood = chat.Mood(mood)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chat history: %w", err)
	}

	return entries, nil
}
