package chat

import "time"

// Mood tags a completed chat turn with the user's detected emotional state.
type Mood string

const (
	MoodPositive  Mood = "positive"
	MoodDepressed Mood = "depressed"
	MoodAnxious   Mood = "anxious"
	MoodNeutral   Mood = "neutral"
	MoodCrisis    Mood = "crisis"
)

// Message is one inbound user utterance, owned by its request scope.
type Message struct {
	UserID int64
	Text   string
}

// Record is the durable unit of a completed chat turn. Append-only;
// CreatedAt is assigned by the store at persistence time.
type Record struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	Mood      Mood      `json:"mood"`
	CreatedAt time.Time `json:"createdAt"`
}

// HistoryEntry is the per-turn shape the history endpoint exposes.
type HistoryEntry struct {
	Message   string    `json:"message"`
	Response  string    `json:"ai_response"`
	Mood      Mood      `json:"mood"`
	Timestamp time.Time `json:"timestamp"`
}
