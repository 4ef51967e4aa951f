package chat_test

import (
	"context"
	"errors"
	"testing"

	"github.com/kavyanair/mindhaven/backend/internal/analysis/safety"
	"github.com/kavyanair/mindhaven/backend/internal/domain"
	chatmodel "github.com/kavyanair/mindhaven/backend/internal/model/chat"
	"github.com/kavyanair/mindhaven/backend/internal/repository"
	chat "github.com/kavyanair/mindhaven/backend/internal/service/chat"
)

type stubClassifier struct {
	mood chatmodel.Mood
}

func (s stubClassifier) Classify(string) chatmodel.Mood { return s.mood }

type spyResponder struct {
	reply string
	calls int
}

func (s *spyResponder) Generate(_ context.Context, _ string) string {
	s.calls++
	return s.reply
}

type failingConversationStore struct{}

func (failingConversationStore) Append(context.Context, int64, string, string, chatmodel.Mood) (int64, error) {
	return 0, errors.New("connection refused")
}

func (failingConversationStore) ListByUser(context.Context, int64) ([]chatmodel.HistoryEntry, error) {
	return nil, errors.New("connection refused")
}

func newUser(t *testing.T, users *repository.MemoryUserStore) int64 {
	t.Helper()
	id, err := users.Create(context.Background(), "asha", "hash", "Asha")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return id
}

func TestProcessHappyPath(t *testing.T) {
	users := repository.NewMemoryUserStore()
	records := repository.NewMemoryConversationStore()
	responder := &spyResponder{reply: "Great to hear!"}
	pipeline := chat.NewPipeline(safety.Detect, stubClassifier{mood: chatmodel.MoodPositive}, responder, users, records)

	userID := newUser(t, users)
	result, err := pipeline.Process(context.Background(), chatmodel.Message{UserID: userID, Text: "I'm so happy today!"})
	if err != nil {
		t.Fatalf("Process err: %v", err)
	}
	if result.Response != "Great to hear!" || result.Mood != chatmodel.MoodPositive {
		t.Fatalf("unexpected result: %+v", result)
	}
	if responder.calls != 1 {
		t.Fatalf("responder called %d times", responder.calls)
	}

	entries, err := pipeline.History(context.Background(), userID)
	if err != nil {
		t.Fatalf("History err: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 stored turn, got %d", len(entries))
	}
	if entries[0].Message != "I'm so happy today!" || entries[0].Response != "Great to hear!" || entries[0].Mood != chatmodel.MoodPositive {
		t.Fatalf("stored turn mismatch: %+v", entries[0])
	}
}

func TestProcessCrisisShortCircuits(t *testing.T) {
	users := repository.NewMemoryUserStore()
	records := repository.NewMemoryConversationStore()
	responder := &spyResponder{reply: "should never be used"}
	pipeline := chat.NewPipeline(safety.Detect, stubClassifier{mood: chatmodel.MoodNeutral}, responder, users, records)

	userID := newUser(t, users)
	result, err := pipeline.Process(context.Background(), chatmodel.Message{UserID: userID, Text: "I feel hopeless and want to die"})
	if err != nil {
		t.Fatalf("Process err: %v", err)
	}
	if result.Mood != chatmodel.MoodCrisis {
		t.Fatalf("mood = %s, want crisis", result.Mood)
	}
	if result.Response != chat.CrisisResponse {
		t.Fatalf("response = %q", result.Response)
	}
	if responder.calls != 0 {
		t.Fatal("generation backend was invoked for a crisis turn")
	}

	// The crisis turn is still persisted, with the safety message as the
	// stored response.
	entries, err := pipeline.History(context.Background(), userID)
	if err != nil {
		t.Fatalf("History err: %v", err)
	}
	if len(entries) != 1 || entries[0].Mood != chatmodel.MoodCrisis || entries[0].Response != chat.CrisisResponse {
		t.Fatalf("crisis turn not recorded correctly: %+v", entries)
	}
}

func TestProcessEmptyTextRejectedBeforeGeneration(t *testing.T) {
	users := repository.NewMemoryUserStore()
	responder := &spyResponder{reply: "unused"}
	pipeline := chat.NewPipeline(safety.Detect, stubClassifier{mood: chatmodel.MoodNeutral}, responder, users, repository.NewMemoryConversationStore())

	newUser(t, users)
	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := pipeline.Process(context.Background(), chatmodel.Message{UserID: 1, Text: text})
		if !errors.Is(err, domain.ErrEmptyMessage) {
			t.Fatalf("Process(%q) err = %v, want ErrEmptyMessage", text, err)
		}
	}
	if responder.calls != 0 {
		t.Fatal("generation spent on invalid input")
	}
}

func TestProcessUnknownUserRejectedBeforeGeneration(t *testing.T) {
	responder := &spyResponder{reply: "unused"}
	pipeline := chat.NewPipeline(safety.Detect, stubClassifier{mood: chatmodel.MoodNeutral}, responder, repository.NewMemoryUserStore(), repository.NewMemoryConversationStore())

	_, err := pipeline.Process(context.Background(), chatmodel.Message{UserID: 42, Text: "hello"})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
	if responder.calls != 0 {
		t.Fatal("generation spent on unknown user")
	}
}

func TestProcessStorageFailureSurfaces(t *testing.T) {
	users := repository.NewMemoryUserStore()
	responder := &spyResponder{reply: "lost reply"}
	pipeline := chat.NewPipeline(safety.Detect, stubClassifier{mood: chatmodel.MoodNeutral}, responder, users, failingConversationStore{})

	newUser(t, users)
	_, err := pipeline.Process(context.Background(), chatmodel.Message{UserID: 1, Text: "hello"})
	if !domain.IsStorage(err) {
		t.Fatalf("err = %v, want storage error", err)
	}
	// The generation call already happened; its cost is not refunded.
	if responder.calls != 1 {
		t.Fatalf("responder calls = %d", responder.calls)
	}
}

func TestHistoryRoundTripOrdering(t *testing.T) {
	users := repository.NewMemoryUserStore()
	records := repository.NewMemoryConversationStore()
	responder := &spyResponder{reply: "ok"}
	pipeline := chat.NewPipeline(safety.Detect, stubClassifier{mood: chatmodel.MoodNeutral}, responder, users, records)

	userID := newUser(t, users)
	texts := []string{"first message", "second message", "third message"}
	for _, text := range texts {
		if _, err := pipeline.Process(context.Background(), chatmodel.Message{UserID: userID, Text: text}); err != nil {
			t.Fatalf("Process(%q) err: %v", text, err)
		}
	}

	entries, err := pipeline.History(context.Background(), userID)
	if err != nil {
		t.Fatalf("History err: %v", err)
	}
	if len(entries) != len(texts) {
		t.Fatalf("expected %d turns, got %d", len(texts), len(entries))
	}
	for i, text := range texts {
		if entries[i].Message != text {
			t.Fatalf("entry %d message = %q, want %q", i, entries[i].Message, text)
		}
		if i > 0 && entries[i].Timestamp.Before(entries[i-1].Timestamp) {
			t.Fatalf("timestamps out of order at %d", i)
		}
	}
}

func TestHistoryEmptyForQuietUser(t *testing.T) {
	pipeline := chat.NewPipeline(safety.Detect, stubClassifier{mood: chatmodel.MoodNeutral}, &spyResponder{}, repository.NewMemoryUserStore(), repository.NewMemoryConversationStore())

	entries, err := pipeline.History(context.Background(), 999)
	if err != nil {
		t.Fatalf("History err: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Fatalf("expected empty non-nil history, got %#v", entries)
	}
}
