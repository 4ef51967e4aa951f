package chat

import (
	"context"
	"log/slog"
	"strings"

	"github.com/kavyanair/mindhaven/backend/internal/domain"
	"github.com/kavyanair/mindhaven/backend/internal/model/chat"
	"github.com/kavyanair/mindhaven/backend/internal/repository"
)

// CrisisResponse is returned verbatim for every crisis-flagged turn. It is
// deliberately not configurable: the call to action must not vary per
// deployment.
const CrisisResponse = "🚨 Please seek immediate help. Call a crisis hotline."

// Detector flags self-harm risk language in raw text.
type Detector func(text string) bool

// Classifier assigns a non-crisis mood to text.
type Classifier interface {
	Classify(text string) chat.Mood
}

// Responder produces the model reply for one turn. Backend failures are
// encoded in the returned text, never as errors.
type Responder interface {
	Generate(ctx context.Context, prompt string) string
}

// Result is what the transport layer returns for one processed turn.
type Result struct {
	Response string
	Mood     chat.Mood
}

// Pipeline runs one chat turn through crisis detection, mood classification,
// response generation and persistence, in that fixed order. Invocations are
// independent; concurrent requests share nothing but the stores.
type Pipeline struct {
	detect     Detector
	classifier Classifier
	responder  Responder
	users      repository.UserStore
	records    repository.ConversationStore
}

func NewPipeline(detect Detector, classifier Classifier, responder Responder, users repository.UserStore, records repository.ConversationStore) *Pipeline {
	return &Pipeline{
		detect:     detect,
		classifier: classifier,
		responder:  responder,
		users:      users,
		records:    records,
	}
}

// Process handles one inbound message. Validation happens before anything
// else so an invalid request never spends a generation call.
//
// Crisis-flagged turns short-circuit ahead of classification: the text is
// never forwarded to the generation backend, but the turn is still recorded
// with the fixed safety response so safety follow-up has an audit trail.
//
// A failed append surfaces as *domain.StorageError even though the
// generation call already happened; a turn the user could never retrieve
// again must not be reported as fully successful.
func (p *Pipeline) Process(ctx context.Context, msg chat.Message) (Result, error) {
	if strings.TrimSpace(msg.Text) == "" {
		return Result{}, domain.ErrEmptyMessage
	}

	exists, err := p.users.Exists(ctx, msg.UserID)
	if err != nil {
		return Result{}, &domain.StorageError{Op: "check user", Err: err}
	}
	if !exists {
		return Result{}, domain.ErrUserNotFound
	}

	if p.detect(msg.Text) {
		result := Result{Response: CrisisResponse, Mood: chat.MoodCrisis}
		if _, err := p.records.Append(ctx, msg.UserID, msg.Text, result.Response, result.Mood); err != nil {
			return Result{}, &domain.StorageError{Op: "append crisis record", Err: err}
		}
		slog.Info("crisis turn recorded", "user_id", msg.UserID)
		return result, nil
	}

	// Mood and response are independent derivations over the same text; the
	// classifier output does not alter the prompt.
	mood := p.classifier.Classify(msg.Text)
	response := p.responder.Generate(ctx, msg.Text)

	if _, err := p.records.Append(ctx, msg.UserID, msg.Text, response, mood); err != nil {
		return Result{}, &domain.StorageError{Op: "append chat record", Err: err}
	}

	return Result{Response: response, Mood: mood}, nil
}

// History returns the user's stored turns, oldest first. An unknown user
// yields an empty slice.
func (p *Pipeline) History(ctx context.Context, userID int64) ([]chat.HistoryEntry, error) {
	entries, err := p.records.ListByUser(ctx, userID)
	if err != nil {
		return nil, &domain.StorageError{Op: "list chat history", Err: err}
	}
	return entries, nil
}
