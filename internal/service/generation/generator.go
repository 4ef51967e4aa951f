package generation

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Sentinel responses substituted when generation fails, so the pipeline
// always has text to persist and return.
const (
	sentinelTimeout = "Error: AI response took too long."
	sentinelFailed  = "Error: AI response could not be generated."
)

// DefaultTimeout mirrors the backend's historical 100-second bound for a
// single model invocation.
const DefaultTimeout = 100 * time.Second

// Generator invokes a generation client under a hard wall-clock timeout and
// folds every failure into sentinel text. It isolates all external-process
// and network risk; callers never see an error from it.
type Generator struct {
	client  Client
	timeout time.Duration
}

func NewGenerator(client Client, timeout time.Duration) *Generator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Generator{client: client, timeout: timeout}
}

// Generate returns the model response for prompt, or a sentinel string when
// the backend fails or exceeds the timeout. Cancelling ctx (for example on
// client disconnect) propagates to the in-flight backend call.
func (g *Generator) Generate(ctx context.Context, prompt string) string {
	callID := uuid.NewString()
	start := time.Now()

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	output, err := g.client.Complete(callCtx, prompt)
	if err == nil {
		slog.Debug("generation completed",
			"call_id", callID,
			"duration", time.Since(start),
			"length", len(output),
		)
		return strings.TrimSpace(output)
	}

	switch {
	case callCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil:
		slog.Warn("generation timed out", "call_id", callID, "timeout", g.timeout)
		return sentinelTimeout
	case errors.Is(err, ErrBackendFailed):
		slog.Warn("generation backend failed", "call_id", callID, "error", err)
		return sentinelFailed
	default:
		slog.Warn("generation call failed", "call_id", callID, "error", err)
		return "Error: " + err.Error()
	}
}
