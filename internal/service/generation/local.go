package generation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
)

// LocalProcess runs a model binary one-shot per completion, ollama style:
// `<bin> run <model> <prompt>`. Trimmed stdout is the response. The command
// inherits the call context, so an expired deadline kills and reaps the
// child; no orphaned processes or leaked pipes survive a timeout.
type LocalProcess struct {
	bin   string
	model string
}

func NewLocalProcess(bin, model string) *LocalProcess {
	return &LocalProcess{bin: bin, model: model}
}

func (p *LocalProcess) Complete(ctx context.Context, input string) (string, error) {
	cmd := exec.CommandContext(ctx, p.bin, "run", p.model, input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.String(), nil
	}

	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// Only the exit status goes into the error; stderr may quote the
		// prompt, so it stays in the log.
		slog.Debug("generation process stderr",
			"bin", p.bin,
			"stderr", truncate(stderr.String(), 512),
		)
		return "", fmt.Errorf("%w: %s exited with status %d", ErrBackendFailed, p.bin, exitErr.ExitCode())
	}

	return "", fmt.Errorf("start %s: %w", p.bin, err)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
