package generation

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
)

// Remote completes prompts against an Ollama server over HTTP through an
// eino chat chain. Each completion is a fresh single-message exchange; the
// model sees no history.
type Remote struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

func NewRemote(ctx context.Context, baseURL, model string, timeout time.Duration) (*Remote, error) {
	chatModel, err := ollama.NewChatModel(ctx, &ollama.ChatModelConfig{
		BaseURL: baseURL,
		Model:   model,
		Timeout: timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("create ollama chat model: %w", err)
	}

	template := prompt.FromMessages(
		schema.FString,
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(template)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("compile generation chain: %w", err)
	}

	return &Remote{chain: runnable}, nil
}

func (r *Remote) Complete(ctx context.Context, input string) (string, error) {
	msg, err := r.chain.Invoke(ctx, map[string]any{"query": input})
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %v", ErrBackendFailed, err)
	}
	if msg == nil || msg.Content == "" {
		return "", fmt.Errorf("%w: empty completion", ErrBackendFailed)
	}
	return msg.Content, nil
}
