// Package summarize condenses extracted product fields into fixed-length,
// presentation-ready bullet lists, calling out to a text completion
// service when one is configured and degrading to deterministic
// formatting when it is not.
package summarize

import (
	"context"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/gaurav-prasanna/deckpipe/core"
)

// OpenAICompleter implements core.TextCompleter over the OpenAI chat
// completions API. Constructing one without an API key succeeds; the
// completer just reports itself unavailable.
type OpenAICompleter struct {
	model string
	opts  []option.RequestOption
	ready bool
}

// NewOpenAI creates a completer for the given model. baseURL is optional
// and points the client at a compatible endpoint (or a test server).
func NewOpenAI(apiKey, model, baseURL string) *OpenAICompleter {
	c := &OpenAICompleter{model: model, ready: apiKey != ""}
	if apiKey != "" {
		c.opts = append(c.opts, option.WithAPIKey(apiKey))
	}
	if baseURL != "" {
		c.opts = append(c.opts, option.WithBaseURL(baseURL))
	}
	return c
}

// Available reports whether credentials were configured.
func (c *OpenAICompleter) Available() bool {
	return c.ready
}

// Complete submits the prompt as a single user message.
func (c *OpenAICompleter) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if !c.ready {
		return "", core.ErrCompleterUnavailable
	}

	client := openai.NewClient(c.opts...)
	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxTokens: openai.Int(int64(maxTokens)),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", core.ErrCompleterUnavailable
	}
	return resp.Choices[0].Message.Content, nil
}
