package llm

import (
	"context"

	"github.com/adrianliechti/lens/pkg/extractor"
	"github.com/adrianliechti/lens/pkg/provider"
)

const DefaultPrompt = `Analyze the text in the provided image. Extract all readable content
and present it in a structured Markdown format that is clear, concise,
and well-organized. Ensure proper formatting (e.g., headings, lists, or
code blocks) as necessary to represent the content effectively.`

var _ extractor.Provider = (*Client)(nil)

type Client struct {
	completer provider.Completer

	prompt string

	maxTokens   *int
	temperature *float32
}

type Option func(*Client)

func WithPrompt(prompt string) Option {
	return func(c *Client) {
		c.prompt = prompt
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(c *Client) {
		c.maxTokens = &maxTokens
	}
}

func WithTemperature(temperature float32) Option {
	return func(c *Client) {
		c.temperature = &temperature
	}
}

func New(completer provider.Completer, options ...Option) (*Client, error) {
	c := &Client{
		completer: completer,

		prompt: DefaultPrompt,
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

func (c *Client) Extract(ctx context.Context, input extractor.File, options *extractor.ExtractOptions) (*extractor.Document, error) {
	if options == nil {
		options = new(extractor.ExtractOptions)
	}

	if len(input.Content) == 0 {
		return nil, extractor.ErrEmpty
	}

	contentType, err := extractor.DetectImageType(input)

	if err != nil {
		return nil, err
	}

	input.ContentType = contentType

	prompt := c.prompt

	if options.Prompt != "" {
		prompt = options.Prompt
	}

	messages := []provider.Message{
		provider.UserMessage(
			provider.TextContent(prompt),
			provider.FileContent(&input),
		),
	}

	completion, err := c.completer.Complete(ctx, messages, &provider.CompleteOptions{
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})

	if err != nil {
		return nil, err
	}

	result := &extractor.Document{}

	if completion.Message != nil {
		result.Text = completion.Message.Text()
	}

	return result, nil
}
