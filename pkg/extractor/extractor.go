package extractor

import (
	"context"
	"errors"

	"github.com/adrianliechti/lens/pkg/provider"
)

type Provider interface {
	Extract(ctx context.Context, input File, options *ExtractOptions) (*Document, error)
}

var (
	ErrEmpty       = errors.New("empty input")
	ErrUnsupported = errors.New("unsupported type")
)

type File = provider.File

type ExtractOptions struct {
	// Prompt replaces the provider's default instruction when set.
	Prompt string
}

// Document holds the Markdown returned for one image.
type Document struct {
	Text string
}
