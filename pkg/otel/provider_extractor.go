package otel

import (
	"context"
	"log/slog"
	"time"

	"github.com/adrianliechti/lens/pkg/extractor"

	"go.opentelemetry.io/otel"
)

type Extractor interface {
	Observable
	extractor.Provider
}

type observableExtractor struct {
	model    string
	provider string

	extractor extractor.Provider
}

func NewExtractor(provider, model string, p extractor.Provider) Extractor {
	return &observableExtractor{
		extractor: p,

		model:    model,
		provider: provider,
	}
}

func (p *observableExtractor) otelSetup() {
}

func (p *observableExtractor) Extract(ctx context.Context, file extractor.File, options *extractor.ExtractOptions) (*extractor.Document, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "extract "+p.model)
	defer span.End()

	span.SetAttributes(KeyValues([]KeyValue{
		String("file.name", file.Name),
		String("file.content_type", file.ContentType),
	}, SessionAttrs(ctx))...)

	timestamp := time.Now()

	result, err := p.extractor.Extract(ctx, file, options)

	if err != nil {
		recordError(span, err)
		return nil, err
	}

	slog.DebugContext(ctx, "extracted image",
		"provider", p.provider,
		"model", p.model,
		"bytes", len(file.Content),
		"chars", len(result.Text),
		"duration", time.Since(timestamp),
	)

	return result, nil
}
