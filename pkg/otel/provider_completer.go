package otel

import (
	"context"
	"log/slog"
	"time"

	"github.com/adrianliechti/lens/pkg/provider"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Completer interface {
	Observable
	provider.Completer
}

type observableCompleter struct {
	model    string
	provider string

	completer provider.Completer

	tokenUsageMetric        metric.Int64Counter
	operationDurationMetric metric.Float64Histogram
}

func NewCompleter(provider, model string, p provider.Completer) Completer {
	meter := otel.Meter(instrumentationName)

	tokenUsageMetric, _ := meter.Int64Counter("gen_ai.client.token.usage",
		metric.WithDescription("Number of input and output tokens used"),
		metric.WithUnit("{token}"),
	)

	operationDurationMetric, _ := meter.Float64Histogram("gen_ai.client.operation.duration",
		metric.WithDescription("GenAI operation duration"),
		metric.WithUnit("s"),
	)

	return &observableCompleter{
		completer: p,

		model:    model,
		provider: provider,

		tokenUsageMetric:        tokenUsageMetric,
		operationDurationMetric: operationDurationMetric,
	}
}

func (p *observableCompleter) otelSetup() {
}

func (p *observableCompleter) Complete(ctx context.Context, messages []provider.Message, options *provider.CompleteOptions) (*provider.Completion, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "chat "+p.model)
	defer span.End()

	timestamp := time.Now()

	result, err := p.completer.Complete(ctx, messages, options)

	attrs := KeyValues([]KeyValue{
		String("gen_ai.operation.name", "chat"),
		String("gen_ai.provider.name", p.provider),
		String("gen_ai.request.model", p.model),
	}, SessionAttrs(ctx))

	if err != nil {
		attrs = append(attrs, String("error.type", errorType(err)))

		p.operationDurationMetric.Record(ctx, time.Since(timestamp).Seconds(), metric.WithAttributes(attrs...))

		recordError(span, err)
		return nil, err
	}

	responseModel := p.model

	if result.Model != "" {
		responseModel = result.Model
	}

	attrs = append(attrs, String("gen_ai.response.model", responseModel))

	span.SetAttributes(attrs...)

	if result.ID != "" {
		span.SetAttributes(String("gen_ai.response.id", result.ID))
	}

	if result.Reason != "" {
		span.SetAttributes(attribute.StringSlice("gen_ai.response.finish_reasons", []string{string(result.Reason)}))
	}

	if result.Reason == provider.CompletionReasonLength {
		slog.WarnContext(ctx, "completion truncated at token limit", "model", responseModel)
	}

	p.operationDurationMetric.Record(ctx, time.Since(timestamp).Seconds(), metric.WithAttributes(attrs...))

	if result.Usage != nil {
		if result.Usage.InputTokens > 0 {
			p.tokenUsageMetric.Add(ctx, int64(result.Usage.InputTokens), metric.WithAttributes(append(attrs, String("gen_ai.token.type", "input"))...))
		}

		if result.Usage.OutputTokens > 0 {
			p.tokenUsageMetric.Add(ctx, int64(result.Usage.OutputTokens), metric.WithAttributes(append(attrs, String("gen_ai.token.type", "output"))...))
		}
	}

	return result, nil
}
