package otel

import (
	"context"
	"errors"
	"fmt"

	"github.com/adrianliechti/lens/pkg/session"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type KeyValue = attribute.KeyValue

func String(key string, val string) KeyValue {
	return attribute.String(key, val)
}

func KeyValues(attrs ...[]KeyValue) []KeyValue {
	var result []KeyValue

	for _, a := range attrs {
		result = append(result, a...)
	}

	return result
}

func SessionAttrs(ctx context.Context) []KeyValue {
	var attrs []KeyValue

	if s, ok := session.FromContext(ctx); ok {
		attrs = append(attrs, attribute.String("session.id", s.ID()))
	}

	return attrs
}

func recordError(span trace.Span, err error) {
	if err == nil {
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// errorType returns a low-cardinality name for err, suitable for the
// error.type metric attribute.
func errorType(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	}

	return fmt.Sprintf("%T", err)
}
