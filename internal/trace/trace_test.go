package trace

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestInit_Disabled(t *testing.T) {
	shutdown, err := Init(false, "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("expected noop shutdown, got %v", err)
	}
}

func TestStartSpan_WithoutProvider(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "test.span", attribute.String("symbol", "THYAO.IS"))
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}
	End(span, errors.New("boom"))
}
