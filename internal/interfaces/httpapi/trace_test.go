package httpapi

import (
	"context"
	"testing"
)

func TestShouldCreateHTTPAPISpan(t *testing.T) {
	cases := map[string]bool{
		"httpapi.Handler.GetComparison": true,
		"httpapi.Handler.ListSeasons":   true,
		"httpapi.RequestLogging":        false,
		"httpapi.writeError":            false,
		"":                              false,
	}

	for name, want := range cases {
		if got := shouldCreateHTTPAPISpan(name); got != want {
			t.Errorf("shouldCreateHTTPAPISpan(%q)=%v want=%v", name, got, want)
		}
	}
}

func TestStartSpan_NoParentStaysNonRecording(t *testing.T) {
	ctx, span := startSpan(context.Background(), "httpapi.Handler.GetComparison")
	defer span.End()

	if ctx == nil {
		t.Fatal("context must pass through")
	}
	if span.IsRecording() {
		t.Fatal("expected a non-recording span without a parent")
	}
	if span.SpanContext().IsValid() {
		t.Fatal("expected no span context to be minted")
	}
}
