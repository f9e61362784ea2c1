package services

import (
	"context"
	"testing"
)

func TestContextRoundTrips(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ctx = WithRunID(ctx, "run-1")
	ctx = WithStage(ctx, "download")
	ctx = WithLanguage(ctx, "eng")

	if id, ok := RunIDFromContext(ctx); !ok || id != "run-1" {
		t.Fatalf("run id = %q, %v", id, ok)
	}
	if stage, ok := StageFromContext(ctx); !ok || stage != "download" {
		t.Fatalf("stage = %q, %v", stage, ok)
	}
	if iso, ok := LanguageFromContext(ctx); !ok || iso != "eng" {
		t.Fatalf("language = %q, %v", iso, ok)
	}
}

func TestContextEmptyValuesIgnored(t *testing.T) {
	t.Parallel()

	ctx := WithStage(context.Background(), "")
	if _, ok := StageFromContext(ctx); ok {
		t.Fatal("empty stage should not be stored")
	}
	if _, ok := RunIDFromContext(context.Background()); ok {
		t.Fatal("missing run id should report absent")
	}
}
