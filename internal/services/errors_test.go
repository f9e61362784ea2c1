package services

import (
	"errors"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	t.Parallel()

	err := Wrap(ErrNotFound, "download", "fetch chapter", "MAT 5", errors.New("404"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound tag, got %v", err)
	}
	want := "not found: download: fetch chapter: MAT 5: 404"
	if err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	t.Parallel()

	err := Wrap(nil, "catalog", "", "", nil)
	if !errors.Is(err, ErrTransient) {
		t.Fatalf("expected transient default, got %v", err)
	}
}

func TestWrapEmptyDetail(t *testing.T) {
	t.Parallel()

	err := Wrap(ErrTimeout, "", "", "", nil)
	if err.Error() != "timeout: service failure" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestRetryable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want bool
	}{
		{Wrap(ErrValidation, "sort", "", "", nil), false},
		{Wrap(ErrConfiguration, "sort", "", "", nil), false},
		{Wrap(ErrUnauthorized, "catalog", "", "", nil), false},
		{Wrap(ErrNotFound, "download", "", "", nil), true},
		{Wrap(ErrTimeout, "download", "", "", nil), true},
		{Wrap(ErrTransient, "download", "", "", nil), true},
		{errors.New("unclassified"), true},
	}
	for _, tc := range cases {
		if got := Retryable(tc.err); got != tc.want {
			t.Errorf("Retryable(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
