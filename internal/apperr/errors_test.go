package apperr_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/apperr"
)

func TestNewValidation(t *testing.T) {
	err := apperr.NewValidation("field is required")

	if err.Error() != "field is required" {
		t.Errorf("expected 'field is required', got %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Errorf("expected nil unwrap, got %v", err.Unwrap())
	}
}

func TestNewValidationWrap(t *testing.T) {
	inner := fmt.Errorf("parse failed")
	err := apperr.NewValidationWrap("invalid expression", inner)

	if err.Error() != "invalid expression: parse failed" {
		t.Errorf("expected 'invalid expression: parse failed', got %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to return inner error")
	}
}

func TestValidationError_SurvivesFmtWrapping(t *testing.T) {
	original := apperr.NewValidation("empty parentheses")

	wrapped := fmt.Errorf("failed to parse: %w", original)
	doubleWrapped := fmt.Errorf("storage error: %w", wrapped)

	var ve *apperr.ValidationError
	if !errors.As(doubleWrapped, &ve) {
		t.Fatal("errors.As should find ValidationError through double wrapping")
	}
	if ve.Message != "empty parentheses" {
		t.Errorf("expected 'empty parentheses', got %q", ve.Message)
	}
}

func TestValidationError_NotFoundForPlainErrors(t *testing.T) {
	plain := fmt.Errorf("database connection failed")
	wrapped := fmt.Errorf("storage error: %w", plain)

	var ve *apperr.ValidationError
	if errors.As(wrapped, &ve) {
		t.Fatal("errors.As should NOT find ValidationError in plain error chain")
	}
}

func TestNewParamError_MatchesSentinel(t *testing.T) {
	err := apperr.NewParamError(apperr.ErrInvalidSort, "sort", "name")

	if !errors.Is(err, apperr.ErrInvalidSort) {
		t.Fatal("expected errors.Is to match ErrInvalidSort")
	}
	if errors.Is(err, apperr.ErrInvalidOrder) {
		t.Fatal("did not expect ErrInvalidOrder to match")
	}
	if err.Param != "sort" || err.Value != "name" {
		t.Errorf("expected param sort=name, got %s=%s", err.Param, err.Value)
	}
	if err.Error() != `sort="name": invalid sort key` {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !apperr.IsValidation(fmt.Errorf("parse: %w", err)) {
		t.Error("expected IsValidation through wrapping")
	}
}

func TestNotFoundError_MatchesUnknownUser(t *testing.T) {
	err := fmt.Errorf("lookup: %w", apperr.NewUnknownUser(42))

	if !errors.Is(err, apperr.ErrUnknownUser) {
		t.Fatal("expected ErrUnknownUser")
	}
	if apperr.IsValidation(err) {
		t.Fatal("unknown user is not a validation error")
	}
	if err.Error() != "lookup: user 42 not found" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestNewBackend_Classification(t *testing.T) {
	tests := []struct {
		name            string
		ctx             func() context.Context
		err             error
		wantCancelled   bool
		wantUnavailable bool
	}{
		{
			name:            "connection refused",
			ctx:             context.Background,
			err:             fmt.Errorf("dial tcp: connection refused"),
			wantUnavailable: true,
		},
		{
			name:          "context canceled error",
			ctx:           context.Background,
			err:           fmt.Errorf("query: %w", context.Canceled),
			wantCancelled: true,
		},
		{
			name:          "deadline exceeded",
			ctx:           context.Background,
			err:           context.DeadlineExceeded,
			wantCancelled: true,
		},
		{
			name: "driver error on cancelled context",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			},
			err:           fmt.Errorf("conn closed"),
			wantCancelled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := apperr.NewBackend(tt.ctx(), "pg", tt.err)

			if got := errors.Is(err, apperr.ErrCancelled); got != tt.wantCancelled {
				t.Errorf("ErrCancelled match = %v, want %v", got, tt.wantCancelled)
			}
			if got := errors.Is(err, apperr.ErrBackendUnavailable); got != tt.wantUnavailable {
				t.Errorf("ErrBackendUnavailable match = %v, want %v", got, tt.wantUnavailable)
			}
			if !errors.Is(err, tt.err) {
				t.Error("expected the cause to stay in the chain")
			}
		})
	}
}

func TestNewBackendTimeout_IsUnavailable(t *testing.T) {
	parent := context.Background()
	queryCtx, cancel := context.WithTimeout(parent, time.Millisecond)
	defer cancel()
	<-queryCtx.Done()

	err := apperr.NewBackendTimeout("pg", time.Millisecond, fmt.Errorf("query: %w", queryCtx.Err()))

	if parent.Err() != nil {
		t.Fatal("caller context must still be alive")
	}
	if errors.Is(err, apperr.ErrCancelled) {
		t.Error("own deadline must not classify as cancelled")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		t.Error("expired query context must not leak into the chain")
	}
	if !errors.Is(err, apperr.ErrBackendUnavailable) {
		t.Error("expected ErrBackendUnavailable")
	}
	if !errors.Is(err, apperr.ErrQueryTimeout) {
		t.Error("expected ErrQueryTimeout")
	}
}

func TestNewBackend_NilAndIdempotent(t *testing.T) {
	if apperr.NewBackend(context.Background(), "es", nil) != nil {
		t.Fatal("expected nil for nil error")
	}

	first := apperr.NewBackend(context.Background(), "es", fmt.Errorf("boom"))
	second := apperr.NewBackend(context.Background(), "pg", first)

	var be *apperr.BackendError
	if !errors.As(second, &be) || be.Backend != "es" {
		t.Fatalf("expected original backend error to be kept, got %v", second)
	}
}
