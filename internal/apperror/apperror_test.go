package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("product", "42"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("id", "id is required"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "Conflict wraps ErrConflict",
			err:       Conflict("user", "username", "bob", cause),
			target:    ErrConflict,
			wantMatch: true,
		},
		{
			name:      "Upstream wraps ErrUpstream",
			err:       Upstream("catalog", cause),
			target:    ErrUpstream,
			wantMatch: true,
		},
		{
			name:      "Upstream also matches its cause",
			err:       Upstream("catalog", cause),
			target:    cause,
			wantMatch: true,
		},
		{
			name:      "wrapped with fmt.Errorf still matches",
			err:       fmt.Errorf("seeding users: %w", Upstream("randomuser", cause)),
			target:    ErrUpstream,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrConflict",
			err:       NotFound("product", "42"),
			target:    ErrConflict,
			wantMatch: false,
		},
		{
			name:      "Conflict does NOT match ErrUpstream",
			err:       Conflict("user", "username", "bob", nil),
			target:    ErrUpstream,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		wantMessage string
	}{
		{
			name:        "NotFound message includes resource and id",
			err:         NotFound("product", "9999"),
			wantMessage: "product not found with id 9999",
		},
		{
			name:        "ValidationFailed uses custom message",
			err:         ValidationFailed("id", "id is required"),
			wantMessage: "id is required",
		},
		{
			name:        "Conflict without cause",
			err:         Conflict("user", "username", "bob", nil),
			wantMessage: `user with username "bob" already exists`,
		},
		{
			name:        "Upstream appends the cause",
			err:         Upstream("catalog", errors.New("status 502")),
			wantMessage: "catalog request failed: status 502",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestErrorsAs(t *testing.T) {
	err := fmt.Errorf("inserting user: %w", Conflict("user", "username", "bob", nil))

	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatal("errors.As() did not find *AppError in the chain")
	}
	if appErr.Field != "username" {
		t.Errorf("Field = %q, want %q", appErr.Field, "username")
	}
}

func TestUpstreamCarriesValidationField(t *testing.T) {
	err := Upstream("catalog", ValidationFailed("price", "item 2 has no price"))

	if !errors.Is(err, ErrUpstream) || !errors.Is(err, ErrValidation) {
		t.Fatalf("errors.Is() should match both ErrUpstream and ErrValidation, got %v", err)
	}
	if err.Field != "price" {
		t.Errorf("Field = %q, want %q", err.Field, "price")
	}

	plain := Upstream("catalog", errors.New("status 502"))
	if errors.Is(plain, ErrValidation) {
		t.Error("transport failure must not match ErrValidation")
	}
	if plain.Field != "" {
		t.Errorf("Field = %q, want empty", plain.Field)
	}
}
