package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestMessage(t *testing.T) {
	tests := map[string]struct {
		err  error
		want string
	}{
		"invalid prefix stripped":  {err: fmt.Errorf("%w: name too short", ErrInvalid), want: "name too short"},
		"conflict prefix stripped": {err: fmt.Errorf("%w: category already exists", ErrConflict), want: "category already exists"},
		"context before kind":      {err: fmt.Errorf("add item: %w", fmt.Errorf("%w: size is required", ErrInvalid)), want: "size is required"},
		"bare kind kept":           {err: ErrNotFound, want: "not found"},
		"other error kept":         {err: errors.New("boom"), want: "boom"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := Message(tt.err); got != tt.want {
				t.Fatalf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}
