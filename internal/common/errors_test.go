package common

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserError(t *testing.T) {
	inner := errors.New("disk full")
	err := NewUserError("could not save ledger", inner)

	assert.Equal(t, "could not save ledger: disk full", err.Error())
	assert.True(t, errors.Is(err, inner))

	bare := NewUserError("nothing to show", nil)
	assert.Equal(t, "nothing to show", bare.Error())
}

func TestSentinelWrapping(t *testing.T) {
	wrapped := fmt.Errorf("add transaction: %w", ErrInvalidAmount)
	assert.True(t, errors.Is(wrapped, ErrInvalidAmount))
	assert.False(t, errors.Is(wrapped, ErrInvalidKind))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    slog.Level
		wantErr bool
	}{
		{name: "debug", input: "debug", want: slog.LevelDebug},
		{name: "info", input: "info", want: slog.LevelInfo},
		{name: "empty defaults to info", input: "", want: slog.LevelInfo},
		{name: "warn", input: "warn", want: slog.LevelWarn},
		{name: "warning alias", input: "warning", want: slog.LevelWarn},
		{name: "error", input: "ERROR", want: slog.LevelError},
		{name: "unknown", input: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidConfig))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
