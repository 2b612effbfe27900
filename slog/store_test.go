package slog_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/vanity"
	"github.com/fwojciec/vanity/mock"
	vslog "github.com/fwojciec/vanity/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingStore_Load(t *testing.T) {
	t.Parallel()

	t.Run("logs loaded sizes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.ResultStore{
			LoadFn: func(_ context.Context) (*vanity.State, error) {
				state := vanity.NewState()
				state.MarkAvailable("abc")
				state.RestoreUnavailable("def", "2026-10-17")
				state.RestoreUnavailable("ghi", "2026-10-17")
				return state, nil
			},
		}

		store := vslog.NewLoggingStore(inner, debugLogger(&buf))
		state, err := store.Load(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"abc"}, state.Available())
		output := buf.String()
		assert.Contains(t, output, "state loaded")
		assert.Contains(t, output, "available=1")
		assert.Contains(t, output, "unavailable=2")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.ResultStore{
			LoadFn: func(_ context.Context) (*vanity.State, error) {
				return nil, errors.New("permission denied")
			},
		}

		store := vslog.NewLoggingStore(inner, debugLogger(&buf))
		_, err := store.Load(context.Background())

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"permission denied\"")
	})
}

func TestLoggingStore_Persist(t *testing.T) {
	t.Parallel()

	t.Run("delegates and logs the digest", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		var persisted *vanity.State
		inner := &mock.ResultStore{
			PersistFn: func(_ context.Context, state *vanity.State) error {
				persisted = state
				return nil
			},
		}
		state := vanity.NewState()
		state.MarkAvailable("abc")

		store := vslog.NewLoggingStore(inner, debugLogger(&buf))
		err := store.Persist(context.Background(), state)

		require.NoError(t, err)
		assert.Same(t, state, persisted)
		output := buf.String()
		assert.Contains(t, output, "state persisted")
		assert.Contains(t, output, "digest="+state.Digest())
	})
}
