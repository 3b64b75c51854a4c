package audit

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userdir/internal/platform/middleware"
)

func TestInMemoryStore_ListRecent(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rec := NewRecorder(store, logger)
	rec.Record(ctx, ActionUserCreated, "123456782")
	rec.Record(ctx, ActionUserUpdated, "123456782")
	rec.Record(ctx, ActionUserDeleted, "123456782")

	events, err := store.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, ActionUserDeleted, events[0].Action)
	assert.Equal(t, ActionUserUpdated, events[1].Action)

	all, err := store.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRecorder_AttributesActor(t *testing.T) {
	store := NewInMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rec := NewRecorder(store, logger)

	ctx := context.WithValue(context.Background(), middleware.ContextKeyUsername, "admin")
	ctx = context.WithValue(ctx, middleware.ContextKeyRequestID, "req-1")
	rec.Record(ctx, ActionUserCreated, "123456782")

	rec.Record(context.Background(), ActionUserDeleted, "123456782")

	events, err := store.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, AnonymousActor, events[0].Actor)
	assert.Equal(t, "admin", events[1].Actor)
	assert.Equal(t, "req-1", events[1].RequestID)
	assert.False(t, events[1].At.IsZero())
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var rec *Recorder
	rec.Record(context.Background(), ActionUserCreated, "123456782")
}
