//go:build integration

package audit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userdir/internal/platform/postgres"
	"userdir/pkg/testutil/containers"
)

func TestPostgresStoreAppendAndList(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	pg := containers.NewPostgresContainer(t)
	require.NoError(t, postgres.Migrate(ctx, pg.DB))
	store := NewPostgresStore(pg.DB)

	base := time.Now().UTC().Truncate(time.Microsecond)
	actions := []string{ActionUserCreated, ActionUserUpdated, ActionUserDeleted}
	for i, action := range actions {
		err := store.Append(ctx, Event{
			ID:        uuid.New(),
			Action:    action,
			SubjectID: "123456782",
			Actor:     "admin",
			RequestID: "req-1",
			At:        base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}

	events, err := store.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)

	// Newest first.
	assert.Equal(t, ActionUserDeleted, events[0].Action)
	assert.Equal(t, ActionUserUpdated, events[1].Action)

	all, err := store.ListRecent(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
