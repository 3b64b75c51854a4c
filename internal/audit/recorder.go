package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"userdir/internal/platform/middleware"
)

// Recorder appends mutation events, pulling actor and request ID from the
// request context. A nil Recorder is a no-op so wiring stays optional in tests.
type Recorder struct {
	store  Store
	logger *slog.Logger
}

func NewRecorder(store Store, logger *slog.Logger) *Recorder {
	return &Recorder{store: store, logger: logger}
}

// Record appends one event. Failures are logged, never propagated: losing an
// audit line must not fail the mutation it describes.
func (r *Recorder) Record(ctx context.Context, action, subjectID string) {
	if r == nil {
		return
	}
	actor := middleware.GetUsername(ctx)
	if actor == "" {
		actor = AnonymousActor
	}
	event := Event{
		ID:        uuid.New(),
		Action:    action,
		SubjectID: subjectID,
		Actor:     actor,
		RequestID: middleware.GetRequestID(ctx),
		At:        time.Now().UTC(),
	}
	if err := r.store.Append(ctx, event); err != nil {
		r.logger.ErrorContext(ctx, "audit append failed",
			"action", action,
			"subject_id", subjectID,
			"error", err,
		)
	}
}
