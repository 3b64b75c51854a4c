package users

import "context"

// Store is interface-driven to keep the service testable and to allow swapping
// in-memory, PostgreSQL, or cached persistence without rewiring business code.
// Implementations return sentinel.ErrNotFound / sentinel.ErrConflict.
type Store interface {
	Create(ctx context.Context, user User) error
	FindByID(ctx context.Context, id string) (User, error)
	Update(ctx context.Context, user User) error
	Delete(ctx context.Context, id string) error
	ListIDs(ctx context.Context) ([]string, error)
	List(ctx context.Context, filter ListFilter) (Page, error)
	Ping(ctx context.Context) error
}
