package users

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"

	"userdir/internal/audit"
	"userdir/internal/platform/metrics"
	"userdir/internal/platform/middleware"
	"userdir/pkg/domain"
	dErrors "userdir/pkg/domain-errors"
	"userdir/pkg/platform/sentinel"
)

// CreateParams carries the raw create input. Validation and normalization
// happen here, at the service boundary.
type CreateParams struct {
	ID          string
	Name        string
	PhoneNumber string
	Address     string
}

// UpdateParams carries a partial update; nil fields are left untouched.
type UpdateParams struct {
	Name        *string
	PhoneNumber *string
	Address     *string
}

// Service orchestrates validation, persistence, metrics, and audit.
type Service struct {
	store   Store
	metrics *metrics.Metrics
	audit   *audit.Recorder
	logger  *slog.Logger
	now     func() time.Time
}

func NewService(store Store, m *metrics.Metrics, rec *audit.Recorder, logger *slog.Logger) *Service {
	return &Service{
		store:   store,
		metrics: m,
		audit:   rec,
		logger:  logger,
		now:     time.Now,
	}
}

// Create validates, normalizes, and stores a new user.
func (s *Service) Create(ctx context.Context, params CreateParams) (User, error) {
	nationalID, err := domain.ParseNationalID(params.ID)
	if err != nil {
		return User{}, s.rejection(ctx, err)
	}
	phone, err := domain.ParsePhoneNumber(params.PhoneNumber)
	if err != nil {
		return User{}, s.rejection(ctx, err)
	}
	name, err := validateName(params.Name)
	if err != nil {
		return User{}, err
	}
	address, err := validateAddress(params.Address)
	if err != nil {
		return User{}, err
	}

	now := s.now().UTC()
	user := User{
		ID:          nationalID.String(),
		Name:        name,
		PhoneNumber: phone.String(),
		Address:     address,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.Create(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return User{}, dErrors.New(dErrors.CodeConflict, "user with this ID already exists")
		}
		s.logger.ErrorContext(ctx, "failed to create user", "user_id", user.ID, "error", err)
		return User{}, dErrors.New(dErrors.CodeInternal, "failed to create user")
	}

	s.logger.InfoContext(ctx, "user created",
		"user_id", user.ID,
		"actor", actorOrAnonymous(ctx),
	)
	if s.metrics != nil {
		s.metrics.UsersCreated.Inc()
	}
	s.audit.Record(ctx, audit.ActionUserCreated, user.ID)
	return user, nil
}

// Get retrieves a user by its stored ID. Lookups do not revalidate the path
// segment; an unknown or malformed ID is simply not found.
func (s *Service) Get(ctx context.Context, id string) (User, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return User{}, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		s.logger.ErrorContext(ctx, "failed to load user", "user_id", id, "error", err)
		return User{}, dErrors.New(dErrors.CodeInternal, "failed to load user")
	}
	return user, nil
}

// Update applies a partial update. Supplied fields are revalidated exactly as
// on create; the phone number is re-normalized.
func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return User{}, err
	}

	if params.Name != nil {
		name, err := validateName(*params.Name)
		if err != nil {
			return User{}, err
		}
		user.Name = name
	}
	if params.PhoneNumber != nil {
		phone, err := domain.ParsePhoneNumber(*params.PhoneNumber)
		if err != nil {
			return User{}, s.rejection(ctx, err)
		}
		user.PhoneNumber = phone.String()
	}
	if params.Address != nil {
		address, err := validateAddress(*params.Address)
		if err != nil {
			return User{}, err
		}
		user.Address = address
	}
	user.UpdatedAt = s.now().UTC()

	if err := s.store.Update(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return User{}, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		s.logger.ErrorContext(ctx, "failed to update user", "user_id", id, "error", err)
		return User{}, dErrors.New(dErrors.CodeInternal, "failed to update user")
	}

	s.logger.InfoContext(ctx, "user updated", "user_id", id, "actor", actorOrAnonymous(ctx))
	if s.metrics != nil {
		s.metrics.UsersUpdated.Inc()
	}
	s.audit.Record(ctx, audit.ActionUserUpdated, id)
	return user, nil
}

// Delete removes a user.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		s.logger.ErrorContext(ctx, "failed to delete user", "user_id", id, "error", err)
		return dErrors.New(dErrors.CodeInternal, "failed to delete user")
	}

	s.logger.InfoContext(ctx, "user deleted", "user_id", id, "actor", actorOrAnonymous(ctx))
	if s.metrics != nil {
		s.metrics.UsersDeleted.Inc()
	}
	s.audit.Record(ctx, audit.ActionUserDeleted, id)
	return nil
}

// ListIDs returns every stored user ID.
func (s *Service) ListIDs(ctx context.Context) ([]string, error) {
	ids, err := s.store.ListIDs(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list user ids", "error", err)
		return nil, dErrors.New(dErrors.CodeInternal, "failed to list users")
	}
	return ids, nil
}

// List returns a page of users with totals.
func (s *Service) List(ctx context.Context, filter ListFilter) (Page, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 || filter.PerPage > 100 {
		filter.PerPage = 10
	}
	page, err := s.store.List(ctx, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list users", "error", err)
		return Page{}, dErrors.New(dErrors.CodeInternal, "failed to list users")
	}
	return page, nil
}

// Healthy reports whether the backing store answers.
func (s *Service) Healthy(ctx context.Context) bool {
	return s.store.Ping(ctx) == nil
}

// rejection converts a domain validation error into its coded form and counts
// it.
func (s *Service) rejection(ctx context.Context, err error) error {
	ve, ok := domain.AsValidationError(err)
	if !ok {
		return dErrors.New(dErrors.CodeInternal, "unexpected validation failure")
	}
	if s.metrics != nil {
		s.metrics.RecordValidationFailure(ve.Field, string(ve.Reason))
	}
	s.logger.DebugContext(ctx, "validation rejected input",
		"field", ve.Field,
		"reason", string(ve.Reason),
	)
	return dErrors.NewValidation(ve.Field, string(ve.Reason), ve.Detail)
}

func validateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if !govalidator.StringLength(name, "2", "100") {
		return "", dErrors.NewValidation("name", string(domain.ReasonMalformed), "name must be 2 to 100 characters")
	}
	return name, nil
}

func validateAddress(raw string) (string, error) {
	address := strings.TrimSpace(raw)
	if !govalidator.StringLength(address, "1", "200") {
		return "", dErrors.NewValidation("address", string(domain.ReasonMalformed), "address must be 1 to 200 characters")
	}
	return address, nil
}

func actorOrAnonymous(ctx context.Context) string {
	if actor := middleware.GetUsername(ctx); actor != "" {
		return actor
	}
	return audit.AnonymousActor
}
