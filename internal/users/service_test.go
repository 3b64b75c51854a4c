package users

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	dErrors "userdir/pkg/domain-errors"
)

const (
	validID    = "123456782"
	validPhone = "0501234567"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
	store   *InMemoryStore
	clock   time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.clock = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	s.service = NewService(s.store, nil, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.service.now = func() time.Time { return s.clock }
}

func (s *ServiceSuite) create(id string) User {
	user, err := s.service.Create(context.Background(), CreateParams{
		ID:          id,
		Name:        "Dana Levi",
		PhoneNumber: validPhone,
		Address:     "1 Rothschild Blvd, Tel Aviv",
	})
	s.Require().NoError(err)
	return user
}

func (s *ServiceSuite) TestCreateNormalizesAndStamps() {
	user, err := s.service.Create(context.Background(), CreateParams{
		ID:          "12345674", // 8 digits, padded on parse
		Name:        "  Dana Levi  ",
		PhoneNumber: "050-123-4567",
		Address:     "1 Rothschild Blvd",
	})

	s.Require().NoError(err)
	s.Equal("012345674", user.ID)
	s.Equal("Dana Levi", user.Name)
	s.Equal("0501234567", user.PhoneNumber)
	s.Equal(s.clock, user.CreatedAt)
	s.Equal(s.clock, user.UpdatedAt)

	stored, err := s.store.FindByID(context.Background(), "012345674")
	s.Require().NoError(err)
	s.Equal(user, stored)
}

func (s *ServiceSuite) TestCreateRejectsBadChecksum() {
	_, err := s.service.Create(context.Background(), CreateParams{
		ID:          "123456789",
		Name:        "Dana Levi",
		PhoneNumber: validPhone,
		Address:     "1 Rothschild Blvd",
	})

	s.Require().Error(err)
	var coded dErrors.Error
	s.Require().ErrorAs(err, &coded)
	s.Equal(dErrors.CodeValidation, coded.Code)
	s.Equal("id", coded.Field)
	s.Equal("checksum_mismatch", coded.Reason)
}

func (s *ServiceSuite) TestCreateRejectsBadPhonePrefix() {
	_, err := s.service.Create(context.Background(), CreateParams{
		ID:          validID,
		Name:        "Dana Levi",
		PhoneNumber: "0601234567",
		Address:     "1 Rothschild Blvd",
	})

	var coded dErrors.Error
	s.Require().ErrorAs(err, &coded)
	s.Equal(dErrors.CodeValidation, coded.Code)
	s.Equal("phone_number", coded.Field)
	s.Equal("invalid_prefix", coded.Reason)
}

func (s *ServiceSuite) TestCreateRejectsShortName() {
	_, err := s.service.Create(context.Background(), CreateParams{
		ID:          validID,
		Name:        " A ",
		PhoneNumber: validPhone,
		Address:     "1 Rothschild Blvd",
	})

	var coded dErrors.Error
	s.Require().ErrorAs(err, &coded)
	s.Equal(dErrors.CodeValidation, coded.Code)
	s.Equal("name", coded.Field)
}

func (s *ServiceSuite) TestCreateRejectsEmptyAddress() {
	_, err := s.service.Create(context.Background(), CreateParams{
		ID:          validID,
		Name:        "Dana Levi",
		PhoneNumber: validPhone,
		Address:     "   ",
	})

	var coded dErrors.Error
	s.Require().ErrorAs(err, &coded)
	s.Equal(dErrors.CodeValidation, coded.Code)
	s.Equal("address", coded.Field)
}

func (s *ServiceSuite) TestCreateDuplicateConflicts() {
	s.create(validID)

	_, err := s.service.Create(context.Background(), CreateParams{
		ID:          validID,
		Name:        "Other Person",
		PhoneNumber: validPhone,
		Address:     "Elsewhere",
	})

	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *ServiceSuite) TestGetMissingIsNotFound() {
	_, err := s.service.Get(context.Background(), "320780695")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestGetDoesNotValidatePathID() {
	// Garbage IDs never match a stored record, so they read as not found
	// rather than as validation failures.
	_, err := s.service.Get(context.Background(), "not-an-id")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestUpdateAppliesOnlySuppliedFields() {
	created := s.create(validID)
	s.clock = s.clock.Add(time.Hour)

	newPhone := "0529876543"
	updated, err := s.service.Update(context.Background(), validID, UpdateParams{
		PhoneNumber: &newPhone,
	})

	s.Require().NoError(err)
	s.Equal(created.Name, updated.Name)
	s.Equal(created.Address, updated.Address)
	s.Equal("0529876543", updated.PhoneNumber)
	s.Equal(created.CreatedAt, updated.CreatedAt)
	s.Equal(s.clock, updated.UpdatedAt)
}

func (s *ServiceSuite) TestUpdateRevalidatesPhone() {
	s.create(validID)

	bad := "12345"
	_, err := s.service.Update(context.Background(), validID, UpdateParams{PhoneNumber: &bad})

	var coded dErrors.Error
	s.Require().ErrorAs(err, &coded)
	s.Equal(dErrors.CodeValidation, coded.Code)
	s.Equal("phone_number", coded.Field)
	s.Equal("malformed", coded.Reason)
}

func (s *ServiceSuite) TestUpdateMissingIsNotFound() {
	name := "Someone Else"
	_, err := s.service.Update(context.Background(), "320780695", UpdateParams{Name: &name})
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestDelete() {
	s.create(validID)

	s.Require().NoError(s.service.Delete(context.Background(), validID))

	_, err := s.service.Get(context.Background(), validID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	err = s.service.Delete(context.Background(), validID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestListIDs() {
	s.create("320780695")
	s.create(validID)

	ids, err := s.service.ListIDs(context.Background())
	s.Require().NoError(err)
	s.Equal([]string{"123456782", "320780695"}, ids)
}

func (s *ServiceSuite) TestListClampsPagination() {
	s.create(validID)

	page, err := s.service.List(context.Background(), ListFilter{Page: 0, PerPage: 9999})
	s.Require().NoError(err)
	s.Equal(1, page.Page)
	s.Equal(10, page.PerPage)
	s.Equal(1, page.Total)
	s.Len(page.Users, 1)
}
