//go:build integration

package users

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"userdir/internal/platform/postgres"
	"userdir/pkg/platform/sentinel"
	"userdir/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	store *PostgresStore
	pg    *containers.PostgresContainer
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.Require().NoError(postgres.Migrate(context.Background(), s.pg.DB))
	s.store = NewPostgresStore(s.pg.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	_, err := s.pg.DB.Exec("TRUNCATE users")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) newUser(id string) User {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return User{
		ID:          id,
		Name:        "Dana Levi",
		PhoneNumber: "0501234567",
		Address:     "1 Rothschild Blvd, Tel Aviv",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (s *PostgresStoreSuite) TestCreateAndFind() {
	ctx := context.Background()
	user := s.newUser("123456782")

	s.Require().NoError(s.store.Create(ctx, user))

	got, err := s.store.FindByID(ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(user, got)
}

func (s *PostgresStoreSuite) TestDuplicateIsConflict() {
	ctx := context.Background()
	user := s.newUser("123456782")

	s.Require().NoError(s.store.Create(ctx, user))
	s.ErrorIs(s.store.Create(ctx, user), sentinel.ErrConflict)
}

func (s *PostgresStoreSuite) TestUpdateAndDelete() {
	ctx := context.Background()
	user := s.newUser("123456782")
	s.Require().NoError(s.store.Create(ctx, user))

	user.Name = "Dana Levi-Cohen"
	user.UpdatedAt = user.UpdatedAt.Add(time.Hour)
	s.Require().NoError(s.store.Update(ctx, user))

	got, err := s.store.FindByID(ctx, user.ID)
	s.Require().NoError(err)
	s.Equal("Dana Levi-Cohen", got.Name)

	s.Require().NoError(s.store.Delete(ctx, user.ID))
	_, err = s.store.FindByID(ctx, user.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.ErrorIs(s.store.Update(ctx, user), sentinel.ErrNotFound)
	s.ErrorIs(s.store.Delete(ctx, user.ID), sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestListIDsSorted() {
	ctx := context.Background()
	for _, id := range []string{"300000003", "100000009", "200000006"} {
		s.Require().NoError(s.store.Create(ctx, s.newUser(id)))
	}

	ids, err := s.store.ListIDs(ctx)
	s.Require().NoError(err)
	s.Equal([]string{"100000009", "200000006", "300000003"}, ids)
}

func (s *PostgresStoreSuite) TestListPaginationAndSearch() {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Microsecond)
	for i := 0; i < 15; i++ {
		user := s.newUser(fmt.Sprintf("%09d", i))
		user.Name = fmt.Sprintf("User %02d", i)
		user.CreatedAt = base.Add(time.Duration(i) * time.Second)
		user.UpdatedAt = user.CreatedAt
		s.Require().NoError(s.store.Create(ctx, user))
	}

	page, err := s.store.List(ctx, ListFilter{Page: 2, PerPage: 10})
	s.Require().NoError(err)
	s.Equal(15, page.Total)
	s.Len(page.Users, 5)
	s.Equal("User 10", page.Users[0].Name)

	page, err = s.store.List(ctx, ListFilter{Page: 1, PerPage: 10, Search: "user 03"})
	s.Require().NoError(err)
	s.Equal(1, page.Total)
	s.Equal("000000003", page.Users[0].ID)
}
