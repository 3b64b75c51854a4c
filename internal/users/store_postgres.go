package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"userdir/pkg/platform/sentinel"
)

// uniqueViolation is the PostgreSQL error code for duplicate keys.
const uniqueViolation = "23505"

// PostgresStore persists users in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, user User) error {
	query := `
		INSERT INTO users (id, name, phone_number, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		user.ID, user.Name, user.PhoneNumber, user.Address, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (User, error) {
	query := `
		SELECT id, name, phone_number, address, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	var user User
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.PhoneNumber, &user.Address, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, sentinel.ErrNotFound
		}
		return User{}, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *PostgresStore) Update(ctx context.Context, user User) error {
	query := `
		UPDATE users
		SET name = $2, phone_number = $3, address = $4, updated_at = $5
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		user.ID, user.Name, user.PhoneNumber, user.Address, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list user ids: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user ids: %w", err)
	}
	return ids, nil
}

func (s *PostgresStore) List(ctx context.Context, filter ListFilter) (Page, error) {
	pattern := "%" + filter.Search + "%"

	var total int
	countQuery := `
		SELECT COUNT(*)
		FROM users
		WHERE $1 = '' OR name ILIKE $2 OR address ILIKE $2
	`
	if err := s.db.QueryRowContext(ctx, countQuery, filter.Search, pattern).Scan(&total); err != nil {
		return Page{}, fmt.Errorf("count users: %w", err)
	}

	query := `
		SELECT id, name, phone_number, address, created_at, updated_at
		FROM users
		WHERE $1 = '' OR name ILIKE $2 OR address ILIKE $2
		ORDER BY created_at, id
		OFFSET $3 LIMIT $4
	`
	offset := (filter.Page - 1) * filter.PerPage
	rows, err := s.db.QueryContext(ctx, query, filter.Search, pattern, offset, filter.PerPage)
	if err != nil {
		return Page{}, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	page := Page{Users: []User{}, Total: total, Page: filter.Page, PerPage: filter.PerPage}
	for rows.Next() {
		var user User
		if err := rows.Scan(
			&user.ID, &user.Name, &user.PhoneNumber, &user.Address, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return Page{}, fmt.Errorf("scan user: %w", err)
		}
		page.Users = append(page.Users, user)
	}
	if err := rows.Err(); err != nil {
		return Page{}, fmt.Errorf("iterate users: %w", err)
	}
	return page, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
