// Package users implements the user directory: CRUD over records keyed by a
// validated national ID.
package users

import "time"

// User is a stored directory record. ID and PhoneNumber hold normalized
// values; they were parsed at the boundary and never change shape afterwards.
type User struct {
	ID          string
	Name        string
	PhoneNumber string
	Address     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ListFilter selects a page of users. Search matches name or address,
// case-insensitively.
type ListFilter struct {
	Page    int
	PerPage int
	Search  string
}

// Page is one page of users plus the total match count.
type Page struct {
	Users   []User
	Total   int
	Page    int
	PerPage int
}
