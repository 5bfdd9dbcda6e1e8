// Package store is the entity query layer. Every store holds the injected
// database handle; every read is scoped by the caller's visibility and every
// multi-step write runs inside a single transaction.
package store

import "errors"

var (
	// ErrNotFound covers both a missing row and a row outside the caller's
	// scope. Callers cannot tell the two apart.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyMember rejects adding a user who is already the owner or a
	// member of the team.
	ErrAlreadyMember = errors.New("user is already a team member")
)

// UserSummary is the reduced user shape returned by listing endpoints.
type UserSummary struct {
	ID    string  `json:"id"`
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Image *string `json:"image"`
}
