package user

import (
	"context"
	"errors"
)

// ErrNotFound is returned by lookups when no user matches.
var ErrNotFound = errors.New("user not found")

type Repository interface {
	// FindByCredentials returns the user matching the exact username and
	// password pair, or ErrNotFound.
	FindByCredentials(ctx context.Context, username, password string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Insert(ctx context.Context, u *User) error
	Delete(ctx context.Context, username string) error
	UpdatePassword(ctx context.Context, username, password string) error
}
