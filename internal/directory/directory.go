// Package directory abstracts the backend user service the users screen
// talks to. The screen controller depends only on this interface; the
// backing implementation may be the in-process usecase layer or a remote
// HTTP deployment of the same API.
package directory

import (
	"context"

	"user-admin-service/internal/domain/user"
)

// UserDirectory exposes user CRUD against the backend service. Every
// mutating call returns the affected record so callers can reference its
// fields afterwards; DeleteUser in particular returns the record that was
// removed, not the input id.
type UserDirectory interface {
	ListUsers(ctx context.Context) ([]user.User, error)
	CreateUser(ctx context.Context, u user.User) (*user.User, error)
	UpdateUser(ctx context.Context, u user.User) (*user.User, error)
	DeleteUser(ctx context.Context, id string) (*user.User, error)
}
