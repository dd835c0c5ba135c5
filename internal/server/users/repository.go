package users

import (
	"context"
)

// Repository persists User records. Implementations map driver-level
// failures to the sentinels in internal/common: a missing row becomes
// common.ErrorNotFound, a violated email uniqueness constraint becomes
// common.ErrorAlreadyExists.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, user *User) (*User, error)
	Delete(ctx context.Context, id string) error
}
