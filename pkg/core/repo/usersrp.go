package repo

import (
	"context"

	"github.com/momeni/campus-parking/pkg/core/model"
)

type UsersConnQueryer interface {
	UsersQueryer
}

type UsersTxQueryer interface {
	UsersQueryer
}

type UsersQueryer interface {
	// Create inserts a user row keeping the given bcrypt password
	// hash, returning the stored user with its assigned identifier.
	Create(ctx context.Context, u *model.User, passwordHash string) (*model.User, error)
	// FindByEmail returns the user and its stored password hash.
	FindByEmail(ctx context.Context, email string) (*model.User, string, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	UpdateProfile(ctx context.Context, id int64, fullName, collegeID, email string) error
	SetVerified(ctx context.Context, id int64, verified bool) error
	Count(ctx context.Context) (int, error)
	CountByRole(ctx context.Context, r model.Role) (int, error)
}

type Users interface {
	Conn(Conn) UsersConnQueryer
	Tx(Tx) UsersTxQueryer
}
