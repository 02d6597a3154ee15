package usersrp

import (
	"context"

	"github.com/momeni/campus-parking/pkg/adapter/db/postgres"
	"github.com/momeni/campus-parking/pkg/core/model"
	"github.com/momeni/campus-parking/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

func (users *Repo) Conn(c repo.Conn) repo.UsersConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Create(ctx context.Context, u *model.User, passwordHash string) (*model.User, error) {
	return Create(ctx, cq.Conn, u, passwordHash)
}

func (cq connQueryer) FindByEmail(ctx context.Context, email string) (*model.User, string, error) {
	return FindByEmail(ctx, cq.Conn, email)
}

func (cq connQueryer) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return FindByID(ctx, cq.Conn, id)
}

func (cq connQueryer) UpdateProfile(ctx context.Context, id int64, fullName, collegeID, email string) error {
	return UpdateProfile(ctx, cq.Conn, id, fullName, collegeID, email)
}

func (cq connQueryer) SetVerified(ctx context.Context, id int64, verified bool) error {
	return SetVerified(ctx, cq.Conn, id, verified)
}

func (cq connQueryer) Count(ctx context.Context) (int, error) {
	return Count(ctx, cq.Conn)
}

func (cq connQueryer) CountByRole(ctx context.Context, r model.Role) (int, error) {
	return CountByRole(ctx, cq.Conn, r)
}

type txQueryer struct {
	*postgres.Tx
}

func (users *Repo) Tx(tx repo.Tx) repo.UsersTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Create(ctx context.Context, u *model.User, passwordHash string) (*model.User, error) {
	return Create(ctx, tq.Tx, u, passwordHash)
}

func (tq txQueryer) FindByEmail(ctx context.Context, email string) (*model.User, string, error) {
	return FindByEmail(ctx, tq.Tx, email)
}

func (tq txQueryer) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return FindByID(ctx, tq.Tx, id)
}

func (tq txQueryer) UpdateProfile(ctx context.Context, id int64, fullName, collegeID, email string) error {
	return UpdateProfile(ctx, tq.Tx, id, fullName, collegeID, email)
}

func (tq txQueryer) SetVerified(ctx context.Context, id int64, verified bool) error {
	return SetVerified(ctx, tq.Tx, id, verified)
}

func (tq txQueryer) Count(ctx context.Context) (int, error) {
	return Count(ctx, tq.Tx)
}

func (tq txQueryer) CountByRole(ctx context.Context, r model.Role) (int, error) {
	return CountByRole(ctx, tq.Tx, r)
}
