package vehiclesrp

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

func (vehicles *Repo) Conn(c repo.Conn) repo.VehiclesConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Create(ctx context.Context, v *model.Vehicle) (*model.Vehicle, error) {
	return Create(ctx, cq.Conn, v)
}

func (cq connQueryer) ListByUser(ctx context.Context, userID int64) ([]model.Vehicle, error) {
	return ListByUser(ctx, cq.Conn, userID)
}

func (cq connQueryer) Deactivate(ctx context.Context, id, userID int64) (bool, error) {
	return Deactivate(ctx, cq.Conn, id, userID)
}

func (cq connQueryer) Count(ctx context.Context) (int, error) {
	return Count(ctx, cq.Conn)
}

type txQueryer struct {
	*postgres.Tx
}

func (vehicles *Repo) Tx(tx repo.Tx) repo.VehiclesTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Create(ctx context.Context, v *model.Vehicle) (*model.Vehicle, error) {
	return Create(ctx, tq.Tx, v)
}

func (tq txQueryer) ListByUser(ctx context.Context, userID int64) ([]model.Vehicle, error) {
	return ListByUser(ctx, tq.Tx, userID)
}

func (tq txQueryer) Deactivate(ctx context.Context, id, userID int64) (bool, error) {
	return Deactivate(ctx, tq.Tx, id, userID)
}

func (tq txQueryer) Count(ctx context.Context) (int, error) {
	return Count(ctx, tq.Tx)
}
