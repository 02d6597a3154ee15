package flagsrp

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

func (flags *Repo) Conn(c repo.Conn) repo.FlagsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) ListOpen(ctx context.Context) ([]model.FlagDetails, error) {
	return ListOpen(ctx, cq.Conn)
}

func (cq connQueryer) Close(ctx context.Context, flagID, adminID int64, note *string) (bool, error) {
	return Close(ctx, cq.Conn, flagID, adminID, note)
}

func (cq connQueryer) CountOpen(ctx context.Context) (int, error) {
	return CountOpen(ctx, cq.Conn)
}

type txQueryer struct {
	*postgres.Tx
}

func (flags *Repo) Tx(tx repo.Tx) repo.FlagsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) ListOpen(ctx context.Context) ([]model.FlagDetails, error) {
	return ListOpen(ctx, tq.Tx)
}

func (tq txQueryer) Close(ctx context.Context, flagID, adminID int64, note *string) (bool, error) {
	return Close(ctx, tq.Tx, flagID, adminID, note)
}

func (tq txQueryer) CountOpen(ctx context.Context) (int, error) {
	return CountOpen(ctx, tq.Tx)
}
