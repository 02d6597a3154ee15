package verificationsrp

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

func (verifications *Repo) Conn(c repo.Conn) repo.VerificationsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Get(ctx context.Context, userID int64) (*model.Verification, error) {
	return Get(ctx, cq.Conn, userID)
}

func (cq connQueryer) SubmitImages(ctx context.Context, userID int64, profileURL, idURL *string) error {
	return SubmitImages(ctx, cq.Conn, userID, profileURL, idURL)
}

func (cq connQueryer) Resubmit(ctx context.Context, userID int64) error {
	return Resubmit(ctx, cq.Conn, userID)
}

func (cq connQueryer) ListPending(ctx context.Context) ([]model.PendingVerification, error) {
	return ListPending(ctx, cq.Conn)
}

func (cq connQueryer) Review(ctx context.Context, verificationID, reviewerID int64, s model.VerificationStatus, notes *string) (int64, error) {
	return Review(ctx, cq.Conn, verificationID, reviewerID, s, notes)
}

type txQueryer struct {
	*postgres.Tx
}

func (verifications *Repo) Tx(tx repo.Tx) repo.VerificationsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Get(ctx context.Context, userID int64) (*model.Verification, error) {
	return Get(ctx, tq.Tx, userID)
}

func (tq txQueryer) SubmitImages(ctx context.Context, userID int64, profileURL, idURL *string) error {
	return SubmitImages(ctx, tq.Tx, userID, profileURL, idURL)
}

func (tq txQueryer) Resubmit(ctx context.Context, userID int64) error {
	return Resubmit(ctx, tq.Tx, userID)
}

func (tq txQueryer) ListPending(ctx context.Context) ([]model.PendingVerification, error) {
	return ListPending(ctx, tq.Tx)
}

func (tq txQueryer) Review(ctx context.Context, verificationID, reviewerID int64, s model.VerificationStatus, notes *string) (int64, error) {
	return Review(ctx, tq.Tx, verificationID, reviewerID, s, notes)
}
