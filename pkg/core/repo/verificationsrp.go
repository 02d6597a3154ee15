package repo

import (
	"context"

	"github.com/momeni/campus-parking/pkg/core/model"
)

type VerificationsConnQueryer interface {
	VerificationsQueryer
}

type VerificationsTxQueryer interface {
	VerificationsQueryer
}

type VerificationsQueryer interface {
	// Get returns nil without an error when the user has no
	// verification record yet.
	Get(ctx context.Context, userID int64) (*model.Verification, error)
	// SubmitImages upserts the user's verification record, updating
	// the non-nil image references and resetting the status to
	// pending.
	SubmitImages(ctx context.Context, userID int64, profileURL, idURL *string) error
	// Resubmit resets the record to pending and clears any previous
	// review verdict.
	Resubmit(ctx context.Context, userID int64) error
	ListPending(ctx context.Context) ([]model.PendingVerification, error)
	// Review records the reviewer's verdict; the status must be
	// approved or rejected. It returns the reviewed record's user
	// identifier, so the caller can reflect an approval on the user
	// row within the same transaction.
	Review(ctx context.Context, verificationID, reviewerID int64, s model.VerificationStatus, notes *string) (userID int64, err error)
}

type Verifications interface {
	Conn(Conn) VerificationsConnQueryer
	Tx(Tx) VerificationsTxQueryer
}
