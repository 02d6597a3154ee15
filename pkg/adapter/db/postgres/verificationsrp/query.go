// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package verificationsrp implements the identity verifications
// repository over a postgres database. Each user owns at most one
// verification row (enforced with a unique index on user_id), so the
// submission query is an upsert.
package verificationsrp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/momeni/campus-parking/pkg/adapter/db/postgres"
	"github.com/momeni/campus-parking/pkg/core/cerr"
	"github.com/momeni/campus-parking/pkg/core/model"
	"gopkg.in/guregu/null.v4"
	"gorm.io/gorm"
)

type gVerification struct {
	ID              int64 `gorm:"primaryKey"`
	UserID          int64
	ProfileImageURL null.String
	IDImageURL      null.String `gorm:"column:id_image_url"`
	Status          string
	ReviewerID      null.Int
	ReviewedAt      null.Time
	Notes           null.String
}

func (gv *gVerification) TableName() string {
	return "verifications"
}

func (gv *gVerification) Model() (*model.Verification, error) {
	status, err := model.ParseVerificationStatus(gv.Status)
	if err != nil {
		return nil, fmt.Errorf("verification %d: %w", gv.ID, err)
	}
	return &model.Verification{
		ID:              gv.ID,
		UserID:          gv.UserID,
		ProfileImageURL: gv.ProfileImageURL.Ptr(),
		IDImageURL:      gv.IDImageURL.Ptr(),
		Status:          status,
		ReviewerID:      gv.ReviewerID.Ptr(),
		ReviewedAt:      gv.ReviewedAt.Ptr(),
		Notes:           gv.Notes.Ptr(),
	}, nil
}

// Get loads the user's verification record, returning nil when the
// user never submitted one.
func Get[Q postgres.Queryer](ctx context.Context, q Q, userID int64) (*model.Verification, error) {
	gdb := q.GORM(ctx)
	var gv gVerification
	err := gdb.Where("user_id=?", userID).Take(&gv).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("query: %w", err)
	}
	return gv.Model()
}

// SubmitImages upserts the user's verification record. Only the
// non-nil image references are overwritten, so uploading the two
// images in separate requests works; any submission resets the status
// to pending and clears the previous review verdict.
func SubmitImages[Q postgres.Queryer](ctx context.Context, q Q, userID int64, profileURL, idURL *string) error {
	gdb := q.GORM(ctx)
	err := gdb.Exec(`
INSERT INTO verifications (user_id, profile_image_url, id_image_url)
VALUES (?, ?, ?)
ON CONFLICT (user_id) DO UPDATE SET
    profile_image_url = COALESCE(
        EXCLUDED.profile_image_url, verifications.profile_image_url),
    id_image_url = COALESCE(
        EXCLUDED.id_image_url, verifications.id_image_url),
    status = 'pending',
    reviewer_id = NULL, reviewed_at = NULL, notes = NULL`,
		userID, null.StringFromPtr(profileURL), null.StringFromPtr(idURL),
	).Error
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}
	return nil
}

// Resubmit resets the user's verification record to pending, clearing
// any previous review verdict while keeping the submitted images.
func Resubmit[Q postgres.Queryer](ctx context.Context, q Q, userID int64) error {
	gdb := q.GORM(ctx)
	res := gdb.Exec(`
UPDATE verifications
SET status = 'pending',
    reviewer_id = NULL, reviewed_at = NULL, notes = NULL
WHERE user_id = ?`, userID)
	if err := res.Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if res.RowsAffected != 1 {
		return cerr.NotFound(fmt.Errorf(
			"user %d has no verification record", userID,
		))
	}
	return nil
}

// ListPending lists the pending verifications joined with the
// submitting user's details for the review queue.
func ListPending[Q postgres.Queryer](ctx context.Context, q Q) ([]model.PendingVerification, error) {
	gdb := q.GORM(ctx)
	var rows []struct {
		VerificationID  int64
		UserID          int64
		FullName        string
		Email           string
		CollegeID       string
		ProfileImageURL null.String
		IDImageURL      null.String `gorm:"column:id_image_url"`
		SubmittedAt     time.Time
	}
	err := gdb.Raw(`
SELECT v.id AS verification_id, u.id AS user_id, u.full_name, u.email,
    u.college_id, v.profile_image_url, v.id_image_url,
    u.created_at AS submitted_at
FROM verifications v
JOIN users u ON u.id = v.user_id
WHERE v.status = 'pending'
ORDER BY v.id`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	pvs := make([]model.PendingVerification, len(rows))
	for i, r := range rows {
		pvs[i] = model.PendingVerification{
			VerificationID:  r.VerificationID,
			UserID:          r.UserID,
			FullName:        r.FullName,
			Email:           r.Email,
			CollegeID:       r.CollegeID,
			ProfileImageURL: r.ProfileImageURL.Ptr(),
			IDImageURL:      r.IDImageURL.Ptr(),
			SubmittedAt:     r.SubmittedAt,
		}
	}
	return pvs, nil
}

// Review records the reviewer's verdict on one verification record and
// returns the identifier of the reviewed user. Only approved and
// rejected are legal verdicts here; the pending state is re-entered
// through Resubmit instead.
func Review[Q postgres.Queryer](ctx context.Context, q Q, verificationID, reviewerID int64, s model.VerificationStatus, notes *string) (int64, error) {
	if s != model.VerificationApproved &&
		s != model.VerificationRejected {
		return 0, cerr.BadRequest(fmt.Errorf(
			"verdict must be approved or rejected, got %d", int(s),
		))
	}
	gdb := q.GORM(ctx)
	var rows []struct {
		UserID int64
	}
	err := gdb.Raw(`
UPDATE verifications
SET status = ?, reviewer_id = ?, reviewed_at = now(), notes = ?
WHERE id = ?
RETURNING user_id`,
		s.String(), reviewerID, null.StringFromPtr(notes),
		verificationID,
	).Scan(&rows).Error
	if err != nil {
		return 0, fmt.Errorf("query: %w", err)
	}
	if len(rows) != 1 {
		return 0, cerr.NotFound(fmt.Errorf(
			"no verification with id %d", verificationID,
		))
	}
	return rows[0].UserID, nil
}
