// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
	"time"
)

// VerificationStatus specifies the review status of an identity
// verification record. A verification may be resubmitted, so unlike
// flags, the pending state may be re-entered after a review.
type VerificationStatus int

// Valid values for the VerificationStatus enum.
const (
	VerificationStatusInvalid VerificationStatus = iota

	VerificationPending  // awaiting an administrator's review
	VerificationApproved // reviewer accepted the submitted images
	VerificationRejected // reviewer rejected the submitted images
)

// ErrUnknownVerificationStatus indicates that a given string may not
// be parsed as a valid/known verification status.
var ErrUnknownVerificationStatus = errors.New(
	"unknown verification status",
)

// VerificationStatusError indicates an invalid verification status,
// containing the invalid status as an integer.
type VerificationStatusError int

// Error implements the error interface.
func (e VerificationStatusError) Error() string {
	return fmt.Sprintf("invalid verification status: %d", e)
}

// Validate returns nil if VerificationStatus value is valid.
func (s VerificationStatus) Validate() error {
	switch s {
	case VerificationPending, VerificationApproved, VerificationRejected:
		return nil
	default:
		return VerificationStatusError(s)
	}
}

// String converts the VerificationStatus enum to a string. Invalid
// statuses cause a panic.
func (s VerificationStatus) String() string {
	switch s {
	case VerificationPending:
		return "pending"
	case VerificationApproved:
		return "approved"
	case VerificationRejected:
		return "rejected"
	default:
		panic(VerificationStatusError(s))
	}
}

// ParseVerificationStatus parses the given string and returns a
// VerificationStatus. For invalid strings,
// VerificationStatusInvalid and ErrUnknownVerificationStatus will be
// returned.
func ParseVerificationStatus(s string) (VerificationStatus, error) {
	switch s {
	case "pending":
		return VerificationPending, nil
	case "approved":
		return VerificationApproved, nil
	case "rejected":
		return VerificationRejected, nil
	default:
		return VerificationStatusInvalid, ErrUnknownVerificationStatus
	}
}

// Verification models one user's identity verification record. Each
// user has at most one such record; resubmission overwrites the image
// references and resets the status to pending.
type Verification struct {
	ID              int64
	UserID          int64
	ProfileImageURL *string // uploaded profile photo reference
	IDImageURL      *string // uploaded college ID card reference
	Status          VerificationStatus
	ReviewerID      *int64     // admin who reviewed, if reviewed
	ReviewedAt      *time.Time // when the review happened
	Notes           *string    // optional reviewer notes
}

// PendingVerification joins a pending verification with the
// submitting user's details for the administrators' review queue.
type PendingVerification struct {
	VerificationID  int64
	UserID          int64
	FullName        string
	Email           string
	CollegeID       string
	ProfileImageURL *string
	IDImageURL      *string
	SubmittedAt     time.Time
}
