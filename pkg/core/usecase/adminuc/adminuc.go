// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package adminuc contains the administrators' use cases: dashboard
// counters, the identity verification review queue, and the one-way
// closing of guard-raised flags.
package adminuc

import (
	"context"
	"errors"
	"fmt"

	"github.com/momeni/campus-parking/pkg/core/cerr"
	"github.com/momeni/campus-parking/pkg/core/model"
	"github.com/momeni/campus-parking/pkg/core/repo"
)

// ErrFlagNotOpen indicates an attempt to close a flag which is
// missing or already closed. Closed flags never reopen.
var ErrFlagNotOpen = errors.New("flag is not open")

// ErrInvalidVerdict indicates a verification review verdict other
// than approved or rejected.
var ErrInvalidVerdict = errors.New(
	"verification verdict must be approved or rejected",
)

// Counts carries the administrators' dashboard counters.
type Counts struct {
	Users     int
	Guards    int
	Vehicles  int
	OpenFlags int
}

// UseCase represents the administration use case, holding the
// connection pool and the repositories it reads and mutates.
type UseCase struct {
	pool            repo.Pool
	usersrp         repo.Users
	vehiclesrp      repo.Vehicles
	flagsrp         repo.Flags
	verificationsrp repo.Verifications
}

// New instantiates an administration use case.
func New(
	p repo.Pool,
	u repo.Users, v repo.Vehicles,
	f repo.Flags, vf repo.Verifications,
) *UseCase {
	return &UseCase{
		pool:            p,
		usersrp:         u,
		vehiclesrp:      v,
		flagsrp:         f,
		verificationsrp: vf,
	}
}

// Overview reports the dashboard counters as an eventually-consistent
// snapshot; no locking is involved.
func (adm *UseCase) Overview(ctx context.Context) (
	cnt *Counts, err error,
) {
	err = adm.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		users := adm.usersrp.Conn(c)
		cnt = &Counts{}
		if cnt.Users, err = users.Count(ctx); err != nil {
			return fmt.Errorf("counting users: %w", err)
		}
		cnt.Guards, err = users.CountByRole(ctx, model.RoleGuard)
		if err != nil {
			return fmt.Errorf("counting guards: %w", err)
		}
		cnt.Vehicles, err = adm.vehiclesrp.Conn(c).Count(ctx)
		if err != nil {
			return fmt.Errorf("counting vehicles: %w", err)
		}
		cnt.OpenFlags, err = adm.flagsrp.Conn(c).CountOpen(ctx)
		if err != nil {
			return fmt.Errorf("counting open flags: %w", err)
		}
		return nil
	})
	if err != nil {
		cnt = nil
	}
	return
}

// PendingVerifications lists the verification review queue, newest
// submission first.
func (adm *UseCase) PendingVerifications(ctx context.Context) (
	pvs []model.PendingVerification, err error,
) {
	err = adm.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		pvs, err = adm.verificationsrp.Conn(c).ListPending(ctx)
		return err
	})
	if err != nil {
		pvs = nil
	}
	return
}

// ReviewVerification records the reviewer's verdict on a pending
// verification. An approval also flips the submitting user's
// is_profile_verified flag; both rows change in one transaction.
func (adm *UseCase) ReviewVerification(
	ctx context.Context,
	verificationID, reviewerID int64,
	verdict model.VerificationStatus,
	notes *string,
) error {
	switch verdict {
	case model.VerificationApproved, model.VerificationRejected:
	default:
		return cerr.BadRequest(ErrInvalidVerdict)
	}
	return adm.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			userID, err := adm.verificationsrp.Tx(tx).Review(
				ctx, verificationID, reviewerID, verdict, notes,
			)
			if err != nil {
				return fmt.Errorf(
					"reviewing verification %d: %w",
					verificationID, err,
				)
			}
			if verdict != model.VerificationApproved {
				return nil
			}
			err = adm.usersrp.Tx(tx).SetVerified(ctx, userID, true)
			if err != nil {
				return fmt.Errorf(
					"marking user %d verified: %w", userID, err,
				)
			}
			return nil
		})
	})
}

// OpenFlags lists the flags awaiting review, newest first.
func (adm *UseCase) OpenFlags(ctx context.Context) (
	fds []model.FlagDetails, err error,
) {
	err = adm.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		fds, err = adm.flagsrp.Conn(c).ListOpen(ctx)
		return err
	})
	if err != nil {
		fds = nil
	}
	return
}

// CloseFlag transitions an open flag to closed with an optional
// resolution note. A missing or already closed flag yields a
// NotFound-kinded ErrFlagNotOpen; the open state is never restored.
func (adm *UseCase) CloseFlag(
	ctx context.Context, flagID, adminID int64, note *string,
) error {
	return adm.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		closed, err := adm.flagsrp.Conn(c).Close(
			ctx, flagID, adminID, note,
		)
		if err != nil {
			return fmt.Errorf("closing flag %d: %w", flagID, err)
		}
		if !closed {
			return cerr.NotFound(ErrFlagNotOpen)
		}
		return nil
	})
}
