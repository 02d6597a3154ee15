// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package memberuc contains the use cases behind the member-facing
// dashboard: the parking snapshot, vehicle registration, and the
// identity verification submission flow. Guards share the same
// profile and verification flow, so this use case serves both roles.
package memberuc

import (
	"context"
	"errors"
	"fmt"

	"github.com/momeni/campus-parking/pkg/core/cerr"
	"github.com/momeni/campus-parking/pkg/core/model"
	"github.com/momeni/campus-parking/pkg/core/repo"
)

// ErrProfileLocked indicates that the profile may not be edited while
// a verification review is pending.
var ErrProfileLocked = errors.New(
	"profile is locked while verification is pending",
)

// ErrVehicleNotOwned indicates an attempt to deactivate a vehicle
// which does not exist or belongs to another user.
var ErrVehicleNotOwned = errors.New("no such vehicle for this user")

// Snapshot is the member dashboard read-model: everything the member
// landing view shows in one struct.
type Snapshot struct {
	VehicleCount       int
	VerificationStatus model.VerificationStatus
	Parked             bool
	SlotCode           *string // set when Parked
	Plate              *string // set when Parked
	EntryTime          *string // RFC 3339, set when Parked
	Plates             []string
}

// Profile is the profile read-model shared by members and guards,
// combining the user row with the verification record.
type Profile struct {
	User            model.User
	Verification    *model.Verification // nil before first submission
	CanEditProfile  bool
	ProfileImageURL *string
	IDImageURL      *string
}

// UseCase represents the member/guard profile use case.
type UseCase struct {
	pool            repo.Pool
	usersrp         repo.Users
	vehiclesrp      repo.Vehicles
	verificationsrp repo.Verifications
	parkingrp       repo.Parking
}

// New instantiates a member use case.
func New(
	p repo.Pool,
	u repo.Users, v repo.Vehicles,
	vf repo.Verifications, pk repo.Parking,
) *UseCase {
	return &UseCase{
		pool:            p,
		usersrp:         u,
		vehiclesrp:      v,
		verificationsrp: vf,
		parkingrp:       pk,
	}
}

// Snapshot assembles the member dashboard view for the given user.
func (mbr *UseCase) Snapshot(ctx context.Context, userID int64) (
	s *Snapshot, err error,
) {
	err = mbr.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		s = &Snapshot{VerificationStatus: model.VerificationPending}
		vehicles, err := mbr.vehiclesrp.Conn(c).ListByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("listing vehicles: %w", err)
		}
		s.VehicleCount = len(vehicles)
		for _, v := range vehicles {
			if v.Active {
				s.Plates = append(s.Plates, v.Plate)
			}
		}
		vf, err := mbr.verificationsrp.Conn(c).Get(ctx, userID)
		if err != nil {
			return fmt.Errorf("loading verification: %w", err)
		}
		if vf != nil {
			s.VerificationStatus = vf.Status
		}
		cur, err := mbr.parkingrp.Conn(c).CurrentParking(ctx, userID)
		if err != nil {
			return fmt.Errorf("loading current parking: %w", err)
		}
		if cur != nil {
			s.Parked = true
			s.SlotCode = &cur.SlotCode
			s.Plate = &cur.Plate
			entry := cur.EntryTime.Format("2006-01-02T15:04:05Z07:00")
			s.EntryTime = &entry
		}
		return nil
	})
	if err != nil {
		s = nil
	}
	return
}

// RegisterVehicle records a new active vehicle for the user.
func (mbr *UseCase) RegisterVehicle(
	ctx context.Context, userID int64, plate string,
) (v *model.Vehicle, err error) {
	err = mbr.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		v, err = mbr.vehiclesrp.Conn(c).Create(ctx, &model.Vehicle{
			UserID: userID,
			Plate:  plate,
			Active: true,
		})
		return err
	})
	if err != nil {
		v = nil
	}
	return
}

// DeactivateVehicle clears the active flag of the user's vehicle, so
// it can no longer be allocated while its history stays resolvable.
func (mbr *UseCase) DeactivateVehicle(
	ctx context.Context, vehicleID, userID int64,
) error {
	return mbr.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		ok, err := mbr.vehiclesrp.Conn(c).Deactivate(
			ctx, vehicleID, userID,
		)
		if err != nil {
			return fmt.Errorf(
				"deactivating vehicle %d: %w", vehicleID, err,
			)
		}
		if !ok {
			return cerr.NotFound(ErrVehicleNotOwned)
		}
		return nil
	})
}

// Profile loads the combined profile and verification view.
func (mbr *UseCase) Profile(ctx context.Context, userID int64) (
	pr *Profile, err error,
) {
	err = mbr.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		u, err := mbr.usersrp.Conn(c).FindByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("loading user: %w", err)
		}
		vf, err := mbr.verificationsrp.Conn(c).Get(ctx, userID)
		if err != nil {
			return fmt.Errorf("loading verification: %w", err)
		}
		pr = &Profile{User: *u, Verification: vf, CanEditProfile: true}
		if vf != nil {
			pr.ProfileImageURL = vf.ProfileImageURL
			pr.IDImageURL = vf.IDImageURL
			// a pending review locks the editable fields
			pr.CanEditProfile = vf.Status != model.VerificationPending
		}
		return nil
	})
	if err != nil {
		pr = nil
	}
	return
}

// UpdateProfile edits the user's editable fields, refusing while a
// verification review is pending.
func (mbr *UseCase) UpdateProfile(
	ctx context.Context, userID int64,
	fullName, collegeID, email string,
) error {
	return mbr.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		vf, err := mbr.verificationsrp.Conn(c).Get(ctx, userID)
		if err != nil {
			return fmt.Errorf("loading verification: %w", err)
		}
		if vf != nil && vf.Status == model.VerificationPending {
			return cerr.Conflict(ErrProfileLocked)
		}
		err = mbr.usersrp.Conn(c).UpdateProfile(
			ctx, userID, fullName, collegeID, email,
		)
		if err != nil {
			return fmt.Errorf("updating profile: %w", err)
		}
		return nil
	})
}

// SubmitVerificationImages records the uploaded image references
// (the upload plumbing itself lives outside this core) and resets
// the verification status to pending.
func (mbr *UseCase) SubmitVerificationImages(
	ctx context.Context, userID int64, profileURL, idURL *string,
) error {
	if profileURL == nil && idURL == nil {
		return cerr.BadRequest(errors.New("no image reference given"))
	}
	return mbr.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		err := mbr.verificationsrp.Conn(c).SubmitImages(
			ctx, userID, profileURL, idURL,
		)
		if err != nil {
			return fmt.Errorf("submitting images: %w", err)
		}
		return nil
	})
}

// SubmitForReview resets the verification record to pending, clearing
// any previous verdict, and withdraws the user's verified badge until
// an administrator reviews again. Both rows change in one transaction.
func (mbr *UseCase) SubmitForReview(
	ctx context.Context, userID int64,
) error {
	return mbr.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			err := mbr.verificationsrp.Tx(tx).Resubmit(ctx, userID)
			if err != nil {
				return fmt.Errorf("resubmitting: %w", err)
			}
			err = mbr.usersrp.Tx(tx).SetVerified(ctx, userID, false)
			if err != nil {
				return fmt.Errorf("unsetting verified flag: %w", err)
			}
			return nil
		})
	})
}
