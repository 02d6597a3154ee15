// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package parkinguc contains the parking allocation use case, the only
// part of the system with a hard correctness invariant: a slot must
// never be double-allocated. It supports:
//  1. Allocating a free slot to a vehicle, opening a parking event,
//  2. Releasing a vehicle's slot on exit, closing that event,
//  3. Raising operational flags for administrative review,
//  4. Read-only dashboard queries (KPIs, free slots, active events).
package parkinguc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/momeni/campus-parking/pkg/core/cerr"
	"github.com/momeni/campus-parking/pkg/core/model"
	"github.com/momeni/campus-parking/pkg/core/recognize"
	"github.com/momeni/campus-parking/pkg/core/repo"
)

// ErrSlotNotAvailable indicates that the row-locked re-check found
// the slot occupied, i.e., the caller lost an allocation race which
// started from a stale "list available slots" read. The caller must
// re-select a slot; retrying the same slot automatically would race
// against the winner again.
var ErrSlotNotAvailable = errors.New("slot is no longer available")

// ErrSlotReserved indicates that the target slot is administratively
// reserved. Nothing in the allocation engine ever sets this status;
// whether reserved slots accept allocations is a deployment policy
// (see the WithReservedSlotAllocation option).
var ErrSlotReserved = errors.New("slot is reserved")

// ErrVehicleNotFound indicates that a typed or recognized plate
// matches no active vehicle record.
var ErrVehicleNotFound = errors.New("no active vehicle with this plate")

// UseCase represents the parking allocation use case. It holds a
// database connection pool and the parking repository instance (to be
// guided with the DB pool), plus the reserved-slot policy setting.
type UseCase struct {
	pool      repo.Pool
	parkingrp repo.Parking

	allocateReserved bool
	now              func() time.Time
}

// New instantiates a parking use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error.
// Optional parameters are passed as a series of functional options
// in order to facilitate their validation and flexibility.
func New(p repo.Pool, rp repo.Parking, opts ...Option) (*UseCase, error) {
	uc := &UseCase{pool: p, parkingrp: rp}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.now == nil {
		uc.now = time.Now
	}
	return uc, nil
}

// Allocate binds the vehicle to the slot on behalf of the guard,
// opening an active parking event. The optional reading snapshots the
// OCR provenance of the plate; its confidence is recorded for audit
// and never gates the allocation.
//
// The whole operation runs in one transaction which first locks the
// slot row and re-checks its status, closing the race window between
// the caller's stale "slot looks free" read and the status flip. On a
// lost race no rows are mutated and a Conflict-kinded
// ErrSlotNotAvailable is returned; lower-level storage failures roll
// back everything and propagate as-is. The operation is never retried
// internally.
func (pk *UseCase) Allocate(
	ctx context.Context,
	vehicleID, slotID, guardUserID int64,
	reading *recognize.Reading,
) (ev *model.ParkingEvent, err error) {
	err = pk.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := pk.parkingrp.Tx(tx)
			slot, err := q.LockSlot(ctx, slotID)
			if err != nil {
				return fmt.Errorf("locking slot %d: %w", slotID, err)
			}
			switch slot.Status {
			case model.SlotAvailable:
				// lock is held, safe to flip below
			case model.SlotReserved:
				if !pk.allocateReserved {
					return cerr.Conflict(ErrSlotReserved)
				}
			default:
				return cerr.Conflict(ErrSlotNotAvailable)
			}
			e := &model.ParkingEvent{
				VehicleID:   vehicleID,
				SlotID:      slotID,
				GuardUserID: guardUserID,
				EntryTime:   pk.now(),
				Status:      model.EventActive,
			}
			if reading != nil && reading.Plate != "" {
				plate, conf := reading.Plate, reading.Confidence
				e.OCRPlate = &plate
				e.OCRConf = &conf
			}
			ev, err = q.CreateEvent(ctx, e)
			if err != nil {
				return fmt.Errorf("creating parking event: %w", err)
			}
			err = q.SetSlotStatus(ctx, slotID, model.SlotOccupied)
			if err != nil {
				return fmt.Errorf("occupying slot %d: %w", slotID, err)
			}
			return nil
		})
	})
	if err != nil {
		ev = nil
	}
	return
}

// Release processes the exit of the vehicle with the given plate.
// The newest active event for that plate is closed and its slot is
// freed, both in one transaction, so the slot can never be marked
// available while its event is still active (nor vice versa).
//
// A plate without an active event is a legitimate, expected outcome
// (mistyped plate, double-processed exit); it is reported as
// (nil, false, nil) rather than as an error, and mutates nothing.
func (pk *UseCase) Release(ctx context.Context, plate string) (
	ev *model.ParkingEvent, released bool, err error,
) {
	err = pk.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		active, err := pk.parkingrp.Conn(c).
			NewestActiveEventByPlate(ctx, plate)
		if err != nil {
			return fmt.Errorf("looking up active event: %w", err)
		}
		if active == nil {
			return nil // nothing to exit
		}
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := pk.parkingrp.Tx(tx)
			exitTime := pk.now()
			if err := q.CloseEvent(ctx, active.ID, exitTime); err != nil {
				return fmt.Errorf(
					"closing event %d: %w", active.ID, err,
				)
			}
			err := q.SetSlotStatus(
				ctx, active.SlotID, model.SlotAvailable,
			)
			if err != nil {
				return fmt.Errorf(
					"freeing slot %d: %w", active.SlotID, err,
				)
			}
			active.Status = model.EventExited
			active.ExitTime = &exitTime
			ev, released = active, true
			return nil
		})
	})
	if err != nil {
		ev, released = nil, false
	}
	return
}

// RaiseFlag appends an open flag row on behalf of the guard, e.g.,
// when no suitable slot could be found for an arriving vehicle. The
// vehicle reference is optional. Flags are closed by administrators
// through the admin use case, strictly one-way.
func (pk *UseCase) RaiseFlag(
	ctx context.Context,
	guardUserID int64, reason string, vehicleID *int64,
) (f *model.Flag, err error) {
	err = pk.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		f, err = pk.parkingrp.Conn(c).CreateFlag(ctx, &model.Flag{
			VehicleID:     vehicleID,
			RaisedByGuard: guardUserID,
			Reason:        reason,
			Status:        model.FlagOpen,
		})
		return err
	})
	if err != nil {
		f = nil
	}
	return
}

// FindVehicle resolves a typed or recognized plate to an active
// vehicle and its owner. A missing plate is reported as a
// NotFound-kinded ErrVehicleNotFound.
func (pk *UseCase) FindVehicle(ctx context.Context, plate string) (
	vo *model.VehicleOwner, err error,
) {
	err = pk.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		vo, err = pk.parkingrp.Conn(c).FindVehicle(ctx, plate)
		if err != nil {
			return err
		}
		if vo == nil {
			return cerr.NotFound(ErrVehicleNotFound)
		}
		return nil
	})
	if err != nil {
		vo = nil
	}
	return
}

// AvailableSlots lists the currently free slots ordered by their
// code. The returned view is necessarily stale under concurrency;
// Allocate re-checks the chosen slot under a row lock.
func (pk *UseCase) AvailableSlots(ctx context.Context) (
	slots []model.Slot, err error,
) {
	err = pk.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		slots, err = pk.parkingrp.Conn(c).AvailableSlots(ctx)
		return err
	})
	if err != nil {
		slots = nil
	}
	return
}

// ActiveEvents lists the currently active parking events with their
// derived durations.
func (pk *UseCase) ActiveEvents(ctx context.Context) (
	evs []model.ActiveEvent, err error,
) {
	err = pk.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		evs, err = pk.parkingrp.Conn(c).ActiveEvents(ctx, pk.now())
		return err
	})
	if err != nil {
		evs = nil
	}
	return
}

// Overview reports the dashboard KPI counters as an
// eventually-consistent snapshot.
func (pk *UseCase) Overview(ctx context.Context) (
	ov *model.Overview, err error,
) {
	err = pk.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		ov, err = pk.parkingrp.Conn(c).Overview(ctx)
		return err
	})
	if err != nil {
		ov = nil
	}
	return
}
