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

// EventStatus specifies the status of a parking event. Although this
// enum is numeric, it is (de)serialized as a string for readability
// in the adapter layer and in the database rows.
//
// A parking event is created as active by the allocation operation
// and transitions active --release--> exited exactly once. The exited
// state is terminal; there is no cancellation and no editing of a
// closed event.
type EventStatus int

// Valid values for the EventStatus enum.
const (
	EventStatusInvalid EventStatus = iota // zero value is invalid

	EventActive // vehicle is inside, exit_time is unset
	EventExited // vehicle has left, exit_time is set
)

// ErrUnknownEventStatus indicates that a given string may not be
// parsed as a valid/known parking event status.
var ErrUnknownEventStatus = errors.New("unknown parking event status")

// EventStatusError indicates an invalid parking event status. This
// error contains the invalid status as an integer.
type EventStatusError int

// Error implements the error interface, returning a string
// representation of the EventStatusError.
func (e EventStatusError) Error() string {
	return fmt.Sprintf("invalid parking event status: %d", e)
}

// Validate returns nil if EventStatus value is valid. For invalid
// values, an instance of the EventStatusError will be returned.
func (s EventStatus) Validate() error {
	switch s {
	case EventActive, EventExited:
		return nil
	default:
		return EventStatusError(s)
	}
}

// String converts the EventStatus enum to a string. Invalid statuses
// cause a panic.
func (s EventStatus) String() string {
	switch s {
	case EventActive:
		return "active"
	case EventExited:
		return "exited"
	default:
		panic(EventStatusError(s))
	}
}

// ParseEventStatus parses the given string and returns an EventStatus.
// For invalid strings, EventStatusInvalid and ErrUnknownEventStatus
// will be returned.
func ParseEventStatus(s string) (EventStatus, error) {
	switch s {
	case "active":
		return EventActive, nil
	case "exited":
		return EventExited, nil
	default:
		return EventStatusInvalid, ErrUnknownEventStatus
	}
}

// ParkingEvent models one vehicle's occupancy record for one slot,
// from entry to exit. Rows are append-only history: they are created
// by the allocation operation, closed exactly once by the release
// operation, and never deleted or otherwise updated.
//
// The OCR fields snapshot what the plate recognizer reported when the
// guard allocated the slot. They are audit provenance only; in
// particular, a low confidence value does not gate the allocation.
type ParkingEvent struct {
	ID          int64      // database identifier
	VehicleID   int64      // allocated vehicle
	SlotID      int64      // allocated slot
	GuardUserID int64      // guard who performed the allocation
	OCRPlate    *string    // recognized plate text, if OCR was used
	OCRConf     *float64   // recognition confidence in [0,1], if any
	EntryTime   time.Time  // when the slot was allocated
	ExitTime    *time.Time // set if and only if Status is EventExited
	Status      EventStatus
}

// Duration derives how long the vehicle has been (or was) parked.
// For still-active events it is measured against the given now
// instant, and for exited events against the recorded exit time.
// The duration is always computed and never stored, so it cannot go
// stale.
func (pe *ParkingEvent) Duration(now time.Time) time.Duration {
	if pe.Status == EventExited && pe.ExitTime != nil {
		return pe.ExitTime.Sub(pe.EntryTime)
	}
	return now.Sub(pe.EntryTime)
}

// ActiveEvent is the read-model of one row in the guards' live list
// of parked vehicles. It joins the event with the plate, owner name,
// and slot code, and carries the derived parking duration.
type ActiveEvent struct {
	EventID   int64
	Plate     string
	OwnerName string
	SlotCode  string
	EntryTime time.Time
	ExitTime  *time.Time
	Duration  time.Duration
}

// Overview carries the dashboard KPI counters. All counters are
// eventually-consistent snapshots; no locking is involved in reading
// them.
type Overview struct {
	ActiveInside int // parking events with status=active
	FreeSlots    int // slots with status=available
	TodayEntries int // events opened since local midnight
	OpenFlags    int // flags with status=open
}
