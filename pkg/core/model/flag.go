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

// FlagStatus specifies the status of an operational flag. Flags are
// append-only history with a single close mutation: the only legal
// transition is open --close--> closed, never the reverse.
type FlagStatus int

// Valid values for the FlagStatus enum.
const (
	FlagStatusInvalid FlagStatus = iota // zero value is invalid

	FlagOpen   // awaiting administrative review
	FlagClosed // resolved by an administrator
)

// ErrUnknownFlagStatus indicates that a given string may not be
// parsed as a valid/known flag status.
var ErrUnknownFlagStatus = errors.New("unknown flag status")

// FlagStatusError indicates an invalid flag status, containing the
// invalid status as an integer.
type FlagStatusError int

// Error implements the error interface, returning a string
// representation of the FlagStatusError.
func (e FlagStatusError) Error() string {
	return fmt.Sprintf("invalid flag status: %d", e)
}

// Validate returns nil if FlagStatus value is valid. For invalid
// values, an instance of the FlagStatusError will be returned.
func (s FlagStatus) Validate() error {
	switch s {
	case FlagOpen, FlagClosed:
		return nil
	default:
		return FlagStatusError(s)
	}
}

// String converts the FlagStatus enum to a string. Invalid statuses
// cause a panic.
func (s FlagStatus) String() string {
	switch s {
	case FlagOpen:
		return "open"
	case FlagClosed:
		return "closed"
	default:
		panic(FlagStatusError(s))
	}
}

// ParseFlagStatus parses the given string and returns a FlagStatus.
// For invalid strings, FlagStatusInvalid and ErrUnknownFlagStatus
// will be returned.
func ParseFlagStatus(s string) (FlagStatus, error) {
	switch s {
	case "open":
		return FlagOpen, nil
	case "closed":
		return FlagClosed, nil
	default:
		return FlagStatusInvalid, ErrUnknownFlagStatus
	}
}

// Flag models an operator-raised exception record requiring
// administrative review, e.g., when no free slot could be found for
// an arriving vehicle. The vehicle reference is optional because a
// flag may concern an unregistered or unrecognized vehicle.
type Flag struct {
	ID            int64
	VehicleID     *int64 // optional subject vehicle
	RaisedByGuard int64  // guard who raised the flag
	Reason        string // free-text reason code
	Status        FlagStatus
	ClosedByAdmin *int64     // set when Status is FlagClosed
	Resolution    *string    // optional free-text resolution note
	CreatedAt     time.Time  // when the flag was raised
	ClosedAt      *time.Time // set when Status is FlagClosed
}

// FlagDetails joins an open flag with the name of the raising guard
// for the administrators' review queue.
type FlagDetails struct {
	ID        int64
	Reason    string
	RaisedBy  string // full name of the raising guard
	CreatedAt time.Time
}
