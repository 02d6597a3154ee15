// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
)

// SlotStatus specifies the status of a parking slot. Although this
// enum is numeric, it is (de)serialized as a string for readability
// in the adapter layer and in the database rows.
//
// The allocation use case only ever produces the available and
// occupied values, transitioning available --allocate--> occupied
// and occupied --release--> available. The reserved value is a
// caller-defined third state: no operation transitions into or out
// of it, and whether a reserved slot may be allocated is decided by
// a use case option rather than being hardcoded here.
type SlotStatus int

// Valid values for the SlotStatus enum.
const (
	SlotStatusInvalid SlotStatus = iota // zero value is invalid

	SlotAvailable // slot is free and may be allocated
	SlotOccupied  // slot holds exactly one active parking event
	SlotReserved  // administratively held, policy-defined state
)

// ErrUnknownSlotStatus indicates that a given string may not be
// parsed as a valid/known slot status. This error encodes a
// description err string and does not communicate the invalid status
// string itself because the caller of Parse already knows about it.
var ErrUnknownSlotStatus = errors.New("unknown slot status")

// SlotStatusError indicates an invalid slot status. This error
// contains the invalid status as an integer.
type SlotStatusError int

// Error implements the error interface, returning a string
// representation of the SlotStatusError.
func (e SlotStatusError) Error() string {
	return fmt.Sprintf("invalid slot status: %d", e)
}

// Validate returns nil if SlotStatus value is valid. For invalid
// values, an instance of the SlotStatusError will be returned.
func (s SlotStatus) Validate() error {
	switch s {
	case SlotAvailable, SlotOccupied, SlotReserved:
		return nil
	default:
		return SlotStatusError(s)
	}
}

// String converts the SlotStatus enum to a string, helping to
// serialize it for transmission to web clients and for storing it
// in the slots table. Invalid statuses cause a panic.
func (s SlotStatus) String() string {
	switch s {
	case SlotAvailable:
		return "available"
	case SlotOccupied:
		return "occupied"
	case SlotReserved:
		return "reserved"
	default:
		panic(SlotStatusError(s))
	}
}

// ParseSlotStatus parses the given string and returns a SlotStatus,
// helping to deserialize it when reading a database row or a REST API
// request. For invalid strings, SlotStatusInvalid and
// ErrUnknownSlotStatus will be returned.
func ParseSlotStatus(s string) (SlotStatus, error) {
	switch s {
	case "available":
		return SlotAvailable, nil
	case "occupied":
		return SlotOccupied, nil
	case "reserved":
		return SlotReserved, nil
	default:
		return SlotStatusInvalid, ErrUnknownSlotStatus
	}
}

// Slot models a physical parking space with a unique human-readable
// code. Slot rows are seeded once and thereafter only toggle their
// status through the allocation use case.
type Slot struct {
	ID     int64      // database identifier
	Code   string     // human-readable code, like "A1"
	Status SlotStatus // available, occupied, or reserved
}
