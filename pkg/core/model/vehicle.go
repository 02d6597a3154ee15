// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

// Vehicle models a registered vehicle which may be persisted in a
// database. A vehicle belongs to exactly one user and may be
// deactivated instead of being deleted, so its historical parking
// events stay resolvable.
type Vehicle struct {
	ID     int64  // database identifier
	UserID int64  // owning user identifier
	Plate  string // normalized plate number, unique
	Active bool   // deactivated vehicles may not be allocated
}

// VehicleOwner pairs a vehicle with the owner details which guards
// need at the gate. It is a read-model produced by the plate lookup
// query and is never written back.
type VehicleOwner struct {
	VehicleID     int64
	Plate         string
	UserID        int64
	FullName      string
	OwnerVerified bool
}
