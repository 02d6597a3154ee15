// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// By the way, it is acceptable to annotate structs in this package with
// multiple frameworks dependent tags (e.g., as required by ORM
// libraries) since adding more tags does not complicate definition of
// a struct, but can prevent unnecessary structs duplication.
package model

import (
	"errors"
	"fmt"
	"time"
)

// Role specifies the role of an authenticated user. Although this
// enum is numeric, it is (de)serialized as a string both in the
// database and in the adapter layer for readability.
type Role int

// Valid values for the Role enum.
const (
	RoleInvalid Role = iota // zero value is invalid

	RoleMember // a campus member who owns registered vehicles
	RoleGuard  // a security guard who allocates parking slots
	RoleAdmin  // an administrator who reviews flags and verifications
)

// ErrUnknownRole indicates that a given string may not be parsed as a
// valid/known user role. The caller of ParseRole already knows about
// the invalid role string, hence, it is not encoded in this error.
var ErrUnknownRole = errors.New("unknown user role")

// RoleError indicates an invalid user role, containing the invalid
// role as an integer.
type RoleError int

// Error implements the error interface, returning a string
// representation of the RoleError.
func (e RoleError) Error() string {
	return fmt.Sprintf("invalid user role: %d", e)
}

// Validate returns nil if Role value is valid. For invalid values,
// an instance of the RoleError will be returned.
func (r Role) Validate() error {
	switch r {
	case RoleMember, RoleGuard, RoleAdmin:
		return nil
	default:
		return RoleError(r)
	}
}

// String converts the Role enum to a string. Invalid roles cause a
// panic.
func (r Role) String() string {
	switch r {
	case RoleMember:
		return "member"
	case RoleGuard:
		return "guard"
	case RoleAdmin:
		return "admin"
	default:
		panic(RoleError(r))
	}
}

// ParseRole parses the given string and returns a Role, helping to
// deserialize it when reading a REST API request or a database row.
// For invalid strings, RoleInvalid and ErrUnknownRole will be
// returned.
func ParseRole(r string) (Role, error) {
	switch r {
	case "member":
		return RoleMember, nil
	case "guard":
		return RoleGuard, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return RoleInvalid, ErrUnknownRole
	}
}

// User models an authenticated account of the campus parking program.
// The password hash is a bcrypt digest and is never serialized out of
// the adapter layer.
type User struct {
	ID        int64     // database identifier
	CollegeID string    // campus-issued identity card number
	FullName  string    // display name
	Email     string    // login email, unique
	Role      Role      // member, guard, or admin
	Verified  bool      // whether the profile verification was approved
	CreatedAt time.Time // registration time
}
