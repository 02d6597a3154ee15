// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postgres adapts the core repo interfaces to a PostgreSQL
// DBMS server using the GORM framework. The Pool, Conn, and Tx types
// wrap *gorm.DB instances, so the repository sub-packages (named like
// parkingrp) can run raw SQL through the repo.Queryer interface or
// use GORM directly through the GORM method.
//
// The identity-store schema (users, vehicles, slots, parking_events,
// verifications, and flags tables) is created by the schema
// sub-package; this package only speaks to an existing schema.
package postgres
