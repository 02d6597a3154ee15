// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schema creates the identity-store tables and optionally
// fills them with development suitable sample rows. It is consumed by
// the `cpark db init` and `cpark db seed-dev` commands and by the
// integration test suites which need a disposable database.
package schema

import (
	"context"
	"fmt"

	"github.com/momeni/campus-parking/pkg/core/repo"
	"golang.org/x/crypto/bcrypt"
)

// ddl contains the complete schema. Statements are idempotent, so
// re-running Init against an initialized database is harmless.
//
// The partial unique indexes on parking_events materialize the two
// core invariants (at most one active event per slot and per vehicle)
// inside the store itself; the allocation use case still serializes
// racing allocations with a row lock, and these indexes are the last
// line of defense against a bug bypassing it.
const ddl = `
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    college_id TEXT NOT NULL UNIQUE,
    full_name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL CHECK (role IN ('member', 'guard', 'admin')),
    is_profile_verified BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS vehicles (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES users (id),
    plate_number TEXT NOT NULL UNIQUE,
    is_active BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS slots (
    id BIGSERIAL PRIMARY KEY,
    code TEXT NOT NULL UNIQUE,
    status TEXT NOT NULL DEFAULT 'available'
        CHECK (status IN ('available', 'occupied', 'reserved'))
);

CREATE TABLE IF NOT EXISTS parking_events (
    id BIGSERIAL PRIMARY KEY,
    vehicle_id BIGINT NOT NULL REFERENCES vehicles (id),
    slot_id BIGINT NOT NULL REFERENCES slots (id),
    guard_user_id BIGINT NOT NULL REFERENCES users (id),
    ocr_plate_text TEXT,
    ocr_confidence DOUBLE PRECISION,
    entry_time TIMESTAMPTZ NOT NULL DEFAULT now(),
    exit_time TIMESTAMPTZ,
    status TEXT NOT NULL DEFAULT 'active'
        CHECK (status IN ('active', 'exited')),
    CHECK ((exit_time IS NULL) = (status = 'active'))
);

CREATE UNIQUE INDEX IF NOT EXISTS parking_events_one_active_per_slot
    ON parking_events (slot_id) WHERE status = 'active';
CREATE UNIQUE INDEX IF NOT EXISTS parking_events_one_active_per_vehicle
    ON parking_events (vehicle_id) WHERE status = 'active';

CREATE TABLE IF NOT EXISTS verifications (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL UNIQUE REFERENCES users (id),
    profile_image_url TEXT,
    id_image_url TEXT,
    status TEXT NOT NULL DEFAULT 'pending'
        CHECK (status IN ('pending', 'approved', 'rejected')),
    reviewer_id BIGINT REFERENCES users (id),
    reviewed_at TIMESTAMPTZ,
    notes TEXT
);

CREATE TABLE IF NOT EXISTS flags (
    id BIGSERIAL PRIMARY KEY,
    vehicle_id BIGINT REFERENCES vehicles (id),
    raised_by_guard_id BIGINT NOT NULL REFERENCES users (id),
    reason TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'open'
        CHECK (status IN ('open', 'closed')),
    closed_by_admin_id BIGINT REFERENCES users (id),
    resolution_note TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    closed_at TIMESTAMPTZ
);
`

// Init creates all identity-store tables and indexes within the given
// transaction.
func Init(ctx context.Context, tx repo.Tx) error {
	if _, err := tx.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// SeedDev fills an initialized database with development suitable
// sample rows: one user per role (all with the given password), a
// registered vehicle for the member, and a handful of free slots.
func SeedDev(ctx context.Context, tx repo.Tx, password string) error {
	hash, err := bcrypt.GenerateFromPassword(
		[]byte(password), bcrypt.DefaultCost,
	)
	if err != nil {
		return fmt.Errorf("hashing sample password: %w", err)
	}
	_, err = tx.Exec(ctx, `
INSERT INTO users (college_id, full_name, email, password_hash, role)
VALUES
    ('CMU-1001', 'Dev Member', 'member@example.edu', $1, 'member'),
    ('CMU-2001', 'Dev Guard', 'guard@example.edu', $1, 'guard'),
    ('CMU-3001', 'Dev Admin', 'admin@example.edu', $1, 'admin')
ON CONFLICT (email) DO NOTHING`, string(hash))
	if err != nil {
		return fmt.Errorf("seeding users: %w", err)
	}
	_, err = tx.Exec(ctx, `
INSERT INTO vehicles (user_id, plate_number)
SELECT id, 'ABC123' FROM users WHERE email = 'member@example.edu'
ON CONFLICT (plate_number) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("seeding vehicles: %w", err)
	}
	_, err = tx.Exec(ctx, `
INSERT INTO slots (code)
SELECT 'A' || n FROM generate_series(1, 10) AS n
ON CONFLICT (code) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("seeding slots: %w", err)
	}
	return nil
}
