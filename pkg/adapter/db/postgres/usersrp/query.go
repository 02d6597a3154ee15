// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package usersrp implements the users account repository over a
// postgres database. Password hashes stay inside this package and the
// authentication use case; they never appear on the model.User struct.
package usersrp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/momeni/campus-parking/pkg/adapter/db/postgres"
	"github.com/momeni/campus-parking/pkg/core/cerr"
	"github.com/momeni/campus-parking/pkg/core/model"
	"gorm.io/gorm"
)

type gUser struct {
	ID                int64 `gorm:"primaryKey"`
	CollegeID         string
	FullName          string
	Email             string
	PasswordHash      string
	Role              string
	IsProfileVerified bool
	CreatedAt         time.Time `gorm:"default:now()"`
}

func (gu *gUser) TableName() string {
	return "users"
}

func (gu *gUser) Model() (*model.User, error) {
	role, err := model.ParseRole(gu.Role)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", gu.ID, err)
	}
	return &model.User{
		ID:        gu.ID,
		CollegeID: gu.CollegeID,
		FullName:  gu.FullName,
		Email:     gu.Email,
		Role:      role,
		Verified:  gu.IsProfileVerified,
		CreatedAt: gu.CreatedAt,
	}, nil
}

// Create inserts a user row with the given bcrypt password hash and
// returns it with the database assigned identifier and creation time.
func Create[Q postgres.Queryer](ctx context.Context, q Q, u *model.User, passwordHash string) (*model.User, error) {
	gdb := q.GORM(ctx)
	gu := gUser{
		CollegeID:         u.CollegeID,
		FullName:          u.FullName,
		Email:             u.Email,
		PasswordHash:      passwordHash,
		Role:              u.Role.String(),
		IsProfileVerified: u.Verified,
	}
	if err := gdb.Create(&gu).Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return gu.Model()
}

// FindByEmail loads the user with the given login email together with
// its stored password hash. An unknown email is reported as
// (nil, "", nil), so the caller can mask it behind a generic
// authentication failure.
func FindByEmail[Q postgres.Queryer](ctx context.Context, q Q, email string) (*model.User, string, error) {
	gdb := q.GORM(ctx)
	var gu gUser
	err := gdb.Where("email=?", email).Take(&gu).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, "", nil
	case err != nil:
		return nil, "", fmt.Errorf("query: %w", err)
	}
	u, err := gu.Model()
	if err != nil {
		return nil, "", err
	}
	return u, gu.PasswordHash, nil
}

// FindByID loads one user row, reporting NotFound for unknown ids.
func FindByID[Q postgres.Queryer](ctx context.Context, q Q, id int64) (*model.User, error) {
	gdb := q.GORM(ctx)
	var gu gUser
	err := gdb.Where("id=?", id).Take(&gu).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, cerr.NotFound(fmt.Errorf("no user with id %d", id))
	case err != nil:
		return nil, fmt.Errorf("query: %w", err)
	}
	return gu.Model()
}

// UpdateProfile overwrites the user's editable profile fields.
func UpdateProfile[Q postgres.Queryer](ctx context.Context, q Q, id int64, fullName, collegeID, email string) error {
	gdb := q.GORM(ctx)
	res := gdb.Model(&gUser{}).Where("id=?", id).Updates(map[string]any{
		"full_name":  fullName,
		"college_id": collegeID,
		"email":      email,
	})
	if err := res.Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if res.RowsAffected != 1 {
		return cerr.NotFound(fmt.Errorf("no user with id %d", id))
	}
	return nil
}

// SetVerified flips the profile verification marker of one user.
func SetVerified[Q postgres.Queryer](ctx context.Context, q Q, id int64, verified bool) error {
	gdb := q.GORM(ctx)
	res := gdb.Model(&gUser{}).Where("id=?", id).Update(
		"is_profile_verified", verified,
	)
	if err := res.Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if res.RowsAffected != 1 {
		return cerr.NotFound(fmt.Errorf("no user with id %d", id))
	}
	return nil
}

// Count reports the total number of user accounts.
func Count[Q postgres.Queryer](ctx context.Context, q Q) (int, error) {
	gdb := q.GORM(ctx)
	var n int64
	if err := gdb.Model(&gUser{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("query: %w", err)
	}
	return int(n), nil
}

// CountByRole reports the number of user accounts with the given role.
func CountByRole[Q postgres.Queryer](ctx context.Context, q Q, r model.Role) (int, error) {
	gdb := q.GORM(ctx)
	var n int64
	err := gdb.Model(&gUser{}).Where("role=?", r.String()).Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("query: %w", err)
	}
	return int(n), nil
}
