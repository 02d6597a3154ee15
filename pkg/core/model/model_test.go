// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/momeni/campus-parking/pkg/core/model"
	"github.com/stretchr/testify/assert"
)

func ExampleParseRole() {
	r, err := model.ParseRole("guard")
	fmt.Println(r, err)
	r, err = model.ParseRole("janitor")
	fmt.Println(int(r), err)
	// Output:
	// guard <nil>
	// 0 unknown user role
}

func TestRoleRoundTrip(t *testing.T) {
	for _, r := range []model.Role{
		model.RoleMember, model.RoleGuard, model.RoleAdmin,
	} {
		assert.NoError(t, r.Validate())
		p, err := model.ParseRole(r.String())
		assert.NoError(t, err)
		assert.Equal(t, r, p)
	}
	assert.Error(t, model.RoleInvalid.Validate())
	assert.Error(t, model.Role(42).Validate())
	assert.Panics(t, func() { _ = model.Role(42).String() })
}

func TestSlotStatusRoundTrip(t *testing.T) {
	for _, s := range []model.SlotStatus{
		model.SlotAvailable, model.SlotOccupied, model.SlotReserved,
	} {
		assert.NoError(t, s.Validate())
		p, err := model.ParseSlotStatus(s.String())
		assert.NoError(t, err)
		assert.Equal(t, s, p)
	}
	assert.Error(t, model.SlotStatusInvalid.Validate())
	assert.Panics(t, func() { _ = model.SlotStatusInvalid.String() })
	_, err := model.ParseSlotStatus("broken")
	assert.ErrorIs(t, err, model.ErrUnknownSlotStatus)
}

func TestEventStatusRoundTrip(t *testing.T) {
	for _, s := range []model.EventStatus{
		model.EventActive, model.EventExited,
	} {
		assert.NoError(t, s.Validate())
		p, err := model.ParseEventStatus(s.String())
		assert.NoError(t, err)
		assert.Equal(t, s, p)
	}
	assert.Error(t, model.EventStatusInvalid.Validate())
	_, err := model.ParseEventStatus("cancelled")
	assert.ErrorIs(t, err, model.ErrUnknownEventStatus)
}

func TestFlagStatusRoundTrip(t *testing.T) {
	for _, s := range []model.FlagStatus{
		model.FlagOpen, model.FlagClosed,
	} {
		assert.NoError(t, s.Validate())
		p, err := model.ParseFlagStatus(s.String())
		assert.NoError(t, err)
		assert.Equal(t, s, p)
	}
	assert.Error(t, model.FlagStatusInvalid.Validate())
	_, err := model.ParseFlagStatus("reopened")
	assert.ErrorIs(t, err, model.ErrUnknownFlagStatus)
}

func TestVerificationStatusRoundTrip(t *testing.T) {
	for _, s := range []model.VerificationStatus{
		model.VerificationPending,
		model.VerificationApproved,
		model.VerificationRejected,
	} {
		assert.NoError(t, s.Validate())
		p, err := model.ParseVerificationStatus(s.String())
		assert.NoError(t, err)
		assert.Equal(t, s, p)
	}
	assert.Error(t, model.VerificationStatusInvalid.Validate())
	_, err := model.ParseVerificationStatus("escalated")
	assert.ErrorIs(t, err, model.ErrUnknownVerificationStatus)
}

func TestParkingEventDuration(t *testing.T) {
	entry := time.Date(2025, 8, 14, 8, 30, 0, 0, time.UTC)
	now := entry.Add(45 * time.Minute)
	pe := &model.ParkingEvent{
		EntryTime: entry,
		Status:    model.EventActive,
	}
	assert.Equal(t, 45*time.Minute, pe.Duration(now))

	// once exited, the duration freezes at the recorded exit time
	exit := entry.Add(20 * time.Minute)
	pe.Status = model.EventExited
	pe.ExitTime = &exit
	assert.Equal(t, 20*time.Minute, pe.Duration(now))
}
