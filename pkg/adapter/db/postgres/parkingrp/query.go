// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package parkingrp implements the parking repository over a postgres
// database, covering slots, parking events, and flags. The slot row
// lock which serializes racing allocations lives here (see LockSlot).
package parkingrp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/momeni/campus-parking/pkg/adapter/db/postgres"
	"github.com/momeni/campus-parking/pkg/core/cerr"
	"github.com/momeni/campus-parking/pkg/core/model"
	"gopkg.in/guregu/null.v4"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gSlot struct {
	ID     int64 `gorm:"primaryKey"`
	Code   string
	Status string
}

func (gs *gSlot) TableName() string {
	return "slots"
}

func (gs *gSlot) Model() (*model.Slot, error) {
	status, err := model.ParseSlotStatus(gs.Status)
	if err != nil {
		return nil, fmt.Errorf("slot %d: %w", gs.ID, err)
	}
	return &model.Slot{
		ID:     gs.ID,
		Code:   gs.Code,
		Status: status,
	}, nil
}

type gEvent struct {
	ID            int64 `gorm:"primaryKey"`
	VehicleID     int64
	SlotID        int64
	GuardUserID   int64
	OcrPlateText  null.String
	OcrConfidence null.Float
	EntryTime     time.Time
	ExitTime      null.Time
	Status        string
}

func (ge *gEvent) TableName() string {
	return "parking_events"
}

func (ge *gEvent) Model() (*model.ParkingEvent, error) {
	status, err := model.ParseEventStatus(ge.Status)
	if err != nil {
		return nil, fmt.Errorf("parking event %d: %w", ge.ID, err)
	}
	return &model.ParkingEvent{
		ID:          ge.ID,
		VehicleID:   ge.VehicleID,
		SlotID:      ge.SlotID,
		GuardUserID: ge.GuardUserID,
		OCRPlate:    ge.OcrPlateText.Ptr(),
		OCRConf:     ge.OcrConfidence.Ptr(),
		EntryTime:   ge.EntryTime,
		ExitTime:    ge.ExitTime.Ptr(),
		Status:      status,
	}, nil
}

type gFlag struct {
	ID              int64 `gorm:"primaryKey"`
	VehicleID       null.Int
	RaisedByGuardID int64
	Reason          string
	Status          string
	ClosedByAdminID null.Int
	ResolutionNote  null.String
	CreatedAt       time.Time `gorm:"default:now()"`
	ClosedAt        null.Time
}

func (gf *gFlag) TableName() string {
	return "flags"
}

func (gf *gFlag) Model() (*model.Flag, error) {
	status, err := model.ParseFlagStatus(gf.Status)
	if err != nil {
		return nil, fmt.Errorf("flag %d: %w", gf.ID, err)
	}
	return &model.Flag{
		ID:            gf.ID,
		VehicleID:     gf.VehicleID.Ptr(),
		RaisedByGuard: gf.RaisedByGuardID,
		Reason:        gf.Reason,
		Status:        status,
		ClosedByAdmin: gf.ClosedByAdminID.Ptr(),
		Resolution:    gf.ResolutionNote.Ptr(),
		CreatedAt:     gf.CreatedAt,
		ClosedAt:      gf.ClosedAt.Ptr(),
	}, nil
}

// LockSlot loads the slot row with a SELECT ... FOR UPDATE, so its
// status stays stable until the enclosing transaction ends. Callers
// decide, based on the locked status, whether the allocation proceeds.
func LockSlot(ctx context.Context, q *postgres.Tx, slotID int64) (*model.Slot, error) {
	gdb := q.GORM(ctx)
	var gs gSlot
	err := gdb.Clauses(clause.Locking{Strength: "UPDATE"}).Where(
		"id=?", slotID,
	).Take(&gs).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, cerr.NotFound(
			fmt.Errorf("no slot with id %d", slotID),
		)
	case err != nil:
		return nil, fmt.Errorf("query: %w", err)
	}
	return gs.Model()
}

// CreateEvent inserts an active parking event row and returns it with
// its database assigned identifier.
func CreateEvent(ctx context.Context, q *postgres.Tx, e *model.ParkingEvent) (*model.ParkingEvent, error) {
	gdb := q.GORM(ctx)
	ge := gEvent{
		VehicleID:     e.VehicleID,
		SlotID:        e.SlotID,
		GuardUserID:   e.GuardUserID,
		OcrPlateText:  null.StringFromPtr(e.OCRPlate),
		OcrConfidence: null.FloatFromPtr(e.OCRConf),
		EntryTime:     e.EntryTime,
		Status:        e.Status.String(),
	}
	if err := gdb.Create(&ge).Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return ge.Model()
}

// CloseEvent marks an active parking event as exited, setting its exit
// time. Closing an event which is not active anymore is reported as a
// conflict without mutating anything.
func CloseEvent(ctx context.Context, q *postgres.Tx, eventID int64, exitTime time.Time) error {
	gdb := q.GORM(ctx)
	res := gdb.Model(&gEvent{}).Where(
		"id=? AND status=?", eventID, model.EventActive.String(),
	).Updates(map[string]any{
		"status":    model.EventExited.String(),
		"exit_time": exitTime,
	})
	if err := res.Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if res.RowsAffected != 1 {
		return cerr.Conflict(
			fmt.Errorf("parking event %d is not active", eventID),
		)
	}
	return nil
}

// SetSlotStatus updates the status column of one slot row.
func SetSlotStatus(ctx context.Context, q *postgres.Tx, slotID int64, s model.SlotStatus) error {
	gdb := q.GORM(ctx)
	res := gdb.Model(&gSlot{}).Where("id=?", slotID).Update(
		"status", s.String(),
	)
	if err := res.Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if res.RowsAffected != 1 {
		return cerr.NotFound(
			fmt.Errorf("no slot with id %d", slotID),
		)
	}
	return nil
}

// FindVehicle resolves a plate number to an active vehicle and its
// owner details, returning nil when no active vehicle carries the
// plate.
func FindVehicle[Q postgres.Queryer](ctx context.Context, q Q, plate string) (*model.VehicleOwner, error) {
	gdb := q.GORM(ctx)
	var rows []struct {
		VehicleID     int64
		Plate         string
		UserID        int64
		FullName      string
		OwnerVerified bool
	}
	err := gdb.Raw(`
SELECT v.id AS vehicle_id, v.plate_number AS plate,
    u.id AS user_id, u.full_name, u.is_profile_verified AS owner_verified
FROM vehicles v
JOIN users u ON u.id = v.user_id
WHERE v.plate_number = ? AND v.is_active`, plate).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	r := rows[0]
	return &model.VehicleOwner{
		VehicleID:     r.VehicleID,
		Plate:         r.Plate,
		UserID:        r.UserID,
		FullName:      r.FullName,
		OwnerVerified: r.OwnerVerified,
	}, nil
}

// AvailableSlots lists the free slots ordered by their code.
func AvailableSlots[Q postgres.Queryer](ctx context.Context, q Q) ([]model.Slot, error) {
	gdb := q.GORM(ctx)
	var gss []gSlot
	err := gdb.Where(
		"status=?", model.SlotAvailable.String(),
	).Order("code").Find(&gss).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	slots := make([]model.Slot, len(gss))
	for i := range gss {
		s, err := gss[i].Model()
		if err != nil {
			return nil, err
		}
		slots[i] = *s
	}
	return slots, nil
}

type gActiveEvent struct {
	EventID   int64
	Plate     string
	OwnerName string
	SlotCode  string
	EntryTime time.Time
}

func (gae *gActiveEvent) Model(now time.Time) *model.ActiveEvent {
	return &model.ActiveEvent{
		EventID:   gae.EventID,
		Plate:     gae.Plate,
		OwnerName: gae.OwnerName,
		SlotCode:  gae.SlotCode,
		EntryTime: gae.EntryTime,
		Duration:  now.Sub(gae.EntryTime),
	}
}

const activeEventsQuery = `
SELECT pe.id AS event_id, v.plate_number AS plate,
    u.full_name AS owner_name, s.code AS slot_code, pe.entry_time
FROM parking_events pe
JOIN vehicles v ON v.id = pe.vehicle_id
JOIN users u ON u.id = v.user_id
JOIN slots s ON s.id = pe.slot_id
WHERE pe.status = 'active'`

// ActiveEvents lists the active parking events joined with their
// plate, owner name, and slot code, with durations derived against
// the given now instant.
func ActiveEvents[Q postgres.Queryer](ctx context.Context, q Q, now time.Time) ([]model.ActiveEvent, error) {
	gdb := q.GORM(ctx)
	var rows []gActiveEvent
	err := gdb.Raw(
		activeEventsQuery + " ORDER BY pe.entry_time",
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	evs := make([]model.ActiveEvent, len(rows))
	for i := range rows {
		evs[i] = *rows[i].Model(now)
	}
	return evs, nil
}

// NewestActiveEventByPlate finds the most recently opened active
// parking event of the vehicle with the given plate, returning nil
// when that vehicle is not inside. The one-active-event-per-vehicle
// invariant makes more than one candidate row impossible, but the
// newest-first ordering keeps the query well defined even against a
// corrupted history.
func NewestActiveEventByPlate[Q postgres.Queryer](ctx context.Context, q Q, plate string) (*model.ParkingEvent, error) {
	gdb := q.GORM(ctx)
	var ges []gEvent
	err := gdb.Raw(`
SELECT pe.*
FROM parking_events pe
JOIN vehicles v ON v.id = pe.vehicle_id
WHERE v.plate_number = ? AND pe.status = 'active'
ORDER BY pe.entry_time DESC
LIMIT 1`, plate).Scan(&ges).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if len(ges) == 0 {
		return nil, nil
	}
	return ges[0].Model()
}

// CurrentParking finds the active parking event of any vehicle owned
// by the given user, or nil when none of their vehicles is inside.
func CurrentParking[Q postgres.Queryer](ctx context.Context, q Q, userID int64) (*model.ActiveEvent, error) {
	gdb := q.GORM(ctx)
	var rows []gActiveEvent
	err := gdb.Raw(
		activeEventsQuery+" AND v.user_id = ? LIMIT 1", userID,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].Model(time.Now()), nil
}

// Overview gathers the dashboard KPI counters in one round-trip. Each
// counter is an independent snapshot; no locks are taken.
func Overview[Q postgres.Queryer](ctx context.Context, q Q) (*model.Overview, error) {
	gdb := q.GORM(ctx)
	var row struct {
		ActiveInside int
		FreeSlots    int
		TodayEntries int
		OpenFlags    int
	}
	err := gdb.Raw(`
SELECT
    (SELECT count(*) FROM parking_events
        WHERE status = 'active') AS active_inside,
    (SELECT count(*) FROM slots
        WHERE status = 'available') AS free_slots,
    (SELECT count(*) FROM parking_events
        WHERE entry_time >= date_trunc('day', now())) AS today_entries,
    (SELECT count(*) FROM flags
        WHERE status = 'open') AS open_flags`).Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return &model.Overview{
		ActiveInside: row.ActiveInside,
		FreeSlots:    row.FreeSlots,
		TodayEntries: row.TodayEntries,
		OpenFlags:    row.OpenFlags,
	}, nil
}

// CreateFlag inserts an open flag row, letting the database fill its
// creation time, and returns it with the database assigned fields.
func CreateFlag[Q postgres.Queryer](ctx context.Context, q Q, f *model.Flag) (*model.Flag, error) {
	gdb := q.GORM(ctx)
	gf := gFlag{
		VehicleID:       null.IntFromPtr(f.VehicleID),
		RaisedByGuardID: f.RaisedByGuard,
		Reason:          f.Reason,
		Status:          f.Status.String(),
	}
	if err := gdb.Create(&gf).Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return gf.Model()
}
