// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package parkinguc_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/momeni/campus-parking/internal/test/dbcontainer"
	"github.com/momeni/campus-parking/pkg/adapter/db/postgres"
	"github.com/momeni/campus-parking/pkg/adapter/db/postgres/parkingrp"
	"github.com/momeni/campus-parking/pkg/adapter/db/postgres/schema"
	"github.com/momeni/campus-parking/pkg/core/model"
	"github.com/momeni/campus-parking/pkg/core/recognize"
	"github.com/momeni/campus-parking/pkg/core/repo"
	"github.com/momeni/campus-parking/pkg/core/usecase/parkinguc"
	"github.com/stretchr/testify/suite"
)

type IntegrationParkingTestSuite struct {
	suite.Suite

	Ctx  context.Context
	Pg   *sqltestutil.PostgresContainer
	Pool *postgres.Pool
	UC   *parkinguc.UseCase

	VehicleID int64 // the seeded ABC123 vehicle
	GuardID   int64 // the seeded guard account
}

func TestIntegrationParkingTestSuite(t *testing.T) {
	ctx := context.Background()
	pg, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	suite.Run(t, &IntegrationParkingTestSuite{
		Ctx:  ctx,
		Pg:   pg,
		Pool: pool,
	})
}

func (ipts *IntegrationParkingTestSuite) SetupSuite() {
	err := ipts.Pool.Conn(
		ipts.Ctx, func(ctx context.Context, c repo.Conn) error {
			return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
				if err := schema.Init(ctx, tx); err != nil {
					return err
				}
				return schema.SeedDev(ctx, tx, "parking123")
			})
		},
	)
	ipts.Require().NoError(err, "failed to initialize test database")

	ipts.UC, err = parkinguc.New(ipts.Pool, parkingrp.New())
	ipts.Require().NoError(err, "failed to create parking use case")

	ipts.VehicleID = ipts.queryID(
		"SELECT id FROM vehicles WHERE plate_number = 'ABC123'",
	)
	ipts.GuardID = ipts.queryID(
		"SELECT id FROM users WHERE role = 'guard'",
	)
}

func (ipts *IntegrationParkingTestSuite) queryID(
	sql string, args ...any,
) (id int64) {
	err := ipts.Pool.Conn(
		ipts.Ctx, func(ctx context.Context, c repo.Conn) error {
			rows, err := c.Query(ctx, sql, args...)
			if err != nil {
				return err
			}
			defer rows.Close()
			if !rows.Next() {
				return errors.New("expected one row, but got 0")
			}
			if err := rows.Scan(&id); err != nil {
				return err
			}
			return rows.Err()
		},
	)
	ipts.Require().NoError(err, "failed to query: %s", sql)
	return id
}

func (ipts *IntegrationParkingTestSuite) exec(sql string, args ...any) {
	err := ipts.Pool.Conn(
		ipts.Ctx, func(ctx context.Context, c repo.Conn) error {
			_, err := c.Exec(ctx, sql, args...)
			return err
		},
	)
	ipts.Require().NoError(err, "failed to exec: %s", sql)
}

func (ipts *IntegrationParkingTestSuite) slotID(code string) int64 {
	return ipts.queryID("SELECT id FROM slots WHERE code = $1", code)
}

func (ipts *IntegrationParkingTestSuite) release(plate string) {
	_, _, err := ipts.UC.Release(ipts.Ctx, plate)
	ipts.Require().NoError(err, "failed to release %s", plate)
}

func (ipts *IntegrationParkingTestSuite) TestConcurrentAllocation() {
	slotID := ipts.slotID("A5")
	const racers = 8
	errs := make([]error, racers)
	var wg sync.WaitGroup
	wg.Add(racers)
	for i := 0; i < racers; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = ipts.UC.Allocate(
				ipts.Ctx, ipts.VehicleID, slotID, ipts.GuardID, nil,
			)
		}(i)
	}
	wg.Wait()

	won, lost := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, parkinguc.ErrSlotNotAvailable):
			lost++
		default:
			ipts.Fail("unexpected allocation error", "%v", err)
		}
	}
	ipts.Equal(1, won, "exactly one racer must win the slot")
	ipts.Equal(racers-1, lost, "all other racers must lose cleanly")

	evs, err := ipts.UC.ActiveEvents(ipts.Ctx)
	ipts.Require().NoError(err)
	ipts.Len(evs, 1, "a lost race may not leave an event behind")

	ipts.release("ABC123")
}

func (ipts *IntegrationParkingTestSuite) TestReallocateFreedSlot() {
	slotID := ipts.slotID("A3")
	ev1, err := ipts.UC.Allocate(
		ipts.Ctx, ipts.VehicleID, slotID, ipts.GuardID, nil,
	)
	ipts.Require().NoError(err)
	ipts.Equal(model.EventActive, ev1.Status)
	ipts.Nil(ev1.OCRPlate, "typed-in plates carry no provenance")

	ev2, released, err := ipts.UC.Release(ipts.Ctx, "ABC123")
	ipts.Require().NoError(err)
	ipts.True(released)
	ipts.Require().NotNil(ev2)
	ipts.Equal(ev1.ID, ev2.ID)
	ipts.Equal(model.EventExited, ev2.Status)
	ipts.Require().NotNil(ev2.ExitTime)
	ipts.False(
		ev2.ExitTime.Before(ev2.EntryTime),
		"exit may not precede entry",
	)

	// the freed slot must accept a new event immediately
	ev3, err := ipts.UC.Allocate(
		ipts.Ctx, ipts.VehicleID, slotID, ipts.GuardID, nil,
	)
	ipts.Require().NoError(err)
	ipts.NotEqual(ev1.ID, ev3.ID, "events are append-only history")

	ipts.release("ABC123")
}

func (ipts *IntegrationParkingTestSuite) TestRecognitionProvenance() {
	slotID := ipts.slotID("A4")
	ev, err := ipts.UC.Allocate(
		ipts.Ctx, ipts.VehicleID, slotID, ipts.GuardID,
		&recognizeReading,
	)
	ipts.Require().NoError(err)
	ipts.Require().NotNil(ev.OCRPlate)
	ipts.Equal("ABC123", *ev.OCRPlate)
	ipts.Require().NotNil(ev.OCRConf)
	ipts.InDelta(0.87, *ev.OCRConf, 1e-9)

	ipts.release("ABC123")
}

func (ipts *IntegrationParkingTestSuite) TestReleaseUnknownPlate() {
	ev, released, err := ipts.UC.Release(ipts.Ctx, "NOPE404")
	ipts.NoError(err, "an unknown plate is not an error")
	ipts.False(released)
	ipts.Nil(ev)
}

func (ipts *IntegrationParkingTestSuite) TestReservedSlotPolicy() {
	slotID := ipts.slotID("A9")
	ipts.exec(
		"UPDATE slots SET status = 'reserved' WHERE id = $1", slotID,
	)

	_, err := ipts.UC.Allocate(
		ipts.Ctx, ipts.VehicleID, slotID, ipts.GuardID, nil,
	)
	ipts.ErrorIs(
		err, parkinguc.ErrSlotReserved,
		"reserved slots are refused by default",
	)

	permissive, err := parkinguc.New(
		ipts.Pool, parkingrp.New(),
		parkinguc.WithReservedSlotAllocation(true),
	)
	ipts.Require().NoError(err)
	ev, err := permissive.Allocate(
		ipts.Ctx, ipts.VehicleID, slotID, ipts.GuardID, nil,
	)
	ipts.Require().NoError(
		err, "the policy option must admit reserved slots",
	)
	ipts.Equal(model.EventActive, ev.Status)

	ipts.release("ABC123")
}

func (ipts *IntegrationParkingTestSuite) TestVehicleLookup() {
	vo, err := ipts.UC.FindVehicle(ipts.Ctx, "ABC123")
	ipts.Require().NoError(err)
	ipts.Equal(ipts.VehicleID, vo.VehicleID)
	ipts.Equal("Dev Member", vo.FullName)

	_, err = ipts.UC.FindVehicle(ipts.Ctx, "ZZZ999")
	ipts.ErrorIs(err, parkinguc.ErrVehicleNotFound)

	// deactivated vehicles are invisible at the gate
	ipts.exec(
		"UPDATE vehicles SET is_active = FALSE WHERE id = $1",
		ipts.VehicleID,
	)
	_, err = ipts.UC.FindVehicle(ipts.Ctx, "ABC123")
	ipts.ErrorIs(err, parkinguc.ErrVehicleNotFound)
	ipts.exec(
		"UPDATE vehicles SET is_active = TRUE WHERE id = $1",
		ipts.VehicleID,
	)
}

// recognizeReading mimics what the recognition API would have
// produced for the seeded sample vehicle.
var recognizeReading = recognize.Reading{
	Plate:      "ABC123",
	Confidence: 0.87,
}
