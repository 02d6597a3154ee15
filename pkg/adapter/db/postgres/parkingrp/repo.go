package parkingrp

import (
	"context"
	"time"

	"github.com/momeni/campus-parking/pkg/adapter/db/postgres"
	"github.com/momeni/campus-parking/pkg/core/model"
	"github.com/momeni/campus-parking/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

func (parking *Repo) Conn(c repo.Conn) repo.ParkingConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) FindVehicle(ctx context.Context, plate string) (*model.VehicleOwner, error) {
	return FindVehicle(ctx, cq.Conn, plate)
}

func (cq connQueryer) AvailableSlots(ctx context.Context) ([]model.Slot, error) {
	return AvailableSlots(ctx, cq.Conn)
}

func (cq connQueryer) ActiveEvents(ctx context.Context, now time.Time) ([]model.ActiveEvent, error) {
	return ActiveEvents(ctx, cq.Conn, now)
}

func (cq connQueryer) NewestActiveEventByPlate(ctx context.Context, plate string) (*model.ParkingEvent, error) {
	return NewestActiveEventByPlate(ctx, cq.Conn, plate)
}

func (cq connQueryer) CurrentParking(ctx context.Context, userID int64) (*model.ActiveEvent, error) {
	return CurrentParking(ctx, cq.Conn, userID)
}

func (cq connQueryer) Overview(ctx context.Context) (*model.Overview, error) {
	return Overview(ctx, cq.Conn)
}

func (cq connQueryer) CreateFlag(ctx context.Context, f *model.Flag) (*model.Flag, error) {
	return CreateFlag(ctx, cq.Conn, f)
}

type txQueryer struct {
	*postgres.Tx
}

func (parking *Repo) Tx(tx repo.Tx) repo.ParkingTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) FindVehicle(ctx context.Context, plate string) (*model.VehicleOwner, error) {
	return FindVehicle(ctx, tq.Tx, plate)
}

func (tq txQueryer) AvailableSlots(ctx context.Context) ([]model.Slot, error) {
	return AvailableSlots(ctx, tq.Tx)
}

func (tq txQueryer) ActiveEvents(ctx context.Context, now time.Time) ([]model.ActiveEvent, error) {
	return ActiveEvents(ctx, tq.Tx, now)
}

func (tq txQueryer) NewestActiveEventByPlate(ctx context.Context, plate string) (*model.ParkingEvent, error) {
	return NewestActiveEventByPlate(ctx, tq.Tx, plate)
}

func (tq txQueryer) CurrentParking(ctx context.Context, userID int64) (*model.ActiveEvent, error) {
	return CurrentParking(ctx, tq.Tx, userID)
}

func (tq txQueryer) Overview(ctx context.Context) (*model.Overview, error) {
	return Overview(ctx, tq.Tx)
}

func (tq txQueryer) CreateFlag(ctx context.Context, f *model.Flag) (*model.Flag, error) {
	return CreateFlag(ctx, tq.Tx, f)
}

func (tq txQueryer) LockSlot(ctx context.Context, slotID int64) (*model.Slot, error) {
	return LockSlot(ctx, tq.Tx, slotID)
}

func (tq txQueryer) CreateEvent(ctx context.Context, e *model.ParkingEvent) (*model.ParkingEvent, error) {
	return CreateEvent(ctx, tq.Tx, e)
}

func (tq txQueryer) CloseEvent(ctx context.Context, eventID int64, exitTime time.Time) error {
	return CloseEvent(ctx, tq.Tx, eventID, exitTime)
}

func (tq txQueryer) SetSlotStatus(ctx context.Context, slotID int64, s model.SlotStatus) error {
	return SetSlotStatus(ctx, tq.Tx, slotID, s)
}
