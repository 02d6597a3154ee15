package repo

import (
	"context"
	"time"

	"github.com/momeni/campus-parking/pkg/core/model"
)

type ParkingConnQueryer interface {
	ParkingQueryer
}

type ParkingTxQueryer interface {
	ParkingQueryer

	// LockSlot acquires a row-level lock on the slot (equivalent to a
	// SELECT ... FOR UPDATE) and returns its current status. The lock
	// is held until the enclosing transaction ends.
	LockSlot(ctx context.Context, slotID int64) (*model.Slot, error)
	CreateEvent(ctx context.Context, e *model.ParkingEvent) (*model.ParkingEvent, error)
	CloseEvent(ctx context.Context, eventID int64, exitTime time.Time) error
	SetSlotStatus(ctx context.Context, slotID int64, s model.SlotStatus) error
}

type ParkingQueryer interface {
	FindVehicle(ctx context.Context, plate string) (*model.VehicleOwner, error)
	AvailableSlots(ctx context.Context) ([]model.Slot, error)
	ActiveEvents(ctx context.Context, now time.Time) ([]model.ActiveEvent, error)
	// NewestActiveEventByPlate returns nil without an error when the
	// plate has no active event.
	NewestActiveEventByPlate(ctx context.Context, plate string) (*model.ParkingEvent, error)
	// CurrentParking returns the active event of any vehicle owned by
	// the given user, or nil when none of them is parked.
	CurrentParking(ctx context.Context, userID int64) (*model.ActiveEvent, error)
	Overview(ctx context.Context) (*model.Overview, error)
	CreateFlag(ctx context.Context, f *model.Flag) (*model.Flag, error)
}

type Parking interface {
	Conn(Conn) ParkingConnQueryer
	Tx(Tx) ParkingTxQueryer
}
