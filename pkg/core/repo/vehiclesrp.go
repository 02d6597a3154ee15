package repo

import (
	"context"

	"github.com/momeni/campus-parking/pkg/core/model"
)

type VehiclesConnQueryer interface {
	VehiclesQueryer
}

type VehiclesTxQueryer interface {
	VehiclesQueryer
}

type VehiclesQueryer interface {
	Create(ctx context.Context, v *model.Vehicle) (*model.Vehicle, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Vehicle, error)
	// Deactivate clears the active flag of the user's vehicle and
	// reports whether a row was actually updated.
	Deactivate(ctx context.Context, id, userID int64) (bool, error)
	Count(ctx context.Context) (int, error)
}

type Vehicles interface {
	Conn(Conn) VehiclesConnQueryer
	Tx(Tx) VehiclesTxQueryer
}
