// Package vehiclesrp implements the vehicles repository over a
// postgres database.
package vehiclesrp

import (
	"context"
	"fmt"

	"github.com/momeni/campus-parking/pkg/adapter/db/postgres"
	"github.com/momeni/campus-parking/pkg/core/model"
)

type gVehicle struct {
	ID          int64 `gorm:"primaryKey"`
	UserID      int64
	PlateNumber string
	IsActive    bool `gorm:"default:true"`
}

func (gv *gVehicle) TableName() string {
	return "vehicles"
}

func (gv *gVehicle) Model() *model.Vehicle {
	return &model.Vehicle{
		ID:     gv.ID,
		UserID: gv.UserID,
		Plate:  gv.PlateNumber,
		Active: gv.IsActive,
	}
}

// Create inserts an active vehicle row and returns it with the
// database assigned identifier. Plate uniqueness is enforced by the
// store; a duplicate surfaces as a constraint violation error.
func Create[Q postgres.Queryer](ctx context.Context, q Q, v *model.Vehicle) (*model.Vehicle, error) {
	gdb := q.GORM(ctx)
	gv := gVehicle{
		UserID:      v.UserID,
		PlateNumber: v.Plate,
		IsActive:    true,
	}
	if err := gdb.Create(&gv).Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return gv.Model(), nil
}

// ListByUser lists the user's vehicles, active ones first.
func ListByUser[Q postgres.Queryer](ctx context.Context, q Q, userID int64) ([]model.Vehicle, error) {
	gdb := q.GORM(ctx)
	var gvs []gVehicle
	err := gdb.Where("user_id=?", userID).Order(
		"is_active DESC, plate_number",
	).Find(&gvs).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	vs := make([]model.Vehicle, len(gvs))
	for i := range gvs {
		vs[i] = *gvs[i].Model()
	}
	return vs, nil
}

// Deactivate clears the active marker of the user's vehicle, keeping
// the row so historical parking events stay resolvable. It reports
// false when the vehicle does not exist, belongs to another user, or
// is deactivated already.
func Deactivate[Q postgres.Queryer](ctx context.Context, q Q, id, userID int64) (bool, error) {
	gdb := q.GORM(ctx)
	res := gdb.Model(&gVehicle{}).Where(
		"id=? AND user_id=? AND is_active", id, userID,
	).Update("is_active", false)
	if err := res.Error; err != nil {
		return false, fmt.Errorf("query: %w", err)
	}
	return res.RowsAffected == 1, nil
}

// Count reports the total number of registered vehicles, active or
// not.
func Count[Q postgres.Queryer](ctx context.Context, q Q) (int, error) {
	gdb := q.GORM(ctx)
	var n int64
	if err := gdb.Model(&gVehicle{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("query: %w", err)
	}
	return int(n), nil
}
