// Package flagsrp implements the administrative side of the flags
// repository over a postgres database. Raising a flag belongs to the
// parking repository, since guards raise flags from the gate flow.
package flagsrp

import (
	"context"
	"fmt"
	"time"

	"github.com/momeni/campus-parking/pkg/adapter/db/postgres"
	"github.com/momeni/campus-parking/pkg/core/model"
	"gopkg.in/guregu/null.v4"
)

// ListOpen lists the open flags joined with the raising guard's name,
// oldest first, for the administrators' review queue.
func ListOpen[Q postgres.Queryer](ctx context.Context, q Q) ([]model.FlagDetails, error) {
	gdb := q.GORM(ctx)
	var rows []struct {
		ID        int64
		Reason    string
		RaisedBy  string
		CreatedAt time.Time
	}
	err := gdb.Raw(`
SELECT f.id, f.reason, u.full_name AS raised_by, f.created_at
FROM flags f
JOIN users u ON u.id = f.raised_by_guard_id
WHERE f.status = 'open'
ORDER BY f.created_at`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	fds := make([]model.FlagDetails, len(rows))
	for i, r := range rows {
		fds[i] = model.FlagDetails{
			ID:        r.ID,
			Reason:    r.Reason,
			RaisedBy:  r.RaisedBy,
			CreatedAt: r.CreatedAt,
		}
	}
	return fds, nil
}

// Close transitions an open flag to closed, recording the closing
// admin, the closing time, and an optional resolution note. The
// status guard in the WHERE clause makes the close one-way: a closed
// flag reports false and stays untouched.
func Close[Q postgres.Queryer](ctx context.Context, q Q, flagID, adminID int64, note *string) (bool, error) {
	gdb := q.GORM(ctx)
	res := gdb.Exec(`
UPDATE flags
SET status = 'closed', closed_by_admin_id = ?, resolution_note = ?,
    closed_at = now()
WHERE id = ? AND status = 'open'`,
		adminID, null.StringFromPtr(note), flagID,
	)
	if err := res.Error; err != nil {
		return false, fmt.Errorf("query: %w", err)
	}
	return res.RowsAffected == 1, nil
}

// CountOpen reports the number of open flags.
func CountOpen[Q postgres.Queryer](ctx context.Context, q Q) (int, error) {
	gdb := q.GORM(ctx)
	var n int64
	err := gdb.Table("flags").Where("status='open'").Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("query: %w", err)
	}
	return int(n), nil
}
