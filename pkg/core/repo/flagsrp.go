package repo

import (
	"context"

	"github.com/momeni/campus-parking/pkg/core/model"
)

type FlagsConnQueryer interface {
	FlagsQueryer
}

type FlagsTxQueryer interface {
	FlagsQueryer
}

type FlagsQueryer interface {
	ListOpen(ctx context.Context) ([]model.FlagDetails, error)
	// Close transitions an open flag to closed, recording the closing
	// admin and an optional resolution note. It reports false when the
	// flag was not open, so a closed flag can never be reopened or
	// re-closed.
	Close(ctx context.Context, flagID, adminID int64, note *string) (bool, error)
	CountOpen(ctx context.Context) (int, error)
}

type Flags interface {
	Conn(Conn) FlagsConnQueryer
	Tx(Tx) FlagsTxQueryer
}
