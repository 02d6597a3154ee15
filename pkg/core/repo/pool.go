package repo

import "context"

type ConnHandler func(context.Context, Conn) error

// Pool represents a database connection pool which is injected into
// the use case instances, replacing any ambient global connection.
// A connection is acquired for the lifetime of one handler invocation
// and released afterwards.
type Pool interface {
	Conn(ctx context.Context, handler ConnHandler) error
	Close() error
}
