package repo

import "context"

type TxHandler func(context.Context, Tx) error

// Conn represents one database connection. Statements which need to
// be atomic, such as the slot allocation protocol, must run through
// the Tx method; plain dashboard reads may use the Queryer methods
// directly.
type Conn interface {
	Queryer
	Tx(ctx context.Context, handler TxHandler) error
	IsConn()
}
