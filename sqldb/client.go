package sqldb

import (
	"context"
)

// Client is an engine-specific database client. A Client owns exactly one
// underlying handle; concrete implementations live under impls/ and are
// constructed through the factory registry.
type Client interface {
	// Init prepares the client (DSN assembly). It must be idempotent.
	Init() error
	// Open establishes the underlying handle and verifies it with a ping.
	Open(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error
	Handle() Handle
	BeginTx(ctx context.Context) (Tx, error)
	Conf() *Conf
	DSN() string
	Dialect() Dialect
}
