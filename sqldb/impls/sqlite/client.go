package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/zeptools/sqlkit/sqldb"
	_ "modernc.org/sqlite" // side-effect
)

const Type = "sqlite"

// Register makes the sqlite implementation available to sqldb.New.
func Register() {
	sqldb.RegisterFactory(Type, func(conf *sqldb.Conf) (sqldb.Client, error) {
		if conf.Path == "" && conf.DSN == "" {
			return nil, fmt.Errorf("sqlite: conf.path is required")
		}
		return &Client{conf: conf}, nil
	})
}

type Client struct {
	conf *sqldb.Conf

	// db fields are implementation details, not exported
	db  *sql.DB
	dsn string
}

// Ensure sqlite.Client implements sqldb.Client interface
var _ sqldb.Client = (*Client)(nil)

func (c *Client) Init() error {
	if c.dsn != "" {
		return nil
	}
	if c.conf.DSN != "" {
		c.dsn = c.conf.DSN
		return nil
	}
	busyMs := c.conf.Timeout().Milliseconds()
	if busyMs <= 0 {
		busyMs = 5000
	}
	c.dsn = fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)",
		c.conf.Path,
		busyMs,
	)
	return nil
}

func (c *Client) Open(ctx context.Context) error {
	db, err := sql.Open("sqlite", c.dsn)
	if err != nil {
		return err
	}
	if c.conf.CrossThread {
		db.SetMaxOpenConns(4)
		db.SetMaxIdleConns(4)
	} else {
		// The layer owns exactly one connection.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}
	db.SetConnMaxLifetime(0)
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}
	c.db = db
	log.Info().Str("path", c.conf.Path).Msg("sqlite client opened")
	return nil
}

func (c *Client) Close() error {
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	if err != nil {
		return err
	}
	log.Info().Str("path", c.conf.Path).Msg("sqlite client closed")
	return nil
}

func (c *Client) Ping(ctx context.Context) error {
	if c.db == nil {
		return fmt.Errorf("sqlite client not open")
	}
	return c.db.PingContext(ctx)
}

func (c *Client) Handle() sqldb.Handle {
	return &Handle{db: c.db}
}

func (c *Client) BeginTx(ctx context.Context) (sqldb.Tx, error) {
	if c.db == nil {
		return nil, fmt.Errorf("sqlite client not open")
	}
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx}, nil
}

func (c *Client) Conf() *sqldb.Conf { return c.conf }

func (c *Client) DSN() string { return c.dsn }

func (c *Client) Dialect() sqldb.Dialect { return dialect{} }
