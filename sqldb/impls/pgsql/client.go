package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/zeptools/sqlkit/sqldb"
)

const Type = "pgsql"

// Register makes the pgsql implementation available to sqldb.New.
func Register() {
	sqldb.RegisterFactory(Type, func(conf *sqldb.Conf) (sqldb.Client, error) {
		return &Client{conf: conf}, nil
	})
}

type Client struct {
	conf *sqldb.Conf
	pool *pgxpool.Pool
	dsn  string
}

// Ensure pgsql.Client implements sqldb.Client interface
var _ sqldb.Client = (*Client)(nil)

func (c *Client) Init() error {
	if c.dsn != "" {
		return nil
	}
	if c.conf.DSN != "" {
		c.dsn = c.conf.DSN
		return nil
	}
	tz := c.conf.TZ
	if tz == "" {
		tz = "UTC"
	}
	// NOTE: sslmode=disable is often used for local dev, adjust as needed.
	c.dsn = fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=%s",
		c.conf.Host,
		c.conf.Port,
		c.conf.User,
		c.conf.PW,
		c.conf.DB,
		tz,
	)
	if timeout := c.conf.Timeout(); timeout > 0 {
		c.dsn += fmt.Sprintf(" connect_timeout=%d", int(timeout.Seconds()))
	}
	return nil
}

func (c *Client) Open(ctx context.Context) error {
	config, err := pgxpool.ParseConfig(c.dsn)
	if err != nil {
		return fmt.Errorf("failed to parse pgx config: %w", err)
	}
	if c.conf.CrossThread {
		config.MaxConns = 10
		config.MinConns = 2
	} else {
		config.MaxConns = 1
		config.MinConns = 1
	}
	config.MaxConnLifetime = 3 * time.Minute
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to connect pgx pool: %w", err)
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("postgres ping failed: %w", err)
	}
	c.pool = pool
	log.Info().Str("host", c.conf.Host).Str("db", c.conf.DB).Msg("pgsql client opened")
	return nil
}

func (c *Client) Close() error {
	if c.pool == nil {
		return nil
	}
	c.pool.Close()
	c.pool = nil
	log.Info().Str("db", c.conf.DB).Msg("pgsql client closed")
	return nil
}

func (c *Client) Ping(ctx context.Context) error {
	if c.pool == nil {
		return fmt.Errorf("pgsql client not open")
	}
	return c.pool.Ping(ctx)
}

func (c *Client) Handle() sqldb.Handle {
	return &Handle{pool: c.pool}
}

func (c *Client) BeginTx(ctx context.Context) (sqldb.Tx, error) {
	if c.pool == nil {
		return nil, fmt.Errorf("pgsql client not open")
	}
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction failed: %w", err)
	}
	return &Tx{tx: tx}, nil
}

func (c *Client) Conf() *sqldb.Conf { return c.conf }

func (c *Client) DSN() string { return c.dsn }

func (c *Client) Dialect() sqldb.Dialect { return dialect{} }
