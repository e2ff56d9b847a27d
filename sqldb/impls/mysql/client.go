package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zeptools/sqlkit/sqldb"
	_ "github.com/go-sql-driver/mysql" // side-effect
)

const Type = "mysql"

// Register makes the mysql implementation available to sqldb.New.
func Register() {
	sqldb.RegisterFactory(Type, func(conf *sqldb.Conf) (sqldb.Client, error) {
		return &Client{conf: conf}, nil
	})
}

type Client struct {
	conf *sqldb.Conf

	// db fields are implementation details, not exported
	db  *sql.DB
	dsn string
}

// Ensure mysql.Client implements sqldb.Client interface
var _ sqldb.Client = (*Client)(nil)

func (c *Client) Init() error {
	if c.dsn != "" {
		return nil
	}
	if c.conf.DSN != "" {
		c.dsn = c.conf.DSN
		return nil
	}
	charset := c.conf.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	tz := c.conf.TZ
	if tz == "" {
		tz = "Local"
	}
	c.dsn = fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=true&loc=%s",
		c.conf.User,
		c.conf.PW,
		c.conf.Host,
		c.conf.Port,
		c.conf.DB,
		charset,
		tz,
	)
	if timeout := c.conf.Timeout(); timeout > 0 {
		c.dsn += fmt.Sprintf("&timeout=%s", timeout)
	}
	return nil
}

func (c *Client) Open(ctx context.Context) error {
	db, err := sql.Open("mysql", c.dsn)
	if err != nil {
		return err
	}
	db.SetConnMaxLifetime(time.Minute * 3)
	if c.conf.CrossThread {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
	} else {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}
	c.db = db
	log.Info().Str("host", c.conf.Host).Str("db", c.conf.DB).Msg("mysql client opened")
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
	log.Info().Str("db", c.conf.DB).Msg("mysql client closed")
	return nil
}

func (c *Client) Ping(ctx context.Context) error {
	if c.db == nil {
		return fmt.Errorf("mysql client not open")
	}
	return c.db.PingContext(ctx)
}

func (c *Client) Handle() sqldb.Handle {
	return &Handle{db: c.db}
}

func (c *Client) BeginTx(ctx context.Context) (sqldb.Tx, error) {
	if c.db == nil {
		return nil, fmt.Errorf("mysql client not open")
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
