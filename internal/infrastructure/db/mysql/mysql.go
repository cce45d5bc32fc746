package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"time"

	driver "github.com/go-sql-driver/mysql"
)

const (
	defaultTimeout      = 10 * time.Second
	defaultQueryTimeout = 5 * time.Second
	defaultMaxOpenConns = 10
)

// Config captures the settings required to open the ATS database.
type Config struct {
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	MaxOpenConns int
	Timeout      time.Duration
}

// DSN renders cfg as a go-sql-driver DSN. Times are parsed into time.Time.
func (cfg Config) DSN() string {
	dc := driver.NewConfig()
	dc.User = cfg.User
	dc.Passwd = cfg.Password
	dc.Net = "tcp"
	dc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	dc.DBName = cfg.Database
	dc.ParseTime = true
	dc.Timeout = cfg.Timeout
	if dc.Timeout <= 0 {
		dc.Timeout = defaultTimeout
	}
	return dc.FormatDSN()
}

// Open returns a configured connection pool without touching the network.
// Connections are dialled lazily, so a database that is down at startup is
// picked up once it comes back.
func Open(cfg Config) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("mysql open: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = defaultMaxOpenConns
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxOpen / 2)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

// Ping checks connectivity within timeout. A non-positive timeout uses the
// package default.
func Ping(ctx context.Context, db *sql.DB, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("mysql ping: %w", err)
	}
	return nil
}
