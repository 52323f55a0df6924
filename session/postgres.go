package session

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const expiresQuery = `SELECT "expires_at" FROM "Session" WHERE "user_id" = $1`

// Postgres reads sessions from the "Session" table.
type Postgres struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// DSN builds a postgres:// connection string from its parts.
func DSN(host, port, database, user, password string) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(user, password),
		Host:   net.JoinHostPort(host, port),
		Path:   "/" + database,
	}
	return u.String()
}

// NewPostgres opens a connection pool for dsn.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres pool: %w", err)
	}
	return &Postgres{pool: pool, now: time.Now}, nil
}

// IsValid reports whether userID's session row exists and expires in the future.
func (p *Postgres) IsValid(ctx context.Context, userID string) (bool, error) {
	var expiresAt time.Time
	err := p.pool.QueryRow(ctx, expiresQuery, userID).Scan(&expiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("session %s: %w", userID, err)
	}
	return expiresAt.After(p.now()), nil
}

// Close releases the pool.
func (p *Postgres) Close() {
	p.pool.Close()
}
