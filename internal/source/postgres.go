package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/formnav/internal/config"
	"github.com/JonMunkholm/formnav/internal/core"
)

// querier is the subset of *pgxpool.Pool used by PostgresSource.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSource reads the whole submissions table, ordered by id.
type PostgresSource struct {
	db    querier
	query string
}

// NewPostgresSource creates a source over table. The table name must be a
// validated identifier; config.Validate enforces this.
func NewPostgresSource(db querier, table string) *PostgresSource {
	return &PostgresSource{
		db: db,
		query: fmt.Sprintf(
			"SELECT id, date_time, first_name, last_name, email, phone, company, industry, comment, reason FROM %s ORDER BY id",
			pgx.Identifier(splitTable(table)).Sanitize(),
		),
	}
}

// Name implements Named.
func (s *PostgresSource) Name() string { return "postgres" }

// Fetch runs the query and scans every row.
func (s *PostgresSource) Fetch(ctx context.Context) ([]core.Record, error) {
	rows, err := s.db.Query(ctx, s.query)
	if err != nil {
		return nil, fmt.Errorf("query form data: %w", err)
	}
	defer rows.Close()

	records := []core.Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan form data: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate form data: %w", err)
	}
	return records, nil
}

// rowScanner is satisfied by pgx.Rows and pgx.Row.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (core.Record, error) {
	var (
		id        int64
		dateTime  pgtype.Timestamptz
		firstName pgtype.Text
		lastName  pgtype.Text
		email     pgtype.Text
		phone     pgtype.Text
		company   pgtype.Text
		industry  pgtype.Text
		comment   pgtype.Text
		reason    pgtype.Text
	)

	err := row.Scan(
		&id, &dateTime, &firstName, &lastName, &email,
		&phone, &company, &industry, &comment, &reason,
	)
	if err != nil {
		return core.Record{}, err
	}

	r := core.Record{
		ID:        id,
		FirstName: firstName.String,
		LastName:  lastName.String,
		Email:     email.String,
		Phone:     textPtr(phone),
		Company:   textPtr(company),
		Industry:  textPtr(industry),
		Comment:   textPtr(comment),
		Reason:    textPtr(reason),
	}
	if dateTime.Valid {
		r.DateTime = core.StringPtr(dateTime.Time.UTC().Format(time.RFC3339Nano))
	}
	return r, nil
}

func textPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	return core.StringPtr(t.String)
}

// splitTable turns "schema.table" into identifier parts.
func splitTable(table string) []string {
	if schema, name, ok := strings.Cut(table, "."); ok {
		return []string{schema, name}
	}
	return []string{table}
}

// OpenPool connects to the database described by cfg and verifies the
// connection.
func OpenPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}
