package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultTable is the relation read when none is configured.
const DefaultTable = "orders"

// ErrNullValue is returned when a mandatory column holds NULL.
var ErrNullValue = errors.New("null value")

// querier is the subset of *pgxpool.Pool used by PostgresSource.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSource reads order lines from a Postgres table with the columns
// order_id, order_date, sales, profit, category, region and product_name.
type PostgresSource struct {
	db    querier
	pool  *pgxpool.Pool
	table string
}

// NewPostgresSource connects to databaseURL and verifies the connection.
func NewPostgresSource(ctx context.Context, databaseURL, table string) (*PostgresSource, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	if table == "" {
		table = DefaultTable
	}
	return &PostgresSource{db: pool, pool: pool, table: table}, nil
}

// Close releases the connection pool.
func (s *PostgresSource) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// selectQuery builds the load query. The table name may be schema
// qualified and is quoted as an identifier.
func selectQuery(table string) string {
	ident := pgx.Identifier(strings.Split(table, ".")).Sanitize()
	return `SELECT order_id, order_date::timestamp, sales::float8, profit::float8,
		category, region, product_name
	FROM ` + ident + `
	ORDER BY order_date`
}

// Load queries every row of the table.
func (s *PostgresSource) Load(ctx context.Context) (*Table, error) {
	rows, err := s.db.Query(ctx, selectQuery(s.table))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.table, err)
	}
	defer rows.Close()

	table := &Table{Columns: AllColumns}
	for row := 1; rows.Next(); row++ {
		var (
			orderID, category, region, product *string
			orderDate                          *time.Time
			amount, profit                     *float64
		)
		if err := rows.Scan(&orderID, &orderDate, &amount, &profit, &category, &region, &product); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", row, err)
		}
		if orderDate == nil {
			return nil, &ParseError{Column: "Order Date", Row: row, Err: ErrNullValue}
		}
		if amount == nil {
			return nil, &ParseError{Column: "Sales", Row: row, Err: ErrNullValue}
		}

		table.Records = append(table.Records, Record{
			OrderID:     deref(orderID),
			OrderDate:   orderDate.UTC(),
			Sales:       *amount,
			Profit:      derefFloat(profit),
			Category:    deref(category),
			Region:      deref(region),
			ProductName: deref(product),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", s.table, err)
	}

	return table, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
