package orders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the requested order does not exist.
var ErrNotFound = errors.New("order not found")

// Repository persists order records.
type Repository interface {
	Create(ctx context.Context, order Order) error
	Get(ctx context.Context, id string) (Order, error)
	ListRecent(ctx context.Context, limit int) ([]Order, error)
}

// PostgresRepository stores orders in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts an order record.
func (r *PostgresRepository) Create(ctx context.Context, order Order) error {
	orderID, err := uuid.Parse(order.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO orders (id, asset, network, address, payment_method, fiat_amount, fiat_currency, status, provider_ref, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		orderID, order.Asset, order.Network, order.Address, order.PaymentMethod,
		order.FiatAmount, order.FiatCurrency, order.Status, order.ProviderRef, order.CreatedAt.UTC())
	return err
}

// Get fetches an order by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Order, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return Order{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, asset, network, address, payment_method, fiat_amount, fiat_currency, status, provider_ref, created_at
        FROM orders WHERE id = $1`, orderID)
	return scanOrder(row)
}

// ListRecent returns the newest orders first.
func (r *PostgresRepository) ListRecent(ctx context.Context, limit int) ([]Order, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(ctx, `SELECT id, asset, network, address, payment_method, fiat_amount, fiat_currency, status, provider_ref, created_at
        FROM orders ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, order)
	}
	return result, rows.Err()
}

func scanOrder(row pgx.Row) (Order, error) {
	var (
		id        uuid.UUID
		createdAt time.Time
		order     Order
	)
	if err := row.Scan(&id, &order.Asset, &order.Network, &order.Address, &order.PaymentMethod,
		&order.FiatAmount, &order.FiatCurrency, &order.Status, &order.ProviderRef, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}
	order.ID = id.String()
	order.CreatedAt = createdAt.UTC()
	return order, nil
}
