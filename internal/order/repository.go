package order

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Javohirbek070/toliq-shop-reimagined/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	CreateOrderTx(ctx context.Context, input NewOrderInput) (*Order, error)
	List(ctx context.Context, opts OrderQueryOptions) ([]*Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// CreateOrderTx inserts the order and all of its items in one transaction,
// so a half-written order can never become visible to the admin feed.
func (r *repository) CreateOrderTx(ctx context.Context, input NewOrderInput) (*Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var o Order
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (customer_name, phone, address, total, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, customer_name, phone, address, total, status, created_at
	`,
		input.CustomerName,
		input.Phone,
		input.Address,
		input.Total,
		StatusNew,
	).Scan(
		&o.ID,
		&o.CustomerName,
		&o.Phone,
		&o.Address,
		&o.Total,
		&o.Status,
		&o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	for _, item := range input.Items {
		var oi OrderItem
		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, product_name, quantity, price)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`,
			o.ID,
			item.ProductID,
			item.ProductName,
			item.Quantity,
			item.Price,
		).Scan(&oi.ID)
		if err != nil {
			return nil, err
		}

		oi.OrderID = o.ID
		oi.ProductID = item.ProductID
		oi.ProductName = item.ProductName
		oi.Quantity = item.Quantity
		oi.Price = item.Price
		o.Items = append(o.Items, oi)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *repository) List(ctx context.Context, opts OrderQueryOptions) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	start := time.Now()

	// ---------- pagination ----------
	finalLimit := int32(50)
	if opts.Limit != nil && *opts.Limit > 0 {
		finalLimit = *opts.Limit
	}
	if finalLimit > 100 {
		finalLimit = 100
	}

	finalPage := int32(1)
	if opts.Page != nil && *opts.Page > 0 {
		finalPage = *opts.Page
	}

	offset := (finalPage - 1) * finalLimit

	// ---------- where ----------
	where := []string{}
	args := []any{}

	if opts.Status != nil && *opts.Status != "" {
		log = log.With(zap.String("filter_status", string(*opts.Status)))
		where = append(where, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, *opts.Status)
	}

	if opts.Search != nil && *opts.Search != "" {
		log = log.With(zap.String("filter_search", *opts.Search))
		where = append(where, fmt.Sprintf(
			"(customer_name ILIKE $%d OR phone ILIKE $%d)",
			len(args)+1, len(args)+1,
		))
		args = append(args, "%"+*opts.Search+"%")
	}

	// ---------- query ----------
	query := `
	SELECT id, customer_name, phone, address, total, status, created_at
	FROM orders`

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	query += ` ORDER BY created_at DESC`
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, finalLimit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}
	defer rows.Close()

	result := make([]*Order, 0, finalLimit)

	for rows.Next() {
		var o Order
		err := rows.Scan(
			&o.ID,
			&o.CustomerName,
			&o.Phone,
			&o.Address,
			&o.Total,
			&o.Status,
			&o.CreatedAt,
		)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		result = append(result, &o)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	log.Info("query success",
		zap.Int("rows", len(result)),
		zap.Duration("duration", time.Since(start)),
	)

	return result, nil
}

// GetByID loads the order together with its items.
func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, customer_name, phone, address, total, status, created_at
		FROM orders
		WHERE id = $1
	`, id).Scan(
		&o.ID,
		&o.CustomerName,
		&o.Phone,
		&o.Address,
		&o.Total,
		&o.Status,
		&o.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, quantity, price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.Quantity,
			&item.Price,
		)
		if err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1
		WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}
