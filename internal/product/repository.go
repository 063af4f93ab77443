package product

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Javohirbek070/toliq-shop-reimagined/internal/logger"

	"go.uber.org/zap"
)

const productColumns = `
	p.id,
	p.name,
	p.description,
	p.price,
	p.image,
	p.category_id,
	p.is_hot,
	p.is_new,
	p.is_featured,
	p.discount,
	p.created_at,
	p.updated_at,
	c.name,
	c.slug
`

type Repository interface {
	GetList(ctx context.Context, opts ProductQueryOptions) ([]*Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	GetFeatured(ctx context.Context) (*Product, error)
	Create(ctx context.Context, input NewProductInput) (*Product, error)
	Update(ctx context.Context, id string, input UpdateProductInput) (*Product, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetList(
	ctx context.Context,
	opts ProductQueryOptions,
) ([]*Product, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetList"),
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

	log = log.With(
		zap.Int32("limit", finalLimit),
		zap.Int32("page", finalPage),
		zap.Int32("offset", offset),
	)

	// ---------- where ----------
	where := []string{}
	args := []any{}

	if opts.CategorySlug != nil && *opts.CategorySlug != "" {
		log = log.With(zap.String("filter_category", *opts.CategorySlug))
		where = append(where, fmt.Sprintf("c.slug = $%d", len(args)+1))
		args = append(args, *opts.CategorySlug)
	}

	// ---------- query ----------
	query := `
	SELECT ` + productColumns + `
	FROM products p
	LEFT JOIN categories c ON p.category_id = c.id`

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	query += ` ORDER BY p.created_at DESC`
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

	result := make([]*Product, 0, finalLimit)

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		result = append(result, p)
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

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	query := `
	SELECT ` + productColumns + `
	FROM products p
	LEFT JOIN categories c ON p.category_id = c.id
	WHERE p.id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return p, nil
}

// GetFeatured returns the single product flagged for homepage promotion.
func (r *repository) GetFeatured(ctx context.Context) (*Product, error) {
	query := `
	SELECT ` + productColumns + `
	FROM products p
	LEFT JOIN categories c ON p.category_id = c.id
	WHERE p.is_featured = TRUE
	LIMIT 1`

	row := r.db.QueryRowContext(ctx, query)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (r *repository) Create(ctx context.Context, input NewProductInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("product_name", input.Name),
	)

	log.Debug("start create product")

	query := `
	INSERT INTO products (
		name, description, price, image, category_id,
		is_hot, is_new, is_featured, discount
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING id, name, description, price, image, category_id,
		is_hot, is_new, is_featured, discount, created_at, updated_at
	`

	var p Product
	err := r.db.QueryRowContext(
		ctx,
		query,
		input.Name,
		input.Description,
		input.Price,
		input.Image,
		input.CategoryID,
		input.IsHot,
		input.IsNew,
		input.IsFeatured,
		input.Discount,
	).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Image,
		&p.CategoryID,
		&p.IsHot,
		&p.IsNew,
		&p.IsFeatured,
		&p.Discount,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	log.Info("success create product",
		zap.String("product_id", p.ID),
	)

	return &p, nil
}

func (r *repository) Update(ctx context.Context, id string, input UpdateProductInput) (*Product, error) {
	set := []string{}
	args := []any{}

	addSet := func(column string, value any) {
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)+1))
		args = append(args, value)
	}

	if input.Name != nil {
		addSet("name", *input.Name)
	}
	if input.Description != nil {
		addSet("description", *input.Description)
	}
	if input.Price != nil {
		addSet("price", *input.Price)
	}
	if input.Image != nil {
		addSet("image", *input.Image)
	}
	if input.CategoryID != nil {
		addSet("category_id", *input.CategoryID)
	}
	if input.IsHot != nil {
		addSet("is_hot", *input.IsHot)
	}
	if input.IsNew != nil {
		addSet("is_new", *input.IsNew)
	}
	if input.IsFeatured != nil {
		addSet("is_featured", *input.IsFeatured)
	}
	if input.Discount != nil {
		addSet("discount", *input.Discount)
	}

	if len(set) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	set = append(set, "updated_at = NOW()")

	query := `
	UPDATE products
	SET ` + strings.Join(set, ", ") + `
	WHERE id = $` + fmt.Sprint(len(args)+1) + `
	RETURNING id, name, description, price, image, category_id,
		is_hot, is_new, is_featured, discount, created_at, updated_at`
	args = append(args, id)

	var p Product
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Image,
		&p.CategoryID,
		&p.IsHot,
		&p.IsNew,
		&p.IsFeatured,
		&p.Discount,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Image,
		&p.CategoryID,
		&p.IsHot,
		&p.IsNew,
		&p.IsFeatured,
		&p.Discount,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.CategoryName,
		&p.CategorySlug,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
