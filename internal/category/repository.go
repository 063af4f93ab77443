package category

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Javohirbek070/toliq-shop-reimagined/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetCategories(ctx context.Context, filter *string, limit, page *int32) ([]*Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	AddCategory(ctx context.Context, name, slug string) (*Category, error)
	UpdateCategory(ctx context.Context, id, name, slug string) (*Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetCategories(
	ctx context.Context,
	filter *string,
	limit *int32,
	page *int32,
) ([]*Category, error) {

	// ---------- DEFAULTS ----------
	finalLimit := int32(20)
	finalPage := int32(1)

	if limit != nil && *limit > 0 {
		finalLimit = *limit
	}
	if page != nil && *page > 0 {
		finalPage = *page
	}

	finalOffset := (finalPage - 1) * finalLimit

	log := logger.FromCtx(ctx).With(
		zap.Int32("limit", finalLimit),
		zap.Int32("page", finalPage),
		zap.Int32("offset", finalOffset),
	)
	log.Info("GetCategories started")

	// ---------- BASE QUERY ----------
	query := `
		SELECT
			c.id,
			c.name,
			c.slug
		FROM categories c
	`

	where := []string{}
	args := []interface{}{}

	// ---------- FILTER ----------
	if filter != nil && *filter != "" {
		where = append(where, fmt.Sprintf("c.name ILIKE $%d", len(args)+1))
		args = append(args, "%"+*filter+"%")
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	// ---------- ORDER ----------
	query += " ORDER BY c.name ASC"

	// ---------- PAGINATION ----------
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, finalLimit, finalOffset)

	// ---------- EXECUTE ----------
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("DB query failed GetCategories", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	categories := make([]*Category, 0, finalLimit)

	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, err
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", zap.Error(err))
		return nil, err
	}

	return categories, nil
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	query := `
		SELECT id, name, slug
		FROM categories
		WHERE slug = $1
	`

	var c Category
	err := r.db.QueryRowContext(ctx, query, slug).
		Scan(&c.ID, &c.Name, &c.Slug)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) AddCategory(
	ctx context.Context,
	name string,
	slug string,
) (*Category, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("category_name", name),
		zap.String("category_slug", slug),
	)
	log.Info("AddCategory started")

	if name == "" {
		log.Warn("AddCategory validation failed: empty name")
		return nil, ErrEmptyName
	}

	query := `
		INSERT INTO categories (name, slug)
		VALUES ($1, $2)
		RETURNING id, name, slug
	`

	var c Category

	err := r.db.QueryRowContext(ctx, query, name, slug).
		Scan(&c.ID, &c.Name, &c.Slug)
	if err != nil {
		log.Error("AddCategory DB query failed", zap.Error(err))
		return nil, fmt.Errorf("add category failed: %w", err)
	}

	log.Info("AddCategory success",
		zap.String("category_id", c.ID),
	)

	return &c, nil
}

func (r *repository) UpdateCategory(
	ctx context.Context,
	id string,
	name string,
	slug string,
) (*Category, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("category_id", id),
		zap.String("category_name", name),
	)
	log.Info("UpdateCategory started")

	if name == "" {
		return nil, ErrEmptyName
	}

	query := `
		UPDATE categories
		SET name = $1, slug = $2
		WHERE id = $3
		RETURNING id, name, slug
	`

	var c Category
	err := r.db.QueryRowContext(ctx, query, name, slug, id).
		Scan(&c.ID, &c.Name, &c.Slug)
	if err == sql.ErrNoRows {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		log.Error("UpdateCategory DB query failed", zap.Error(err))
		return nil, fmt.Errorf("update category failed: %w", err)
	}

	return &c, nil
}

func (r *repository) DeleteCategory(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrCategoryNotFound
	}

	return nil
}
