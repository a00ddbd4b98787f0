package sql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iyhunko/product-catalog/internal/model"
	"github.com/iyhunko/product-catalog/internal/repository"
)

const productColumns = "seq, id, title, description, price, purchased_at, category, spec, reviews, created_at, updated_at"

var _ repository.ProductStore = (*ProductStore)(nil)

// ProductStore implements repository.ProductStore on PostgreSQL.
// Specification blocks and reviews are stored as JSONB.
type ProductStore struct {
	db *sql.DB
}

// NewProductStore creates a new ProductStore instance.
func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

// Add inserts a copy of product under a freshly generated ID.
func (r *ProductStore) Add(ctx context.Context, product *model.Product) (*model.Product, error) {
	stored := product.Clone()
	stored.InitMeta()

	spec, reviews, err := encodeProduct(stored)
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO products (id, title, description, price, purchased_at, category, spec, reviews, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING seq`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	err = stmt.QueryRowContext(ctx,
		stored.ID, stored.Title, stored.Description, stored.Price, nullTime(stored.PurchasedAt),
		string(stored.Category), spec, reviews, stored.CreatedAt, stored.UpdatedAt,
	).Scan(&stored.Seq)
	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	return stored, nil
}

// Update replaces the product with the same ID. Absent IDs leave the table unchanged.
func (r *ProductStore) Update(ctx context.Context, product *model.Product) (bool, error) {
	if product.ID == "" {
		return false, nil
	}
	spec, reviews, err := encodeProduct(product)
	if err != nil {
		return false, err
	}

	query := `UPDATE products SET title = $2, description = $3, price = $4, purchased_at = $5,
	          category = $6, spec = $7, reviews = $8, updated_at = $9 WHERE id = $1`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return false, fmt.Errorf("failed to prepare update statement: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		product.ID, product.Title, product.Description, product.Price, nullTime(product.PurchasedAt),
		string(product.Category), spec, reviews, time.Now(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// Remove deletes a product by ID. Absent IDs leave the table unchanged.
func (r *ProductStore) Remove(ctx context.Context, id string) (bool, error) {
	query := `DELETE FROM products WHERE id = $1`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return false, fmt.Errorf("failed to prepare delete statement: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// FindByID retrieves a single product by ID.
func (r *ProductStore) FindByID(ctx context.Context, id string) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	product, err := scanProduct(stmt.QueryRowContext(ctx, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", repository.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	return product, nil
}

// List retrieves products in insertion order based on the provided query.
func (r *ProductStore) List(ctx context.Context, query repository.Query) ([]*model.Product, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + productColumns + " FROM products WHERE 1=1")

	var args []interface{}
	argIndex := 1

	if category := query.Values[repository.CategoryField]; category != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND category = $%d", argIndex))
		args = append(args, category)
		argIndex++
	}

	// Apply pagination
	if query.Paginator != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND seq > $%d", argIndex))
		args = append(args, query.Paginator.LastSeq)
		argIndex++
	}

	queryBuilder.WriteString(" ORDER BY seq ASC")

	if query.Limit > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argIndex))
		args = append(args, query.Limit)
	}

	stmt, err := r.db.PrepareContext(ctx, queryBuilder.String())
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []*model.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return products, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*model.Product, error) {
	var (
		product     model.Product
		category    string
		purchasedAt sql.NullTime
		spec        []byte
		reviews     []byte
	)
	err := row.Scan(
		&product.Seq, &product.ID, &product.Title, &product.Description, &product.Price, &purchasedAt,
		&category, &spec, &reviews, &product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	product.Category = model.Category(category)
	if purchasedAt.Valid {
		t := purchasedAt.Time
		product.PurchasedAt = &t
	}
	if product.Spec, err = model.DecodeSpec(product.Category, spec); err != nil {
		return nil, err
	}
	if len(reviews) > 0 {
		if err := json.Unmarshal(reviews, &product.Reviews); err != nil {
			return nil, fmt.Errorf("failed to decode reviews: %w", err)
		}
	}
	return &product, nil
}

func encodeProduct(p *model.Product) (spec []byte, reviews []byte, err error) {
	spec, err = model.EncodeSpec(p.Spec)
	if err != nil {
		return nil, nil, err
	}
	list := p.Reviews
	if list == nil {
		list = []model.Review{}
	}
	reviews, err = json.Marshal(list)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode reviews: %w", err)
	}
	return spec, reviews, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
