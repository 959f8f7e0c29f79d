package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/sakif/storefront-api/internal/apperror"
	"github.com/sakif/storefront-api/internal/model"
	"github.com/sakif/storefront-api/internal/repository"
)

var _ repository.ProductRepository = (*DB)(nil)

const productColumns = `id, title, description, price, image, category, rating_rate, rating_count`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(s rowScanner, p *model.Product) error {
	return s.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Price,
		&p.Image,
		&p.Category,
		&p.RatingRate,
		&p.RatingCount,
	)
}

// CreateProducts inserts all products as one batch and sets their IDs.
//
// The batch runs inside a single transaction with one prepared statement:
// either every row is committed or, on the first failure, none are.
func (db *DB) CreateProducts(ctx context.Context, products []*model.Product) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite: starting product batch: %w", err)
	}
	defer tx.Rollback() // no-op after Commit

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO products (title, description, price, image, category, rating_rate, rating_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("sqlite: preparing product insert: %w", err)
	}
	defer stmt.Close()

	ids := make([]int64, len(products))
	for i, p := range products {
		result, err := stmt.ExecContext(ctx,
			p.Title,
			p.Description,
			p.Price,
			p.Image,
			p.Category,
			p.RatingRate,
			p.RatingCount,
		)
		if err != nil {
			return 0, fmt.Errorf("sqlite: inserting product %d of %d (%q): %w", i+1, len(products), p.Title, err)
		}
		if ids[i], err = result.LastInsertId(); err != nil {
			return 0, fmt.Errorf("sqlite: reading product id: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("sqlite: committing product batch: %w", err)
	}

	// Only hand out IDs once they are durable.
	for i, p := range products {
		p.ID = ids[i]
	}

	return len(products), nil
}

// ListProducts returns every product in insertion order. There is no limit.
func (db *DB) ListProducts(ctx context.Context) ([]model.Product, error) {
	return db.queryProducts(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
}

// GetProductByID returns apperror.ErrNotFound when no row has that id.
func (db *DB) GetProductByID(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product

	err := scanProduct(db.conn.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ?`,
		id,
	), &p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("product", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("sqlite: getting product %d: %w", id, err)
	}

	return &p, nil
}

// SearchProducts returns products whose title, description or category
// contains term, using SQLite's LIKE semantics.
func (db *DB) SearchProducts(ctx context.Context, term string) ([]model.Product, error) {
	where := containsAny(term, productSearchColumns...)
	return db.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products WHERE `+where.SQL+` ORDER BY id`,
		where.Args...,
	)
}

// queryProducts runs a SELECT over productColumns and collects the rows.
// The result is never nil so it encodes as [] rather than null.
func (db *DB) queryProducts(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: querying products: %w", err)
	}
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("sqlite: scanning product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating products: %w", err)
	}

	return products, nil
}
