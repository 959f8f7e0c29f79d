package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/sakif/storefront-api/internal/apperror"
	"github.com/sakif/storefront-api/internal/model"
	"github.com/sakif/storefront-api/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// CreateUser inserts one user row and fills in its ID and CreatedAt.
//
// Each call is its own statement, outside any transaction: a failure here
// never undoes users inserted by earlier calls.
//
// A duplicate username trips the UNIQUE constraint on users.username and is
// returned as apperror.ErrConflict.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	user.CreatedAt = time.Now().UTC()

	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (username, email, password, is_admin, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		user.Username,
		user.Email,
		user.Password,
		user.IsAdmin,
		user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("user", "username", user.Username, err)
		}
		return fmt.Errorf("sqlite: inserting user %q: %w", user.Username, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading user id: %w", err)
	}
	user.ID = id

	return nil
}

// CountUsers returns the number of rows in users.
func (db *DB) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: counting users: %w", err)
	}
	return n, nil
}
