package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

type sqliteRepository struct {
	db *sqlx.DB
}

// NewSQLiteRepository expects the users table to exist, see db.OpenSQLite.
func NewSQLiteRepository(db *sqlx.DB) Repository {
	return &sqliteRepository{db: db}
}

func isSQLiteUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

func (r *sqliteRepository) Create(ctx context.Context, user *User) (*User, error) {
	now := time.Now().UTC()
	created := *user
	created.CreatedAt = now
	created.UpdatedAt = now

	query := `
		INSERT INTO users (name, email, phone, is_active, department, password, created_at, updated_at)
		VALUES (:name, :email, :phone, :is_active, :department, :password, :created_at, :updated_at)
	`
	res, err := r.db.NamedExecContext(ctx, query, &created)
	if err != nil {
		if isSQLiteUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("repository: failed to insert user: %w", err)
	}

	created.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("repository: failed to read inserted id: %w", err)
	}

	return &created, nil
}

func (r *sqliteRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	return r.getByID(ctx, r.db, id)
}

func (r *sqliteRepository) getByID(ctx context.Context, q sqlx.QueryerContext, id int64) (*User, error) {
	var u User
	err := sqlx.GetContext(ctx, q, &u, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to select user by id %d: %w", id, err)
	}

	return &u, nil
}

func (r *sqliteRepository) List(ctx context.Context) ([]User, error) {
	users := make([]User, 0)
	if err := r.db.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM users ORDER BY id`); err != nil {
		return nil, fmt.Errorf("repository: failed to query users: %w", err)
	}

	return users, nil
}

func (r *sqliteRepository) Update(ctx context.Context, id int64, patch Patch) (u *User, err error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query := `
		UPDATE users
		SET name       = COALESCE(?, name),
		    email      = COALESCE(?, email),
		    phone      = COALESCE(?, phone),
		    is_active  = COALESCE(?, is_active),
		    department = COALESCE(?, department),
		    password   = COALESCE(?, password),
		    updated_at = ?
		WHERE id = ?
	`
	res, err := tx.ExecContext(ctx, query,
		patch.Name,
		patch.Email,
		patch.Phone,
		patch.IsActive,
		patch.Department,
		patch.PasswordHash,
		time.Now().UTC(),
		id,
	)
	if err != nil {
		if isSQLiteUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("repository: failed to update user %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("repository: failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	u, err = r.getByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("repository: failed to commit transaction: %w", err)
	}

	return u, nil
}

func (r *sqliteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("repository: failed to delete user %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("repository: failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *sqliteRepository) EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error) {
	var taken bool
	err := r.db.GetContext(ctx, &taken,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = ? AND id <> ?)`,
		email, exceptID,
	)
	if err != nil {
		return false, fmt.Errorf("repository: failed to look up email: %w", err)
	}

	return taken, nil
}
