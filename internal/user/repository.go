package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository is the users table. Implementations must enforce email
// uniqueness themselves and report a violation as ErrEmailExists.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	// List returns every user in ascending id (insertion) order.
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id int64, patch Patch) (*User, error)
	Delete(ctx context.Context, id int64) error
	EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error)
}

const userColumns = `id, name, email, phone, is_active, department, password, created_at, updated_at`

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Phone,
		&u.IsActive,
		&u.Department,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *postgresRepository) Create(ctx context.Context, user *User) (*User, error) {
	query := `
		INSERT INTO users (name, email, phone, is_active, department, password)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns

	created, err := scanUser(r.db.QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.Phone,
		user.IsActive,
		user.Department,
		user.PasswordHash,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("repository: failed to insert user: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to select user by id %d: %w", id, err)
	}

	return u, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan user: %w", err)
		}
		users = append(users, *u)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: failed iterating users: %w", err)
	}

	return users, nil
}

func (r *postgresRepository) Update(ctx context.Context, id int64, patch Patch) (*User, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	query := `
		UPDATE users
		SET name       = COALESCE($2, name),
		    email      = COALESCE($3, email),
		    phone      = COALESCE($4, phone),
		    is_active  = COALESCE($5, is_active),
		    department = COALESCE($6, department),
		    password   = COALESCE($7, password),
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns

	u, err := scanUser(r.db.QueryRow(ctx, query,
		id,
		patch.Name,
		patch.Email,
		patch.Phone,
		patch.IsActive,
		patch.Department,
		patch.PasswordHash,
	))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, ErrNotFound
		case isUniqueViolation(err):
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("repository: failed to update user %d: %w", id, err)
	}

	return u, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository: failed to delete user %d: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *postgresRepository) EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error) {
	var taken bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id <> $2)`,
		email, exceptID,
	).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("repository: failed to look up email: %w", err)
	}

	return taken, nil
}
