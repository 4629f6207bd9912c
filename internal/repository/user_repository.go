package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecoshop/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepo struct {
	db *pgxpool.Pool
}

var validate = validator.New()

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	if err := validate.Struct(u); err != nil {
		var validationErr validator.ValidationErrors
		if errors.As(err, &validationErr) {
			firstErr := validationErr[0]
			switch firstErr.Field() {
			case "Email":
				return fmt.Errorf("%w: invalid email format", ErrInvalidInput)
			case "Role":
				return fmt.Errorf("%w: role must be customer, brand or admin", ErrInvalidInput)
			}
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if u.PasswordHash == "" {
		return fmt.Errorf("%w: password hash required", ErrInvalidInput)
	}

	sql := `
		INSERT INTO usuarios (
			email,
			password_hash,
			nombre,
			direccion_default,
			rol,
			fecha_registro
	) VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING usuario_id
	`

	u.RegisteredAt = time.Now()

	err := r.db.QueryRow(ctx, sql,
		u.Email,
		u.PasswordHash,
		u.Name,
		u.DefaultAddress,
		u.Role,
		u.RegisteredAt,
	).Scan(&u.UserID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: email already registered", ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: ID must be positive", ErrInvalidInput)
	}

	sql := `
		SELECT
			usuario_id,
			email,
			password_hash,
			nombre,
			direccion_default,
			rol,
			fecha_registro
		FROM usuarios WHERE usuario_id = $1
	`

	var u models.User

	err := r.db.QueryRow(ctx, sql, id).Scan(
		&u.UserID,
		&u.Email,
		&u.PasswordHash,
		&u.Name,
		&u.DefaultAddress,
		&u.Role,
		&u.RegisteredAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id %d: %w", id, err)
	}

	return &u, nil
}

func (r *userRepo) GetAll(ctx context.Context) ([]models.User, error) {
	sql := `
		SELECT
			usuario_id,
			email,
			password_hash,
			nombre,
			direccion_default,
			rol,
			fecha_registro
		FROM usuarios
		ORDER BY usuario_id
	`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		err := rows.Scan(
			&u.UserID,
			&u.Email,
			&u.PasswordHash,
			&u.Name,
			&u.DefaultAddress,
			&u.Role,
			&u.RegisteredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan users: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return users, nil
}

// Update mutates name, default address and role. Email and registration
// timestamp are immutable.
func (r *userRepo) Update(ctx context.Context, u *models.User) error {
	if u.UserID <= 0 {
		return fmt.Errorf("%w: ID must be positive", ErrInvalidInput)
	}
	if u.Role != "customer" && u.Role != "brand" && u.Role != "admin" {
		return fmt.Errorf("%w: role must be customer, brand or admin", ErrInvalidInput)
	}

	sql := `
		UPDATE usuarios
		SET
			nombre = $1,
			direccion_default = $2,
			rol = $3
		WHERE usuario_id = $4
		RETURNING email, fecha_registro
	`

	err := r.db.QueryRow(ctx, sql,
		u.Name,
		u.DefaultAddress,
		u.Role,
		u.UserID,
	).Scan(&u.Email, &u.RegisteredAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update user %d: %w", u.UserID, err)
	}

	return nil
}

func (r *userRepo) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: ID must be positive", ErrInvalidInput)
	}

	result, err := r.db.Exec(ctx, `DELETE FROM usuarios WHERE usuario_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
