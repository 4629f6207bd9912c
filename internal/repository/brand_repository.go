package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecoshop/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type brandRepo struct {
	db *pgxpool.Pool
}

func NewBrandRepository(db *pgxpool.Pool) BrandRepository {
	return &brandRepo{db: db}
}

func (r *brandRepo) Create(ctx context.Context, b *models.Brand) error {
	if b.OfficialName == "" {
		return fmt.Errorf("%w: official name required", ErrInvalidInput)
	}
	if b.UserID <= 0 {
		return fmt.Errorf("%w: user ID must be positive", ErrInvalidInput)
	}

	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM usuarios WHERE usuario_id = $1)`, b.UserID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check user %d: %w", b.UserID, err)
	}
	if !exists {
		return fmt.Errorf("%w: user %d", ErrNotFound, b.UserID)
	}

	sql := `
		INSERT INTO marcas (
			usuario_id,
			nombre_oficial,
			descripcion_sostenible,
			sitio_web,
			logo_url,
			fecha_union
	) VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING marca_id
	`

	b.JoinedAt = time.Now()

	err = r.db.QueryRow(ctx, sql,
		b.UserID,
		b.OfficialName,
		b.Description,
		b.Website,
		b.LogoURL,
		b.JoinedAt,
	).Scan(&b.BrandID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: user %d already owns a brand", ErrDuplicate, b.UserID)
		}
		return fmt.Errorf("failed to create brand: %w", err)
	}

	return nil
}

func (r *brandRepo) GetByID(ctx context.Context, id int) (*models.Brand, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: ID must be positive", ErrInvalidInput)
	}

	sql := `
		SELECT
			marca_id,
			usuario_id,
			nombre_oficial,
			descripcion_sostenible,
			sitio_web,
			logo_url,
			fecha_union
		FROM marcas WHERE marca_id = $1
	`

	var b models.Brand

	err := r.db.QueryRow(ctx, sql, id).Scan(
		&b.BrandID,
		&b.UserID,
		&b.OfficialName,
		&b.Description,
		&b.Website,
		&b.LogoURL,
		&b.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get brand by id %d: %w", id, err)
	}

	return &b, nil
}

func (r *brandRepo) GetAll(ctx context.Context) ([]models.Brand, error) {
	sql := `
		SELECT
			marca_id,
			usuario_id,
			nombre_oficial,
			descripcion_sostenible,
			sitio_web,
			logo_url,
			fecha_union
		FROM marcas
		ORDER BY marca_id
	`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to get all brands: %w", err)
	}
	defer rows.Close()

	var brands []models.Brand
	for rows.Next() {
		var b models.Brand
		err := rows.Scan(
			&b.BrandID,
			&b.UserID,
			&b.OfficialName,
			&b.Description,
			&b.Website,
			&b.LogoURL,
			&b.JoinedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan brands: %w", err)
		}
		brands = append(brands, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return brands, nil
}

func (r *brandRepo) Update(ctx context.Context, b *models.Brand) error {
	if b.BrandID <= 0 {
		return fmt.Errorf("%w: ID must be positive", ErrInvalidInput)
	}
	if b.OfficialName == "" {
		return fmt.Errorf("%w: official name required", ErrInvalidInput)
	}

	sql := `
		UPDATE marcas
		SET
			nombre_oficial = $1,
			descripcion_sostenible = $2,
			sitio_web = $3,
			logo_url = $4
		WHERE marca_id = $5
		RETURNING usuario_id, fecha_union
	`

	err := r.db.QueryRow(ctx, sql,
		b.OfficialName,
		b.Description,
		b.Website,
		b.LogoURL,
		b.BrandID,
	).Scan(&b.UserID, &b.JoinedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update brand %d: %w", b.BrandID, err)
	}

	return nil
}

func (r *brandRepo) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: ID must be positive", ErrInvalidInput)
	}

	result, err := r.db.Exec(ctx, `DELETE FROM marcas WHERE marca_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete brand %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
