package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ecoshop/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type certificationRepo struct {
	db *pgxpool.Pool
}

func NewCertificationRepository(db *pgxpool.Pool) CertificationRepository {
	return &certificationRepo{db: db}
}

// NormalizeCode trims surrounding whitespace and upper-cases a certification
// code. Codes are stored and compared in this form only.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (r *certificationRepo) Create(ctx context.Context, c *models.Certification) error {
	c.Code = NormalizeCode(c.Code)

	if c.Name == "" {
		return fmt.Errorf("%w: certification name required", ErrInvalidInput)
	}
	if c.Code == "" {
		return fmt.Errorf("%w: certification code required", ErrInvalidInput)
	}

	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM certifications WHERE code = $1)`, c.Code).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check certification code: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: certification code %s already exists", ErrDuplicate, c.Code)
	}

	sql := `
		INSERT INTO certifications (
			name,
			code,
			type,
			logo_url,
			created_at,
			updated_at
	) VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING certification_id
	`

	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	err = r.db.QueryRow(ctx, sql,
		c.Name,
		c.Code,
		c.Type,
		c.LogoURL,
		c.CreatedAt,
		c.UpdatedAt,
	).Scan(&c.CertificationID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: certification code %s already exists", ErrDuplicate, c.Code)
		}
		return fmt.Errorf("failed to create certification: %w", err)
	}

	return nil
}

func (r *certificationRepo) GetByID(ctx context.Context, id int) (*models.Certification, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: ID must be positive", ErrInvalidInput)
	}

	sql := `
		SELECT
			certification_id,
			name,
			code,
			type,
			logo_url,
			created_at,
			updated_at
		FROM certifications WHERE certification_id = $1
	`

	var c models.Certification

	err := r.db.QueryRow(ctx, sql, id).Scan(
		&c.CertificationID,
		&c.Name,
		&c.Code,
		&c.Type,
		&c.LogoURL,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get certification by id %d: %w", id, err)
	}

	return &c, nil
}

func (r *certificationRepo) GetByCode(ctx context.Context, code string) (*models.Certification, error) {
	code = NormalizeCode(code)
	if code == "" {
		return nil, fmt.Errorf("%w: code cannot be empty", ErrInvalidInput)
	}

	sql := `
		SELECT
			certification_id,
			name,
			code,
			type,
			logo_url,
			created_at,
			updated_at
		FROM certifications WHERE code = $1
	`

	var c models.Certification

	err := r.db.QueryRow(ctx, sql, code).Scan(
		&c.CertificationID,
		&c.Name,
		&c.Code,
		&c.Type,
		&c.LogoURL,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get certification by code %s: %w", code, err)
	}

	return &c, nil
}

func (r *certificationRepo) GetAll(ctx context.Context) ([]models.Certification, error) {
	sql := `
		SELECT
			certification_id,
			name,
			code,
			type,
			logo_url,
			created_at,
			updated_at
		FROM certifications
		ORDER BY certification_id
	`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to get all certifications: %w", err)
	}
	defer rows.Close()

	var certs []models.Certification
	for rows.Next() {
		var c models.Certification
		err := rows.Scan(
			&c.CertificationID,
			&c.Name,
			&c.Code,
			&c.Type,
			&c.LogoURL,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan certifications: %w", err)
		}
		certs = append(certs, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return certs, nil
}

// Update re-validates the code for uniqueness when it changes. The creation
// timestamp is preserved and updated_at is bumped.
func (r *certificationRepo) Update(ctx context.Context, c *models.Certification) error {
	if c.CertificationID <= 0 {
		return fmt.Errorf("%w: ID must be positive", ErrInvalidInput)
	}

	c.Code = NormalizeCode(c.Code)
	if c.Name == "" {
		return fmt.Errorf("%w: certification name required", ErrInvalidInput)
	}
	if c.Code == "" {
		return fmt.Errorf("%w: certification code required", ErrInvalidInput)
	}

	existing, err := r.GetByID(ctx, c.CertificationID)
	if err != nil {
		return err
	}

	if existing.Code != c.Code {
		var exists bool
		err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM certifications WHERE code = $1)`, c.Code).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check certification code: %w", err)
		}
		if exists {
			return fmt.Errorf("%w: certification code %s already exists", ErrDuplicate, c.Code)
		}
	}

	sql := `
		UPDATE certifications
		SET
			name = $1,
			code = $2,
			type = $3,
			logo_url = $4,
			updated_at = $5
		WHERE certification_id = $6
		RETURNING created_at, updated_at
	`

	err = r.db.QueryRow(ctx, sql,
		c.Name,
		c.Code,
		c.Type,
		c.LogoURL,
		time.Now(),
		c.CertificationID,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update certification %d: %w", c.CertificationID, err)
	}

	return nil
}

func (r *certificationRepo) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: ID must be positive", ErrInvalidInput)
	}

	result, err := r.db.Exec(ctx, `DELETE FROM certifications WHERE certification_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete certification %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
