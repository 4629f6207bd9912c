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

type productRepo struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) validateProduct(p *models.Product) error {
	if p.Name == "" {
		return fmt.Errorf("%w: product name required", ErrInvalidInput)
	}
	if !p.Price.IsPositive() {
		return fmt.Errorf("%w: product price must be positive", ErrInvalidInput)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: product stock cannot be negative", ErrInvalidInput)
	}
	if p.RecyclablePct < 0 || p.RecyclablePct > 100 {
		return fmt.Errorf("%w: recyclable percentage must be between 0 and 100", ErrInvalidInput)
	}
	if p.EcoBadge != "" && p.EcoBadge != "low" && p.EcoBadge != "medium" && p.EcoBadge != "neutral" {
		return fmt.Errorf("%w: eco badge must be low, medium or neutral", ErrInvalidInput)
	}
	if p.BrandID <= 0 {
		return fmt.Errorf("%w: brand ID must be positive", ErrInvalidInput)
	}
	return nil
}

// resolveCertCodes looks up certifications for the given codes inside tx.
// Codes are normalized first; blank entries are skipped. Any code without a
// matching certification fails the whole lookup.
func resolveCertCodes(ctx context.Context, tx pgx.Tx, codes []string) ([]models.Certification, error) {
	normalized := make([]string, 0, len(codes))
	for _, code := range codes {
		if c := NormalizeCode(code); c != "" {
			normalized = append(normalized, c)
		}
	}
	if len(normalized) == 0 {
		return nil, nil
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
		FROM certifications WHERE code = ANY($1::varchar[])
	`

	rows, err := tx.Query(ctx, sql, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve certification codes: %w", err)
	}
	defer rows.Close()

	found := make(map[string]bool)
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
		found[c.Code] = true
		certs = append(certs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	var missing []string
	for _, code := range normalized {
		if !found[code] {
			missing = append(missing, code)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: unknown certification codes %v", ErrInvalidInput, missing)
	}

	return certs, nil
}

func (r *productRepo) Create(ctx context.Context, p *models.Product, certCodes []string) error {
	if err := r.validateProduct(p); err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var brandExists bool
	err = tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM marcas WHERE marca_id = $1)`, p.BrandID).Scan(&brandExists)
	if err != nil {
		return fmt.Errorf("failed to check brand %d: %w", p.BrandID, err)
	}
	if !brandExists {
		return fmt.Errorf("%w: brand %d", ErrNotFound, p.BrandID)
	}

	certs, err := resolveCertCodes(ctx, tx, certCodes)
	if err != nil {
		return err
	}

	sql := `
		INSERT INTO productos (
			marca_id,
			nombre,
			descripcion,
			precio,
			stock,
			sku,
			materiales,
			origen,
			huella_carbono_kg,
			porcentaje_reciclable,
			eco_badge,
			imagen_url,
			activo,
			fecha_creacion
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	RETURNING producto_id
	`

	p.CreatedAt = time.Now()

	err = tx.QueryRow(ctx, sql,
		p.BrandID,
		p.Name,
		p.Description,
		p.Price,
		p.Stock,
		p.Sku,
		p.Materials,
		p.Origin,
		p.CarbonKg,
		p.RecyclablePct,
		p.EcoBadge,
		p.ImageURL,
		p.Active,
		p.CreatedAt,
	).Scan(&p.ProductID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: sku already exists", ErrDuplicate)
		}
		return fmt.Errorf("failed to create product: %w", err)
	}

	for _, c := range certs {
		_, err = tx.Exec(ctx,
			`INSERT INTO producto_certifications (producto_id, certification_id) VALUES ($1, $2)`,
			p.ProductID, c.CertificationID,
		)
		if err != nil {
			return fmt.Errorf("failed to attach certification %s: %w", c.Code, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	p.Certifications = certs
	return nil
}

const productColumns = `
	producto_id,
	marca_id,
	nombre,
	descripcion,
	precio,
	stock,
	sku,
	materiales,
	origen,
	huella_carbono_kg,
	porcentaje_reciclable,
	eco_badge,
	imagen_url,
	activo,
	fecha_creacion
`

func scanProduct(row pgx.Row, p *models.Product) error {
	return row.Scan(
		&p.ProductID,
		&p.BrandID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Stock,
		&p.Sku,
		&p.Materials,
		&p.Origin,
		&p.CarbonKg,
		&p.RecyclablePct,
		&p.EcoBadge,
		&p.ImageURL,
		&p.Active,
		&p.CreatedAt,
	)
}

func (r *productRepo) GetByID(ctx context.Context, id int) (*models.Product, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: ID must be positive", ErrInvalidInput)
	}

	var p models.Product
	err := scanProduct(r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM productos WHERE producto_id = $1`, id), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product by id %d: %w", id, err)
	}

	certs, err := r.certificationsByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Certifications = certs

	return &p, nil
}

func (r *productRepo) certificationsByProduct(ctx context.Context, productID int) ([]models.Certification, error) {
	sql := `
		SELECT
			c.certification_id,
			c.name,
			c.code,
			c.type,
			c.logo_url,
			c.created_at,
			c.updated_at
		FROM certifications c
		JOIN producto_certifications pc ON pc.certification_id = c.certification_id
		WHERE pc.producto_id = $1
		ORDER BY c.code
	`

	rows, err := r.db.Query(ctx, sql, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product certifications: %w", err)
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

func (r *productRepo) GetAll(ctx context.Context) ([]models.Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM productos ORDER BY producto_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	index := make(map[int]int)
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan products: %w", err)
		}
		index[p.ProductID] = len(products)
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	if len(products) == 0 {
		return products, nil
	}

	certSQL := `
		SELECT
			pc.producto_id,
			c.certification_id,
			c.name,
			c.code,
			c.type,
			c.logo_url,
			c.created_at,
			c.updated_at
		FROM producto_certifications pc
		JOIN certifications c ON c.certification_id = pc.certification_id
		ORDER BY c.code
	`

	certRows, err := r.db.Query(ctx, certSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to get product certifications: %w", err)
	}
	defer certRows.Close()

	for certRows.Next() {
		var productID int
		var c models.Certification
		err := certRows.Scan(
			&productID,
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
		if i, ok := index[productID]; ok {
			products[i].Certifications = append(products[i].Certifications, c)
		}
	}
	if err := certRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return products, nil
}

// Update replaces the mutable fields and the certification associations. The
// creation timestamp is immutable.
func (r *productRepo) Update(ctx context.Context, p *models.Product, certCodes []string) error {
	if p.ProductID <= 0 {
		return fmt.Errorf("%w: ID must be positive", ErrInvalidInput)
	}
	if err := r.validateProduct(p); err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var brandExists bool
	err = tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM marcas WHERE marca_id = $1)`, p.BrandID).Scan(&brandExists)
	if err != nil {
		return fmt.Errorf("failed to check brand %d: %w", p.BrandID, err)
	}
	if !brandExists {
		return fmt.Errorf("%w: brand %d", ErrNotFound, p.BrandID)
	}

	certs, err := resolveCertCodes(ctx, tx, certCodes)
	if err != nil {
		return err
	}

	sql := `
		UPDATE productos
		SET
			marca_id = $1,
			nombre = $2,
			descripcion = $3,
			precio = $4,
			stock = $5,
			sku = $6,
			materiales = $7,
			origen = $8,
			huella_carbono_kg = $9,
			porcentaje_reciclable = $10,
			eco_badge = $11,
			imagen_url = $12,
			activo = $13
		WHERE producto_id = $14
		RETURNING fecha_creacion
	`

	err = tx.QueryRow(ctx, sql,
		p.BrandID,
		p.Name,
		p.Description,
		p.Price,
		p.Stock,
		p.Sku,
		p.Materials,
		p.Origin,
		p.CarbonKg,
		p.RecyclablePct,
		p.EcoBadge,
		p.ImageURL,
		p.Active,
		p.ProductID,
	).Scan(&p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: sku already exists", ErrDuplicate)
		}
		return fmt.Errorf("failed to update product %d: %w", p.ProductID, err)
	}

	_, err = tx.Exec(ctx, `DELETE FROM producto_certifications WHERE producto_id = $1`, p.ProductID)
	if err != nil {
		return fmt.Errorf("failed to detach certifications: %w", err)
	}

	for _, c := range certs {
		_, err = tx.Exec(ctx,
			`INSERT INTO producto_certifications (producto_id, certification_id) VALUES ($1, $2)`,
			p.ProductID, c.CertificationID,
		)
		if err != nil {
			return fmt.Errorf("failed to attach certification %s: %w", c.Code, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	p.Certifications = certs
	return nil
}

// Delete detaches certification associations before removing the product row
// so the join table never keeps orphaned rows.
func (r *productRepo) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: ID must be positive", ErrInvalidInput)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `DELETE FROM producto_certifications WHERE producto_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to detach certifications: %w", err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM productos WHERE producto_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
