package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecoshop/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type orderRepo struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &orderRepo{db: db}
}

func validStatus(status string) bool {
	switch status {
	case models.OrderStatusPendingPayment,
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
		models.OrderStatusCancelled:
		return true
	}
	return false
}

// Create persists an order header. The total always starts at zero; it is
// owned by the item recalculation and never accepted from the caller.
func (r *orderRepo) Create(ctx context.Context, o *models.Order) error {
	if o.UserID <= 0 {
		return fmt.Errorf("%w: user ID must be positive", ErrInvalidInput)
	}
	if o.ShippingAddr == "" {
		return fmt.Errorf("%w: shipping address required", ErrInvalidInput)
	}
	if o.Status == "" {
		o.Status = models.OrderStatusPendingPayment
	}
	if !validStatus(o.Status) {
		return fmt.Errorf("%w: invalid status '%s'", ErrInvalidInput, o.Status)
	}

	var email string
	err := r.db.QueryRow(ctx, `SELECT email FROM usuarios WHERE usuario_id = $1`, o.UserID).Scan(&email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: user %d", ErrNotFound, o.UserID)
		}
		return fmt.Errorf("failed to get user %d: %w", o.UserID, err)
	}

	sql := `
		INSERT INTO pedidos (
			usuario_id,
			fecha_pedido,
			estado,
			total,
			direccion_envio,
			metodo_pago,
			id_transaccion_pago,
			huella_carbono_total_kg
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING pedido_id
	`

	o.CreatedAt = time.Now()
	o.Total = decimal.Zero

	err = r.db.QueryRow(ctx, sql,
		o.UserID,
		o.CreatedAt,
		o.Status,
		o.Total,
		o.ShippingAddr,
		o.PaymentMethod,
		o.PaymentTxID,
		o.TotalCarbonKg,
	).Scan(&o.OrderID)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	o.UserEmail = email
	return nil
}

const orderColumns = `
	p.pedido_id,
	p.usuario_id,
	u.email,
	p.fecha_pedido,
	p.estado,
	p.total,
	p.direccion_envio,
	p.metodo_pago,
	p.id_transaccion_pago,
	p.huella_carbono_total_kg
`

func scanOrder(row pgx.Row, o *models.Order) error {
	return row.Scan(
		&o.OrderID,
		&o.UserID,
		&o.UserEmail,
		&o.CreatedAt,
		&o.Status,
		&o.Total,
		&o.ShippingAddr,
		&o.PaymentMethod,
		&o.PaymentTxID,
		&o.TotalCarbonKg,
	)
}

func (r *orderRepo) GetByID(ctx context.Context, id int) (*models.Order, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: order ID must be positive", ErrInvalidInput)
	}

	sql := `SELECT ` + orderColumns + `
		FROM pedidos p
		JOIN usuarios u ON u.usuario_id = p.usuario_id
		WHERE p.pedido_id = $1
	`

	var o models.Order
	if err := scanOrder(r.db.QueryRow(ctx, sql, id), &o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order %d: %w", id, err)
	}

	return &o, nil
}

func (r *orderRepo) GetAll(ctx context.Context) ([]models.Order, error) {
	sql := `SELECT ` + orderColumns + `
		FROM pedidos p
		JOIN usuarios u ON u.usuario_id = p.usuario_id
		ORDER BY p.pedido_id
	`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, fmt.Errorf("failed to scan orders: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return orders, nil
}

func (r *orderRepo) GetByUserID(ctx context.Context, userID int) ([]models.Order, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user ID must be positive", ErrInvalidInput)
	}

	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM usuarios WHERE usuario_id = $1)`, userID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check user %d: %w", userID, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}

	sql := `SELECT ` + orderColumns + `
		FROM pedidos p
		JOIN usuarios u ON u.usuario_id = p.usuario_id
		WHERE p.usuario_id = $1
		ORDER BY p.pedido_id
	`

	rows, err := r.db.Query(ctx, sql, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders by user %d: %w", userID, err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, fmt.Errorf("failed to scan orders: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return orders, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id int, status string) (*models.Order, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: order ID must be positive", ErrInvalidInput)
	}
	if !validStatus(status) {
		return nil, fmt.Errorf("%w: invalid status '%s'", ErrInvalidInput, status)
	}

	// single statement so the returned row is the one the update produced
	sql := `
		UPDATE pedidos p
		SET estado = $1
		FROM usuarios u
		WHERE p.pedido_id = $2 AND u.usuario_id = p.usuario_id
		RETURNING ` + orderColumns

	var o models.Order
	if err := scanOrder(r.db.QueryRow(ctx, sql, status, id), &o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update order status %d: %w", id, err)
	}

	return &o, nil
}

func (r *orderRepo) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: order ID must be positive", ErrInvalidInput)
	}

	// items go with the order (ON DELETE CASCADE)
	result, err := r.db.Exec(ctx, `DELETE FROM pedidos WHERE pedido_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete order %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
