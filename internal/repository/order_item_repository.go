package repository

import (
	"context"
	"errors"
	"fmt"

	"ecoshop/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type orderItemRepo struct {
	db *pgxpool.Pool
}

func NewOrderItemRepository(db *pgxpool.Pool) OrderItemRepository {
	return &orderItemRepo{db: db}
}

// SumItems computes the order total as the exact-decimal sum of
// quantity * unit price over the given items.
func SumItems(items []models.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// lockOrder takes a row lock on the parent order so concurrent item mutations
// on the same order serialize instead of racing on the stored total.
func lockOrder(ctx context.Context, tx pgx.Tx, orderID int) error {
	var id int
	err := tx.QueryRow(ctx, `SELECT pedido_id FROM pedidos WHERE pedido_id = $1 FOR UPDATE`, orderID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return fmt.Errorf("failed to lock order %d: %w", orderID, err)
	}
	return nil
}

func itemsByOrder(ctx context.Context, q interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}, orderID int) ([]models.OrderItem, error) {
	sql := `
		SELECT
			i.pedido_item_id,
			i.pedido_id,
			i.producto_id,
			p.nombre,
			p.imagen_url,
			i.cantidad,
			i.precio_unitario
		FROM pedido_items i
		JOIN productos p ON p.producto_id = i.producto_id
		WHERE i.pedido_id = $1
		ORDER BY i.pedido_item_id
	`

	rows, err := q.Query(ctx, sql, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get items for order %d: %w", orderID, err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		err := rows.Scan(
			&item.OrderItemID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.ImageURL,
			&item.Quantity,
			&item.UnitPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order items: %w", err)
		}
		item.Subtotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return items, nil
}

// recalcOrderTotal re-derives the parent order's total from its current item
// set and writes it back, inside the caller's transaction. Idempotent.
func recalcOrderTotal(ctx context.Context, tx pgx.Tx, orderID int) error {
	items, err := itemsByOrder(ctx, tx, orderID)
	if err != nil {
		return err
	}

	total := SumItems(items)

	result, err := tx.Exec(ctx, `UPDATE pedidos SET total = $1 WHERE pedido_id = $2`, total, orderID)
	if err != nil {
		return fmt.Errorf("failed to write order total %d: %w", orderID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
	}

	return nil
}

// Add inserts a line item with the product's current price frozen as the unit
// price, then recalculates the parent order's total in the same transaction.
func (r *orderItemRepo) Add(ctx context.Context, orderID, productID, quantity int) (*models.OrderItem, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockOrder(ctx, tx, orderID); err != nil {
		return nil, err
	}

	item := models.OrderItem{
		OrderID:  orderID,
		Quantity: quantity,
	}

	err = tx.QueryRow(ctx,
		`SELECT producto_id, nombre, imagen_url, precio FROM productos WHERE producto_id = $1`,
		productID,
	).Scan(&item.ProductID, &item.ProductName, &item.ImageURL, &item.UnitPrice)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, productID)
		}
		return nil, fmt.Errorf("failed to get product %d: %w", productID, err)
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO pedido_items (pedido_id, producto_id, cantidad, precio_unitario)
		 VALUES ($1, $2, $3, $4)
		 RETURNING pedido_item_id`,
		orderID, productID, quantity, item.UnitPrice,
	).Scan(&item.OrderItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to create order item: %w", err)
	}

	if err := recalcOrderTotal(ctx, tx, orderID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	item.Subtotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	return &item, nil
}

// UpdateQuantity changes an item's quantity. The frozen unit price is never
// touched. The parent total is recalculated in the same transaction.
func (r *orderItemRepo) UpdateQuantity(ctx context.Context, itemID, quantity int) (*models.OrderItem, error) {
	if itemID <= 0 {
		return nil, fmt.Errorf("%w: item ID must be positive", ErrInvalidInput)
	}
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var orderID int
	err = tx.QueryRow(ctx, `SELECT pedido_id FROM pedido_items WHERE pedido_item_id = $1`, itemID).Scan(&orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: order item %d", ErrNotFound, itemID)
		}
		return nil, fmt.Errorf("failed to get order item %d: %w", itemID, err)
	}

	if err := lockOrder(ctx, tx, orderID); err != nil {
		return nil, err
	}

	item := models.OrderItem{
		OrderItemID: itemID,
		OrderID:     orderID,
		Quantity:    quantity,
	}

	err = tx.QueryRow(ctx,
		`UPDATE pedido_items i
		 SET cantidad = $1
		 FROM productos p
		 WHERE i.pedido_item_id = $2 AND p.producto_id = i.producto_id
		 RETURNING i.producto_id, p.nombre, p.imagen_url, i.precio_unitario`,
		quantity, itemID,
	).Scan(&item.ProductID, &item.ProductName, &item.ImageURL, &item.UnitPrice)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: order item %d", ErrNotFound, itemID)
		}
		return nil, fmt.Errorf("failed to update order item %d: %w", itemID, err)
	}

	if err := recalcOrderTotal(ctx, tx, orderID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	item.Subtotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	return &item, nil
}

// Remove deletes an item and recalculates the parent total in the same
// transaction. Removing the last item drives the total to exactly zero.
func (r *orderItemRepo) Remove(ctx context.Context, itemID int) error {
	if itemID <= 0 {
		return fmt.Errorf("%w: item ID must be positive", ErrInvalidInput)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var orderID int
	err = tx.QueryRow(ctx, `SELECT pedido_id FROM pedido_items WHERE pedido_item_id = $1`, itemID).Scan(&orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: order item %d", ErrNotFound, itemID)
		}
		return fmt.Errorf("failed to get order item %d: %w", itemID, err)
	}

	if err := lockOrder(ctx, tx, orderID); err != nil {
		return err
	}

	result, err := tx.Exec(ctx, `DELETE FROM pedido_items WHERE pedido_item_id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete order item %d: %w", itemID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: order item %d", ErrNotFound, itemID)
	}

	if err := recalcOrderTotal(ctx, tx, orderID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *orderItemRepo) GetByOrderID(ctx context.Context, orderID int) ([]models.OrderItem, error) {
	if orderID <= 0 {
		return nil, fmt.Errorf("%w: order ID must be positive", ErrInvalidInput)
	}

	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM pedidos WHERE pedido_id = $1)`, orderID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check order %d: %w", orderID, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
	}

	return itemsByOrder(ctx, r.db, orderID)
}
