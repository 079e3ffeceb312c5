package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/bodega-api/internal/domain/entity"
	"github.com/tu-usuario/bodega-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de persistencia para órdenes. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// GetByID obtiene una orden por ID. nil si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	query := `
		SELECT id, product_id, amount, created_at, fulfilled_at
		FROM orders WHERE id = $1`
	var o entity.Order
	err := r.q.QueryRow(ctx, query, id).Scan(&o.ID, &o.ProductID, &o.Amount, &o.CreatedAt, &o.FulfilledAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// FindOpenForUpdate busca la orden abierta del producto con monto exacto y
// creada estrictamente antes de before, y bloquea la fila (SELECT FOR UPDATE)
// para que dos transacciones concurrentes no cumplan la misma orden.
// Desempate determinista: la más antigua primero, luego el menor ID.
func (r *OrderRepo) FindOpenForUpdate(ctx context.Context, productID, amount int64, before time.Time) (*entity.Order, error) {
	query := `
		SELECT id, product_id, amount, created_at, fulfilled_at
		FROM orders
		WHERE product_id = $1 AND amount = $2 AND created_at < $3 AND fulfilled_at IS NULL
		ORDER BY created_at ASC, id ASC
		LIMIT 1
		FOR UPDATE`
	var o entity.Order
	err := r.q.QueryRow(ctx, query, productID, amount, before).Scan(
		&o.ID, &o.ProductID, &o.Amount, &o.CreatedAt, &o.FulfilledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find open order: %w", err)
	}
	return &o, nil
}

// MarkFulfilled fija fulfilled_at con el reloj de la BD. El predicado
// fulfilled_at IS NULL garantiza que la transición abierta -> cumplida
// ocurra a lo sumo una vez; devuelve las filas afectadas.
func (r *OrderRepo) MarkFulfilled(ctx context.Context, orderID int64) (int64, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE orders SET fulfilled_at = now() WHERE id = $1 AND fulfilled_at IS NULL`,
		orderID,
	)
	if err != nil {
		return 0, fmt.Errorf("mark order fulfilled: %w", err)
	}
	return cmd.RowsAffected(), nil
}
