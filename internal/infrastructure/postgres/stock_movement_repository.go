package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/bodega-api/internal/domain"
	"github.com/tu-usuario/bodega-api/internal/domain/entity"
	"github.com/tu-usuario/bodega-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del puerto StockMovementRepository sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta el movimiento con created_at del reloj de la BD y devuelve el
// ID generado. El constraint único sobre order_id cierra la carrera de doble
// cumplimiento: su violación se traduce a domain.ErrOrderAlreadyFulfilled.
func (r *StockMovementRepo) Create(ctx context.Context, movement *entity.StockMovement) (int64, error) {
	query := `
		INSERT INTO stock_movements (warehouse_id, product_id, order_id, amount, price, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING id`
	var id int64
	err := r.q.QueryRow(ctx, query,
		movement.WarehouseID, movement.ProductID, movement.OrderID,
		movement.Amount, movement.Price,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrOrderAlreadyFulfilled
		}
		return 0, fmt.Errorf("insert stock movement: %w", err)
	}
	return id, nil
}

// ExistsForOrder verifica si la orden ya tiene un movimiento asociado.
func (r *StockMovementRepo) ExistsForOrder(ctx context.Context, orderID int64) (bool, error) {
	var one int
	err := r.q.QueryRow(ctx, `SELECT 1 FROM stock_movements WHERE order_id = $1`, orderID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("exists movement for order: %w", err)
	}
	return true, nil
}

// GetByID obtiene un movimiento por ID. nil si no existe.
func (r *StockMovementRepo) GetByID(ctx context.Context, id int64) (*entity.StockMovement, error) {
	query := `
		SELECT id, warehouse_id, product_id, order_id, amount, price, created_at
		FROM stock_movements WHERE id = $1`
	var m entity.StockMovement
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.WarehouseID, &m.ProductID, &m.OrderID, &m.Amount, &m.Price, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return &m, nil
}

// ListByWarehouse lista los movimientos de una bodega, del más reciente al más antiguo.
func (r *StockMovementRepo) ListByWarehouse(ctx context.Context, warehouseID int64, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, warehouse_id, product_id, order_id, amount, price, created_at
		FROM stock_movements WHERE warehouse_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.WarehouseID, &m.ProductID, &m.OrderID, &m.Amount, &m.Price, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
