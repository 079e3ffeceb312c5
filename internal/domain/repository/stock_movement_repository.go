package repository

import (
	"context"

	"github.com/tu-usuario/bodega-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para movimientos de stock (DIP).
type StockMovementRepository interface {
	// Create inserta el movimiento con created_at del reloj de la BD y devuelve
	// el ID generado. La violación del constraint único sobre order_id se
	// traduce a domain.ErrOrderAlreadyFulfilled.
	Create(ctx context.Context, movement *entity.StockMovement) (int64, error)
	ExistsForOrder(ctx context.Context, orderID int64) (bool, error)
	GetByID(ctx context.Context, id int64) (*entity.StockMovement, error)
	ListByWarehouse(ctx context.Context, warehouseID int64, limit, offset int) ([]*entity.StockMovement, error)
}
