package usecase

import (
	"context"

	"github.com/tu-usuario/bodega-api/internal/domain"
	"github.com/tu-usuario/bodega-api/internal/domain/entity"
	"github.com/tu-usuario/bodega-api/internal/domain/repository"
)

// MovementUseCase consultas de lectura sobre movimientos de stock.
type MovementUseCase struct {
	movRepo       repository.StockMovementRepository
	warehouseRepo repository.WarehouseRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(movRepo repository.StockMovementRepository, warehouseRepo repository.WarehouseRepository) *MovementUseCase {
	return &MovementUseCase{movRepo: movRepo, warehouseRepo: warehouseRepo}
}

// ListByWarehouse lista los movimientos de una bodega; valida que exista.
func (uc *MovementUseCase) ListByWarehouse(ctx context.Context, warehouseID int64, limit, offset int) ([]*entity.StockMovement, error) {
	if warehouseID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	ok, err := uc.warehouseRepo.Exists(ctx, warehouseID)
	if err != nil {
		return nil, domain.NewStoreError("check warehouse", err)
	}
	if !ok {
		return nil, domain.ErrWarehouseNotFound
	}
	list, err := uc.movRepo.ListByWarehouse(ctx, warehouseID, limit, offset)
	if err != nil {
		return nil, domain.NewStoreError("list movements", err)
	}
	return list, nil
}
