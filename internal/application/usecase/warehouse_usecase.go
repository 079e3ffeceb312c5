package usecase

import (
	"context"

	"github.com/tu-usuario/bodega-api/internal/domain"
	"github.com/tu-usuario/bodega-api/internal/domain/entity"
	"github.com/tu-usuario/bodega-api/internal/domain/repository"
)

// WarehouseUseCase operaciones de lectura sobre bodegas.
type WarehouseUseCase struct {
	repo repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo}
}

// GetByID obtiene una bodega; ErrWarehouseNotFound si no existe.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id int64) (*entity.Warehouse, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	w, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewStoreError("get warehouse", err)
	}
	if w == nil {
		return nil, domain.ErrWarehouseNotFound
	}
	return w, nil
}

// List lista bodegas con paginación.
func (uc *WarehouseUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, domain.NewStoreError("list warehouses", err)
	}
	return list, nil
}
