package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/bodega-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Solo lectura: los productos se administran fuera de este servicio.
type ProductRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetPrice lee el precio unitario vigente dentro de la misma transacción.
	GetPrice(ctx context.Context, id int64) (decimal.Decimal, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
}
