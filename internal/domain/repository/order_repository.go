package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/bodega-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order (DIP).
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
	// FindOpenForUpdate busca la orden abierta del producto con el monto exacto
	// y creada estrictamente antes de before, bloqueando la fila (FOR UPDATE).
	// Desempate determinista: created_at ASC, id ASC. nil si no hay candidata.
	FindOpenForUpdate(ctx context.Context, productID, amount int64, before time.Time) (*entity.Order, error)
	// MarkFulfilled fija fulfilled_at con el reloj de la base de datos.
	// Solo aplica sobre órdenes abiertas; devuelve cuántas filas tocó.
	MarkFulfilled(ctx context.Context, orderID int64) (int64, error)
}
