package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMovement registra la entrada de producto a una bodega al cumplir una
// orden. Price = precio unitario vigente × Amount, calculado al insertar.
// Inmutable una vez creado; una orden tiene a lo sumo un movimiento
// (constraint único sobre order_id).
type StockMovement struct {
	ID          int64
	WarehouseID int64
	ProductID   int64
	OrderID     int64
	Amount      int64
	Price       decimal.Decimal
	CreatedAt   time.Time
}
