package dto

import "time"

// ProductDTO representación HTTP de un producto del catálogo.
type ProductDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"` // decimal con dos posiciones
}

// WarehouseDTO representación HTTP de una bodega.
type WarehouseDTO struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// StockMovementDTO representación HTTP de un movimiento de stock.
type StockMovementDTO struct {
	ID          int64     `json:"id"`
	WarehouseID int64     `json:"warehouse_id"`
	ProductID   int64     `json:"product_id"`
	OrderID     int64     `json:"order_id"`
	Amount      int64     `json:"amount"`
	Price       string    `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}
