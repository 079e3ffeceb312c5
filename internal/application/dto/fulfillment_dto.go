package dto

// AddProductToWarehouseRequest parámetros de POST /api/warehouse/add-product.
// Llegan como query params, igual que en el contrato original del servicio.
type AddProductToWarehouseRequest struct {
	ProductID   int64  `query:"productId"`
	WarehouseID int64  `query:"warehouseId"`
	Amount      int64  `query:"amount"`
	CreatedAt   string `query:"createdAt"` // RFC 3339
}

// AddProductToWarehouseResponse respuesta con el ID del movimiento creado.
type AddProductToWarehouseResponse struct {
	IDProductWarehouse int64 `json:"id_product_warehouse"`
}
