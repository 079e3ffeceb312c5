package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/bodega-api/internal/application/fulfillment"
	"github.com/tu-usuario/bodega-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	FulfillmentUC *fulfillment.FulfillmentUseCase
	WarehouseUC   *usecase.WarehouseUseCase
	ProductUC     *usecase.ProductUseCase
	MovementUC    *usecase.MovementUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	warehouseHandler := NewWarehouseHandler(deps.FulfillmentUC, deps.WarehouseUC, deps.MovementUC)
	productHandler := NewProductHandler(deps.ProductUC)

	// Cumplimiento de órdenes (contrato original del servicio)
	warehouse := api.Group("/warehouse")
	warehouse.Post("/add-product", warehouseHandler.AddProductToWarehouse)

	// Warehouses (lectura)
	warehouses := api.Group("/warehouses")
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Get("/:id/movements", warehouseHandler.ListMovements)

	// Products (lectura)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
}
