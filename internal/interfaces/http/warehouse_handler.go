package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/bodega-api/internal/application/dto"
	"github.com/tu-usuario/bodega-api/internal/application/fulfillment"
	"github.com/tu-usuario/bodega-api/internal/application/usecase"
	"github.com/tu-usuario/bodega-api/internal/domain"
)

// WarehouseHandler maneja las peticiones HTTP de bodegas y cumplimiento de órdenes.
type WarehouseHandler struct {
	fulfillUC   *fulfillment.FulfillmentUseCase
	warehouseUC *usecase.WarehouseUseCase
	movementUC  *usecase.MovementUseCase
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(
	fulfillUC *fulfillment.FulfillmentUseCase,
	warehouseUC *usecase.WarehouseUseCase,
	movementUC *usecase.MovementUseCase,
) *WarehouseHandler {
	return &WarehouseHandler{fulfillUC: fulfillUC, warehouseUC: warehouseUC, movementUC: movementUC}
}

// parseCreatedAt acepta RFC 3339 o fecha sola (2006-01-02).
func parseCreatedAt(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// AddProductToWarehouse cumple una orden de reposición y registra el movimiento.
// POST /api/warehouse/add-product?productId=&warehouseId=&amount=&createdAt=
func (h *WarehouseHandler) AddProductToWarehouse(c *fiber.Ctx) error {
	var in dto.AddProductToWarehouseRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	if in.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "productId debe ser positivo"})
	}
	if in.WarehouseID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouseId debe ser positivo"})
	}
	if in.Amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "amount debe ser mayor que 0"})
	}
	createdAt, err := parseCreatedAt(in.CreatedAt)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "createdAt inválido (RFC 3339)"})
	}
	if createdAt.After(time.Now()) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "createdAt no puede estar en el futuro"})
	}

	movementID, err := h.fulfillUC.FulfillAndRecord(c.Context(), fulfillment.FulfillmentInputDTO{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Amount:      in.Amount,
		CreatedAt:   createdAt,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.AddProductToWarehouseResponse{IDProductWarehouse: movementID})
}

// GetByID obtiene una bodega. GET /api/warehouses/:id
func (h *WarehouseHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	w, err := h.warehouseUC.GetByID(c.Context(), int64(id))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.WarehouseDTO{ID: w.ID, Name: w.Name, Address: w.Address})
}

// List lista bodegas. GET /api/warehouses
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.warehouseUC.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.WarehouseDTO, 0, len(list))
	for _, w := range list {
		out = append(out, dto.WarehouseDTO{ID: w.ID, Name: w.Name, Address: w.Address})
	}
	return c.JSON(fiber.Map{"total": len(out), "warehouses": out})
}

// ListMovements lista los movimientos de una bodega. GET /api/warehouses/:id/movements
func (h *WarehouseHandler) ListMovements(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.movementUC.ListByWarehouse(c.Context(), int64(id), page.Limit, page.Offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.StockMovementDTO, 0, len(list))
	for _, m := range list {
		out = append(out, dto.StockMovementDTO{
			ID:          m.ID,
			WarehouseID: m.WarehouseID,
			ProductID:   m.ProductID,
			OrderID:     m.OrderID,
			Amount:      m.Amount,
			Price:       m.Price.StringFixed(2),
			CreatedAt:   m.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

// mapDomainError traduce errores de dominio a códigos HTTP.
func mapDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: domain.ErrProductNotFound.Error()})
	case errors.Is(err, domain.ErrWarehouseNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "WAREHOUSE_NOT_FOUND", Message: domain.ErrWarehouseNotFound.Error()})
	case errors.Is(err, domain.ErrNoValidOrder):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_VALID_ORDER", Message: domain.ErrNoValidOrder.Error()})
	case errors.Is(err, domain.ErrOrderAlreadyFulfilled):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ORDER_ALREADY_FULFILLED", Message: domain.ErrOrderAlreadyFulfilled.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
