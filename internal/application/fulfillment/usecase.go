package fulfillment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/bodega-api/internal/domain"
	"github.com/tu-usuario/bodega-api/internal/domain/entity"
	"github.com/tu-usuario/bodega-api/internal/domain/repository"
	"github.com/tu-usuario/bodega-api/pkg/logger"
)

// DefaultTxTimeout límite por defecto para la transacción completa de
// cumplimiento cuando la configuración no define otro.
const DefaultTxTimeout = 5 * time.Second

// FulfillmentUseCase cumple órdenes de reposición de forma transaccional:
// valida producto y bodega, empareja la orden abierta (con bloqueo de fila
// SELECT FOR UPDATE), marca la orden como cumplida y registra el movimiento
// de stock al precio vigente. Todo dentro de una transacción con
// Commit/Rollback.
type FulfillmentUseCase struct {
	txRunner  TxRunner
	txTimeout time.Duration
	log       *logger.Logger
}

// NewFulfillmentUseCase construye el caso de uso. timeout <= 0 usa DefaultTxTimeout.
func NewFulfillmentUseCase(txRunner TxRunner, timeout time.Duration, log *logger.Logger) *FulfillmentUseCase {
	if timeout <= 0 {
		timeout = DefaultTxTimeout
	}
	return &FulfillmentUseCase{txRunner: txRunner, txTimeout: timeout, log: log}
}

// FulfillmentInputDTO entrada para cumplir una orden de reposición.
type FulfillmentInputDTO struct {
	ProductID   int64
	WarehouseID int64
	Amount      int64
	CreatedAt   time.Time
}

// FulfillAndRecord ejecuta el flujo completo y devuelve el ID del movimiento
// de stock generado. Errores posibles: ErrInvalidInput (antes de tocar la BD),
// ErrProductNotFound, ErrWarehouseNotFound, ErrNoValidOrder,
// ErrOrderAlreadyFulfilled y StoreError para fallos del almacenamiento.
// Cualquier fallo deshace la transacción completa; nunca queda estado parcial.
func (uc *FulfillmentUseCase) FulfillAndRecord(ctx context.Context, input FulfillmentInputDTO) (int64, error) {
	// Validar entrada antes de cualquier acceso al almacenamiento
	if input.ProductID <= 0 || input.WarehouseID <= 0 || input.Amount <= 0 {
		return 0, domain.ErrInvalidInput
	}
	if input.CreatedAt.IsZero() || input.CreatedAt.After(time.Now()) {
		return 0, domain.ErrInvalidInput
	}

	txID := uuid.New().String()
	log := uc.log.With().
		Str("tx_id", txID).
		Int64("product_id", input.ProductID).
		Int64("warehouse_id", input.WarehouseID).
		Int64("amount", input.Amount).
		Logger()

	ctx, cancel := context.WithTimeout(ctx, uc.txTimeout)
	defer cancel()

	var movementID int64

	// Inicia transacción; Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace)
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		warehouseRepo repository.WarehouseRepository,
		orderRepo repository.OrderRepository,
		movRepo repository.StockMovementRepository,
	) error {
		// 1. Existencia de producto y bodega
		ok, err := productRepo.Exists(ctx, input.ProductID)
		if err != nil {
			return domain.NewStoreError("check product", err)
		}
		if !ok {
			return domain.ErrProductNotFound
		}
		ok, err = warehouseRepo.Exists(ctx, input.WarehouseID)
		if err != nil {
			return domain.NewStoreError("check warehouse", err)
		}
		if !ok {
			return domain.ErrWarehouseNotFound
		}

		// 2. Orden abierta con monto exacto, creada antes de CreatedAt.
		// La fila queda bloqueada (FOR UPDATE) hasta el Commit/Rollback.
		order, err := orderRepo.FindOpenForUpdate(ctx, input.ProductID, input.Amount, input.CreatedAt)
		if err != nil {
			return domain.NewStoreError("find order", err)
		}
		if order == nil {
			return domain.ErrNoValidOrder
		}

		// 3. Guardia contra doble cumplimiento (además del constraint único)
		fulfilled, err := movRepo.ExistsForOrder(ctx, order.ID)
		if err != nil {
			return domain.NewStoreError("check movement", err)
		}
		if fulfilled {
			return domain.ErrOrderAlreadyFulfilled
		}

		// 4. Marcar la orden como cumplida (reloj de la BD)
		affected, err := orderRepo.MarkFulfilled(ctx, order.ID)
		if err != nil {
			return domain.NewStoreError("mark fulfilled", err)
		}
		if affected == 0 {
			return domain.ErrOrderAlreadyFulfilled
		}

		// 5. Precio total al precio unitario vigente
		unitPrice, err := productRepo.GetPrice(ctx, input.ProductID)
		if err != nil {
			return domain.NewStoreError("get price", err)
		}
		total := unitPrice.Mul(decimal.NewFromInt(input.Amount))

		// 6. Insertar el movimiento y capturar su ID generado
		mov := &entity.StockMovement{
			WarehouseID: input.WarehouseID,
			ProductID:   input.ProductID,
			OrderID:     order.ID,
			Amount:      input.Amount,
			Price:       total,
		}
		id, err := movRepo.Create(ctx, mov)
		if err != nil {
			if errors.Is(err, domain.ErrOrderAlreadyFulfilled) {
				return domain.ErrOrderAlreadyFulfilled
			}
			return domain.NewStoreError("insert movement", err)
		}
		movementID = id

		log.Info().
			Int64("order_id", order.ID).
			Int64("movement_id", id).
			Str("total_price", total.StringFixed(2)).
			Msg("orden cumplida")
		return nil
	})
	if err != nil {
		log.Debug().Err(err).Msg("cumplimiento rechazado")
		return 0, err
	}
	return movementID, nil
}
