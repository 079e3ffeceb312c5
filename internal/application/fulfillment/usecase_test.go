package fulfillment_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/bodega-api/internal/application/fulfillment"
	"github.com/tu-usuario/bodega-api/internal/domain"
	"github.com/tu-usuario/bodega-api/internal/domain/entity"
	"github.com/tu-usuario/bodega-api/internal/domain/repository"
	"github.com/tu-usuario/bodega-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake de almacenamiento en memoria con semántica transaccional real:
// Run serializa con un mutex (equivalente al bloqueo de fila FOR UPDATE),
// toma un snapshot al entrar y lo restaura si fn falla (Rollback).
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu         sync.Mutex
	products   map[int64]entity.Product
	warehouses map[int64]entity.Warehouse
	orders     map[int64]entity.Order
	movements  map[int64]entity.StockMovement
	nextMovID  int64

	failCreate error // inyecta un fallo en el insert del movimiento
}

var _ fulfillment.TxRunner = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		products:   map[int64]entity.Product{},
		warehouses: map[int64]entity.Warehouse{},
		orders:     map[int64]entity.Order{},
		movements:  map[int64]entity.StockMovement{},
		nextMovID:  1,
	}
}

func (s *memStore) snapshot() (map[int64]entity.Order, map[int64]entity.StockMovement, int64) {
	orders := make(map[int64]entity.Order, len(s.orders))
	for id, o := range s.orders {
		if o.FulfilledAt != nil {
			t := *o.FulfilledAt
			o.FulfilledAt = &t
		}
		orders[id] = o
	}
	movs := make(map[int64]entity.StockMovement, len(s.movements))
	for id, m := range s.movements {
		movs[id] = m
	}
	return orders, movs, s.nextMovID
}

// Run implementa fulfillment.TxRunner sobre el fake.
func (s *memStore) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	orderRepo repository.OrderRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, movs, nextID := s.snapshot()
	err := fn(&productView{s}, &warehouseView{s}, &orderView{s}, &movementView{s})
	if err != nil {
		// Rollback: restaurar el estado previo a la transacción
		s.orders, s.movements, s.nextMovID = orders, movs, nextID
		return err
	}
	return nil
}

// ── Vistas por puerto sobre el mismo store ────────────────────────────────────

type productView struct{ store *memStore }

var _ repository.ProductRepository = (*productView)(nil)

func (r *productView) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := r.store.products[id]
	return ok, nil
}

func (r *productView) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	if p, ok := r.store.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *productView) GetPrice(ctx context.Context, id int64) (decimal.Decimal, error) {
	p, ok := r.store.products[id]
	if !ok {
		return decimal.Zero, errors.New("producto inexistente")
	}
	return p.Price, nil
}

func (r *productView) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

type warehouseView struct{ store *memStore }

var _ repository.WarehouseRepository = (*warehouseView)(nil)

func (r *warehouseView) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := r.store.warehouses[id]
	return ok, nil
}

func (r *warehouseView) GetByID(ctx context.Context, id int64) (*entity.Warehouse, error) {
	if w, ok := r.store.warehouses[id]; ok {
		return &w, nil
	}
	return nil, nil
}

func (r *warehouseView) List(ctx context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	return nil, nil
}

type orderView struct{ store *memStore }

var _ repository.OrderRepository = (*orderView)(nil)

func (r *orderView) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	if o, ok := r.store.orders[id]; ok {
		return &o, nil
	}
	return nil, nil
}

func (r *orderView) FindOpenForUpdate(ctx context.Context, productID, amount int64, before time.Time) (*entity.Order, error) {
	var best *entity.Order
	for id := range r.store.orders {
		o := r.store.orders[id]
		if o.ProductID != productID || o.Amount != amount || !o.CreatedAt.Before(before) || o.FulfilledAt != nil {
			continue
		}
		cand := o
		if best == nil ||
			cand.CreatedAt.Before(best.CreatedAt) ||
			(cand.CreatedAt.Equal(best.CreatedAt) && cand.ID < best.ID) {
			best = &cand
		}
	}
	return best, nil
}

func (r *orderView) MarkFulfilled(ctx context.Context, orderID int64) (int64, error) {
	o, ok := r.store.orders[orderID]
	if !ok || o.FulfilledAt != nil {
		return 0, nil
	}
	now := time.Now()
	o.FulfilledAt = &now
	r.store.orders[orderID] = o
	return 1, nil
}

type movementView struct{ store *memStore }

var _ repository.StockMovementRepository = (*movementView)(nil)

func (r *movementView) Create(ctx context.Context, movement *entity.StockMovement) (int64, error) {
	if r.store.failCreate != nil {
		return 0, r.store.failCreate
	}
	for _, m := range r.store.movements {
		if m.OrderID == movement.OrderID {
			// equivalente a la violación del constraint único sobre order_id
			return 0, domain.ErrOrderAlreadyFulfilled
		}
	}
	id := r.store.nextMovID
	r.store.nextMovID++
	m := *movement
	m.ID = id
	m.CreatedAt = time.Now()
	r.store.movements[id] = m
	return id, nil
}

func (r *movementView) ExistsForOrder(ctx context.Context, orderID int64) (bool, error) {
	for _, m := range r.store.movements {
		if m.OrderID == orderID {
			return true, nil
		}
	}
	return false, nil
}

func (r *movementView) GetByID(ctx context.Context, id int64) (*entity.StockMovement, error) {
	if m, ok := r.store.movements[id]; ok {
		return &m, nil
	}
	return nil, nil
}

func (r *movementView) ListByWarehouse(ctx context.Context, warehouseID int64, limit, offset int) ([]*entity.StockMovement, error) {
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario base: Producto 7 a 19.99, Bodega 3, Orden 55 (producto 7,
// cantidad 10, creada 2024-01-01, abierta).
// ──────────────────────────────────────────────────────────────────────────────

func buildStore() *memStore {
	s := newMemStore()
	s.products[7] = entity.Product{ID: 7, Name: "Tornillo M8", Price: decimal.RequireFromString("19.99")}
	s.warehouses[3] = entity.Warehouse{ID: 3, Name: "Bodega Central", Address: "Calle 1 #2-3"}
	s.orders[55] = entity.Order{
		ID:        55,
		ProductID: 7,
		Amount:    10,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	return s
}

func buildUseCase(s *memStore) *fulfillment.FulfillmentUseCase {
	return fulfillment.NewFulfillmentUseCase(s, 0, logger.Nop())
}

func validInput() fulfillment.FulfillmentInputDTO {
	return fulfillment.FulfillmentInputDTO{
		ProductID:   7,
		WarehouseID: 3,
		Amount:      10,
		CreatedAt:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestFulfillAndRecord_OrdenValida_CreaMovimiento(t *testing.T) {
	s := buildStore()
	uc := buildUseCase(s)

	movID, err := uc.FulfillAndRecord(context.Background(), validInput())
	require.NoError(t, err)
	require.Greater(t, movID, int64(0))

	// La orden quedó cumplida exactamente una vez
	order := s.orders[55]
	require.NotNil(t, order.FulfilledAt, "la orden debe quedar con fulfilled_at")

	// Un único movimiento, al precio vigente: 19.99 × 10 = 199.90
	require.Len(t, s.movements, 1)
	mov := s.movements[movID]
	assert.Equal(t, int64(3), mov.WarehouseID)
	assert.Equal(t, int64(7), mov.ProductID)
	assert.Equal(t, int64(55), mov.OrderID)
	assert.Equal(t, int64(10), mov.Amount)
	assert.Equal(t, "199.90", mov.Price.StringFixed(2))
}

func TestFulfillAndRecord_SegundaLlamada_NoDuplicaMovimiento(t *testing.T) {
	s := buildStore()
	uc := buildUseCase(s)

	_, err := uc.FulfillAndRecord(context.Background(), validInput())
	require.NoError(t, err)

	// Misma entrada otra vez: la orden ya no está abierta
	_, err = uc.FulfillAndRecord(context.Background(), validInput())
	require.Error(t, err)
	assert.True(t,
		errors.Is(err, domain.ErrNoValidOrder) || errors.Is(err, domain.ErrOrderAlreadyFulfilled),
		"la segunda llamada debe fallar con NoValidOrder u OrderAlreadyFulfilled, fue: %v", err)

	assert.Len(t, s.movements, 1, "no debe existir un segundo movimiento")
}

func TestFulfillAndRecord_ProductoInexistente(t *testing.T) {
	s := buildStore()
	uc := buildUseCase(s)

	in := validInput()
	in.ProductID = 999

	_, err := uc.FulfillAndRecord(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	// Snapshot intacto: ni órdenes mutadas ni movimientos creados
	assert.Nil(t, s.orders[55].FulfilledAt)
	assert.Empty(t, s.movements)
}

func TestFulfillAndRecord_BodegaInexistente(t *testing.T) {
	s := buildStore()
	uc := buildUseCase(s)

	in := validInput()
	in.WarehouseID = 999

	_, err := uc.FulfillAndRecord(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrWarehouseNotFound)
	assert.Empty(t, s.movements)
}

func TestFulfillAndRecord_SinOrdenQueCalce(t *testing.T) {
	s := buildStore()
	uc := buildUseCase(s)

	// Monto distinto al de la orden: el emparejamiento exige igualdad exacta
	in := validInput()
	in.Amount = 11

	_, err := uc.FulfillAndRecord(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNoValidOrder)
}

func TestFulfillAndRecord_CreatedAtAnteriorALaOrden(t *testing.T) {
	s := buildStore()
	uc := buildUseCase(s)

	// createdAt debe ser estrictamente posterior a la creación de la orden
	in := validInput()
	in.CreatedAt = time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)

	_, err := uc.FulfillAndRecord(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNoValidOrder)
}

func TestFulfillAndRecord_OrdenYaCumplida(t *testing.T) {
	s := buildStore()
	// La orden sigue "abierta" pero ya tiene movimiento: la guardia defensiva
	// debe detectarlo antes de mutar nada.
	s.movements[99] = entity.StockMovement{ID: 99, OrderID: 55, WarehouseID: 3, ProductID: 7, Amount: 10}
	s.nextMovID = 100
	uc := buildUseCase(s)

	_, err := uc.FulfillAndRecord(context.Background(), validInput())
	assert.ErrorIs(t, err, domain.ErrOrderAlreadyFulfilled)
	assert.Nil(t, s.orders[55].FulfilledAt, "la orden no debe mutarse")
}

// ── Validación de entrada (se rechaza antes de tocar el almacenamiento) ───────

func TestFulfillAndRecord_EntradaInvalida(t *testing.T) {
	uc := buildUseCase(buildStore())

	casos := []fulfillment.FulfillmentInputDTO{
		{ProductID: 0, WarehouseID: 3, Amount: 10, CreatedAt: time.Now().Add(-time.Hour)},
		{ProductID: 7, WarehouseID: -1, Amount: 10, CreatedAt: time.Now().Add(-time.Hour)},
		{ProductID: 7, WarehouseID: 3, Amount: 0, CreatedAt: time.Now().Add(-time.Hour)},
		{ProductID: 7, WarehouseID: 3, Amount: 10, CreatedAt: time.Now().Add(time.Hour)}, // futuro
		{ProductID: 7, WarehouseID: 3, Amount: 10},                                       // CreatedAt cero
	}
	for _, in := range casos {
		_, err := uc.FulfillAndRecord(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "entrada %+v", in)
	}
}

// ── Desempate determinista ────────────────────────────────────────────────────

func TestFulfillAndRecord_Desempate_MasAntiguaYMenorID(t *testing.T) {
	s := buildStore()
	// Dos candidatas adicionales: ambas más antiguas que la 55 y con la misma
	// fecha entre sí. Debe ganar la más antigua y, a igual fecha, el menor ID.
	older := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	s.orders[70] = entity.Order{ID: 70, ProductID: 7, Amount: 10, CreatedAt: older}
	s.orders[60] = entity.Order{ID: 60, ProductID: 7, Amount: 10, CreatedAt: older}
	uc := buildUseCase(s)

	movID, err := uc.FulfillAndRecord(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, int64(60), s.movements[movID].OrderID)
	assert.NotNil(t, s.orders[60].FulfilledAt)
	assert.Nil(t, s.orders[55].FulfilledAt)
	assert.Nil(t, s.orders[70].FulfilledAt)
}

// ── Atomicidad: rollback sin estado parcial ───────────────────────────────────

func TestFulfillAndRecord_FalloEnInsert_RollbackCompleto(t *testing.T) {
	s := buildStore()
	s.failCreate = errors.New("connection reset by peer")
	uc := buildUseCase(s)

	_, err := uc.FulfillAndRecord(context.Background(), validInput())
	require.Error(t, err)
	assert.True(t, domain.IsStoreError(err), "el fallo del insert debe aflorar como StoreError, fue: %v", err)

	// Rollback total: la mutación de la orden del paso 4 se deshizo
	assert.Nil(t, s.orders[55].FulfilledAt, "la orden debe volver a estar abierta")
	assert.Empty(t, s.movements)
}

func TestFulfillAndRecord_ViolacionUnicaEnInsert_EsOrdenYaCumplida(t *testing.T) {
	s := buildStore()
	s.failCreate = domain.ErrOrderAlreadyFulfilled // lo que el adaptador devuelve ante 23505
	uc := buildUseCase(s)

	_, err := uc.FulfillAndRecord(context.Background(), validInput())
	assert.ErrorIs(t, err, domain.ErrOrderAlreadyFulfilled)
	assert.Nil(t, s.orders[55].FulfilledAt)
}

// ── Concurrencia: N invocaciones sobre la misma orden, un solo éxito ──────────

func TestFulfillAndRecord_Concurrencia_UnSoloExito(t *testing.T) {
	s := buildStore()
	uc := buildUseCase(s)

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.FulfillAndRecord(context.Background(), validInput())
		}(i)
	}
	wg.Wait()

	exitos := 0
	for _, err := range errs {
		if err == nil {
			exitos++
			continue
		}
		assert.True(t,
			errors.Is(err, domain.ErrNoValidOrder) || errors.Is(err, domain.ErrOrderAlreadyFulfilled),
			"fallo inesperado: %v", err)
	}
	assert.Equal(t, 1, exitos, "exactamente una invocación debe cumplir la orden")
	assert.Len(t, s.movements, 1, "no debe haber movimientos duplicados")
}
