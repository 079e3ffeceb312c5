package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// El caller distingue el tipo de fallo con errors.Is.
var (
	ErrProductNotFound       = errors.New("producto no encontrado")
	ErrWarehouseNotFound     = errors.New("bodega no encontrada")
	ErrNoValidOrder          = errors.New("no hay orden válida para cumplir")
	ErrOrderAlreadyFulfilled = errors.New("la orden ya fue cumplida")
	ErrInvalidInput          = errors.New("entrada inválida")
)

// StoreError envuelve cualquier fallo del almacenamiento (conectividad,
// constraint, timeout). El error subyacente queda disponible vía Unwrap.
type StoreError struct {
	Op  string // operación que falló, ej. "insert movement"
	Err error
}

func (e *StoreError) Error() string {
	if e.Op != "" {
		return "fallo de almacenamiento en " + e.Op + ": " + e.Err.Error()
	}
	return "fallo de almacenamiento: " + e.Err.Error()
}

func (e *StoreError) Unwrap() error { return e.Err }

// NewStoreError construye un StoreError; si err ya es uno, lo devuelve tal cual
// para no anidar envolturas.
func NewStoreError(op string, err error) error {
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// IsStoreError reporta si err es (o envuelve) un fallo de almacenamiento.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
