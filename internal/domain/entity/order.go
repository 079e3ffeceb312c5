package entity

import "time"

// Order representa una orden de reposición pendiente. La crea un proceso de
// captura externo; este servicio solo la consume. FulfilledAt nil = abierta.
type Order struct {
	ID          int64
	ProductID   int64
	Amount      int64
	CreatedAt   time.Time
	FulfilledAt *time.Time
}

// Open reporta si la orden sigue abierta (sin timestamp de cumplimiento).
func (o *Order) Open() bool {
	return o.FulfilledAt == nil
}
