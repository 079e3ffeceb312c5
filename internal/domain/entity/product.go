package entity

import "github.com/shopspring/decimal"

// Product representa un producto del catálogo. Para el flujo de cumplimiento
// es de solo lectura; Price es el precio unitario vigente (NUMERIC(25,2)).
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
}
