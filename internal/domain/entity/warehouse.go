package entity

// Warehouse representa una bodega donde se deposita inventario.
// De solo lectura para el flujo de cumplimiento.
type Warehouse struct {
	ID      int64
	Name    string
	Address string
}
