package entity

import "time"

// StockMovement registro inmutable de auditoría de un cambio de cantidad aplicado.
// Se escribe exactamente uno por cada línea confirmada; nunca se escribe para
// una operación rechazada. Movement es el delta con signo (positivo entrada,
// negativo salida); QuantityBefore se captura antes de mutar la fila.
type StockMovement struct {
	ID             string
	StockID        string
	Movement       int // delta aplicado, != 0
	QuantityBefore int
	QuantityAfter  int
	ActionBy       string // identidad del operador (opaca, viene del caller)
	Notes          string // texto libre, ej. referencia al código de lote
	ActionDate     time.Time
}
