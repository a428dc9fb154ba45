package entity

import "time"

// Stock existencia actual de un tipo sanguíneo en una empresa (banco de sangre).
// Se crea de forma perezosa en la primera entrada y nunca se elimina; solo el
// ledger de stock lo muta. Invariante: Quantity nunca es negativa y siempre
// coincide con la suma de los movimientos confirmados desde su creación.
type Stock struct {
	ID        string
	CompanyID string
	BloodType BloodType
	Quantity  int // unidades en existencia, >= 0
	UpdatedAt time.Time
}
