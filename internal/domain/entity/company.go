package entity

import "time"

// Company institución dueña de un inventario de sangre (hemocentro, hospital).
// El ledger solo la referencia por ID para validar existencia; su administración
// es responsabilidad de otro servicio.
type Company struct {
	ID        string
	Name      string
	CNPJ      string // registro tributario de la institución
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
