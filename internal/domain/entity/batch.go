package entity

import "time"

// Batch lote de entrada de hemocomponentes. Único por (CompanyID, BatchCode):
// reenviar el mismo código funde las cantidades en el lote existente en vez
// de duplicarlo.
type Batch struct {
	ID        string
	CompanyID string
	BatchCode string
	EntryDate time.Time
	Lines     []BatchLine
}

// BatchLine cantidad restante de un tipo sanguíneo dentro de un lote.
// Vive exclusivamente a través de su Batch (se persiste y se elimina con él);
// única por (lote, tipo sanguíneo). Invariante: Quantity >= 0.
type BatchLine struct {
	ID        string
	BloodType BloodType
	Quantity  int
}

// Line devuelve la línea del tipo sanguíneo indicado, o nil si el lote no lo registra.
func (b *Batch) Line(bt BloodType) *BatchLine {
	for i := range b.Lines {
		if b.Lines[i].BloodType == bt {
			return &b.Lines[i]
		}
	}
	return nil
}

// HasAvailability indica si alguna línea del lote conserva unidades.
func (b *Batch) HasAvailability() bool {
	for i := range b.Lines {
		if b.Lines[i].Quantity > 0 {
			return true
		}
	}
	return false
}
