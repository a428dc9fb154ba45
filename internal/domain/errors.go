package domain

import "errors"

// Errores de dominio (sin dependencias externas). Toda violación de regla de
// negocio se detecta antes de mutar estado y se devuelve tipada al caller;
// solo ErrConflict puede reintentarse internamente.
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrCompanyNotFound        = errors.New("empresa no encontrada")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrForbidden              = errors.New("acceso denegado")
	ErrConflict               = errors.New("conflicto de escritura concurrente")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrInsufficientBatchStock = errors.New("stock insuficiente en el lote")
	ErrBloodTypeNotInBatch    = errors.New("tipo sanguíneo no registrado en el lote")
)
