package entity

import "fmt"

// BloodType tipo sanguíneo (enumeración cerrada de 8 valores).
// Se usa como clave en mapas de cantidades; nunca se agregan valores en runtime.
type BloodType string

const (
	BloodAPos  BloodType = "A+"
	BloodANeg  BloodType = "A-"
	BloodBPos  BloodType = "B+"
	BloodBNeg  BloodType = "B-"
	BloodABPos BloodType = "AB+"
	BloodABNeg BloodType = "AB-"
	BloodOPos  BloodType = "O+"
	BloodONeg  BloodType = "O-"
)

// BloodTypes orden canónico de los tipos sanguíneos. Todo recorrido de un mapa
// de cantidades debe seguir este orden para que los bloqueos de fila se tomen
// siempre en la misma secuencia.
var BloodTypes = []BloodType{
	BloodAPos, BloodANeg,
	BloodBPos, BloodBNeg,
	BloodABPos, BloodABNeg,
	BloodOPos, BloodONeg,
}

// ParseBloodType valida y convierte un string a BloodType.
func ParseBloodType(s string) (BloodType, error) {
	bt := BloodType(s)
	if !bt.Valid() {
		return "", fmt.Errorf("tipo sanguíneo desconocido: %q", s)
	}
	return bt, nil
}

// Valid indica si el valor pertenece a la enumeración.
func (bt BloodType) Valid() bool {
	switch bt {
	case BloodAPos, BloodANeg, BloodBPos, BloodBNeg,
		BloodABPos, BloodABNeg, BloodOPos, BloodONeg:
		return true
	}
	return false
}

func (bt BloodType) String() string { return string(bt) }
