package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hemovida/hemostock-api/internal/domain/entity"
)

func TestBatch_Line(t *testing.T) {
	b := &entity.Batch{Lines: []entity.BatchLine{
		{BloodType: entity.BloodAPos, Quantity: 3},
		{BloodType: entity.BloodONeg, Quantity: 0},
	}}

	line := b.Line(entity.BloodAPos)
	require.NotNil(t, line)
	assert.Equal(t, 3, line.Quantity)

	// El puntero apunta al slice del lote: mutarlo muta el lote.
	line.Quantity = 7
	assert.Equal(t, 7, b.Lines[0].Quantity)

	assert.Nil(t, b.Line(entity.BloodBPos))
}

func TestBatch_HasAvailability(t *testing.T) {
	b := &entity.Batch{Lines: []entity.BatchLine{
		{BloodType: entity.BloodAPos, Quantity: 0},
		{BloodType: entity.BloodONeg, Quantity: 1},
	}}
	assert.True(t, b.HasAvailability())

	b.Lines[1].Quantity = 0
	assert.False(t, b.HasAvailability())

	empty := &entity.Batch{}
	assert.False(t, empty.HasAvailability())
}
