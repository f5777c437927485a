package validator

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stockRequest struct {
	ProductID uuid.UUID `validate:"uuid_required"`
	Quantity  int       `validate:"required,gt=0"`
}

func TestStructValid(t *testing.T) {
	assert.Nil(t, Struct(&stockRequest{ProductID: uuid.New(), Quantity: 3}))
}

func TestStructReportsFirstFailedRule(t *testing.T) {
	fe := Struct(&stockRequest{})
	require.NotNil(t, fe)
	assert.Equal(t, "uuid_required", fe.Rule)
	assert.Contains(t, fe.Error(), "ProductID")
}

func TestUUIDRequiredRejectsNilUUID(t *testing.T) {
	fe := Struct(&stockRequest{ProductID: uuid.Nil, Quantity: 3})
	require.NotNil(t, fe)
	assert.Equal(t, "uuid_required", fe.Rule)

	assert.Nil(t, Struct(&stockRequest{ProductID: uuid.New(), Quantity: 3}))
}

func TestFieldErrorCarriesRuleParam(t *testing.T) {
	fe := Struct(&stockRequest{ProductID: uuid.New(), Quantity: -1})
	require.NotNil(t, fe)
	assert.Equal(t, "gt", fe.Rule)
	assert.Equal(t, "0", fe.Param)
	assert.Contains(t, fe.Error(), "gt=0")
}
