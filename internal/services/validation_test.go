package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidator_TipoLancamento(t *testing.T) {
	v := newValidator()
	require.NotNil(t, v)

	ok := validDTO()
	assert.NoError(t, v.Struct(ok))

	bad := validDTO()
	bad.Tipo = "ALMOCO"
	err := v.Struct(bad)
	require.Error(t, err)
	assert.Equal(t, []string{"Tipo de lançamento inválido: ALMOCO."}, fieldMessages(err))
}
