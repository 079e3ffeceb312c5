package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/bodega-api/internal/domain"
)

func TestStoreError_EnvuelveElErrorSubyacente(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := domain.NewStoreError("begin transaction", cause)

	require.True(t, domain.IsStoreError(err))
	assert.ErrorIs(t, err, cause, "Unwrap debe exponer la causa")
	assert.Contains(t, err.Error(), "begin transaction")
}

func TestNewStoreError_NoAnidaEnvolturas(t *testing.T) {
	inner := domain.NewStoreError("get price", errors.New("timeout"))
	outer := domain.NewStoreError("insert movement", inner)

	// La segunda envoltura se descarta: el error ya es un StoreError
	assert.Equal(t, inner, outer)
}

func TestStoreError_SigueSiendoDetectableTrasWrap(t *testing.T) {
	err := fmt.Errorf("fulfill: %w", domain.NewStoreError("commit", errors.New("eof")))
	assert.True(t, domain.IsStoreError(err))
}

func TestErroresDeDominio_SonDistinguibles(t *testing.T) {
	sentinelas := []error{
		domain.ErrProductNotFound,
		domain.ErrWarehouseNotFound,
		domain.ErrNoValidOrder,
		domain.ErrOrderAlreadyFulfilled,
		domain.ErrInvalidInput,
	}
	for i, a := range sentinelas {
		for j, b := range sentinelas {
			if i != j {
				assert.NotErrorIs(t, a, b)
			}
		}
	}
}
