package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isiledger/src/core/domain"
)

func TestRegister_IntoRegisterAccount(t *testing.T) {
	acc := domain.NewAccount(accountID(t, "alice@wonderland"))
	r := domain.NewRegister[domain.Domain](acc, domain.Name("wonderland"))

	ins, err := r.Into()
	require.NoError(t, err)
	assert.Equal(t, domain.KindRegisterAccount, ins.Kind())

	ra, ok := ins.(domain.RegisterAccount)
	require.True(t, ok)
	assert.Equal(t, domain.Name("wonderland"), ra.DomainName)
	assert.Equal(t, r, ra.Register())

	dest, ok := domain.Destination(ins)
	require.True(t, ok)
	assert.Equal(t, domain.Name("wonderland"), dest)
}

func TestRegister_IntoRegisterAsset(t *testing.T) {
	asset := domain.NewAsset(assetID(t, "rose#wonderland#alice@wonderland"), 7)
	r := domain.NewRegister[domain.Domain](asset, domain.Name("wonderland"))

	ins, err := r.Into()
	require.NoError(t, err)

	ra, ok := ins.(domain.RegisterAsset)
	require.True(t, ok)
	assert.Equal(t, r, ra.Register())
	assert.Equal(t, "RegisterAsset", ins.Kind().String())
}

func TestRegister_UnsupportedPair(t *testing.T) {
	r := domain.NewRegister[domain.Account](domain.NewAsset(assetID(t, "rose##alice@wonderland"), 1), accountID(t, "alice@wonderland"))

	ins, err := r.Into()
	assert.Nil(t, ins)
	assert.True(t, domain.IsValidationError(err))
}

func TestParseKind(t *testing.T) {
	for _, k := range domain.Kinds {
		got, err := domain.ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := domain.ParseKind("Mint")
	assert.True(t, domain.IsValidationError(err))
}
