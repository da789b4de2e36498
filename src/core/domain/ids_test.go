package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isiledger/src/core/domain"
)

func TestParseName(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
	}{
		{"wonderland", true},
		{"white_rabbit", true},
		{"", false},
		{"has space", false},
		{"a@b", false},
		{"a#b", false},
		{"al\xffice", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := domain.ParseName(tt.in)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.True(t, domain.IsValidationError(err))
			}
		})
	}
}

func TestParseAccountID(t *testing.T) {
	id, err := domain.ParseAccountID("alice@wonderland")
	require.NoError(t, err)
	assert.Equal(t, domain.Name("alice"), id.Name)
	assert.Equal(t, domain.Name("wonderland"), id.Domain)
	assert.Equal(t, "alice@wonderland", id.String())

	for _, bad := range []string{"alice", "@wonderland", "alice@", "a@b@c"} {
		_, err := domain.ParseAccountID(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseAssetID(t *testing.T) {
	full, err := domain.ParseAssetID("rose#wonderland#alice@wonderland")
	require.NoError(t, err)
	short, err := domain.ParseAssetID("rose##alice@wonderland")
	require.NoError(t, err)

	assert.Equal(t, full, short)
	assert.Equal(t, "rose#wonderland#alice@wonderland", short.String())
	assert.Equal(t, "alice@wonderland", full.AccountID().String())

	cross, err := domain.ParseAssetID("tea#looking_glass#alice@wonderland")
	require.NoError(t, err)
	assert.Equal(t, domain.Name("looking_glass"), cross.Definition.Domain)

	for _, bad := range []string{"rose", "rose#wonderland", "rose#wonderland#alice", "#wonderland#alice@wonderland"} {
		_, err := domain.ParseAssetID(bad)
		assert.Error(t, err, bad)
	}
}

func TestAccountJSON(t *testing.T) {
	id := assetID(t, "rose##alice@wonderland")
	acc := domain.NewAccount(accountID(t, "alice@wonderland"))
	acc.Assets[id] = domain.NewAsset(id, 13)

	raw, err := json.Marshal(acc)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "alice@wonderland",
		"assets": {"rose#wonderland#alice@wonderland": {"id": "rose#wonderland#alice@wonderland", "quantity": 13}}
	}`, string(raw))

	var decoded domain.Account
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, acc, decoded)
}

func TestRestoreDomain(t *testing.T) {
	alice := domain.NewAccount(accountID(t, "alice@wonderland"))

	d, err := domain.RestoreDomain("wonderland", []domain.Account{alice}, nil)
	require.NoError(t, err)
	assert.True(t, d.HasAccount(alice.ID))

	_, err = domain.RestoreDomain("wonderland", []domain.Account{alice, alice}, nil)
	assert.True(t, domain.IsAlreadyExists(err))
}

func TestDomainClone(t *testing.T) {
	w := world{"wonderland": domain.NewDomain("wonderland")}
	snapshot := w["wonderland"].Clone()

	require.NoError(t, domain.Execute(registerAccount(t, "wonderland", "alice@wonderland"), w))

	assert.Equal(t, 1, w["wonderland"].AccountCount())
	assert.Equal(t, 0, snapshot.AccountCount())
}
