package codec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"isiledger/src/core/domain"
	"isiledger/src/infra/codec"
)

func sampleInstructions(t *testing.T) []domain.Instruction {
	t.Helper()
	alice, err := domain.ParseAccountID("alice@wonderland")
	require.NoError(t, err)
	rose, err := domain.ParseAssetID("rose#wonderland#alice@wonderland")
	require.NoError(t, err)
	tea, err := domain.ParseAssetID("tea#looking_glass#alice@wonderland")
	require.NoError(t, err)

	rich := domain.NewAccount(alice)
	rich.Assets[rose] = domain.NewAsset(rose, 13)
	rich.Assets[tea] = domain.NewAsset(tea, 4294967295)

	return []domain.Instruction{
		domain.RegisterAccount{DomainName: "wonderland", Account: domain.NewAccount(alice)},
		domain.RegisterAccount{DomainName: "wonderland", Account: rich},
		domain.RegisterAsset{DomainName: "wonderland", Asset: domain.NewAsset(rose, 0)},
	}
}

func TestBinary_RoundTrip(t *testing.T) {
	for _, ins := range sampleInstructions(t) {
		b, err := codec.EncodeInstruction(ins)
		require.NoError(t, err)

		decoded, err := codec.DecodeInstruction(b)
		require.NoError(t, err)
		assert.Equal(t, ins, decoded)
	}
}

func TestBinary_Rejects(t *testing.T) {
	_, err := codec.DecodeInstruction([]byte{0xff})
	assert.True(t, domain.IsValidationError(err))

	_, err = codec.DecodeInstruction(nil)
	assert.True(t, domain.IsValidationError(err))

	// kind 9 is not a variant
	var inner []byte
	inner = protowire.AppendTag(inner, 1, protowire.VarintType)
	inner = protowire.AppendVarint(inner, 9)
	inner = protowire.AppendTag(inner, 2, protowire.BytesType)
	inner = protowire.AppendString(inner, "wonderland")
	inner = protowire.AppendTag(inner, 3, protowire.BytesType)
	inner = protowire.AppendBytes(inner, nil)
	var out []byte
	out = protowire.AppendTag(out, 1, protowire.BytesType)
	out = protowire.AppendBytes(out, inner)

	_, err = codec.DecodeInstruction(out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown instruction kind 9")

	// names must be valid UTF-8 so the JSON form round trips
	bad := domain.AccountID{Name: "al\xffice", Domain: "wonderland"}
	raw, err := codec.EncodeInstruction(domain.RegisterAccount{DomainName: "wonderland", Account: domain.NewAccount(bad)})
	require.NoError(t, err)
	_, err = codec.DecodeInstruction(raw)
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
	assert.Contains(t, err.Error(), "not valid UTF-8")
}

func TestJSON_RoundTrip(t *testing.T) {
	c := codec.MustNew()
	for _, ins := range sampleInstructions(t) {
		data, err := codec.EncodeInstructionJSON(ins)
		require.NoError(t, err)

		decoded, err := c.DecodeInstructionJSON(data)
		require.NoError(t, err)
		assert.Equal(t, ins, decoded)
	}
}

func TestJSON_Shape(t *testing.T) {
	data, err := codec.EncodeInstructionJSON(sampleInstructions(t)[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"RegisterAccount": {
			"destination_id": "wonderland",
			"object": {"id": "alice@wonderland", "assets": {}}
		}
	}`, string(data))
}

func TestJSON_SchemaRejections(t *testing.T) {
	c := codec.MustNew()
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{`},
		{"trailing data", `{"RegisterAccount": {"destination_id": "wonderland", "object": {"id": "alice@wonderland"}}} {}`},
		{"empty object", `{}`},
		{"unknown variant", `{"Mint": {"destination_id": "wonderland", "object": {}}}`},
		{"two variants", `{
			"RegisterAccount": {"destination_id": "wonderland", "object": {"id": "alice@wonderland"}},
			"RegisterAsset": {"destination_id": "wonderland", "object": {"id": "rose##alice@wonderland", "quantity": 1}}
		}`},
		{"bad destination", `{"RegisterAccount": {"destination_id": "won der", "object": {"id": "alice@wonderland"}}}`},
		{"bad account id", `{"RegisterAccount": {"destination_id": "wonderland", "object": {"id": "alice"}}}`},
		{"negative quantity", `{"RegisterAsset": {"destination_id": "wonderland", "object": {"id": "rose##alice@wonderland", "quantity": -1}}}`},
		{"quantity overflow", `{"RegisterAsset": {"destination_id": "wonderland", "object": {"id": "rose##alice@wonderland", "quantity": 4294967296}}}`},
		{"mismatched holding key", `{"RegisterAccount": {"destination_id": "wonderland", "object": {
			"id": "alice@wonderland",
			"assets": {"rose##alice@wonderland": {"id": "tea##alice@wonderland", "quantity": 1}}
		}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.DecodeInstructionJSON([]byte(tt.body))
			require.Error(t, err)
			assert.True(t, domain.IsValidationError(err))
		})
	}
}

func TestJSON_NullAssetsNormalized(t *testing.T) {
	c := codec.MustNew()
	ins, err := c.DecodeInstructionJSON([]byte(`{"RegisterAccount": {"destination_id": "wonderland", "object": {"id": "alice@wonderland", "assets": null}}}`))
	require.NoError(t, err)

	ra := ins.(domain.RegisterAccount)
	assert.NotNil(t, ra.Account.Assets)
}

func TestHash(t *testing.T) {
	c := codec.MustNew()
	ins := sampleInstructions(t)

	a, err := c.Hash(ins[0])
	require.NoError(t, err)
	b, err := c.Hash(ins[0])
	require.NoError(t, err)
	other, err := c.Hash(ins[1])
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, other)
}

func TestTypes(t *testing.T) {
	c := codec.MustNew()
	assert.Equal(t, []string{"Account", "Asset", "Instruction"}, codec.Types())

	bin, err := c.JSONToBinary("Asset", []byte(`{"id": "rose##alice@wonderland", "quantity": 7}`))
	require.NoError(t, err)
	out, err := c.BinaryToJSON("Asset", bin)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": "rose#wonderland#alice@wonderland", "quantity": 7}`, string(out))

	_, err = c.JSONToBinary("Peer", nil)
	assert.EqualError(t, err, "unknown type: `Peer`")
}
