package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isiledger/cmd/isicodec/commands"
)

const aliceJSON = `{"RegisterAccount":{"destination_id":"wonderland","object":{"id":"alice@wonderland","assets":{}}}}`

func run(t *testing.T, stdin []byte, args ...string) ([]byte, error) {
	t.Helper()
	var out bytes.Buffer
	root := commands.NewRoot()
	root.SetIn(bytes.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.Bytes(), err
}

func TestListTypes(t *testing.T) {
	out, err := run(t, nil, "list-types")
	require.NoError(t, err)
	assert.Equal(t, "Account\nAsset\nInstruction\n\n3 types are supported\n", string(out))
}

func TestRoundTrip(t *testing.T) {
	bin, err := run(t, []byte(aliceJSON), "json-to-binary", "--type", "Instruction")
	require.NoError(t, err)
	require.NotEmpty(t, bin)

	js, err := run(t, bin, "binary-to-json", "--type", "Instruction")
	require.NoError(t, err)
	assert.JSONEq(t, aliceJSON, string(js))
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "asset.json")
	bin := filepath.Join(dir, "asset.bin")
	require.NoError(t, os.WriteFile(in, []byte(`{"id":"rose##alice@wonderland","quantity":13}`), 0o644))

	_, err := run(t, nil, "json-to-binary", "-t", "Asset", "-i", in, "-o", bin)
	require.NoError(t, err)

	out, err := run(t, nil, "binary-to-json", "-t", "Asset", "-i", bin)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"rose#wonderland#alice@wonderland","quantity":13}`, string(out))
}

func TestHash(t *testing.T) {
	bin, err := run(t, []byte(aliceJSON), "json-to-binary", "--type", "Instruction")
	require.NoError(t, err)

	first, err := run(t, bin, "hash")
	require.NoError(t, err)
	second, err := run(t, bin, "hash")
	require.NoError(t, err)

	sum := strings.TrimSpace(string(first))
	assert.Len(t, sum, 64)
	assert.Equal(t, first, second)

	_, err = run(t, []byte{0xff, 0xff}, "hash")
	assert.Error(t, err)
}

func TestErrors(t *testing.T) {
	_, err := run(t, []byte("{}"), "json-to-binary", "--type", "Peer")
	assert.EqualError(t, err, "unknown type: `Peer`")

	_, err = run(t, []byte("{}"), "json-to-binary")
	assert.Error(t, err)

	_, err = run(t, []byte(`{"id":"alice"}`), "json-to-binary", "--type", "Account")
	assert.Error(t, err)
}
