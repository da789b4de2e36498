package journal_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isiledger/src/core/ports"
	"isiledger/src/infra/journal"
)

func entry(hash string, at time.Time) ports.JournalEntry {
	return ports.JournalEntry{
		Hash:        hash,
		Kind:        "RegisterAccount",
		Destination: "wonderland",
		Status:      ports.StatusApplied,
		At:          at,
	}
}

func TestWriter_AppendAndRead(t *testing.T) {
	dir := t.TempDir()
	w := journal.NewWriter(dir)
	at := time.Date(2026, 3, 1, 10, 15, 0, 0, time.UTC)

	require.NoError(t, w.Append(entry("a", at)))
	rejected := entry("b", at.Add(time.Minute))
	rejected.Status = ports.StatusRejected
	rejected.Error = "not found: domain nonexistent"
	require.NoError(t, w.Append(rejected))
	require.NoError(t, w.Close())

	got, err := journal.ReadFile(w.Path("2026-03-01-10"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Hash)
	assert.Equal(t, ports.StatusRejected, got[1].Status)
	assert.Equal(t, "not found: domain nonexistent", got[1].Error)
}

func TestWriter_RotatesHourly(t *testing.T) {
	dir := t.TempDir()
	w := journal.NewWriter(dir)
	at := time.Date(2026, 3, 1, 10, 59, 0, 0, time.UTC)

	require.NoError(t, w.Append(entry("a", at)))
	require.NoError(t, w.Append(entry("b", at.Add(2*time.Minute))))
	require.NoError(t, w.Close())

	first, err := journal.ReadFile(w.Path("2026-03-01-10"))
	require.NoError(t, err)
	second, err := journal.ReadFile(w.Path("2026-03-01-11"))
	require.NoError(t, err)
	assert.Len(t, first, 1)
	assert.Len(t, second, 1)
}

func TestWriter_ReopenAppends(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	w := journal.NewWriter(dir)
	require.NoError(t, w.Append(entry("a", at)))
	require.NoError(t, w.Close())

	w = journal.NewWriter(dir)
	require.NoError(t, w.Append(entry("b", at)))
	require.NoError(t, w.Close())

	got, err := journal.ReadFile(w.Path("2026-03-01-10"))
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
