package repo_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isiledger/src/core/domain"
	"isiledger/src/core/ports"
	"isiledger/src/core/wsv"
	"isiledger/src/infra/db"
	"isiledger/src/infra/repo"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSQLiteRepo(t *testing.T) *repo.SQLiteRepository {
	t.Helper()
	ctx := context.Background()
	s, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "ledger.db"), discardLogger())
	require.NoError(t, err)
	t.Cleanup(s.Close)
	require.NoError(t, s.Migrate(ctx))
	return repo.NewSQLiteRepository(s, discardLogger())
}

// populated builds wonderland with two accounts, one holding.
func populated(t *testing.T) *domain.Domain {
	t.Helper()
	v := wsv.New(domain.NewDomain("wonderland"))
	for _, id := range []string{"alice@wonderland", "bob@wonderland"} {
		acc, err := domain.ParseAccountID(id)
		require.NoError(t, err)
		require.NoError(t, domain.Execute(domain.RegisterAccount{DomainName: "wonderland", Account: domain.NewAccount(acc)}, v))
	}
	rose, err := domain.ParseAssetID("rose##alice@wonderland")
	require.NoError(t, err)
	require.NoError(t, domain.Execute(domain.RegisterAsset{DomainName: "wonderland", Asset: domain.NewAsset(rose, 13)}, v))

	d, _ := v.Domain("wonderland")
	return d
}

func stores(t *testing.T) map[string]ports.WorldStateRepository {
	return map[string]ports.WorldStateRepository{
		"memory": repo.NewMemoryRepository(),
		"sqlite": newSQLiteRepo(t),
	}
}

func TestRepository_SaveAndLoad(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Health(ctx))

			original := populated(t)
			require.NoError(t, store.SaveDomain(ctx, original))
			require.NoError(t, store.SaveDomain(ctx, domain.NewDomain("looking_glass")))

			loaded, err := store.LoadDomains(ctx)
			require.NoError(t, err)
			require.Len(t, loaded, 2)
			assert.Equal(t, domain.Name("looking_glass"), loaded[0].Name())
			assert.Equal(t, 0, loaded[0].AccountCount())
			assert.Equal(t, original.Accounts(), loaded[1].Accounts())
		})
	}
}

func TestRepository_SaveReplaces(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.SaveDomain(ctx, populated(t)))
			require.NoError(t, store.SaveDomain(ctx, domain.NewDomain("wonderland")))

			loaded, err := store.LoadDomains(ctx)
			require.NoError(t, err)
			require.Len(t, loaded, 1)
			assert.Equal(t, 0, loaded[0].AccountCount())
		})
	}
}

func TestMemoryRepository_StoresCopies(t *testing.T) {
	ctx := context.Background()
	store := repo.NewMemoryRepository()
	v := wsv.New(domain.NewDomain("wonderland"))
	d, _ := v.Domain("wonderland")
	require.NoError(t, store.SaveDomain(ctx, d))

	alice, _ := domain.ParseAccountID("alice@wonderland")
	require.NoError(t, domain.Execute(domain.RegisterAccount{DomainName: "wonderland", Account: domain.NewAccount(alice)}, v))

	loaded, err := store.LoadDomains(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, loaded[0].AccountCount())
}
