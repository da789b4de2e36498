package repo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"isiledger/src/core/domain"
	"isiledger/src/core/ports"
	"isiledger/src/infra/db"
)

// PostgresRepository implements WorldStateRepository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

var _ ports.WorldStateRepository = (*PostgresRepository)(nil)

// NewPostgresRepository constructs a repository backed by Postgres.
func NewPostgresRepository(pg *db.Postgres, log *slog.Logger) *PostgresRepository {
	return &PostgresRepository{
		pool: pg.Pool,
		log:  log,
	}
}

func (r *PostgresRepository) Health(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *PostgresRepository) LoadDomains(ctx context.Context) ([]*domain.Domain, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	asm := newAssembler()

	rows, err := tx.Query(ctx, `SELECT name FROM domains ORDER BY name`)
	if err != nil {
		return nil, err
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		if err := asm.addDomain(name); err != nil {
			return nil, err
		}
	}

	rows, err = tx.Query(ctx, `
		SELECT domain_name, account_id
		FROM accounts
		ORDER BY domain_name, account_id
	`)
	if err != nil {
		return nil, err
	}
	accounts, err := pgx.CollectRows(rows, pgx.RowToStructByPos[AccountRow])
	if err != nil {
		return nil, err
	}
	for _, row := range accounts {
		if err := asm.addAccount(row); err != nil {
			return nil, err
		}
	}

	rows, err = tx.Query(ctx, `
		SELECT domain_name, account_id, asset_id, quantity
		FROM account_assets
	`)
	if err != nil {
		return nil, err
	}
	holdings, err := pgx.CollectRows(rows, pgx.RowToStructByPos[HoldingRow])
	if err != nil {
		return nil, err
	}
	for _, row := range holdings {
		if err := asm.addHolding(row); err != nil {
			return nil, err
		}
	}

	rows, err = tx.Query(ctx, `
		SELECT domain_name, asset_id, quantity
		FROM domain_assets
		ORDER BY domain_name, asset_id
	`)
	if err != nil {
		return nil, err
	}
	domainAssets, err := pgx.CollectRows(rows, pgx.RowToStructByPos[DomainAssetRow])
	if err != nil {
		return nil, err
	}
	for _, row := range domainAssets {
		if err := asm.addDomainAsset(row); err != nil {
			return nil, err
		}
	}

	return asm.build()
}

func (r *PostgresRepository) SaveDomain(ctx context.Context, d *domain.Domain) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	name := d.Name().String()
	const upsert = `
		INSERT INTO domains (name)
		VALUES ($1)
		ON CONFLICT (name) DO NOTHING
	`
	if _, err := tx.Exec(ctx, upsert, name); err != nil {
		return err
	}
	// account_assets rows go with their accounts through ON DELETE CASCADE
	if _, err := tx.Exec(ctx, `DELETE FROM accounts WHERE domain_name = $1`, name); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM domain_assets WHERE domain_name = $1`, name); err != nil {
		return err
	}

	rows := flatten(d)
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"accounts"},
		[]string{"domain_name", "account_id"},
		pgx.CopyFromSlice(len(rows.accounts), func(i int) ([]any, error) {
			row := rows.accounts[i]
			return []any{row.DomainName, row.AccountID}, nil
		}),
	); err != nil {
		return fmt.Errorf("copy accounts: %w", err)
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"account_assets"},
		[]string{"domain_name", "account_id", "asset_id", "quantity"},
		pgx.CopyFromSlice(len(rows.holdings), func(i int) ([]any, error) {
			row := rows.holdings[i]
			return []any{row.DomainName, row.AccountID, row.AssetID, row.Quantity}, nil
		}),
	); err != nil {
		return fmt.Errorf("copy account assets: %w", err)
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"domain_assets"},
		[]string{"domain_name", "asset_id", "quantity"},
		pgx.CopyFromSlice(len(rows.domainAssets), func(i int) ([]any, error) {
			row := rows.domainAssets[i]
			return []any{row.DomainName, row.AssetID, row.Quantity}, nil
		}),
	); err != nil {
		return fmt.Errorf("copy domain assets: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	r.log.Debug("domain saved", "domain", name, "accounts", len(rows.accounts))
	return nil
}
