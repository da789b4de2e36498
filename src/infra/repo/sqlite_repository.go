package repo

import (
	"context"
	"database/sql"
	"log/slog"

	"isiledger/src/core/domain"
	"isiledger/src/core/ports"
	"isiledger/src/infra/db"
)

// SQLiteRepository implements WorldStateRepository on a SQLite file.
type SQLiteRepository struct {
	db  *sql.DB
	log *slog.Logger
}

var _ ports.WorldStateRepository = (*SQLiteRepository)(nil)

// NewSQLiteRepository constructs a repository backed by SQLite.
func NewSQLiteRepository(s *db.SQLite, log *slog.Logger) *SQLiteRepository {
	return &SQLiteRepository{db: s.DB, log: log}
}

func (r *SQLiteRepository) Health(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteRepository) LoadDomains(ctx context.Context) ([]*domain.Domain, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	asm := newAssembler()

	if err := queryEach(ctx, tx, `SELECT name FROM domains ORDER BY name`, func(rows *sql.Rows) error {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		return asm.addDomain(name)
	}); err != nil {
		return nil, err
	}

	const accountsQ = `
		SELECT domain_name, account_id
		FROM accounts
		ORDER BY domain_name, account_id
	`
	if err := queryEach(ctx, tx, accountsQ, func(rows *sql.Rows) error {
		var row AccountRow
		if err := rows.Scan(&row.DomainName, &row.AccountID); err != nil {
			return err
		}
		return asm.addAccount(row)
	}); err != nil {
		return nil, err
	}

	const holdingsQ = `
		SELECT domain_name, account_id, asset_id, quantity
		FROM account_assets
	`
	if err := queryEach(ctx, tx, holdingsQ, func(rows *sql.Rows) error {
		var row HoldingRow
		if err := rows.Scan(&row.DomainName, &row.AccountID, &row.AssetID, &row.Quantity); err != nil {
			return err
		}
		return asm.addHolding(row)
	}); err != nil {
		return nil, err
	}

	const domainAssetsQ = `
		SELECT domain_name, asset_id, quantity
		FROM domain_assets
		ORDER BY domain_name, asset_id
	`
	if err := queryEach(ctx, tx, domainAssetsQ, func(rows *sql.Rows) error {
		var row DomainAssetRow
		if err := rows.Scan(&row.DomainName, &row.AssetID, &row.Quantity); err != nil {
			return err
		}
		return asm.addDomainAsset(row)
	}); err != nil {
		return nil, err
	}

	return asm.build()
}

func (r *SQLiteRepository) SaveDomain(ctx context.Context, d *domain.Domain) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	name := d.Name().String()
	if _, err := tx.ExecContext(ctx, `INSERT INTO domains (name) VALUES (?) ON CONFLICT (name) DO NOTHING`, name); err != nil {
		return err
	}
	// account_assets rows go with their accounts through ON DELETE CASCADE
	if _, err := tx.ExecContext(ctx, `DELETE FROM accounts WHERE domain_name = ?`, name); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM domain_assets WHERE domain_name = ?`, name); err != nil {
		return err
	}

	rows := flatten(d)
	for _, row := range rows.accounts {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO accounts (domain_name, account_id) VALUES (?, ?)`,
			row.DomainName, row.AccountID,
		); err != nil {
			return err
		}
	}
	for _, row := range rows.holdings {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO account_assets (domain_name, account_id, asset_id, quantity) VALUES (?, ?, ?, ?)`,
			row.DomainName, row.AccountID, row.AssetID, row.Quantity,
		); err != nil {
			return err
		}
	}
	for _, row := range rows.domainAssets {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO domain_assets (domain_name, asset_id, quantity) VALUES (?, ?, ?)`,
			row.DomainName, row.AssetID, row.Quantity,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	r.log.Debug("domain saved", "domain", name, "accounts", len(rows.accounts))
	return nil
}

func queryEach(ctx context.Context, tx *sql.Tx, q string, scan func(*sql.Rows) error) error {
	rows, err := tx.QueryContext(ctx, q)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
