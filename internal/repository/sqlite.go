package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/Tiagolw/Automa-o-contrato-social/constants"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/contract"
)

const sqliteSchemaSQL = `
CREATE TABLE IF NOT EXISTS contracts (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL DEFAULT '',
	status       TEXT NOT NULL DEFAULT 'draft',
	partners     TEXT NOT NULL DEFAULT '[]',
	company_data TEXT NOT NULL DEFAULT '{}',
	created_at   TIMESTAMP NOT NULL,
	updated_at   TIMESTAMP NOT NULL
)`

type sqliteRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenSQLite opens (or creates) a local contracts database. The cgo-free
// driver keeps the binary deployable without a toolchain on the host.
func OpenSQLite(ctx context.Context, path string, logger *slog.Logger) (ContractRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// The driver serializes writes itself; a single connection avoids
	// SQLITE_BUSY under concurrent handlers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchemaSQL); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Info("sqlite store ready", "path", path)
	return &sqliteRepository{db: db, logger: logger}, nil
}

func (r *sqliteRepository) Insert(ctx context.Context, rec *contract.ContractRecord) error {
	partners, companyData, err := marshalRecord(rec)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO contracts (id, name, status, partners, company_data, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, string(rec.Status), string(partners), string(companyData), rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		r.logger.Error("failed to insert contract", "contract_id", rec.ID, "error", err)
	}
	return err
}

func (r *sqliteRepository) Update(ctx context.Context, rec *contract.ContractRecord) error {
	partners, companyData, err := marshalRecord(rec)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE contracts SET name = ?, status = ?, partners = ?, company_data = ?, updated_at = ?
		 WHERE id = ?`,
		rec.Name, string(rec.Status), string(partners), string(companyData), rec.UpdatedAt, rec.ID)
	if err != nil {
		r.logger.Error("failed to update contract", "contract_id", rec.ID, "error", err)
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sqliteRepository) GetByID(ctx context.Context, id string) (*contract.ContractRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, status, partners, company_data, created_at, updated_at
		 FROM contracts WHERE id = ?`, id)
	rec, err := scanSQLiteRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get contract", "contract_id", id, "error", err)
		return nil, err
	}
	return rec, nil
}

func (r *sqliteRepository) List(ctx context.Context) ([]*contract.ContractRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, status, partners, company_data, created_at, updated_at
		 FROM contracts ORDER BY updated_at DESC`)
	if err != nil {
		r.logger.Error("failed to list contracts", "error", err)
		return nil, err
	}
	defer rows.Close()

	var out []*contract.ContractRecord
	for rows.Next() {
		rec, err := scanSQLiteRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *sqliteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contracts WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("failed to delete contract", "contract_id", id, "error", err)
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sqliteRepository) Close() error {
	return r.db.Close()
}

func scanSQLiteRecord(row rowScanner) (*contract.ContractRecord, error) {
	var (
		rec         contract.ContractRecord
		status      string
		partners    string
		companyData string
	)
	if err := row.Scan(&rec.ID, &rec.Name, &status, &partners, &companyData, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	rec.Status = constants.ContractStatus(status)
	if err := unmarshalRecord(&rec, []byte(partners), []byte(companyData)); err != nil {
		return nil, err
	}
	return &rec, nil
}
