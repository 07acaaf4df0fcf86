package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Tiagolw/Automa-o-contrato-social/constants"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/contract"
)

type Config struct {
	DSN              string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS contracts (
	id           UUID PRIMARY KEY,
	name         TEXT NOT NULL DEFAULT '',
	status       TEXT NOT NULL DEFAULT 'draft',
	partners     JSONB NOT NULL DEFAULT '[]',
	company_data JSONB NOT NULL DEFAULT '{}',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type postgresRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// OpenPostgres creates a pgx pool and ensures the contracts table exists.
func OpenPostgres(ctx context.Context, cfg Config, logger *slog.Logger) (ContractRepository, error) {
	logger.Info("connecting to database")
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		logger.Error("failed to parse database dsn", "error", err)
		return nil, err
	}

	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	pc.ConnConfig.RuntimeParams["application_name"] = "contrato-social"
	if cfg.StatementTimeout > 0 {
		pc.ConnConfig.RuntimeParams["statement_timeout"] = cfg.StatementTimeout.String()
	}

	dialCtx := ctx
	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	pool, err := pgxpool.NewWithConfig(dialCtx, pc)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return nil, err
	}

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		logger.Error("failed to ensure schema", "error", err)
		return nil, err
	}

	logger.Info("successfully connected to database")
	return &postgresRepository{pool: pool, logger: logger}, nil
}

// HealthCheck pings the pool to catch DSN issues early.
func HealthCheck(ctx context.Context, repo ContractRepository, timeout time.Duration) error {
	pg, ok := repo.(*postgresRepository)
	if !ok {
		return nil
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return pg.pool.Ping(ctx)
}

func (r *postgresRepository) Insert(ctx context.Context, rec *contract.ContractRecord) error {
	partners, companyData, err := marshalRecord(rec)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO contracts (id, name, status, partners, company_data, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.ID, rec.Name, string(rec.Status), partners, companyData, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		r.logger.Error("failed to insert contract", "contract_id", rec.ID, "error", err)
		return err
	}
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, rec *contract.ContractRecord) error {
	partners, companyData, err := marshalRecord(rec)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE contracts SET name = $2, status = $3, partners = $4, company_data = $5, updated_at = $6
		 WHERE id = $1`,
		rec.ID, rec.Name, string(rec.Status), partners, companyData, rec.UpdatedAt)
	if err != nil {
		r.logger.Error("failed to update contract", "contract_id", rec.ID, "error", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*contract.ContractRecord, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, name, status, partners, company_data, created_at, updated_at
		 FROM contracts WHERE id = $1`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get contract", "contract_id", id, "error", err)
		return nil, err
	}
	return rec, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]*contract.ContractRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, status, partners, company_data, created_at, updated_at
		 FROM contracts ORDER BY updated_at DESC`)
	if err != nil {
		r.logger.Error("failed to list contracts", "error", err)
		return nil, err
	}
	defer rows.Close()

	var out []*contract.ContractRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *postgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contracts WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("failed to delete contract", "contract_id", id, "error", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresRepository) Close() error {
	r.pool.Close()
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func marshalRecord(rec *contract.ContractRecord) (partners, companyData []byte, err error) {
	partners, err = json.Marshal(rec.Partners)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal partners: %w", err)
	}
	companyData, err = json.Marshal(rec.CompanyData)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal company data: %w", err)
	}
	return partners, companyData, nil
}

func scanRecord(row rowScanner) (*contract.ContractRecord, error) {
	var (
		rec         contract.ContractRecord
		status      string
		partners    []byte
		companyData []byte
	)
	if err := row.Scan(&rec.ID, &rec.Name, &status, &partners, &companyData, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	rec.Status = constants.ContractStatus(status)
	if err := unmarshalRecord(&rec, partners, companyData); err != nil {
		return nil, err
	}
	return &rec, nil
}

func unmarshalRecord(rec *contract.ContractRecord, partners, companyData []byte) error {
	if err := json.Unmarshal(partners, &rec.Partners); err != nil {
		return fmt.Errorf("unmarshal partners: %w", err)
	}
	if err := json.Unmarshal(companyData, &rec.CompanyData); err != nil {
		return fmt.Errorf("unmarshal company data: %w", err)
	}
	return nil
}
