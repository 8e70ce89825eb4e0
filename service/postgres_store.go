package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AbuAli85/Contract-Management-System-sub011/model"
	"github.com/lib/pq"
)

const contractsSchema = `
CREATE TABLE IF NOT EXISTS contracts (
	id              TEXT PRIMARY KEY,
	contract_number TEXT NOT NULL UNIQUE,
	tenant          TEXT NOT NULL DEFAULT '',
	contract_type   TEXT NOT NULL,
	first_party_id  TEXT,
	second_party_id TEXT,
	promoter_id     TEXT,
	start_date      TEXT,
	end_date        TEXT,
	title           TEXT,
	value           DOUBLE PRECISION,
	currency        TEXT,
	status          TEXT NOT NULL,
	document_url    TEXT,
	error_msg       TEXT,
	created_at      TIMESTAMPTZ NOT NULL,
	updated_at      TIMESTAMPTZ NOT NULL
)`

const contractColumns = `id, contract_number, tenant, contract_type, COALESCE(first_party_id, ''),
	COALESCE(second_party_id, ''), COALESCE(promoter_id, ''), COALESCE(start_date, ''), COALESCE(end_date, ''),
	COALESCE(title, ''), value, COALESCE(currency, ''), status, COALESCE(document_url, ''), COALESCE(error_msg, ''),
	created_at, updated_at`

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint failures.
const uniqueViolation = "23505"

// PostgresContractStore implements ContractRepository using PostgreSQL.
type PostgresContractStore struct {
	db *sql.DB
}

func NewPostgresContractStore(db *sql.DB) *PostgresContractStore {
	return &PostgresContractStore{db: db}
}

// Migrate creates the contracts table if it does not exist.
func (s *PostgresContractStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, contractsSchema); err != nil {
		return fmt.Errorf("failed to create contracts table: %w", err)
	}
	return nil
}

func (s *PostgresContractStore) Create(ctx context.Context, c *model.Contract) (*model.Contract, error) {
	query := `
		INSERT INTO contracts (id, contract_number, tenant, contract_type, first_party_id, second_party_id,
			promoter_id, start_date, end_date, title, value, currency, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, contract_number, status, created_at, updated_at`

	var value sql.NullFloat64
	if c.Value != nil {
		value = sql.NullFloat64{Float64: *c.Value, Valid: true}
	}

	var out model.Contract
	err := s.db.QueryRowContext(ctx, query,
		c.ID, c.ContractNumber, c.Tenant, c.ContractType,
		nullString(c.FirstPartyID), nullString(c.SecondPartyID), nullString(c.PromoterID),
		nullString(c.StartDate), nullString(c.EndDate), nullString(c.Title),
		value, nullString(c.Currency), c.Status, c.CreatedAt, c.UpdatedAt,
	).Scan(&out.ID, &out.ContractNumber, &out.Status, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicateContractNumber
		}
		return nil, fmt.Errorf("failed to insert contract: %w", err)
	}
	return &out, nil
}

func (s *PostgresContractStore) Get(ctx context.Context, id string) (*model.Contract, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+contractColumns+" FROM contracts WHERE id = $1", id)
	c, err := scanContract(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrContractNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contract: %w", err)
	}
	return c, nil
}

func (s *PostgresContractStore) ListByTenant(ctx context.Context, tenant string) ([]*model.Contract, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+contractColumns+" FROM contracts WHERE tenant = $1 ORDER BY created_at DESC", tenant)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	defer rows.Close()

	result := []*model.Contract{}
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	return result, nil
}

func (s *PostgresContractStore) UpdateStatus(ctx context.Context, id, status, errMsg string) error {
	return s.execOne(ctx, "update status",
		"UPDATE contracts SET status = $2, error_msg = $3, updated_at = NOW() WHERE id = $1",
		id, status, nullString(errMsg))
}

func (s *PostgresContractStore) SetDocumentURL(ctx context.Context, id, documentURL string) error {
	return s.execOne(ctx, "set document url",
		"UPDATE contracts SET document_url = $2, updated_at = NOW() WHERE id = $1",
		id, documentURL)
}

func (s *PostgresContractStore) Delete(ctx context.Context, id string) error {
	return s.execOne(ctx, "delete contract", "DELETE FROM contracts WHERE id = $1", id)
}

func (s *PostgresContractStore) execOne(ctx context.Context, op, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	if n == 0 {
		return ErrContractNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContract(row rowScanner) (*model.Contract, error) {
	var c model.Contract
	var value sql.NullFloat64
	err := row.Scan(&c.ID, &c.ContractNumber, &c.Tenant, &c.ContractType, &c.FirstPartyID,
		&c.SecondPartyID, &c.PromoterID, &c.StartDate, &c.EndDate, &c.Title, &value, &c.Currency,
		&c.Status, &c.DocumentURL, &c.ErrorMsg, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if value.Valid {
		v := value.Float64
		c.Value = &v
	}
	return &c, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
