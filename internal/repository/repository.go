// Package repository persists contract records. The primary store is
// Postgres (Supabase in production); a local SQLite store backs development
// and environments without a database, and the service keeps working with no
// store at all.
package repository

import (
	"context"
	"errors"

	"github.com/Tiagolw/Automa-o-contrato-social/internal/contract"
)

// ErrNotFound is returned when a contract id does not exist.
var ErrNotFound = errors.New("contract not found")

// ContractRepository stores assembled contract records.
type ContractRepository interface {
	Insert(ctx context.Context, rec *contract.ContractRecord) error
	Update(ctx context.Context, rec *contract.ContractRecord) error
	GetByID(ctx context.Context, id string) (*contract.ContractRecord, error)
	List(ctx context.Context) ([]*contract.ContractRecord, error)
	Delete(ctx context.Context, id string) error
	Close() error
}
