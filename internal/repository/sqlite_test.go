package repository

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Tiagolw/Automa-o-contrato-social/constants"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/contract"
)

func openTestStore(t *testing.T) ContractRepository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contracts.db")
	repo, err := OpenSQLite(context.Background(), path, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func sampleRecord() *contract.ContractRecord {
	p := contract.NewPartnerRecord(0)
	p.Name = "MARIA SILVA"
	p.CPF = "111.222.333-44"
	now := time.Now().UTC().Truncate(time.Second)
	return &contract.ContractRecord{
		ID:       uuid.NewString(),
		Name:     "Rascunho 1 Sócios",
		Status:   constants.StatusDraft,
		Partners: []contract.PartnerRecord{p},
		CompanyData: contract.CompanyRecord{
			CompanyName: "Acme LTDA",
			Partners:    []contract.PartnerRecord{p},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	repo := openTestStore(t)
	ctx := context.Background()

	rec := sampleRecord()
	if err := repo.Insert(ctx, rec); err != nil {
		t.Fatal(err)
	}

	got, err := repo.GetByID(ctx, rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != rec.Name || got.Status != constants.StatusDraft {
		t.Errorf("got %q/%q", got.Name, got.Status)
	}
	if len(got.Partners) != 1 || got.Partners[0].Name != "MARIA SILVA" {
		t.Errorf("partners = %+v", got.Partners)
	}
	if got.CompanyData.CompanyName != "Acme LTDA" {
		t.Errorf("company = %+v", got.CompanyData)
	}
}

func TestSQLiteUpdate(t *testing.T) {
	repo := openTestStore(t)
	ctx := context.Background()

	rec := sampleRecord()
	if err := repo.Insert(ctx, rec); err != nil {
		t.Fatal(err)
	}

	rec.Status = constants.StatusCompleted
	rec.CompanyData.CompanyObject = "Comércio varejista"
	rec.UpdatedAt = rec.UpdatedAt.Add(time.Minute)
	if err := repo.Update(ctx, rec); err != nil {
		t.Fatal(err)
	}

	got, err := repo.GetByID(ctx, rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != constants.StatusCompleted {
		t.Errorf("status = %q", got.Status)
	}
	if got.CompanyData.CompanyObject != "Comércio varejista" {
		t.Errorf("company object = %q", got.CompanyData.CompanyObject)
	}
}

func TestSQLiteListOrdersByUpdatedAt(t *testing.T) {
	repo := openTestStore(t)
	ctx := context.Background()

	older := sampleRecord()
	older.UpdatedAt = older.UpdatedAt.Add(-time.Hour)
	newer := sampleRecord()
	newer.Name = "Rascunho 2 Sócios"

	if err := repo.Insert(ctx, older); err != nil {
		t.Fatal(err)
	}
	if err := repo.Insert(ctx, newer); err != nil {
		t.Fatal(err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if list[0].ID != newer.ID {
		t.Errorf("first = %s, want most recently updated", list[0].Name)
	}
}

func TestSQLiteNotFound(t *testing.T) {
	repo := openTestStore(t)
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Errorf("get: err = %v, want ErrNotFound", err)
	}
	if err := repo.Delete(ctx, uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete: err = %v, want ErrNotFound", err)
	}
	rec := sampleRecord()
	if err := repo.Update(ctx, rec); !errors.Is(err, ErrNotFound) {
		t.Errorf("update: err = %v, want ErrNotFound", err)
	}
}

func TestSQLiteDelete(t *testing.T) {
	repo := openTestStore(t)
	ctx := context.Background()

	rec := sampleRecord()
	if err := repo.Insert(ctx, rec); err != nil {
		t.Fatal(err)
	}
	if err := repo.Delete(ctx, rec.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.GetByID(ctx, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
