package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/AbuAli85/Contract-Management-System-sub011/config"
	"github.com/AbuAli85/Contract-Management-System-sub011/model"
)

func storeContract(id, number, tenant string, createdAt time.Time) *model.Contract {
	return &model.Contract{
		ID:             id,
		ContractNumber: number,
		Tenant:         tenant,
		ContractType:   "non_disclosure_agreement",
		FirstPartyID:   "party-1",
		Status:         model.StatusPending,
		CreatedAt:      createdAt,
	}
}

func TestContractStoreCreateAndGet(t *testing.T) {
	store := newContractStore(100)
	ctx := context.Background()

	stored, err := store.Create(ctx, storeContract("test-id-1", "CNT-1", "tenant1", time.Now()))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if stored.ID != "test-id-1" || stored.ContractNumber != "CNT-1" {
		t.Errorf("Unexpected stored identifiers %+v", stored)
	}
	if stored.FirstPartyID != "" {
		t.Error("Expected create to return only identifiers and bookkeeping fields")
	}

	retrieved, err := store.Get(ctx, "test-id-1")
	if err != nil {
		t.Fatalf("Expected to retrieve contract: %v", err)
	}
	if retrieved.FirstPartyID != "party-1" {
		t.Errorf("Expected first party party-1, got %s", retrieved.FirstPartyID)
	}

	if _, err := store.Get(ctx, "non-existent"); !errors.Is(err, ErrContractNotFound) {
		t.Errorf("Expected ErrContractNotFound, got %v", err)
	}
}

func TestContractStoreDuplicateNumber(t *testing.T) {
	store := newContractStore(100)
	ctx := context.Background()

	if _, err := store.Create(ctx, storeContract("a", "CNT-DUP", "t", time.Now())); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	_, err := store.Create(ctx, storeContract("b", "CNT-DUP", "t", time.Now()))
	if !errors.Is(err, ErrDuplicateContractNumber) {
		t.Errorf("Expected ErrDuplicateContractNumber, got %v", err)
	}
	if store.Count() != 1 {
		t.Errorf("Expected 1 contract, got %d", store.Count())
	}
}

func TestContractStoreListByTenant(t *testing.T) {
	store := newContractStore(100)
	ctx := context.Background()
	now := time.Now()

	store.Create(ctx, storeContract("1", "N1", "tenant1", now))
	store.Create(ctx, storeContract("2", "N2", "tenant1", now.Add(time.Second)))
	store.Create(ctx, storeContract("3", "N3", "tenant2", now))

	tenant1, _ := store.ListByTenant(ctx, "tenant1")
	if len(tenant1) != 2 {
		t.Fatalf("Expected 2 contracts for tenant1, got %d", len(tenant1))
	}
	if tenant1[0].ID != "2" {
		t.Errorf("Expected newest first, got %s", tenant1[0].ID)
	}

	tenant3, _ := store.ListByTenant(ctx, "tenant3")
	if tenant3 == nil || len(tenant3) != 0 {
		t.Errorf("Expected empty non-nil list for tenant3, got %v", tenant3)
	}
}

func TestContractStoreDelete(t *testing.T) {
	store := newContractStore(100)
	ctx := context.Background()

	store.Create(ctx, storeContract("delete-me", "N-DEL", "t", time.Now()))

	if err := store.Delete(ctx, "delete-me"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := store.Get(ctx, "delete-me"); err == nil {
		t.Error("Expected contract to be deleted")
	}
	if err := store.Delete(ctx, "delete-me"); !errors.Is(err, ErrContractNotFound) {
		t.Errorf("Expected ErrContractNotFound, got %v", err)
	}

	// number is free again
	if _, err := store.Create(ctx, storeContract("again", "N-DEL", "t", time.Now())); err != nil {
		t.Errorf("Expected number reuse after delete, got %v", err)
	}
}

func TestContractStoreUpdateStatus(t *testing.T) {
	store := newContractStore(100)
	ctx := context.Background()

	store.Create(ctx, storeContract("status-test", "N-S", "t", time.Now()))

	if err := store.UpdateStatus(ctx, "status-test", model.StatusProcessing, ""); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	contract, _ := store.Get(ctx, "status-test")
	if contract.Status != model.StatusProcessing {
		t.Errorf("Expected status %s, got %s", model.StatusProcessing, contract.Status)
	}

	store.UpdateStatus(ctx, "status-test", model.StatusError, "render failed")
	contract, _ = store.Get(ctx, "status-test")
	if contract.ErrorMsg != "render failed" {
		t.Errorf("Expected error msg 'render failed', got '%s'", contract.ErrorMsg)
	}

	if err := store.UpdateStatus(ctx, "non-existent", model.StatusProcessing, ""); !errors.Is(err, ErrContractNotFound) {
		t.Errorf("Expected ErrContractNotFound, got %v", err)
	}
}

func TestContractStoreSetDocumentURL(t *testing.T) {
	store := newContractStore(100)
	ctx := context.Background()

	store.Create(ctx, storeContract("doc-test", "N-D", "t", time.Now()))
	if err := store.SetDocumentURL(ctx, "doc-test", "https://files.example.com/c.pdf"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	contract, _ := store.Get(ctx, "doc-test")
	if contract.DocumentURL != "https://files.example.com/c.pdf" {
		t.Errorf("Unexpected document url %s", contract.DocumentURL)
	}
}

func TestContractStoreGetReturnsCopy(t *testing.T) {
	store := newContractStore(100)
	ctx := context.Background()

	store.Create(ctx, storeContract("copy-test", "N-C", "t", time.Now()))
	c, _ := store.Get(ctx, "copy-test")
	c.Status = model.StatusError

	again, _ := store.Get(ctx, "copy-test")
	if again.Status != model.StatusPending {
		t.Errorf("Expected stored status unchanged, got %s", again.Status)
	}
}

func TestContractStoreAutoCleanup(t *testing.T) {
	store := newContractStore(3)
	ctx := context.Background()
	base := time.Now()

	for i := 0; i < 5; i++ {
		id := string(rune('a' + i))
		store.Create(ctx, storeContract(id, fmt.Sprintf("N-%d", i), "t", base.Add(time.Duration(i)*time.Second)))
	}

	if store.Count() != 3 {
		t.Errorf("Expected 3 contracts after cleanup, got %d", store.Count())
	}
	if _, err := store.Get(ctx, "a"); err == nil {
		t.Error("Expected oldest contract 'a' to be removed")
	}
	if _, err := store.Get(ctx, "b"); err == nil {
		t.Error("Expected second oldest contract 'b' to be removed")
	}
}

func TestContractStoreUnlimitedContracts(t *testing.T) {
	store := newContractStore(0)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		store.Create(ctx, storeContract(fmt.Sprintf("id-%d", i), fmt.Sprintf("N-%d", i), "t", time.Now()))
	}

	if store.Count() != 10 {
		t.Errorf("Expected 10 contracts, got %d", store.Count())
	}
}

func TestNewContractStore(t *testing.T) {
	store := NewContractStore(&config.StoreConfig{MaxContracts: -5})
	if store == nil {
		t.Fatal("Expected non-nil store")
	}
	if store.maxContracts != 0 {
		t.Errorf("Expected negative limit to mean unlimited, got %d", store.maxContracts)
	}
}

func TestBuildContract(t *testing.T) {
	cfg := testConfig()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	req := model.ContractRequest{
		ContractType: cfg.ID,
		Tenant:       "acme",
		ContractData: map[string]any{
			"firstPartyId":    "fp-1",
			"second_party_id": "sp-1",
			"promoter_id":     "p-1",
			"start_date":      "2026-03-01",
			"project_fee":     "4,000",
		},
	}

	c := BuildContract(req, cfg, "CNT-X", now)
	if c.ID == "" {
		t.Error("Expected generated id")
	}
	if c.FirstPartyID != "fp-1" || c.SecondPartyID != "sp-1" || c.PromoterID != "p-1" {
		t.Errorf("Unexpected references %+v", c)
	}
	if c.Value == nil || *c.Value != 4000 {
		t.Errorf("Expected value 4000, got %v", c.Value)
	}
	if c.Currency != "USD" {
		t.Errorf("Expected default currency USD, got %s", c.Currency)
	}
	if c.Title != cfg.Name {
		t.Errorf("Expected title from template name, got %s", c.Title)
	}
	if c.Status != model.StatusPending {
		t.Errorf("Expected pending status, got %s", c.Status)
	}
}

func TestGenerateContractNumber(t *testing.T) {
	now := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	a := GenerateContractNumber(now)
	b := GenerateContractNumber(now)

	if len(a) != len("CNT-20261016-")+8 {
		t.Errorf("Unexpected number format %s", a)
	}
	if a[:13] != "CNT-20261016-" {
		t.Errorf("Unexpected prefix %s", a)
	}
	if a == b {
		t.Error("Expected unique numbers")
	}
}
