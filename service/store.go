package service

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/AbuAli85/Contract-Management-System-sub011/config"
	"github.com/AbuAli85/Contract-Management-System-sub011/model"
)

// ContractStore is an in-memory ContractRepository used when no database
// is configured.
type ContractStore struct {
	contracts    map[string]*model.Contract
	numbers      map[string]string // contract number -> id
	mu           sync.RWMutex
	maxContracts int // Maximum contracts to keep, 0 = unlimited
}

// NewContractStore creates an in-memory store with configuration
func NewContractStore(cfg *config.StoreConfig) *ContractStore {
	maxContracts := cfg.MaxContracts
	if maxContracts < 0 {
		maxContracts = 0
	}
	slog.Info("in-memory contract store initialized", "max_contracts", maxContracts)
	return newContractStore(maxContracts)
}

func newContractStore(maxContracts int) *ContractStore {
	return &ContractStore{
		contracts:    make(map[string]*model.Contract),
		numbers:      make(map[string]string),
		maxContracts: maxContracts,
	}
}

func (s *ContractStore) Create(_ context.Context, contract *model.Contract) (*model.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.numbers[contract.ContractNumber]; exists {
		return nil, ErrDuplicateContractNumber
	}

	stored := *contract
	now := time.Now()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	s.contracts[stored.ID] = &stored
	s.numbers[stored.ContractNumber] = stored.ID

	// Cleanup if exceeds max
	s.cleanupIfNeeded()

	return &model.Contract{
		ID:             stored.ID,
		ContractNumber: stored.ContractNumber,
		Status:         stored.Status,
		CreatedAt:      stored.CreatedAt,
		UpdatedAt:      stored.UpdatedAt,
	}, nil
}

func (s *ContractStore) Get(_ context.Context, id string) (*model.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.contracts[id]
	if !ok {
		return nil, ErrContractNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *ContractStore) ListByTenant(_ context.Context, tenant string) ([]*model.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []*model.Contract{}
	for _, c := range s.contracts {
		if c.Tenant == tenant {
			cp := *c
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *ContractStore) UpdateStatus(_ context.Context, id, status, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contracts[id]
	if !ok {
		return ErrContractNotFound
	}
	c.Status = status
	c.ErrorMsg = errMsg
	c.UpdatedAt = time.Now()
	return nil
}

func (s *ContractStore) SetDocumentURL(_ context.Context, id, documentURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contracts[id]
	if !ok {
		return ErrContractNotFound
	}
	c.DocumentURL = documentURL
	c.UpdatedAt = time.Now()
	return nil
}

func (s *ContractStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contracts[id]
	if !ok {
		return ErrContractNotFound
	}
	delete(s.numbers, c.ContractNumber)
	delete(s.contracts, id)
	return nil
}

// cleanupIfNeeded removes oldest contracts if store exceeds maxContracts
// Must be called with lock held
func (s *ContractStore) cleanupIfNeeded() {
	if s.maxContracts <= 0 {
		return // Unlimited
	}

	if len(s.contracts) <= s.maxContracts {
		return
	}

	contracts := make([]*model.Contract, 0, len(s.contracts))
	for _, c := range s.contracts {
		contracts = append(contracts, c)
	}
	sort.Slice(contracts, func(i, j int) bool {
		return contracts[i].CreatedAt.Before(contracts[j].CreatedAt)
	})

	removeCount := len(contracts) - s.maxContracts
	for i := 0; i < removeCount; i++ {
		slog.Info("auto-cleaning old contract",
			"contract_id", contracts[i].ID,
			"created_at", contracts[i].CreatedAt,
		)
		delete(s.numbers, contracts[i].ContractNumber)
		delete(s.contracts, contracts[i].ID)
	}
}

// Count returns the number of contracts in the store
func (s *ContractStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contracts)
}
