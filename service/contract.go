package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AbuAli85/Contract-Management-System-sub011/model"
	"github.com/google/uuid"
)

var (
	ErrContractNotFound        = errors.New("contract not found")
	ErrDuplicateContractNumber = errors.New("contract number already exists")
)

// ContractRepository persists contract records.
type ContractRepository interface {
	// Create inserts a contract and returns the stored row. The returned
	// contract carries identifiers, status and timestamps only.
	Create(ctx context.Context, contract *model.Contract) (*model.Contract, error)
	Get(ctx context.Context, id string) (*model.Contract, error)
	ListByTenant(ctx context.Context, tenant string) ([]*model.Contract, error)
	UpdateStatus(ctx context.Context, id, status, errMsg string) error
	SetDocumentURL(ctx context.Context, id, documentURL string) error
	Delete(ctx context.Context, id string) error
}

// GenerateContractNumber returns a new number of the form CNT-YYYYMMDD-XXXXXXXX.
func GenerateContractNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("CNT-%s-%s", now.UTC().Format("20060102"), suffix)
}

// BuildContract maps request data onto a new pending contract.
func BuildContract(req model.ContractRequest, cfg model.ContractTypeConfig, number string, now time.Time) *model.Contract {
	data := req.ContractData
	c := &model.Contract{
		ID:             uuid.New().String(),
		ContractNumber: number,
		Tenant:         req.Tenant,
		ContractType:   req.ContractType,
		FirstPartyID:   lookupString(data, "first_party_id", "firstPartyId"),
		SecondPartyID:  lookupString(data, "second_party_id", "secondPartyId"),
		PromoterID:     lookupString(data, "promoter_id", "promoterId"),
		StartDate:      lookupString(data, "start_date", "startDate"),
		EndDate:        lookupString(data, "end_date", "endDate"),
		Title:          lookupString(data, "title", "contract_title"),
		Currency:       strings.ToUpper(lookupString(data, "currency")),
		Status:         model.StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if c.Title == "" {
		c.Title = cfg.Name
	}
	if raw, ok := contractValue(cfg, data); ok {
		if v, err := toFloat(raw); err == nil {
			c.Value = &v
		}
	}
	if c.Currency == "" && c.Value != nil && len(cfg.AllowedCurrencies) > 0 {
		c.Currency = cfg.AllowedCurrencies[0]
	}
	return c
}
