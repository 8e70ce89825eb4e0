package model

import (
	"time"
)

// Contract represents a generated contract record
type Contract struct {
	ID             string    `json:"id"`
	ContractNumber string    `json:"contract_number"`
	Tenant         string    `json:"tenant,omitempty"`
	ContractType   string    `json:"contract_type"`
	FirstPartyID   string    `json:"first_party_id,omitempty"`
	SecondPartyID  string    `json:"second_party_id,omitempty"`
	PromoterID     string    `json:"promoter_id,omitempty"`
	StartDate      string    `json:"start_date,omitempty"`
	EndDate        string    `json:"end_date,omitempty"`
	Title          string    `json:"title,omitempty"`
	Value          *float64  `json:"value,omitempty"`
	Currency       string    `json:"currency,omitempty"`
	Status         string    `json:"status"` // pending, processing, error
	DocumentURL    string    `json:"document_url,omitempty"`
	ErrorMsg       string    `json:"error_msg,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ContractStatus constants
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusError      = "error"
)

// ContractRequest is the caller input for one generation attempt.
type ContractRequest struct {
	ContractType    string
	ContractData    map[string]any
	TriggerDispatch bool
	Tenant          string
}

// ValidationResult is the outcome of checking a request against its
// contract type. Warnings never block generation.
type ValidationResult struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// DispatchResult describes the single call made to the automation service.
type DispatchResult struct {
	StatusCode   int       `json:"status_code"`
	Success      bool      `json:"success"`
	Timestamp    time.Time `json:"timestamp"`
	ErrorMessage string    `json:"error_message,omitempty"`
}

// EnrichedContractData is request data merged with related-entity
// attributes and resolved media slots.
type EnrichedContractData map[string]any

// WebhookPayload is the body posted to the automation service.
type WebhookPayload map[string]any
