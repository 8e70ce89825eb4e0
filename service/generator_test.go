package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/AbuAli85/Contract-Management-System-sub011/config"
	"github.com/AbuAli85/Contract-Management-System-sub011/model"
	"github.com/AbuAli85/Contract-Management-System-sub011/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRepository struct {
	*ContractStore
	createErr error
	updateErr error
}

func (r *failingRepository) Create(ctx context.Context, c *model.Contract) (*model.Contract, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	return r.ContractStore.Create(ctx, c)
}

func (r *failingRepository) UpdateStatus(ctx context.Context, id, status, errMsg string) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	return r.ContractStore.UpdateStatus(ctx, id, status, errMsg)
}

type staticLinker string

func (s staticLinker) FolderURL(locationID string) string {
	return string(s) + locationID + "/"
}

func freelanceRequest(fee any) model.ContractRequest {
	return model.ContractRequest{
		ContractType:    "freelance_service_agreement_v2",
		TriggerDispatch: true,
		Tenant:          "acme",
		ContractData: map[string]any{
			"freelancer_name":     "Ada Lovelace",
			"client_name":         "Acme LLC",
			"project_description": "Analytical engine firmware",
			"project_duration":    "3 months",
			"project_fee":         fee,
			"payment_schedule":    "monthly",
			"deliverables":        "source code",
			"currency":            "USD",
			"first_party_id":      "fp-1",
		},
	}
}

func newTestGenerator(t *testing.T, webhookURL string, repo ContractRepository) *Generator {
	t.Helper()
	reg, err := registry.Load(nil)
	require.NoError(t, err)

	return NewGenerator(GeneratorDeps{
		Templates:  reg,
		Enricher:   NewEnricher(nil, nil),
		Assembler:  NewAssembler("https://app.example.com/api/automation/callback", "cb-secret"),
		Dispatcher: NewAutomationClient(&config.AutomationConfig{WebhookURL: webhookURL}),
		Contracts:  repo,
		Storage:    staticLinker("https://files.example.com/"),
	})
}

func TestGenerateDispatchSuccess(t *testing.T) {
	var received model.WebhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	store := newContractStore(0)
	gen := newTestGenerator(t, server.URL, store)

	result, err := gen.Generate(context.Background(), freelanceRequest(4000))
	require.NoError(t, err)

	assert.True(t, result.Validation.IsValid)
	require.NotNil(t, result.Dispatch)
	assert.True(t, result.Dispatch.Success)
	assert.Equal(t, http.StatusOK, result.Dispatch.StatusCode)
	assert.Equal(t, StateDone, result.State)
	assert.Equal(t, []State{StateReceived, StateValidated, StatePersisted, StateDispatched, StateDone}, result.Transitions)
	assert.Equal(t, "https://files.example.com/freelance-contracts/", result.StorageURL)

	c := result.Contract
	assert.Equal(t, model.StatusProcessing, c.Status)
	assert.Equal(t, "fp-1", c.FirstPartyID)
	require.NotNil(t, c.Value)
	assert.Equal(t, 4000.0, *c.Value)

	stored, err := store.Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusProcessing, stored.Status)
	assert.Equal(t, "acme", stored.Tenant)

	assert.Equal(t, c.ID, received["contract_id"])
	assert.Equal(t, c.ContractNumber, received["contract_number"])
	assert.Equal(t, c.ContractNumber, received["ref_number"])
	assert.Equal(t, "freelance-contracts", received["storage_location_id"])
	assert.Equal(t, PlaceholderImageURL, received["promoter_signature"])
	assert.Contains(t, received["callback_url"], "contract_id="+c.ID)
}

func TestGenerateRejectsOutOfBoundsValue(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	store := newContractStore(0)
	gen := newTestGenerator(t, server.URL, store)

	result, err := gen.Generate(context.Background(), freelanceRequest(150000))
	assert.Nil(t, result)

	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.False(t, rejected.NotFound)
	assert.False(t, rejected.Validation.IsValid)
	assert.Contains(t, rejected.Validation.Errors, "Contract value cannot exceed 100000 USD")
	assert.Equal(t, 0, store.Count())
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestGenerateRejectsNonFiniteValue(t *testing.T) {
	store := newContractStore(0)
	gen := newTestGenerator(t, "", store)

	for _, fee := range []any{"NaN", "nan", "Infinity", "-Inf"} {
		result, err := gen.Generate(context.Background(), freelanceRequest(fee))
		assert.Nil(t, result, fee)

		var rejected *RejectedError
		require.ErrorAs(t, err, &rejected, fee)
		assert.Contains(t, rejected.Validation.Errors, "Contract value must be a number", fee)
	}
	assert.Equal(t, 0, store.Count())
}

func TestGenerateDispatchFailureKeepsContractPending(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close()

	store := newContractStore(0)
	gen := newTestGenerator(t, endpoint, store)

	result, err := gen.Generate(context.Background(), freelanceRequest(4000))
	require.NoError(t, err)

	require.NotNil(t, result.Dispatch)
	assert.False(t, result.Dispatch.Success)
	assert.NotEmpty(t, result.Dispatch.ErrorMessage)
	assert.Equal(t, model.StatusPending, result.Contract.Status)
	assert.Equal(t, []State{StateReceived, StateValidated, StatePersisted, StateDispatchFailed, StateDone}, result.Transitions)

	stored, err := store.Get(context.Background(), result.Contract.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, stored.Status)
}

func TestGenerateUnknownContractType(t *testing.T) {
	store := newContractStore(0)
	gen := newTestGenerator(t, "", store)

	req := freelanceRequest(4000)
	req.ContractType = "space_lease_agreement"

	_, err := gen.Generate(context.Background(), req)

	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.True(t, rejected.NotFound)
	assert.Equal(t, []string{"Template configuration not found for contract type 'space_lease_agreement'"}, rejected.Validation.Errors)
	assert.Equal(t, 0, store.Count())
}

func TestGenerateWithoutDispatch(t *testing.T) {
	store := newContractStore(0)
	gen := newTestGenerator(t, "http://127.0.0.1:1/unused", store)

	req := freelanceRequest(4000)
	req.TriggerDispatch = false

	result, err := gen.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, result.Dispatch)
	assert.Equal(t, []State{StateReceived, StateValidated, StatePersisted, StateDispatchSkipped, StateDone}, result.Transitions)
	assert.Equal(t, model.StatusPending, result.Contract.Status)
}

func TestGenerateDispatchNotConfigured(t *testing.T) {
	store := newContractStore(0)
	gen := newTestGenerator(t, "", store)

	result, err := gen.Generate(context.Background(), freelanceRequest(4000))
	require.NoError(t, err)
	require.NotNil(t, result.Dispatch)
	assert.False(t, result.Dispatch.Success)
	assert.Equal(t, ErrMsgNotConfigured, result.Dispatch.ErrorMessage)
	assert.Equal(t, 1, store.Count())
}

func TestGenerateKeepsCallerContractNumber(t *testing.T) {
	store := newContractStore(0)
	gen := newTestGenerator(t, "", store)

	req := freelanceRequest(4000)
	req.ContractData["contract_number"] = "CNT-CUSTOM-1"

	result, err := gen.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "CNT-CUSTOM-1", result.Contract.ContractNumber)

	_, err = gen.Generate(context.Background(), req)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, ErrDuplicateContractNumber)
}

func TestGeneratePersistenceFailure(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	repo := &failingRepository{ContractStore: newContractStore(0), createErr: errors.New("connection refused")}
	gen := newTestGenerator(t, server.URL, repo)

	result, err := gen.Generate(context.Background(), freelanceRequest(4000))
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestGenerateStatusUpdateFailureStillSucceeds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	repo := &failingRepository{ContractStore: newContractStore(0), updateErr: errors.New("deadlock detected")}
	gen := newTestGenerator(t, server.URL, repo)

	result, err := gen.Generate(context.Background(), freelanceRequest(4000))
	require.NoError(t, err)
	assert.True(t, result.Dispatch.Success)
	assert.Equal(t, model.StatusPending, result.Contract.Status)
	assert.Equal(t, StateDone, result.State)
}

func TestGenerateIgnoresCallerCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	store := newContractStore(0)
	gen := newTestGenerator(t, server.URL, store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := gen.Generate(ctx, freelanceRequest(4000))
	require.NoError(t, err)
	assert.True(t, result.Dispatch.Success)
	assert.Equal(t, model.StatusProcessing, result.Contract.Status)
}

func TestGenerateWithoutStorageHint(t *testing.T) {
	store := newContractStore(0)
	gen := newTestGenerator(t, "", store)

	req := model.ContractRequest{
		ContractType: "non_disclosure_agreement",
		Tenant:       "acme",
		ContractData: map[string]any{
			"first_party_id":                 "fp-1",
			"second_party_id":                "sp-1",
			"confidential_information_scope": "pricing",
			"start_date":                     "2026-01-01",
			"confidentiality_period":         "2 years",
		},
	}

	result, err := gen.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, result.StorageURL)
	assert.Nil(t, result.Contract.Value)
	assert.Equal(t, "Non-Disclosure Agreement", result.Contract.Title)
}
