package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AbuAli85/Contract-Management-System-sub011/model"
	"github.com/AbuAli85/Contract-Management-System-sub011/pkg/logger"
)

// State is a step of a generation request.
type State string

const (
	StateReceived        State = "received"
	StateValidated       State = "validated"
	StatePersisted       State = "persisted"
	StateDispatched      State = "dispatched"
	StateDispatchSkipped State = "dispatch_skipped"
	StateDispatchFailed  State = "dispatch_failed"
	StateDone            State = "done"
	StateRejected        State = "rejected"
)

// ErrPersistence wraps datastore failures while creating a contract.
var ErrPersistence = errors.New("contract persistence failed")

// RejectedError reports a request stopped before persistence.
type RejectedError struct {
	ContractType string
	Validation   model.ValidationResult
	NotFound     bool
}

func (e *RejectedError) Error() string {
	if e.NotFound {
		return fmt.Sprintf("template configuration not found for contract type %q", e.ContractType)
	}
	return fmt.Sprintf("contract data failed validation: %s", strings.Join(e.Validation.Errors, "; "))
}

// TemplateLookup resolves contract type configurations.
type TemplateLookup interface {
	Lookup(id string) (model.ContractTypeConfig, error)
}

// Dispatcher delivers an assembled payload to the automation service.
type Dispatcher interface {
	Dispatch(ctx context.Context, payload model.WebhookPayload) model.DispatchResult
}

// StorageLinker turns a storage location id into a browsable link.
type StorageLinker interface {
	FolderURL(locationID string) string
}

// GenerationResult is returned for every request that created a contract.
type GenerationResult struct {
	Contract    *model.Contract        `json:"contract"`
	Validation  model.ValidationResult `json:"validation"`
	Dispatch    *model.DispatchResult  `json:"dispatch"`
	StorageURL  string                 `json:"storage_url,omitempty"`
	State       State                  `json:"state"`
	Transitions []State                `json:"transitions"`
	Warnings    []string               `json:"warnings"`
}

func (r *GenerationResult) advance(s State) {
	r.State = s
	r.Transitions = append(r.Transitions, s)
}

// GeneratorDeps are the collaborators of a Generator. Storage may be nil.
type GeneratorDeps struct {
	Templates  TemplateLookup
	Enricher   *Enricher
	Assembler  *Assembler
	Dispatcher Dispatcher
	Contracts  ContractRepository
	Storage    StorageLinker
}

// Generator runs the validate, enrich, persist, dispatch sequence.
type Generator struct {
	deps GeneratorDeps
	now  func() time.Time
}

func NewGenerator(deps GeneratorDeps) *Generator {
	if deps.Enricher == nil {
		deps.Enricher = NewEnricher(nil, nil)
	}
	if deps.Assembler == nil {
		deps.Assembler = NewAssembler("", "")
	}
	if deps.Dispatcher == nil {
		deps.Dispatcher = NewAutomationClient(nil)
	}
	return &Generator{deps: deps, now: time.Now}
}

// Generate processes one request. It returns *RejectedError when the type
// is unknown or the data is invalid, and an error wrapping ErrPersistence
// when the contract could not be stored. Dispatch problems never produce
// an error; they are reported in the result.
func (g *Generator) Generate(ctx context.Context, req model.ContractRequest) (*GenerationResult, error) {
	// A started generation runs to completion even if the caller goes away.
	ctx = context.WithoutCancel(ctx)
	ctx = logger.With(ctx, logger.ContractTypeKey, req.ContractType)
	if req.ContractData == nil {
		req.ContractData = map[string]any{}
	}

	cfg, err := g.deps.Templates.Lookup(req.ContractType)
	if err != nil {
		logger.Info(ctx, "generation rejected, unknown contract type", "error", err)
		return nil, &RejectedError{
			ContractType: req.ContractType,
			Validation:   RejectUnknownType(req.ContractType),
			NotFound:     true,
		}
	}

	validation := Validate(cfg, req.ContractData)
	if !validation.IsValid {
		logger.Info(ctx, "generation rejected, validation failed", "errors", validation.Errors)
		return nil, &RejectedError{ContractType: req.ContractType, Validation: validation}
	}

	result := &GenerationResult{
		Validation:  validation,
		Transitions: []State{StateReceived},
	}
	result.advance(StateValidated)

	enriched := g.deps.Enricher.Enrich(ctx, req.ContractData)
	result.Warnings = enriched.Warnings

	now := g.now()
	number := lookupString(req.ContractData, "contract_number", "contractNumber")
	if number == "" {
		number = GenerateContractNumber(now)
	}

	contract := BuildContract(req, cfg, number, now)
	stored, err := g.deps.Contracts.Create(ctx, contract)
	if err != nil {
		logger.Error(ctx, "failed to create contract", "contract_number", number, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	// The insert only returns identifiers and bookkeeping columns.
	contract.ID = stored.ID
	contract.ContractNumber = stored.ContractNumber
	contract.Status = stored.Status
	contract.CreatedAt = stored.CreatedAt
	contract.UpdatedAt = stored.UpdatedAt
	result.Contract = contract
	result.advance(StatePersisted)

	ctx = logger.With(ctx, logger.ContractIDKey, contract.ID)
	logger.Info(ctx, "contract created", "contract_number", contract.ContractNumber)

	if hint := cfg.StorageHint; hint != nil && g.deps.Storage != nil {
		result.StorageURL = g.deps.Storage.FolderURL(hint.LocationID)
	}

	if !req.TriggerDispatch {
		result.advance(StateDispatchSkipped)
		result.advance(StateDone)
		return result, nil
	}

	payload := g.deps.Assembler.Assemble(cfg, enriched.Data, contract)
	dispatch := g.deps.Dispatcher.Dispatch(ctx, payload)
	result.Dispatch = &dispatch

	if !dispatch.Success {
		logger.Warn(ctx, "contract dispatch failed, contract stays pending",
			"status_code", dispatch.StatusCode,
			"error", dispatch.ErrorMessage,
		)
		result.advance(StateDispatchFailed)
		result.advance(StateDone)
		return result, nil
	}

	result.advance(StateDispatched)
	if err := g.deps.Contracts.UpdateStatus(ctx, contract.ID, model.StatusProcessing, ""); err != nil {
		logger.Error(ctx, "failed to mark contract processing", "error", err)
	} else {
		contract.Status = model.StatusProcessing
	}
	logger.Info(ctx, "contract dispatched", "status_code", dispatch.StatusCode)

	result.advance(StateDone)
	return result, nil
}
