package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/AbuAli85/Contract-Management-System-sub011/middleware"
	"github.com/AbuAli85/Contract-Management-System-sub011/model"
	"github.com/AbuAli85/Contract-Management-System-sub011/pkg/logger"
	"github.com/AbuAli85/Contract-Management-System-sub011/service"
	"github.com/gin-gonic/gin"
)

type ContractHandler struct {
	generator *service.Generator
	contracts service.ContractRepository
}

func NewContractHandler(generator *service.Generator, contracts service.ContractRepository) *ContractHandler {
	return &ContractHandler{
		generator: generator,
		contracts: contracts,
	}
}

// GenerateRequest is the body of a generation request. Dispatch is
// triggered unless trigger_dispatch is explicitly false.
type GenerateRequest struct {
	ContractType    string         `json:"contract_type" binding:"required"`
	ContractData    map[string]any `json:"contract_data"`
	TriggerDispatch *bool          `json:"trigger_dispatch"`
}

// Generate validates, stores and dispatches a new contract
func (h *ContractHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: contract_type is required"})
		return
	}

	trigger := true
	if req.TriggerDispatch != nil {
		trigger = *req.TriggerDispatch
	}

	result, err := h.generator.Generate(c.Request.Context(), model.ContractRequest{
		ContractType:    req.ContractType,
		ContractData:    req.ContractData,
		TriggerDispatch: trigger,
		Tenant:          middleware.GetTenant(c),
	})
	if err != nil {
		var rejected *service.RejectedError
		switch {
		case errors.As(err, &rejected):
			msg := "Contract data failed validation"
			if rejected.NotFound {
				msg = "Unknown contract type"
			}
			c.JSON(http.StatusBadRequest, gin.H{
				"error":    msg,
				"errors":   rejected.Validation.Errors,
				"warnings": rejected.Validation.Warnings,
			})
		case errors.Is(err, service.ErrDuplicateContractNumber):
			c.JSON(http.StatusConflict, gin.H{"error": "Contract number already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create contract"})
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}

// List returns all contracts for the current tenant
func (h *ContractHandler) List(c *gin.Context) {
	tenant := middleware.GetTenant(c)
	contracts, err := h.contracts.ListByTenant(c.Request.Context(), tenant)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to list contracts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list contracts"})
		return
	}

	result := make([]gin.H, len(contracts))
	for i, contract := range contracts {
		result[i] = gin.H{
			"id":              contract.ID,
			"contract_number": contract.ContractNumber,
			"contract_type":   contract.ContractType,
			"title":           contract.Title,
			"status":          contract.Status,
			"created_at":      contract.CreatedAt.Format(time.RFC3339),
			"updated_at":      contract.UpdatedAt.Format(time.RFC3339),
		}
	}

	c.JSON(http.StatusOK, gin.H{"contracts": result})
}

// Get returns a single contract
func (h *ContractHandler) Get(c *gin.Context) {
	contract, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, contract)
}

// GetStatus returns the processing status of a contract
func (h *ContractHandler) GetStatus(c *gin.Context) {
	contract, ok := h.load(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           contract.ID,
		"status":       contract.Status,
		"document_url": contract.DocumentURL,
		"error_msg":    contract.ErrorMsg,
	})
}

// Delete deletes a contract
func (h *ContractHandler) Delete(c *gin.Context) {
	contract, ok := h.load(c)
	if !ok {
		return
	}

	if err := h.contracts.Delete(c.Request.Context(), contract.ID); err != nil && !errors.Is(err, service.ErrContractNotFound) {
		logger.Error(c.Request.Context(), "failed to delete contract", "contract_id", contract.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contract"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contract deleted"})
}

// load fetches the contract named in the path, writing a 404 when it does
// not exist or belongs to another tenant.
func (h *ContractHandler) load(c *gin.Context) (*model.Contract, bool) {
	contract, err := h.contracts.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, service.ErrContractNotFound) || (err == nil && contract.Tenant != middleware.GetTenant(c)) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		return nil, false
	}
	if err != nil {
		logger.Error(c.Request.Context(), "failed to get contract", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get contract"})
		return nil, false
	}
	return contract, true
}
