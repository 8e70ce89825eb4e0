package handler

import (
	"errors"
	"net/http"

	"github.com/AbuAli85/Contract-Management-System-sub011/model"
	"github.com/AbuAli85/Contract-Management-System-sub011/pkg/logger"
	"github.com/AbuAli85/Contract-Management-System-sub011/service"
	"github.com/gin-gonic/gin"
)

// CallbackHandler receives completion reports from the automation service.
type CallbackHandler struct {
	contracts service.ContractRepository
	secret    string
}

func NewCallbackHandler(contracts service.ContractRepository, secret string) *CallbackHandler {
	return &CallbackHandler{
		contracts: contracts,
		secret:    secret,
	}
}

type CallbackRequest struct {
	Status      string `json:"status" binding:"required,oneof=completed failed"`
	DocumentURL string `json:"document_url"`
	Error       string `json:"error"`
}

// HandleCallback records the outcome of an automation run
func (h *CallbackHandler) HandleCallback(c *gin.Context) {
	contractID := c.Query("contract_id")
	claims, err := service.VerifyCallbackToken(h.secret, c.Query("token"))
	if err != nil || claims.Subject != contractID {
		logger.Warn(c.Request.Context(), "rejected automation callback", "contract_id", contractID, "error", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid callback token"})
		return
	}

	var req CallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	ctx := logger.With(c.Request.Context(), logger.ContractIDKey, contractID)
	switch req.Status {
	case "completed":
		err = h.contracts.SetDocumentURL(ctx, contractID, req.DocumentURL)
	case "failed":
		msg := req.Error
		if msg == "" {
			msg = "document generation failed"
		}
		err = h.contracts.UpdateStatus(ctx, contractID, model.StatusError, msg)
	}

	if errors.Is(err, service.ErrContractNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		return
	}
	if err != nil {
		logger.Error(ctx, "failed to record automation callback", "status", req.Status, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record callback"})
		return
	}

	logger.Info(ctx, "automation callback recorded", "status", req.Status)
	c.JSON(http.StatusOK, gin.H{"message": "Callback received"})
}
