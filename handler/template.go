package handler

import (
	"errors"
	"net/http"

	"github.com/AbuAli85/Contract-Management-System-sub011/registry"
	"github.com/gin-gonic/gin"
)

type TemplateHandler struct {
	registry *registry.Registry
}

func NewTemplateHandler(reg *registry.Registry) *TemplateHandler {
	return &TemplateHandler{registry: reg}
}

// List returns every supported contract type
func (h *TemplateHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": h.registry.List()})
}

// Get returns the configuration of one contract type
func (h *TemplateHandler) Get(c *gin.Context) {
	cfg, err := h.registry.Lookup(c.Param("id"))
	if errors.Is(err, registry.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// Blueprint describes the webhook payload and automation steps of a
// contract type
func (h *TemplateHandler) Blueprint(c *gin.Context) {
	bp, err := h.registry.Blueprint(c.Param("id"))
	if errors.Is(err, registry.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}
	c.JSON(http.StatusOK, bp)
}
