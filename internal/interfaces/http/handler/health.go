package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/spicebox/packing-summary/internal/interfaces/http/dto"
)

// HealthHandler answers liveness checks
type HealthHandler struct {
	BaseHandler
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Health returns a fixed payload without contacting the store.
//
//	GET /api/health
func (h *HealthHandler) Health(c *gin.Context) {
	h.Success(c, dto.NewHealthResponse())
}
