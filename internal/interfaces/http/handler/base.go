package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spicebox/packing-summary/internal/infrastructure/logger"
	"github.com/spicebox/packing-summary/internal/infrastructure/telemetry"
	"github.com/spicebox/packing-summary/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// RequestIDKey is the header carrying the request ID
const RequestIDKey = "X-Request-ID"

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString(logger.GinRequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(RequestIDKey)
}

// Success sends a 200 response with the given body
func (h *BaseHandler) Success(c *gin.Context, body any) {
	c.JSON(http.StatusOK, body)
}

// HandleError logs err and answers with the failure envelope
func (h *BaseHandler) HandleError(c *gin.Context, err error, msg string) {
	if err == nil {
		return
	}

	resp := dto.NewErrorResponse(err)
	logger.GetGinLogger(c).Error(msg,
		zap.Error(err),
		zap.String("error_code", resp.Code),
		zap.String("request_id", getRequestID(c)),
		zap.String("trace_id", telemetry.GetTraceID(c.Request.Context())),
	)
	_ = c.Error(err)

	c.JSON(dto.GetHTTPStatus(resp.Code), resp)
}

// NotFound sends a 404 response for an unknown API path
func (h *BaseHandler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.NewNotFoundResponse(c.Request.URL.Path))
}
