package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthHandler_Health(t *testing.T) {
	h := NewHealthHandler()
	c, w, _ := newTestContext("/api/health")

	h.Health(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"OK","message":"Packing Summary Tool is running"}`, w.Body.String())
}
