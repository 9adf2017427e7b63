package handler

import (
	"net/http"

	"github.com/erp/catalog/internal/interfaces/http/dto"
	"github.com/erp/catalog/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// OK sends a 200 envelope
func (h *BaseHandler) OK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, dto.NewEnvelope(http.StatusOK, message, data))
}

// Created sends a 201 envelope
func (h *BaseHandler) Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, dto.NewEnvelope(http.StatusCreated, message, data))
}

// Fail records err for the error handler middleware
func (h *BaseHandler) Fail(c *gin.Context, err error) {
	_ = c.Error(err)
}

// Bind decodes and validates the JSON body, recording the failure if any
func (h *BaseHandler) Bind(c *gin.Context, obj any) bool {
	if err := middleware.BindJSON(c, obj); err != nil {
		h.Fail(c, err)
		return false
	}
	return true
}
