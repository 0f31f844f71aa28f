package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ohmegaloceros-boop/freefoodfinder/internal/service"
)

// SubmissionHandler handles location suggestion intake
type SubmissionHandler struct {
	service SubmissionService
}

// Service interface for dependency injection
type SubmissionService interface {
	Submit(ctx context.Context, in service.SubmissionInput) (string, error)
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(svc SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{service: svc}
}

// Create handles POST /api/submissions requests
//
//	@Summary	Submit a new location suggestion for review
//	@Accept		json
//	@Param		submission	body	service.SubmissionInput	true	"proposed location"
//	@Produce	json
//	@Success	201	{object}	map[string]string
//	@Failure	400	{object}	map[string]string
//	@Router		/api/submissions [post]
func (h *SubmissionHandler) Create(c *gin.Context) {
	var in service.SubmissionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id, err := h.service.Submit(c.Request.Context(), in)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Reason, "field": vErr.Field})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Submission received and pending review",
		"id":      id,
	})
}
