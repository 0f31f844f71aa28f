package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ohmegaloceros-boop/freefoodfinder/internal/models"
	"github.com/ohmegaloceros-boop/freefoodfinder/internal/service"
	"github.com/ohmegaloceros-boop/freefoodfinder/internal/store"
)

// LocationHandler handles location listing and lookup requests
type LocationHandler struct {
	service LocationService
}

// Service interface for dependency injection
type LocationService interface {
	List(ctx context.Context, typeParam, boundsParam string) ([]models.Location, error)
	Get(ctx context.Context, id string) (*models.Location, error)
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(svc LocationService) *LocationHandler {
	return &LocationHandler{service: svc}
}

// List handles GET /api/locations requests
//
//	@Summary	List locations filtered by category and viewport bounds
//	@Param		type	query	string	false	"category: foodbank, community_fridge or food_box"
//	@Param		bounds	query	string	false	"viewport as north,south,east,west"
//	@Produce	json
//	@Success	200	{array}	models.Location
//	@Router		/api/locations [get]
func (h *LocationHandler) List(c *gin.Context) {
	locations, err := h.service.List(c.Request.Context(), c.Query("type"), c.Query("bounds"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown location type"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if locations == nil {
		locations = []models.Location{}
	}
	c.JSON(http.StatusOK, locations)
}

// Get handles GET /api/locations/:id requests
//
//	@Summary	Fetch a single location by id
//	@Param		id	path	string	true	"location id"
//	@Produce	json
//	@Success	200	{object}	models.Location
//	@Failure	404	{object}	map[string]string
//	@Router		/api/locations/{id} [get]
func (h *LocationHandler) Get(c *gin.Context) {
	location, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Location not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, location)
}
