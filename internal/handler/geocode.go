package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ohmegaloceros-boop/freefoodfinder/internal/geocode"
	"github.com/ohmegaloceros-boop/freefoodfinder/internal/service"
)

// GeocodeHandler handles forward and reverse geocoding requests
type GeocodeHandler struct {
	service GeocodeService
}

// Service interface for dependency injection
type GeocodeService interface {
	Search(ctx context.Context, query string) ([]geocode.Result, error)
	Reverse(ctx context.Context, lat, lng float64) (*geocode.Result, error)
}

// NewGeocodeHandler creates a new geocode handler
func NewGeocodeHandler(svc GeocodeService) *GeocodeHandler {
	return &GeocodeHandler{service: svc}
}

// Search handles GET /api/geocode requests
//
//	@Summary	Resolve a free-text address to candidate coordinates
//	@Param		q	query	string	true	"address text"
//	@Produce	json
//	@Success	200	{array}	geocode.Result
//	@Router		/api/geocode [get]
func (h *GeocodeHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'q'"})
		return
	}

	results, err := h.service.Search(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, service.ErrUpstream) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "geocoding service unavailable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if results == nil {
		results = []geocode.Result{}
	}
	c.JSON(http.StatusOK, results)
}

// Reverse handles GET /api/reverse-geocode requests
//
//	@Summary	Resolve coordinates to the nearest known address
//	@Param		lat	query	number	true	"latitude"
//	@Param		lon	query	number	true	"longitude"
//	@Produce	json
//	@Success	200	{object}	geocode.Result
//	@Router		/api/reverse-geocode [get]
func (h *GeocodeHandler) Reverse(c *gin.Context) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")

	if latStr == "" || lonStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameters 'lat' and 'lon'"})
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid latitude format"})
		return
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid longitude format"})
		return
	}

	result, err := h.service.Reverse(c.Request.Context(), lat, lon)
	if err != nil {
		if errors.Is(err, service.ErrUpstream) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "geocoding service unavailable"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinates"})
		return
	}

	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no address found near the specified coordinates"})
		return
	}

	c.JSON(http.StatusOK, result)
}
