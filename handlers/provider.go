package handlers

import (
	"net/http"
	"strconv"

	"barberqueue/models"
	"barberqueue/services/provider"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProviderHandler struct {
	Service provider.ProviderService
}

func NewProviderHandler(svc provider.ProviderService) *ProviderHandler {
	return &ProviderHandler{Service: svc}
}

// RegisterProviderHandler handles POST /api/providers/register.
func (h *ProviderHandler) RegisterProviderHandler(c *gin.Context) {
	logger := getLogger(c)
	var reg models.ProviderRegistration
	if err := c.ShouldBindJSON(&reg); err != nil {
		logger.Warn("Invalid provider registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	p, err := h.Service.RegisterProvider(c.Request.Context(), reg)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Info("Provider registered", zap.String("providerId", p.ID))
	c.JSON(http.StatusCreated, p)
}

// UpdateServicesHandler handles PUT /api/providers/:id/services.
func (h *ProviderHandler) UpdateServicesHandler(c *gin.Context) {
	var req struct {
		Services []models.Service `json:"services"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	p, err := h.Service.UpdateServices(c.Request.Context(), c.Param("id"), req.Services)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetProviderByIDHandler handles GET /api/providers/id/:id.
func (h *ProviderHandler) GetProviderByIDHandler(c *gin.Context) {
	p, err := h.Service.GetProviderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// NearbyProvidersHandler handles GET /api/providers/nearby?lat=&lng=&radius=.
func (h *ProviderHandler) NearbyProvidersHandler(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng are required"})
		return
	}
	radius := provider.DefaultNearbyRadius
	if raw := c.Query("radius"); raw != "" {
		r, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "radius must be a number of metres"})
			return
		}
		radius = r
	}

	providers, err := h.Service.GetNearbyProviders(c.Request.Context(), lat, lng, radius)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": providers})
}
