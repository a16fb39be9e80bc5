package api

import (
	"errors"
	"net/http"

	reqdto "bundlemart-api/internal/handler/dto/request"
	resdto "bundlemart-api/internal/handler/dto/response"
	"bundlemart-api/internal/usecase/commands"
	"bundlemart-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BundleHandler struct {
	bundleCommands commands.BundleCommands
	bundleQueries  queries.BundleQueries
}

func NewBundleHandler(bundleCommands commands.BundleCommands, bundleQueries queries.BundleQueries) *BundleHandler {
	return &BundleHandler{
		bundleCommands: bundleCommands,
		bundleQueries:  bundleQueries,
	}
}

// @Summary List bundles
// @Description List in-stock data bundles, optionally filtered by network
// @Tags bundles
// @Produce json
// @Param network query string false "Network filter (mtn, vodafone, at)"
// @Success 200 {array} resdto.BundleResponse
// @Failure 400 {object} map[string]string
// @Router /bundles [get]
func (h *BundleHandler) ListBundles(c *gin.Context) {
	var networkFilter *string
	if network := c.Query("network"); network != "" {
		networkFilter = &network
	}

	views, err := h.bundleQueries.ListAvailable(c.Request.Context(), networkFilter)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidNetworkFilter):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unknown network filter",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBundleViews(views))
}

// @Summary Set bundle availability
// @Description Mark a bundle in or out of stock (admin only)
// @Tags bundles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bundle ID"
// @Param request body reqdto.SetBundleAvailabilityRequest true "Availability flag"
// @Success 200 {object} resdto.BundleResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bundles/{id}/availability [patch]
func (h *BundleHandler) SetAvailability(c *gin.Context) {
	bundleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid bundle ID format",
		})
		return
	}

	var req reqdto.SetBundleAvailabilityRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.bundleCommands.SetAvailability(c.Request.Context(), bundleID, *req.InStock)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBundleNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Bundle not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBundleView(*view))
}
