package handlers

import (
	"net/http"

	"shopline/services/shop"
	"shopline/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler exposes shop availability management over HTTP.
type AvailabilityHandler struct {
	Service shop.ShopService
}

func NewAvailabilityHandler(svc shop.ShopService) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

// SetShopAvailability marks existing slots as offered by the shop.
func (h *AvailabilityHandler) SetShopAvailability(c *gin.Context) {
	var req struct {
		TimeSlotIDs []string `json:"timeSlotIds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Availability array is required", err.Error())
		return
	}

	count, err := h.Service.SetAvailability(c.Request.Context(), c.Param("shopId"), req.TimeSlotIDs)
	if err != nil {
		respondShopError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shop availability updated successfully", "count": count})
}

// GetShopAvailability returns the shop's availability with slots.
func (h *AvailabilityHandler) GetShopAvailability(c *gin.Context) {
	shopID := c.Param("shopId")
	availability, err := h.Service.GetAvailability(c.Request.Context(), shopID)
	if err != nil {
		respondShopError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shopId": shopID, "availability": availability})
}

// DeleteAvailabilitySlot withdraws one availability entry.
func (h *AvailabilityHandler) DeleteAvailabilitySlot(c *gin.Context) {
	err := h.Service.RemoveAvailability(c.Request.Context(), c.Param("shopId"), c.Param("availabilityId"))
	if err != nil {
		respondShopError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Availability slot removed successfully"})
}
