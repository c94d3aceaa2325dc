package handlers

import (
	"net/http"

	"shopline/models"
	"shopline/services/shop"
	"shopline/utils"

	"github.com/gin-gonic/gin"
)

// TimeSlotHandler exposes slot window management over HTTP.
type TimeSlotHandler struct {
	Service shop.ShopService
}

func NewTimeSlotHandler(svc shop.ShopService) *TimeSlotHandler {
	return &TimeSlotHandler{Service: svc}
}

// CreateTimeSlots generates slots for a shop and date.
func (h *TimeSlotHandler) CreateTimeSlots(c *gin.Context) {
	var window models.SlotWindow
	if err := c.ShouldBindJSON(&window); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing required fields", err.Error())
		return
	}

	count, err := h.Service.CreateTimeSlots(c.Request.Context(), c.Param("shopId"), c.Param("date"), window)
	if err != nil {
		respondShopError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Time slots created successfully", "count": count})
}

// GetTimeSlots lists a shop's slots for a date.
func (h *TimeSlotHandler) GetTimeSlots(c *gin.Context) {
	slots, err := h.Service.ListTimeSlots(c.Request.Context(), c.Param("shopId"), c.Param("date"))
	if err != nil {
		respondShopError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

// UpdateTimeSlots regenerates a shop's slot window for a date,
// cascading removal of slots that fall outside the new window.
func (h *TimeSlotHandler) UpdateTimeSlots(c *gin.Context) {
	var window models.SlotWindow
	if err := c.ShouldBindJSON(&window); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing required fields", err.Error())
		return
	}

	count, err := h.Service.RegenerateTimeSlots(c.Request.Context(), c.Param("shopId"), c.Param("date"), window)
	if err != nil {
		respondShopError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Time slots updated successfully", "count": count})
}
