package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"shopline/models"
	"shopline/services/inventory"
	"shopline/utils"

	"github.com/gin-gonic/gin"
)

// InventoryHandler exposes shop stock management over HTTP.
type InventoryHandler struct {
	Service inventory.InventoryService
}

func NewInventoryHandler(svc inventory.InventoryService) *InventoryHandler {
	return &InventoryHandler{Service: svc}
}

// GetInventory lists items, filtered by shopId and name, paginated.
func (h *InventoryHandler) GetInventory(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	filter := models.InventoryFilter{
		ShopID:   c.Query("shopId"),
		Name:     c.Query("name"),
		Page:     page,
		PageSize: pageSize,
	}

	items, total, err := h.Service.List(c.Request.Context(), filter)
	if err != nil {
		respondInventoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items":    items,
		"total":    total,
		"page":     filter.Page,
		"pageSize": filter.PageSize,
	})
}

// AddInventoryItem stocks a new item for a shop.
func (h *InventoryHandler) AddInventoryItem(c *gin.Context) {
	var req struct {
		ShopID   string  `json:"shopId"`
		Name     string  `json:"name"`
		Quantity int     `json:"quantity"`
		Price    float64 `json:"price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing required fields: shopId, name, quantity, price", err.Error())
		return
	}

	item, err := h.Service.Add(c.Request.Context(), req.ShopID, req.Name, req.Quantity, req.Price)
	if err != nil {
		respondInventoryError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Inventory item added successfully", "item": item})
}

// UpdateInventoryItem rewrites an item's fields.
func (h *InventoryHandler) UpdateInventoryItem(c *gin.Context) {
	var req struct {
		Name     string  `json:"name"`
		Quantity int     `json:"quantity"`
		Price    float64 `json:"price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing required fields: name, quantity, price", err.Error())
		return
	}

	item, err := h.Service.Update(c.Request.Context(), c.Param("id"), req.Name, req.Quantity, req.Price)
	if err != nil {
		respondInventoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Inventory item updated successfully", "item": item})
}

// DeleteInventoryItem removes an item.
func (h *InventoryHandler) DeleteInventoryItem(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondInventoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Inventory item deleted successfully"})
}

func respondInventoryError(c *gin.Context, err error) {
	var (
		validationErr *inventory.ValidationError
		notFoundErr   *inventory.NotFoundError
	)
	switch {
	case errors.As(err, &validationErr):
		utils.JSONError(c, http.StatusBadRequest, validationErr.Message, "")
	case errors.As(err, &notFoundErr):
		utils.JSONError(c, http.StatusNotFound, notFoundErr.Message, "")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error", err.Error())
	}
}
