package handlers

import (
	"errors"
	"net/http"

	"shopline/services/shop"
	"shopline/utils"

	"github.com/gin-gonic/gin"
)

// ShopHandler exposes shop management over HTTP.
type ShopHandler struct {
	Service shop.ShopService
}

func NewShopHandler(svc shop.ShopService) *ShopHandler {
	return &ShopHandler{Service: svc}
}

// CreateShop registers a new shop.
func (h *ShopHandler) CreateShop(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Location string `json:"location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Name and location are required", err.Error())
		return
	}

	created, err := h.Service.CreateShop(c.Request.Context(), req.Name, req.Location)
	if err != nil {
		respondShopError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Shop created successfully", "shop": created})
}

// GetAllShops lists shops with their inventory.
func (h *ShopHandler) GetAllShops(c *gin.Context) {
	shops, err := h.Service.ListShops(c.Request.Context())
	if err != nil {
		respondShopError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shops": shops})
}

// GetShopByID returns one shop.
func (h *ShopHandler) GetShopByID(c *gin.Context) {
	s, err := h.Service.GetShop(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondShopError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shop": s})
}

// UpdateShop renames or relocates a shop.
func (h *ShopHandler) UpdateShop(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Location string `json:"location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Name and location are required", err.Error())
		return
	}

	updated, err := h.Service.UpdateShop(c.Request.Context(), c.Param("id"), req.Name, req.Location)
	if err != nil {
		respondShopError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shop updated successfully", "shop": updated})
}

// DeleteShop removes a shop.
func (h *ShopHandler) DeleteShop(c *gin.Context) {
	if err := h.Service.DeleteShop(c.Request.Context(), c.Param("id")); err != nil {
		respondShopError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shop deleted successfully"})
}

func respondShopError(c *gin.Context, err error) {
	var (
		validationErr *shop.ValidationError
		notFoundErr   *shop.NotFoundError
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
