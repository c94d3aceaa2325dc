package handlers

import (
	"errors"
	"net/http"

	"shopline/services/user"
	"shopline/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes account management over HTTP.
type UserHandler struct {
	Service user.UserService
}

func NewUserHandler(svc user.UserService) *UserHandler {
	return &UserHandler{Service: svc}
}

type sanitizedUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Register creates an account and returns a signed token.
func (h *UserHandler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "All fields (email, password, name) are required", err.Error())
		return
	}

	token, u, err := h.Service.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"token":   token,
		"user":    sanitizedUser{ID: u.ID, Name: u.Name, Email: u.Email},
	})
}

// Login verifies credentials and returns a signed token.
func (h *UserHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Email and password are required", err.Error())
		return
	}

	token, u, err := h.Service.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  sanitizedUser{ID: u.ID, Name: u.Name, Email: u.Email},
	})
}

// GetProfile returns the authenticated user's account.
func (h *UserHandler) GetProfile(c *gin.Context) {
	u, err := h.Service.GetUserByID(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": sanitizedUser{ID: u.ID, Name: u.Name, Email: u.Email}})
}

// UpdateProfile renames the authenticated user's account.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Name is required", err.Error())
		return
	}

	u, err := h.Service.UpdateUser(c.Request.Context(), c.GetString("userID"), req.Name)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    sanitizedUser{ID: u.ID, Name: u.Name, Email: u.Email},
	})
}

// ResetPassword replaces the credential for an existing account.
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Email       string `json:"email"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Email and new password are required", err.Error())
		return
	}

	if err := h.Service.ResetPassword(c.Request.Context(), req.Email, req.NewPassword); err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}

// UpdateFCMToken stores the caller's device push token.
func (h *UserHandler) UpdateFCMToken(c *gin.Context) {
	var req struct {
		FCMToken string `json:"fcmToken"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "FCM token is required", err.Error())
		return
	}

	if err := h.Service.UpdateFCMToken(c.Request.Context(), c.GetString("userID"), req.FCMToken); err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "FCM token updated successfully"})
}

// DeleteAccount removes the authenticated user's account.
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	if err := h.Service.DeleteUser(c.Request.Context(), c.GetString("userID")); err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func respondUserError(c *gin.Context, err error) {
	var (
		validationErr *user.ValidationError
		notFoundErr   *user.NotFoundError
		conflictErr   *user.ConflictError
		authErr       *user.AuthError
	)
	switch {
	case errors.As(err, &validationErr):
		utils.JSONError(c, http.StatusBadRequest, validationErr.Message, "")
	case errors.As(err, &notFoundErr):
		utils.JSONError(c, http.StatusNotFound, notFoundErr.Message, "")
	case errors.As(err, &conflictErr):
		utils.JSONError(c, http.StatusConflict, conflictErr.Message, "")
	case errors.As(err, &authErr):
		utils.JSONError(c, http.StatusUnauthorized, authErr.Message, "")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error", err.Error())
	}
}
