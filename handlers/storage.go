package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"shopline/services/storage"
	"shopline/utils"

	"github.com/gin-gonic/gin"
)

// StorageHandler exposes file uploads over HTTP.
type StorageHandler struct {
	Service storage.StorageService
}

func NewStorageHandler(svc storage.StorageService) *StorageHandler {
	return &StorageHandler{Service: svc}
}

// UploadFile accepts a multipart "file" field, stages it to a temp
// path, and uploads it under the caller's folder.
func (h *StorageHandler) UploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "A file is required", err.Error())
		return
	}

	tmpPath := filepath.Join(os.TempDir(), filepath.Base(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to stage uploaded file", err.Error())
		return
	}
	defer os.Remove(tmpPath)

	folder := "uploads/" + c.GetString("userID")
	publicID, err := h.Service.UploadFile(c.Request.Context(), tmpPath, folder)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to upload file", err.Error())
		return
	}

	url, err := h.Service.GetDownloadURL(c.Request.Context(), publicID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to resolve file URL", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "File uploaded successfully",
		"publicId": publicID,
		"url":      url,
	})
}

// GetFileURL resolves a stored file's public URL.
func (h *StorageHandler) GetFileURL(c *gin.Context) {
	publicID := c.Query("publicId")
	if publicID == "" {
		utils.JSONError(c, http.StatusBadRequest, "publicId is required", "")
		return
	}

	url, err := h.Service.GetDownloadURL(c.Request.Context(), publicID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to resolve file URL", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// DeleteFile removes a stored file by public ID.
func (h *StorageHandler) DeleteFile(c *gin.Context) {
	publicID := c.Query("publicId")
	if publicID == "" {
		utils.JSONError(c, http.StatusBadRequest, "publicId is required", "")
		return
	}

	if err := h.Service.DeleteFile(c.Request.Context(), publicID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to delete file", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "File deleted successfully"})
}
