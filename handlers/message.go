package handlers

import (
	"errors"
	"net/http"

	"shopline/services/message"
	"shopline/utils"

	"github.com/gin-gonic/gin"
)

// MessageHandler exposes conversation threads over HTTP.
type MessageHandler struct {
	Service message.MessageService
}

func NewMessageHandler(svc message.MessageService) *MessageHandler {
	return &MessageHandler{Service: svc}
}

// GetMessages returns a conversation's messages in send order.
func (h *MessageHandler) GetMessages(c *gin.Context) {
	messages, err := h.Service.GetMessages(c.Request.Context(), c.Param("conversationId"))
	if err != nil {
		respondMessageError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// SendMessage appends a message to a conversation.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var req struct {
		Content       string `json:"content"`
		AttachmentURL string `json:"attachmentUrl"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Content or attachmentUrl is required", err.Error())
		return
	}

	msg, err := h.Service.SendMessage(c.Request.Context(), c.Param("conversationId"), c.GetString("userID"), req.Content, req.AttachmentURL)
	if err != nil {
		respondMessageError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Message sent successfully", "data": msg})
}

// MarkMessageRead stamps the read time for the caller.
func (h *MessageHandler) MarkMessageRead(c *gin.Context) {
	if err := h.Service.MarkRead(c.Request.Context(), c.Param("messageId"), c.GetString("userID")); err != nil {
		respondMessageError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message marked as read"})
}

func respondMessageError(c *gin.Context, err error) {
	var (
		validationErr *message.ValidationError
		notFoundErr   *message.NotFoundError
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
