package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/salonat-app/salon-api/internal/assistant"
	"github.com/salonat-app/salon-api/internal/httperr"
	"github.com/salonat-app/salon-api/internal/httpresp"
	"github.com/salonat-app/salon-api/internal/middleware"
)

const maxChatMessageLen = 1000

type ChatHandler struct {
	assistant *assistant.Service
}

func NewChatHandler(svc *assistant.Service) *ChatHandler {
	return &ChatHandler{assistant: svc}
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

func (h *ChatHandler) Consult(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextCustomerID).(uint)

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "الرسالة مطلوبة.")
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		httperr.BadRequest(c, "empty_message", "الرسالة فارغة.")
		return
	}
	if len(message) > maxChatMessageLen {
		httperr.BadRequest(c, "message_too_long", "الرسالة طويلة جداً.")
		return
	}

	reply, err := h.assistant.Consult(c.Request.Context(), customerID, message)
	if err != nil {
		httperr.Internal(c, "chat_failed", "تعذر معالجة الرسالة.")
		return
	}

	httpresp.OK(c, reply)
}

func (h *ChatHandler) Reset(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextCustomerID).(uint)
	h.assistant.Reset(customerID)
	httpresp.OK(c, gin.H{"reset": true})
}
