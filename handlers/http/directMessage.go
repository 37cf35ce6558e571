package httpHandler

import (
	"net/http"

	"social-server/handlers/middleware"
	"social-server/usecases"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DirectMessageHandler struct {
	useCase *usecases.DirectMessageUseCase
	log     *zap.Logger
}

func NewDirectMessageHandler(useCase *usecases.DirectMessageUseCase, log *zap.Logger) *DirectMessageHandler {
	return &DirectMessageHandler{useCase: useCase, log: orNop(log)}
}

// Send handles POST /dm
func (h *DirectMessageHandler) Send(c *gin.Context) {
	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	msg, err := h.useCase.SendDirectMessage(c.Request.Context(), middleware.UserID(c), req.ReceiverID, req.Content)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// Conversation handles GET /dm/:userId
func (h *DirectMessageHandler) Conversation(c *gin.Context) {
	msgs, err := h.useCase.GetConversation(c.Request.Context(), middleware.UserID(c), c.Param("userId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}
