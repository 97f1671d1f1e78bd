package controller

import (
	"errors"
	"net/http"

	"github.com/autonear/autonear-backend/internal/app/service"
	apperrors "github.com/autonear/autonear-backend/internal/errors"
	"github.com/autonear/autonear-backend/internal/middleware"
	ws "github.com/autonear/autonear-backend/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type ChatController struct {
	chatService service.ChatService
	hub         *ws.Hub
	upgrader    websocket.Upgrader
}

// NewChatController accepts websocket upgrades from the given origins only.
// Requests without an Origin header (non-browser clients) are allowed.
func NewChatController(chatService service.ChatService, hub *ws.Hub, allowedOrigins []string) *ChatController {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &ChatController{
		chatService: chatService,
		hub:         hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed[origin] || allowed["*"]
			},
		},
	}
}

type SendMessageRequest struct {
	Content string `json:"content"`
}

// GET /api/v1/service-requests/:id/messages
func (ctrl *ChatController) GetMessages(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	email, ok := verifiedEmail(c)
	if !ok {
		return
	}

	messages, err := ctrl.chatService.GetMessages(id, email)
	if err != nil {
		ctrl.respondChatError(c, err, id)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"count":    len(messages),
	})
}

// POST /api/v1/service-requests/:id/messages
func (ctrl *ChatController) SendMessage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	email, ok := verifiedEmail(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ChatEmptyMessage, "Message content is required")
		return
	}

	msg, err := ctrl.chatService.SendMessage(id, email, req.Content)
	if err != nil {
		ctrl.respondChatError(c, err, id)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

// WebSocketHandler upgrades an authenticated request. Browsers cannot set
// headers on an upgrade, so the token arrives as a query parameter; the
// request logger redacts it.
// GET /api/v1/chat/ws?token=
func (ctrl *ChatController) WebSocketHandler(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	email, ok := verifiedEmail(c)
	if !ok {
		return
	}

	conn, err := ctrl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("Failed to upgrade to WebSocket", err)
		return
	}

	client := ws.NewClient(ctrl.hub, &ws.Conn{Conn: conn}, email)
	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()

	log.Info("WebSocket connection established", map[string]interface{}{
		"email": email,
	})
}

func (ctrl *ChatController) respondChatError(c *gin.Context, err error, requestID uint) {
	switch {
	case errors.Is(err, service.ErrServiceRequestNotFound):
		apperrors.NotFound(c, apperrors.ServiceRequestNotFound, service.MsgRequestNotFound)
	case errors.Is(err, service.ErrChatForbidden):
		apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzNotInChat, "You are not part of this conversation")
	case errors.Is(err, service.ErrEmptyMessage):
		apperrors.BadRequest(c, apperrors.ChatEmptyMessage, "Message content is required")
	case errors.Is(err, service.ErrMessageTooLong):
		apperrors.BadRequest(c, apperrors.ChatMessageTooLong, "Message is too long")
	default:
		middleware.GetLoggerFromContext(c).Error("Chat operation failed", err, map[string]interface{}{
			"request_id": requestID,
		})
		apperrors.InternalError(c, "")
	}
}
