package controllers

import (
	"net/http"
	"time"

	"github.com/farouk24967/NutriVision/models"
	"github.com/farouk24967/NutriVision/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type ChatController struct {
	Hub *services.ChatHub
}

func NewChatController(hub *services.ChatHub) *ChatController {
	return &ChatController{Hub: hub}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // tighten behind ALB/CloudFront if needed
}

type ChatInput struct {
	Message string `json:"message" binding:"required"`
}

// POST /chat  { "message": "..." }
func (cc *ChatController) SendMessage(c *gin.Context) {
	email := c.GetString("email")
	var input ChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := services.Sessions.ChatReply(email, input.Message)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	msg := models.ChatMessage{
		ID:        uuid.NewString(),
		Role:      "model",
		Text:      reply,
		Timestamp: time.Now(),
	}
	cc.Hub.Push(email, msg)
	c.JSON(http.StatusOK, msg)
}

// ChatWS upgrades to a websocket; every text frame is a chat message and
// the reply is fanned out to all of the identity's open sockets.
func (cc *ChatController) ChatWS(c *gin.Context) {
	email := c.GetString("email")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := &services.WSClient{Identity: email, Conn: conn}
	cc.Hub.Register(cl)

	// ping to keep connections alive through some proxies
	go func() {
		t := time.NewTicker(25 * time.Second)
		defer t.Stop()
		for range t.C {
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				cc.Hub.Unregister(cl)
				return
			}
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			cc.Hub.Unregister(cl)
			return
		}

		reply, err := services.Sessions.ChatReply(email, string(data))
		if err != nil {
			cc.Hub.Unregister(cl)
			return
		}
		cc.Hub.Push(email, models.ChatMessage{
			ID:        uuid.NewString(),
			Role:      "model",
			Text:      reply,
			Timestamp: time.Now(),
		})
	}
}
