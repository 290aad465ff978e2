package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wyllersu/ai-fleet-mate/config"
	"github.com/wyllersu/ai-fleet-mate/realtime"
	"github.com/wyllersu/ai-fleet-mate/repositories"
	"github.com/wyllersu/ai-fleet-mate/services"
)

type ChatController struct {
	chatService *services.ChatService
	hub         *realtime.Hub
}

func NewChatController(db *gorm.DB, cfg *config.Config, hub *realtime.Hub) *ChatController {
	vehicleRepo := repositories.NewVehicleRepository(db)
	maintenanceRepo := repositories.NewMaintenanceRepository(db)

	return &ChatController{
		chatService: services.NewChatService(cfg, vehicleRepo, maintenanceRepo),
		hub:         hub,
	}
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

// Chat handles POST /api/v1/chat. The handler is stateless per request:
// it forwards the user message with the full fleet snapshot to the AI
// gateway and relays the reply verbatim.
func (cc *ChatController) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, kmUpdated, err := cc.chatService.Chat(c.Request.Context(), req.Message)

	// The command path may have bumped a vehicle's mileage, even when
	// the model call afterwards failed.
	if kmUpdated {
		cc.hub.Publish(realtime.Event{Table: "vehicles", Action: realtime.ActionUpdate})
	}

	if err != nil {
		log.Printf("Chat relay error: %v", err)

		switch {
		case errors.Is(err, services.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Limite de requisições excedido. Por favor, tente novamente mais tarde."})
		case errors.Is(err, services.ErrInsufficientCredits):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "Créditos insuficientes. Por favor, adicione créditos ao seu workspace."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Response: reply})
}
