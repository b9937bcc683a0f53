package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"salesboard/internal/models"
	"salesboard/internal/services"
)

type WebhookHandler struct {
	Tokens services.TokenService
	TG     *services.TelegramService
}

func NewWebhookHandler(tokens services.TokenService, tg *services.TelegramService) *WebhookHandler {
	return &WebhookHandler{Tokens: tokens, TG: tg}
}

// Handle — приём событий HubSpot. Событие принимается, только если для
// портала есть валидный токен. Неизвестные типы событий подтверждаются
// без обработки.
func (h *WebhookHandler) Handle(c *gin.Context) {
	var event models.WebhookEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		log.Printf("[webhook] bind json failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	log.Printf("[webhook] received %s for portal %d (object %d)", event.EventType, event.PortalID, event.ObjectID)

	if _, err := h.Tokens.GetValidAccessToken(c.Request.Context(), event.PortalID); err != nil {
		log.Printf("[webhook] no valid token for portal %d: %v", event.PortalID, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no valid token found for this portal"})
		return
	}

	switch event.EventType {
	case "deal.propertyChange":
		if event.PropertyName == "dealstage" && event.PropertyValue == "closedwon" {
			if err := h.TG.NotifyClosedWon(event.PortalID, event.ObjectID); err != nil {
				log.Printf("[webhook] closed-won notify failed: %v", err)
			}
		}
	case "contact.creation":
		log.Printf("[webhook] contact %d created in portal %d", event.ObjectID, event.PortalID)
	default:
		// no-op: принимаем и игнорируем
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
