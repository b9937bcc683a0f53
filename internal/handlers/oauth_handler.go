package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"salesboard/internal/services"
)

// AuthorizeURLBuilder реализуется HubSpot-клиентом.
type AuthorizeURLBuilder interface {
	AuthorizeURL(redirectURI string) string
}

type OAuthHandler struct {
	Tokens     services.TokenService
	CRM        services.CRMService
	URLs       AuthorizeURLBuilder
	Email      services.EmailService
	TG         *services.TelegramService
	SuccessURL string // страница "установка завершена"
}

func NewOAuthHandler(tokens services.TokenService, crm services.CRMService, urls AuthorizeURLBuilder,
	email services.EmailService, tg *services.TelegramService, successURL string) *OAuthHandler {
	return &OAuthHandler{Tokens: tokens, CRM: crm, URLs: urls, Email: email, TG: tg, SuccessURL: successURL}
}

func (h *OAuthHandler) redirectURI(c *gin.Context) string {
	return requestBaseURL(c) + "/oauth/hubspot/callback"
}

// Authorize — редирект пользователя на страницу авторизации HubSpot.
func (h *OAuthHandler) Authorize(c *gin.Context) {
	c.Redirect(http.StatusFound, h.URLs.AuthorizeURL(h.redirectURI(c)))
}

// @Summary      OAuth callback HubSpot
// @Description  Меняет authorization code на токены и сохраняет установку
// @Tags         OAuth
// @Produce      json
// @Param        code  query  string  true  "Authorization code"
// @Success      302
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /oauth/hubspot/callback [get]
func (h *OAuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no code provided"})
		return
	}

	ctx := c.Request.Context()
	token, err := h.Tokens.ExchangeCode(ctx, code, h.redirectURI(c))
	if err != nil {
		log.Printf("[oauth][callback] exchange failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "authentication failed"})
		return
	}

	// portal id берём из метаданных аккаунта по свежему access token
	account, err := h.CRM.GetAccountInfo(ctx, token.AccessToken)
	if err != nil {
		log.Printf("[oauth][callback] account info failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "authentication failed"})
		return
	}

	install, err := h.Tokens.StoreInstall(ctx, account.HubID, token.AccessToken, token.RefreshToken, token.ExpiresIn)
	if err != nil {
		// не валим установку: токены уже выданы, пользователь попадает на success,
		// а сбой записи чиним отдельно по логам
		log.Printf("[oauth][callback] store install failed portal_id=%d: %v", account.HubID, err)
	} else {
		log.Printf("[oauth][callback] installed portal_id=%d expires_at=%s", install.PortalID, install.ExpiresAt)
		if h.Email != nil {
			if err := h.Email.SendInstallNotification(install.PortalID, install.ExpiresAt); err != nil {
				log.Printf("[oauth][callback] install notification email: %v", err)
			}
		}
		if err := h.TG.NotifyInstall(install.PortalID); err != nil {
			log.Printf("[oauth][callback] install notification tg: %v", err)
		}
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("%s?portalId=%d", h.SuccessURL, account.HubID))
}
