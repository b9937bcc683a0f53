package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"salesboard/internal/models"
	"salesboard/internal/pdf"
	"salesboard/internal/services"
)

// Сколько сделок берём в одну страницу при построении лидерборда.
const leaderboardDealLimit = 100

type LeaderboardHandler struct {
	CRM services.CRMService
	PDF pdf.Generator
}

func NewLeaderboardHandler(crm services.CRMService, gen pdf.Generator) *LeaderboardHandler {
	return &LeaderboardHandler{CRM: crm, PDF: gen}
}

func (h *LeaderboardHandler) build(c *gin.Context) (string, []models.LeaderboardEntry, bool) {
	accessToken := c.Query("accessToken")
	if accessToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no access token provided"})
		return "", nil, false
	}
	timeframe := c.DefaultQuery("timeframe", models.TimeframeWeek)

	ctx := c.Request.Context()
	account, err := h.CRM.GetAccountInfo(ctx, accessToken)
	if err != nil {
		log.Printf("[leaderboard] account info failed: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid access token"})
		return "", nil, false
	}

	owners, err := h.CRM.GetOwners(ctx, account.HubID)
	if err != nil {
		log.Printf("[leaderboard] owners fetch failed portal_id=%d: %v", account.HubID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate leaderboard"})
		return "", nil, false
	}
	deals, err := h.CRM.GetDeals(ctx, account.HubID, leaderboardDealLimit)
	if err != nil {
		log.Printf("[leaderboard] deals fetch failed portal_id=%d: %v", account.HubID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate leaderboard"})
		return "", nil, false
	}

	return timeframe, services.BuildLeaderboard(owners, deals, timeframe, time.Now()), true
}

// @Summary      Лидерборд продаж
// @Description  Очки по closed-won сделкам за выбранный таймфрейм
// @Tags         Gamification
// @Produce      json
// @Param        accessToken  query  string  true   "HubSpot access token"
// @Param        timeframe    query  string  false  "day | week | month | quarter | year"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /gamification/leaderboard [get]
func (h *LeaderboardHandler) Get(c *gin.Context) {
	_, entries, ok := h.build(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}

// GetPDF — тот же лидерборд, но в виде PDF-отчёта.
func (h *LeaderboardHandler) GetPDF(c *gin.Context) {
	timeframe, entries, ok := h.build(c)
	if !ok {
		return
	}
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `attachment; filename="leaderboard.pdf"`)
	c.Status(http.StatusOK)
	if err := h.PDF.RenderLeaderboard(c.Writer, timeframe, time.Now(), entries); err != nil {
		log.Printf("[leaderboard][pdf] render failed: %v", err)
	}
}
