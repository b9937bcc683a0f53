package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"salesboard/internal/cache"
	"salesboard/internal/repositories"
)

// InstallHandler — административные операции над установками.
// Токены наружу не отдаются никогда: в models.Install они помечены json:"-".
type InstallHandler struct {
	Repo  repositories.InstallRepository
	Cache *cache.InstallCache
}

func NewInstallHandler(repo repositories.InstallRepository, c *cache.InstallCache) *InstallHandler {
	return &InstallHandler{Repo: repo, Cache: c}
}

func (h *InstallHandler) List(c *gin.Context) {
	installs, err := h.Repo.List(c.Request.Context())
	if err != nil {
		log.Printf("[installs][list] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch installations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"installs": installs})
}

func (h *InstallHandler) GetByPortalID(c *gin.Context) {
	portalID, ok := portalIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid portal id"})
		return
	}

	install, err := h.Repo.GetByPortalID(c.Request.Context(), portalID)
	if err != nil {
		log.Printf("[installs][get] portal_id=%d: %v", portalID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch installation"})
		return
	}
	if install == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "installation not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"install": install})
}

func (h *InstallHandler) Delete(c *gin.Context) {
	portalID, ok := portalIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid portal id"})
		return
	}

	if err := h.Repo.Delete(c.Request.Context(), portalID); err != nil {
		log.Printf("[installs][delete] portal_id=%d: %v", portalID, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "installation not found"})
		return
	}
	h.Cache.Invalidate(c.Request.Context(), portalID)
	c.Status(http.StatusNoContent)
}
