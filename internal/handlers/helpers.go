package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

func portalIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("portal_id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// requestBaseURL — базовый URL текущего запроса для построения redirect URI.
func requestBaseURL(c *gin.Context) string {
	scheme := "https"
	if c.Request.TLS == nil {
		scheme = "http"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host
}
