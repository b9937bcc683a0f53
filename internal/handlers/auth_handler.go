package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"salesboard/internal/config"
	"salesboard/internal/middleware"
)

type AuthHandler struct {
	admin config.AdminConfig
}

func NewAuthHandler(admin config.AdminConfig) *AuthHandler {
	return &AuthHandler{admin: admin}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// @Summary      Вход оператора
// @Description  Проверяет учётные данные администратора и возвращает access token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      loginRequest  true  "Данные для входа"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[auth][login] bad request: bind json failed: err=%v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.TrimSpace(req.Email)
	if !strings.EqualFold(email, h.admin.Email) {
		log.Printf("[auth][login] unknown admin email=%q", email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	ph := strings.TrimSpace(h.admin.PasswordHash)
	if ph == "" {
		log.Printf("[auth][login] admin password_hash is empty in config")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(ph), []byte(strings.TrimSpace(req.Password))); err != nil {
		log.Printf("[auth][login] bcrypt mismatch for email=%q: err=%v", email, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	claims := &middleware.Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(middleware.JWTKey)
	if err != nil {
		log.Printf("[auth][login] sign token failed: err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate access token"})
		return
	}

	log.Printf("[auth][login] admin logged in, exp_in=%s",
		time.Until(claims.ExpiresAt.Time).Truncate(time.Second))
	c.JSON(http.StatusOK, gin.H{
		"access_token": tokenString,
		"expires_at":   claims.ExpiresAt.Time,
	})
}
