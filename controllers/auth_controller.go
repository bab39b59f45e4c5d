package controllers

import (
	"net/http"

	"foodmanager/middlewares"
	"foodmanager/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthController struct {
	Sessions     *services.SessionManager
	secureCookie bool
	log          *zap.Logger
}

func NewAuthController(sessions *services.SessionManager, log *zap.Logger, production bool) *AuthController {
	return &AuthController{Sessions: sessions, secureCookie: production, log: log.Named("auth")}
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, ok := ac.Sessions.Authenticate(input.Email, input.Password)
	if !ok {
		ac.log.Info("login rejected", zap.String("client_ip", c.ClientIP()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := ac.Sessions.Issue(user)
	if err != nil {
		ac.log.Error("issue session token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	ac.setSessionCookie(c, token, int(ac.Sessions.TTL().Seconds()))
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    user,
	})
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *gin.Context) {
	ac.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

func (ac *AuthController) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middlewares.AuthCookie, value, maxAge, "/", "", ac.secureCookie, true)
}
