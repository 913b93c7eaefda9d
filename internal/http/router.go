package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/igor-IT/wi-auth-ms/internal/http/handlers"
	"github.com/igor-IT/wi-auth-ms/internal/http/middleware"
)

func BuildRouter(ah *handlers.AuthHandlers, jwtmw *middleware.AuthMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/api/v1/auth")
	auth.POST("/sign-up/request-code", ah.RequestRegistrationCode)
	auth.POST("/validate-code", ah.ValidateCode)
	auth.POST("/sign-up/create-account", ah.Register)
	auth.POST("/sign-in", ah.Login)
	auth.POST("/refresh-token", ah.Refresh)
	auth.POST("/reset-password/request-code", ah.RequestResetCode)
	auth.POST("/reset-password/create-password", ah.ResetPassword)

	v := auth.Group("/").Use(jwtmw.WithJWT())
	v.GET("/me", ah.Me)

	return r
}
