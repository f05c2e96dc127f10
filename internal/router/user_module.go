package router

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/movielog/movielog/internal/interface/http"
)

type UserModule struct {
	Handler      *handlers.UserHandler
	Auth         gin.HandlerFunc
	LoginLimiter gin.HandlerFunc
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.POST("/register", m.LoginLimiter, m.Handler.Register)
	rg.POST("/login", m.LoginLimiter, m.Handler.Login)
	rg.POST("/refresh", m.Handler.Refresh)

	authed := rg.Group("/", m.Auth)
	authed.POST("/logout", m.Handler.Logout)
	authed.GET("/profile/:id", m.Handler.Profile)
	authed.PUT("/profile", m.Handler.UpdateProfile)
	authed.POST("/profile/avatar", m.Handler.UploadAvatar)
}
