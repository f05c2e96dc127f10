package router

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/movielog/movielog/internal/interface/http"
)

type MovieModule struct {
	Handler        *handlers.MovieHandler
	Auth           gin.HandlerFunc
	CatalogLimiter gin.HandlerFunc
}

func (m *MovieModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", m.Handler.Home)

	authed := rg.Group("/", m.Auth)
	authed.GET("/mymovies", m.Handler.MyMovies)
	authed.GET("/mymovies/search", m.Handler.SearchLibrary)
	authed.POST("/add", m.CatalogLimiter, m.Handler.Add)
	authed.GET("/get-movie-details", m.CatalogLimiter, m.Handler.Import)
	authed.POST("/edit", m.Handler.Edit)
	authed.GET("/delete", m.Handler.Delete)
}
