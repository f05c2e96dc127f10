package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/movielog/movielog/internal/application"
	handlers "github.com/movielog/movielog/internal/interface/http"
	"github.com/movielog/movielog/internal/interface/middleware"
	"github.com/movielog/movielog/pkg/helpers"
	"github.com/movielog/movielog/pkg/validation"
)

// Deps carries everything the route modules need. It is constructed once in
// main and handed down explicitly; handlers never reach for globals.
type Deps struct {
	Logger       *logrus.Logger
	Redis        *redis.Client
	JWT          *helpers.JWTManager
	Users        *application.UserService
	Movies       *application.MovieService
	CookieDomain string
	CookieSecure bool
}

// InitModules wires the feature modules and shared routes onto the engine.
// It also configures the binding validator: the handlers' pwd and uname
// tags must be registered before the first request is bound.
func InitModules(engine *gin.Engine, d Deps) {
	validation.Init()

	reg := NewRegistry(engine)

	auth := middleware.Auth(d.Redis, d.JWT)

	reg.Add(&UserModule{
		Handler:      handlers.NewUserHandler(d.Users, d.Logger, d.CookieDomain, d.CookieSecure),
		Auth:         auth,
		LoginLimiter: middleware.RateLimit(d.Redis, 10, time.Minute, middleware.KeyByIP()),
	})
	reg.Add(&MovieModule{
		Handler:        handlers.NewMovieHandler(d.Movies, d.Logger),
		Auth:           auth,
		CatalogLimiter: middleware.RateLimit(d.Redis, 30, time.Minute, middleware.KeyByUserID()),
	})

	reg.RegisterAll()

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
