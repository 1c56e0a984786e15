package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/Muratozbk/support-desk/api"
	"github.com/Muratozbk/support-desk/internal/auth"
	"github.com/Muratozbk/support-desk/internal/handler"
	"github.com/Muratozbk/support-desk/internal/middleware"
)

// Deps groups everything the router mounts.
type Deps struct {
	Users   *handler.UserHandler
	Tickets *handler.TicketHandler
	Notes   *handler.NoteHandler
	Tokens  *auth.TokenService

	// CORSAllowedOrigins restricts browser origins; empty allows all.
	CORSAllowedOrigins []string
}

// New assembles the gin engine: request-id, access logs, recovery, metrics,
// CORS, health/swagger plumbing, then the versioned API under /api/v1.
func New(d Deps) http.Handler {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.Metrics())
	r.Use(corsConfig(d.CORSAllowedOrigins))

	r.GET("/health", handler.Health)
	r.GET("/ready", handler.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/swagger", func(c *gin.Context) { c.Redirect(http.StatusFound, "/swagger/") })
	r.GET("/swagger/*any", func(c *gin.Context) {
		if strings.TrimPrefix(c.Param("any"), "/") == "openapi.json" {
			c.Data(http.StatusOK, "application/json", api.OpenAPISpec)
			return
		}
		if strings.TrimPrefix(c.Param("any"), "/") == "" {
			c.Request.URL.Path = "/swagger/index.html"
			c.Request.RequestURI = "/swagger/index.html"
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/openapi.json"))(c)
	})

	r.NoRoute(func(c *gin.Context) {
		handler.Fail(c, http.StatusNotFound, handler.ErrCodeNotFound, "route not found")
	})

	v1 := r.Group("/api/v1")
	{
		v1.POST("/users", d.Users.Register)
		v1.POST("/users/login", d.Users.Login)

		protected := v1.Group("", auth.Middleware(d.Tokens))
		{
			protected.GET("/users/me", d.Users.Me)

			protected.GET("/tickets", d.Tickets.List)
			protected.POST("/tickets", d.Tickets.Create)
			protected.GET("/tickets/:id", d.Tickets.Get)
			protected.PUT("/tickets/:id", d.Tickets.Update)
			protected.PUT("/tickets/:id/close", d.Tickets.Close)
			protected.DELETE("/tickets/:id", d.Tickets.Delete)

			protected.GET("/tickets/:id/notes", d.Notes.List)
			protected.POST("/tickets/:id/notes", d.Notes.Create)
		}
	}

	return r
}

func corsConfig(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"X-Request-ID", "Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
