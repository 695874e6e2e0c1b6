package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/planner/internal/common"
	"github.com/dmitrijs2005/planner/internal/dto"
)

func (s *HTTPServer) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(s.logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{common.AuthorizationHeader, "Content-Type"},
	}))

	r.GET(common.HealthPath, func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.Health{Status: "ok"})
	})

	r.POST("/auth/register", s.register)
	r.POST("/auth/login", s.login)

	owned := r.Group("/")
	owned.Use(Auth(s.jwtSecret))
	{
		owned.GET("/:collection", s.list)
		owned.POST("/:collection", s.upsert)
		owned.DELETE("/:collection/:id", s.delete)
		owned.POST("/documents/:id/content", s.contentURL)
	}
	return r
}
