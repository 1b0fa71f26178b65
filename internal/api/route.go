package api

import (
	"blogpessoal/internal/api/middleware"
	"blogpessoal/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	// Logger & Recovery 在最外层，后续中间件的 panic 也会被接住
	logger.SetupGin(r, "/ping")

	// TraceId & CORS & Audit
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.AuditMiddleware())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	postagemGroup := r.Group("/postagens")
	postagemGroup.Use(middleware.RateLimitMiddleware(group.Limiter))
	{
		postagemGroup.GET("", group.PostagemHandler.GetAll)
		postagemGroup.GET("/:id", group.PostagemHandler.GetByID)
		postagemGroup.GET("/titulo/:titulo", group.PostagemHandler.GetByTitulo)
		postagemGroup.POST("", group.PostagemHandler.Post)
		postagemGroup.PUT("", group.PostagemHandler.Put)
		postagemGroup.DELETE("/:id", group.PostagemHandler.Delete)
	}

	return r
}
