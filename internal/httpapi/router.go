package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/draftforge/draftforge/internal/common"
	"github.com/draftforge/draftforge/internal/config"
	"github.com/draftforge/draftforge/internal/httpapi/handlers"
	"github.com/draftforge/draftforge/internal/httpapi/middleware"
)

func NewRouter(db *gorm.DB, cfg config.Config, limiter middleware.Limiter, queue handlers.Queue) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(middleware.Recovery())

	r.NoRoute(func(c *gin.Context) {
		common.Fail(c, http.StatusNotFound, 40400, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, 40500, "method not allowed")
	})

	r.Use(middleware.RequestID())

	h := handlers.NewHandler(db, queue)

	r.GET("/ping", h.Ping)

	// generation pipeline
	r.POST("/blogs/generate",
		middleware.RateLimit(limiter, cfg.GenerateRateLimit, time.Duration(cfg.GenerateRateWindow)*time.Second),
		h.GenerateBlog)
	r.GET("/blogs/:id/generation", h.GetGenerationStatus)

	// blog resources
	r.GET("/blogs/:id", h.GetBlog)
	r.GET("/blogs/:id/citations", h.ListBlogCitations)
	r.POST("/blogs/:id/publish", h.PublishBlog)
	r.DELETE("/blogs/:id", h.DeleteBlog)

	return r
}
