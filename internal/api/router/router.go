package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jose-c-campos/usc-scheduler/config"
	"github.com/jose-c-campos/usc-scheduler/internal/api/handler"
	"github.com/jose-c-campos/usc-scheduler/internal/api/middleware"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		v1.POST("/schedules", h.Schedule.BuildSchedules)
	}

	return r
}
