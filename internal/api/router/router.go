package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nurse103/QLNS-B11-sub000/config"
	"github.com/nurse103/QLNS-B11-sub000/internal/api/handler"
	"github.com/nurse103/QLNS-B11-sub000/internal/api/middleware"
)

// Setup builds the Gin engine.
func Setup(cfg *config.Config, h *handler.Handler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// staff directory
		v1.GET("/staff", h.Staff.ListStaff)

		// duty rosters (read-only here; scheduling owns writes)
		rosters := v1.Group("/duty-rosters")
		{
			rosters.GET("", h.Availability.ListRosters)
			rosters.GET("/prior", h.Availability.PriorRoster)
		}

		// daily assignment form
		assignments := v1.Group("/assignments")
		{
			assignments.GET("", h.Assignment.GetDraft)
			assignments.POST("", h.Assignment.Submit)
			assignments.POST("/slot-options", h.Availability.SlotOptions)
			assignments.POST("/options", h.Availability.FormOptions)
		}

		// rest records
		restRecords := v1.Group("/rest-records")
		{
			restRecords.GET("", h.Rest.ListRecords)
			restRecords.POST("/auto-generate", h.Rest.AutoGenerate)
		}
	}

	return r
}
