package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smart-fuel-crm/internal/metrics"
)

// Handlers bundles every route group served under /api.
type Handlers struct {
	Auth          *AuthHandler
	Profile       *ProfileHandler
	Clients       *ClientHandler
	POS           *POSHandler
	Templates     *TemplateHandler
	Notifications *NotificationHandler
	Reports       *ReportHandler
	Export        *ExportHandler
	Functions     *FunctionsHandler
}

func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// RegisterRoutes mounts the public endpoints and the /api groups behind requireAuth.
func RegisterRoutes(r *gin.Engine, h Handlers, requireAuth gin.HandlerFunc) {
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", metrics.Handler())

	apiGroup := r.Group("/api")

	authGroup := apiGroup.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
	}

	private := apiGroup.Group("", requireAuth)
	{
		private.GET("/profile", h.Profile.Get)
		private.PUT("/profile", h.Profile.Update)

		clients := private.Group("/clients")
		{
			clients.GET("", h.Clients.List)
			clients.POST("", h.Clients.Create)
			clients.PUT("/:id", h.Clients.Update)
			clients.DELETE("/:id", h.Clients.Delete)
			clients.GET("/:id/follow-ups", h.Clients.ListFollowUps)
			clients.POST("/:id/follow-ups", h.Clients.AddFollowUp)
			clients.GET("/:id/notes", h.Clients.ListNotes)
			clients.POST("/:id/notes", h.Clients.AddNote)
			clients.POST("/:id/actions/:kind", h.Clients.Action)
		}

		pos := private.Group("/pos/clients")
		{
			pos.GET("", h.POS.List)
			pos.POST("", h.POS.Create)
			pos.POST("/import", h.POS.Import)
			pos.PUT("/:id", h.POS.Update)
			pos.DELETE("/:id", h.POS.Delete)
			pos.GET("/:id/call-logs", h.POS.ListCallLogs)
			pos.POST("/:id/call-logs", h.POS.AddCallLog)
			pos.GET("/:id/notes", h.POS.ListNotes)
			pos.POST("/:id/notes", h.POS.AddNote)
			pos.POST("/:id/actions/:kind", h.POS.Action)
		}

		templates := private.Group("/templates/:type")
		{
			templates.GET("", h.Templates.Get)
			templates.PUT("", h.Templates.Save)
			templates.POST("/attachments", h.Templates.UploadAttachment)
			templates.DELETE("/attachments/:id", h.Templates.DeleteAttachment)
		}

		private.GET("/notifications/upcoming", h.Notifications.Upcoming)
		private.POST("/notifications/clear", h.Notifications.Clear)

		private.GET("/reports/fleet", h.Reports.Fleet)
		private.GET("/reports/pos", h.Reports.POS)

		private.GET("/export/:dataset", h.Export.Export)

		private.POST("/functions/send-email", h.Functions.SendEmail)
		private.POST("/functions/send-follow-ups", h.Functions.SendFollowUps)
	}
}
