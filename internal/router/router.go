package router

import (
	"html/template"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"seogen/internal/domain"
	"seogen/internal/handler"
	"seogen/internal/middleware"
	"seogen/internal/web"
)

// VerticalHandlers are the API handlers of one vertical.
type VerticalHandlers struct {
	Vertical domain.Vertical
	Records  *handler.RecordHandler
	Exports  *handler.ExportHandler
}

// Handlers groups everything the router mounts.
type Handlers struct {
	Health    *handler.HealthHandler
	Workspace *handler.WorkspaceHandler
	Advice    *handler.AdviceHandler
	Verticals []VerticalHandlers
	Web       *web.Handler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(h Handlers, tpl *template.Template, allowedOrigins []string, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(allowedOrigins))

	r.SetHTMLTemplate(tpl)

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Pages
	r.GET("/", h.Web.Index)
	tabs := r.Group("/tabs")
	tabs.GET("/:vertical", h.Web.Tab)
	tabs.GET("/:vertical/records/:id", h.Web.Record)
	tabs.POST("/:vertical/upload", h.Web.Upload)
	tabs.POST("/:vertical/generate", h.Web.Generate)
	r.POST("/diagnostics/connection", h.Web.Connection)

	v1 := r.Group("/api/v1")

	ws := v1.Group("/workspace")
	ws.GET("", h.Workspace.State)
	ws.POST("/tabs/:vertical", h.Workspace.Switch)
	ws.POST("/reload", h.Workspace.Reload)
	ws.GET("/connection", h.Workspace.Connection)

	// One static group per vertical
	for _, vh := range h.Verticals {
		g := v1.Group("/" + string(vh.Vertical))
		g.GET("", vh.Records.List)
		g.GET("/export.csv", vh.Exports.CSV)
		g.GET("/export.xlsx", vh.Exports.XLSX)
		g.GET("/:id", vh.Records.Get)
		if vh.Vertical.AcceptsUploads() {
			g.POST("/upload", vh.Records.Upload)
		} else {
			g.POST("", h.Advice.Generate)
		}
	}

	return r
}
