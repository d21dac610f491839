package routes

import (
	_ "invoicing/docs"
	"invoicing/internal/adapter/http/handlers"
	"invoicing/internal/config"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const PathAPI = "/api"

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Jobs     *handlers.JobHandler
	Invoices *handlers.InvoiceHandler
	Clients  *handlers.ClientHandler
	Settings *handlers.SettingsHandler
	Webhooks *handlers.WebhookHandler
}

// NewRouter builds the gin engine. The gin mode is left to the caller.
func NewRouter(cfg config.ServerConfig, h Handlers, logger *zap.Logger) *gin.Engine {
	httpLogger := logger.Named("http")

	router := gin.New()
	router.Use(
		cors.New(corsConfig(cfg.CORSOrigins)),
		RequestID(),
		RequestLogger(httpLogger, cfg.SlowRequestThreshold),
		Recovery(httpLogger),
	)

	router.GET("/ping", handlers.Ping)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group(PathAPI)
	addClientRoutes(api, h.Clients)
	addSettingsRoutes(api, h.Settings)
	addJobRoutes(api, h.Jobs, h.Invoices)
	addWebhookRoutes(api, h.Webhooks)

	return router
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", "Stripe-Signature", requestIDHeader)
	c.ExposeHeaders = []string{"Content-Disposition", requestIDHeader}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}
