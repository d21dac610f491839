package routes

import (
	"invoicing/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathClients  = "/clients"
	PathSettings = "/settings"
	PathJobs     = "/jobs"
	PathInvoices = "/invoices"
	PathStripe   = "/stripe"
)

func addClientRoutes(rg *gin.RouterGroup, h *handlers.ClientHandler) {
	clients := rg.Group(PathClients)
	{
		clients.GET("", h.ListClients)
		clients.POST("", h.CreateClient)
		clients.GET("/:id", h.GetClient)
		clients.PUT("/:id", h.UpdateClient)
	}
}

func addSettingsRoutes(rg *gin.RouterGroup, h *handlers.SettingsHandler) {
	rg.GET(PathSettings, h.GetSettings)
	rg.PUT(PathSettings, h.UpdateSettings)
}

func addJobRoutes(rg *gin.RouterGroup, jobs *handlers.JobHandler, invoices *handlers.InvoiceHandler) {
	group := rg.Group(PathJobs)
	{
		group.GET("", jobs.ListJobs)
		group.POST("", jobs.CreateJob)
		group.GET("/:id", jobs.GetJob)
		group.PUT("/:id", jobs.UpdateJob)
		group.DELETE("/:id", jobs.DeleteJob)
		group.PUT("/:id/status", jobs.SetInvoiceStatus)
		group.GET("/:id/pdf", invoices.DownloadPDF)
		group.POST("/:id/payment-link", invoices.CreatePaymentLink)
	}

	rg.GET(PathInvoices+"/next-number", jobs.NextInvoiceNumber)
}

func addWebhookRoutes(rg *gin.RouterGroup, h *handlers.WebhookHandler) {
	rg.POST(PathStripe+"/webhook", h.HandleStripeEvent)
}
