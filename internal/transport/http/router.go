package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rishabhkalra96/invoice-dashboard/internal/transport/http/handler"
	"github.com/rishabhkalra96/invoice-dashboard/internal/transport/http/middleware"
	"github.com/rishabhkalra96/invoice-dashboard/internal/usecase"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(logger *slog.Logger, invoiceHandler *handler.InvoiceHandler, authHandler *handler.AuthHandler, sessionSecret []byte) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(handler.Templates())
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusSeeOther, "/login")
	})

	r.GET("/login", middleware.RedirectAuthenticated(sessionSecret), authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)

	// Dashboard pages require a valid session
	dashboard := r.Group("/dashboard", middleware.Session(sessionSecret))
	dashboard.GET("", func(c *gin.Context) {
		c.Redirect(http.StatusSeeOther, usecase.InvoiceListPath)
	})

	invoices := dashboard.Group("/invoices")
	invoices.GET("", invoiceHandler.List)
	invoices.GET("/create", invoiceHandler.ShowCreate)
	invoices.POST("/create", invoiceHandler.Create)
	invoices.GET("/:id/edit", invoiceHandler.ShowEdit)
	invoices.POST("/:id/edit", invoiceHandler.Update)
	invoices.POST("/:id/delete", invoiceHandler.Delete)

	return r
}
