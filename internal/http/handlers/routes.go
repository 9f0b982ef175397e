package handlers

import (
	"harborcrm/internal/app"
	"harborcrm/internal/http/middleware"

	"github.com/labstack/echo/v4"
)

// SetupRoutes wires all API routes
func SetupRoutes(api *echo.Group, services *app.Services) {
	authHandler := NewAuthHandler(services.AuthService)
	contactHandler := NewContactHandler(services.Stores.ContactRepo())
	businessHandler := NewBusinessHandler(services.Stores.BusinessRepo())
	donationHandler := NewDonationHandler(services.Stores.DonationRepo())
	importHandler := NewImportSessionHandler(services.SessionService, services.BatchProcessor, services.StorageService)
	importWS := NewImportProgressWS(services.SessionService)
	templateHandler := NewImportTemplateHandler()

	// Public routes
	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)

	// Protected routes scoped to a workspace
	workspace := api.Group("")
	workspace.Use(middleware.JWTAuth(services.AuthService))
	workspace.Use(middleware.WorkspaceResolver(services.AuthService))

	contacts := workspace.Group("/contacts")
	contacts.GET("", contactHandler.List)
	contacts.GET("/:id", contactHandler.Get)
	contacts.POST("", contactHandler.Create, middleware.RequireWrite())

	businesses := workspace.Group("/businesses")
	businesses.GET("", businessHandler.List)
	businesses.GET("/:id", businessHandler.Get)
	businesses.POST("", businessHandler.Create, middleware.RequireWrite())

	donations := workspace.Group("/donations")
	donations.GET("", donationHandler.List)
	donations.GET("/:id", donationHandler.Get)
	donations.POST("", donationHandler.Create, middleware.RequireWrite())

	importGroup := workspace.Group("/import")
	importGroup.GET("/templates/:entityType", templateHandler.GetTemplate)

	sessions := importGroup.Group("/sessions")
	sessions.GET("", importHandler.ListSessions)
	sessions.POST("", importHandler.CreateSession, middleware.RequireWrite())
	sessions.POST("/upload", importHandler.UploadFile, middleware.RequireWrite())
	sessions.GET("/:id/progress", importHandler.GetProgress)
	sessions.GET("/:id/ws", importWS.Stream)
	sessions.POST("/:id/batches", importHandler.ProcessBatch, middleware.RequireWrite())
	sessions.POST("/:id/cancel", importHandler.CancelSession, middleware.RequireWrite())
	sessions.DELETE("/:id", importHandler.DeleteSession, middleware.RequireWrite())
}
