package routes

import (
	"net/http"
	"time"

	"poojaseva/handlers"
	"poojaseva/middleware"
	"poojaseva/models"
	"poojaseva/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers devotee account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.Users.Register)
		api.POST("/login", hb.Users.Login)

		// Protected routes (Require Authentication)
		api.GET("/me", hb.Auth, hb.Users.Me)
	}
}

// RegisterCatalogueRoutes registers the public pooja and temple listings.
func RegisterCatalogueRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/catalogue")
	{
		api.GET("/poojas", hb.Catalogue.ListPoojas)
		api.GET("/poojas/:id", hb.Catalogue.GetPooja)
		api.GET("/temples", hb.Catalogue.ListTemples)
	}
	r.GET("/api/poojas/:id/slots", hb.Providers.Slots)
}

// RegisterProviderRoutes registers provider discovery and the provider inbox.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers")
	{
		api.GET("/eligible", hb.Providers.Eligible)
		api.GET("/:id/bookings", hb.Auth, middleware.RequireRole(models.RoleProvider, models.RoleAdmin), hb.Providers.ListBookings)
	}
}

// RegisterSelectionRoutes registers the priest-selection flow.
func RegisterSelectionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/selection")
	{
		api.Use(hb.Auth)
		api.POST("", hb.Selections.Start)
		api.GET("/:id", hb.Selections.Get)
		api.PUT("/:id/auto-assign", hb.Selections.AutoAssign)
		api.PUT("/:id/provider/:providerID", hb.Selections.ChooseProvider)
		api.PUT("/:id/reset", hb.Selections.Reset)
		api.DELETE("/:id", hb.Selections.Discard)
	}
}

// RegisterBookingRoutes registers booking submission and lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(hb.Auth)
		api.POST("", hb.Bookings.Submit)
		api.GET("/mine", hb.Bookings.Mine)
		api.GET("/:id", hb.Bookings.Get)
		api.POST("/:id/cancel", hb.Bookings.Cancel)
		api.DELETE("/:id", hb.Bookings.Delete)

		provider := api.Group("")
		provider.Use(middleware.RequireProvider())
		provider.POST("/:id/accept", hb.Bookings.Accept)
		provider.POST("/:id/decline", hb.Bookings.Decline)
		provider.POST("/:id/check-in", hb.Bookings.CheckIn)
		provider.POST("/:id/complete", hb.Bookings.Complete)
	}
}

// RegisterAIRoutes registers AI endpoints.
func RegisterAIRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/ai")
	{
		api.Use(hb.Auth)
		api.POST("/itinerary", hb.AI.Itinerary)
	}
}

// RegisterUploadRoutes registers provider media uploads.
func RegisterUploadRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/uploads")
	{
		api.Use(hb.Auth, middleware.RequireProvider())
		api.POST("/:folder", hb.Storage.Upload)
	}
}

// RegisterHealthRoute reports the last dependency check.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "message": "Hi, I'm PoojaSeva"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterUserRoutes(r, hb)
	RegisterCatalogueRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterSelectionRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterAIRoutes(r, hb)
	RegisterUploadRoutes(r, hb)
}
