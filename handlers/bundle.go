package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups the endpoint handlers wired by routes.RegisterRoutes.
type HandlerBundle struct {
	// Auth resolves the bearer token on protected groups.
	Auth gin.HandlerFunc

	Users      *UserHandler
	Catalogue  *CatalogueHandler
	Providers  *ProviderHandler
	Selections *SelectionHandler
	Bookings   *BookingHandler
	AI         *AIHandler
	Storage    *StorageHandler
}
