package handlers

import (
	"net/http"
	"strings"

	catalogueRepo "poojaseva/database/repository/catalogue"

	"github.com/gin-gonic/gin"
)

// CatalogueHandler serves the read-only pooja and temple listings.
type CatalogueHandler struct {
	Catalogue catalogueRepo.CatalogueRepository
}

func NewCatalogueHandler(repo catalogueRepo.CatalogueRepository) *CatalogueHandler {
	return &CatalogueHandler{Catalogue: repo}
}

// ListPoojas returns active poojas, optionally narrowed by ?category=.
func (h *CatalogueHandler) ListPoojas(c *gin.Context) {
	poojas, err := h.Catalogue.ListPoojas(c.Request.Context(), strings.TrimSpace(c.Query("category")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"poojas": poojas, "count": len(poojas)})
}

func (h *CatalogueHandler) GetPooja(c *gin.Context) {
	pooja, err := h.Catalogue.GetPoojaByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pooja)
}

// ListTemples returns active temples; ?ids=a,b limits the result to those ids.
func (h *CatalogueHandler) ListTemples(c *gin.Context) {
	var ids []string
	for _, id := range strings.Split(c.Query("ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	temples, err := h.Catalogue.ListTemples(c.Request.Context(), ids)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"temples": temples, "count": len(temples)})
}
