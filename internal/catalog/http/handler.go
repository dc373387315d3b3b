package http

import (
	"net/http"

	"gorosso-backend/internal/catalog"

	"github.com/gin-gonic/gin"
)

type CatalogReader interface {
	ListProducts() []catalog.Product
}

type Handler struct {
	catalog CatalogReader
}

func NewHandler(reader CatalogReader) *Handler {
	return &Handler{catalog: reader}
}

// ListProducts godoc
// @Summary      List the full product catalog
// @Description  Returns every product in the catalog. A store read failure is indistinguishable from an empty catalog.
// @Tags         products
// @Produce      json
// @Success      200  {array}  catalog.Product
// @Router       /api/products [get]
func (h *Handler) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.ListProducts())
}
