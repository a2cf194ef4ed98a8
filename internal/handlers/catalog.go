package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/nmoreno/tallerplus/backend/internal/services"
	"github.com/nmoreno/tallerplus/backend/pkg/response"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListBrands returns the brand catalog
// GET /api/catalog/brands
func (h *CatalogHandler) ListBrands(c *gin.Context) {
	brands, err := h.catalogService.ListBrands()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, brands)
}

// CreateBrand adds a brand
// POST /api/catalog/brands
func (h *CatalogHandler) CreateBrand(c *gin.Context) {
	var req services.CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	brand, err := h.catalogService.CreateBrand(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, brand)
}

// DeleteBrand removes a brand without models
// DELETE /api/catalog/brands/:id
func (h *CatalogHandler) DeleteBrand(c *gin.Context) {
	if err := h.catalogService.DeleteBrand(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "brand deleted"})
}

// ListModels returns vehicle models, filterable by brand
// GET /api/catalog/models?brandId=...
func (h *CatalogHandler) ListModels(c *gin.Context) {
	models, err := h.catalogService.ListModels(c.Query("brandId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, models)
}

// CreateModel adds a vehicle model under a brand
// POST /api/catalog/models
func (h *CatalogHandler) CreateModel(c *gin.Context) {
	var req services.CreateModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	model, err := h.catalogService.CreateModel(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, model)
}

// DeleteModel removes a vehicle model
// DELETE /api/catalog/models/:id
func (h *CatalogHandler) DeleteModel(c *gin.Context) {
	if err := h.catalogService.DeleteModel(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "model deleted"})
}
