package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/horizonstores/backend/models"
	"github.com/horizonstores/backend/services"
)

type ProductController struct {
	svc       *services.ProductService
	validator *RequestValidator
}

func NewProductController(svc *services.ProductService, validator *RequestValidator) *ProductController {
	return &ProductController{svc: svc, validator: validator}
}

// List returns the catalog; a non-empty q query parameter filters it by
// case-insensitive substring match over name, details and category.
func (pc *ProductController) List(c *gin.Context) {
	products, err := pc.svc.SearchProducts(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetByID returns a single product or 404.
func (pc *ProductController) GetByID(c *gin.Context) {
	product, err := pc.svc.GetProductByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// Create adds a product to the catalog (admin).
func (pc *ProductController) Create(c *gin.Context) {
	var req services.ProductCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := pc.validator.ValidateProductCreate(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := pc.svc.AddProduct(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// BulkCreate adds a batch of products in one call, backing the CSV import
// screen. Rows are validated individually; the first bad row rejects the
// batch before anything is written.
func (pc *ProductController) BulkCreate(c *gin.Context) {
	var reqs []services.ProductCreateRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	for i := range reqs {
		if err := pc.validator.ValidateProductCreate(&reqs[i]); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	created := make([]models.Product, 0, len(reqs))
	for _, req := range reqs {
		product, err := pc.svc.AddProduct(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		created = append(created, *product)
	}
	c.JSON(http.StatusCreated, created)
}

// Update replaces the mutable fields of a product (admin).
func (pc *ProductController) Update(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	product.ID = c.Param("id")

	if err := pc.svc.UpdateProduct(c.Request.Context(), &product); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}
