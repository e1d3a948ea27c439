package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/repository"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/service"
	apperrors "github.com/adhivedhanlr-maker/ecommerce-backend/internal/errors"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

type ProductRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" binding:"required,gt=0"`
	StockQuantity int     `json:"stock_quantity" binding:"gte=0"`
	ImageURL      string  `json:"image_url"`
	CategoryID    uint    `json:"category_id" binding:"required"`
	IsActive      *bool   `json:"is_active"`
}

type ProductUpdateRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	StockQuantity *int    `json:"stock_quantity"`
	ImageURL      string  `json:"image_url"`
	CategoryID    uint    `json:"category_id"`
	IsActive      *bool   `json:"is_active"`
}

// ListProducts returns the catalogue with filters and pagination
// GET /api/products?category_id=&seller_id=&search=&page=&page_size=
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := repository.ProductFilter{
		Search:     c.Query("search"),
		ActiveOnly: true,
	}
	if v, err := strconv.ParseUint(c.Query("category_id"), 10, 32); err == nil {
		filter.CategoryID = uint(v)
	}
	if v, err := strconv.ParseUint(c.Query("seller_id"), 10, 32); err == nil {
		filter.SellerID = uint(v)
	}
	if v, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && v > 0 {
		filter.Page = v
	}
	if v, err := strconv.Atoi(c.DefaultQuery("page_size", "20")); err == nil && v > 0 {
		filter.PageSize = v
	}

	products, total, err := ctrl.productService.ListProducts(filter)
	if err != nil {
		log.Error("Failed to list products", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	respond(c, http.StatusOK, "Products fetched", gin.H{
		"products":  products,
		"total":     total,
		"page":      filter.Page,
		"page_size": filter.PageSize,
	})
}

// GetProduct returns one product by ID
// GET /api/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	product, err := ctrl.productService.GetProductByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	respond(c, http.StatusOK, "Product fetched", gin.H{"product": product})
}

// CreateProduct creates a product owned by the calling seller
// POST /api/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}
	role, _ := middleware.GetUserRole(c)

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product details")
		return
	}

	product, err := ctrl.productService.CreateProduct(userID, role, service.ProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: &req.StockQuantity,
		ImageURL:      req.ImageURL,
		CategoryID:    req.CategoryID,
		IsActive:      req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotSeller):
			apperrors.Forbidden(c, "Only approved sellers can list products")
		case errors.Is(err, service.ErrCategoryNotFound):
			apperrors.BadRequest(c, apperrors.CategoryNotFound, "Category not found")
		default:
			log.Error("Failed to create product", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	respond(c, http.StatusCreated, "Product created", gin.H{"product": product})
}

// UpdateProduct updates a product owned by the caller
// PUT /api/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}
	role, _ := middleware.GetUserRole(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	var req ProductUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product details")
		return
	}

	product, err := ctrl.productService.UpdateProduct(userID, role, uint(id), service.ProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		ImageURL:      req.ImageURL,
		CategoryID:    req.CategoryID,
		IsActive:      req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrNotProductOwner):
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.ProductNotOwned, "You do not own this product")
		case errors.Is(err, service.ErrCategoryNotFound):
			apperrors.BadRequest(c, apperrors.CategoryNotFound, "Category not found")
		default:
			log.Error("Failed to update product", err, map[string]interface{}{
				"product_id": id,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	respond(c, http.StatusOK, "Product updated", gin.H{"product": product})
}

// DeleteProduct removes a product owned by the caller
// DELETE /api/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}
	role, _ := middleware.GetUserRole(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	if err := ctrl.productService.DeleteProduct(userID, role, uint(id)); err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrNotProductOwner):
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.ProductNotOwned, "You do not own this product")
		default:
			log.Error("Failed to delete product", err, map[string]interface{}{
				"product_id": id,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	respond(c, http.StatusOK, "Product deleted", nil)
}
