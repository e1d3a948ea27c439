package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/service"
	apperrors "github.com/adhivedhanlr-maker/ecommerce-backend/internal/errors"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{cartService: cartService}
}

type AddCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

func (ctrl *CartController) respondCartError(c *gin.Context, err error, userID uint) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
	case errors.Is(err, service.ErrProductInactive):
		apperrors.BadRequest(c, apperrors.ProductNotFound, "Product is not available")
	case errors.Is(err, service.ErrInsufficientStock):
		apperrors.Conflict(c, apperrors.ProductInsufficientStock, "Not enough stock available")
	case errors.Is(err, service.ErrInvalidQuantity):
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Quantity must be at least 1")
	case errors.Is(err, service.ErrCartItemNotFound):
		apperrors.NotFound(c, apperrors.CartItemNotFound, "Cart item not found")
	case errors.Is(err, service.ErrNotCartItemOwner):
		apperrors.Forbidden(c, "")
	default:
		log.Error("Cart operation failed", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
	}
}

// GetCart returns the caller's cart with computed totals
// GET /api/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	cart, err := ctrl.cartService.GetCart(userID)
	if err != nil {
		ctrl.respondCartError(c, err, userID)
		return
	}

	respond(c, http.StatusOK, "Cart fetched", cart)
}

// AddItem adds a product to the cart
// POST /api/cart/items
func (ctrl *CartController) AddItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "A product and quantity are required")
		return
	}

	cart, err := ctrl.cartService.AddItem(userID, req.ProductID, req.Quantity)
	if err != nil {
		ctrl.respondCartError(c, err, userID)
		return
	}

	respond(c, http.StatusOK, "Item added to cart", cart)
}

// UpdateItem changes the quantity of a cart row
// PUT /api/cart/items/:id
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid cart item ID")
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "A quantity is required")
		return
	}

	cart, err := ctrl.cartService.UpdateItem(userID, uint(itemID), req.Quantity)
	if err != nil {
		ctrl.respondCartError(c, err, userID)
		return
	}

	respond(c, http.StatusOK, "Cart item updated", cart)
}

// RemoveItem deletes a cart row
// DELETE /api/cart/items/:id
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid cart item ID")
		return
	}

	cart, err := ctrl.cartService.RemoveItem(userID, uint(itemID))
	if err != nil {
		ctrl.respondCartError(c, err, userID)
		return
	}

	respond(c, http.StatusOK, "Cart item removed", cart)
}

// ClearCart empties the caller's cart
// DELETE /api/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	if err := ctrl.cartService.ClearCart(userID); err != nil {
		ctrl.respondCartError(c, err, userID)
		return
	}

	respond(c, http.StatusOK, "Cart cleared", nil)
}
