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

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

type CreateOrderRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"required"`
}

// CreateOrder checks out the caller's cart
// POST /api/orders
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "A shipping address is required")
		return
	}

	order, err := ctrl.orderService.CreateOrderFromCart(userID, req.ShippingAddress)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			apperrors.BadRequest(c, apperrors.CartEmpty, "Your cart is empty")
		case errors.Is(err, service.ErrMissingAddress):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "A shipping address is required")
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "A product in your cart no longer exists")
		case errors.Is(err, service.ErrProductInactive):
			apperrors.Conflict(c, apperrors.ProductNotFound, "A product in your cart is no longer available")
		case errors.Is(err, service.ErrInsufficientStock):
			apperrors.Conflict(c, apperrors.ProductInsufficientStock, "Not enough stock to fulfil your cart")
		default:
			log.Error("Order creation failed", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	respond(c, http.StatusCreated, "Order placed", gin.H{"order": order})
}

// ListOrders returns the caller's order history
// GET /api/orders
func (ctrl *OrderController) ListOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	orders, err := ctrl.orderService.GetUserOrders(userID)
	if err != nil {
		log.Error("Failed to fetch orders", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	respond(c, http.StatusOK, "Orders fetched", gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetOrder returns one of the caller's orders
// GET /api/orders/:id
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}
	role, _ := middleware.GetUserRole(c)

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	order, err := ctrl.orderService.GetOrderByID(userID, role, uint(orderID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		case errors.Is(err, service.ErrNotOrderOwner):
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzOwnerOnly, "You do not own this order")
		default:
			log.Error("Failed to fetch order", err, map[string]interface{}{
				"order_id": orderID,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	respond(c, http.StatusOK, "Order fetched", gin.H{"order": order})
}

// CancelOrder cancels one of the caller's pending orders
// POST /api/orders/:id/cancel
func (ctrl *OrderController) CancelOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	order, err := ctrl.orderService.CancelOrder(userID, uint(orderID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		case errors.Is(err, service.ErrNotOrderOwner):
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzOwnerOnly, "You do not own this order")
		case errors.Is(err, service.ErrOrderNotCancelable):
			apperrors.Conflict(c, apperrors.OrderNotCancellable, "Order can no longer be cancelled")
		default:
			log.Error("Order cancellation failed", err, map[string]interface{}{
				"order_id": orderID,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	respond(c, http.StatusOK, "Order cancelled", gin.H{"order": order})
}
