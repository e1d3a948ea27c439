package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/model"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/service"
	apperrors "github.com/adhivedhanlr-maker/ecommerce-backend/internal/errors"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type AdminController struct {
	onboardingService service.OnboardingService
	orderService      service.OrderService
}

func NewAdminController(
	onboardingService service.OnboardingService,
	orderService service.OrderService,
) *AdminController {
	return &AdminController{
		onboardingService: onboardingService,
		orderService:      orderService,
	}
}

type SellerDecisionRequest struct {
	Status  string `json:"status" binding:"required"` // approved or rejected
	Remarks string `json:"remarks"`
}

type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func parseOnboardingFilter(raw string) (model.OnboardingStatus, error) {
	switch model.OnboardingStatus(raw) {
	case "", model.OnboardingDraft, model.OnboardingPending,
		model.OnboardingApproved, model.OnboardingRejected:
		return model.OnboardingStatus(raw), nil
	}
	return "", fmt.Errorf("unknown onboarding status %q", raw)
}

// ListSellers returns seller applications, optionally filtered by status
// GET /api/admin/sellers?status=pending
func (ctrl *AdminController) ListSellers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	status, err := parseOnboardingFilter(c.Query("status"))
	if err != nil {
		apperrors.BadRequest(c, apperrors.OnboardingInvalidStatus, "Unknown onboarding status")
		return
	}

	states, err := ctrl.onboardingService.ListSellers(status)
	if err != nil {
		log.Error("Failed to list seller applications", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	respond(c, http.StatusOK, "Seller applications fetched", gin.H{
		"sellers": states,
		"count":   len(states),
	})
}

// DecideSeller records the verdict on a pending application
// PUT /api/admin/sellers/:id/status
func (ctrl *AdminController) DecideSeller(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	adminID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid user ID")
		return
	}

	var req SellerDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "A decision status is required")
		return
	}

	var approve bool
	switch model.OnboardingStatus(req.Status) {
	case model.OnboardingApproved:
		approve = true
	case model.OnboardingRejected:
		approve = false
	default:
		apperrors.BadRequest(c, apperrors.OnboardingInvalidStatus, "Status must be approved or rejected")
		return
	}

	state, err := ctrl.onboardingService.Decide(adminID, uint(targetID), approve, req.Remarks)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrOnboardingNotFound):
			apperrors.NotFound(c, apperrors.OnboardingNotFound, "No application found for this user")
		case errors.Is(err, service.ErrOnboardingNotPending):
			apperrors.Conflict(c, apperrors.OnboardingNotPending, "Application is not awaiting review")
		default:
			log.Error("Failed to record onboarding decision", err, map[string]interface{}{
				"admin_id": adminID,
				"user_id":  targetID,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	respond(c, http.StatusOK, "Decision recorded", state)
}

// ExportSellers streams the applications as an xlsx workbook
// GET /api/admin/sellers/export?status=approved
func (ctrl *AdminController) ExportSellers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	status, err := parseOnboardingFilter(c.Query("status"))
	if err != nil {
		apperrors.BadRequest(c, apperrors.OnboardingInvalidStatus, "Unknown onboarding status")
		return
	}

	data, err := ctrl.onboardingService.ExportSellers(status)
	if err != nil {
		log.Error("Failed to export seller applications", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	filename := fmt.Sprintf("sellers-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// ListOrders returns all orders, optionally filtered by status
// GET /api/admin/orders?status=pending
func (ctrl *AdminController) ListOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orders, err := ctrl.orderService.ListOrders(model.OrderStatus(c.Query("status")))
	if err != nil {
		if errors.Is(err, service.ErrInvalidOrderStatus) {
			apperrors.BadRequest(c, apperrors.OrderInvalidStatus, "Unknown order status")
			return
		}
		log.Error("Failed to list orders", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	respond(c, http.StatusOK, "Orders fetched", gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// UpdateOrderStatus moves an order through its fulfilment states
// PUT /api/admin/orders/:id/status
func (ctrl *AdminController) UpdateOrderStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	var req OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "A status is required")
		return
	}

	if err := ctrl.orderService.UpdateOrderStatus(uint(orderID), model.OrderStatus(req.Status)); err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		case errors.Is(err, service.ErrInvalidOrderStatus):
			apperrors.BadRequest(c, apperrors.OrderInvalidStatus, "Unknown order status")
		default:
			log.Error("Failed to update order status", err, map[string]interface{}{
				"order_id": orderID,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	respond(c, http.StatusOK, "Order status updated", nil)
}
