package service

import (
	"errors"
	"fmt"

	"github.com/adhivedhanlr-maker/ecommerce-backend/config"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/model"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/repository"
	"github.com/adhivedhanlr-maker/ecommerce-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrNotOrderOwner      = errors.New("user does not own this order")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrMissingAddress     = errors.New("shipping address is required")
	ErrInvalidOrderStatus = errors.New("invalid order status")
	ErrOrderNotCancelable = errors.New("order can no longer be cancelled")
)

type OrderService interface {
	CreateOrderFromCart(userID uint, shippingAddress string) (*model.Order, error)
	GetUserOrders(userID uint) ([]model.Order, error)
	GetOrderByID(userID uint, role model.UserRole, orderID uint) (*model.Order, error)
	CancelOrder(userID, orderID uint) (*model.Order, error)
	ListOrders(status model.OrderStatus) ([]model.Order, error)
	UpdateOrderStatus(orderID uint, status model.OrderStatus) error
}

type orderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	pricing   config.PricingConfig
	db        *gorm.DB
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	pricing config.PricingConfig,
	db *gorm.DB,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		pricing:   pricing,
		db:        db,
	}
}

// CreateOrderFromCart converts the user's cart into an order inside one
// transaction: stock rows are locked, decremented, unit prices frozen,
// totals recomputed from the locked prices, and the cart emptied.
func (s *orderService) CreateOrderFromCart(userID uint, shippingAddress string) (*model.Order, error) {
	logger.Info("Creating order from cart", map[string]interface{}{
		"user_id": userID,
	})

	if shippingAddress == "" {
		logger.Warn("Order creation refused: missing shipping address", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrMissingAddress
	}

	cartItems, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch cart items", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	if len(cartItems) == 0 {
		logger.Warn("Cannot create order: cart is empty", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrEmptyCart
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during order creation, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"user_id": userID,
			})
		}
	}()

	var (
		orderItems []model.OrderItem
		lockedRows []model.CartItem
	)

	for _, cartItem := range cartItems {
		var product model.Product
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, cartItem.ProductID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Product not found during order creation", map[string]interface{}{
					"user_id":    userID,
					"product_id": cartItem.ProductID,
				})
				return nil, ErrProductNotFound
			}
			logger.Error("Failed to fetch product during order creation", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": cartItem.ProductID,
			})
			return nil, err
		}

		if !product.IsActive {
			tx.Rollback()
			return nil, ErrProductInactive
		}

		if product.StockQuantity < cartItem.Quantity {
			tx.Rollback()
			logger.Warn("Order creation failed: insufficient product stock", map[string]interface{}{
				"user_id":    userID,
				"product_id": cartItem.ProductID,
				"requested":  cartItem.Quantity,
				"available":  product.StockQuantity,
			})
			return nil, ErrInsufficientStock
		}

		product.StockQuantity -= cartItem.Quantity
		if err := tx.Model(&model.Product{}).
			Where("id = ?", product.ID).
			Update("stock_quantity", product.StockQuantity).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to decrement stock", err, map[string]interface{}{
				"product_id": product.ID,
			})
			return nil, err
		}

		orderItems = append(orderItems, model.OrderItem{
			ProductID: product.ID,
			SellerID:  product.SellerID,
			Quantity:  cartItem.Quantity,
			Price:     product.Price,
		})

		locked := cartItem
		locked.Product = product
		lockedRows = append(lockedRows, locked)
	}

	totals := ComputeTotals(lockedRows, s.pricing)

	order := &model.Order{
		UserID:          userID,
		Subtotal:        totals.Subtotal,
		TaxAmount:       totals.TaxAmount,
		ShippingFee:     totals.ShippingFee,
		TotalAmount:     totals.Total,
		Status:          model.OrderStatusPending,
		ShippingAddress: shippingAddress,
		OrderItems:      orderItems,
	}

	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create order", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if err := tx.Where("user_id = ?", userID).Delete(&model.CartItem{}).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to clear cart after order creation", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit order transaction", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("Order created", map[string]interface{}{
		"order_id":     order.ID,
		"user_id":      userID,
		"total_amount": order.TotalAmount,
		"item_count":   len(orderItems),
	})

	return s.orderRepo.FindByID(order.ID)
}

func (s *orderService) GetUserOrders(userID uint) ([]model.Order, error) {
	logger.Debug("Fetching orders for user", map[string]interface{}{
		"user_id": userID,
	})

	orders, err := s.orderRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user orders", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return orders, nil
}

func (s *orderService) GetOrderByID(userID uint, role model.UserRole, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		logger.Error("Failed to fetch order", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}

	if order.UserID != userID && role != model.RoleAdmin {
		logger.Warn("Order access refused: not the owner", map[string]interface{}{
			"order_id": orderID,
			"user_id":  userID,
			"owner_id": order.UserID,
		})
		return nil, ErrNotOrderOwner
	}
	return order, nil
}

// CancelOrder lets the buyer cancel while the order is still pending.
// Stock reserved by the order is returned.
func (s *orderService) CancelOrder(userID, orderID uint) (*model.Order, error) {
	logger.Info("Cancelling order", map[string]interface{}{
		"order_id": orderID,
		"user_id":  userID,
	})

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrNotOrderOwner
	}
	if order.Status != model.OrderStatusPending {
		logger.Warn("Cancellation refused: order already progressed", map[string]interface{}{
			"order_id": orderID,
			"status":   order.Status,
		})
		return nil, ErrOrderNotCancelable
	}

	tx := s.db.Begin()
	for _, item := range order.OrderItems {
		if err := tx.Model(&model.Product{}).
			Where("id = ?", item.ProductID).
			Update("stock_quantity", gorm.Expr("stock_quantity + ?", item.Quantity)).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to restore stock on cancellation", err, map[string]interface{}{
				"order_id":   orderID,
				"product_id": item.ProductID,
			})
			return nil, err
		}
	}
	if err := tx.Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", model.OrderStatusCancelled).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to mark order cancelled", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit order cancellation", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}

	logger.Info("Order cancelled", map[string]interface{}{
		"order_id": orderID,
	})

	return s.orderRepo.FindByID(orderID)
}

func (s *orderService) ListOrders(status model.OrderStatus) ([]model.Order, error) {
	logger.Debug("Listing orders", map[string]interface{}{
		"status": status,
	})

	if status != "" && !isValidOrderStatus(status) {
		return nil, ErrInvalidOrderStatus
	}

	orders, err := s.orderRepo.FindAll(status)
	if err != nil {
		logger.Error("Failed to list orders", err, map[string]interface{}{
			"status": status,
		})
		return nil, err
	}
	return orders, nil
}

func (s *orderService) UpdateOrderStatus(orderID uint, status model.OrderStatus) error {
	logger.Info("Updating order status", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})

	if !isValidOrderStatus(status) {
		return ErrInvalidOrderStatus
	}

	if err := s.orderRepo.UpdateStatus(orderID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		logger.Error("Failed to update order status", err, map[string]interface{}{
			"order_id": orderID,
		})
		return err
	}

	logger.Info("Order status updated", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})
	return nil
}

func isValidOrderStatus(status model.OrderStatus) bool {
	switch status {
	case model.OrderStatusPending,
		model.OrderStatusConfirmed,
		model.OrderStatusShipped,
		model.OrderStatusDelivered,
		model.OrderStatusCancelled:
		return true
	}
	return false
}
