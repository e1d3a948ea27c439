package service

import (
	"errors"
	"math"

	"github.com/adhivedhanlr-maker/ecommerce-backend/config"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/model"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/repository"
	"github.com/adhivedhanlr-maker/ecommerce-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrNotCartItemOwner = errors.New("user does not own this cart item")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrProductInactive  = errors.New("product is not available")
)

// Cart bundles the items with their server-computed totals.
type Cart struct {
	Items  []model.CartItem `json:"items"`
	Totals model.CartTotals `json:"totals"`
}

type CartService interface {
	GetCart(userID uint) (*Cart, error)
	AddItem(userID, productID uint, quantity int) (*Cart, error)
	UpdateItem(userID, itemID uint, quantity int) (*Cart, error)
	RemoveItem(userID, itemID uint) (*Cart, error)
	ClearCart(userID uint) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	pricing     config.PricingConfig
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	pricing config.PricingConfig,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		pricing:     pricing,
	}
}

// ComputeTotals derives the pricing figures from the item rows. Shipping
// is free at or above the configured subtotal threshold.
func ComputeTotals(items []model.CartItem, pricing config.PricingConfig) model.CartTotals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Product.Price * float64(item.Quantity)
	}

	taxAmount := roundMoney(subtotal * pricing.TaxRate)

	var shippingFee float64
	if subtotal > 0 && subtotal < pricing.FreeShippingThreshold {
		shippingFee = pricing.ShippingFee
	}

	return model.CartTotals{
		Subtotal:    roundMoney(subtotal),
		TaxAmount:   taxAmount,
		ShippingFee: shippingFee,
		Total:       roundMoney(subtotal + taxAmount + shippingFee),
	}
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *cartService) loadCart(userID uint) (*Cart, error) {
	items, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch cart items", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return &Cart{
		Items:  items,
		Totals: ComputeTotals(items, s.pricing),
	}, nil
}

func (s *cartService) GetCart(userID uint) (*Cart, error) {
	logger.Debug("Fetching cart", map[string]interface{}{
		"user_id": userID,
	})
	return s.loadCart(userID)
}

func (s *cartService) AddItem(userID, productID uint, quantity int) (*Cart, error) {
	logger.Info("Adding item to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})

	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product for cart add", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	if !product.IsActive {
		return nil, ErrProductInactive
	}

	existing, err := s.cartRepo.FindByUserAndProduct(userID, productID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing cart item", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, err
	}

	requested := quantity
	if existing != nil {
		requested += existing.Quantity
	}
	if product.StockQuantity < requested {
		logger.Warn("Cart add refused: insufficient stock", map[string]interface{}{
			"product_id": productID,
			"requested":  requested,
			"available":  product.StockQuantity,
		})
		return nil, ErrInsufficientStock
	}

	if existing != nil {
		existing.Quantity = requested
		if err := s.cartRepo.Update(existing); err != nil {
			logger.Error("Failed to update cart item quantity", err, map[string]interface{}{
				"cart_item_id": existing.ID,
			})
			return nil, err
		}
	} else {
		item := &model.CartItem{
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
		}
		if err := s.cartRepo.Create(item); err != nil {
			logger.Error("Failed to create cart item", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			return nil, err
		}
	}

	return s.loadCart(userID)
}

func (s *cartService) UpdateItem(userID, itemID uint, quantity int) (*Cart, error) {
	logger.Info("Updating cart item", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": itemID,
		"quantity":     quantity,
	})

	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.cartRepo.FindByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	if item.UserID != userID {
		logger.Warn("Cart item update refused: not the owner", map[string]interface{}{
			"cart_item_id": itemID,
			"user_id":      userID,
			"owner_id":     item.UserID,
		})
		return nil, ErrNotCartItemOwner
	}

	product, err := s.productRepo.FindByID(item.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if product.StockQuantity < quantity {
		return nil, ErrInsufficientStock
	}

	item.Quantity = quantity
	if err := s.cartRepo.Update(item); err != nil {
		logger.Error("Failed to update cart item", err, map[string]interface{}{
			"cart_item_id": itemID,
		})
		return nil, err
	}

	return s.loadCart(userID)
}

func (s *cartService) RemoveItem(userID, itemID uint) (*Cart, error) {
	logger.Info("Removing cart item", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": itemID,
	})

	item, err := s.cartRepo.FindByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	if item.UserID != userID {
		return nil, ErrNotCartItemOwner
	}

	if err := s.cartRepo.Delete(itemID); err != nil {
		logger.Error("Failed to delete cart item", err, map[string]interface{}{
			"cart_item_id": itemID,
		})
		return nil, err
	}

	return s.loadCart(userID)
}

func (s *cartService) ClearCart(userID uint) error {
	logger.Info("Clearing cart", map[string]interface{}{
		"user_id": userID,
	})

	if err := s.cartRepo.DeleteByUserID(userID); err != nil {
		logger.Error("Failed to clear cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}
	return nil
}
