package service

import (
	"testing"

	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/model"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/repository"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (OrderService, CartService, *model.User, *model.Product, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	orderRepo := repository.NewOrderRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	orderService := NewOrderService(orderRepo, cartRepo, testPricing, testDB)
	cartService := NewCartService(cartRepo, productRepo, testPricing)

	user := &model.User{
		Email:        "buyer@example.com",
		PasswordHash: "hash",
		Name:         "Test Buyer",
		Role:         model.RoleUser,
	}
	require.NoError(t, testDB.Create(user).Error)

	seller := &model.User{
		Email:        "seller@example.com",
		PasswordHash: "hash",
		Name:         "Test Seller",
		Role:         model.RoleSeller,
	}
	require.NoError(t, testDB.Create(seller).Error)

	category := &model.Category{Name: "Electronics", Slug: "electronics"}
	require.NoError(t, testDB.Create(category).Error)

	product := &model.Product{
		Name:          "Wireless Mouse",
		Price:         500,
		StockQuantity: 10,
		IsActive:      true,
		CategoryID:    category.ID,
		SellerID:      seller.ID,
	}
	require.NoError(t, testDB.Create(product).Error)

	return orderService, cartService, user, product, testDB
}

func TestOrderService_CreateOrderFromCart(t *testing.T) {
	orderService, cartService, user, product, testDB := setupOrderServiceTest(t)

	_, err := cartService.AddItem(user.ID, product.ID, 2)
	require.NoError(t, err)

	order, err := orderService.CreateOrderFromCart(user.ID, "12 Market Road, Bengaluru 560001")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, float64(1000), order.Subtotal)
	assert.Equal(t, float64(180), order.TaxAmount)
	assert.Equal(t, float64(0), order.ShippingFee)
	assert.Equal(t, float64(1180), order.TotalAmount)
	require.Len(t, order.OrderItems, 1)
	assert.Equal(t, float64(500), order.OrderItems[0].Price)
	assert.Equal(t, product.SellerID, order.OrderItems[0].SellerID)

	// Stock is decremented and the cart emptied
	var reloaded model.Product
	require.NoError(t, testDB.First(&reloaded, product.ID).Error)
	assert.Equal(t, 8, reloaded.StockQuantity)

	cart, err := cartService.GetCart(user.ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 0)
}

func TestOrderService_CreateOrderFromCart_ShippingBelowThreshold(t *testing.T) {
	orderService, cartService, user, product, _ := setupOrderServiceTest(t)

	_, err := cartService.AddItem(user.ID, product.ID, 1)
	require.NoError(t, err)

	order, err := orderService.CreateOrderFromCart(user.ID, "12 Market Road")
	require.NoError(t, err)
	assert.Equal(t, float64(49), order.ShippingFee)
	assert.Equal(t, float64(639), order.TotalAmount)
}

func TestOrderService_CreateOrderFromCart_Failures(t *testing.T) {
	orderService, cartService, user, product, testDB := setupOrderServiceTest(t)

	_, err := orderService.CreateOrderFromCart(user.ID, "")
	assert.ErrorIs(t, err, ErrMissingAddress)

	_, err = orderService.CreateOrderFromCart(user.ID, "12 Market Road")
	assert.ErrorIs(t, err, ErrEmptyCart)

	// Stock shrinks between add and checkout
	_, err = cartService.AddItem(user.ID, product.ID, 5)
	require.NoError(t, err)
	require.NoError(t, testDB.Model(product).Update("stock_quantity", 2).Error)
	_, err = orderService.CreateOrderFromCart(user.ID, "12 Market Road")
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// Stock untouched by the failed attempt
	var reloaded model.Product
	require.NoError(t, testDB.First(&reloaded, product.ID).Error)
	assert.Equal(t, 2, reloaded.StockQuantity)
}

func TestOrderService_GetOrderByID_Ownership(t *testing.T) {
	orderService, cartService, user, product, testDB := setupOrderServiceTest(t)

	_, err := cartService.AddItem(user.ID, product.ID, 1)
	require.NoError(t, err)
	order, err := orderService.CreateOrderFromCart(user.ID, "12 Market Road")
	require.NoError(t, err)

	fetched, err := orderService.GetOrderByID(user.ID, model.RoleUser, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, fetched.ID)

	other := &model.User{Email: "other@example.com", PasswordHash: "hash", Name: "Other"}
	require.NoError(t, testDB.Create(other).Error)

	_, err = orderService.GetOrderByID(other.ID, model.RoleUser, order.ID)
	assert.ErrorIs(t, err, ErrNotOrderOwner)

	// Admins can read any order
	_, err = orderService.GetOrderByID(other.ID, model.RoleAdmin, order.ID)
	assert.NoError(t, err)

	_, err = orderService.GetOrderByID(user.ID, model.RoleUser, 9999)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_CancelOrder(t *testing.T) {
	orderService, cartService, user, product, testDB := setupOrderServiceTest(t)

	_, err := cartService.AddItem(user.ID, product.ID, 3)
	require.NoError(t, err)
	order, err := orderService.CreateOrderFromCart(user.ID, "12 Market Road")
	require.NoError(t, err)

	cancelled, err := orderService.CancelOrder(user.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, cancelled.Status)

	// Reserved stock returns
	var reloaded model.Product
	require.NoError(t, testDB.First(&reloaded, product.ID).Error)
	assert.Equal(t, 10, reloaded.StockQuantity)

	// A cancelled order cannot be cancelled again
	_, err = orderService.CancelOrder(user.ID, order.ID)
	assert.ErrorIs(t, err, ErrOrderNotCancelable)
}

func TestOrderService_CancelOrder_OnlyWhilePending(t *testing.T) {
	orderService, cartService, user, product, _ := setupOrderServiceTest(t)

	_, err := cartService.AddItem(user.ID, product.ID, 1)
	require.NoError(t, err)
	order, err := orderService.CreateOrderFromCart(user.ID, "12 Market Road")
	require.NoError(t, err)

	require.NoError(t, orderService.UpdateOrderStatus(order.ID, model.OrderStatusShipped))

	_, err = orderService.CancelOrder(user.ID, order.ID)
	assert.ErrorIs(t, err, ErrOrderNotCancelable)
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	orderService, cartService, user, product, _ := setupOrderServiceTest(t)

	_, err := cartService.AddItem(user.ID, product.ID, 1)
	require.NoError(t, err)
	order, err := orderService.CreateOrderFromCart(user.ID, "12 Market Road")
	require.NoError(t, err)

	require.NoError(t, orderService.UpdateOrderStatus(order.ID, model.OrderStatusConfirmed))

	fetched, err := orderService.GetOrderByID(user.ID, model.RoleUser, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusConfirmed, fetched.Status)

	err = orderService.UpdateOrderStatus(order.ID, "teleported")
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)

	err = orderService.UpdateOrderStatus(9999, model.OrderStatusShipped)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_ListOrders(t *testing.T) {
	orderService, cartService, user, product, _ := setupOrderServiceTest(t)

	_, err := cartService.AddItem(user.ID, product.ID, 1)
	require.NoError(t, err)
	order, err := orderService.CreateOrderFromCart(user.ID, "12 Market Road")
	require.NoError(t, err)

	all, err := orderService.ListOrders("")
	require.NoError(t, err)
	assert.Len(t, all, 1)

	pending, err := orderService.ListOrders(model.OrderStatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, order.ID, pending[0].ID)

	shipped, err := orderService.ListOrders(model.OrderStatusShipped)
	require.NoError(t, err)
	assert.Len(t, shipped, 0)

	_, err = orderService.ListOrders("teleported")
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)
}
