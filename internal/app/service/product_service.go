package service

import (
	"errors"

	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/model"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/repository"
	"github.com/adhivedhanlr-maker/ecommerce-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrNotProductOwner   = errors.New("user does not own this product")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNotSeller         = errors.New("user is not an approved seller")
)

// ProductInput carries the writable product fields from the API layer.
// Pointer fields distinguish "absent" from the zero value on updates.
type ProductInput struct {
	Name          string
	Description   string
	Price         float64
	StockQuantity *int
	ImageURL      string
	CategoryID    uint
	IsActive      *bool
}

type ProductService interface {
	ListProducts(filter repository.ProductFilter) ([]model.Product, int64, error)
	GetProductByID(id uint) (*model.Product, error)
	CreateProduct(sellerID uint, role model.UserRole, input ProductInput) (*model.Product, error)
	UpdateProduct(userID uint, role model.UserRole, productID uint, input ProductInput) (*model.Product, error)
	DeleteProduct(userID uint, role model.UserRole, productID uint) error
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *productService) ListProducts(filter repository.ProductFilter) ([]model.Product, int64, error) {
	logger.Debug("Listing products", map[string]interface{}{
		"category_id": filter.CategoryID,
		"seller_id":   filter.SellerID,
		"search":      filter.Search,
		"page":        filter.Page,
	})

	products, total, err := s.productRepo.Find(filter)
	if err != nil {
		logger.Error("Failed to list products", err, nil)
		return nil, 0, err
	}
	return products, total, nil
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return product, nil
}

func (s *productService) CreateProduct(sellerID uint, role model.UserRole, input ProductInput) (*model.Product, error) {
	logger.Info("Creating product", map[string]interface{}{
		"seller_id": sellerID,
		"name":      input.Name,
	})

	if role != model.RoleSeller && role != model.RoleAdmin {
		logger.Warn("Product creation refused: not a seller", map[string]interface{}{
			"user_id": sellerID,
			"role":    role,
		})
		return nil, ErrNotSeller
	}

	if _, err := s.categoryRepo.FindByID(input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	product := &model.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		IsActive:    true,
		CategoryID:  input.CategoryID,
		SellerID:    sellerID,
	}
	if input.StockQuantity != nil {
		product.StockQuantity = *input.StockQuantity
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.productRepo.Create(product); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"seller_id": sellerID,
		})
		return nil, err
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"seller_id":  sellerID,
	})
	return product, nil
}

func (s *productService) UpdateProduct(userID uint, role model.UserRole, productID uint, input ProductInput) (*model.Product, error) {
	logger.Info("Updating product", map[string]interface{}{
		"product_id": productID,
		"user_id":    userID,
	})

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if product.SellerID != userID && role != model.RoleAdmin {
		logger.Warn("Product update refused: not the owner", map[string]interface{}{
			"product_id": productID,
			"user_id":    userID,
			"owner_id":   product.SellerID,
		})
		return nil, ErrNotProductOwner
	}

	if input.Name != "" {
		product.Name = input.Name
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if input.Price > 0 {
		product.Price = input.Price
	}
	if input.StockQuantity != nil {
		product.StockQuantity = *input.StockQuantity
	}
	if input.ImageURL != "" {
		product.ImageURL = input.ImageURL
	}
	if input.CategoryID != 0 {
		if _, err := s.categoryRepo.FindByID(input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		product.CategoryID = input.CategoryID
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.productRepo.Update(product); err != nil {
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	logger.Info("Product updated", map[string]interface{}{
		"product_id": productID,
	})
	return product, nil
}

func (s *productService) DeleteProduct(userID uint, role model.UserRole, productID uint) error {
	logger.Info("Deleting product", map[string]interface{}{
		"product_id": productID,
		"user_id":    userID,
	})

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if product.SellerID != userID && role != model.RoleAdmin {
		logger.Warn("Product deletion refused: not the owner", map[string]interface{}{
			"product_id": productID,
			"user_id":    userID,
			"owner_id":   product.SellerID,
		})
		return ErrNotProductOwner
	}

	if err := s.productRepo.Delete(productID); err != nil {
		logger.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": productID,
		})
		return err
	}

	logger.Info("Product deleted", map[string]interface{}{
		"product_id": productID,
	})
	return nil
}
