package service

import (
	"errors"
	"strings"

	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/model"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/repository"
	"github.com/adhivedhanlr-maker/ecommerce-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryInUse    = errors.New("category still has products")
)

type CategoryService interface {
	ListCategories() ([]model.Category, error)
	GetCategoryByID(id uint) (*model.Category, error)
	CreateCategory(name, description, imageURL string) (*model.Category, error)
	UpdateCategory(id uint, name, description, imageURL string) (*model.Category, error)
	DeleteCategory(id uint) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) ListCategories() ([]model.Category, error) {
	categories, err := s.categoryRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list categories", err, nil)
		return nil, err
	}
	return categories, nil
}

func (s *categoryService) GetCategoryByID(id uint) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		logger.Error("Failed to fetch category", err, map[string]interface{}{
			"category_id": id,
		})
		return nil, err
	}
	return category, nil
}

func (s *categoryService) CreateCategory(name, description, imageURL string) (*model.Category, error) {
	logger.Info("Creating category", map[string]interface{}{
		"name": name,
	})

	slug := slugify(name)
	existing, err := s.categoryRepo.FindBySlug(slug)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing category", err, map[string]interface{}{
			"slug": slug,
		})
		return nil, err
	}
	if existing != nil {
		logger.Warn("Category creation failed: slug already exists", map[string]interface{}{
			"slug": slug,
		})
		return nil, ErrCategoryExists
	}

	category := &model.Category{
		Name:        name,
		Slug:        slug,
		Description: description,
		ImageURL:    imageURL,
	}

	if err := s.categoryRepo.Create(category); err != nil {
		logger.Error("Failed to create category", err, map[string]interface{}{
			"name": name,
		})
		return nil, err
	}

	logger.Info("Category created", map[string]interface{}{
		"category_id": category.ID,
		"slug":        category.Slug,
	})
	return category, nil
}

func (s *categoryService) UpdateCategory(id uint, name, description, imageURL string) (*model.Category, error) {
	logger.Info("Updating category", map[string]interface{}{
		"category_id": id,
	})

	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if name != "" && name != category.Name {
		category.Name = name
		category.Slug = slugify(name)
	}
	if description != "" {
		category.Description = description
	}
	if imageURL != "" {
		category.ImageURL = imageURL
	}

	if err := s.categoryRepo.Update(category); err != nil {
		logger.Error("Failed to update category", err, map[string]interface{}{
			"category_id": id,
		})
		return nil, err
	}

	return category, nil
}

func (s *categoryService) DeleteCategory(id uint) error {
	logger.Info("Deleting category", map[string]interface{}{
		"category_id": id,
	})

	if _, err := s.categoryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	count, err := s.categoryRepo.CountProducts(id)
	if err != nil {
		logger.Error("Failed to count products in category", err, map[string]interface{}{
			"category_id": id,
		})
		return err
	}
	if count > 0 {
		logger.Warn("Category deletion refused: products still attached", map[string]interface{}{
			"category_id":   id,
			"product_count": count,
		})
		return ErrCategoryInUse
	}

	if err := s.categoryRepo.Delete(id); err != nil {
		logger.Error("Failed to delete category", err, map[string]interface{}{
			"category_id": id,
		})
		return err
	}

	logger.Info("Category deleted", map[string]interface{}{
		"category_id": id,
	})
	return nil
}

// slugify lowercases a name and collapses whitespace runs into hyphens
func slugify(name string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	return strings.Join(fields, "-")
}
