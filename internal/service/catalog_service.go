package service

import (
	"context"
	"strings"

	"bookstore-service/internal/models"
	"bookstore-service/internal/redisclient"
	"bookstore-service/internal/store"
	"bookstore-service/internal/util"

	"go.uber.org/zap"
)

// CatalogService serves the public product surface and the admin
// product CRUD.
type CatalogService struct {
	store    *store.Store
	redis    *redisclient.Client
	pageSize int
	logger   *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store *store.Store, redis *redisclient.Client, pageSize int) *CatalogService {
	return &CatalogService{
		store:    store,
		redis:    redis,
		pageSize: pageSize,
		logger:   util.GetLogger(),
	}
}

// CatalogPage is one page of the catalog listing
type CatalogPage struct {
	Products   []models.Product  `json:"products"`
	Categories []models.Category `json:"categories"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
	CategoryID int64             `json:"category_id,omitempty"`
}

// ListPage returns one catalog page, newest first, optionally filtered
// by category. Pages are 1-based; out-of-range pages come back empty.
func (s *CatalogService) ListPage(ctx context.Context, page int, categoryID int64) (*CatalogPage, error) {
	if page < 1 {
		page = 1
	}

	count, err := s.store.CountProducts(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	products, err := s.store.ListProducts(ctx, categoryID, s.pageSize, (page-1)*s.pageSize)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}

	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	totalPages := (count + s.pageSize - 1) / s.pageSize

	return &CatalogPage{
		Products:   products,
		Categories: categories,
		Page:       page,
		PageSize:   s.pageSize,
		TotalPages: totalPages,
		CategoryID: categoryID,
	}, nil
}

// GetProduct retrieves a product, serving repeat lookups from Redis
func (s *CatalogService) GetProduct(ctx context.Context, productID int64) (*models.Product, error) {
	var cached models.Product
	hit, err := s.redis.GetCachedProduct(ctx, productID, &cached)
	if err != nil {
		s.logger.Warn("Product cache read failed", zap.Error(err))
	}
	if hit {
		return &cached, nil
	}

	product, err := s.store.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := s.redis.CacheProduct(ctx, productID, product); err != nil {
		s.logger.Warn("Product cache write failed", zap.Error(err))
	}
	return product, nil
}

// Search matches product names by case-insensitive substring. An
// empty query returns no results, matching the storefront behavior.
func (s *CatalogService) Search(ctx context.Context, query string) ([]models.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Product{}, nil
	}

	products, err := s.store.SearchProducts(ctx, query)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// ListCategories retrieves all categories
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.store.ListCategories(ctx)
}

// ListAllProducts retrieves the full catalog for the back-office
func (s *CatalogService) ListAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.store.ListProducts(ctx, 0, 10000, 0)
}

func validateProduct(product *models.Product) error {
	if product.Name == "" || product.Author == "" {
		return ErrMissingField
	}
	if product.Price <= 0 {
		return ErrInvalidPrice
	}
	return nil
}

// CreateProduct validates and persists a new product
func (s *CatalogService) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	if _, err := s.store.GetCategoryByID(ctx, product.CategoryID); err != nil {
		return err
	}
	return s.store.CreateProduct(ctx, product)
}

// UpdateProduct validates and persists product changes, dropping the
// stale cache entry.
func (s *CatalogService) UpdateProduct(ctx context.Context, product *models.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	if _, err := s.store.GetCategoryByID(ctx, product.CategoryID); err != nil {
		return err
	}
	if err := s.store.UpdateProduct(ctx, product); err != nil {
		return err
	}
	if err := s.redis.InvalidateProduct(ctx, product.ID); err != nil {
		s.logger.Warn("Product cache invalidation failed", zap.Error(err))
	}
	return nil
}

// DeleteProduct removes a product and its cache entry
func (s *CatalogService) DeleteProduct(ctx context.Context, productID int64) error {
	if err := s.store.DeleteProduct(ctx, productID); err != nil {
		return err
	}
	if err := s.redis.InvalidateProduct(ctx, productID); err != nil {
		s.logger.Warn("Product cache invalidation failed", zap.Error(err))
	}
	return nil
}
